// Package cli is the interactive presentation layer of the mallcli
// storefront client: a small REPL over the auth and search services.
//
// The REPL stays thin on purpose. Commands prompt for input, delegate to the
// injected services, and print whatever comes back; every decision about
// tokens, sessions, caching, and error messages lives below this package.
// Input helpers and the command surface are behind seams and interfaces so
// the loop can be driven from tests without a terminal.
package cli
