// Package api is the HTTP gateway to the mcom-mall REST API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering the
//     endpoints the storefront uses: SignUp, SignIn, Search, and Ping.
//  2. A concrete implementation (see RESTClient) bound to one base URL. A
//     request interceptor attaches the bearer token from the injected
//     session store; a response interceptor reacts to authorization
//     failures by clearing the store and notifying an injected handler, so
//     the transport stays decoupled from whatever "go to sign-in" means to
//     the presentation layer.
//
// # Error Handling
//
// Failures map onto a small taxonomy callers can branch on:
//
//   - ErrUnavailable: no response was received (network failure).
//   - *APIError: the server answered with a non-2xx status. Message holds a
//     user-facing string resolved from the response body when the API
//     supplied one, else from the status table in messages.go.
//     errors.Is(err, ErrUnauthorized) matches the 401 case.
//
// All operations accept context.Context and honor cancellation.
package api
