// Package flagx helps packages parse their own command-line flags without
// tripping over flags owned by other packages: arguments are filtered down to
// a known set before being handed to a flag.FlagSet.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the arguments that belong to the allowed flags.
// Both "-f value" and "-f=value" forms are recognized.
func FilterArgs(args []string, allowed []string) []string {
	set := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		set[f] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name := arg
		if eq := strings.IndexByte(arg, '='); eq >= 0 && strings.HasPrefix(arg, "-") {
			name = arg[:eq]
		}
		if _, ok := set[name]; !ok {
			continue
		}
		out = append(out, arg)
		// A separate value argument follows the flag when the combined
		// "-f=value" form was not used.
		if name == arg && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// ConfigFilePath extracts the JSON config file path from -c or -config,
// ignoring every other argument. Returns "" when neither flag is present.
func ConfigFilePath() string {
	var path string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("configfile", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(args)

	return path
}
