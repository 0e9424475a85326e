// Package flagx lets independent flag sets share os.Args: the config file
// lookup and each package's own flags only see the arguments they know.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs keeps the flags of args whose name is in names, together with
// their values. Names are given without dashes; "-name" and "--name" both
// match, as they do for package flag. A value is either joined with '='
// ("-c=conf.json") or the next argument when that does not start with '-'.
// Scanning stops at the "--" terminator.
func FilterArgs(args []string, names ...string) []string {
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}

	out := []string{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}

		name, hasValue := flagName(arg)
		if name == "" || !known[name] {
			continue
		}

		out = append(out, arg)
		if !hasValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			out = append(out, args[i])
		}
	}
	return out
}

// flagName returns the name of a "-name", "--name" or "-name=value"
// argument and whether the value is inline. Non-flags yield "".
func flagName(arg string) (string, bool) {
	if len(arg) < 2 || arg[0] != '-' {
		return "", false
	}
	name := strings.TrimPrefix(arg[1:], "-")
	name, _, hasValue := strings.Cut(name, "=")
	return name, hasValue
}

// ConfigPath returns the config file named by -c or -config in args, or ""
// when there is none. The last occurrence wins.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to the JSON config file")
	fs.StringVar(&path, "c", "", "path to the JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, "c", "config"))

	return path
}

// JsonConfigFlags is ConfigPath applied to the process arguments.
func JsonConfigFlags() string {
	return ConfigPath(os.Args[1:])
}
