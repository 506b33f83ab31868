// Package buildenv locates the active build-environment identifier. The
// enclosing build tool normally supplies it implicitly; everything here takes
// the environment as an explicit input so resolution stays testable without a
// real build-tool context.
package buildenv

import "strings"

// EnvironmentVariable is the variable PlatformIO exports to extra scripts
// with the name of the active build environment.
const EnvironmentVariable = "PIOENV"

// LookupFunc reports the value of a process environment variable. It matches
// the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Identifier picks the active build-environment identifier. An explicit
// value wins; otherwise the build tool's environment variable is consulted
// through lookup. The empty string is a valid result and resolves to the
// default variant downstream.
func Identifier(explicit string, lookup LookupFunc) string {
	if value := strings.TrimSpace(explicit); value != "" {
		return value
	}
	if lookup == nil {
		return ""
	}
	if value, ok := lookup(EnvironmentVariable); ok {
		return strings.TrimSpace(value)
	}
	return ""
}
