// Package errmsg turns errors into the one-line messages shown under the
// search results.
package errmsg

import "fmt"

// Op names what the user was doing when an error happened.
type Op string

const (
	OpConfigReload   Op = "reload configuration"
	OpProviderToggle Op = "toggle search provider"
	OpStateLoad      Op = "load search state"
	OpStateSave      Op = "save search state"
)

// Format returns "Failed to <op>: <err>", or "" when err is nil.
func Format(op Op, err error) string {
	return FormatWith(op, "", err)
}

// FormatWith is Format naming the subject of op, such as a provider.
func FormatWith(op Op, subject string, err error) string {
	switch {
	case err == nil:
		return ""
	case subject == "":
		return fmt.Sprintf("Failed to %s: %v", op, err)
	default:
		return fmt.Sprintf("Failed to %s %q: %v", op, subject, err)
	}
}
