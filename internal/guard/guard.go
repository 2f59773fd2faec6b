// Package guard decides whether a command may run for the current session.
package guard

import "fmt"

// Access is the session requirement of a command.
type Access string

const (
	// Public commands run with or without a session.
	Public Access = "public"
	// Protected commands need a session.
	Protected Access = "protected"
	// GuestOnly commands only make sense without a session.
	GuestOnly Access = "guest"
)

// Redirect targets.
const (
	LoginRoute   = "/login"
	AnalyzeRoute = "/analyze"
)

// Decision is the outcome of Decide.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Decide applies access to the session state: protected commands send guests to
// /login, guest-only commands send signed-in users to /analyze.
func Decide(access Access, authenticated bool) Decision {
	switch access {
	case Protected:
		if !authenticated {
			return Decision{RedirectTo: LoginRoute}
		}
	case GuestOnly:
		if authenticated {
			return Decision{RedirectTo: AnalyzeRoute}
		}
	}
	return Decision{Allow: true}
}

// ParseAccess reads an access level; empty means Public.
func ParseAccess(s string) (Access, error) {
	switch Access(s) {
	case "", Public:
		return Public, nil
	case Protected, GuestOnly:
		return Access(s), nil
	}
	return "", fmt.Errorf("unknown access level %q", s)
}

// RedirectError reports a blocked command and where the user should go instead.
type RedirectError struct {
	Command    string
	RedirectTo string
}

func (e *RedirectError) Error() string {
	switch e.RedirectTo {
	case LoginRoute:
		return fmt.Sprintf("%s requires you to be logged in; run 'login' first", e.Command)
	case AnalyzeRoute:
		return fmt.Sprintf("you are already logged in; run 'analyze', or 'logout' before '%s'", e.Command)
	default:
		return fmt.Sprintf("%s is not available; go to %s", e.Command, e.RedirectTo)
	}
}

// Check returns a *RedirectError when Decide blocks the command.
func Check(command string, access Access, authenticated bool) error {
	d := Decide(access, authenticated)
	if d.Allow {
		return nil
	}
	return &RedirectError{Command: command, RedirectTo: d.RedirectTo}
}
