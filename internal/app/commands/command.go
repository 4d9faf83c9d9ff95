// Package commands defines the portal's interactive command surface as
// a typed dispatch table: one Command value per menu entry, resolved at
// startup, with role gating handled by the shell loop. Prompting and
// rendering live here so the services stay free of terminal concerns.
package commands

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/campusgate/admissions/internal/app/services"
	"github.com/campusgate/admissions/internal/pkg/auth"
	"github.com/campusgate/admissions/internal/pkg/validation"
)

// Command is one executable menu entry
type Command struct {
	Name string
	Help string
	// Roles lists who may run the command; nil means shell-native,
	// available whether or not anyone is logged in
	Roles []auth.Role
	// Mutating marks commands after which the shell persists state
	Mutating bool
	Run      func(ctx *Context) error
}

// AllowedFor reports whether a session role may run this command
func (c *Command) AllowedFor(role auth.Role) bool {
	if c.Roles == nil {
		return true
	}
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// SessionState carries the current login across commands
type SessionState struct {
	Current *auth.Session
}

// LoggedIn reports whether anyone is logged in
func (s *SessionState) LoggedIn() bool {
	return s.Current != nil
}

// Role returns the active role, or "" when logged out
func (s *SessionState) Role() auth.Role {
	if s.Current == nil {
		return ""
	}
	return s.Current.Role
}

// Context is handed to every command invocation
type Context struct {
	In      *bufio.Reader
	Out     io.Writer
	Svc     *services.Services
	Session *SessionState
	// Registry backs the info and view-commands listings
	Registry *Registry
	// Quit is set by the exit command to stop the shell loop
	Quit bool
	// EOF sticks once input is exhausted; prompt loops treat it like
	// an explicit cancel so they cannot spin on an empty answer
	EOF bool
}

// Printf writes formatted output to the terminal
func (ctx *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(ctx.Out, format, args...)
}

// Println writes a line to the terminal
func (ctx *Context) Println(args ...interface{}) {
	fmt.Fprintln(ctx.Out, args...)
}

// ReadLine prompts and returns one trimmed input line. Once the input
// stream is exhausted it marks the context EOF and answers empty.
func (ctx *Context) ReadLine(prompt string) string {
	if ctx.EOF {
		return ""
	}
	fmt.Fprint(ctx.Out, prompt)
	line, err := ctx.In.ReadString('\n')
	if err != nil && line == "" {
		ctx.EOF = true
		return ""
	}
	return validation.CleanString(line)
}

// Aborted reports whether an answer should end the prompt flow: an
// explicit cancel, or input that has run out
func (ctx *Context) Aborted(answer string) bool {
	return ctx.EOF || strings.EqualFold(answer, "cancel")
}

// ReadInt prompts until the user enters a valid integer; ok is false
// when the flow is cancelled or input runs out
func (ctx *Context) ReadInt(prompt string) (int, bool) {
	for {
		raw := ctx.ReadLine(prompt)
		if ctx.Aborted(raw) {
			return 0, false
		}
		n, err := strconv.Atoi(raw)
		if err == nil {
			return n, true
		}
		ctx.Println("Invalid number, try again.")
	}
}

// Confirm prompts until the user answers yes or no; exhausted input is
// a no
func (ctx *Context) Confirm(prompt string) bool {
	for {
		answer := strings.ToLower(ctx.ReadLine(prompt + " [Y | N]: "))
		if ctx.EOF {
			return false
		}
		switch answer {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		ctx.Println("Invalid option, enter Y or N.")
	}
}
