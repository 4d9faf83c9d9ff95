package commands

import (
	"sort"

	"github.com/campusgate/admissions/internal/pkg/auth"
)

// Registry is the typed dispatch table of every portal command,
// built once at startup
type Registry struct {
	commands map[string]*Command
}

// NewRegistry builds the full command table
func NewRegistry() *Registry {
	r := &Registry{commands: make(map[string]*Command)}

	for _, c := range shellCommands() {
		r.register(c)
	}
	for _, c := range guestCommands() {
		r.register(c)
	}
	for _, c := range studentCommands() {
		r.register(c)
	}
	for _, c := range adminCommands() {
		r.register(c)
	}

	return r
}

func (r *Registry) register(c *Command) {
	if _, dup := r.commands[c.Name]; dup {
		panic("duplicate command name: " + c.Name)
	}
	r.commands[c.Name] = c
}

// Resolve finds a command by its exact name
func (r *Registry) Resolve(name string) (*Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// Available lists the command names a role may run, shortest first the
// way the original menu printed them, ties broken alphabetically
func (r *Registry) Available(role auth.Role, includeNative bool) []string {
	var names []string
	for name, c := range r.commands {
		if c.Roles == nil {
			if includeNative {
				names = append(names, name)
			}
			continue
		}
		if role != "" && c.AllowedFor(role) {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) < len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}
