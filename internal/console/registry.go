package console

import (
	"fmt"
	"sort"
	"strings"
)

// Registry resolves console input words to commands. Aliases point at a
// canonical name; order keeps the help listing stable.
type Registry struct {
	byName  map[string]*Command
	aliases map[string]string
	order   []string
}

// NewRegistry indexes cmds by name and alias.
//
// Precondition: No two commands may share a canonical name or alias.
// Postcondition: Returns a Registry or an error on name/alias collisions.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{
		byName:  make(map[string]*Command, len(cmds)),
		aliases: make(map[string]string),
	}
	for i := range cmds {
		if err := r.register(&cmds[i]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) register(cmd *Command) error {
	if _, taken := r.byName[cmd.Name]; taken {
		return fmt.Errorf("duplicate command name: %q", cmd.Name)
	}
	if owner, taken := r.aliases[cmd.Name]; taken {
		return fmt.Errorf("command name %q conflicts with an existing alias of %q", cmd.Name, owner)
	}
	for _, alias := range cmd.Aliases {
		if _, taken := r.byName[alias]; taken {
			return fmt.Errorf("alias %q of %q shadows a command", alias, cmd.Name)
		}
		if owner, taken := r.aliases[alias]; taken {
			return fmt.Errorf("duplicate alias %q: used by %q and %q", alias, owner, cmd.Name)
		}
	}
	r.byName[cmd.Name] = cmd
	r.order = append(r.order, cmd.Name)
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd.Name
	}
	return nil
}

// DefaultRegistry creates a Registry with all built-in commands.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve looks up a command by name or alias.
//
// Postcondition: Returns (command, true) if found, or (nil, false).
func (r *Registry) Resolve(input string) (*Command, bool) {
	name := strings.ToLower(input)
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	cmd, ok := r.byName[name]
	return cmd, ok
}

// Commands returns all registered commands in registration order.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, len(r.order))
	for i, name := range r.order {
		out[i] = r.byName[name]
	}
	return out
}

// CommandsByCategory returns commands grouped by category, each group in
// registration order.
func (r *Registry) CommandsByCategory() map[string][]*Command {
	groups := make(map[string][]*Command)
	for _, cmd := range r.Commands() {
		groups[cmd.Category] = append(groups[cmd.Category], cmd)
	}
	return groups
}

// Names returns every canonical name and alias, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName)+len(r.aliases))
	for n := range r.byName {
		names = append(names, n)
	}
	for a := range r.aliases {
		names = append(names, a)
	}
	sort.Strings(names)
	return names
}
