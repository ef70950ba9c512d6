package bot

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Command is a plain handler entry: identity, a few gates, and a run
// function. Nothing to inherit from; the registry maps names to these.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Usage       string
	AdminOnly   bool
	OwnerOnly   bool
	Cooldown    time.Duration
	Run         func(*Context) error
}

var (
	ErrInvalidCommand = errors.New("registry: command needs a name and a run function")
	ErrCommandExists  = errors.New("registry: command already registered")
)

// Registry maps lowercased command names and aliases to commands.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]*Command
	index    map[string]*Command
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
		index:    make(map[string]*Command),
	}
}

func (r *Registry) Register(cmd *Command) error {
	if cmd == nil || cmd.Name == "" || cmd.Run == nil {
		return ErrInvalidCommand
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(cmd.Name)
	if _, ok := r.index[name]; ok {
		return fmt.Errorf("%w: %v", ErrCommandExists, name)
	}
	for _, a := range cmd.Aliases {
		if _, ok := r.index[strings.ToLower(a)]; ok {
			return fmt.Errorf("%w: %v", ErrCommandExists, a)
		}
	}

	r.commands[name] = cmd
	r.index[name] = cmd
	for _, a := range cmd.Aliases {
		r.index[strings.ToLower(a)] = cmd
	}
	return nil
}

// Get resolves a name or alias to its command.
func (r *Registry) Get(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.index[strings.ToLower(name)]
	return cmd, ok
}

// Commands returns all registered commands sorted by name.
func (r *Registry) Commands() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
