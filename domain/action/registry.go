package action

import "sort"

// Registry is the read-only set of action configs, keyed by action name.
// It is built once at startup and is safe for concurrent readers without
// locking.
type Registry struct {
	actions map[string]Config
}

// NewRegistry builds a registry from the given configs. A later config
// with the same name overwrites an earlier one.
func NewRegistry(cfgs ...Config) *Registry {
	actions := make(map[string]Config, len(cfgs))
	for _, cfg := range cfgs {
		actions[cfg.Name] = cfg
	}
	return &Registry{actions: actions}
}

// Get returns the config registered under name.
func (r *Registry) Get(name string) (Config, bool) {
	cfg, ok := r.actions[name]
	return cfg, ok
}

// Has reports whether an action is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.actions[name]
	return ok
}

// Names returns the registered action names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	return len(r.actions)
}
