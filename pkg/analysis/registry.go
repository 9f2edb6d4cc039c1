package analysis

import (
	"fmt"
	"sync"
)

type customKey struct {
	name      string
	stopwords bool
	variants  int
}

// Registry holds assembled pipelines by profile name. Default profiles are
// assembled up front so a missing resource fails at construction; custom
// variants are assembled on first use and kept.
type Registry struct {
	res     *Resources
	names   []string
	byName  map[string]*Pipeline
	mu      sync.Mutex
	customs map[customKey]*Pipeline
}

// NewRegistry assembles the given profiles, or all of them when names is
// empty.
func NewRegistry(res *Resources, names ...string) (*Registry, error) {
	if len(names) == 0 {
		names = Names()
	}
	r := &Registry{
		res:     res,
		byName:  make(map[string]*Pipeline, len(names)),
		customs: make(map[customKey]*Pipeline),
	}
	for _, name := range names {
		if _, dup := r.byName[name]; dup {
			continue
		}
		p, err := Resolve(name)
		if err != nil {
			return nil, err
		}
		pl, err := Assemble(p, res)
		if err != nil {
			return nil, err
		}
		r.byName[name] = pl
		r.names = append(r.names, name)
	}
	return r, nil
}

// Get returns the default pipeline for name.
func (r *Registry) Get(name string) (*Pipeline, error) {
	if pl, ok := r.byName[name]; ok {
		return pl, nil
	}
	if _, err := Resolve(name); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %q", ErrProfileDisabled, name)
}

// Custom returns the pipeline for name with explicit options. Only enabled
// profiles can be customized.
func (r *Registry) Custom(name string, stopwords bool, variants int) (*Pipeline, error) {
	if _, ok := r.byName[name]; !ok {
		if _, err := Resolve(name); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %q", ErrProfileDisabled, name)
	}
	key := customKey{name, stopwords, variants}
	r.mu.Lock()
	defer r.mu.Unlock()
	if pl, ok := r.customs[key]; ok {
		return pl, nil
	}
	p, err := ResolveWith(name, stopwords, variants)
	if err != nil {
		return nil, err
	}
	pl, err := Assemble(p, r.res)
	if err != nil {
		return nil, err
	}
	r.customs[key] = pl
	return pl, nil
}

// Names returns the enabled profile names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Profiles returns the resolved default profiles in registration order.
func (r *Registry) Profiles() []Profile {
	out := make([]Profile, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.byName[name].Profile())
	}
	return out
}
