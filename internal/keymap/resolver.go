package keymap

import "slices"

// Resolver looks up the action bound to a key within a set of contexts.
type Resolver struct {
	actions map[string]Action
	keys    map[Action][]string
}

// Global resolves the keys the application handles before any view.
var Global = NewResolver(All, ContextGlobal)

// Search resolves the keys of the search view.
var Search = NewResolver(All, ContextSearch)

// NewResolver indexes bindings. With no contexts every binding is kept.
// A key bound twice resolves to its last binding.
func NewResolver(bindings []Binding, contexts ...string) *Resolver {
	r := &Resolver{
		actions: make(map[string]Action),
		keys:    make(map[Action][]string),
	}
	for _, b := range bindings {
		if len(contexts) > 0 && !slices.Contains(contexts, b.Context) {
			continue
		}
		for _, k := range b.Keys {
			r.actions[k] = b.Action
			if !slices.Contains(r.keys[b.Action], k) {
				r.keys[b.Action] = append(r.keys[b.Action], k)
			}
		}
	}
	return r
}

// Resolve returns the action bound to key, or "" when there is none.
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

// KeysFor returns the keys bound to action in binding order.
func (r *Resolver) KeysFor(action Action) []string {
	return r.keys[action]
}
