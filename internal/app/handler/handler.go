// Package handler chains key handlers: the first one that claims a key wins.
package handler

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
)

// Handler claims a key by returning true, with an optional command.
type Handler func(key tea.KeyMsg) (bool, tea.Cmd)

// Chain offers key to handlers in order until one claims it.
func Chain(key tea.KeyMsg, handlers ...Handler) (bool, tea.Cmd) {
	for _, h := range handlers {
		if ok, cmd := h(key); ok {
			return true, cmd
		}
	}
	return false, nil
}

// Keys returns a handler that claims exactly the listed keys and calls fn.
// With no keys it claims nothing.
func Keys(fn func(key string) tea.Cmd, keys ...string) Handler {
	return func(msg tea.KeyMsg) (bool, tea.Cmd) {
		k := msg.String()
		if !slices.Contains(keys, k) {
			return false, nil
		}
		return true, fn(k)
	}
}
