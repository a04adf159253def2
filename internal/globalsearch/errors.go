package globalsearch

import "errors"

var (
	// ErrEngineRequired is returned by New when no engine is given.
	ErrEngineRequired = errors.New("globalsearch: engine is required")
	// ErrDuplicateProvider is reported when a provider is added twice.
	ErrDuplicateProvider = errors.New("tried to add the same provider twice")
	// ErrUnknownProvider is reported when removing or toggling a provider
	// that was never added.
	ErrUnknownProvider = errors.New("provider hasn't been added")
)
