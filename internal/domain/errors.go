package domain

import "errors"

var (
	// ErrCatalogNotFound indicates the catalog content could not be loaded.
	ErrCatalogNotFound = errors.New("catalog not found")
	// ErrInvalidCatalog is returned when a catalog fails validation.
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrSessionNotFound is returned when a page session is not registered.
	ErrSessionNotFound = errors.New("page session not found")
	// ErrUnknownSection indicates a navigation target that does not exist.
	ErrUnknownSection = errors.New("unknown section")
)
