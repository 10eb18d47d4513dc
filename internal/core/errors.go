package core

import "errors"

var (
	// ErrDuplicateID is returned when an identifier is declared twice.
	ErrDuplicateID = errors.New("core: duplicate id")

	// ErrUnknownDomain is returned for a manifest domain the catalog
	// does not contain.
	ErrUnknownDomain = errors.New("core: unknown component domain")
)
