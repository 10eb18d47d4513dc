package manifest

import "errors"

var (
	// ErrInvalidManifest is returned for documents that are not a
	// mapping of domains to entry lists.
	ErrInvalidManifest = errors.New("manifest: invalid document")
)
