package entity

import "errors"

// ErrNameRequired is returned when Setup receives a block without a name.
var ErrNameRequired = errors.New("entity: name is required")
