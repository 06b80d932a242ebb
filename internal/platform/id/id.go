package id

import "github.com/oklog/ulid/v2"

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// ULID produces lexically sortable identifiers so session reports list in
// start order.
type ULID struct{}

func (ULID) New() string {
	return ulid.Make().String()
}
