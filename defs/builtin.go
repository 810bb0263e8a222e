package defs

import (
	_ "embed"
)

//go:embed data/manifest.json
var builtinManifest []byte

// Builtin returns a Library over the manifest embedded in the binary. The
// embedded set is a starter dataset; point -manifest at a full content dump
// for real inventories.
func Builtin() *Library {
	l, err := New(builtinManifest)
	if err != nil {
		// The embedded manifest is validated by tests; reaching this means
		// the binary itself is broken.
		panic("defs: embedded manifest invalid: " + err.Error())
	}
	return l
}
