// Package data bundles the default catalog document.
package data

import _ "embed"

//go:embed products.json
var Products []byte
