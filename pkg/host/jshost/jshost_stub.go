//go:build !js || !wasm

package jshost

import "github.com/vango-dev/mdom/pkg/dom"

// Document returns ErrUnsupported outside js/wasm builds.
func Document() (dom.Host, error) {
	return nil, ErrUnsupported
}
