// Package jshost implements dom.Host over the browser DOM via syscall/js.
//
// It is only functional in js/wasm builds; elsewhere Document returns
// ErrUnsupported so that callers can choose another host.
//
//	host, err := jshost.Document()
//	if err != nil {
//	    return err
//	}
//	btn, _ := dom.Query(host, "#save")
//	btn.On("click", func(e dom.Event) { ... })
package jshost

import "github.com/vango-dev/mdom/internal/errors"

// ErrUnsupported is returned outside js/wasm builds.
var ErrUnsupported = errors.New("E023").WithDetail("the browser DOM host is only available in js/wasm builds")
