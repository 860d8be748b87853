// Package rodhost implements dom.Host over a live Chromium page driven
// through the DevTools protocol with go-rod.
//
// Every node operation is a remote call; failures surface as E024 errors
// wrapping the rod error. Listeners are bridged back to Go through page
// bindings created with Page.Expose.
//
//	host, closeFn, err := rodhost.Open(ctx, rodhost.Options{URL: "https://example.com"})
//	if err != nil {
//	    return err
//	}
//	defer closeFn()
//	title, _ := dom.Query(host, "h1")
//	text, _ := title.Text(dom.Read())
package rodhost
