package vdom

// event creates an EventHandler with the given name and handler.
func event(name string, handler any, opts []EventOption) EventHandler {
	return EventHandler{Event: name, Handler: handler, Options: opts}
}

// On handles an arbitrary event.
func On(name string, handler any, opts ...EventOption) EventHandler {
	return event(name, handler, opts)
}

// OnClick handles click events.
func OnClick(handler any, opts ...EventOption) EventHandler { return event("click", handler, opts) }

// OnDblClick handles double-click events.
func OnDblClick(handler any, opts ...EventOption) EventHandler {
	return event("dblclick", handler, opts)
}

// OnInput handles input events (fired when value changes).
func OnInput(handler any, opts ...EventOption) EventHandler { return event("input", handler, opts) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler any, opts ...EventOption) EventHandler { return event("change", handler, opts) }

// OnSubmit handles form submit events.
func OnSubmit(handler any, opts ...EventOption) EventHandler { return event("submit", handler, opts) }

// OnKeyDown handles keydown events.
func OnKeyDown(handler any, opts ...EventOption) EventHandler {
	return event("keydown", handler, opts)
}

// OnFocus handles focus events.
func OnFocus(handler any, opts ...EventOption) EventHandler { return event("focus", handler, opts) }

// OnBlur handles blur events.
func OnBlur(handler any, opts ...EventOption) EventHandler { return event("blur", handler, opts) }
