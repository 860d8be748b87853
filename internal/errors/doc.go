// Package errors provides structured, actionable error values for mdom.
//
// Every failure raised by mdom itself (not by a host adapter's underlying
// platform) carries a registered code. The code maps to:
//   - A short message describing the failure
//   - A longer explanation
//   - A documentation URL
//
// # Error Categories
//
//   - runtime: misuse of a handle (unresolved reference, bad argument variant)
//   - host: failures raised by a host adapter (invalid tag, bad selector)
//   - command: malformed or unknown commands
//   - transport: websocket failures in the live server
//   - store: document storage failures
//   - config: mdom.json problems
//
// # Usage
//
//	err := errors.New("E001").
//	    WithDetail("attr(\"id\") was called on a handle built from \"#missing\"").
//	    WithSuggestion("Check the handle with Resolved() before using it")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E001: Handle has no referenced node
//	//
//	//   attr("id") was called on a handle built from "#missing"
//	//
//	//   Hint: Check the handle with Resolved() before using it
//	//
//	//   Learn more: https://mdom.dev/docs/errors/E001
//
// Two errors with the same code match under the standard library's
// errors.Is, so sentinel values such as dom.ErrUnresolved can be compared
// against errors that carry extra detail.
package errors
