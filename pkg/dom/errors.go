package dom

import "github.com/vango-dev/mdom/internal/errors"

// Sentinel errors. Compare with errors.Is; the returned errors carry
// extra detail but share the code.
var (
	// ErrUnresolved is returned by every operation on a handle without a node.
	ErrUnresolved = errors.New("E001")

	// ErrUnknownAccess is returned for a zero or foreign Access value.
	ErrUnknownAccess = errors.New("E002")

	// ErrUnknownItem is returned for a zero Item.
	ErrUnknownItem = errors.New("E003")
)

func unresolved(op string) error {
	return errors.New("E001").
		WithDetailf("%s called on an unresolved handle", op).
		WithSuggestion("check Resolved() before using handles built from a selector")
}
