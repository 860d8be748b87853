package dom

import "sort"

// AccessKind discriminates the three accessor shapes.
type AccessKind uint8

const (
	accessInvalid AccessKind = iota
	AccessGet
	AccessSet
	AccessSetMany
)

// String returns the string representation of the AccessKind.
func (k AccessKind) String() string {
	switch k {
	case AccessGet:
		return "get"
	case AccessSet:
		return "set"
	case AccessSetMany:
		return "setMany"
	default:
		return "invalid"
	}
}

// Entry is one key/value pair of a bulk write.
type Entry struct {
	Key   string
	Value string
}

// E builds an Entry.
func E(key, value string) Entry {
	return Entry{Key: key, Value: value}
}

// Entries converts a map into entries sorted by key.
func Entries(m map[string]string) []Entry {
	entries := make([]Entry, 0, len(m))
	for k, v := range m {
		entries = append(entries, Entry{Key: k, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// Access is a read, a single-key write or a bulk write against a keyed
// property set. Build it with Get, Set, SetMany or Loose.
type Access struct {
	kind    AccessKind
	key     string
	value   string
	entries []Entry
}

// Get reads key.
func Get(key string) Access {
	return Access{kind: AccessGet, key: key}
}

// Set writes value to key. Empty values are written, not read.
func Set(key, value string) Access {
	return Access{kind: AccessSet, key: key, value: value}
}

// SetMany writes every entry in order.
func SetMany(entries ...Entry) Access {
	return Access{kind: AccessSetMany, entries: entries}
}

// Loose applies the truthiness convention: with no value, or an empty
// one, it reads key; otherwise it writes the first value.
func Loose(key string, value ...string) Access {
	if len(value) == 0 || value[0] == "" {
		return Get(key)
	}
	return Set(key, value[0])
}

// Kind returns the access shape.
func (a Access) Kind() AccessKind { return a.kind }

// Key returns the key of a Get or Set.
func (a Access) Key() string { return a.key }

// Value returns the value of a Set.
func (a Access) Value() string { return a.value }

// Entries returns the entries of a SetMany.
func (a Access) Entries() []Entry { return a.entries }

// Content is a read or write of a node's markup or text.
type Content struct {
	write bool
	value string
}

// Read reads the current content.
func Read() Content {
	return Content{}
}

// Write replaces the content with value, including the empty string.
func Write(value string) Content {
	return Content{write: true, value: value}
}

// LooseContent reads when no value, or an empty one, is supplied and
// writes otherwise.
func LooseContent(value ...string) Content {
	if len(value) == 0 || value[0] == "" {
		return Read()
	}
	return Write(value[0])
}

// IsWrite reports whether c writes.
func (c Content) IsWrite() bool { return c.write }

// Value returns the value written by c.
func (c Content) Value() string { return c.value }
