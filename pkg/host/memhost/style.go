package memhost

import (
	"strings"
	"unicode"

	"github.com/gorilla/css/scanner"
)

type declaration struct {
	property string
	value    string
}

// declarations is an inline style block in source order.
type declarations []declaration

// parseStyle reads a style attribute. Malformed declarations are
// dropped, as a browser would.
func parseStyle(raw string) declarations {
	var (
		out      declarations
		property string
		value    strings.Builder
		inValue  bool
		depth    int
	)
	flush := func() {
		v := strings.TrimSpace(value.String())
		if property != "" && v != "" {
			out = out.set(property, v)
		}
		property, inValue, depth = "", false, 0
		value.Reset()
	}

	s := scanner.New(raw)
	for {
		tok := s.Next()
		if tok.Type == scanner.TokenEOF || tok.Type == scanner.TokenError {
			break
		}
		if tok.Type == scanner.TokenComment {
			continue
		}
		if !inValue {
			switch {
			case tok.Type == scanner.TokenIdent && property == "":
				property = strings.ToLower(tok.Value)
			case tok.Type == scanner.TokenChar && tok.Value == ":" && property != "":
				inValue = true
			case tok.Type == scanner.TokenChar && tok.Value == ";":
				flush()
			case tok.Type == scanner.TokenS:
			default:
				// Garbage before the colon drops the declaration.
				property = ""
			}
			continue
		}
		switch {
		case tok.Type == scanner.TokenFunction:
			depth++
		case tok.Type == scanner.TokenChar && tok.Value == ")" && depth > 0:
			depth--
		case tok.Type == scanner.TokenChar && tok.Value == ";" && depth == 0:
			flush()
			continue
		}
		value.WriteString(tok.Value)
	}
	flush()
	return out
}

// validStyleValue reports whether value parses back as exactly one
// declaration value.
func validStyleValue(value string) bool {
	d := parseStyle("x: " + value)
	return len(d) == 1 && d[0].value == value
}

func (d declarations) get(property string) string {
	for _, decl := range d {
		if decl.property == property {
			return decl.value
		}
	}
	return ""
}

// set updates property in place, appends it, or removes it when value
// is empty.
func (d declarations) set(property, value string) declarations {
	for i, decl := range d {
		if decl.property != property {
			continue
		}
		if value == "" {
			return append(d[:i:i], d[i+1:]...)
		}
		d[i].value = value
		return d
	}
	if value == "" {
		return d
	}
	return append(d, declaration{property: property, value: value})
}

// String serialises the block the way browsers reflect it.
func (d declarations) String() string {
	var b strings.Builder
	for i, decl := range d {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(decl.property)
		b.WriteString(": ")
		b.WriteString(decl.value)
		b.WriteString(";")
	}
	return b.String()
}

// cssProperty maps script-style names (backgroundColor, cssFloat,
// webkitTransform) to CSS property names.
func cssProperty(name string) string {
	if name == "cssFloat" {
		return "float"
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	for _, vendor := range []string{"webkit", "moz", "ms", "o"} {
		if len(name) > len(vendor) && strings.HasPrefix(name, vendor) && unicode.IsUpper(rune(name[len(vendor)])) {
			return "-" + vendor + cssProperty(name[len(vendor):])
		}
	}
	var b strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
