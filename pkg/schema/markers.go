package schema

import "strings"

// Markers are placeholder tokens embedded in template markup. Two syntaxes are
// recognised: brace tokens like {name}, and data-field attributes like
// <span data-field="name">…</span> whose element text is the substitution
// target. Both are resolved by a small hand-rolled scanner; markup is never
// parsed into an AST.

const dataFieldAttr = `data-field="`

// Markers scans markup and returns the distinct marker ids it contains, in
// first-appearance order.
func Markers(markup string) []string {
	var (
		ids  []string
		seen = make(map[string]struct{})
	)
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for i := 0; i < len(markup); i++ {
		if markup[i] != '{' {
			continue
		}
		end := strings.IndexByte(markup[i+1:], '}')
		if end < 0 {
			break
		}
		token := markup[i+1 : i+1+end]
		if isMarkerID(token) {
			add(token)
			i += end + 1
		}
	}

	rest := markup
	for {
		at := strings.Index(rest, dataFieldAttr)
		if at < 0 {
			break
		}
		rest = rest[at+len(dataFieldAttr):]
		quote := strings.IndexByte(rest, '"')
		if quote < 0 {
			break
		}
		if id := rest[:quote]; isMarkerID(id) {
			add(id)
		}
		rest = rest[quote+1:]
	}

	return ids
}

// ReplaceMarker substitutes every occurrence of the field's markers in markup
// with value: each {id} token is replaced outright, and the text content of
// each data-field="id" element is rewritten. Value must already be escaped by
// the caller.
func ReplaceMarker(markup, id, value string) string {
	if id == "" {
		return markup
	}
	markup = strings.ReplaceAll(markup, "{"+id+"}", value)
	return replaceDataField(markup, id, value)
}

func replaceDataField(markup, id, value string) string {
	needle := dataFieldAttr + id + `"`
	var b strings.Builder
	for {
		at := strings.Index(markup, needle)
		if at < 0 {
			break
		}
		// Content starts after the element's closing '>' and runs to the next
		// tag. Attribute matches inside malformed markup fall through verbatim.
		open := strings.IndexByte(markup[at:], '>')
		if open < 0 {
			break
		}
		open += at + 1
		close := strings.IndexByte(markup[open:], '<')
		if close < 0 {
			break
		}
		b.WriteString(markup[:open])
		b.WriteString(value)
		markup = markup[open+close:]
	}
	b.WriteString(markup)
	return b.String()
}

// isMarkerID accepts the id shapes template authors use: letters, digits,
// underscore, hyphen and dot, starting with a letter or underscore.
func isMarkerID(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case i > 0 && (c >= '0' && c <= '9' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}
