package uriparser

import "strings"

// repairComponents pre-scans raw and percent-encodes every byte outside the
// legal set for the component it lies in. It is kept in a single dedicated
// routine, run entirely before grammar descent, so that the non-repairing
// parse path never has to reason about partially-encoded input and error
// offsets stay unambiguous (see Parse's doc comment).
//
// Component boundaries are found the same way Parse finds them: first
// fragment (after the first '#'), then query (after the first remaining '?'),
// then whatever precedes that is treated as authority+path. A '?' inside the
// fragment component is left alone. Since only the first '#' introduces the
// fragment, no '#' is left in the query; any later '#' lies in the fragment
// and is encoded there.
func repairComponents(raw string) (string, error) {
	rest := raw
	fragment := ""
	hasFragment := false
	if idx := strings.IndexByte(rest, '#'); idx >= 0 {
		hasFragment = true
		fragment = rest[idx+1:]
		rest = rest[:idx]
	}

	query := ""
	hasQuery := false
	if idx := strings.IndexByte(rest, '?'); idx >= 0 {
		hasQuery = true
		query = rest[idx+1:]
		rest = rest[:idx]
	}

	authorityAndPath := rest

	var b strings.Builder
	b.WriteString(encodeComponent(authorityAndPath, isAuthorityOrPathChar))
	if hasQuery {
		b.WriteByte('?')
		b.WriteString(encodeComponent(query, isQueryRepairChar))
	}
	if hasFragment {
		b.WriteByte('#')
		b.WriteString(encodeComponent(fragment, isFragmentRepairChar))
	}
	return b.String(), nil
}

// isAuthorityOrPathChar allows everything legal in either authority or path
// position, since the repair pass runs before authority/path are split.
func isAuthorityOrPathChar(c byte) bool {
	return isUnreserved(c) || isSubDelim(c) || c == ':' || c == '@' || c == '[' || c == ']' || c == '/'
}

func isQueryRepairChar(c byte) bool {
	return isUnreserved(c) || isSubDelim(c) || c == ':' || c == '@' || c == '/' || c == '?'
}

func isFragmentRepairChar(c byte) bool {
	return isUnreserved(c) || isSubDelim(c) || c == ':' || c == '@' || c == '/' || c == '?'
}

const hexDigits = "0123456789ABCDEF"

// encodeComponent percent-encodes every byte that is neither allowed(c) nor
// part of an already-well-formed %HH escape.
func encodeComponent(s string, allowed func(byte) bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && isPctEncodedAt(s, i) {
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			b.WriteByte(s[i+2])
			i += 2
			continue
		}
		if allowed(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0F])
	}
	return b.String()
}
