package records

import "strings"

// ParseBusinessNatures turns a "Business Nature" cell into its list of tags.
//
// Lists are used as given. Text wrapped in [...] is read as a list of quoted
// items (single or double quotes); when that fails the brackets and quotes
// are stripped and the rest is split on commas. Other text with commas is
// split on commas; anything else is a single tag. Tags are trimmed, blanks
// dropped, and repeated tags kept once in first-seen order.
func ParseBusinessNatures(v any) []string {
	var items []string
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		items = t
	case []any:
		items = make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := CoerceText(e); ok {
				items = append(items, s)
			}
		}
	default:
		s, ok := CoerceText(v)
		if !ok {
			return nil
		}
		switch {
		case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
			if parsed, ok := parseQuotedList(s[1 : len(s)-1]); ok {
				items = parsed
			} else {
				inner := strings.NewReplacer(`"`, "", "'", "").Replace(s[1 : len(s)-1])
				items = strings.Split(inner, ",")
			}
		case strings.Contains(s, ","):
			items = strings.Split(s, ",")
		default:
			items = []string{s}
		}
	}

	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		if _, dup := seen[it]; dup {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

// parseQuotedList reads `'a', "b c", 'd'`. Every item must be quoted. A
// backslash escapes the next character inside a quoted item.
func parseQuotedList(s string) ([]string, bool) {
	var (
		out []string
		i   int
	)
	skipSpace := func() {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
			i++
		}
	}
	skipSpace()
	if i == len(s) {
		return []string{}, true
	}
	for {
		skipSpace()
		if i >= len(s) {
			return nil, false
		}
		quote := s[i]
		if quote != '"' && quote != '\'' {
			return nil, false
		}
		i++
		var b strings.Builder
		closed := false
		for i < len(s) {
			c := s[i]
			if c == '\\' && i+1 < len(s) {
				b.WriteByte(s[i+1])
				i += 2
				continue
			}
			if c == quote {
				closed = true
				i++
				break
			}
			b.WriteByte(c)
			i++
		}
		if !closed {
			return nil, false
		}
		out = append(out, b.String())
		skipSpace()
		if i == len(s) {
			return out, true
		}
		if s[i] != ',' {
			return nil, false
		}
		i++
	}
}
