package domain

import "strings"

// SimpleName returns the rightmost segment of a dotted name: "api.v1.User" -> "User".
func SimpleName(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Namespace returns everything before the rightmost segment of a dotted name.
func Namespace(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i]
	}
	return ""
}

func fullTypeName(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ".")
}

// IsKeyword reports whether name is a predefined TypeScript type.
func IsKeyword(name string) bool {
	switch name {
	case KeywordString, KeywordNumber, KeywordBoolean, KeywordAny, KeywordObject,
		KeywordUnknown, KeywordVoid, KeywordNull, KeywordUndefined, KeywordNever:
		return true
	}
	return false
}

// SplitTypeArguments splits the argument list of a generic type name at
// top-level commas: "A, Map<B, C>" -> ["A", "Map<B, C>"]. Returns nil when
// the brackets are unbalanced.
func SplitTypeArguments(list string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, c := range list {
		switch c {
		case '<', '[', '{', '(':
			depth++
		case '>', ']', '}', ')':
			depth--
			if depth < 0 {
				return nil
			}
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(list[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil
	}
	if last := strings.TrimSpace(list[start:]); last != "" {
		parts = append(parts, last)
	}
	return parts
}
