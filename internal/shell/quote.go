package shell

import "strings"

// Quote returns s as a single shell word. Strings made only of characters
// that no POSIX shell treats specially are returned unchanged; everything
// else is single-quoted, with embedded single quotes written as '\''.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, unsafe) == -1 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// '=' is excluded so a leading word is never read as an assignment, '~' so
// it is never tilde-expanded.
func unsafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	switch r {
	case '-', '_', '.', '/', '@', ':', ',', '+', '%':
		return false
	}
	return true
}

// Join quotes every element of argv and joins them with single spaces.
func Join(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = Quote(arg)
	}
	return strings.Join(quoted, " ")
}

// QuoteAssignment renders a KEY=VALUE pair with the value quoted.
func QuoteAssignment(kv string) string {
	key, value, ok := strings.Cut(kv, "=")
	if !ok {
		return Quote(kv)
	}
	return key + "=" + Quote(value)
}
