package shell

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnterminatedQuote is returned when a quoted section is not closed.
	ErrUnterminatedQuote = errors.New("unterminated quote")

	// ErrTrailingBackslash is returned when input ends with an unpaired backslash.
	ErrTrailingBackslash = errors.New("trailing backslash")
)

// Split breaks s into words using POSIX shell quoting rules. Single quotes
// preserve everything literally; inside double quotes a backslash escapes
// only $, `, ", \ and newline; outside quotes a backslash escapes any byte
// and backslash-newline is a line continuation. Parameter, command and glob
// expansion are not performed.
func Split(s string) ([]string, error) {
	var (
		words  []string
		word   strings.Builder
		inWord bool
	)

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t', '\n':
			if inWord {
				words = append(words, word.String())
				word.Reset()
				inWord = false
			}

		case '\'':
			end := strings.IndexByte(s[i+1:], '\'')
			if end < 0 {
				return nil, fmt.Errorf("%w: single quote at offset %d", ErrUnterminatedQuote, i)
			}
			word.WriteString(s[i+1 : i+1+end])
			i += end + 1
			inWord = true

		case '"':
			next, err := readDoubleQuoted(s, i+1, &word)
			if err != nil {
				return nil, fmt.Errorf("%w: double quote at offset %d", err, i)
			}
			i = next
			inWord = true

		case '\\':
			if i+1 >= len(s) {
				return nil, ErrTrailingBackslash
			}
			i++
			if s[i] == '\n' {
				continue
			}
			word.WriteByte(s[i])
			inWord = true

		default:
			word.WriteByte(c)
			inWord = true
		}
	}

	if inWord {
		words = append(words, word.String())
	}
	return words, nil
}

// readDoubleQuoted consumes a double-quoted section starting just after the
// opening quote and returns the offset of the closing quote.
func readDoubleQuoted(s string, start int, word *strings.Builder) (int, error) {
	for j := start; j < len(s); j++ {
		d := s[j]
		if d == '"' {
			return j, nil
		}
		if d == '\\' && j+1 < len(s) {
			switch s[j+1] {
			case '$', '`', '"', '\\':
				word.WriteByte(s[j+1])
				j++
				continue
			case '\n':
				j++
				continue
			}
		}
		word.WriteByte(d)
	}
	return 0, ErrUnterminatedQuote
}
