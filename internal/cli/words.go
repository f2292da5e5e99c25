package cli

import (
	"errors"
	"strings"
	"unicode"
)

var errUnterminatedQuote = errors.New("unterminated quoted word")

// splitWords splits a shell line on runs of whitespace. A word wrapped in
// double quotes may hold spaces, and "" inside it is a literal quote, the
// same rule CSV uses for fields. Backslashes and # are ordinary characters.
func splitWords(line string) ([]string, error) {
	var words []string
	var b strings.Builder
	inWord, quoted := false, false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if quoted {
			if r != '"' {
				b.WriteRune(r)
				continue
			}
			if i+1 < len(runes) && runes[i+1] == '"' {
				b.WriteRune('"')
				i++
				continue
			}
			quoted = false
			continue
		}

		if unicode.IsSpace(r) {
			if inWord {
				words = append(words, b.String())
				b.Reset()
				inWord = false
			}
			continue
		}

		if r == '"' && !inWord {
			inWord, quoted = true, true
			continue
		}
		inWord = true
		b.WriteRune(r)
	}

	if quoted {
		return nil, errUnterminatedQuote
	}
	if inWord {
		words = append(words, b.String())
	}
	return words, nil
}
