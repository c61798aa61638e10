package java

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// unescape interprets the escape sequences of a Java string literal body
func unescape(text string) (string, error) {
	if !strings.Contains(text, `\`) {
		return text, nil
	}
	var units []uint16
	appendRune := func(r rune) {
		units = append(units, utf16.Encode([]rune{r})...)
	}
	for i := 0; i < len(text); {
		if text[i] != '\\' {
			r, size := utf8.DecodeRuneInString(text[i:])
			appendRune(r)
			i += size
			continue
		}
		if i+1 >= len(text) {
			return "", fmt.Errorf("dangling escape at %d", i)
		}
		next := text[i+1]
		switch next {
		case 'b':
			appendRune('\b')
		case 't':
			appendRune('\t')
		case 'n':
			appendRune('\n')
		case 'f':
			appendRune('\f')
		case 'r':
			appendRune('\r')
		case 's':
			appendRune(' ')
		case '"', '\'', '\\':
			appendRune(rune(next))
		case 'u':
			j := i + 1
			for j < len(text) && text[j] == 'u' {
				j++
			}
			if j+4 > len(text) {
				return "", fmt.Errorf("truncated unicode escape at %d", i)
			}
			value, err := strconv.ParseUint(text[j:j+4], 16, 16)
			if err != nil {
				return "", fmt.Errorf("invalid unicode escape at %d: %w", i, err)
			}
			units = append(units, uint16(value))
			i = j + 4
			continue
		default:
			if next < '0' || next > '7' {
				return "", fmt.Errorf("invalid escape \\%c at %d", next, i)
			}
			limit := 2
			if next <= '3' {
				limit = 3
			}
			j := i + 1
			for j < len(text) && j-(i+1) < limit && text[j] >= '0' && text[j] <= '7' {
				j++
			}
			value, err := strconv.ParseUint(text[i+1:j], 8, 16)
			if err != nil {
				return "", fmt.Errorf("invalid octal escape at %d: %w", i, err)
			}
			appendRune(rune(value))
			i = j
			continue
		}
		i += 2
	}
	return string(utf16.Decode(units)), nil
}
