package gcode

import (
	"strconv"
	"strings"
)

// Line is a single raw line of a G-code file. Raw always holds the
// original text, terminator included, so pass-through lines can be
// written back byte for byte. Words holds every letter-number pair
// recognized on the line; Leftover holds any non-comment text the
// lexer could not attach to a word.
type Line struct {
	Raw      string
	Words    Block
	Leftover string
}

// HasPrefix reports whether the line's trimmed text begins with code,
// ignoring case.
func (ln Line) HasPrefix(code string) bool {
	s := strings.TrimSpace(ln.Raw)
	return len(s) >= len(code) && strings.EqualFold(s[:len(code)], code)
}

// Code returns the line's leading command word.
func (ln Line) Code() (Word, bool) {
	if len(ln.Words) == 0 {
		return Word{}, false
	}
	return ln.Words[0], true
}

// ParseLine lexes one raw line. The lexer is permissive: a letter
// followed by anything the numeric grammar rejects produces no word,
// and the first occurrence of a letter with a number wins (see
// Block.Arg). The original text is never altered.
func ParseLine(raw string) Line {
	ln := Line{Raw: raw}

	var leftover strings.Builder
	inComment := false
	for i := 0; i < len(raw); {
		c := raw[i]
		if c == ';' {
			inComment = true
		}
		up := c
		if up >= 'a' && up <= 'z' {
			up -= 'a' - 'A'
		}
		if up >= 'A' && up <= 'Z' {
			if n, arg, ok := lexNumber(raw[i+1:]); ok {
				ln.Words = append(ln.Words, Word{W: up, Arg: arg})
				i += 1 + n
				continue
			}
		}
		if !inComment && c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			leftover.WriteByte(c)
		}
		i++
	}
	ln.Leftover = leftover.String()

	return ln
}

// lexNumber reads a signed decimal from the start of s: an optional
// minus sign, digits, and an optional fractional part. A trailing dot
// with no fraction is left unconsumed. Returns the number of bytes
// consumed.
func lexNumber(s string) (int, float64, bool) {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	intDigits := i - start

	dot := -1
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		dot = i
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		fracDigits = i - dot - 1
	}

	if intDigits == 0 && fracDigits == 0 {
		return 0, 0, false
	}
	if dot >= 0 && fracDigits == 0 {
		i = dot
		if intDigits == 0 {
			return 0, 0, false
		}
	}

	val, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, 0, false
	}
	return i, val, true
}
