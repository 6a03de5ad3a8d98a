package entity

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/joshuawscott/earmark/core"
)

// ErrEntitySyntax flags a numeric entity reference that cannot be decoded.
var ErrEntitySyntax = errors.New("malformed numeric entity reference")

var markupEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape converts markup-significant characters in text to entity
// references. With encode set, every ampersand is converted; otherwise
// an ampersand already heading a well-formed reference is kept as is.
func Escape(text string, encode bool) string {
	var b strings.Builder
	b.Grow(len(text) + 16)
	for i := 0; i < len(text); i++ {
		if text[i] != '&' {
			b.WriteByte(text[i])
			continue
		}
		if encode || !headsReference(text[i+1:]) {
			b.WriteString("&amp;")
		} else {
			b.WriteByte('&')
		}
	}
	return markupEscaper.Replace(b.String())
}

// headsReference reports whether rest completes an ampersand into a
// well-formed reference: an optional '#', one or more word characters,
// and a terminating ';'.
func headsReference(rest string) bool {
	if rest != "" && rest[0] == '#' {
		rest = rest[1:]
	}
	n := 0
	for n < len(rest) && isWordChar(rest[n]) {
		n++
	}
	return n > 0 && n < len(rest) && rest[n] == ';'
}

func isWordChar(c byte) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// Unescape decodes `&colon;` and numeric entity references in text and
// copies everything else verbatim. The scan is a single pass and never
// backtracks; each reference is consumed completely before the scan
// resumes after its ';'.
//
// A numeric reference that is not terminated, or whose digit run does not
// parse in its base, stops the decode with ErrEntitySyntax in the error
// chain.
func Unescape(text string) (string, error) {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		if text[i] != '&' {
			b.WriteByte(text[i])
			i++
			continue
		}
		switch {
		case strings.HasPrefix(text[i:], "&colon;"):
			b.WriteByte(':')
			i += len("&colon;")
		case strings.HasPrefix(text[i:], "&#x"):
			r, n, err := decodeNumeric(text[i+3:], 16, i)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += len("&#x") + n
		case strings.HasPrefix(text[i:], "&#"):
			r, n, err := decodeNumeric(text[i+2:], 10, i)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += len("&#") + n
		default:
			b.WriteByte('&')
			i++
		}
	}
	return b.String(), nil
}

// decodeNumeric scans a digit run terminated by ';' and returns the rune
// it denotes, plus the number of bytes consumed including the terminator.
// pos is the offset of the reference's '&' in the surrounding text, for
// error reporting.
func decodeNumeric(rest string, base int, pos int) (rune, int, error) {
	end := strings.IndexByte(rest, ';')
	if end < 0 {
		err := core.WrapError(ErrEntitySyntax, core.EINVALID,
			"numeric entity reference at byte %d is not terminated", pos)
		tracer().Errorf(err.Error())
		return 0, 0, err
	}
	v, perr := strconv.ParseUint(rest[:end], base, 32)
	if perr != nil || v > utf8.MaxRune {
		err := core.WrapError(ErrEntitySyntax, core.EINVALID,
			"numeric entity reference at byte %d does not denote a character", pos)
		tracer().Errorf(err.Error())
		return 0, 0, err
	}
	return rune(v), end + 1, nil
}
