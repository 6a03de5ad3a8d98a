package inline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joshuawscott/earmark/core/entity"
	"github.com/joshuawscott/earmark/core/message"
)

// Convert renders the inline spans of text to markup through
// ctx.Renderer. lnb is the source line of the enclosing block, used for
// diagnostics. A decode fault in an entity reference aborts the
// conversion.
func Convert(text string, lnb int, ctx *Context) (string, []message.Message, error) {
	sc := &scanner{src: text, lnb: lnb, ctx: ctx}
	if err := sc.run(); err != nil {
		return "", sc.msgs, err
	}
	return sc.out.String(), sc.msgs, nil
}

type scanner struct {
	src  string
	pos  int
	lnb  int
	ctx  *Context
	out  strings.Builder
	text strings.Builder // pending plain-text run
	msgs []message.Message
}

func (sc *scanner) run() error {
	for sc.pos < len(sc.src) {
		var err error
		switch sc.src[sc.pos] {
		case '\\':
			sc.backslash()
		case '`':
			sc.codespan()
		case '*', '_':
			err = sc.emphasis()
		case '~':
			err = sc.strikethrough()
		case '[':
			err = sc.bracket()
		case '!':
			err = sc.image()
		case '<':
			err = sc.angle()
		case ' ':
			sc.spaces()
		case '\n':
			sc.newline()
		default:
			sc.text.WriteByte(sc.src[sc.pos])
			sc.pos++
		}
		if err != nil {
			return err
		}
	}
	sc.flush()
	return nil
}

var pureLinkPat = regexp.MustCompile(`\bhttps?://[^\s<>]+`)

// flush emits the pending plain-text run: bare URLs are autolinked when
// enabled, the typographic pass applied, the remainder escaped.
func (sc *scanner) flush() {
	if sc.text.Len() == 0 {
		return
	}
	chunk := sc.text.String()
	sc.text.Reset()
	if !sc.ctx.Options.PureLinks {
		sc.emitText(chunk)
		return
	}
	prev := 0
	for _, loc := range pureLinkPat.FindAllStringIndex(chunk, -1) {
		url := strings.TrimRight(chunk[loc[0]:loc[1]], ".,:;!?")
		sc.emitText(chunk[prev:loc[0]])
		sc.out.WriteString(sc.ctx.Renderer.Link(url, entity.Escape(url, false)))
		prev = loc[0] + len(url)
	}
	sc.emitText(chunk[prev:])
}

func (sc *scanner) emitText(s string) {
	if s == "" {
		return
	}
	if sc.ctx.Options.SmartyPants {
		s = smartypants(s)
	}
	sc.out.WriteString(entity.Escape(s, false))
}

const escapable = "\\`*{}[]()#+-.!_>~|\"'"

func (sc *scanner) backslash() {
	if sc.pos+1 < len(sc.src) {
		next := sc.src[sc.pos+1]
		if next == '\n' {
			sc.flush()
			sc.out.WriteString(sc.ctx.Renderer.Linebreak())
			sc.out.WriteByte('\n')
			sc.pos += 2
			return
		}
		if strings.IndexByte(escapable, next) >= 0 {
			sc.text.WriteByte(next)
			sc.pos += 2
			return
		}
	}
	sc.text.WriteByte('\\')
	sc.pos++
}

func (sc *scanner) codespan() {
	ticks := runLen(sc.src[sc.pos:], '`')
	rest := sc.src[sc.pos+ticks:]
	end := closingRun(rest, '`', ticks)
	if end < 0 {
		sc.text.WriteByte('`')
		sc.pos++
		return
	}
	content := strings.TrimSpace(rest[:end])
	if content == "" {
		sc.text.WriteByte('`')
		sc.pos++
		return
	}
	sc.flush()
	sc.out.WriteString(sc.ctx.Renderer.Codespan(entity.Escape(content, true)))
	sc.pos += ticks + end + ticks
}

func (sc *scanner) emphasis() error {
	c := sc.src[sc.pos]
	// an underscore inside a word stays literal
	if c == '_' && sc.pos > 0 && isAlnum(sc.src[sc.pos-1]) {
		sc.text.WriteByte(c)
		sc.pos++
		return nil
	}
	if done, err := sc.spanned(strings.Repeat(string(c), 2), sc.ctx.Renderer.Strong); done || err != nil {
		return err
	}
	if done, err := sc.spanned(string(c), sc.ctx.Renderer.Em); done || err != nil {
		return err
	}
	sc.text.WriteByte(c)
	sc.pos++
	return nil
}

func (sc *scanner) strikethrough() error {
	if sc.ctx.Options.GFM {
		if done, err := sc.spanned("~~", sc.ctx.Renderer.Strikethrough); done || err != nil {
			return err
		}
	}
	sc.text.WriteByte('~')
	sc.pos++
	return nil
}

// spanned emits a delimited span opened by marker at the scan position:
// the inner text is converted recursively and handed to emit. Reports
// whether a span was emitted.
func (sc *scanner) spanned(marker string, emit func(string) string) (bool, error) {
	inner, width := delimitedSpan(sc.src[sc.pos:], marker)
	if width < 0 {
		return false, nil
	}
	converted, msgs, err := Convert(inner, sc.lnb, sc.ctx)
	sc.msgs = append(sc.msgs, msgs...)
	if err != nil {
		return false, err
	}
	sc.flush()
	sc.out.WriteString(emit(converted))
	sc.pos += width
	return true, nil
}

var footnotePat = regexp.MustCompile(`^\[\^([^\]\s]+)\]`)

func (sc *scanner) bracket() error {
	rest := sc.src[sc.pos:]
	if sc.ctx.Options.Footnotes {
		if m := footnotePat.FindStringSubmatch(rest); m != nil {
			if fn, ok := sc.ctx.Footnotes[m[1]]; ok {
				sc.flush()
				sc.out.WriteString(sc.ctx.Renderer.FootnoteLink(
					fmt.Sprintf("fn:%d", fn.Number),
					fmt.Sprintf("fnref:%d", fn.Number),
					fn.Number))
				sc.pos += len(m[0])
				return nil
			}
		}
	}
	if sc.ctx.Options.WikiLinks && strings.HasPrefix(rest, "[[") {
		if end := strings.Index(rest, "]]"); end > 2 {
			page := rest[2:end]
			sc.flush()
			sc.out.WriteString(sc.ctx.Renderer.Link(page, entity.Escape(page, false)))
			sc.pos += end + 2
			return nil
		}
	}
	return sc.link(false)
}

func (sc *scanner) image() error {
	if sc.pos+1 < len(sc.src) && sc.src[sc.pos+1] == '[' {
		return sc.link(true)
	}
	sc.text.WriteByte('!')
	sc.pos++
	return nil
}

// link handles the inline, reference and shortcut forms; for images the
// scan position sits on the leading '!'.
func (sc *scanner) link(isImage bool) error {
	base := sc.pos
	if isImage {
		base++
	}
	inner, bw := bracketSpan(sc.src[base:])
	if bw < 0 {
		sc.text.WriteByte(sc.src[sc.pos])
		sc.pos++
		return nil
	}
	after := base + bw
	if after < len(sc.src) && sc.src[after] == '(' {
		if url, title, pw := parenTarget(sc.src[after:]); pw >= 0 {
			href, err := entity.Unescape(url)
			if err != nil {
				return err
			}
			return sc.emitLink(isImage, href, title, inner, after+pw-sc.pos)
		}
	}
	id, width := inner, after-sc.pos
	if after < len(sc.src) && sc.src[after] == '[' {
		if refInner, rw := bracketSpan(sc.src[after:]); rw >= 0 {
			if refInner != "" {
				id = refInner
			}
			width = after + rw - sc.pos
		}
	}
	if def, ok := sc.ctx.Links[strings.ToLower(id)]; ok {
		href, err := entity.Unescape(def.URL)
		if err != nil {
			return err
		}
		return sc.emitLink(isImage, href, def.Title, inner, width)
	}
	sc.text.WriteByte(sc.src[sc.pos])
	sc.pos++
	return nil
}

func (sc *scanner) emitLink(isImage bool, href, title, inner string, width int) error {
	sc.flush()
	if isImage {
		sc.out.WriteString(sc.ctx.Renderer.Image(href, entity.Escape(inner, false), title))
	} else {
		text, msgs, err := Convert(inner, sc.lnb, sc.ctx)
		sc.msgs = append(sc.msgs, msgs...)
		if err != nil {
			return err
		}
		if title != "" {
			sc.out.WriteString(sc.ctx.Renderer.LinkTitle(href, title, text))
		} else {
			sc.out.WriteString(sc.ctx.Renderer.Link(href, text))
		}
	}
	sc.pos += width
	return nil
}

var (
	autolinkPat  = regexp.MustCompile(`^<([a-zA-Z][a-zA-Z0-9+.-]*:[^'">\s]+)>`)
	emailPat     = regexp.MustCompile(`^<([^'">\s]+@[^'">\s]+\.[^'">\s]+)>`)
	inlineTagPat = regexp.MustCompile(`^(?:<!--[\s\S]*?-->|</?[A-Za-z][\w-]*(?:"[^"]*"|'[^']*'|[^'">])*>)`)
)

func (sc *scanner) angle() error {
	rest := sc.src[sc.pos:]
	if m := autolinkPat.FindStringSubmatch(rest); m != nil {
		href, err := entity.Unescape(m[1])
		if err != nil {
			return err
		}
		sc.flush()
		sc.out.WriteString(sc.ctx.Renderer.Link(href, entity.Escape(m[1], false)))
		sc.pos += len(m[0])
		return nil
	}
	if m := emailPat.FindStringSubmatch(rest); m != nil {
		sc.flush()
		sc.out.WriteString(sc.ctx.Renderer.Link("mailto:"+m[1], entity.Escape(m[1], false)))
		sc.pos += len(m[0])
		return nil
	}
	if m := inlineTagPat.FindString(rest); m != "" {
		sc.flush()
		sc.out.WriteString(m)
		sc.pos += len(m)
		return nil
	}
	sc.text.WriteByte('<')
	sc.pos++
	return nil
}

func (sc *scanner) spaces() {
	run := runLen(sc.src[sc.pos:], ' ')
	if run >= 2 && sc.pos+run < len(sc.src) && sc.src[sc.pos+run] == '\n' {
		sc.flush()
		sc.out.WriteString(sc.ctx.Renderer.Linebreak())
		sc.out.WriteByte('\n')
		sc.pos += run + 1
		return
	}
	sc.text.WriteString(sc.src[sc.pos : sc.pos+run])
	sc.pos += run
}

func (sc *scanner) newline() {
	if sc.ctx.Options.Breaks {
		sc.flush()
		sc.out.WriteString(sc.ctx.Renderer.Linebreak())
		sc.out.WriteByte('\n')
	} else {
		sc.text.WriteByte('\n')
	}
	sc.pos++
}

// runLen counts the leading run of c in s.
func runLen(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

// closingRun finds the first run of exactly n times c in s that closes a
// non-empty span, returning its start, or -1.
func closingRun(s string, c byte, n int) int {
	for i := 0; i < len(s); {
		if s[i] != c {
			i++
			continue
		}
		m := runLen(s[i:], c)
		if m == n && i > 0 {
			return i
		}
		i += m
	}
	return -1
}

// delimitedSpan locates the span opened by marker at the start of s,
// returning the inner text and the total width including both delimiter
// runs, or -1 when the span never closes. The span must hug its content:
// no whitespace after the opener or before the closer. A run of the
// marker character longer than the marker closes end-aligned, leaving
// the surplus to the inner text; for single-character markers an even
// run stays inside the span entirely, which keeps nested strong emphasis
// intact.
func delimitedSpan(s, marker string) (string, int) {
	ml := len(marker)
	if !strings.HasPrefix(s, marker) {
		return "", -1
	}
	if len(s) <= ml || isSpaceByte(s[ml]) {
		return "", -1
	}
	c := marker[0]
	for i := ml; i < len(s); {
		if s[i] != c {
			i++
			continue
		}
		run := runLen(s[i:], c)
		closes := run >= ml
		if ml == 1 && run%2 == 0 {
			closes = false
		}
		if closes {
			end := i + run - ml
			if end > ml && !isSpaceByte(s[end-1]) {
				return s[ml:end], end + ml
			}
		}
		i += run
	}
	return "", -1
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

// bracketSpan returns the text inside a balanced bracket pair starting
// s, plus the width including both brackets, or -1.
func bracketSpan(s string) (string, int) {
	if s == "" || s[0] != '[' {
		return "", -1
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[1:i], i + 1
			}
		}
	}
	return "", -1
}

var (
	dqTitlePat = regexp.MustCompile(`^(.*?)\s+"([^"]*)"$`)
	sqTitlePat = regexp.MustCompile(`^(.*?)\s+'([^']*)'$`)
)

// parenTarget splits the parenthesized target of an inline link into the
// URL and an optional quoted title, returning the width including both
// parentheses, or -1. Nested balanced parentheses stay part of the URL.
func parenTarget(s string) (url, title string, width int) {
	if s == "" || s[0] != '(' {
		return "", "", -1
	}
	depth, end := 0, -1
scan:
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				end = i
				break scan
			}
		}
	}
	if end < 0 {
		return "", "", -1
	}
	content := strings.TrimSpace(s[1:end])
	url = content
	if m := dqTitlePat.FindStringSubmatch(content); m != nil {
		url, title = strings.TrimSpace(m[1]), m[2]
	} else if m := sqTitlePat.FindStringSubmatch(content); m != nil {
		url, title = strings.TrimSpace(m[1]), m[2]
	}
	url = strings.TrimPrefix(url, "<")
	url = strings.TrimSuffix(url, ">")
	return url, title, end + 1
}

func isAlnum(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
