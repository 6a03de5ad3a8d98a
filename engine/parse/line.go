package parse

import (
	"regexp"
	"strings"

	"github.com/joshuawscott/earmark/core/options"
	"github.com/joshuawscott/earmark/engine/block"
)

// lineKind is the context-free class of one source line. Assembly into
// blocks happens afterwards, in the parser.
type lineKind int

const (
	kindBlank lineKind = iota
	kindRuler
	kindHeading
	kindSetext
	kindBlockQuote
	kindIndent
	kindFence
	kindHtmlOpen
	kindHtmlClose
	kindHtmlOneLine
	kindHtmlComment
	kindIdDef
	kindFnDef
	kindIal
	kindListItem
	kindTableRow
	kindPlugin
	kindText
)

// line is one classified source line. text always holds the full line;
// the remaining fields are filled per kind.
type line struct {
	kind lineKind
	text string
	lnb  int

	content  string // payload: heading text, quoted text, list item text …
	level    int    // heading (1–6), setext underline (1 or 2)
	ruler    block.RulerType
	listType block.ListType
	fence    byte   // fence delimiter character
	language string // fence info string
	tag      string // html tag name
	complete bool   // html comment closed on the same line
	id       string // link reference or footnote label
	url      string
	title    string
	prefix   string // plugin prefix
}

var (
	rulerThinPat   = regexp.MustCompile(`^\s{0,3}-(?:\s*-){2,}\s*$`)
	rulerMediumPat = regexp.MustCompile(`^\s{0,3}_(?:\s*_){2,}\s*$`)
	rulerThickPat  = regexp.MustCompile(`^\s{0,3}\*(?:\s*\*){2,}\s*$`)
	headingPat     = regexp.MustCompile(`^(#{1,6})\s+(.*?)\s*#*\s*$`)
	blockQuotePat  = regexp.MustCompile(`^\s{0,3}>\s?(.*)$`)
	fencePat       = regexp.MustCompile("^\\s{0,3}(`{3,}|~{3,})\\s*([^`\\s]*)\\s*$")
	htmlCommentPat = regexp.MustCompile(`^<!--`)
	htmlOpenPat    = regexp.MustCompile(`^<([a-zA-Z][-\w]*)(?:\s[^>]*)?/?>`)
	htmlClosePat   = regexp.MustCompile(`^</([a-zA-Z][-\w]*)>\s*$`)
	idDefPat       = regexp.MustCompile(`^\s{0,3}\[([^\]]+)\]:\s*(\S+)(?:\s+(.+?))?\s*$`)
	idTitlePat     = regexp.MustCompile(`^["'(](.*)["')]$`)
	fnDefPat       = regexp.MustCompile(`^\s{0,3}\[\^([^\]\s]+)\]:\s*(.*)$`)
	bulletPat      = regexp.MustCompile(`^\s{0,3}[-*+]\s+(.*)$`)
	orderedPat     = regexp.MustCompile(`^\s{0,3}\d+\.\s+(.*)$`)
	setextPat      = regexp.MustCompile(`^(=+|-+)\s*$`)
	ialLinePat     = regexp.MustCompile(`^\s{0,3}\{:\s*([^}]+?)\s*\}\s*$`)
	pluginPat      = regexp.MustCompile(`^\$\$(\S*)\s?(.*)$`)
)

// Tags that never take a closing counterpart. An opening line of one of
// these is self-contained.
var voidTags = map[string]bool{
	"area": true, "br": true, "hr": true, "img": true, "wbr": true,
}

func indentWidth(s string) int {
	n := 0
	for n < len(s) && s[n] == ' ' {
		n++
	}
	return n
}

// classify types one source line. Classification is local: no state from
// neighboring lines enters here. GFM gates table rows, the footnote
// option gates definition lines.
func classify(text string, lnb int, opts *options.Options) line {
	ln := line{kind: kindText, text: text, lnb: lnb, content: text}
	if strings.TrimSpace(text) == "" {
		ln.kind = kindBlank
		ln.content = ""
		return ln
	}
	if htmlCommentPat.MatchString(text) {
		ln.kind = kindHtmlComment
		ln.complete = strings.Contains(text, "-->")
		return ln
	}
	switch {
	case rulerThinPat.MatchString(text):
		ln.kind, ln.ruler = kindRuler, block.RulerThin
		return ln
	case rulerMediumPat.MatchString(text):
		ln.kind, ln.ruler = kindRuler, block.RulerMedium
		return ln
	case rulerThickPat.MatchString(text):
		ln.kind, ln.ruler = kindRuler, block.RulerThick
		return ln
	}
	if m := headingPat.FindStringSubmatch(text); m != nil {
		ln.kind, ln.level, ln.content = kindHeading, len(m[1]), m[2]
		return ln
	}
	if m := blockQuotePat.FindStringSubmatch(text); m != nil {
		ln.kind, ln.content = kindBlockQuote, m[1]
		return ln
	}
	if indentWidth(text) >= 4 {
		ln.kind, ln.content = kindIndent, text[4:]
		return ln
	}
	if m := fencePat.FindStringSubmatch(text); m != nil {
		ln.kind, ln.fence, ln.language = kindFence, m[1][0], m[2]
		return ln
	}
	if m := htmlOpenPat.FindStringSubmatch(text); m != nil {
		ln.tag = m[1]
		switch {
		case strings.Contains(text, "</"+ln.tag+">"),
			strings.HasSuffix(strings.TrimSpace(text), "/>"),
			voidTags[strings.ToLower(ln.tag)]:
			ln.kind = kindHtmlOneLine
		default:
			ln.kind = kindHtmlOpen
		}
		return ln
	}
	if m := htmlClosePat.FindStringSubmatch(text); m != nil {
		ln.kind, ln.tag = kindHtmlClose, m[1]
		return ln
	}
	if opts.Footnotes {
		if m := fnDefPat.FindStringSubmatch(text); m != nil {
			ln.kind, ln.id, ln.content = kindFnDef, m[1], m[2]
			return ln
		}
	}
	if m := idDefPat.FindStringSubmatch(text); m != nil {
		ln.kind, ln.id, ln.url = kindIdDef, m[1], m[2]
		if t := idTitlePat.FindStringSubmatch(m[3]); t != nil {
			ln.title = t[1]
		}
		return ln
	}
	if m := bulletPat.FindStringSubmatch(text); m != nil {
		ln.kind, ln.listType, ln.content = kindListItem, block.Unordered, m[1]
		return ln
	}
	if m := orderedPat.FindStringSubmatch(text); m != nil {
		ln.kind, ln.listType, ln.content = kindListItem, block.Ordered, m[1]
		return ln
	}
	if opts.GFM && isTableLine(text) {
		ln.kind = kindTableRow
		return ln
	}
	if m := setextPat.FindStringSubmatch(text); m != nil {
		ln.kind = kindSetext
		if m[1][0] == '=' {
			ln.level = 1
		} else {
			ln.level = 2
		}
		return ln
	}
	if m := ialLinePat.FindStringSubmatch(text); m != nil {
		ln.kind, ln.content = kindIal, m[1]
		return ln
	}
	if m := pluginPat.FindStringSubmatch(text); m != nil {
		ln.kind, ln.prefix, ln.content = kindPlugin, m[1], m[2]
		return ln
	}
	return ln
}

// isTableLine accepts pipe-delimited rows, loose rows with interior
// ` | ` separators, and compact separator rows such as ---|---.
func isTableLine(s string) bool {
	t := strings.TrimSpace(s)
	if strings.HasPrefix(t, "|") && strings.Count(t, "|") >= 2 {
		return true
	}
	if strings.Contains(s, " | ") {
		return true
	}
	if !strings.Contains(t, "|") {
		return false
	}
	for _, r := range t {
		switch r {
		case '-', ':', '|', ' ':
		default:
			return false
		}
	}
	return true
}

// expandTabs widens tabs to four spaces; column positions matter for
// indent classification.
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

// scanLines splits the source into classified lines, 1-based.
func scanLines(src string, opts *options.Options) []line {
	raw := strings.Split(src, "\n")
	lines := make([]line, len(raw))
	for i, text := range raw {
		text = strings.TrimSuffix(text, "\r")
		lines[i] = classify(expandTabs(text), i+1, opts)
	}
	return lines
}
