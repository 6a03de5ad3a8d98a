package parse

import (
	"strings"

	"github.com/joshuawscott/earmark/core/message"
	"github.com/joshuawscott/earmark/core/options"
	"github.com/joshuawscott/earmark/engine/block"
)

// Document is the parsed form of one markdown source.
type Document struct {
	Blocks []block.Block

	// Links maps lower-cased reference labels to their definitions.
	Links map[string]block.IdDef

	// Footnotes maps labels to their numbered definitions. Filled only
	// when the footnote option is on.
	Footnotes map[string]block.FnDef
}

// Parse turns markdown source into a document. It cannot fail: dubious
// input parses to plain text or is dropped with a message.
func Parse(src string, opts *options.Options) (*Document, []message.Message) {
	if opts == nil {
		opts = options.Default()
	}
	p := &parser{opts: opts, links: make(map[string]block.IdDef)}
	doc := &Document{
		Blocks:    p.parseBlocks(scanLines(src, opts)),
		Links:     p.links,
		Footnotes: make(map[string]block.FnDef),
	}
	if opts.Footnotes {
		doc.Blocks = p.numberFootnotes(doc)
	}
	tracer().Debugf("parsed %d top-level blocks, %d messages", len(doc.Blocks), len(p.msgs))
	return doc, p.msgs
}

type parser struct {
	opts  *options.Options
	links map[string]block.IdDef
	msgs  []message.Message
}

func (p *parser) warnf(lnb int, format string, v ...interface{}) {
	p.msgs = append(p.msgs, message.Warningf(lnb, format, v...))
}

func (p *parser) errorf(lnb int, format string, v ...interface{}) {
	p.msgs = append(p.msgs, message.Errorf(lnb, format, v...))
}

// parseBlocks assembles classified lines into blocks. Container blocks
// re-enter it with their reclassified inner lines.
func (p *parser) parseBlocks(lines []line) []block.Block {
	var blocks []block.Block
	prevBlank := true
	i := 0
	for i < len(lines) {
		ln := lines[i]
		if ln.kind == kindBlank {
			prevBlank = true
			i++
			continue
		}
		switch ln.kind {
		case kindIal:
			content := strings.TrimSpace(ln.content)
			if !prevBlank && len(blocks) > 0 {
				last := len(blocks) - 1
				blocks[last] = block.WithAttrs(blocks[last], block.RawAttrs(content))
			} else {
				blocks = append(blocks, block.Ial{Content: content, Line: ln.lnb})
			}
			i++
		case kindRuler:
			blocks = append(blocks, block.Ruler{Type: ln.ruler, Line: ln.lnb})
			i++
		case kindHeading:
			blocks = append(blocks, block.Heading{Level: ln.level, Content: ln.content, Line: ln.lnb})
			i++
		case kindText:
			b, next := p.textBlock(lines, i)
			blocks = append(blocks, b)
			i = next
		case kindSetext:
			// an underline with nothing above it is just text
			lines[i].kind = kindText
			lines[i].content = ln.text
		case kindBlockQuote:
			b, next := p.quoteBlock(lines, i)
			blocks = append(blocks, b)
			i = next
		case kindFence:
			b, next := p.fenceBlock(lines, i)
			blocks = append(blocks, b)
			i = next
		case kindIndent:
			b, next := p.indentBlock(lines, i)
			blocks = append(blocks, b)
			i = next
		case kindHtmlOpen:
			b, next := p.htmlBlock(lines, i)
			blocks = append(blocks, b)
			i = next
		case kindHtmlComment:
			b, next := p.commentBlock(lines, i)
			blocks = append(blocks, b)
			i = next
		case kindHtmlOneLine, kindHtmlClose:
			blocks = append(blocks, block.HtmlOther{Lines: []string{ln.text}, Line: ln.lnb})
			i++
		case kindIdDef:
			def := block.IdDef{ID: ln.id, URL: ln.url, Title: ln.title, Line: ln.lnb}
			p.links[strings.ToLower(ln.id)] = def
			blocks = append(blocks, def)
			i++
		case kindFnDef:
			b, next := p.fnDefBlock(lines, i)
			blocks = append(blocks, b)
			i = next
		case kindListItem:
			b, next := p.listBlock(lines, i)
			blocks = append(blocks, b)
			i = next
		case kindTableRow:
			b, next := p.tableBlock(lines, i)
			blocks = append(blocks, b)
			i = next
		case kindPlugin:
			b, next := p.pluginBlock(lines, i)
			if b != nil {
				blocks = append(blocks, b)
			}
			i = next
		default:
			tracer().Errorf("line %d: unhandled line kind %d", ln.lnb, ln.kind)
			i++
		}
		prevBlank = false
	}
	return blocks
}

// textBlock gathers a paragraph run. A single text line directly above a
// setext underline or a thin ruler becomes a heading instead.
func (p *parser) textBlock(lines []line, i int) (block.Block, int) {
	first := lines[i]
	if i+1 < len(lines) {
		next := lines[i+1]
		if next.kind == kindSetext {
			return block.Heading{
				Level:   next.level,
				Content: strings.TrimSpace(first.text),
				Line:    first.lnb,
			}, i + 2
		}
		if next.kind == kindRuler && next.ruler == block.RulerThin {
			return block.Heading{
				Level:   2,
				Content: strings.TrimSpace(first.text),
				Line:    first.lnb,
			}, i + 2
		}
	}
	var texts []string
	j := i
	for j < len(lines) && lines[j].kind == kindText {
		texts = append(texts, lines[j].text)
		j++
	}
	return block.Para{Lines: texts, Line: first.lnb}, j
}

// quoteBlock gathers a quote run including lazy text continuations,
// strips the markers and parses the inside as its own document.
func (p *parser) quoteBlock(lines []line, i int) (block.Block, int) {
	first := lines[i]
	var inner []line
	j := i
	for j < len(lines) && (lines[j].kind == kindBlockQuote || lines[j].kind == kindText) {
		s := lines[j].text
		if lines[j].kind == kindBlockQuote {
			s = lines[j].content
		}
		inner = append(inner, classify(s, lines[j].lnb, p.opts))
		j++
	}
	return block.BlockQuote{Blocks: p.parseBlocks(inner), Line: first.lnb}, j
}

// fenceBlock collects verbatim lines up to the closing fence.
func (p *parser) fenceBlock(lines []line, i int) (block.Block, int) {
	open := lines[i]
	var body []string
	j := i + 1
	for j < len(lines) {
		if lines[j].kind == kindFence && lines[j].fence == open.fence && lines[j].language == "" {
			return block.Code{Lines: body, Language: open.language, Line: open.lnb}, j + 1
		}
		body = append(body, lines[j].text)
		j++
	}
	p.errorf(open.lnb, "Fenced Code Block opened with %s not closed at end of input",
		strings.Repeat(string(open.fence), 3))
	return block.Code{Lines: body, Language: open.language, Line: open.lnb}, j
}

// indentBlock collects an indented code run, keeping interior blank
// lines and dropping trailing ones.
func (p *parser) indentBlock(lines []line, i int) (block.Block, int) {
	first := lines[i]
	var body []string
	j := i
	for j < len(lines) {
		switch lines[j].kind {
		case kindIndent:
			body = append(body, lines[j].content)
			j++
		case kindBlank:
			k := j
			for k < len(lines) && lines[k].kind == kindBlank {
				k++
			}
			if k >= len(lines) || lines[k].kind != kindIndent {
				return block.Code{Lines: body, Line: first.lnb}, j
			}
			for ; j < k; j++ {
				body = append(body, "")
			}
		default:
			return block.Code{Lines: body, Line: first.lnb}, j
		}
	}
	return block.Code{Lines: body, Line: first.lnb}, j
}

// htmlBlock passes lines through verbatim until the matching close tag.
func (p *parser) htmlBlock(lines []line, i int) (block.Block, int) {
	open := lines[i]
	body := []string{open.text}
	j := i + 1
	for j < len(lines) {
		body = append(body, lines[j].text)
		if lines[j].kind == kindHtmlClose && strings.EqualFold(lines[j].tag, open.tag) {
			return block.Html{Lines: body, Line: open.lnb}, j + 1
		}
		j++
	}
	p.errorf(open.lnb, "Failed to find closing <%s>", open.tag)
	return block.Html{Lines: body, Line: open.lnb}, j
}

func (p *parser) commentBlock(lines []line, i int) (block.Block, int) {
	first := lines[i]
	body := []string{first.text}
	j := i + 1
	if !first.complete {
		for j < len(lines) {
			body = append(body, lines[j].text)
			j++
			if strings.Contains(body[len(body)-1], "-->") {
				break
			}
		}
	}
	return block.HtmlOther{Lines: body, Line: first.lnb}, j
}

// fnDefBlock gathers a footnote definition and its indented body. The
// number is assigned later, in reference order.
func (p *parser) fnDefBlock(lines []line, i int) (block.Block, int) {
	first := lines[i]
	var body []line
	if strings.TrimSpace(first.content) != "" {
		body = append(body, classify(first.content, first.lnb, p.opts))
	}
	j := i + 1
	for j < len(lines) {
		switch lines[j].kind {
		case kindIndent:
			body = append(body, classify(lines[j].content, lines[j].lnb, p.opts))
			j++
		case kindText:
			body = append(body, lines[j])
			j++
		case kindBlank:
			k := j
			for k < len(lines) && lines[k].kind == kindBlank {
				k++
			}
			if k >= len(lines) || lines[k].kind != kindIndent {
				return block.FnDef{ID: first.id, Blocks: p.parseBlocks(body), Line: first.lnb}, j
			}
			for ; j < k; j++ {
				body = append(body, line{kind: kindBlank, lnb: lines[j].lnb})
			}
		default:
			return block.FnDef{ID: first.id, Blocks: p.parseBlocks(body), Line: first.lnb}, j
		}
	}
	return block.FnDef{ID: first.id, Blocks: p.parseBlocks(body), Line: first.lnb}, j
}

// listBlock gathers every item of one list. A blank line inside the
// list marks it as spaced; items of a spaced list keep their paragraph
// wrappers when rendered.
func (p *parser) listBlock(lines []line, i int) (block.Block, int) {
	first := lines[i]
	type itemLines struct {
		start line
		body  []line
	}
	var items []itemLines
	spaced := false
	j := i
loop:
	for j < len(lines) {
		ln := lines[j]
		switch {
		case ln.kind == kindListItem && ln.listType == first.listType:
			items = append(items, itemLines{
				start: ln,
				body:  []line{classify(ln.content, ln.lnb, p.opts)},
			})
			j++
		case ln.kind == kindText:
			cur := &items[len(items)-1]
			cur.body = append(cur.body, ln)
			j++
		case ln.kind == kindIndent:
			cur := &items[len(items)-1]
			cur.body = append(cur.body, classify(ln.content, ln.lnb, p.opts))
			j++
		case ln.kind == kindBlank:
			k := j
			for k < len(lines) && lines[k].kind == kindBlank {
				k++
			}
			if k >= len(lines) {
				break loop
			}
			continues := lines[k].kind == kindIndent ||
				(lines[k].kind == kindListItem && lines[k].listType == first.listType)
			if !continues {
				break loop
			}
			spaced = true
			cur := &items[len(items)-1]
			for ; j < k; j++ {
				cur.body = append(cur.body, line{kind: kindBlank, lnb: lines[j].lnb})
			}
		default:
			break loop
		}
	}
	itemBlocks := make([]block.Block, 0, len(items))
	for _, it := range items {
		itemBlocks = append(itemBlocks, block.ListItem{
			Blocks: p.parseBlocks(it.body),
			Spaced: spaced,
			Line:   it.start.lnb,
		})
	}
	return block.List{Type: first.listType, Blocks: itemBlocks, Line: first.lnb}, j
}

// pluginBlock groups adjacent plugin lines with one prefix. Lines for a
// prefix nothing is registered for are dropped with a message.
func (p *parser) pluginBlock(lines []line, i int) (block.Block, int) {
	first := lines[i]
	var body []string
	j := i
	for j < len(lines) && lines[j].kind == kindPlugin && lines[j].prefix == first.prefix {
		body = append(body, lines[j].content)
		j++
	}
	handler, ok := p.opts.Plugins[first.prefix]
	if !ok {
		p.errorf(first.lnb, "lines for undefined plugin prefix %q ignored", first.prefix)
		return nil, j
	}
	return block.Plugin{Prefix: first.prefix, Lines: body, Handler: handler, Line: first.lnb}, j
}
