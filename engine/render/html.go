package render

import (
	"fmt"
	"strings"

	"github.com/joshuawscott/earmark/core"
	"github.com/joshuawscott/earmark/core/entity"
	"github.com/joshuawscott/earmark/core/message"
	"github.com/joshuawscott/earmark/engine/block"
	"github.com/joshuawscott/earmark/engine/inline"
)

func renderPara(p block.Para, ctx *inline.Context) (string, []message.Message, error) {
	inner, msgs, err := inline.Convert(strings.Join(p.Lines, "\n"), p.Line, ctx)
	if err != nil {
		return "", msgs, err
	}
	html, merged := mergeAttrs(fmt.Sprintf("<p>%s</p>\n", inner), p.Attrs, nil, p.Line)
	return html, append(msgs, merged...), nil
}

func renderHeading(h block.Heading, ctx *inline.Context) (string, []message.Message, error) {
	inner, msgs, err := inline.Convert(h.Content, h.Line, ctx)
	if err != nil {
		return "", msgs, err
	}
	tag := fmt.Sprintf("<h%d>%s</h%d>\n", h.Level, inner, h.Level)
	html, merged := mergeAttrs(tag, h.Attrs, nil, h.Line)
	return html, append(msgs, merged...), nil
}

func renderBlockQuote(q block.BlockQuote, ctx *inline.Context) (string, []message.Message, error) {
	inner, msgs, err := renderBlocks(q.Blocks, ctx)
	if err != nil {
		return "", msgs, err
	}
	tag := fmt.Sprintf("<blockquote>%s</blockquote>\n", inner)
	html, merged := mergeAttrs(tag, q.Attrs, nil, q.Line)
	return html, append(msgs, merged...), nil
}

// rulerClass is the default width class of a horizontal rule. It takes
// precedence over an explicit class attribute (see mergeAttrs).
func rulerClass(t block.RulerType) string {
	switch t {
	case block.RulerThin:
		return "thin"
	case block.RulerMedium:
		return "medium"
	case block.RulerThick:
		return "thick"
	}
	tracer().Errorf("unknown ruler type %q, assuming thin", t)
	return "thin"
}

func renderRuler(r block.Ruler, _ *inline.Context) (string, []message.Message, error) {
	defaults := block.NewAttrs()
	defaults.Add("class", rulerClass(r.Type))
	html, msgs := mergeAttrs("<hr/>\n", r.Attrs, defaults, r.Line)
	return html, msgs, nil
}

// codeClasses expands a code block's language into its CSS class list:
// the language itself plus one class per configured prefix token.
func codeClasses(language, prefix string) []string {
	if language == "" {
		return nil
	}
	classes := []string{language}
	for _, p := range strings.Fields(prefix) {
		classes = append(classes, p+language)
	}
	return classes
}

func renderCode(c block.Code, ctx *inline.Context) (string, []message.Message, error) {
	lines := make([]string, len(c.Lines))
	for i, ln := range c.Lines {
		lines[i] = entity.Escape(ln, true)
	}
	code := strings.Join(lines, "\n")
	var tag string
	if classes := codeClasses(c.Language, ctx.Options.CodeClassPrefix); len(classes) > 0 {
		tag = fmt.Sprintf("<pre><code class=\"%s\">%s</code></pre>\n",
			strings.Join(classes, " "), code)
	} else {
		tag = fmt.Sprintf("<pre><code>%s</code></pre>\n", code)
	}
	html, msgs := mergeAttrs(tag, c.Attrs, nil, c.Line)
	return html, msgs, nil
}

func renderList(l block.List, ctx *inline.Context) (string, []message.Message, error) {
	inner, msgs, err := renderBlocks(l.Blocks, ctx)
	if err != nil {
		return "", msgs, err
	}
	tag := fmt.Sprintf("<%s>\n%s</%s>\n", l.Type, inner, l.Type)
	html, merged := mergeAttrs(tag, l.Attrs, nil, l.Line)
	return html, append(msgs, merged...), nil
}

func renderListItem(li block.ListItem, ctx *inline.Context) (string, []message.Message, error) {
	inner, msgs, err := renderBlocks(li.Blocks, ctx)
	if err != nil {
		return "", msgs, err
	}
	// A tight item unwraps its sole paragraph.
	if len(li.Blocks) == 1 && !li.Spaced {
		inner = strings.ReplaceAll(inner, "<p>", "")
		inner = strings.ReplaceAll(inner, "</p>", "")
		inner = strings.TrimSpace(inner)
	}
	tag := fmt.Sprintf("<li>%s</li>\n", inner)
	html, merged := mergeAttrs(tag, li.Attrs, nil, li.Line)
	return html, append(msgs, merged...), nil
}

func renderTable(t block.Table, ctx *inline.Context) (string, []message.Message, error) {
	var sb strings.Builder
	open, msgs := mergeAttrs("<table>\n", t.Attrs, nil, t.Line)
	sb.WriteString(open)
	sb.WriteString("<colgroup>\n")
	for range t.Alignments {
		sb.WriteString("<col>\n")
	}
	sb.WriteString("</colgroup>\n")
	if len(t.Header) > 0 {
		sb.WriteString("<thead>\n")
		ms, err := tableRow(&sb, t.Header, "th", t.Alignments, t.Line, ctx)
		msgs = append(msgs, ms...)
		if err != nil {
			return "", msgs, err
		}
		sb.WriteString("</thead>\n")
	}
	for _, row := range t.Rows {
		ms, err := tableRow(&sb, row, "td", t.Alignments, t.Line, ctx)
		msgs = append(msgs, ms...)
		if err != nil {
			return "", msgs, err
		}
	}
	sb.WriteString("</table>\n")
	return sb.String(), msgs, nil
}

// tableRow emits one <tr>, inline-converting every cell. Cells of a
// column without an explicit alignment stay unstyled.
func tableRow(sb *strings.Builder, row block.Row, tag string, aligns []block.Alignment, lnb int, ctx *inline.Context) ([]message.Message, error) {
	var msgs []message.Message
	sb.WriteString("<tr>\n")
	for i, cell := range row {
		align := block.AlignDefault
		if i < len(aligns) {
			align = aligns[i]
		}
		inner, ms, err := inline.Convert(cell, lnb, ctx)
		msgs = append(msgs, ms...)
		if err != nil {
			return msgs, err
		}
		if align == block.AlignDefault {
			fmt.Fprintf(sb, "<%s>%s</%s>", tag, inner, tag)
		} else {
			fmt.Fprintf(sb, "<%s style=\"text-align: %s\">%s</%s>", tag, align, inner, tag)
		}
	}
	sb.WriteString("\n</tr>\n")
	return msgs, nil
}

// backlinked returns the definition's blocks with the back-reference
// link appended: in place on the last line of a trailing paragraph,
// as a fresh paragraph otherwise.
func backlinked(def block.FnDef) []block.Block {
	ref := fmt.Sprintf(
		`<a href="#fnref:%d" title="return to article" class="reversefootnote">&#x21A9;</a>`,
		def.Number)
	blocks := append([]block.Block(nil), def.Blocks...)
	if n := len(blocks); n > 0 {
		if para, ok := blocks[n-1].(block.Para); ok && len(para.Lines) > 0 {
			lines := append([]string(nil), para.Lines...)
			lines[len(lines)-1] += "&nbsp;" + ref
			para.Lines = lines
			blocks[n-1] = para
			return blocks
		}
	}
	return append(blocks, block.Para{Lines: []string{ref}, Line: def.Line})
}

func renderFnList(fl block.FnList, ctx *inline.Context) (string, []message.Message, error) {
	items := make([]block.Block, 0, len(fl.Definitions))
	for _, def := range fl.Definitions {
		items = append(items, block.ListItem{
			Blocks: backlinked(def),
			Spaced: true,
			Attrs:  block.RawAttrs(fmt.Sprintf("#fn:%d", def.Number)),
			Line:   def.Line,
		})
	}
	list := block.List{Type: block.Ordered, Blocks: items, Attrs: fl.Attrs, Line: fl.Line}
	inner, msgs, err := renderList(list, ctx)
	if err != nil {
		return "", msgs, err
	}
	html := strings.Join([]string{`<div class="footnotes">`, "<hr>", inner, "</div>"}, "\n") + "\n"
	return html, msgs, nil
}

func renderHtml(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}

func renderIal(i block.Ial, ctx *inline.Context) (string, []message.Message, error) {
	inner, msgs, err := inline.Convert("{:"+i.Content+"}", i.Line, ctx)
	if err != nil {
		return "", msgs, err
	}
	return fmt.Sprintf("<p>%s</p>\n", inner), msgs, nil
}

func renderPlugin(p block.Plugin, _ *inline.Context) (string, []message.Message, error) {
	if p.Handler == nil {
		return "", nil, core.Error(core.EINTERNAL,
			"no handler bound for plugin prefix %q", p.Prefix)
	}
	html, msgs, err := p.Handler.RenderPlugin(p.Lines)
	if err != nil {
		return "", msgs, core.WrapError(err, core.EINVALID,
			"plugin %q failed at line %d", p.Prefix, p.Line)
	}
	return html, msgs, nil
}
