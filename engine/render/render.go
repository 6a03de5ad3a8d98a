package render

import (
	"strings"

	"github.com/joshuawscott/earmark/core"
	"github.com/joshuawscott/earmark/core/message"
	"github.com/joshuawscott/earmark/core/options"
	"github.com/joshuawscott/earmark/engine/block"
	"github.com/joshuawscott/earmark/engine/inline"
)

// Render converts blocks to HTML under ctx. Messages accumulate in
// document order. A non-nil error is fatal and voids the output: the
// caller never sees a partial document.
func Render(blocks []block.Block, ctx *inline.Context) (string, []message.Message, error) {
	tracer().Debugf("rendering %d top-level blocks", len(blocks))
	return renderBlocks(blocks, ctx)
}

// slot is one unit's result. Units write disjoint slots; the gather loop
// reads them only after the mapper returned.
type slot struct {
	html string
	msgs []message.Message
	err  error
}

// renderBlocks fans the blocks out to the configured mapper and gathers
// the fragments in input order, whatever order the units completed in.
func renderBlocks(blocks []block.Block, ctx *inline.Context) (string, []message.Message, error) {
	if len(blocks) == 0 {
		return "", nil, nil
	}
	mapper := ctx.Options.Mapper
	if mapper == nil {
		mapper = options.Parallel
	}
	slots := make([]slot, len(blocks))
	err := mapper(len(blocks), func(i int) error {
		html, msgs, err := renderBlock(blocks[i], ctx)
		slots[i] = slot{html: html, msgs: msgs, err: err}
		return err
	})
	// Custom mappers may swallow unit errors; the slots are authoritative.
	for i := range slots {
		if slots[i].err != nil {
			err = slots[i].err
			break
		}
	}
	if err != nil {
		return "", nil, err
	}
	var sb strings.Builder
	var msgs []message.Message
	for i := range slots {
		sb.WriteString(slots[i].html)
		msgs = append(msgs, slots[i].msgs...)
	}
	return sb.String(), msgs, nil
}

func renderBlock(b block.Block, ctx *inline.Context) (string, []message.Message, error) {
	switch blk := b.(type) {
	case block.Para:
		return renderPara(blk, ctx)
	case block.Heading:
		return renderHeading(blk, ctx)
	case block.BlockQuote:
		return renderBlockQuote(blk, ctx)
	case block.Code:
		return renderCode(blk, ctx)
	case block.Ruler:
		return renderRuler(blk, ctx)
	case block.List:
		return renderList(blk, ctx)
	case block.ListItem:
		return renderListItem(blk, ctx)
	case block.Table:
		return renderTable(blk, ctx)
	case block.Html:
		return renderHtml(blk.Lines), nil, nil
	case block.HtmlOther:
		return renderHtml(blk.Lines), nil, nil
	case block.FnList:
		return renderFnList(blk, ctx)
	case block.FnDef:
		return "", nil, core.Error(core.EINTERNAL,
			"footnote definition outside of a footnote list at line %d", blk.Line)
	case block.Ial:
		return renderIal(blk, ctx)
	case block.IdDef:
		return "", nil, nil
	case block.Plugin:
		return renderPlugin(blk, ctx)
	}
	return "", nil, core.Error(core.EINTERNAL, "unknown block type %T", b)
}
