package parse

import (
	"regexp"

	"github.com/joshuawscott/earmark/engine/block"
)

var fnRefPat = regexp.MustCompile(`\[\^([^\]\s]+)\]`)

// numberFootnotes pulls the footnote definitions out of the block list,
// numbers them in the order of their first reference and appends the
// footnote list. Definitions nothing refers to are dropped; references
// without a definition are reported and left for the renderer to emit
// as literal text.
func (p *parser) numberFootnotes(doc *Document) []block.Block {
	defs := make(map[string]block.FnDef)
	rest := make([]block.Block, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		if def, ok := b.(block.FnDef); ok {
			defs[def.ID] = def
			continue
		}
		rest = append(rest, b)
	}

	number := p.opts.FootnoteOffset
	if number <= 0 {
		number = 1
	}
	seen := make(map[string]bool)
	var ordered []block.FnDef
	walkText(rest, func(text string, lnb int) {
		for _, m := range fnRefPat.FindAllStringSubmatch(text, -1) {
			id := m[1]
			if seen[id] {
				continue
			}
			seen[id] = true
			def, ok := defs[id]
			if !ok {
				p.errorf(lnb, "footnote [^%s] undefined, reference ignored", id)
				continue
			}
			def.Number = number
			number++
			ordered = append(ordered, def)
			doc.Footnotes[id] = def
		}
	})
	if len(ordered) == 0 {
		return rest
	}
	tracer().Debugf("collected %d referenced footnotes", len(ordered))
	return append(rest, block.FnList{Definitions: ordered, Line: ordered[0].Line})
}

// walkText visits the inline-convertible text of the tree in document
// order. Code and raw markup stay out: references inside them are not
// references.
func walkText(blocks []block.Block, visit func(text string, lnb int)) {
	for _, b := range blocks {
		switch blk := b.(type) {
		case block.Para:
			for i, ln := range blk.Lines {
				visit(ln, blk.Line+i)
			}
		case block.Heading:
			visit(blk.Content, blk.Line)
		case block.BlockQuote:
			walkText(blk.Blocks, visit)
		case block.List:
			walkText(blk.Blocks, visit)
		case block.ListItem:
			walkText(blk.Blocks, visit)
		case block.Table:
			for _, cell := range blk.Header {
				visit(cell, blk.Line)
			}
			for _, row := range blk.Rows {
				for _, cell := range row {
					visit(cell, blk.Line)
				}
			}
		}
	}
}
