package parse

import (
	"regexp"
	"strings"

	"github.com/joshuawscott/earmark/engine/block"
)

var (
	tableCellSep = regexp.MustCompile(`\s*\|\s*`)
	separatorPat = regexp.MustCompile(`^:?-+:?$`)
)

// tableBlock gathers adjacent table rows. A separator in the second row
// promotes the first row to a header and assigns column alignments;
// headerless tables align every column left.
func (p *parser) tableBlock(lines []line, i int) (block.Block, int) {
	first := lines[i]
	var rows []block.Row
	j := i
	for j < len(lines) && lines[j].kind == kindTableRow {
		rows = append(rows, splitRow(lines[j].text))
		j++
	}
	t := block.Table{Line: first.lnb}
	if len(rows) >= 2 && isSeparatorRow(rows[1]) {
		t.Header = rows[0]
		t.Alignments = alignmentsOf(rows[1])
		t.Rows = rows[2:]
	} else {
		t.Alignments = make([]block.Alignment, len(rows[0]))
		for k := range t.Alignments {
			t.Alignments[k] = block.AlignLeft
		}
		t.Rows = rows
	}
	return t, j
}

// splitRow cuts one source line into trimmed cells, tolerating both
// pipe-delimited and loose rows.
func splitRow(s string) block.Row {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "|")
	t = strings.TrimSuffix(t, "|")
	cells := tableCellSep.Split(t, -1)
	row := make(block.Row, len(cells))
	for i, c := range cells {
		row[i] = strings.TrimSpace(c)
	}
	return row
}

func isSeparatorRow(row block.Row) bool {
	if len(row) == 0 {
		return false
	}
	for _, cell := range row {
		if !separatorPat.MatchString(cell) {
			return false
		}
	}
	return true
}

// alignmentsOf reads the colon markers of a separator row. A bare dash
// run leaves the column unstyled.
func alignmentsOf(row block.Row) []block.Alignment {
	aligns := make([]block.Alignment, len(row))
	for i, cell := range row {
		l := strings.HasPrefix(cell, ":")
		r := strings.HasSuffix(cell, ":")
		switch {
		case l && r:
			aligns[i] = block.AlignCenter
		case l:
			aligns[i] = block.AlignLeft
		case r:
			aligns[i] = block.AlignRight
		default:
			aligns[i] = block.AlignDefault
		}
	}
	return aligns
}
