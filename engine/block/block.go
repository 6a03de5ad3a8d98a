package block

import (
	"github.com/joshuawscott/earmark/core/options"
)

// Block is one node of the parsed document tree.
type Block interface {
	block()
}

// ListType selects the list tag.
type ListType string

const (
	Ordered   ListType = "ol"
	Unordered ListType = "ul"
)

// RulerType is the fence character a horizontal rule was written with.
type RulerType byte

const (
	RulerThin   RulerType = '-'
	RulerMedium RulerType = '_'
	RulerThick  RulerType = '*'
)

// Alignment of one table column. AlignDefault leaves cells unstyled.
type Alignment string

const (
	AlignDefault Alignment = ""
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
)

// Row is one table row, one raw-text entry per cell.
type Row []string

// Para is a paragraph (list of raw text lines).
type Para struct {
	Lines []string
	Attrs AttrSpec
	Line  int
}

// Heading with level 1–6.
type Heading struct {
	Level   int
	Content string
	Attrs   AttrSpec
	Line    int
}

// BlockQuote (list of blocks).
type BlockQuote struct {
	Blocks []Block
	Attrs  AttrSpec
	Line   int
}

// Code holds verbatim lines, never inline-converted. Language is empty
// for indented code blocks.
type Code struct {
	Lines    []string
	Language string
	Attrs    AttrSpec
	Line     int
}

// Ruler is a horizontal rule.
type Ruler struct {
	Type  RulerType
	Attrs AttrSpec
	Line  int
}

// List of items; Blocks holds ListItem entries.
type List struct {
	Type   ListType
	Blocks []Block
	Attrs  AttrSpec
	Line   int
}

// ListItem (list of blocks). Spaced is false for tight items, which are
// rendered without their paragraph wrapper.
type ListItem struct {
	Blocks []Block
	Spaced bool
	Attrs  AttrSpec
	Line   int
}

// Table with an optional heading row and per-column alignments. Columns
// beyond the alignment list render unstyled.
type Table struct {
	Header     Row
	Rows       []Row
	Alignments []Alignment
	Attrs      AttrSpec
	Line       int
}

// Html is a raw block-level HTML fragment, passed through verbatim.
type Html struct {
	Lines []string
	Attrs AttrSpec
	Line  int
}

// HtmlOther is a one-line HTML fragment or comment, passed through
// verbatim.
type HtmlOther struct {
	Lines []string
	Attrs AttrSpec
	Line  int
}

// FnList collects the footnote definitions referenced by the document.
type FnList struct {
	Definitions []FnDef
	Attrs       AttrSpec
	Line        int
}

// FnDef is one footnote definition. It renders only as part of a FnList.
type FnDef struct {
	ID     string
	Number int
	Blocks []Block
	Attrs  AttrSpec
	Line   int
}

// Ial is an attribute list that could not be attached to a block; it
// renders as visible text.
type Ial struct {
	Content string
	Attrs   AttrSpec
	Line    int
}

// IdDef is a link reference definition. It is consumed into the symbol
// table while parsing and renders to nothing.
type IdDef struct {
	ID    string
	URL   string
	Title string
	Attrs AttrSpec
	Line  int
}

// Plugin delegates its raw lines to an external renderer.
type Plugin struct {
	Prefix  string
	Lines   []string
	Handler options.PluginRenderer
	Attrs   AttrSpec
	Line    int
}

func (Para) block()       {}
func (Heading) block()    {}
func (BlockQuote) block() {}
func (Code) block()       {}
func (Ruler) block()      {}
func (List) block()       {}
func (ListItem) block()   {}
func (Table) block()      {}
func (Html) block()       {}
func (HtmlOther) block()  {}
func (FnList) block()     {}
func (FnDef) block()      {}
func (Ial) block()        {}
func (IdDef) block()      {}
func (Plugin) block()     {}

var _ = []Block{
	Para{}, Heading{}, BlockQuote{}, Code{}, Ruler{}, List{}, ListItem{},
	Table{}, Html{}, HtmlOther{}, FnList{}, FnDef{}, Ial{}, IdDef{}, Plugin{},
}

// WithAttrs returns b with its attribute specification replaced. The
// parser uses it to attach an attribute list to the block preceding it.
func WithAttrs(b Block, spec AttrSpec) Block {
	switch blk := b.(type) {
	case Para:
		blk.Attrs = spec
		return blk
	case Heading:
		blk.Attrs = spec
		return blk
	case BlockQuote:
		blk.Attrs = spec
		return blk
	case Code:
		blk.Attrs = spec
		return blk
	case Ruler:
		blk.Attrs = spec
		return blk
	case List:
		blk.Attrs = spec
		return blk
	case ListItem:
		blk.Attrs = spec
		return blk
	case Table:
		blk.Attrs = spec
		return blk
	case Html:
		blk.Attrs = spec
		return blk
	case HtmlOther:
		blk.Attrs = spec
		return blk
	case FnList:
		blk.Attrs = spec
		return blk
	case FnDef:
		blk.Attrs = spec
		return blk
	case Ial:
		blk.Attrs = spec
		return blk
	case IdDef:
		blk.Attrs = spec
		return blk
	case Plugin:
		blk.Attrs = spec
		return blk
	}
	tracer().Errorf("cannot attach attributes to unknown block type %T", b)
	return b
}
