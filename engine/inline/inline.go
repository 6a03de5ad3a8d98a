package inline

import (
	"github.com/joshuawscott/earmark/core/options"
	"github.com/joshuawscott/earmark/engine/block"
)

// Renderer is the fixed set of templating hooks the converter emits
// markup through. Every hook returns a literal markup string with no
// surrounding whitespace.
type Renderer interface {
	Linebreak() string
	Codespan(text string) string
	Em(text string) string
	Strong(text string) string
	Strikethrough(text string) string
	Link(url, text string) string
	LinkTitle(url, title, text string) string
	Image(url, alt, title string) string
	FootnoteLink(ref, backref string, number int) string
}

// Context is the shared state of one rendering run. It is constructed
// once per run and never mutated afterwards, so renderers may read it
// concurrently.
type Context struct {
	Options  *options.Options
	Renderer Renderer

	// Links is the link-reference symbol table, keyed by lower-cased id.
	Links map[string]block.IdDef

	// Footnotes holds the numbered footnote definitions, keyed by label.
	Footnotes map[string]block.FnDef
}

// NewContext assembles a context over opts, with empty symbol tables.
// A nil opts selects the defaults.
func NewContext(opts *options.Options, r Renderer) *Context {
	if opts == nil {
		opts = options.Default()
	}
	return &Context{
		Options:   opts,
		Renderer:  r,
		Links:     make(map[string]block.IdDef),
		Footnotes: make(map[string]block.FnDef),
	}
}
