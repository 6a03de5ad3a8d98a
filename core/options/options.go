/*
Package options collects the knobs steering a conversion run: feature
toggles for the parser, formatting options for the renderer, the plugin
registry, and the mapper used to fan out over sibling blocks.

An Options value is read-only once a run has started.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Joshua Scott <joshua@joshuawscott.net>

*/
package options

import (
	"time"

	"github.com/joshuawscott/earmark/core/message"
)

// Options steer parsing and rendering. The zero value disables every
// extension; Default returns the struct most callers want.
type Options struct {
	// CodeClassPrefix holds space-separated tokens; every token becomes
	// one CSS class prefix for the language class of a fenced code block.
	// The bare language name is always emitted as a class of its own.
	CodeClassPrefix string

	GFM            bool // GitHub-flavored extensions: tables, strikethrough
	Breaks         bool // render every soft line break as <br/>
	Footnotes      bool // collect footnote definitions and render a footnote list
	FootnoteOffset int  // number of the first footnote, normally 1
	SmartyPants    bool // typographic quotes, dashes and ellipses
	PureLinks      bool // autolink bare URLs in running text
	WikiLinks      bool // [[page]] links

	// Mapper schedules the rendering of sibling blocks; nil selects
	// Parallel.
	Mapper Mapper

	// Timeout bounds one rendering run when positive.
	Timeout time.Duration

	// Plugins routes `$$prefix` lines to a registered renderer, keyed by
	// prefix. `$$` lines without a prefix use the "" entry.
	Plugins map[string]PluginRenderer
}

// Default returns the options most callers want: GFM extensions,
// typographic punctuation and autolinked URLs on, footnotes off.
func Default() *Options {
	return &Options{
		GFM:            true,
		SmartyPants:    true,
		PureLinks:      true,
		FootnoteOffset: 1,
	}
}

// PluginRenderer renders the raw lines of a plugin block. Returned
// messages travel the diagnostics channel; a non-nil error aborts the
// whole rendering run.
type PluginRenderer interface {
	RenderPlugin(lines []string) (string, []message.Message, error)
}
