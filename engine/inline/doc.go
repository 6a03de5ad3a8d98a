/*
Package inline converts the raw text spans of a block to formatted text.

The converter walks the text once, left to right, recognizing code spans,
emphasis, links, images, autolinks, footnote references and hard breaks.
It emits markup exclusively through the Renderer hook set, so the tag
vocabulary stays with the caller. Plain text between spans is passed
through the typographic pass and the entity escaper.

The scan is hand-rolled: the span grammar needs backreference-like
matching of delimiter runs, which is outside what package regexp can
express.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Joshua Scott <joshua@joshuawscott.net>

*/
package inline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'earmark.inline'.
func tracer() tracing.Trace {
	return tracing.Select("earmark.inline")
}
