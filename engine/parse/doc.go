/*
Package parse turns markdown source text into a block tree.

Parsing runs in two stages. Every source line is first classified on its
own, by anchored patterns, into one of a fixed set of line kinds. The
block assembler then walks the classified lines and groups them into
blocks, re-entering itself for container blocks (quotes, list items,
footnote bodies) with the group's inner lines. Inline markup inside the
gathered text is left untouched; it is the renderer's concern.

The parser never fails. Questionable input degrades to plain text or is
dropped with a diagnostic message, so the caller always receives a
usable tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Joshua Scott <joshua@joshuawscott.net>

*/
package parse

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'earmark.parse'.
func tracer() tracing.Trace {
	return tracing.Select("earmark.parse")
}
