/*
Package markdown is the front door of the conversion engine: markdown
text in, HTML fragment out.

AsHTML wires the stages together; parsing (package parse), inline
conversion (package inline) and block rendering (package render) stay
independently usable underneath. Clients holding an already-parsed
block tree call AsHTMLFragment instead.

Conversion returns three values. The HTML string is a fragment, not a
full page. The message slice carries non-fatal diagnostics in document
order. The error is nil unless the conversion aborted as a whole; an
aborted conversion carries no partial HTML.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Joshua Scott <joshua@joshuawscott.net>

*/
package markdown

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'earmark.md'.
func tracer() tracing.Trace {
	return tracing.Select("earmark.md")
}
