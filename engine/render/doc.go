/*
Package render converts a parsed block tree to HTML.

Every block type renders independently of its siblings, so the driver may
fan the top-level blocks out to a mapper (see package options) and
concatenate the fragments afterwards. Output is deterministic: a parallel
run produces byte-identical HTML to a sequential one.

Rendering produces three channels. The HTML string is the result proper.
Messages carry recoverable diagnostics (unparsable attributes, dropped
input) and never abort a run. An error is fatal: the run returns no
HTML at all, not a partial document.

Block attributes are spliced into the rendered fragment textually. The
renderer first produces the bare tag, then mergeAttrs inserts the
serialized attributes in front of the first tag-closing bracket. Block
types with default attributes (rulers carry a width class) merge them
over the explicit ones, defaults winning.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Joshua Scott <joshua@joshuawscott.net>

*/
package render

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'earmark.render'.
func tracer() tracing.Trace {
	return tracing.Select("earmark.render")
}
