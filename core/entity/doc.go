/*
Package entity implements the entity-reference codec for generated HTML.

Escaping converts markup-significant characters to entity references,
with two ampersand policies: the default one keeps well-formed references
a document author already wrote, the aggressive one encodes every
ampersand. Unescaping decodes colon and numeric references in a single
left-to-right pass. Both directions are hand-rolled scanners; the
reference-preserving ampersand rule puts the escape side outside of what
html.EscapeString can express.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Joshua Scott <joshua@joshuawscott.net>

*/
package entity

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'earmark.entity'.
func tracer() tracing.Trace {
	return tracing.Select("earmark.entity")
}
