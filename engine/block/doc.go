/*
Package block defines the typed node set of a parsed document.

A document is a sequence of blocks; container blocks nest further block
sequences. The set of block types is closed: rendering dispatches over it
with an exhaustive type switch, so that a new block type surfaces as a
compile-time concern in every switch, not as a runtime lookup miss.

Blocks are produced once by the parser and are read-only afterwards.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Joshua Scott <joshua@joshuawscott.net>

*/
package block

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'earmark.blocks'.
func tracer() tracing.Trace {
	return tracing.Select("earmark.blocks")
}
