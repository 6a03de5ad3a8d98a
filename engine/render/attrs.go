package render

import (
	"regexp"

	"github.com/joshuawscott/earmark/core/message"
	"github.com/joshuawscott/earmark/engine/block"
)

// attrSplicePat locates the end of the first tag of a rendered fragment,
// where serialized attributes are spliced in.
var attrSplicePat = regexp.MustCompile(`\s*/?>`)

// spliceAttrs inserts the serialized attrs in front of the closing
// bracket of markup's first tag. Markup without any tag and an empty
// mapping both pass through unchanged.
func spliceAttrs(markup string, attrs *block.Attrs) string {
	if attrs == nil || attrs.Len() == 0 {
		return markup
	}
	loc := attrSplicePat.FindStringIndex(markup)
	if loc == nil {
		return markup
	}
	return markup[:loc[0]] + " " + attrs.String() + markup[loc[0]:]
}

// mergeAttrs resolves the block's attribute specification, overlays the
// renderer's default attributes and splices the result into markup. A
// default entry replaces an explicit one of the same name outright.
func mergeAttrs(markup string, spec block.AttrSpec, defaults *block.Attrs, lnb int) (string, []message.Message) {
	attrs, msgs := spec.Resolve(lnb)
	if defaults != nil {
		defaults.Each(func(name string, values []string) {
			attrs.Set(name, values)
		})
	}
	return spliceAttrs(markup, attrs), msgs
}
