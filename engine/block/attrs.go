package block

import (
	"regexp"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/joshuawscott/earmark/core/message"
)

// Attrs is an ordered attribute mapping. A name keeps its first-seen
// position and maps to one or more values.
type Attrs struct {
	m *linkedhashmap.Map
}

// NewAttrs returns an empty mapping.
func NewAttrs() *Attrs {
	return &Attrs{m: linkedhashmap.New()}
}

// Add appends one value to name.
func (a *Attrs) Add(name, value string) {
	if vs, ok := a.m.Get(name); ok {
		a.m.Put(name, append(vs.([]string), value))
		return
	}
	a.m.Put(name, []string{value})
}

// Set replaces the values of name. A name already present keeps its
// position in the mapping order.
func (a *Attrs) Set(name string, values []string) {
	a.m.Put(name, append([]string(nil), values...))
}

// Get returns the values of name.
func (a *Attrs) Get(name string) ([]string, bool) {
	vs, ok := a.m.Get(name)
	if !ok {
		return nil, false
	}
	return vs.([]string), true
}

// Len is the number of attribute names.
func (a *Attrs) Len() int {
	return a.m.Size()
}

// Each visits every attribute in mapping order.
func (a *Attrs) Each(f func(name string, values []string)) {
	a.m.Each(func(k, v interface{}) {
		f(k.(string), v.([]string))
	})
}

// Clone returns an independent copy with the same mapping order.
func (a *Attrs) Clone() *Attrs {
	c := NewAttrs()
	a.Each(func(name string, values []string) {
		c.m.Put(name, append([]string(nil), values...))
	})
	return c
}

// String serializes the mapping as space-joined name="v1 v2 …" pairs, in
// mapping order. An empty mapping serializes to "".
func (a *Attrs) String() string {
	var sb strings.Builder
	first := true
	a.Each(func(name string, values []string) {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(name)
		sb.WriteString(`="`)
		sb.WriteString(strings.Join(values, " "))
		sb.WriteByte('"')
	})
	return sb.String()
}

// AttrSpec is a block's optional attribute specification: absent, a raw
// attribute-list string, or an already-parsed mapping.
type AttrSpec struct {
	Raw    string
	Parsed *Attrs
}

// RawAttrs wraps an unparsed attribute-list string.
func RawAttrs(s string) AttrSpec {
	return AttrSpec{Raw: s}
}

// ParsedAttrs wraps an already-parsed mapping.
func ParsedAttrs(a *Attrs) AttrSpec {
	return AttrSpec{Parsed: a}
}

// IsZero reports whether spec holds neither raw text nor a parsed mapping.
func (spec AttrSpec) IsZero() bool {
	return spec.Raw == "" && spec.Parsed == nil
}

// Resolve produces spec's mapping: Raw is parsed, Parsed is cloned so
// that the caller may extend the result, and a zero spec yields an
// empty mapping.
func (spec AttrSpec) Resolve(lnb int) (*Attrs, []message.Message) {
	switch {
	case spec.Parsed != nil:
		return spec.Parsed.Clone(), nil
	case spec.Raw != "":
		return ParseAttrs(spec.Raw, lnb)
	}
	return NewAttrs(), nil
}

var (
	attrClassPat  = regexp.MustCompile(`^\.(\S+)\s*`)
	attrIDPat     = regexp.MustCompile(`^#(\S+)\s*`)
	attrSQuotePat = regexp.MustCompile(`^(\S+)='([^']*)'\s*`)
	attrDQuotePat = regexp.MustCompile(`^(\S+)="([^"]*)"\s*`)
	attrBarePat   = regexp.MustCompile(`^(\S+)=(\S+)\s*`)
	attrJunkPat   = regexp.MustCompile(`^\S+\s*`)
)

// ParseAttrs parses a compact attribute-list string: `#v` adds an id,
// `.v` adds a class, `name=value` adds a named attribute, with single or
// double quotes around the value allowed. Chunks matching none of these
// forms are skipped and reported in a single warning.
func ParseAttrs(raw string, lnb int) (*Attrs, []message.Message) {
	attrs := NewAttrs()
	var junk []string
	rest := strings.TrimSpace(raw)
	for rest != "" {
		if m := attrClassPat.FindStringSubmatch(rest); m != nil {
			attrs.Add("class", m[1])
			rest = rest[len(m[0]):]
			continue
		}
		if m := attrIDPat.FindStringSubmatch(rest); m != nil {
			attrs.Add("id", m[1])
			rest = rest[len(m[0]):]
			continue
		}
		if m := attrSQuotePat.FindStringSubmatch(rest); m != nil {
			attrs.Add(m[1], m[2])
			rest = rest[len(m[0]):]
			continue
		}
		if m := attrDQuotePat.FindStringSubmatch(rest); m != nil {
			attrs.Add(m[1], m[2])
			rest = rest[len(m[0]):]
			continue
		}
		if m := attrBarePat.FindStringSubmatch(rest); m != nil {
			attrs.Add(m[1], m[2])
			rest = rest[len(m[0]):]
			continue
		}
		m := attrJunkPat.FindString(rest)
		junk = append(junk, strings.TrimSpace(m))
		rest = rest[len(m):]
	}
	var msgs []message.Message
	if len(junk) > 0 {
		tracer().Infof("ignoring attribute chunks %v at line %d", junk, lnb)
		msgs = append(msgs, message.Warningf(lnb,
			"Illegal attributes [ %s ] ignored in IAL", strings.Join(junk, ", ")))
	}
	return attrs, msgs
}
