package render

import (
	"fmt"

	"github.com/joshuawscott/earmark/engine/inline"
)

// HTMLHooks is the stock inline.Renderer producing plain HTML5 tags.
type HTMLHooks struct{}

var _ inline.Renderer = HTMLHooks{}

func (HTMLHooks) Linebreak() string {
	return "<br/>"
}

func (HTMLHooks) Codespan(text string) string {
	return fmt.Sprintf(`<code class="inline">%s</code>`, text)
}

func (HTMLHooks) Em(text string) string {
	return fmt.Sprintf("<em>%s</em>", text)
}

func (HTMLHooks) Strong(text string) string {
	return fmt.Sprintf("<strong>%s</strong>", text)
}

func (HTMLHooks) Strikethrough(text string) string {
	return fmt.Sprintf("<del>%s</del>", text)
}

func (HTMLHooks) Link(url, text string) string {
	return fmt.Sprintf(`<a href="%s">%s</a>`, url, text)
}

func (HTMLHooks) LinkTitle(url, title, text string) string {
	return fmt.Sprintf(`<a href="%s" title="%s">%s</a>`, url, title, text)
}

func (HTMLHooks) Image(url, alt, title string) string {
	if title == "" {
		return fmt.Sprintf(`<img src="%s" alt="%s"/>`, url, alt)
	}
	return fmt.Sprintf(`<img src="%s" alt="%s" title="%s"/>`, url, alt, title)
}

func (HTMLHooks) FootnoteLink(ref, backref string, number int) string {
	return fmt.Sprintf(
		`<a href="#%s" id="%s" class="footnote" title="see footnote">%d</a>`,
		ref, backref, number)
}
