package render

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/joshuawscott/earmark/core"
	"github.com/joshuawscott/earmark/core/message"
	"github.com/joshuawscott/earmark/core/options"
	"github.com/joshuawscott/earmark/engine/block"
	"github.com/joshuawscott/earmark/engine/inline"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

// plainContext renders with all options off and the stock HTML hooks.
func plainContext() *inline.Context {
	return inline.NewContext(&options.Options{}, HTMLHooks{})
}

func render(t *testing.T, ctx *inline.Context, blocks ...block.Block) (string, []message.Message) {
	t.Helper()
	html, msgs, err := Render(blocks, ctx)
	assert.NoError(t, err)
	return html, msgs
}

func TestParagraph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	html, msgs := render(t, plainContext(),
		block.Para{Lines: []string{"hello *world*", "second line"}, Line: 1})
	assert.Empty(t, msgs)
	assert.Equal(t, "<p>hello <em>world</em>\nsecond line</p>\n", html)
}

func TestHeadingLevels(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	html, _ := render(t, plainContext(),
		block.Heading{Level: 1, Content: "Top", Line: 1},
		block.Heading{Level: 3, Content: "Sub & Co", Line: 3})
	assert.Equal(t, "<h1>Top</h1>\n<h3>Sub &amp; Co</h3>\n", html)
}

func TestBlockQuoteNestsBlocks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	html, _ := render(t, plainContext(), block.BlockQuote{
		Blocks: []block.Block{
			block.Para{Lines: []string{"quoted"}, Line: 2},
			block.BlockQuote{Blocks: []block.Block{
				block.Para{Lines: []string{"deeper"}, Line: 3},
			}, Line: 3},
		},
		Line: 2,
	})
	assert.Equal(t,
		"<blockquote><p>quoted</p>\n<blockquote><p>deeper</p>\n</blockquote>\n</blockquote>\n",
		html)
}

func TestRulerDefaultClasses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	html, _ := render(t, plainContext(),
		block.Ruler{Type: block.RulerThin, Line: 1},
		block.Ruler{Type: block.RulerMedium, Line: 3},
		block.Ruler{Type: block.RulerThick, Line: 5})
	assert.Equal(t,
		"<hr class=\"thin\"/>\n<hr class=\"medium\"/>\n<hr class=\"thick\"/>\n",
		html)
}

func TestRulerClassOverridesExplicit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	html, msgs := render(t, plainContext(),
		block.Ruler{Type: block.RulerThin, Attrs: block.RawAttrs(".custom"), Line: 1})
	assert.Empty(t, msgs)
	assert.Equal(t, "<hr class=\"thin\"/>\n", html)
}

func TestCodeBlockEscapesEveryAmpersand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	html, _ := render(t, plainContext(),
		block.Code{Lines: []string{"a < b", "c &amp; d"}, Line: 1})
	assert.Equal(t, "<pre><code>a &lt; b\nc &amp;amp; d</code></pre>\n", html)
}

func TestCodeBlockLanguageClasses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	code := block.Code{Lines: []string{"x = 1"}, Language: "elixir", Line: 1}

	html, _ := render(t, plainContext(), code)
	assert.Equal(t, "<pre><code class=\"elixir\">x = 1</code></pre>\n", html)

	prefixed := inline.NewContext(&options.Options{CodeClassPrefix: "lang- brush:"}, HTMLHooks{})
	html, _ = render(t, prefixed, code)
	assert.Equal(t,
		"<pre><code class=\"elixir lang-elixir brush:elixir\">x = 1</code></pre>\n",
		html)
}

func TestCodeBlockAttrsLandOnPre(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	html, _ := render(t, plainContext(), block.Code{
		Lines:    []string{"x = 1"},
		Language: "elixir",
		Attrs:    block.RawAttrs(".numberLines"),
		Line:     1,
	})
	assert.Equal(t,
		"<pre class=\"numberLines\"><code class=\"elixir\">x = 1</code></pre>\n",
		html)
}

func TestTightListUnwrapsParagraph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	html, _ := render(t, plainContext(), block.List{
		Type: block.Unordered,
		Blocks: []block.Block{
			block.ListItem{Blocks: []block.Block{
				block.Para{Lines: []string{"alpha"}, Line: 1},
			}, Line: 1},
			block.ListItem{Blocks: []block.Block{
				block.Para{Lines: []string{"beta"}, Line: 2},
			}, Line: 2},
		},
		Line: 1,
	})
	assert.Equal(t, "<ul>\n<li>alpha</li>\n<li>beta</li>\n</ul>\n", html)
	assert.NotContains(t, html, "<p>")
}

func TestLooseListKeepsParagraphs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	html, _ := render(t, plainContext(), block.List{
		Type: block.Ordered,
		Blocks: []block.Block{
			block.ListItem{Blocks: []block.Block{
				block.Para{Lines: []string{"alpha"}, Line: 1},
			}, Spaced: true, Line: 1},
			block.ListItem{Blocks: []block.Block{
				block.Para{Lines: []string{"beta"}, Line: 3},
				block.Para{Lines: []string{"more"}, Line: 5},
			}, Line: 3},
		},
		Line: 1,
	})
	assert.Equal(t,
		"<ol>\n<li><p>alpha</p>\n</li>\n<li><p>beta</p>\n<p>more</p>\n</li>\n</ol>\n",
		html)
}

func TestTableShape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	html, _ := render(t, plainContext(), block.Table{
		Header:     block.Row{"Name", "Count"},
		Rows:       []block.Row{{"ticks", "42"}, {"tocks", "7"}},
		Alignments: []block.Alignment{block.AlignDefault, block.AlignCenter},
		Line:       1,
	})
	want := strings.Join([]string{
		"<table>",
		"<colgroup>",
		"<col>",
		"<col>",
		"</colgroup>",
		"<thead>",
		"<tr>",
		"<th>Name</th><th style=\"text-align: center\">Count</th>",
		"</tr>",
		"</thead>",
		"<tr>",
		"<td>ticks</td><td style=\"text-align: center\">42</td>",
		"</tr>",
		"<tr>",
		"<td>tocks</td><td style=\"text-align: center\">7</td>",
		"</tr>",
		"</table>",
	}, "\n") + "\n"
	assert.Equal(t, want, html)
	assert.NotContains(t, html, "<tbody>")
}

func TestHeaderlessTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	html, _ := render(t, plainContext(), block.Table{
		Rows:       []block.Row{{"a", "b"}},
		Alignments: []block.Alignment{block.AlignLeft, block.AlignLeft},
		Line:       1,
	})
	assert.NotContains(t, html, "<thead>")
	assert.Contains(t, html, "<td style=\"text-align: left\">a</td>")
}

func TestTableCellsAreInlineConverted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	html, _ := render(t, plainContext(), block.Table{
		Rows: []block.Row{{"*em*", "`code`"}},
		Line: 1,
	})
	assert.Contains(t, html, "<td><em>em</em></td>")
	assert.Contains(t, html, "<td><code class=\"inline\">code</code></td>")
}

func TestFootnoteBacklinkIntoTrailingParagraph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	html, _ := render(t, plainContext(), block.FnList{
		Definitions: []block.FnDef{{
			ID:     "one",
			Number: 1,
			Blocks: []block.Block{block.Para{Lines: []string{"first note"}, Line: 10}},
			Line:   10,
		}},
		Line: 10,
	})
	backlink := `<a href="#fnref:1" title="return to article" class="reversefootnote">&#x21A9;</a>`
	want := "<div class=\"footnotes\">\n<hr>\n<ol>\n" +
		"<li id=\"fn:1\"><p>first note&nbsp;" + backlink + "</p>\n</li>\n" +
		"</ol>\n\n</div>\n"
	assert.Equal(t, want, html)
}

func TestFootnoteBacklinkAsFreshParagraph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	html, _ := render(t, plainContext(), block.FnList{
		Definitions: []block.FnDef{{
			ID:     "two",
			Number: 2,
			Blocks: []block.Block{block.Code{Lines: []string{"x = 1"}, Line: 20}},
			Line:   20,
		}},
		Line: 20,
	})
	backlink := `<a href="#fnref:2" title="return to article" class="reversefootnote">&#x21A9;</a>`
	want := "<div class=\"footnotes\">\n<hr>\n<ol>\n" +
		"<li id=\"fn:2\"><pre><code>x = 1</code></pre>\n<p>" + backlink + "</p>\n</li>\n" +
		"</ol>\n\n</div>\n"
	assert.Equal(t, want, html)
}

func TestFootnoteListLeavesDefinitionsIntact(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	def := block.FnDef{
		ID:     "one",
		Number: 1,
		Blocks: []block.Block{block.Para{Lines: []string{"note"}, Line: 10}},
		Line:   10,
	}
	fl := block.FnList{Definitions: []block.FnDef{def}, Line: 10}
	render(t, plainContext(), fl)
	render(t, plainContext(), fl)
	para := fl.Definitions[0].Blocks[0].(block.Para)
	assert.Equal(t, []string{"note"}, para.Lines)
}

func TestRawHtmlIsNotEscaped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	html, _ := render(t, plainContext(),
		block.Html{Lines: []string{"<div>", "x & y", "</div>"}, Line: 1},
		block.HtmlOther{Lines: []string{"<!-- note -->"}, Line: 5})
	assert.Equal(t, "<div>\nx & y\n</div>\n<!-- note -->\n", html)
}

func TestIsolatedAttributeListRendersAsText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	html, _ := render(t, plainContext(),
		block.Ial{Content: `title="x"`, Line: 1})
	assert.Equal(t, "<p>{:title=&quot;x&quot;}</p>\n", html)
}

func TestIdDefRendersNothing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	html, msgs := render(t, plainContext(),
		block.IdDef{ID: "ref", URL: "https://x.y", Line: 1},
		block.Para{Lines: []string{"text"}, Line: 3})
	assert.Empty(t, msgs)
	assert.Equal(t, "<p>text</p>\n", html)
}

type fencePlugin struct {
	fail bool
}

func (p fencePlugin) RenderPlugin(lines []string) (string, []message.Message, error) {
	if p.fail {
		return "", nil, errors.New("fence plugin broke")
	}
	msgs := []message.Message{message.Warningf(1, "fenced %d lines", len(lines))}
	return "<aside>" + strings.Join(lines, ";") + "</aside>\n", msgs, nil
}

func TestPluginDelegation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	html, msgs := render(t, plainContext(), block.Plugin{
		Prefix:  "fence",
		Lines:   []string{"a", "b"},
		Handler: fencePlugin{},
		Line:    1,
	})
	assert.Equal(t, "<aside>a;b</aside>\n", html)
	if assert.Len(t, msgs, 1) {
		assert.Contains(t, msgs[0].Text, "fenced 2 lines")
	}
}

func TestPluginFailureAbortsRender(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	html, _, err := Render([]block.Block{
		block.Para{Lines: []string{"before"}, Line: 1},
		block.Plugin{Prefix: "fence", Lines: []string{"a"}, Handler: fencePlugin{fail: true}, Line: 3},
	}, plainContext())
	assert.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.Equal(t, "", html)
}

func TestPluginWithoutHandlerIsFatal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	_, _, err := Render([]block.Block{
		block.Plugin{Prefix: "ghost", Lines: []string{"a"}, Line: 1},
	}, plainContext())
	assert.Error(t, err)
	assert.Equal(t, core.EINTERNAL, core.Code(err))
}

func TestStrayFootnoteDefinitionIsFatal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	html, msgs, err := Render([]block.Block{
		block.Para{Lines: []string{"fine"}, Line: 1},
		block.FnDef{ID: "loose", Number: 1, Line: 3},
	}, plainContext())
	assert.Error(t, err)
	assert.Equal(t, core.EINTERNAL, core.Code(err))
	assert.Equal(t, "", html)
	assert.Empty(t, msgs)
}

// mixedBlocks builds a document large enough that a parallel run will
// finish units out of order.
func mixedBlocks(n int) []block.Block {
	blocks := make([]block.Block, 0, 3*n)
	for i := 0; i < n; i++ {
		blocks = append(blocks,
			block.Heading{Level: 2, Content: fmt.Sprintf("Section *%d*", i), Line: 10 * i},
			block.Para{
				Lines: []string{fmt.Sprintf("body `%d` with [link](/page/%d)", i, i)},
				Line:  10*i + 1,
			},
			block.Ruler{Type: block.RulerThin, Line: 10*i + 2},
		)
	}
	return blocks
}

func TestParallelMatchesSequential(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	blocks := mixedBlocks(17)
	seq := inline.NewContext(&options.Options{Mapper: options.Sequential}, HTMLHooks{})
	par := inline.NewContext(&options.Options{Mapper: options.Parallel}, HTMLHooks{})

	wantHTML, wantMsgs, err := Render(blocks, seq)
	assert.NoError(t, err)
	gotHTML, gotMsgs, err := Render(blocks, par)
	assert.NoError(t, err)

	assert.Equal(t, wantHTML, gotHTML)
	assert.Equal(t, wantMsgs, gotMsgs)
}

func TestMessagesKeepDocumentOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	blocks := make([]block.Block, 0, 24)
	for i := 0; i < 24; i++ {
		blocks = append(blocks, block.Para{
			Lines: []string{"text"},
			Attrs: block.RawAttrs("!?"),
			Line:  i + 1,
		})
	}
	_, msgs, err := Render(blocks, plainContext())
	assert.NoError(t, err)
	if assert.Len(t, msgs, 24) {
		for i, m := range msgs {
			assert.Equal(t, i+1, m.Line)
		}
	}
}

// A mapper that runs every unit but reports no failure. The driver must
// still pick the unit error out of the result slots.
func swallowingMapper(n int, renderUnit func(int) error) error {
	for i := 0; i < n; i++ {
		_ = renderUnit(i)
	}
	return nil
}

func TestDriverChecksSlotErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	ctx := inline.NewContext(&options.Options{Mapper: swallowingMapper}, HTMLHooks{})
	html, _, err := Render([]block.Block{
		block.Para{Lines: []string{"ok"}, Line: 1},
		block.FnDef{ID: "loose", Number: 1, Line: 2},
	}, ctx)
	assert.Error(t, err)
	assert.Equal(t, "", html)
}

func TestHTMLHookVocabulary(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "earmark.render")
	defer teardown()
	//
	h := HTMLHooks{}
	assert.Equal(t, "<br/>", h.Linebreak())
	assert.Equal(t, "<code class=\"inline\">x</code>", h.Codespan("x"))
	assert.Equal(t, "<em>x</em>", h.Em("x"))
	assert.Equal(t, "<strong>x</strong>", h.Strong("x"))
	assert.Equal(t, "<del>x</del>", h.Strikethrough("x"))
	assert.Equal(t, "<a href=\"/u\">x</a>", h.Link("/u", "x"))
	assert.Equal(t, "<a href=\"/u\" title=\"t\">x</a>", h.LinkTitle("/u", "t", "x"))
	assert.Equal(t, "<img src=\"/u\" alt=\"a\"/>", h.Image("/u", "a", ""))
	assert.Equal(t, "<img src=\"/u\" alt=\"a\" title=\"t\"/>", h.Image("/u", "a", "t"))
	assert.Equal(t,
		"<a href=\"#fn:3\" id=\"fnref:3\" class=\"footnote\" title=\"see footnote\">3</a>",
		h.FootnoteLink("fn:3", "fnref:3", 3))
}
