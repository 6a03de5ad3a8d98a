package markdown

import (
	"errors"
	"time"

	"github.com/joshuawscott/earmark/core"
	"github.com/joshuawscott/earmark/core/message"
	"github.com/joshuawscott/earmark/core/options"
	"github.com/joshuawscott/earmark/engine/block"
	"github.com/joshuawscott/earmark/engine/inline"
	"github.com/joshuawscott/earmark/engine/parse"
	"github.com/joshuawscott/earmark/engine/render"
)

// ErrTimeout reports a conversion cut short by the Timeout option.
var ErrTimeout = errors.New("conversion timed out")

// AsHTML converts markdown source to an HTML fragment. A nil opts
// selects options.Default. Messages from parsing and rendering arrive
// concatenated, in document order.
func AsHTML(src string, opts *options.Options) (string, []message.Message, error) {
	if opts == nil {
		opts = options.Default()
	}
	doc, msgs := parse.Parse(src, opts)
	ctx := inline.NewContext(opts, render.HTMLHooks{})
	ctx.Links = doc.Links
	ctx.Footnotes = doc.Footnotes
	html, rmsgs, err := renderWithin(doc.Blocks, ctx, opts.Timeout)
	msgs = append(msgs, rmsgs...)
	if err != nil {
		tracer().Errorf("conversion aborted: %v", err)
		return "", msgs, err
	}
	return html, msgs, nil
}

// AsHTMLFragment renders an already-parsed block list. A bare fragment
// renders with empty symbol tables: reference links and footnotes
// resolve only when converting a full document through AsHTML.
func AsHTMLFragment(blocks []block.Block, opts *options.Options) (string, []message.Message, error) {
	if opts == nil {
		opts = options.Default()
	}
	ctx := inline.NewContext(opts, render.HTMLHooks{})
	return renderWithin(blocks, ctx, opts.Timeout)
}

type result struct {
	html string
	msgs []message.Message
	err  error
}

// renderWithin bounds one rendering run. The runaway goroutine of a
// timed-out render is abandoned; renderers are pure, so it holds no
// resources worth reclaiming.
func renderWithin(blocks []block.Block, ctx *inline.Context, timeout time.Duration) (string, []message.Message, error) {
	if timeout <= 0 {
		return render.Render(blocks, ctx)
	}
	done := make(chan result, 1)
	go func() {
		html, msgs, err := render.Render(blocks, ctx)
		done <- result{html: html, msgs: msgs, err: err}
	}()
	select {
	case res := <-done:
		return res.html, res.msgs, res.err
	case <-time.After(timeout):
		return "", nil, core.WrapError(ErrTimeout, core.EINTERNAL,
			"conversion did not finish within %v", timeout)
	}
}
