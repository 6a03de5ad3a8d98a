package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/joshuawscott/earmark/core"
	"github.com/joshuawscott/earmark/core/options"
	"github.com/joshuawscott/earmark/input/markdown"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'earmark.md'
func tracer() tracing.Trace {
	return tracing.Select("earmark.md")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	gfm := flag.Bool("gfm", true, "Enable GFM extensions (tables)")
	footnotes := flag.Bool("footnotes", false, "Enable footnotes")
	offset := flag.Int("offset", 1, "Number of the first footnote")
	smarty := flag.Bool("smartypants", true, "Smart punctuation")
	purelinks := flag.Bool("purelinks", true, "Autolink naked URLs")
	wiki := flag.Bool("wikilinks", false, "Enable [[wiki]] links")
	breaks := flag.Bool("breaks", false, "Render every newline as a line break")
	prefix := flag.String("prefix", "", "Class prefix for fenced code languages")
	seq := flag.Bool("seq", false, "Render blocks sequentially")
	timeout := flag.Duration("timeout", 0, "Abort conversion after this duration")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":      "go",
		"trace.earmark.md":     *tlevel,
		"trace.earmark.parse":  *tlevel,
		"trace.earmark.blocks": *tlevel,
		"trace.earmark.inline": *tlevel,
		"trace.earmark.render": *tlevel,
		"trace.earmark.entity": *tlevel,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	opts := &options.Options{
		CodeClassPrefix: *prefix,
		GFM:             *gfm,
		Breaks:          *breaks,
		Footnotes:       *footnotes,
		FootnoteOffset:  *offset,
		SmartyPants:     *smarty,
		PureLinks:       *purelinks,
		WikiLinks:       *wiki,
		Timeout:         *timeout,
	}
	if *seq {
		opts.Mapper = options.Sequential
	}

	if flag.NArg() == 0 {
		repl(opts)
		return
	}
	for _, path := range flag.Args() {
		if err := convertFile(path, opts); err != nil {
			core.UserError(err)
			os.Exit(4)
		}
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " md ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// convertFile converts one file, '-' for stdin. HTML goes to stdout,
// messages go to stderr, so output stays pipeable.
func convertFile(path string, opts *options.Options) error {
	var src []byte
	var err error
	if path == "-" {
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}
	html, msgs, err := markdown.AsHTML(string(src), opts)
	for _, m := range msgs {
		fmt.Fprintln(os.Stderr, m.String())
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(os.Stdout, html)
	return err
}

// repl converts chunks of markdown interactively. A line holding a
// single '.' ends a chunk, so blank lines may separate blocks within
// one chunk.
func repl(opts *options.Options) {
	pterm.Info.Println("Welcome to the Earmark CLI")
	pterm.Info.Println("Close a chunk with a '.' on its own line, quit with <ctrl>D")
	rl, err := readline.New("md > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	lines := make([]string, 0, 32)
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}
		if strings.TrimSpace(line) == "quit" && len(lines) == 0 {
			break
		}
		if strings.TrimSpace(line) != "." {
			lines = append(lines, line)
			continue
		}
		if len(lines) == 0 {
			continue
		}
		convertChunk(strings.Join(lines, "\n"), opts)
		lines = lines[:0]
	}
	pterm.Info.Println("Good bye!")
}

func convertChunk(src string, opts *options.Options) {
	html, msgs, err := markdown.AsHTML(src, opts)
	for _, m := range msgs {
		pterm.Println(m.String())
	}
	if err != nil {
		pterm.Error.Println(core.UserMessage(err))
		return
	}
	pterm.Println(html)
}
