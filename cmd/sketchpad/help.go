package main

import (
	"bytes"
	"embed"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"text/template"

	"github.com/example/sketchpad/internal/tool"
)

//go:embed templates/*.txt
var helpFS embed.FS

var (
	helpOnce sync.Once
	helpTmpl *template.Template
)

func parseHelpTemplates() {
	helpTmpl = template.Must(template.New("").Funcs(map[string]any{
		"flags": func(fs *flag.FlagSet) []flagInfo {
			result := []flagInfo{}
			if fs == nil {
				return result
			}
			fs.VisitAll(func(f *flag.Flag) {
				result = append(result, flagInfo{f.Name, f.DefValue, f.Usage})
			})
			return result
		},
		"kinds": tool.Kinds,
		"pens":  tool.PenTypes,
	}).ParseFS(helpFS, "templates/*.txt"))
}

type flagInfo struct {
	Name     string
	DefValue string
	Usage    string
}

// HelpData is what a usage template is rendered from.
type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

// UsageError reports a bad invocation. Its message is the usage text of
// the command, preceded by the cause when there is one.
type UsageError struct {
	of  HelpData
	err error
}

func (e *UsageError) Error() string {
	help, err := renderHelp(e.of)
	if err != nil {
		return err.Error()
	}
	if e.err != nil {
		return fmt.Sprintf("error: %v\n\n%s", e.err, help)
	}
	return help
}

func (e *UsageError) Unwrap() error {
	return e.err
}

func renderHelp(h HelpData) (string, error) {
	helpOnce.Do(parseHelpTemplates)
	var buf bytes.Buffer
	if err := helpTmpl.ExecuteTemplate(&buf, h.Template(), h); err != nil {
		log.Printf("error rendering help template: %v", err)
		return "", err
	}
	return buf.String(), nil
}

// usageFunc adapts a command to flag.FlagSet.Usage.
func usageFunc(h HelpData) func() {
	return func() {
		help, err := renderHelp(h)
		if err != nil {
			return
		}
		fmt.Fprint(os.Stderr, help)
	}
}

type helpCmd struct {
	r     *root
	topic string
}

func parseHelpCmd(args []string, r *root) *helpCmd {
	h := &helpCmd{r: r}
	if len(args) > 0 {
		h.topic = args[0]
	}
	return h
}

// topicData renders the usage of a subcommand without running it.
type topicData struct {
	program  string
	template string
	fs       *flag.FlagSet
}

func (t topicData) Program() string        { return t.program }
func (t topicData) Template() string       { return t.template }
func (t topicData) FlagSet() *flag.FlagSet { return t.fs }

func (h *helpCmd) Run() error {
	var data HelpData = h.r
	switch h.topic {
	case "":
	case "draw":
		data = newDrawCmd(h.r)
	case "render":
		data = newRenderCmd(h.r)
	case "tools", "config", "version":
		data = topicData{program: h.r.subcommand(h.topic), template: h.topic + ".txt"}
	default:
		return &UsageError{of: h.r, err: fmt.Errorf("no help for %q", h.topic)}
	}
	help, err := renderHelp(data)
	if err != nil {
		return err
	}
	fmt.Fprint(h.r.stdout, help)
	return nil
}

func (r *root) Template() string {
	return "root.txt"
}

func (d *drawCmd) Template() string {
	return "draw.txt"
}

func (c *renderCmd) Template() string {
	return "render.txt"
}

func (c *toolsCmd) Template() string {
	return "tools.txt"
}

func (c *configCmd) Template() string {
	return "config.txt"
}
