package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/anmitsu/go-shlex"
	"github.com/chzyer/readline"
	"github.com/dustin/go-humanize"

	"awesome-dragon.science/go/mcmotd/internal/config"
	"awesome-dragon.science/go/mcmotd/pkg/format/chat"
	"awesome-dragon.science/go/mcmotd/pkg/format/transformer"
	"awesome-dragon.science/go/mcmotd/pkg/log"
	"awesome-dragon.science/go/mcmotd/pkg/obfuscate"
	"awesome-dragon.science/go/mcmotd/pkg/page"
)

type cli struct {
	conf    *config.Config
	doc     *page.Document
	sched   *obfuscate.Scheduler
	parser  *page.Parser
	log     *log.Logger
	out     io.Writer
	started time.Time
	parses  int
}

type command struct {
	help string
	raw  bool // takes the rest of the line as is, without splitting
	fn   func(c *cli, raw string, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"set":     {"set <text>: replace the source text and parse it", true, (*cli).cmdSet},
		"parse":   {"parse [source target]: render source into target", false, (*cli).cmdParse},
		"show":    {"show [id]: print the document, or the inner HTML of one element", false, (*cli).cmdShow},
		"html":    {"html <text>: print static HTML for text", true, (*cli).cmdHTML},
		"strip":   {"strip <text>: print text without formatting", true, (*cli).cmdStrip},
		"irc":     {"irc <text>: print text with IRC formatting", true, (*cli).cmdIRC},
		"convert": {"convert <format> <text>: print text in another format", true, (*cli).cmdConvert},
		"chat":    {"chat <json>: convert a JSON description and parse it", true, (*cli).cmdChat},
		"clear":   {"clear: stop all obfuscation", false, (*cli).cmdClear},
		"status":  {"status: show scheduler state", false, (*cli).cmdStatus},
		"help":    {"help: list commands", false, (*cli).cmdHelp},
	}
}

func (c *cli) run(rl *readline.Instance) {
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt, either way we're done
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if line == "quit" || line == "exit" {
			return
		}

		c.dispatch(line)
	}
}

func (c *cli) dispatch(line string) {
	name, raw := line, ""
	if idx := strings.IndexByte(line, ' '); idx != -1 {
		name, raw = line[:idx], strings.TrimSpace(line[idx+1:])
	}

	cmd, ok := commands[name]
	if !ok {
		c.log.Warnf("unknown command %q, try help", name)
		return
	}

	var args []string

	if !cmd.raw {
		var err error
		if args, err = shlex.Split(raw, true); err != nil {
			c.log.Warnf("could not split arguments: %s", err)
			return
		}
	}

	if err := cmd.fn(c, raw, args); err != nil {
		c.log.Warnf("%s: %s", name, err)
	}
}

func (c *cli) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *cli) parse(source, target string) error {
	if !c.parser.Parse(source, target) {
		return fmt.Errorf("could not find both %q and %q", source, target)
	}

	c.parses++

	inner, _ := c.doc.InnerHTML(target)
	c.printf("%s\n", inner)

	return nil
}

func (c *cli) cmdSet(raw string, _ []string) error {
	if !c.doc.SetText(c.conf.Page.SourceID, raw) {
		return fmt.Errorf("no element with id %q", c.conf.Page.SourceID)
	}

	return c.parse(c.conf.Page.SourceID, c.conf.Page.TargetID)
}

func (c *cli) cmdParse(_ string, args []string) error {
	switch len(args) {
	case 0:
		return c.parse(c.conf.Page.SourceID, c.conf.Page.TargetID)
	case 2:
		return c.parse(args[0], args[1])
	default:
		return fmt.Errorf("expected zero or two arguments, got %d", len(args))
	}
}

func (c *cli) cmdShow(_ string, args []string) error {
	if len(args) == 0 {
		c.printf("%s\n", c.doc)
		return nil
	}

	inner, ok := c.doc.InnerHTML(args[0])
	if !ok {
		return fmt.Errorf("no element with id %q", args[0])
	}

	c.printf("%s\n", inner)

	return nil
}

func (c *cli) transform(format, text string) (string, error) {
	t, err := transformer.GetTransformer(format)
	if err != nil {
		return "", err
	}

	return t.Transform(text), nil
}

func (c *cli) cmdHTML(raw string, _ []string) error {
	out, err := c.transform("html", raw)
	if err != nil {
		return err
	}

	c.printf("%s\n", out)

	return nil
}

func (c *cli) cmdStrip(raw string, _ []string) error {
	out, err := c.transform("strip", raw)
	if err != nil {
		return err
	}

	c.printf("%s\n", out)

	return nil
}

func (c *cli) cmdIRC(raw string, _ []string) error {
	out, err := c.transform("irc", raw)
	if err != nil {
		return err
	}

	c.printf("%q\n", out)

	return nil
}

func (c *cli) cmdConvert(raw string, _ []string) error {
	format, text, ok := strings.Cut(raw, " ")
	if !ok || format == "" {
		return errors.New("expected a format and some text")
	}

	out, err := c.transform(format, strings.TrimSpace(text))
	if err != nil {
		return err
	}

	c.printf("%q\n", out)

	return nil
}

func (c *cli) cmdChat(raw string, _ []string) error {
	text, err := chat.Parse([]byte(raw))
	if err != nil {
		return err
	}

	return c.cmdSet(text, nil)
}

func (c *cli) cmdClear(string, []string) error {
	count := c.sched.Len()
	c.sched.Clear()
	c.printf("stopped %s obfuscation jobs\n", humanize.Comma(int64(count)))

	return nil
}

func (c *cli) cmdStatus(string, []string) error {
	c.printf(
		"%s active jobs, ticking every %s. %s parses since %s\n",
		humanize.Comma(int64(c.sched.Len())),
		c.sched.Interval(),
		humanize.Comma(int64(c.parses)),
		humanize.Time(c.started),
	)

	return nil
}

func (c *cli) cmdHelp(string, []string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		c.printf("  %s\n", commands[name].help)
	}

	c.printf("  formats for convert: %s\n", strings.Join(transformer.Names(), ", "))
	c.printf("  quit: exit\n")

	return nil
}
