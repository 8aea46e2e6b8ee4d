// Command mcmotd renders Minecraft formatted text into HTML from an interactive prompt
package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/pflag"
	"golang.org/x/sys/unix"

	"awesome-dragon.science/go/mcmotd/internal/config"
	"awesome-dragon.science/go/mcmotd/pkg/log"
	"awesome-dragon.science/go/mcmotd/pkg/obfuscate"
	"awesome-dragon.science/go/mcmotd/pkg/page"
)

var (
	configPath = pflag.StringP("config", "c", "", "Sets the configuration file to use")
	interval   = pflag.DurationP("interval", "i", 0, "overrides the obfuscation tick interval")
	verbose    = pflag.BoolP("verbose", "v", false, "log everything, including every parse")
)

func main() {
	pflag.Parse()

	rl, err := readline.New("> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not create prompt: %s\n", err)
		os.Exit(1)
	}

	defer rl.Close()

	l := log.New(log.FTimestamp, rl.Stderr(), "MAIN", log.INFO)

	conf := config.Default()
	if *configPath != "" {
		if conf, err = config.GetConfig(*configPath); err != nil {
			l.Critf("could not read config file: %s", err)
		}
	}

	l.SetMinLevel(conf.Level())
	if *verbose {
		l.SetMinLevel(log.TRACE)
	}

	if pflag.NArg() > 0 {
		conf.Page.File = pflag.Arg(0)
	}

	doc, err := loadDocument(conf)
	if err != nil {
		l.Critf("could not load page: %s", err)
	}

	opts := conf.SchedulerOptions()
	if *interval > 0 {
		opts.Interval = *interval
	}

	sched := obfuscate.NewScheduler(doc.Locker(), opts, l.Clone().SetPrefix("OBFS"))
	c := &cli{
		conf:    conf,
		doc:     doc,
		sched:   sched,
		parser:  page.NewParser(doc, sched, l.Clone().SetPrefix("PARSE")),
		log:     l,
		out:     rl.Stdout(),
		started: time.Now(),
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, unix.SIGINT, unix.SIGTERM)

	go func() {
		sig := <-sigChan
		l.Infof("Caught signal: %s", sig)
		sched.Clear()
		rl.Close()
	}()

	c.run(rl)
	sched.Clear()
}

func loadDocument(conf *config.Config) (*page.Document, error) {
	if conf.Page.File == "" {
		return page.Skeleton(conf.Page.SourceID, conf.Page.TargetID), nil
	}

	f, err := os.Open(conf.Page.File)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	return page.ParseDocument(f)
}
