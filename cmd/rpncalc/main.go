package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/hg2ecz/rpncalc/config"
	"github.com/hg2ecz/rpncalc/internal"
	"github.com/hg2ecz/rpncalc/machine"
	"github.com/hg2ecz/rpncalc/session"
)

const banner = "RPN complex calculator. Type 'help' for the command list, 'q' to leave."

// Prompt while a subroutine definition is open.
const continuation = ".. "

// fileList collects repeated -f flags.
type fileList []string

func (fl *fileList) String() string {
	return strings.Join(*fl, ",")
}

func (fl *fileList) Set(value string) error {
	*fl = append(*fl, value)
	return nil
}

func main() {
	var files fileList
	var rcfile string
	var quiet bool
	var verbose bool
	var help bool

	flag.Var(&files, "f", "Script file to run before standard input (repeatable)")
	flag.StringVar(&rcfile, "c", config.DefaultPath(), "Starlark configuration script")
	flag.BoolVar(&quiet, "q", false, "Quiet mode, no banner")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&help, "h", false, "Show the command list and exit")

	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if flag.NArg() != 0 {
		log.Fatal().Strs("args", flag.Args()).Msgf("%v: Unknown arguments", os.Args[0])
	}

	cfg := loadConfig(rcfile)
	if verbose {
		cfg.Verbose = true
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	s := session.NewSession(os.Stdout, os.Stderr)

	if help {
		s.Line("help")
		flag.PrintDefaults()
		return
	}

	err := s.Configure(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("config", rcfile).Msg("configure")
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	defer signal.Stop(sigc)
	go func() {
		for range sigc {
			// A second interrupt with no loop to stop ends the process.
			if s.Interrupting() {
				os.Exit(130)
			}
			s.Interrupt()
		}
	}()

	for _, filename := range append(cfg.Files, files...) {
		err = runFile(s, filename)
		if errors.Is(err, machine.ErrQuit) {
			bye()
		}
		if err != nil {
			log.Fatal().Err(err).Str("file", filename).Msg("preload")
		}
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		if !quiet {
			fmt.Println(banner)
		}
		err = interactive(s, cfg)
	} else {
		var readErr error
		err = s.Lines(internal.Lines(os.Stdin, &readErr))
		if readErr != nil {
			log.Fatal().Err(readErr).Msg("stdin")
		}
	}

	if errors.Is(err, machine.ErrQuit) {
		bye()
	}
}

// loadConfig runs the configuration script. A missing default script is not an error.
func loadConfig(rcfile string) (cfg *config.Config) {
	if len(rcfile) == 0 {
		return config.Default()
	}

	cfg, err := config.Load(rcfile, nil)
	if errors.Is(err, os.ErrNotExist) && rcfile == config.DefaultPath() {
		return config.Default()
	}
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	return
}

// runFile feeds every line of a script file to the session.
func runFile(s *session.Session, filename string) (err error) {
	inf, err := os.Open(filename)
	if err != nil {
		return
	}
	defer inf.Close()

	var readErr error
	err = s.Lines(internal.Lines(inf, &readErr))
	if err == nil {
		err = readErr
	}

	return
}

// interactive reads lines with editing, completion and history.
func interactive(s *session.Session, cfg *config.Config) (err error) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	ln.SetCompleter(func(line string) (c []string) {
		head := strings.LastIndexAny(line, " \t") + 1
		prefix, word := line[:head], line[head:]
		for _, candidate := range s.Words() {
			if strings.HasPrefix(candidate, word) {
				c = append(c, prefix+candidate)
			}
		}
		return
	})

	if len(cfg.History) != 0 {
		if f, err := os.Open(cfg.History); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(cfg.History); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		prompt := cfg.Prompt
		if s.Assembler.Defining() {
			prompt = continuation
		}

		var line string
		line, err = ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println()
			err = nil
			return
		}
		if err != nil {
			return
		}

		if len(strings.TrimSpace(line)) != 0 {
			ln.AppendHistory(line)
		}

		err = s.Line(line)
		if err != nil {
			return
		}
	}
}

func bye() {
	fmt.Fprintln(os.Stderr, "Exit from calculator. Bye.")
	os.Exit(0)
}
