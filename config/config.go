// Package config loads the calculator start-up settings from a Starlark
// script. Settings are plain global assignments:
//
//	precision = 4
//	verbose = False
//	prompt = "rpn> "
//	history = "/home/me/.rpncalc_history"
//	files = ["lib.rpn"]
//	registers = {0: pi, 1: e}
//	subroutines = {"sq": "dup *", "cube": "dup sq *"}
package config

import (
	"math"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Name of the per-user configuration script in the home directory.
const DefaultName = ".rpncalc.star"

// Subroutine is a named body compiled at start-up.
type Subroutine struct {
	Name string
	Body string
}

// Config holds the start-up settings.
type Config struct {
	Precision   int             // Print decimals, 0 for shortest form.
	Verbose     bool            // Trace assembly and execution.
	Prompt      string          // Interactive prompt.
	History     string          // Interactive history file, empty for none.
	Files       []string        // Script files run before standard input.
	Registers   map[int]float64 // Initial register values.
	Subroutines []Subroutine    // Subroutines in definition order.
}

// Default returns the settings used without a configuration script.
func Default() *Config {
	return &Config{
		Prompt:    "> ",
		Registers: map[int]float64{},
	}
}

// DefaultPath returns the per-user configuration script path, or an
// empty string when there is no home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultName)
}

// predeclared names visible to configuration scripts.
var predeclared = starlark.StringDict{
	"pi": starlark.Float(math.Pi),
	"e":  starlark.Float(math.E),
}

// Load runs a configuration script. If src is nil the script is read
// from filename, otherwise src (string or []byte) is the script text.
// Unknown globals are ignored.
func Load(filename string, src any) (cfg *Config, err error) {
	thread := &starlark.Thread{
		Name: "config",
		Print: func(_ *starlark.Thread, msg string) {
			log.Info().Str("config", filename).Msg(msg)
		},
	}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, thread, filename, src, predeclared)
	if err != nil {
		err = &ErrScript{Filename: filename, Err: err}
		return
	}

	cfg = Default()
	err = cfg.apply(globals)
	if err != nil {
		cfg = nil
	}

	return
}

// apply copies recognised globals into the configuration.
func (cfg *Config) apply(globals starlark.StringDict) (err error) {
	for _, key := range globals.Keys() {
		value := globals[key]
		switch key {
		case "precision":
			n, ok := toInt(value)
			if !ok || n < 0 || n > 17 {
				return &ErrKey{Key: key, Want: "an int from 0 to 17"}
			}
			cfg.Precision = n
		case "verbose":
			b, ok := value.(starlark.Bool)
			if !ok {
				return &ErrKey{Key: key, Want: "a bool"}
			}
			cfg.Verbose = bool(b)
		case "prompt", "history":
			s, ok := starlark.AsString(value)
			if !ok {
				return &ErrKey{Key: key, Want: "a string"}
			}
			if key == "prompt" {
				cfg.Prompt = s
			} else {
				cfg.History = s
			}
		case "files":
			list, ok := value.(starlark.Indexable)
			if !ok {
				return &ErrKey{Key: key, Want: "a list of strings"}
			}
			for n := range list.Len() {
				s, ok := starlark.AsString(list.Index(n))
				if !ok {
					return &ErrKey{Key: key, Want: "a list of strings"}
				}
				cfg.Files = append(cfg.Files, s)
			}
		case "registers":
			dict, ok := value.(*starlark.Dict)
			if !ok {
				return &ErrKey{Key: key, Want: "a dict of int to number"}
			}
			for _, item := range dict.Items() {
				reg, ok := toInt(item[0])
				if !ok || reg < 0 || reg > 255 {
					return &ErrKey{Key: key, Want: "a dict with register numbers from 0 to 255"}
				}
				x, ok := toFloat(item[1])
				if !ok {
					return &ErrKey{Key: key, Want: "a dict of int to number"}
				}
				cfg.Registers[reg] = x
			}
		case "subroutines":
			dict, ok := value.(*starlark.Dict)
			if !ok {
				return &ErrKey{Key: key, Want: "a dict of string to string"}
			}
			for _, item := range dict.Items() {
				name, okName := starlark.AsString(item[0])
				body, okBody := starlark.AsString(item[1])
				if !okName || !okBody {
					return &ErrKey{Key: key, Want: "a dict of string to string"}
				}
				cfg.Subroutines = append(cfg.Subroutines, Subroutine{Name: name, Body: body})
			}
		}
	}

	return
}

func toInt(value starlark.Value) (n int, ok bool) {
	i, ok := value.(starlark.Int)
	if !ok {
		return
	}
	i64, ok := i.Int64()
	n = int(i64)
	return
}

func toFloat(value starlark.Value) (x float64, ok bool) {
	switch v := value.(type) {
	case starlark.Float:
		return float64(v), true
	case starlark.Int:
		return float64(v.Float()), true
	}
	return
}
