package config

import (
	"github.com/hg2ecz/rpncalc/translate"
)

var f = translate.From

// ErrKey reports a configuration global holding the wrong kind of value.
type ErrKey struct {
	Key  string
	Want string
}

func (err *ErrKey) Error() string {
	return f("config: %v must be %v", err.Key, err.Want)
}

// ErrScript reports a configuration script that failed to run.
type ErrScript struct {
	Filename string
	Err      error
}

func (err *ErrScript) Error() string {
	return f("config: %v: %v", err.Filename, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}
