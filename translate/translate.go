// Package translate renders user-facing messages through a locale-aware
// printer, so diagnostics follow the language of the calculator's user.
package translate

import (
	"sync"

	"github.com/jeandeaual/go-locale"
	"github.com/rs/zerolog/log"

	"golang.org/x/text/message"
)

// Fallback is used when the host reports no usable locale.
const Fallback = "en-US"

var printer = sync.OnceValue(func() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Warn().Err(err).Msg("rpncalc: locale")
	}

	if len(locales) == 0 {
		locales = []string{Fallback}
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
})

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer().Sprintf(key, args...)
}
