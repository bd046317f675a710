// Package logx wraps zerolog with environment-aware defaults so the rest of
// the codebase never touches the global logger directly.
package logx

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/telsupport/server/internal/core"
)

// Init configures the global logger for the given environment. Production
// emits structured JSON at info level; everything else gets a console writer
// with caller annotations at debug level.
func Init(env core.Environment) {
	if env.IsProduction() {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
		return
	}
	log.Logger = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Caller().Logger().Level(zerolog.DebugLevel)
}

func Debug() *zerolog.Event { return log.Debug() }

func Info() *zerolog.Event { return log.Info() }

func Warn() *zerolog.Event { return log.Warn() }

func Error() *zerolog.Event { return log.Error() }

func Fatal() *zerolog.Event { return log.Fatal() }
