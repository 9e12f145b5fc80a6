// Package log builds the logrus logger used by the command line tool.
package log

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/lanrat/sortpar/internal/errors"
)

// DefaultLevel keeps the tool quiet unless something goes wrong
const DefaultLevel = logrus.WarnLevel

// New returns a logger writing to out at the given level name.
// Colors are only enabled when out is a terminal.
func New(out io.Writer, level string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)

	lvl := DefaultLevel
	if level != "" {
		var err error
		if lvl, err = logrus.ParseLevel(level); err != nil {
			return nil, errors.WithStackTrace(err)
		}
	}
	logger.SetLevel(lvl)

	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:    !isTerminal(out),
		DisableTimestamp: true,
	})
	return logger, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
