package lineio

import (
	"bufio"
	"io"
	"os"

	"github.com/gofrs/flock"

	"github.com/lanrat/sortpar/internal/errors"
)

const writeBufferSize = 1 << 16 // 64k

// WriteLines writes each line followed by a newline
func WriteLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriterSize(w, writeBufferSize)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return errors.WithStackTrace(err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return errors.WithStackTrace(err)
		}
	}
	return errors.WithStackTrace(bw.Flush())
}

// WriteFile replaces the content of path with lines.
// The file is locked while it is truncated and written, so concurrent writers
// to the same path are serialized.
func WriteFile(path string, lines []string) (err error) {
	// created before locking so flock does not create it with its own permissions
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0o666)
	if err != nil {
		return errors.WithStackTrace(err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errors.WithStackTraceAndPrefix(closeErr, "closing %s", path)
		}
	}()

	lock := flock.New(path)
	if err := lock.Lock(); err != nil {
		return errors.WithStackTraceAndPrefix(err, "locking %s", path)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil && err == nil {
			err = errors.WithStackTraceAndPrefix(unlockErr, "unlocking %s", path)
		}
	}()

	if err := f.Truncate(0); err != nil {
		return errors.WithStackTraceAndPrefix(err, "truncating %s", path)
	}
	if err := WriteLines(f, lines); err != nil {
		return errors.WithStackTraceAndPrefix(err, "writing %s", path)
	}
	return nil
}
