// Package lineio reads the lines to sort from files or standard input and
// writes the sorted lines back out.
package lineio

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"

	"github.com/lanrat/sortpar/internal/errors"
)

// StdinName is the input name that stands for standard input
const StdinName = "-"

// readBufferSize is the read buffer for each input
const readBufferSize = 1 << 16 // 64k

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Reader loads every line of its inputs into memory
type Reader struct {
	// Stdin is read for StdinName, os.Stdin when nil
	Stdin io.Reader
	// Decompress transparently decompresses gzip and zstd inputs
	Decompress bool
	// Logger receives debug and warning entries, nothing is logged when nil
	Logger logrus.FieldLogger
}

// ReadLines reads the named inputs in order and returns all of their lines.
// Line terminators are removed and lines that are not valid UTF-8 are dropped.
// The first input that cannot be opened or read aborts the read.
func (r *Reader) ReadLines(names []string) ([]string, error) {
	var lines []string
	for _, name := range names {
		var err error
		before := len(lines)
		if lines, err = r.readNamed(name, lines); err != nil {
			return nil, err
		}
		r.logger().WithFields(logrus.Fields{"input": name, "lines": len(lines) - before}).Debug("read input")
	}
	return lines, nil
}

func (r *Reader) readNamed(name string, lines []string) ([]string, error) {
	if name == StdinName {
		stdin := r.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		lines, err := r.Read(stdin, name, lines)
		return lines, errors.WithStackTraceAndPrefix(err, "reading standard input")
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}
	defer f.Close()

	lines, err = r.Read(f, name, lines)
	return lines, errors.WithStackTraceAndPrefix(err, "reading %s", name)
}

// Read appends every line of in to lines. name is only used for logging.
func (r *Reader) Read(in io.Reader, name string, lines []string) ([]string, error) {
	br := bufio.NewReaderSize(in, readBufferSize)
	if r.Decompress {
		dr, err := decompressor(br)
		if err != nil {
			return lines, err
		}
		if dr != nil {
			defer dr.Close()
			br = bufio.NewReaderSize(dr, readBufferSize)
		}
	}

	dropped := 0
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if utf8.ValidString(line) {
				lines = append(lines, line)
			} else {
				dropped++
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return lines, err
		}
	}

	if dropped > 0 {
		r.logger().WithFields(logrus.Fields{"input": name, "dropped": dropped}).Warn("skipped lines that are not valid UTF-8")
	}
	return lines, nil
}

// decompressor returns a reader decompressing br when it starts with a
// gzip or zstd header, or nil when br is not compressed
func decompressor(br *bufio.Reader) (io.ReadCloser, error) {
	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return nil, err
	}

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return zr, nil
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	}
	return nil, nil
}

func (r *Reader) logger() logrus.FieldLogger {
	if r.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		r.Logger = l
	}
	return r.Logger
}
