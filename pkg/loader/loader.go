// SPDX-License-Identifier: AGPL-3.0-only

package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/afero"
)

// DefaultExtensions are the file extensions accepted when none are configured.
var DefaultExtensions = []string{"yaml", "yml"}

var (
	ErrNoExtension    = errors.New("no extension")
	ErrWrongExtension = errors.New("wrong extension")
	ErrNotExist       = errors.New("not exists")
)

// Loader reads the lines of files whose extension is in an allow-list.
type Loader struct {
	fs         afero.Fs
	extensions map[string]struct{}
}

// New returns a Loader reading from fs. A leading dot in extensions is ignored
// and comparison is case-insensitive. DefaultExtensions is used when extensions is empty.
func New(fs afero.Fs, extensions []string) *Loader {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[normalizeExtension(ext)] = struct{}{}
	}
	return &Loader{fs: fs, extensions: allowed}
}

// Check returns an error wrapping ErrNoExtension, ErrWrongExtension or ErrNotExist
// if path can't be loaded.
func (l *Loader) Check(path string) error {
	ext := extension(path)
	if ext == "" {
		return fmt.Errorf("%s with %w", path, ErrNoExtension)
	}
	if _, ok := l.extensions[normalizeExtension(ext)]; !ok {
		return fmt.Errorf("%s with %w", path, ErrWrongExtension)
	}

	info, err := l.fs.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%s %w", path, ErrNotExist)
	}
	return nil
}

// Load returns the lines of path in order, each with its line terminator.
func (l *Loader) Load(path string) ([]string, error) {
	if err := l.Check(path); err != nil {
		return nil, err
	}

	f, err := l.fs.Open(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "read %s", path)
	}
	return lines, nil
}

// ReadLines splits r into lines, keeping line terminators.
func ReadLines(r io.Reader) ([]string, error) {
	var (
		lines []string
		br    = bufio.NewReader(r)
	)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// extension returns the extension of the last path element without its dot.
// Dot files such as ".yaml" have no extension.
func extension(path string) string {
	base := strings.TrimLeft(filepath.Base(path), ".")
	return strings.TrimPrefix(filepath.Ext(base), ".")
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
