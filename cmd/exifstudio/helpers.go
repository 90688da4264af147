package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"exifstudio/internal/registry"
	"exifstudio/internal/session"
)

// resolveFile maps a user-supplied reference to a file in the session. The
// reference may be a 1-based list position, a file id or unique id prefix, or
// an exact file name. An empty reference resolves to the selected file.
func resolveFile(sess *session.Session, ref string) (*registry.File, error) {
	ref = strings.TrimSpace(ref)
	reg := sess.Registry()

	if ref == "" {
		file, ok := reg.Selected()
		if !ok {
			return nil, errors.New("no file selected; add files first or pass a file reference")
		}
		return file, nil
	}

	files := reg.List()
	if pos, err := strconv.Atoi(ref); err == nil {
		if pos < 1 || pos > len(files) {
			return nil, fmt.Errorf("file position %d out of range (1-%d)", pos, len(files))
		}
		return files[pos-1], nil
	}

	if file, ok := reg.Get(ref); ok {
		return file, nil
	}

	var prefixMatches []*registry.File
	for _, file := range files {
		if file.Name == ref {
			return file, nil
		}
		if strings.HasPrefix(file.ID, ref) {
			prefixMatches = append(prefixMatches, file)
		}
	}
	switch len(prefixMatches) {
	case 1:
		return prefixMatches[0], nil
	case 0:
		return nil, fmt.Errorf("no file matches %q", ref)
	default:
		return nil, fmt.Errorf("%q is ambiguous; use a longer id prefix", ref)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

const (
	ansiGreen = "\x1b[32m"
	ansiReset = "\x1b[0m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func selectionMarker(colorize bool) string {
	if colorize {
		return ansiGreen + "*" + ansiReset
	}
	return "*"
}
