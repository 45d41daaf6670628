// Package paths locates sprite sheets in conventional asset directories.
//
// Tools take a sheet by path, but in practice sheets live in a handful of
// well-known places. This package probes those places so a bare file name
// on the command line resolves without the user spelling out the full path.
package paths

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
)

// SearchDirs returns the directories probed by Find, in probe order: the
// current directory, ./assets, ./sprites, each entry of $SPRITE_PATH, and
// the user's XDG data directory for this tool.
func SearchDirs() []string {
	dirs := []string{".", "assets", "sprites"}

	if sp := os.Getenv("SPRITE_PATH"); sp != "" {
		for _, d := range strings.Split(sp, string(os.PathListSeparator)) {
			if d != "" {
				dirs = append(dirs, d)
			}
		}
	}

	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "spritetool"))
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "spritetool"))
	}

	return dirs
}

// Find locates the passed sheet shortname and returns a path the sheet can
// be opened at.
//
// For example, for "walk.png" it may return "sprites/walk.png".
//
// An empty string means no search directory holds the file.
func Find(fileName string) string {
	for _, dir := range SearchDirs() {
		path := filepath.Join(dir, fileName)
		if f, err := os.Open(path); err == nil {
			f.Close()
			glog.Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}

	return ""
}

// Open locates the passed file in the same locations that Find would look,
// and opens it. If Find returns an empty string, an error is returned.
func Open(fileName string) (interface {
	io.ReadCloser
	io.Seeker
}, error) {
	path := Find(fileName)
	if path == "" {
		return nil, &os.PathError{Op: "open", Path: fileName, Err: os.ErrNotExist}
	}
	return os.Open(path)
}
