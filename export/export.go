// Package export turns ordered frame sequences into files: numbered PNG
// frames, horizontal strips, animated GIFs and animated PNGs (APNG).
//
// The Encode functions write to an io.Writer; the Write functions manage
// files and always go through a temporary file renamed into place, so a
// failed export never leaves a partial file behind.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// ErrEmptySelection is returned when an export is asked to run over no
// frames at all.
var ErrEmptySelection = errors.New("nothing selected to export")

// Kind is one export output format.
type Kind int

const (
	Frames Kind = iota
	Strip
	GIF
	APNG
)

func (k Kind) String() string {
	switch k {
	case Frames:
		return "frames"
	case Strip:
		return "strip"
	case GIF:
		return "gif"
	case APNG:
		return "apng"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Ext returns the file extension for single-file kinds. APNG files carry
// the plain .png extension.
func (k Kind) Ext() string {
	if k == GIF {
		return "gif"
	}
	return "png"
}

// ParseKind parses a single kind name such as "gif".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "frames":
		return Frames, nil
	case "strip":
		return Strip, nil
	case "gif":
		return GIF, nil
	case "apng":
		return APNG, nil
	}
	return 0, errors.Errorf("unknown export kind %q", s)
}

// ParseKinds parses a comma-separated kind list such as "frames,gif",
// keeping the given order and dropping duplicates.
func ParseKinds(s string) ([]Kind, error) {
	var kinds []Kind
	seen := make(map[Kind]bool)
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		k, err := ParseKind(part)
		if err != nil {
			return nil, err
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		kinds = append(kinds, k)
	}
	if len(kinds) == 0 {
		return nil, errors.Errorf("no export kinds in %q", s)
	}
	return kinds, nil
}

// DefaultFrameDuration is how long an animation shows each frame unless
// overridden.
const DefaultFrameDuration = 100 * time.Millisecond

// Options adjust animation encoding.
type Options struct {
	// FrameDuration is how long each animation frame shows. Zero or
	// negative means DefaultFrameDuration.
	FrameDuration time.Duration
}

func (o Options) frameDuration() time.Duration {
	if o.FrameDuration <= 0 {
		return DefaultFrameDuration
	}
	return o.FrameDuration
}

// WriteFrames writes every frame as a numbered PNG (frame_000.png,
// frame_001.png, ...) into dir, creating the directory if needed.
func WriteFrames(dir string, frames []*image.RGBA) error {
	if len(frames) == 0 {
		return ErrEmptySelection
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating frames directory")
	}
	for i, f := range frames {
		path := filepath.Join(dir, fmt.Sprintf("frame_%03d.png", i))
		err := writeAtomic(path, func(w io.Writer) error {
			if err := png.Encode(w, f); err != nil {
				return errors.Wrap(err, "encoding frame png")
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	glog.V(1).Infof("wrote %d frames into %s", len(frames), dir)
	return nil
}

// WriteStrip writes a horizontal strip PNG to path.
func WriteStrip(path string, frames []*image.RGBA) error {
	return writeAtomic(path, func(w io.Writer) error {
		return EncodeStrip(w, frames)
	})
}

// WriteGIF writes a looping animated GIF to path.
func WriteGIF(path string, frames []*image.RGBA, o Options) error {
	return writeAtomic(path, func(w io.Writer) error {
		return EncodeGIF(w, frames, o)
	})
}

// WriteAPNG writes a looping animated PNG to path.
func WriteAPNG(path string, frames []*image.RGBA, o Options) error {
	return writeAtomic(path, func(w io.Writer) error {
		return EncodeAPNG(w, frames, o)
	})
}

// Write dispatches one export kind to its writer. For Frames dest is a
// directory; for the other kinds it is the output file path.
func Write(kind Kind, dest string, frames []*image.RGBA, o Options) error {
	switch kind {
	case Frames:
		return WriteFrames(dest, frames)
	case Strip:
		return WriteStrip(dest, frames)
	case GIF:
		return WriteGIF(dest, frames, o)
	case APNG:
		return WriteAPNG(dest, frames, o)
	}
	return errors.Errorf("unknown export kind %d", kind)
}

// writeAtomic writes through a temporary file in path's directory and
// renames it into place.
func writeAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return errors.Wrap(err, "creating temporary file")
	}
	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "closing temporary file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "moving export into place")
	}
	glog.V(2).Infof("wrote %s", path)
	return nil
}
