package export

import (
	"image"
	"io"

	"github.com/kettek/apng"
	"github.com/pkg/errors"
)

// EncodeAPNG writes frames as a looping animated PNG at full RGBA
// fidelity. Frames dispose to background and blend as source, matching the
// GIF encoder's no-ghosting behavior.
func EncodeAPNG(w io.Writer, frames []*image.RGBA, o Options) error {
	if len(frames) == 0 {
		return ErrEmptySelection
	}
	ms := o.frameDuration().Milliseconds()
	if ms < 1 {
		ms = 1
	}
	if ms > 65535 {
		// The delay numerator is 16-bit.
		ms = 65535
	}

	a := apng.APNG{}
	for _, f := range frames {
		a.Frames = append(a.Frames, apng.Frame{
			Image:            f,
			DelayNumerator:   uint16(ms),
			DelayDenominator: 1000,
			DisposeOp:        apng.DISPOSE_OP_BACKGROUND,
			BlendOp:          apng.BLEND_OP_SOURCE,
		})
	}
	if err := apng.Encode(w, a); err != nil {
		return errors.Wrap(err, "encoding apng")
	}
	return nil
}
