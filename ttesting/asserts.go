package ttesting

import (
	"bytes"
	"image"
	"testing"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualUint32(t *testing.T, name string, got, want uint32) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualString(t *testing.T, name string, got, want string) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %q; want %q", got, want)
		}
	})
}

func AssertEqualBool(t *testing.T, name string, got, want bool) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %t; want %t", got, want)
		}
	})
}

func AssertEqualRect(t *testing.T, name string, got, want image.Rectangle) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %v; want %v", got, want)
		}
	})
}

// AssertSameRGBA compares bounds and raw pixel data of two RGBA images.
func AssertSameRGBA(t *testing.T, name string, got, want *image.RGBA) {
	t.Run(name, func(t *testing.T) {
		if got == nil || want == nil {
			t.Fatalf("got %v; want %v", got, want)
		}
		if got.Bounds() != want.Bounds() {
			t.Fatalf("bounds: got %v; want %v", got.Bounds(), want.Bounds())
		}
		if !bytes.Equal(got.Pix, want.Pix) {
			t.Errorf("pixel data differs")
		}
	})
}
