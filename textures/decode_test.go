package textures

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestCheckerboard(t *testing.T) {
	img := Checkerboard(8, 2)

	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Fatalf("Checkerboard(8, 2) bounds = %v; want 8x8", img.Bounds())
	}

	magenta := color.RGBA{R: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}
	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, magenta},
		{2, 0, black},
		{0, 2, black},
		{2, 2, magenta},
		{4, 0, magenta},
	}
	for _, tc := range tests {
		if got := img.RGBAAt(tc.x, tc.y); got != tc.want {
			t.Errorf("Checkerboard at (%d,%d) = %v; want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestVFlip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 2))
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	src.SetRGBA(0, 0, red)
	src.SetRGBA(0, 1, blue)

	flipped := VFlip(src)

	if got := flipped.RGBAAt(0, 0); got != blue {
		t.Errorf("flipped top = %v; want %v", got, blue)
	}
	if got := flipped.RGBAAt(0, 1); got != red {
		t.Errorf("flipped bottom = %v; want %v", got, red)
	}
}

func TestDecodeBytes(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(1, 1, color.RGBA{G: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	img, err := DecodeBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Errorf("decoded bounds = %v; want 2x2", img.Bounds())
	}
}

func TestDecodeBytesGarbage(t *testing.T) {
	if _, err := DecodeBytes([]byte("not an image")); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestDecodeFileMissing(t *testing.T) {
	if _, err := DecodeFile("/nonexistent/texture.png"); err == nil {
		t.Error("expected error for missing file")
	}
}
