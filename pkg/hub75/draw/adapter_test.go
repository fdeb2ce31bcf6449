package draw

import (
	"image"
	"image/color"
	"testing"

	"github.com/fcurrie/hub75/pkg/hub75"
)

func TestTargetBoundsMatchFrameBuffer(t *testing.T) {
	fb, err := hub75.NewFrameBuffer(16, 8, 8)
	if err != nil {
		t.Fatalf("NewFrameBuffer: %v", err)
	}
	tgt := NewTarget(fb)
	want := image.Rect(0, 0, 16, 8)
	if tgt.Bounds() != want {
		t.Fatalf("Bounds() = %v, want %v", tgt.Bounds(), want)
	}
}

func TestTargetSetAndAtRoundTrip(t *testing.T) {
	fb, _ := hub75.NewFrameBuffer(4, 4, 8)
	tgt := NewTarget(fb)
	tgt.Set(1, 2, color.RGBA{R: 200, G: 10, B: 50, A: 255})

	got := tgt.At(1, 2)
	r, g, b, _ := got.RGBA()
	if uint8(r>>8) != 200 || uint8(g>>8) != 10 || uint8(b>>8) != 50 {
		t.Errorf("At(1,2) = %+v, want ~(200,10,50)", got)
	}
}

func TestTargetSetOutOfBoundsIsNoop(t *testing.T) {
	fb, _ := hub75.NewFrameBuffer(4, 4, 8)
	tgt := NewTarget(fb)
	tgt.Set(-1, 0, color.White)
	tgt.Set(4, 0, color.White)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			px, _ := fb.GetPixel(x, y)
			if px != hub75.Black(8) {
				t.Fatalf("out-of-bounds Set mutated in-bounds pixel (%d,%d) = %+v", x, y, px)
			}
		}
	}
}

func TestTargetSet565PacksAndUnpacks(t *testing.T) {
	fb, _ := hub75.NewFrameBuffer(2, 2, 8)
	tgt := NewTarget(fb)
	// 0xF800 = pure red at 5-6-5 (R=0x1F, G=0, B=0).
	tgt.Set565(0, 0, 0xF800)
	px, _ := fb.GetPixel(0, 0)
	if px.R < 248 || px.G != 0 || px.B != 0 {
		t.Errorf("Set565(red) -> %+v, want near-pure red", px)
	}
}

func TestTargetSet565OutOfBoundsIsNoop(t *testing.T) {
	fb, _ := hub75.NewFrameBuffer(2, 2, 8)
	tgt := NewTarget(fb)
	tgt.Set565(5, 5, 0xFFFF) // should not panic
}
