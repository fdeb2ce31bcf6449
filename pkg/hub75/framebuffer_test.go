package hub75

import "testing"

func TestNewFrameBufferRejectsBadDimensions(t *testing.T) {
	if _, err := NewFrameBuffer(0, 8, 4); err == nil {
		t.Error("want error for zero width")
	}
	if _, err := NewFrameBuffer(8, 7, 4); err == nil {
		t.Error("want error for odd height")
	}
	fb, err := NewFrameBuffer(8, 8, 4)
	if err != nil {
		t.Fatalf("NewFrameBuffer: %v", err)
	}
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c, _ := fb.GetPixel(x, y)
			if c != Black(4) {
				t.Fatalf("pixel (%d,%d) = %+v, want black", x, y, c)
			}
		}
	}
}

func TestPixelBounds(t *testing.T) {
	fb, _ := NewFrameBuffer(4, 4, 4)
	red := Red(4)

	if err := fb.SetPixel(4, 0, red); err == nil {
		t.Error("SetPixel(W,.) should return InvalidCoordinates")
	}
	if err := fb.SetPixel(0, 4, red); err == nil {
		t.Error("SetPixel(.,H) should return InvalidCoordinates")
	}

	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := NewColor(4, uint8(x), uint8(y), 1)
			if err := fb.SetPixel(x, y, c); err != nil {
				t.Fatalf("SetPixel(%d,%d): %v", x, y, err)
			}
			got, err := fb.GetPixel(x, y)
			if err != nil {
				t.Fatalf("GetPixel(%d,%d): %v", x, y, err)
			}
			if got != c {
				t.Errorf("round-trip (%d,%d) = %+v, want %+v", x, y, got, c)
			}
		}
	}
}

func TestFillClearIdempotence(t *testing.T) {
	fb, _ := NewFrameBuffer(4, 4, 4)
	c := Green(4)
	fb.Fill(c)
	snap := make([]Color, len(fb.pixels))
	copy(snap, fb.pixels)
	fb.Fill(c)
	for i, px := range fb.pixels {
		if px != snap[i] {
			t.Fatalf("Fill not idempotent at %d", i)
		}
	}
	fb.Clear()
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			got, _ := fb.GetPixel(x, y)
			if got != Black(4) {
				t.Fatalf("Clear left non-black pixel at (%d,%d): %+v", x, y, got)
			}
		}
	}
}

func TestCopyAndSwap(t *testing.T) {
	a, _ := NewFrameBuffer(4, 4, 4)
	b, _ := NewFrameBuffer(4, 4, 4)
	b.Fill(Blue(4))

	if err := a.CopyFrom(b); err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}
	if !a.Equal(b) {
		t.Fatal("CopyFrom did not make a equal to b")
	}

	c, _ := NewFrameBuffer(4, 4, 4)
	c.Fill(Red(4))
	aBefore := make([]Color, len(a.pixels))
	copy(aBefore, a.pixels)

	a.Swap(c)
	for _, px := range a.pixels {
		if px != Red(4) {
			t.Fatal("Swap did not move c's contents into a")
		}
	}
	for i, px := range c.pixels {
		if px != aBefore[i] {
			t.Fatal("Swap did not move a's original contents into c")
		}
	}
}

func TestRowBitPlaneShape(t *testing.T) {
	fb, _ := NewFrameBuffer(4, 4, 4)
	for x := 0; x < 4; x++ {
		fb.SetPixelUnchecked(x, 0, NewColor(4, uint8(x), 0, 0))
		fb.SetPixelUnchecked(x, 2, NewColor(4, 0, uint8(x), 0))
	}

	row, err := fb.RowBitPlane(0, 1)
	if err != nil {
		t.Fatalf("RowBitPlane: %v", err)
	}
	if len(row) != fb.Width {
		t.Fatalf("len(row) = %d, want %d", len(row), fb.Width)
	}
	for x, rb := range row {
		upper, _ := fb.GetPixel(x, 0)
		lower, _ := fb.GetPixel(x, 2)
		ur, ug, ub := upper.GetBit(1)
		lr, lg, lb := lower.GetBit(1)
		if rb.UR != ur || rb.UG != ug || rb.UB != ub || rb.LR != lr || rb.LG != lg || rb.LB != lb {
			t.Errorf("column %d = %+v, want upper=%v/%v/%v lower=%v/%v/%v", x, rb, ur, ug, ub, lr, lg, lb)
		}
	}

	if _, err := fb.RowBitPlane(2, 0); err == nil {
		t.Error("row >= Height/2 should return InvalidCoordinates")
	}
	if _, err := fb.RowBitPlane(0, 4); err == nil {
		t.Error("plane >= Bits should return InvalidColor")
	}
}

func TestRowBitPlaneFuncMatchesSliceForm(t *testing.T) {
	fb, _ := NewFrameBuffer(6, 4, 4)
	for x := 0; x < 6; x++ {
		fb.SetPixelUnchecked(x, 0, NewColor(4, uint8(x), uint8(x+1), uint8(x+2)))
		fb.SetPixelUnchecked(x, 2, NewColor(4, uint8(2*x), uint8(x), uint8(x)))
	}
	slice, err := fb.RowBitPlane(0, 2)
	if err != nil {
		t.Fatalf("RowBitPlane: %v", err)
	}
	var viaFunc []RowBit
	if err := fb.RowBitPlaneFunc(0, 2, func(_ int, rb RowBit) { viaFunc = append(viaFunc, rb) }); err != nil {
		t.Fatalf("RowBitPlaneFunc: %v", err)
	}
	if len(viaFunc) != len(slice) {
		t.Fatalf("len mismatch: %d vs %d", len(viaFunc), len(slice))
	}
	for i := range slice {
		if slice[i] != viaFunc[i] {
			t.Errorf("column %d: slice=%+v func=%+v", i, slice[i], viaFunc[i])
		}
	}
}

func TestRGBDataRoundTrip(t *testing.T) {
	fb, _ := NewFrameBuffer(2, 2, 8)
	data := []byte{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 128, 128, 128,
	}
	if err := fb.FromRGBData(data); err != nil {
		t.Fatalf("FromRGBData: %v", err)
	}
	out := fb.ToRGBData()
	if len(out) != len(data) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(data))
	}
	for i := range data {
		if out[i] != data[i] {
			t.Errorf("byte %d = %d, want %d", i, out[i], data[i])
		}
	}
}

func TestFromRGBDataLengthMismatch(t *testing.T) {
	fb, _ := NewFrameBuffer(2, 2, 8)
	data := make([]byte, 2*2*3-1)
	err := fb.FromRGBData(data)
	if err == nil {
		t.Fatal("want InvalidColor error for short stream")
	}
	if _, ok := err.(*InvalidColorError); !ok {
		t.Errorf("err type = %T, want *InvalidColorError", err)
	}
}
