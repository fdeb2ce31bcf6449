package draw

import (
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// DrawSVG parses an SVG document from r and rasterizes it onto t,
// scaled to fill t's full bounds. This is the vector-icon counterpart
// to DrawText: panels are small enough that crisp icons usually beat
// scaled bitmaps.
func DrawSVG(t *Target, r io.Reader) error {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return err
	}
	b := t.Bounds()
	icon.SetTarget(0, 0, float64(b.Dx()), float64(b.Dy()))

	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), t, b)
	raster := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)
	icon.Draw(raster, 1.0)
	return nil
}
