package draw

import (
	"image"

	ximage "golang.org/x/image/draw"
)

// CompositeImage scales src to fill t's bounds and composites it in,
// using high-quality interpolation when upsampling small source images
// (icons, decoded PNGs) onto a panel many times their native size.
func CompositeImage(t *Target, src image.Image) {
	ximage.CatmullRom.Scale(t, t.Bounds(), src, src.Bounds(), ximage.Over, nil)
}

// CompositeImageNearest is CompositeImage's cheaper counterpart: nearest-
// neighbor scaling, appropriate for pixel-art sources where smoothing
// would blur intentionally hard edges.
func CompositeImageNearest(t *Target, src image.Image) {
	ximage.NearestNeighbor.Scale(t, t.Bounds(), src, src.Bounds(), ximage.Over, nil)
}
