package ballcolor

import (
	"image"
	"sort"

	"gonum.org/v1/gonum/stat"

	"gocv.io/x/gocv"
)

// Template is the color signature of one ball, built once per shot from
// a pre-impact frame. Immutable after extraction.
type Template struct {
	Family Family
	Hue    float64
	Sat    float64
	Val    float64
	HueStd float64
	SatStd float64
	ValStd float64
}

// minCropPx is the smallest usable crop edge. Below this the sample is
// dominated by background bleed and extraction refuses.
const minCropPx = 6

// Extract crops a region around the normalized position (x, y), converts
// it to HSV and builds a Template from the median H/S/V over the inner
// 50% of the crop. The edge trim keeps grass and tee pixels out of the
// signature. Returns false on a degenerate crop.
func Extract(img gocv.Mat, x, y float64, cropPx int) (Template, bool) {
	if img.Empty() || cropPx < minCropPx {
		return Template{}, false
	}

	cols, rows := img.Cols(), img.Rows()
	cx, cy := int(x*float64(cols)), int(y*float64(rows))

	half := cropPx / 2
	x0, y0 := clampInt(cx-half, 0, cols-1), clampInt(cy-half, 0, rows-1)
	x1, y1 := clampInt(cx+half, 0, cols), clampInt(cy+half, 0, rows)
	if x1-x0 < minCropPx || y1-y0 < minCropPx {
		return Template{}, false
	}

	crop := img.Region(image.Rect(x0, y0, x1, y1))
	defer crop.Close()

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(crop, &hsv, gocv.ColorBGRToHSV)

	// Inner 50% of the crop.
	w, h := hsv.Cols(), hsv.Rows()
	ix0, iy0 := w/4, h/4
	ix1, iy1 := w-w/4, h-h/4

	n := (ix1 - ix0) * (iy1 - iy0)
	if n < 4 {
		return Template{}, false
	}
	hs := make([]float64, 0, n)
	ss := make([]float64, 0, n)
	vs := make([]float64, 0, n)
	for py := iy0; py < iy1; py++ {
		for px := ix0; px < ix1; px++ {
			vec := hsv.GetVecbAt(py, px)
			hs = append(hs, float64(vec[0]))
			ss = append(ss, float64(vec[1]))
			vs = append(vs, float64(vec[2]))
		}
	}

	tmpl := Template{
		Hue:    median(hs),
		Sat:    median(ss),
		Val:    median(vs),
		HueStd: stat.StdDev(hs, nil),
		SatStd: stat.StdDev(ss, nil),
		ValStd: stat.StdDev(vs, nil),
	}
	tmpl.Family = Classify(tmpl.Hue, tmpl.Sat, tmpl.Val)
	return tmpl, true
}

func median(xs []float64) float64 {
	sort.Float64s(xs)
	return stat.Quantile(0.5, stat.Empirical, xs, nil)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
