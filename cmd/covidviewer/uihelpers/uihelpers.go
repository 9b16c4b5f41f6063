package uihelpers

import "math"

// ComputeChartDimensions clamps a chart bitmap size so it fits inside a
// maxW x maxH area while keeping its aspect ratio. Sizes never drop below 1.
func ComputeChartDimensions(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 1, 1
	}
	if maxW <= 0 || maxH <= 0 {
		return w, h
	}
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	if scale >= 1 {
		return w, h
	}
	cw := int(math.Floor(float64(w) * scale))
	ch := int(math.Floor(float64(h) * scale))
	if cw < 1 {
		cw = 1
	}
	if ch < 1 {
		ch = 1
	}
	return cw, ch
}

// ComputeContainRect returns where an image of imgW x imgH is drawn inside a
// viewW x viewH box with contain fitting: offsets, drawn size and scale.
func ComputeContainRect(imgW, imgH, viewW, viewH float32) (x, y, w, h, scale float32) {
	if imgW <= 0 || imgH <= 0 || viewW <= 0 || viewH <= 0 {
		return 0, 0, 0, 0, 0
	}
	scale = viewW / imgW
	if s := viewH / imgH; s < scale {
		scale = s
	}
	w = imgW * scale
	h = imgH * scale
	x = (viewW - w) / 2
	y = (viewH - h) / 2
	return x, y, w, h, scale
}

// CenteredBox places a w x h box centered on (cx, cy), shifted as needed to
// stay inside a winW x winH window. Boxes larger than the window are pinned to 0.
func CenteredBox(cx, cy, w, h, winW, winH float32) (x, y float32) {
	x = cx - w/2
	y = cy - h/2
	if x+w > winW {
		x = winW - w
	}
	if y+h > winH {
		y = winH - h
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}

// TextOrigin returns the top-left position of a text of size (tw, th) centered
// on (cx, cy).
func TextOrigin(cx, cy, tw, th float32) (float32, float32) {
	return cx - tw/2, cy - th/2
}
