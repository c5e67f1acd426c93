package slice

import "math"

// Offset displaces a contour by a signed distance: positive grows the
// contour outward, negative shrinks it. Circles, ellipses and rects use
// their closed form (each radius or half-extent adjusted by d). Polygons
// use a centroid-projection approximation: every vertex moves by d along
// the ray from the polygon centroid through that vertex. This is not a
// true miter or round offset; concave polygons can self-intersect under
// large offsets.
//
// Offset returns nil when the result degenerates: any circle/ellipse
// radius or rect extent reaching zero or below, or fewer than 3 polygon
// vertices surviving.
func Offset(c *Contour, d float64) *Contour {
	if c == nil {
		return nil
	}
	switch c.Kind {
	case ContourCircle:
		r := c.Radius + d
		if r <= 0 {
			return nil
		}
		return &Contour{Kind: ContourCircle, Center: c.Center, Radius: r}

	case ContourEllipse:
		rx := c.RadiusX + d
		ry := c.RadiusY + d
		if rx <= 0 || ry <= 0 {
			return nil
		}
		return &Contour{Kind: ContourEllipse, Center: c.Center, RadiusX: rx, RadiusY: ry}

	case ContourRect:
		w := c.Width + 2*d
		h := c.Height + 2*d
		if w <= 0 || h <= 0 {
			return nil
		}
		return &Contour{Kind: ContourRect, Center: c.Center, Width: w, Height: h}

	case ContourPolygon:
		return offsetPolygon(c, d)

	default:
		return nil
	}
}

// offsetPolygon applies the centroid-projection displacement. Vertices
// that would cross the centroid (displacement past their own distance)
// are dropped as degenerate.
func offsetPolygon(c *Contour, d float64) *Contour {
	if len(c.Points) < 3 {
		return nil
	}

	cx, cy := polygonCentroid(c.Points)

	out := make([]Point2, 0, len(c.Points))
	for _, p := range c.Points {
		vx, vy := p.X-cx, p.Y-cy
		dist := math.Hypot(vx, vy)
		if dist == 0 {
			continue
		}
		scale := (dist + d) / dist
		if dist+d <= 0 {
			continue
		}
		out = append(out, Point2{X: cx + vx*scale, Y: cy + vy*scale})
	}
	if len(out) < 3 {
		return nil
	}
	return &Contour{Kind: ContourPolygon, Center: c.Center, Points: out, Closed: c.Closed}
}

// polygonCentroid returns the vertex average. The rays used by the
// centroid projection only need a stable interior point, so the cheaper
// vertex mean stands in for the area centroid.
func polygonCentroid(pts []Point2) (float64, float64) {
	var sx, sy float64
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(pts))
	return sx / n, sy / n
}
