package slice

import (
	"math"
	"testing"
)

func TestOffsetCircle(t *testing.T) {
	c := &Contour{Kind: ContourCircle, Center: Point2{X: 5, Y: -2}, Radius: 10}

	grown := Offset(c, 3)
	if grown == nil || !near(grown.Radius, 13) {
		t.Fatalf("grown circle = %+v, want radius 13", grown)
	}
	if grown.Center != c.Center {
		t.Errorf("offset should preserve the center, got %+v", grown.Center)
	}

	shrunk := Offset(c, -4)
	if shrunk == nil || !near(shrunk.Radius, 6) {
		t.Fatalf("shrunk circle = %+v, want radius 6", shrunk)
	}

	if Offset(c, -10) != nil {
		t.Error("shrinking to zero radius should eliminate the contour")
	}
	if Offset(c, -15) != nil {
		t.Error("shrinking past zero should eliminate the contour")
	}
}

func TestOffsetEllipse(t *testing.T) {
	c := &Contour{Kind: ContourEllipse, RadiusX: 20, RadiusY: 8}

	grown := Offset(c, 2)
	if grown == nil || !near(grown.RadiusX, 22) || !near(grown.RadiusY, 10) {
		t.Fatalf("grown ellipse = %+v, want radii (22, 10)", grown)
	}

	// The minor radius collapses first.
	if Offset(c, -8) != nil {
		t.Error("offset collapsing the minor radius should eliminate the contour")
	}
}

func TestOffsetRect(t *testing.T) {
	c := &Contour{Kind: ContourRect, Width: 100, Height: 60}

	grown := Offset(c, 3)
	if grown == nil || !near(grown.Width, 106) || !near(grown.Height, 66) {
		t.Fatalf("grown rect = %+v, want 106x66", grown)
	}

	shrunk := Offset(c, -3)
	if shrunk == nil || !near(shrunk.Width, 94) || !near(shrunk.Height, 54) {
		t.Fatalf("shrunk rect = %+v, want 94x54", shrunk)
	}

	if Offset(c, -30) != nil {
		t.Error("offset consuming the height should eliminate the contour")
	}
}

func TestOffsetPolygonCentroidProjection(t *testing.T) {
	// A square with corners at distance sqrt(200) from the centroid.
	// Offsetting by that same distance doubles every corner position.
	square := &Contour{
		Kind:   ContourPolygon,
		Points: []Point2{{10, 10}, {-10, 10}, {-10, -10}, {10, -10}},
		Closed: true,
	}
	d := math.Hypot(10, 10)

	out := Offset(square, d)
	if out == nil {
		t.Fatal("offset square should survive")
	}
	if len(out.Points) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(out.Points))
	}
	want := []Point2{{20, 20}, {-20, 20}, {-20, -20}, {20, -20}}
	for i, p := range out.Points {
		if !near(p.X, want[i].X) || !near(p.Y, want[i].Y) {
			t.Errorf("vertex %d = (%v, %v), want (%v, %v)", i, p.X, p.Y, want[i].X, want[i].Y)
		}
	}
	if !out.Closed {
		t.Error("offset should preserve closedness")
	}
}

func TestOffsetPolygonCollapse(t *testing.T) {
	square := &Contour{
		Kind:   ContourPolygon,
		Points: []Point2{{10, 10}, {-10, 10}, {-10, -10}, {10, -10}},
		Closed: true,
	}

	// Displacement past the centroid drops every vertex.
	if Offset(square, -20) != nil {
		t.Error("offset past the centroid should eliminate the polygon")
	}

	degenerate := &Contour{Kind: ContourPolygon, Points: []Point2{{0, 0}, {1, 0}}}
	if Offset(degenerate, 1) != nil {
		t.Error("a two-point polygon is not offsettable")
	}
}

func TestOffsetNil(t *testing.T) {
	if Offset(nil, 1) != nil {
		t.Error("nil contour should offset to nil")
	}
}

func TestIsCircle(t *testing.T) {
	circle := &Contour{Kind: ContourCircle, Radius: 5}
	if !circle.IsCircle() || !near(circle.CircleRadius(), 5) {
		t.Error("circle contour should report as circle")
	}

	round := &Contour{Kind: ContourEllipse, RadiusX: 7, RadiusY: 7}
	if !round.IsCircle() {
		t.Error("equal-radius ellipse should report as circle")
	}
	if !near(round.CircleRadius(), 7) {
		t.Errorf("CircleRadius = %v, want 7", round.CircleRadius())
	}

	oval := &Contour{Kind: ContourEllipse, RadiusX: 7, RadiusY: 5}
	if oval.IsCircle() {
		t.Error("unequal-radius ellipse is not a circle")
	}

	rect := &Contour{Kind: ContourRect, Width: 2, Height: 2}
	if rect.IsCircle() {
		t.Error("rect is not a circle")
	}
}

func TestVertices(t *testing.T) {
	rect := &Contour{Kind: ContourRect, Center: Point2{X: 1, Y: 2}, Width: 10, Height: 4}
	pts := rect.Vertices(64)
	if len(pts) != 5 {
		t.Fatalf("rect polyline should have 5 points, got %d", len(pts))
	}
	if pts[0] != pts[4] {
		t.Error("rect polyline should close on its start point")
	}
	if !near(pts[0].X, 6) || !near(pts[0].Y, 4) {
		t.Errorf("start corner (%v, %v), want (6, 4)", pts[0].X, pts[0].Y)
	}

	circle := &Contour{Kind: ContourCircle, Radius: 10}
	pts = circle.Vertices(32)
	if len(pts) != 33 {
		t.Fatalf("circle polyline should have segments+1 points, got %d", len(pts))
	}
	if pts[0] != pts[len(pts)-1] {
		t.Error("circle polyline should close exactly on its start point")
	}
	if !near(pts[0].X, 10) || !near(pts[0].Y, 0) {
		t.Errorf("circle polyline should start at the +X extreme, got (%v, %v)", pts[0].X, pts[0].Y)
	}
}
