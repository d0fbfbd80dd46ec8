package track

import (
	"math"
	"testing"

	"github.com/lixenwraith/vi-racer/vmath"
)

func TestClassifyBoundaryInclusive(t *testing.T) {
	const width = 10.0
	c := MustGenerate([]Segment{Straight(20)})

	onEdge := Classify(vmath.Vec2{X: width / 2, Z: 10}, c, width)
	if !onEdge.OnTrack {
		t.Errorf("Expected position at half width to be on track, got %+v", onEdge)
	}
	if onEdge.NearestDistance != width/2 {
		t.Errorf("Expected nearest distance %v, got %v", width/2, onEdge.NearestDistance)
	}

	past := Classify(vmath.Vec2{X: width/2 + 1e-9, Z: 10}, c, width)
	if past.OnTrack {
		t.Errorf("Expected position past half width to be off track, got %+v", past)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	c := MustGenerate(DefaultLayout())
	positions := []vmath.Vec2{{X: 0, Z: 5}, {X: 12, Z: 31}, {X: 40, Z: 40}, {X: -2.5, Z: 0}}
	for _, p := range positions {
		a := Classify(p, c, 10)
		b := Classify(p, c, 10)
		if a != b {
			t.Errorf("Classify(%+v) not idempotent: %+v vs %+v", p, a, b)
		}
	}
}

func TestClassifyOpenEnds(t *testing.T) {
	c := MustGenerate([]Segment{Straight(20)})

	tests := []struct {
		name string
		pos  vmath.Vec2
		want bool
	}{
		{"start point", vmath.Vec2{X: 0, Z: 0}, true},
		{"end point", vmath.Vec2{X: 0, Z: 20}, true},
		{"before start", vmath.Vec2{X: 0, Z: -0.5}, false},
		{"past end", vmath.Vec2{X: 0, Z: 20.5}, false},
		{"mid off side", vmath.Vec2{X: -6, Z: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.pos, c, 10).OnTrack; got != tt.want {
				t.Errorf("Classify(%+v).OnTrack = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestClassifyNoClaimFallsBackToVertex(t *testing.T) {
	c := MustGenerate([]Segment{Straight(20)})
	got := Classify(vmath.Vec2{X: 0, Z: -3}, c, 10)
	if got.OnTrack || got.Segment != -1 {
		t.Errorf("Expected unclaimed off-track result, got %+v", got)
	}
	if math.Abs(got.NearestDistance-3) > 1e-12 {
		t.Errorf("Expected vertex fallback distance 3, got %v", got.NearestDistance)
	}
}

func TestClassifyCornerAnySegment(t *testing.T) {
	// Right angle at (0,10): both segments claim the inside, the shared vertex covers the outside
	c := MustGenerate([]Segment{Straight(10), Curve(math.Pi/2, 0), Straight(10)})

	inside := Classify(vmath.Vec2{X: 2, Z: 8}, c, 10)
	if !inside.OnTrack {
		t.Errorf("Expected inside corner on track, got %+v", inside)
	}

	outside := Classify(vmath.Vec2{X: -1, Z: 11}, c, 10)
	if !outside.OnTrack {
		t.Errorf("Expected outside corner within half width of the joint on track, got %+v", outside)
	}
	if math.Abs(outside.NearestDistance-math.Sqrt2) > 1e-12 {
		t.Errorf("Expected distance to the joint %v, got %v", math.Sqrt2, outside.NearestDistance)
	}

	wide := Classify(vmath.Vec2{X: -4, Z: 14}, c, 10)
	if wide.OnTrack {
		t.Errorf("Expected position beyond half width of the joint off track, got %+v", wide)
	}
}

func TestClassifyArcVertexOutside(t *testing.T) {
	c := MustGenerate(DefaultLayout())

	// Every vertex inside an arc, nudged outward along the bisector
	for i := 1; i+1 < c.Len(); i++ {
		prev, p, next := c.Point(i-1), c.Point(i), c.Point(i+1)
		if math.Abs(vmath.V2Dist(prev, p)-vmath.V2Dist(p, next)) > 1e-9 {
			continue
		}
		bulge := vmath.V2Sub(p, vmath.V2Lerp(prev, next, 0.5))
		if vmath.V2Mag(bulge) < 1e-9 {
			continue
		}
		pos := vmath.V2AddScaled(p, vmath.V2Normalize(bulge), 0.05)

		got := Classify(pos, c, 10)
		if !got.OnTrack {
			t.Fatalf("Vertex %d: expected on track 5cm outside the centerline, got %+v", i, got)
		}
		if math.Abs(got.NearestDistance-0.05) > 1e-9 {
			t.Errorf("Vertex %d: expected nearest distance 0.05, got %v", i, got.NearestDistance)
		}
	}
}

func TestClassifyOffTrackReportsNearestVertex(t *testing.T) {
	// Before the open start only the far leg projects; the start vertex is closer
	c := MustGenerate([]Segment{Straight(10), Curve(math.Pi/2, 0), Straight(30)})

	got := Classify(vmath.Vec2{X: 0, Z: -3}, c, 4)
	if got.OnTrack {
		t.Fatalf("Expected off track before the open start, got %+v", got)
	}
	if math.Abs(got.NearestDistance-3) > 1e-12 {
		t.Errorf("Expected nearest distance 3 to the start vertex, got %v", got.NearestDistance)
	}
}

func TestClassifyClosedLoopStartJoint(t *testing.T) {
	c := MustGenerate(DefaultLayout())
	if !c.Closed(closedTolerance) {
		t.Fatal("Expected default layout to close")
	}

	// Just behind the start, only the last segment and the start joint can claim it
	behind := vmath.V2AddScaled(c.Start(), vmath.V2FromHeading(c.StartHeading()), -0.5)
	if got := Classify(behind, c, 10); !got.OnTrack {
		t.Errorf("Expected position behind the start of a closed loop on track, got %+v", got)
	}
}

func TestClassifyPicksNearestSegment(t *testing.T) {
	c := MustGenerate([]Segment{Straight(10), Curve(math.Pi/2, 0), Straight(10)})
	got := Classify(vmath.Vec2{X: 8, Z: 9}, c, 10)
	if got.Segment != 1 {
		t.Errorf("Expected second segment nearest, got %d", got.Segment)
	}
	if math.Abs(got.NearestDistance-1) > 1e-12 {
		t.Errorf("Expected distance 1, got %v", got.NearestDistance)
	}
}

func TestClassifySkipsZeroLengthSegments(t *testing.T) {
	c := &Centerline{points: []vmath.Vec2{{}, {}, {X: 0, Z: 5}}}
	got := Classify(vmath.Vec2{X: 1, Z: 2}, c, 4)
	if !got.OnTrack || got.Segment != 1 {
		t.Errorf("Expected claim by non-degenerate segment, got %+v", got)
	}
}

func TestDistanceToStart(t *testing.T) {
	c := MustGenerate(DefaultLayout(), WithOrigin(vmath.Vec2{X: 1, Z: 1}))
	if d := DistanceToStart(vmath.Vec2{X: 4, Z: 5}, c); math.Abs(d-5) > 1e-12 {
		t.Errorf("Expected 5, got %v", d)
	}
}
