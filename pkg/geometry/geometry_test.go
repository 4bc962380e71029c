package geometry

import (
	"math"
	"testing"
)

func TestVec2Ops(t *testing.T) {
	a := V(3, 4)
	b := V(1, 8)

	if got := a.Add(b); got != V(4, 12) {
		t.Errorf("Add = %v, want {4 12}", got)
	}
	if got := a.Sub(b); got != V(2, -4) {
		t.Errorf("Sub = %v, want {2 -4}", got)
	}
	if got := a.Max(b); got != V(3, 8) {
		t.Errorf("Max = %v, want {3 8}", got)
	}
	if got := a.Min(b); got != V(1, 4) {
		t.Errorf("Min = %v, want {1 4}", got)
	}
	if got := a.Scale(2); got != V(6, 8) {
		t.Errorf("Scale = %v, want {6 8}", got)
	}
	if got := V(5, -1).Clamp(V(0, 0), V(4, 4)); got != V(4, 0) {
		t.Errorf("Clamp = %v, want {4 0}", got)
	}
}

func TestVec2AbsDiffEq(t *testing.T) {
	if !V(1, 1).AbsDiffEq(V(1.05, 0.95), 0.1) {
		t.Error("expected vectors within tolerance to compare equal")
	}
	if V(1, 1).AbsDiffEq(V(1.2, 1), 0.1) {
		t.Error("expected vectors outside tolerance to differ")
	}
}

func TestRectSizeClampsNegative(t *testing.T) {
	r := Rect{Min: V(10, 10), Max: V(5, 20)}
	if got := r.Size(); got != V(0, 10) {
		t.Errorf("Size = %v, want {0 10}", got)
	}
}

func TestRectInsetPad(t *testing.T) {
	r := RectFromSize(V(100, 50))
	e := Edges{Left: 10, Right: 5, Top: 2, Bottom: 3}

	inset := r.Inset(e)
	if inset.Min != V(10, 2) || inset.Max != V(95, 47) {
		t.Errorf("Inset = %v", inset)
	}
	if got := inset.Pad(e); got != r {
		t.Errorf("Pad(Inset) = %v, want %v", got, r)
	}
}

func TestRectMerge(t *testing.T) {
	a := RectFromSizePos(V(10, 10), V(0, 0))
	b := RectFromSizePos(V(10, 10), V(20, 5))
	got := a.Merge(b)
	if got.Min != V(0, 0) || got.Max != V(30, 15) {
		t.Errorf("Merge = %v", got)
	}
}

func TestRectContains(t *testing.T) {
	r := RectFromSizePos(V(10, 10), V(5, 5))
	tests := []struct {
		p    Vec2
		want bool
	}{
		{V(5, 5), true},
		{V(14.9, 14.9), true},
		{V(15, 15), false},
		{V(4.9, 10), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestEdgesMaxMergesNotSums(t *testing.T) {
	a := Edges{Left: 10, Top: 2}
	b := Edges{Left: 4, Top: 5}
	got := a.Max(b)
	if got.Left != 10 || got.Top != 5 {
		t.Errorf("Max = %+v, want Left=10 Top=5", got)
	}
}

func TestEdgesSubClamps(t *testing.T) {
	got := Edges{Left: 3}.Sub(Edges{Left: 5, Right: 1})
	if got.Left != 0 || got.Right != 0 {
		t.Errorf("Sub = %+v, want zero edges", got)
	}
}

func TestUnitResolve(t *testing.T) {
	tests := []struct {
		name   string
		unit   Unit
		parent float64
		want   float64
	}{
		{"absolute", Px(50), 200, 50},
		{"relative", Frac(0.5), 200, 100},
		{"mixed", Unit{Abs: 10, Rel: 0.25}, 200, 60},
		{"zero", Unit{}, 200, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.unit.Resolve(tt.parent); math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Resolve(%v) = %v, want %v", tt.parent, got, tt.want)
			}
		})
	}
}

func TestUnit2Resolve(t *testing.T) {
	u := Unit2{X: Px(10), Y: Frac(0.5)}
	if got := u.Resolve(V(100, 80)); got != V(10, 40) {
		t.Errorf("Resolve = %v, want {10 40}", got)
	}
	if !(Unit2{}).IsZero() {
		t.Error("zero Unit2 should report IsZero")
	}
	if Px2(1, 0).IsZero() {
		t.Error("non-zero Unit2 should not report IsZero")
	}
}
