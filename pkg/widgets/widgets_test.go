package widgets

import (
	"image/color"
	"testing"

	"github.com/go-lilac/lilac/pkg/frame"
	"github.com/go-lilac/lilac/pkg/geometry"
	"github.com/go-lilac/lilac/pkg/layout"
	"github.com/go-lilac/lilac/pkg/scene"
	"github.com/go-lilac/lilac/pkg/state"
)

func TestRectangleWritesAttributes(t *testing.T) {
	f := frame.New()
	red := color.RGBA{R: 255, A: 255}
	root := f.MountRoot(Rectangle{
		Color:  red,
		Size:   geometry.Px2(50, 20),
		Margin: geometry.EdgesAll(4),
	})

	if got, _ := scene.Get(f.Store(), root, ColorAttr); got != red {
		t.Errorf("color = %v, want %v", got, red)
	}
	if got, _ := scene.Get(f.Store(), root, layout.MarginAttr); got != geometry.EdgesAll(4) {
		t.Errorf("margin = %v", got)
	}
	f.RunLayout(geometry.V(200, 100))
	r, _ := scene.Get(f.Store(), root, layout.RectAttr)
	if r.Size() != geometry.V(50, 20) {
		t.Errorf("rect size = %v, want {50 20}", r.Size())
	}
}

func TestRowLaysOutChildren(t *testing.T) {
	f := frame.New()
	f.MountRoot(Row(
		Rectangle{Size: geometry.Px2(50, 20)},
		Rectangle{Size: geometry.Px2(75, 20)},
	))
	f.RunLayout(geometry.V(200, 100))

	children := f.Store().Children(f.Root())
	if len(children) != 2 {
		t.Fatalf("got %d children, want 2", len(children))
	}
	pos, _ := scene.Get(f.Store(), children[1], layout.LocalPositionAttr)
	if pos.X != 50 {
		t.Errorf("second child x = %v, want 50", pos.X)
	}
}

func TestColumnWithPadding(t *testing.T) {
	f := frame.New()
	f.MountRoot(Column(
		Rectangle{Size: geometry.Px2(30, 40)},
	).WithPadding(geometry.EdgesAll(10)))
	f.RunLayout(geometry.V(200, 200))

	child := f.Store().Children(f.Root())[0]
	pos, _ := scene.Get(f.Store(), child, layout.LocalPositionAttr)
	if pos != geometry.V(10, 10) {
		t.Errorf("child position = %v, want {10 10}", pos)
	}
	rootRect, _ := scene.Get(f.Store(), f.Root(), layout.RectAttr)
	if rootRect.Size() != geometry.V(50, 60) {
		t.Errorf("root size = %v, want {50 60}", rootRect.Size())
	}
}

func TestTextMeasurement(t *testing.T) {
	if measureText("", 100).Y != lineHeight() {
		t.Error("empty text should be one line tall")
	}

	single := measureText("hello", 1000)
	if single.X <= 0 || single.Y != lineHeight() {
		t.Errorf("single line = %v", single)
	}

	// Forcing a narrow limit wraps onto more lines without growing wider
	// than the widest word.
	wide := measureText("alpha beta gamma delta", 1000)
	narrow := measureText("alpha beta gamma delta", widestWord("alpha beta gamma delta"))
	if narrow.Y <= wide.Y {
		t.Errorf("narrow measure %v not taller than wide %v", narrow, wide)
	}
	if narrow.X > wide.X {
		t.Errorf("narrow measure %v wider than wide %v", narrow, wide)
	}

	multi := measureText("a\nb\nc", 1000)
	if multi.Y != 3*lineHeight() {
		t.Errorf("three paragraphs = %v, want height %v", multi, 3*lineHeight())
	}
}

func TestTextWidgetResolvesSize(t *testing.T) {
	f := frame.New()
	root := f.MountRoot(Text{Content: "hello world"})
	f.RunLayout(geometry.V(500, 100))

	r, _ := scene.Get(f.Store(), root, layout.RectAttr)
	want := measureText("hello world", 500)
	if r.Size() != want {
		t.Errorf("text rect = %v, want %v", r.Size(), want)
	}
}

func TestSignalTextFollowsSource(t *testing.T) {
	cell := state.NewCell("one")
	f := frame.New()
	root := f.MountRoot(SignalText{Source: cell})

	viewport := geometry.V(500, 100)
	f.Tick(viewport)
	if got, _ := scene.Get(f.Store(), root, TextAttr); got != "one" {
		t.Fatalf("text = %q, want primed \"one\"", got)
	}

	cell.Send("two")
	f.Tick(viewport)
	if got, _ := scene.Get(f.Store(), root, TextAttr); got != "two" {
		t.Fatalf("text = %q, want \"two\"", got)
	}

	// Republishing the same string is deduplicated away: no relayout.
	gen := f.Generation()
	cell.Send("two")
	f.Tick(viewport)
	if f.Generation() != gen {
		t.Fatal("identical text caused a relayout")
	}
}

func TestOverlayAlignsPerAxis(t *testing.T) {
	f := frame.New()
	c := Overlay(
		Rectangle{Size: geometry.Px2(100, 60)},
		Rectangle{Size: geometry.Px2(40, 20)},
	)
	c.Strategy = layout.Stack(layout.StackOptions{Horizontal: layout.AlignCenter, Vertical: layout.AlignCenter})
	f.MountRoot(c)
	f.RunLayout(geometry.V(200, 100))

	small := f.Store().Children(f.Root())[1]
	pos, _ := scene.Get(f.Store(), small, layout.LocalPositionAttr)
	if pos != geometry.V(30, 20) {
		t.Errorf("small child position = %v, want {30 20}", pos)
	}
}
