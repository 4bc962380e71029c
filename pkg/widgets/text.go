package widgets

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/go-lilac/lilac/pkg/frame"
	"github.com/go-lilac/lilac/pkg/geometry"
	"github.com/go-lilac/lilac/pkg/layout"
	"github.com/go-lilac/lilac/pkg/scene"
)

// Text is a leaf whose size comes from measuring its content. Measurement
// uses fixed-advance basicfont metrics with greedy word wrapping; it exists
// to exercise the size-resolver path, not to shape text.
type Text struct {
	Content string
	Margin  geometry.Edges
}

// Mount writes the text attributes and installs the measuring resolver.
func (t Text) Mount(s *frame.Scope) {
	frame.Set(s, TextAttr, t.Content)
	frame.Set(s, layout.ResolverAttr, layout.SizeResolver(textResolver{}))
	if t.Margin != (geometry.Edges{}) {
		frame.Set(s, layout.MarginAttr, t.Margin)
	}
}

// textResolver measures the node's text attribute against the incoming
// limits. The minimum size squeezed horizontally is the text wrapped at its
// widest word; squeezed vertically the text does not compress, so minimum
// and preferred coincide.
type textResolver struct{}

func (textResolver) QuerySize(st *scene.Store, id scene.NodeID, contentArea geometry.Vec2, limits layout.LayoutLimits, squeeze layout.Direction) (min, preferred geometry.Vec2) {
	text := scene.GetOr(st, id, TextAttr, "")
	preferred = measureText(text, limits.MaxSize.X)
	if squeeze == layout.Horizontal {
		min = measureText(text, widestWord(text))
	} else {
		min = preferred
	}
	return min, preferred
}

func (textResolver) Apply(st *scene.Store, id scene.NodeID, contentArea geometry.Vec2, limits layout.LayoutLimits) geometry.Vec2 {
	text := scene.GetOr(st, id, TextAttr, "")
	return measureText(text, limits.MaxSize.X)
}

var textFace = basicfont.Face7x13

func advance(s string) float64 {
	return float64(font.MeasureString(textFace, s)) / 64
}

func lineHeight() float64 {
	return float64(textFace.Metrics().Height) / 64
}

func widestWord(text string) float64 {
	widest := 0.0
	for _, word := range strings.Fields(text) {
		if w := advance(word); w > widest {
			widest = w
		}
	}
	return widest
}

// measureText wraps greedily at word boundaries and returns the bounding
// size. Words wider than the limit overflow their line rather than breaking
// mid-word.
func measureText(text string, maxWidth float64) geometry.Vec2 {
	if text == "" {
		return geometry.V(0, lineHeight())
	}
	space := advance(" ")
	width := 0.0
	lines := 0
	for _, paragraph := range strings.Split(text, "\n") {
		lines++
		lineWidth := 0.0
		for _, word := range strings.Fields(paragraph) {
			w := advance(word)
			candidate := lineWidth + w
			if lineWidth > 0 {
				candidate += space
			}
			if lineWidth > 0 && candidate > maxWidth {
				lines++
				lineWidth = w
			} else {
				lineWidth = candidate
			}
			if lineWidth > width {
				width = lineWidth
			}
		}
	}
	return geometry.V(width, float64(lines)*lineHeight())
}
