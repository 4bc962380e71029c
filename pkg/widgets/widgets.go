// Package widgets provides the basic building blocks that exercise the
// core: colored rectangles, flow and stack containers, measured text, and a
// state-driven text consumer. Rendering is left to the embedder; widgets
// only write attributes a renderer pulls through the frame's draw-order
// walk.
package widgets

import (
	"image/color"

	"github.com/go-lilac/lilac/pkg/scene"
)

// Shape selects the fill geometry a renderer draws for a node.
type Shape int

const (
	// ShapeRect fills the node's rect.
	ShapeRect Shape = iota
	// ShapeCircle fills the largest ellipse inscribed in the rect.
	ShapeCircle
)

var (
	// ColorAttr is the fill color.
	ColorAttr = scene.NewAttr[color.RGBA]("color")
	// ShapeAttr is the fill shape.
	ShapeAttr = scene.NewAttr[Shape]("shape")
	// TextAttr is the text content of a text node.
	TextAttr = scene.NewAttr[string]("text")
)
