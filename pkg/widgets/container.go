package widgets

import (
	"github.com/go-lilac/lilac/pkg/frame"
	"github.com/go-lilac/lilac/pkg/geometry"
	"github.com/go-lilac/lilac/pkg/layout"
)

// Container lays its children out with the configured strategy.
type Container struct {
	Strategy layout.Strategy
	Padding  geometry.Edges
	Margin   geometry.Edges
	MinSize  geometry.Unit2
	MaxSize  geometry.Unit2
	Offset   geometry.Unit2
	Anchor   geometry.Unit2
	Children []frame.Widget
}

// Row flows children left to right.
func Row(children ...frame.Widget) Container {
	return Container{
		Strategy: layout.Flow(layout.FlowOptions{Direction: layout.Horizontal}),
		Children: children,
	}
}

// Column flows children top to bottom.
func Column(children ...frame.Widget) Container {
	return Container{
		Strategy: layout.Flow(layout.FlowOptions{Direction: layout.Vertical}),
		Children: children,
	}
}

// Overlay stacks children on top of each other.
func Overlay(children ...frame.Widget) Container {
	return Container{
		Strategy: layout.Stack(layout.StackOptions{}),
		Children: children,
	}
}

// Floating lays children out without affecting the container's size.
func Floating(children ...frame.Widget) Container {
	return Container{
		Strategy: layout.Float(),
		Children: children,
	}
}

// WithPadding returns a copy with the given padding.
func (c Container) WithPadding(p geometry.Edges) Container {
	c.Padding = p
	return c
}

// WithMargin returns a copy with the given margin.
func (c Container) WithMargin(m geometry.Edges) Container {
	c.Margin = m
	return c
}

// Mount writes the container's attributes and mounts its children in order.
func (c Container) Mount(s *frame.Scope) {
	frame.Set(s, layout.StrategyAttr, c.Strategy)
	if c.Padding != (geometry.Edges{}) {
		frame.Set(s, layout.PaddingAttr, c.Padding)
	}
	if c.Margin != (geometry.Edges{}) {
		frame.Set(s, layout.MarginAttr, c.Margin)
	}
	if !c.MinSize.IsZero() {
		frame.Set(s, layout.MinSizeAttr, c.MinSize)
	}
	if !c.MaxSize.IsZero() {
		frame.Set(s, layout.MaxSizeAttr, c.MaxSize)
	}
	if !c.Offset.IsZero() {
		frame.Set(s, layout.OffsetAttr, c.Offset)
	}
	if !c.Anchor.IsZero() {
		frame.Set(s, layout.AnchorAttr, c.Anchor)
	}
	for _, child := range c.Children {
		s.Attach(child)
	}
}
