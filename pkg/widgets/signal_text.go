package widgets

import (
	"github.com/go-lilac/lilac/pkg/frame"
	"github.com/go-lilac/lilac/pkg/geometry"
	"github.com/go-lilac/lilac/pkg/layout"
	"github.com/go-lilac/lilac/pkg/state"
)

// SignalText is a text leaf whose content follows a state subscription. Each
// tick drains the subscription and writes the latest value through a
// deduplicated update, so republishing an identical string relayouts
// nothing.
type SignalText struct {
	Source state.Source[string]
	Margin geometry.Edges
}

// Mount installs the text attributes and the updating stream effect.
func (t SignalText) Mount(s *frame.Scope) {
	frame.Set(s, TextAttr, "")
	frame.Set(s, layout.ResolverAttr, layout.SizeResolver(textResolver{}))
	if t.Margin != (geometry.Edges{}) {
		frame.Set(s, layout.MarginAttr, t.Margin)
	}
	if t.Source == nil {
		return
	}
	frame.SpawnStream(s, t.Source.Subscribe(), func(sc *frame.Scope, v string) {
		frame.Update(sc, TextAttr, v)
	})
}
