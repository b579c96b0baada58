package sketch

import (
	"image"

	"github.com/example/sketchpad/internal/geom"
	"github.com/example/sketchpad/internal/tool"
)

// Observer is told about every gesture the view turns into a tool.
type Observer interface {
	WillBeginDrawing(t tool.Tool, p geom.Point)
	DidContinueDrawing(t tool.Tool, p geom.Point)
	DidEndDrawing(t tool.Tool)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	WillBegin   func(tool.Tool, geom.Point)
	DidContinue func(tool.Tool, geom.Point)
	DidEnd      func(tool.Tool)
}

func (o ObserverFuncs) WillBeginDrawing(t tool.Tool, p geom.Point) {
	if o.WillBegin != nil {
		o.WillBegin(t, p)
	}
}

func (o ObserverFuncs) DidContinueDrawing(t tool.Tool, p geom.Point) {
	if o.DidContinue != nil {
		o.DidContinue(t, p)
	}
}

func (o ObserverFuncs) DidEndDrawing(t tool.Tool) {
	if o.DidEnd != nil {
		o.DidEnd(t)
	}
}

// RepaintFunc is called with the region of the surface that needs to be
// presented again.
type RepaintFunc func(r image.Rectangle)
