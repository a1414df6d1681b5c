package platform

import "sync/atomic"

// Viewport reports the client's layout width in CSS pixels.
type Viewport interface {
	Width() int
}

// FixedViewport is a viewport that never resizes.
type FixedViewport int

func (v FixedViewport) Width() int { return int(v) }

// ResizableViewport is a viewport whose width the host updates on resize.
type ResizableViewport struct {
	width atomic.Int64
}

// NewResizableViewport creates a viewport with the given initial width.
func NewResizableViewport(width int) *ResizableViewport {
	v := &ResizableViewport{}
	v.SetWidth(width)
	return v
}

func (v *ResizableViewport) Width() int { return int(v.width.Load()) }

// SetWidth records a resize.
func (v *ResizableViewport) SetWidth(width int) { v.width.Store(int64(width)) }
