// Package render defines the image synthesis boundary. The real renderer is
// an external system; PreviewRenderer is a stand-in that draws object
// silhouettes so a dataset run can be inspected without one.
package render

import "image/color"

// Renderer produces the image for the current scene state at the given
// path. Rendering is synchronous; the frame is complete when Render
// returns.
type Renderer interface {
	Render(path string) error
}

// Material describes how a preview surface is drawn.
type Material struct {
	Color color.Color
}
