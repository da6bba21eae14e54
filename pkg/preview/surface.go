// Package preview keeps a rendering surface visually in sync with engine
// output. The surface is an injected abstraction over whatever the host UI
// provides (an embedded frame, a WebSocket-connected browser pane); the core
// never assumes a specific GUI toolkit.
package preview

// Surface is an isolated rendering context the preview renderer owns. The
// renderer is the only component that writes to it.
type Surface interface {
	// SetContent replaces the surface's content root with markup.
	SetContent(markup string)

	// InjectStyle applies a presentation stylesheet on top of the current
	// content. Must be re-applied after every SetContent.
	InjectStyle(css string)

	// Ready reports whether the surface is attached and able to display
	// content. Updates against a non-ready surface are silently dropped.
	Ready() bool
}
