package preview

import (
	"strings"
	"testing"
)

type fakeSurface struct {
	ready    bool
	contents []string
	styles   []string
}

func (f *fakeSurface) SetContent(markup string) { f.contents = append(f.contents, markup) }
func (f *fakeSurface) InjectStyle(css string)   { f.styles = append(f.styles, css) }
func (f *fakeSurface) Ready() bool              { return f.ready }

func TestUpdate_NoSurfaceIsNoOp(t *testing.T) {
	r := NewRenderer()
	r.Update("<h1>hi</h1>") // must not panic or error
}

func TestUpdate_NotReadyDropsSilently(t *testing.T) {
	surface := &fakeSurface{ready: false}
	r := NewRenderer()
	r.Attach(surface)

	r.Update("<h1>hi</h1>")
	if len(surface.contents) != 0 {
		t.Fatalf("update against non-ready surface applied: %v", surface.contents)
	}
}

func TestUpdate_ReinjectsStyleAfterEveryContentReplacement(t *testing.T) {
	surface := &fakeSurface{ready: true}
	r := NewRenderer(WithStylesheet("body { margin: 0 }"))
	r.Attach(surface)

	r.Update("<h1>one</h1>")
	r.Update("<h1>two</h1>")

	if len(surface.contents) != 2 {
		t.Fatalf("contents: %v", surface.contents)
	}
	if len(surface.styles) != 2 {
		t.Fatalf("stylesheet must survive every replacement, got %d injections", len(surface.styles))
	}
	if surface.styles[0] != "body { margin: 0 }" {
		t.Fatalf("stylesheet: %q", surface.styles[0])
	}
}

func TestUpdate_DetachStopsUpdates(t *testing.T) {
	surface := &fakeSurface{ready: true}
	r := NewRenderer()
	r.Attach(surface)
	r.Update("<h1>one</h1>")

	r.Detach()
	r.Update("<h1>two</h1>")

	if len(surface.contents) != 1 {
		t.Fatalf("update after detach applied: %v", surface.contents)
	}
}

func TestWebSocketSurface_NotReadyWithoutClients(t *testing.T) {
	s := NewWebSocketSurface()
	if s.Ready() {
		t.Fatal("surface with no clients must not be ready")
	}
	// Broadcasts against an empty surface are retained, not errors.
	s.SetContent("<h1>hi</h1>")
	s.InjectStyle("body{}")
}

func TestRenderShell(t *testing.T) {
	page, err := RenderShell(ShellConfig{Title: "Preview", SocketURL: "ws://localhost/ws", Codec: "json"})
	if err != nil {
		t.Fatalf("render shell: %v", err)
	}
	for _, want := range []string{"Preview", "ws://localhost/ws"} {
		if !strings.Contains(page, want) {
			t.Fatalf("shell missing %q:\n%s", want, page)
		}
	}
}
