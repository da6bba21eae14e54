package preview

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
)

const (
	writeTimeout  = 5 * time.Second
	sendQueueSize = 8
)

// WebSocketOption customises a WebSocketSurface.
type WebSocketOption func(*WebSocketSurface)

// WithCodec selects the frame encoding. Defaults to msgpack.
func WithCodec(codec Codec) WebSocketOption {
	return func(s *WebSocketSurface) {
		if codec != nil {
			s.codec = codec
		}
	}
}

// WithAllowedOrigins whitelists cross-origin connections. Same-origin is
// always allowed.
func WithAllowedOrigins(origins ...string) WebSocketOption {
	return func(s *WebSocketSurface) {
		s.allowedOrigins = append(s.allowedOrigins, origins...)
	}
}

// WithSurfaceLogger injects a structured logger.
func WithSurfaceLogger(logger *slog.Logger) WebSocketOption {
	return func(s *WebSocketSurface) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WebSocketSurface implements Surface over browser WebSocket connections.
// Frames fan out to every connected client through per-connection writer
// goroutines; the latest content and style frames are retained and replayed
// to clients that connect or reconnect later.
type WebSocketSurface struct {
	codec          Codec
	allowedOrigins []string
	logger         *slog.Logger

	mu        sync.Mutex
	conns     map[string]*wsConn
	seq       uint64
	lastFrame map[string]Frame
	closed    bool
}

type wsConn struct {
	id     string
	conn   *websocket.Conn
	sendCh chan Frame
	done   chan struct{}
}

// NewWebSocketSurface constructs a surface with no clients connected.
func NewWebSocketSurface(options ...WebSocketOption) *WebSocketSurface {
	s := &WebSocketSurface{
		codec:     MsgPackCodec{},
		logger:    slog.Default(),
		conns:     make(map[string]*wsConn),
		lastFrame: make(map[string]Frame),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Ready reports whether at least one client is connected.
func (s *WebSocketSurface) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && len(s.conns) > 0
}

// SetContent broadcasts a content frame to every connected client.
func (s *WebSocketSurface) SetContent(markup string) {
	s.broadcast(Frame{Kind: FrameContent, Markup: markup})
}

// InjectStyle broadcasts a style frame to every connected client.
func (s *WebSocketSurface) InjectStyle(css string) {
	s.broadcast(Frame{Kind: FrameStyle, CSS: css})
}

func (s *WebSocketSurface) broadcast(frame Frame) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.seq++
	frame.Seq = s.seq
	s.lastFrame[frame.Kind] = frame
	conns := make([]*wsConn, 0, len(s.conns))
	for _, c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		select {
		case c.sendCh <- frame:
		case <-c.done:
		default:
			// Slow client: it will catch up from the retained frames on
			// reconnect. Intermediate frames are droppable by contract.
			s.logger.Debug("preview: send queue full, frame dropped", slog.String("conn", c.id))
		}
	}
}

// Accept upgrades an HTTP request to a preview WebSocket connection, replays
// the retained frames, and pumps broadcasts until the client disconnects or
// ctx is cancelled.
func (s *WebSocketSurface) Accept(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if origin := r.Header.Get("Origin"); !s.originAllowed(origin, r.Host) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return ErrOriginNotAllowed
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // origin checked above
	})
	if err != nil {
		return err
	}

	c := &wsConn{
		id:     uuid.NewString(),
		conn:   conn,
		sendCh: make(chan Frame, sendQueueSize),
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close(websocket.StatusGoingAway, "surface closed")
		return ErrSurfaceClosed
	}
	s.conns[c.id] = c
	replay := make([]Frame, 0, len(s.lastFrame))
	for _, kind := range []string{FrameContent, FrameStyle} {
		if frame, ok := s.lastFrame[kind]; ok {
			replay = append(replay, frame)
		}
	}
	s.mu.Unlock()

	s.logger.Debug("preview: client connected", slog.String("conn", c.id))
	for _, frame := range replay {
		select {
		case c.sendCh <- frame:
		default:
		}
	}

	go s.writeLoop(ctx, c)
	s.readLoop(ctx, c)
	return nil
}

func (s *WebSocketSurface) writeLoop(ctx context.Context, c *wsConn) {
	for {
		select {
		case frame := <-c.sendCh:
			data, err := s.codec.Encode(frame)
			if err != nil {
				s.logger.Warn("preview: frame encode failed", slog.String("error", err.Error()))
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err = c.conn.Write(writeCtx, messageType(s.codec), data)
			cancel()
			if err != nil {
				s.drop(c)
				return
			}
		case <-c.done:
			return
		case <-ctx.Done():
			s.drop(c)
			return
		}
	}
}

// readLoop drains client messages so pings and close frames are processed.
// The preview channel is one-directional; payloads are discarded.
func (s *WebSocketSurface) readLoop(ctx context.Context, c *wsConn) {
	defer s.drop(c)
	for {
		if _, _, err := c.conn.Read(ctx); err != nil {
			return
		}
	}
}

func (s *WebSocketSurface) drop(c *wsConn) {
	s.mu.Lock()
	if _, ok := s.conns[c.id]; ok {
		delete(s.conns, c.id)
		close(c.done)
	}
	s.mu.Unlock()
	c.conn.Close(websocket.StatusNormalClosure, "")
	s.logger.Debug("preview: client disconnected", slog.String("conn", c.id))
}

// Close disconnects every client and rejects further connections.
func (s *WebSocketSurface) Close() {
	s.mu.Lock()
	s.closed = true
	conns := make([]*wsConn, 0, len(s.conns))
	for _, c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		s.drop(c)
	}
}

func (s *WebSocketSurface) originAllowed(origin, host string) bool {
	if origin == "" {
		return true
	}
	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if parsed.Host == host {
		return true
	}
	for _, allowed := range s.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
		if allowedURL, err := url.Parse(allowed); err == nil && allowedURL.Host == parsed.Host {
			return true
		}
	}
	return false
}

func messageType(codec Codec) websocket.MessageType {
	if codec.Name() == "json" {
		return websocket.MessageText
	}
	return websocket.MessageBinary
}
