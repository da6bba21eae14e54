package preview

import (
	"encoding/json"
	"errors"

	"github.com/vmihailenco/msgpack/v5"
)

// Frame kinds pushed to remote surfaces.
const (
	FrameContent = "content"
	FrameStyle   = "style"
)

// Frame is one preview update on the wire. Seq increases per surface so
// clients can discard stale frames after a reconnect replay.
type Frame struct {
	Kind   string `json:"kind" msgpack:"kind"`
	Markup string `json:"markup,omitempty" msgpack:"markup,omitempty"`
	CSS    string `json:"css,omitempty" msgpack:"css,omitempty"`
	Seq    uint64 `json:"seq" msgpack:"seq"`
}

// ErrInvalidFrame reports an undecodable wire payload.
var ErrInvalidFrame = errors.New("preview: invalid frame")

// Codec encodes preview frames for a remote surface transport.
type Codec interface {
	Encode(frame Frame) ([]byte, error)
	Decode(data []byte) (Frame, error)
	Name() string
}

// JSONCodec is the debugging-friendly frame encoding.
type JSONCodec struct{}

func (JSONCodec) Encode(frame Frame) ([]byte, error) {
	return json.Marshal(frame)
}

func (JSONCodec) Decode(data []byte) (Frame, error) {
	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		return Frame{}, ErrInvalidFrame
	}
	return frame, nil
}

func (JSONCodec) Name() string { return "json" }

// MsgPackCodec is the compact production frame encoding.
type MsgPackCodec struct{}

func (MsgPackCodec) Encode(frame Frame) ([]byte, error) {
	return msgpack.Marshal(frame)
}

func (MsgPackCodec) Decode(data []byte) (Frame, error) {
	var frame Frame
	if err := msgpack.Unmarshal(data, &frame); err != nil {
		return Frame{}, ErrInvalidFrame
	}
	return frame, nil
}

func (MsgPackCodec) Name() string { return "msgpack" }
