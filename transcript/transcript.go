// Package transcript captures the envelope frames of one reconciliation
// session for later replay or debugging.
//
// A transcript is an append-only list of direction-tagged frames scoped to a
// single subscription. It serializes to a compact binary form: one
// compression-type byte followed by the (optionally compressed) body, in
// which the subscription id and each frame are varint length-prefixed.
package transcript

import (
	"encoding/json"
	"fmt"
	"iter"

	"github.com/arloliu/negentropy/compress"
	"github.com/arloliu/negentropy/envelope"
	"github.com/arloliu/negentropy/internal/pool"
	"github.com/arloliu/negentropy/wire"
)

// Direction tags which party emitted a frame.
type Direction uint8

const (
	DirOutbound Direction = 0x1 // DirOutbound marks frames this side sent.
	DirInbound  Direction = 0x2 // DirInbound marks frames this side received.
)

func (d Direction) String() string {
	switch d {
	case DirOutbound:
		return "Outbound"
	case DirInbound:
		return "Inbound"
	default:
		return "Unknown"
	}
}

// Entry is one recorded frame.
type Entry struct {
	Direction Direction

	// Frame holds the raw JSON envelope frame as it crossed the wire.
	Frame []byte
}

// Transcript records the frames of one session in arrival order.
//
// A Transcript is not safe for concurrent use; sessions are single-threaded
// at the transport layer, so recording happens from one goroutine.
type Transcript struct {
	subscriptionID string
	entries        []Entry
	compression    compress.Type
}

// Option configures a Transcript.
type Option func(*Transcript)

// WithCompression selects the codec used by Serialize. The default is
// TypeNone.
func WithCompression(t compress.Type) Option {
	return func(tr *Transcript) {
		tr.compression = t
	}
}

// New creates an empty transcript for the given subscription.
func New(subscriptionID string, opts ...Option) *Transcript {
	tr := &Transcript{
		subscriptionID: subscriptionID,
		compression:    compress.TypeNone,
	}
	for _, opt := range opts {
		opt(tr)
	}

	return tr
}

// SubscriptionID returns the subscription this transcript belongs to.
func (t *Transcript) SubscriptionID() string {
	return t.subscriptionID
}

// Compression returns the codec Serialize will use.
func (t *Transcript) Compression() compress.Type {
	return t.compression
}

// Record appends one raw frame. The frame bytes are copied.
func (t *Transcript) Record(dir Direction, frame []byte) {
	entry := Entry{Direction: dir, Frame: make([]byte, len(frame))}
	copy(entry.Frame, frame)

	t.entries = append(t.entries, entry)
}

// RecordEnvelope marshals env and appends it as one frame.
func (t *Transcript) RecordEnvelope(dir Direction, env envelope.Envelope) error {
	frame, err := json.Marshal(env)
	if err != nil {
		return err
	}

	t.entries = append(t.entries, Entry{Direction: dir, Frame: frame})

	return nil
}

// Len returns the number of recorded frames.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// All iterates the recorded frames in arrival order.
func (t *Transcript) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range t.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Serialize encodes the transcript: one compression-type byte, then the
// compressed body. The body layout is varint-prefixed subscription id,
// varint frame count, then per frame one direction byte and the
// varint-prefixed frame bytes.
func (t *Transcript) Serialize() ([]byte, error) {
	codec, err := compress.CodecFor(t.compression)
	if err != nil {
		return nil, err
	}

	buf := pool.GetTranscriptBuffer()
	defer pool.PutTranscriptBuffer(buf)

	buf.B = wire.AppendVarint(buf.B, uint64(len(t.subscriptionID)))
	buf.B = append(buf.B, t.subscriptionID...)
	buf.B = wire.AppendVarint(buf.B, uint64(len(t.entries)))
	for _, e := range t.entries {
		buf.B = append(buf.B, byte(e.Direction))
		buf.B = wire.AppendVarint(buf.B, uint64(len(e.Frame)))
		buf.B = append(buf.B, e.Frame...)
	}

	body, err := codec.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("transcript compression failed: %w", err)
	}

	out := make([]byte, 0, 1+len(body))
	out = append(out, byte(t.compression))
	out = append(out, body...)

	return out, nil
}

// Parse decodes a serialized transcript.
func Parse(data []byte) (*Transcript, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("transcript: empty input")
	}

	ctype := compress.Type(data[0])
	codec, err := compress.CodecFor(ctype)
	if err != nil {
		return nil, fmt.Errorf("transcript: %w", err)
	}

	body, err := codec.Decompress(data[1:])
	if err != nil {
		return nil, fmt.Errorf("transcript decompression failed: %w", err)
	}

	subLen, offset, err := wire.DecodeVarint(body)
	if err != nil {
		return nil, fmt.Errorf("transcript: subscription id length: %w", err)
	}
	if subLen > uint64(len(body)-offset) {
		return nil, fmt.Errorf("transcript: subscription id truncated: need %d bytes, have %d", subLen, len(body)-offset)
	}

	tr := New(string(body[offset:offset+int(subLen)]), WithCompression(ctype))
	offset += int(subLen)

	count, n, err := wire.DecodeVarint(body[offset:])
	if err != nil {
		return nil, fmt.Errorf("transcript: frame count: %w", err)
	}
	offset += n

	for i := uint64(0); i < count; i++ {
		if offset >= len(body) {
			return nil, fmt.Errorf("transcript: frame %d truncated", i)
		}

		dir := Direction(body[offset])
		if dir != DirOutbound && dir != DirInbound {
			return nil, fmt.Errorf("transcript: frame %d has unknown direction 0x%02x", i, body[offset])
		}
		offset++

		frameLen, n, err := wire.DecodeVarint(body[offset:])
		if err != nil {
			return nil, fmt.Errorf("transcript: frame %d length: %w", i, err)
		}
		offset += n

		if frameLen > uint64(len(body)-offset) {
			return nil, fmt.Errorf("transcript: frame %d truncated: need %d bytes, have %d", i, frameLen, len(body)-offset)
		}

		tr.Record(dir, body[offset:offset+int(frameLen)])
		offset += int(frameLen)
	}

	return tr, nil
}
