package wire

import (
	"encoding/hex"
	"fmt"

	"github.com/arloliu/negentropy/internal/pool"
)

// Message is one complete protocol frame: the version byte followed by
// ranges encoded back-to-back, each timestamp delta-chained to the previous
// range's upper bound (the chain starts at zero).
type Message struct {
	Ranges []Range
}

// Encode serializes the message into a freshly allocated byte slice.
//
// Encoding fails only when a range fails its own validation (an oversized
// bound prefix); a message built from decoded or NewBound-constructed parts
// always encodes.
func (m *Message) Encode() ([]byte, error) {
	buf := pool.GetMessageBuffer()
	defer pool.PutMessageBuffer(buf)

	buf.B = append(buf.B, ProtocolVersion)

	prevTimestamp := uint64(0)
	var err error
	for i := range m.Ranges {
		buf.B, prevTimestamp, err = m.Ranges[i].Append(buf.B, prevTimestamp)
		if err != nil {
			return nil, err
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// EncodeHex serializes the message and returns it as a lowercase hex string,
// the representation the JSON envelope layer carries.
func (m *Message) EncodeHex() (string, error) {
	data, err := m.Encode()
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(data), nil
}

// DecodeMessage parses a complete binary frame.
//
// The first byte must equal ProtocolVersion; ranges are then decoded until
// the buffer is exhausted. A trailing partial range propagates the inner
// varint/bound/range error unchanged. The number of ranges is bounded only
// by the input size, so transports feeding this function should cap frame
// sizes.
func DecodeMessage(data []byte) (*Message, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty message", ErrInvalidProtocolVersion)
	}
	if data[0] != ProtocolVersion {
		return nil, fmt.Errorf("%w: 0x%02x", ErrInvalidProtocolVersion, data[0])
	}

	msg := &Message{}
	offset := 1
	prevTimestamp := uint64(0)

	for offset < len(data) {
		r, n, next, err := DecodeRange(data[offset:], prevTimestamp)
		if err != nil {
			return nil, err
		}

		msg.Ranges = append(msg.Ranges, r)
		offset += n
		prevTimestamp = next
	}

	return msg, nil
}

// DecodeMessageHex hex-decodes s and parses the resulting binary frame.
// Fails with ErrInvalidHex when s is not valid hex.
func DecodeMessageHex(s string) (*Message, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}

	return DecodeMessage(data)
}
