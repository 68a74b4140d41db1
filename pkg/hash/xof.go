// Package hash provides the SHAKE streams behind sampling and fingerprints.
package hash

import (
	"golang.org/x/crypto/sha3"
)

// StreamingXOF128 provides incremental SHAKE-128 output.
type StreamingXOF128 struct {
	h   sha3.ShakeHash
	buf [168]byte // SHAKE128 rate
	pos int
	end int
}

// NewStreamingXOF128Reusable creates a reusable streaming XOF.
func NewStreamingXOF128Reusable() *StreamingXOF128 {
	return &StreamingXOF128{h: sha3.NewShake128()}
}

// Reset reinitializes the XOF for a new seed||nonce.
func (x *StreamingXOF128) Reset(seed []byte, nonce uint16) {
	x.h.Reset()
	x.h.Write(seed)
	x.h.Write([]byte{byte(nonce & 0xFF), byte(nonce >> 8)})
	x.pos = 0
	x.end = 0
}

// Read3 returns the next 3 bytes from the XOF.
func (x *StreamingXOF128) Read3() (b0, b1, b2 byte) {
	x.pos, x.end = refill(x.h, x.buf[:], x.pos, x.end, 3)
	b0, b1, b2 = x.buf[x.pos], x.buf[x.pos+1], x.buf[x.pos+2]
	x.pos += 3
	return
}

// refill moves the unread bytes of buf to the front and tops it up from h
// when fewer than need bytes are left.
func refill(h sha3.ShakeHash, buf []byte, pos, end, need int) (int, int) {
	if pos+need <= end {
		return pos, end
	}
	leftover := end - pos
	if leftover > 0 {
		copy(buf[:leftover], buf[pos:end])
	}
	n, _ := h.Read(buf[leftover:])
	return 0, leftover + n
}

// H returns SHAKE-256 output of specified length.
func H(msg []byte, length int) []byte {
	h := sha3.NewShake256()
	h.Write(msg)
	out := make([]byte, length)
	h.Read(out)
	return out
}
