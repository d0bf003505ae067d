package ber

import "errors"

// Encoder assembles a BER datagram using a stack of accumulating contexts.
// Enter pushes a new constructed context; Leave wraps its accumulated content
// in a tag and length and folds it into the parent. The zero value is not
// ready to use - call Start or NewEncoder.
type Encoder struct {
	frames []frame
}

type frame struct {
	tag     byte // full tag octet of the constructed context this frame accumulates
	content []byte
}

// NewEncoder returns a ready-to-use Encoder.
func NewEncoder() *Encoder {
	e := &Encoder{}
	e.Start()
	return e
}

// Start resets the encoder to an empty output.
func (e *Encoder) Start() {
	e.frames = []frame{{}}
}

// Enter pushes a constructed context; its length is computed and emitted
// when the matching Leave is called.
func (e *Encoder) Enter(class Class, tagNumber byte) {
	e.frames = append(e.frames, frame{tag: ComposeTag(class, true, tagNumber)})
}

// Leave finalises the innermost constructed context, emitting its tag and
// length ahead of the accumulated content, and folds the result into the
// parent context.
func (e *Encoder) Leave() error {
	if len(e.frames) < 2 {
		return invariant(errors.New("leave called without a matching enter"))
	}
	top := e.frames[len(e.frames)-1]
	e.frames = e.frames[:len(e.frames)-1]
	wrapped := encodeTLV(top.tag, top.content)
	parent := &e.frames[len(e.frames)-1]
	parent.content = append(parent.content, wrapped...)
	return nil
}

// WritePrimitive emits a complete tag + length + payload primitive TLV into
// the current context.
func (e *Encoder) WritePrimitive(class Class, tagNumber byte, payload []byte) {
	e.writeTag(ComposeTag(class, false, tagNumber), payload)
}

func (e *Encoder) writeTag(tag byte, payload []byte) {
	top := &e.frames[len(e.frames)-1]
	top.content = append(top.content, encodeTLV(tag, payload)...)
}

// Output returns the encoded byte sequence. It is only valid when every
// Enter has a matching Leave.
func (e *Encoder) Output() ([]byte, error) {
	if len(e.frames) != 1 {
		return nil, invariant(errors.New("output called with unfinalised constructed context"))
	}
	return e.frames[0].content, nil
}

func encodeTLV(tag byte, payload []byte) []byte {
	lengthBytes := encodeLength(len(payload))
	out := make([]byte, 0, 1+len(lengthBytes)+len(payload))
	out = append(out, tag)
	out = append(out, lengthBytes...)
	out = append(out, payload...)
	return out
}

func encodeLength(n int) []byte {
	if n < 128 {
		return []byte{byte(n)}
	}
	var b []byte
	for v := n; v > 0; v >>= 8 {
		b = append([]byte{byte(v)}, b...)
	}
	return append([]byte{0x80 | byte(len(b))}, b...)
}
