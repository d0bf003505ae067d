package ber

import "errors"

// Decoder walks a BER datagram using a stack of cursors, one per nested
// constructed context. The zero value is not ready to use - call Start or
// NewDecoder.
type Decoder struct {
	frames []decFrame
}

type decFrame struct {
	data []byte
	pos  int
}

// NewDecoder attaches data and returns a ready-to-use Decoder.
func NewDecoder(data []byte) *Decoder {
	d := &Decoder{}
	d.Start(data)
	return d
}

// Start attaches a new buffer, discarding any in-progress context stack.
func (d *Decoder) Start(data []byte) {
	d.frames = []decFrame{{data: data}}
}

func (d *Decoder) top() *decFrame { return &d.frames[len(d.frames)-1] }

// EOF reports whether the current context has no more TLVs to read.
func (d *Decoder) EOF() bool {
	f := d.top()
	return f.pos >= len(f.data)
}

// Peek returns the tag octet at the cursor without advancing it.
func (d *Decoder) Peek() (tag byte, err error) {
	f := d.top()
	if f.pos >= len(f.data) {
		return 0, malformed(f.pos, errors.New("peek past end of buffer"))
	}
	return f.data[f.pos], nil
}

// readHeader parses the tag and length octets at the cursor, returning the
// tag, the declared content length, and the offset where the content begins.
// It does not advance the cursor.
func (d *Decoder) readHeader() (tag byte, length int, contentStart int, err error) {
	f := d.top()
	start := f.pos
	if start >= len(f.data) {
		return 0, 0, 0, malformed(start, errors.New("truncated tag"))
	}
	tag = f.data[start]
	p := start + 1
	if p >= len(f.data) {
		return 0, 0, 0, malformed(p, errors.New("truncated length"))
	}
	first := f.data[p]
	p++
	if first&0x80 == 0 {
		length = int(first)
	} else {
		n := int(first & 0x7F)
		if n == 0 {
			return 0, 0, 0, malformed(p, errors.New("indefinite length form is not supported"))
		}
		if p+n > len(f.data) {
			return 0, 0, 0, malformed(p, errors.New("truncated long-form length"))
		}
		for i := 0; i < n; i++ {
			length = (length << 8) | int(f.data[p+i])
		}
		p += n
	}
	if length < 0 || p+length > len(f.data) {
		return 0, 0, 0, malformed(p, errors.New("truncated payload"))
	}
	return tag, length, p, nil
}

// Enter descends into the constructed TLV at the cursor, bounding the child
// context by the TLV's declared length, and advances the parent cursor past it.
func (d *Decoder) Enter() error {
	tag, length, contentStart, err := d.readHeader()
	if err != nil {
		return err
	}
	if !TagConstructed(tag) {
		return malformed(d.top().pos, errors.New("enter called on a primitive tag"))
	}
	f := d.top()
	child := decFrame{data: f.data[contentStart : contentStart+length]}
	f.pos = contentStart + length
	d.frames = append(d.frames, child)
	return nil
}

// Leave ascends out of the current constructed context, asserting that it
// has been fully consumed.
func (d *Decoder) Leave() error {
	if len(d.frames) < 2 {
		return malformed(0, errors.New("leave called without a matching enter"))
	}
	child := d.frames[len(d.frames)-1]
	if child.pos != len(child.data) {
		return malformed(child.pos, errors.New("unconsumed bytes in constructed context"))
	}
	d.frames = d.frames[:len(d.frames)-1]
	return nil
}

// ReadRaw consumes one primitive TLV and returns its tag and undecoded
// payload, without interpreting tags outside the universal class.
func (d *Decoder) ReadRaw() (tag byte, payload []byte, err error) {
	tag, length, contentStart, err := d.readHeader()
	if err != nil {
		return 0, nil, err
	}
	f := d.top()
	payload = f.data[contentStart : contentStart+length]
	f.pos = contentStart + length
	return tag, payload, nil
}

// Read consumes one primitive TLV and decodes its payload into the
// appropriate host value for the four universal tags SNMP uses: *big.Int for
// INTEGER, []byte for OCTET STRING, nil for NULL, and an OID for OBJECT
// IDENTIFIER. Any other tag is returned with its raw payload bytes, leaving
// interpretation (Counter32, IPAddress, the SNMPv2 exception tags, ...) to
// the caller.
func (d *Decoder) Read() (tag byte, value interface{}, err error) {
	offset := d.top().pos
	tag, payload, err := d.ReadRaw()
	if err != nil {
		return 0, nil, err
	}
	switch tag {
	case TagInteger:
		return tag, DecodeInteger(payload), nil
	case TagOctetString:
		return tag, payload, nil
	case TagNull:
		if len(payload) != 0 {
			return 0, nil, malformed(offset, errors.New("NULL payload must be empty"))
		}
		return tag, nil, nil
	case TagOID:
		oid, oerr := DecodeOID(payload)
		if oerr != nil {
			return 0, nil, oerr
		}
		return tag, oid, nil
	default:
		return tag, payload, nil
	}
}
