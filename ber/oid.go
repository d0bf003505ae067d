package ber

import "errors"

// EncodeOID encodes an OID's components per the BER rule: the first two
// components are folded into a single value (40*c0 + c1), and every
// resulting value - the folded first value and each remaining component - is
// emitted as a base-128 big-endian group with the continuation bit set on
// all but the last group.
func EncodeOID(components []uint64) ([]byte, error) {
	if len(components) < 2 {
		return nil, invariant(errors.New("OID must have at least 2 components"))
	}
	out := make([]byte, 0, len(components))
	out = appendBase128(out, 40*components[0]+components[1])
	for _, c := range components[2:] {
		out = appendBase128(out, c)
	}
	return out, nil
}

func appendBase128(out []byte, v uint64) []byte {
	var groups []byte
	groups = append(groups, byte(v&0x7F))
	for v >>= 7; v > 0; v >>= 7 {
		groups = append(groups, byte(v&0x7F)|0x80)
	}
	// groups was built least-significant-first; reverse it, setting the
	// continuation bit on every group but the last emitted.
	for i := len(groups) - 1; i >= 0; i-- {
		b := groups[i]
		if i != 0 {
			b |= 0x80
		} else {
			b &^= 0x80
		}
		out = append(out, b)
	}
	return out
}

// DecodeOID reverses EncodeOID, unfolding the first base-128 group back into
// its two leading components.
func DecodeOID(payload []byte) ([]uint64, error) {
	if len(payload) == 0 {
		return nil, malformed(0, errors.New("empty OID payload"))
	}
	var groups []uint64
	var v uint64
	groupStart := 0
	for i, b := range payload {
		v = (v << 7) | uint64(b&0x7F)
		if b&0x80 == 0 {
			groups = append(groups, v)
			v = 0
			groupStart = i + 1
		}
	}
	if groupStart != len(payload) {
		return nil, malformed(groupStart, errors.New("truncated OID sub-identifier"))
	}
	if len(groups) == 0 {
		return nil, malformed(0, errors.New("OID has no sub-identifiers"))
	}
	var c0, c1 uint64
	switch first := groups[0]; {
	case first < 40:
		c0, c1 = 0, first
	case first < 80:
		c0, c1 = 1, first-40
	default:
		c0, c1 = 2, first-80
	}
	components := make([]uint64, 0, len(groups)+1)
	components = append(components, c0, c1)
	components = append(components, groups[1:]...)
	if len(components) < 2 {
		return nil, malformed(0, errors.New("OID must decode to at least 2 components"))
	}
	return components, nil
}
