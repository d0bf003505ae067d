package ber

import "math/big"

// EncodeInteger produces the minimal two's-complement BER encoding of n: the
// smallest number of bytes such that the sign bit of the leading byte
// correctly represents the value and no leading byte could be dropped
// without changing the decoded result.
func EncodeInteger(n *big.Int) []byte {
	if n.Sign() == 0 {
		return []byte{0x00}
	}
	if n.Sign() > 0 {
		b := n.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0x00}, b...)
		}
		return b
	}
	return encodeNegative(n)
}

// encodeNegative finds the smallest byte width k such that n fits a k-byte
// two's-complement representation (n >= -2^(8k-1)), then emits it.
func encodeNegative(n *big.Int) []byte {
	k := 1
	limit := big.NewInt(-128) // -2^7
	for n.Cmp(limit) < 0 {
		k++
		limit.Lsh(limit, 8)
	}
	modulus := new(big.Int).Lsh(big.NewInt(1), uint(8*k))
	twosComplement := new(big.Int).Add(n, modulus)
	b := twosComplement.Bytes()
	for len(b) < k {
		b = append([]byte{0x00}, b...)
	}
	return b
}

// DecodeInteger interprets payload as a minimal two's-complement BER
// integer. It does not require minimality of the input; a non-minimal
// encoding is accepted and decoded per its mathematical value.
func DecodeInteger(payload []byte) *big.Int {
	n := new(big.Int).SetBytes(payload)
	if len(payload) > 0 && payload[0]&0x80 != 0 {
		modulus := new(big.Int).Lsh(big.NewInt(1), uint(8*len(payload)))
		n.Sub(n, modulus)
	}
	return n
}
