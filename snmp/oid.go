package snmp

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// OID is a non-empty ordered sequence of non-negative integer components.
// The canonical textual form is dot-separated decimal with no leading dot.
type OID []uint64

// ParseOID parses the canonical textual form, stripping a leading dot if
// present. It rejects anything that does not decode to at least two
// components, matching the BER encoding's own requirement.
func ParseOID(s string) (OID, error) {
	s = strings.TrimPrefix(s, ".")
	if s == "" {
		return nil, errors.New("snmp: empty OID")
	}
	parts := strings.Split(s, ".")
	oid := make(OID, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "snmp: invalid OID component %q", p)
		}
		oid[i] = n
	}
	if len(oid) < 2 {
		return nil, errors.Errorf("snmp: OID %q must have at least 2 components", s)
	}
	return oid, nil
}

// String renders the canonical dot-separated decimal form.
func (o OID) String() string {
	parts := make([]string, len(o))
	for i, c := range o {
		parts[i] = strconv.FormatUint(c, 10)
	}
	return strings.Join(parts, ".")
}

// Equal reports whether two OIDs have identical components.
func (o OID) Equal(other OID) bool {
	return o.Compare(other) == 0
}

// Compare implements component-wise lexicographic order: at the first
// differing index the smaller component wins; a strict prefix is smaller
// than its extension. It returns -1, 0 or 1 like bytes.Compare.
func (o OID) Compare(other OID) int {
	for i := 0; i < len(o) && i < len(other); i++ {
		switch {
		case o[i] < other[i]:
			return -1
		case o[i] > other[i]:
			return 1
		}
	}
	switch {
	case len(o) < len(other):
		return -1
	case len(o) > len(other):
		return 1
	}
	return 0
}

// LessThan reports whether o sorts strictly before other.
func (o OID) LessThan(other OID) bool { return o.Compare(other) < 0 }

// Clone returns an independent copy of the component slice.
func (o OID) Clone() OID {
	c := make(OID, len(o))
	copy(c, o)
	return c
}
