package snmp

import (
	"math/big"
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestValueStringRepresentation(t *testing.T) {
	oid, err := ParseOID("1.3.10")
	assert.NoError(t, err)

	tests := []struct {
		name  string
		input Value
		want  string
	}{
		{"Integer", NewIntegerInt64(17171), "17171"},
		{"Boolean", NewBoolean(true), "true"},
		{"OctetString", NewOctetString([]byte("abc")), "abc"},
		{"Null", NewNull(), "Null"},
		{"OID", NewOID(oid), "1.3.10"},
		{"IPAddress", NewIPAddress([4]byte{10, 18, 85, 39}), "10.18.85.39"},
		{"Counter32", NewCounter32(29292), "29292"},
		{"Gauge32", NewGauge32(2020), "2020"},
		{"TimeTicks", NewTimeTicks(18532), "18532"},
		{"Counter64", NewCounter64(91919111919), "91919111919"},
		{"NoSuchObject", NoSuchObjectValue(), "NoSuchObject"},
		{"NoSuchInstance", NoSuchInstanceValue(), "NoSuchInstance"},
		{"EndOfMibView", EndOfMibViewValue(), "EndOfMibView"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.input.String())
		})
	}
}

func TestValueEqual(t *testing.T) {
	assert.True(t, NewIntegerInt64(5).Equal(NewInteger(big.NewInt(5))))
	assert.False(t, NewIntegerInt64(5).Equal(NewIntegerInt64(6)))
	assert.True(t, NoSuchObjectValue().Equal(NoSuchObjectValue()))
	assert.False(t, NewIntegerInt64(5).Equal(NewCounter32(5)))

	oidA, _ := ParseOID("1.3.6.1")
	oidB, _ := ParseOID("1.3.6.1")
	assert.True(t, NewOID(oidA).Equal(NewOID(oidB)))
}
