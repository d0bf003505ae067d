package snmp

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"

	"github.com/oidwatch/snmpagent/ber"
)

// DataType identifies which SNMPValue variant a Value holds. It mirrors the
// BER tag universe the agent understands, rather than a Go type, so the
// encoder and decoder can dispatch on one small enum.
type DataType int

const (
	Integer DataType = iota
	Boolean
	OctetString
	Null
	ObjectIdentifier
	IPAddress
	Counter32
	Gauge32
	TimeTicks
	Counter64
	NoSuchObject
	NoSuchInstance
	EndOfMibView
)

// tagOf maps a DataType to the BER tag octet (class + primitive + number)
// used on the wire. Boolean shares INTEGER's tag: legacy agents in this
// family never adopted the dedicated BOOLEAN tag.
func tagOf(t DataType) byte {
	switch t {
	case Integer, Boolean:
		return ber.TagInteger
	case OctetString:
		return ber.TagOctetString
	case Null:
		return ber.TagNull
	case ObjectIdentifier:
		return ber.TagOID
	case IPAddress:
		return ber.ComposeTag(ber.ClassApplication, false, 0x00)
	case Counter32:
		return ber.ComposeTag(ber.ClassApplication, false, 0x01)
	case Gauge32:
		return ber.ComposeTag(ber.ClassApplication, false, 0x02)
	case TimeTicks:
		return ber.ComposeTag(ber.ClassApplication, false, 0x03)
	case Counter64:
		return ber.ComposeTag(ber.ClassApplication, false, 0x06)
	case NoSuchObject:
		return ber.ComposeTag(ber.ClassContextSpecific, false, 0x00)
	case NoSuchInstance:
		return ber.ComposeTag(ber.ClassContextSpecific, false, 0x01)
	case EndOfMibView:
		return ber.ComposeTag(ber.ClassContextSpecific, false, 0x02)
	}
	panic(fmt.Sprintf("snmp: unrecognised data type %d", t))
}

// dataTypeForTag is the decoder's inverse of tagOf: it never needs to
// recover Boolean, since on the wire Boolean is indistinguishable from
// Integer.
var dataTypeForTag = map[byte]DataType{
	ber.TagInteger:                                                     Integer,
	ber.TagOctetString:                                                 OctetString,
	ber.TagNull:                                                        Null,
	ber.TagOID:                                                         ObjectIdentifier,
	ber.ComposeTag(ber.ClassApplication, false, 0x00):                  IPAddress,
	ber.ComposeTag(ber.ClassApplication, false, 0x01):                  Counter32,
	ber.ComposeTag(ber.ClassApplication, false, 0x02):                  Gauge32,
	ber.ComposeTag(ber.ClassApplication, false, 0x03):                  TimeTicks,
	ber.ComposeTag(ber.ClassApplication, false, 0x06):                  Counter64,
	ber.ComposeTag(ber.ClassContextSpecific, false, 0x00):              NoSuchObject,
	ber.ComposeTag(ber.ClassContextSpecific, false, 0x01):              NoSuchInstance,
	ber.ComposeTag(ber.ClassContextSpecific, false, 0x02):              EndOfMibView,
}

// Value is a tagged variant over every SNMP-visible value. Raw holds the
// Go-native payload appropriate to Type; see the constructors for the exact
// type each DataType carries.
type Value struct {
	Type DataType
	Raw  interface{}
}

func NewInteger(n *big.Int) Value        { return Value{Type: Integer, Raw: n} }
func NewIntegerInt64(n int64) Value      { return Value{Type: Integer, Raw: big.NewInt(n)} }
func NewBoolean(b bool) Value            { return Value{Type: Boolean, Raw: b} }
func NewOctetString(s []byte) Value      { return Value{Type: OctetString, Raw: s} }
func NewNull() Value                     { return Value{Type: Null} }
func NewOID(oid OID) Value               { return Value{Type: ObjectIdentifier, Raw: oid} }
func NewIPAddress(b [4]byte) Value       { return Value{Type: IPAddress, Raw: b} }
func NewCounter32(v uint32) Value        { return Value{Type: Counter32, Raw: v} }
func NewGauge32(v uint32) Value          { return Value{Type: Gauge32, Raw: v} }
func NewTimeTicks(v uint32) Value        { return Value{Type: TimeTicks, Raw: v} }
func NewCounter64(v uint64) Value        { return Value{Type: Counter64, Raw: v} }
func NoSuchObjectValue() Value           { return Value{Type: NoSuchObject} }
func NoSuchInstanceValue() Value         { return Value{Type: NoSuchInstance} }
func EndOfMibViewValue() Value           { return Value{Type: EndOfMibView} }

// String renders the value for diagnostics and logging; it is not part of
// the wire contract.
func (v Value) String() string {
	switch v.Type {
	case Integer:
		return v.Raw.(*big.Int).String()
	case Boolean:
		return strconv.FormatBool(v.Raw.(bool))
	case OctetString:
		b := v.Raw.([]byte)
		if !isPrintable(b) {
			return hexDump(b)
		}
		return string(b)
	case Null:
		return "Null"
	case ObjectIdentifier:
		return v.Raw.(OID).String()
	case IPAddress:
		b := v.Raw.([4]byte)
		return fmt.Sprintf("%d.%d.%d.%d", b[0], b[1], b[2], b[3])
	case Counter32:
		return strconv.FormatUint(uint64(v.Raw.(uint32)), 10)
	case Gauge32:
		return strconv.FormatUint(uint64(v.Raw.(uint32)), 10)
	case TimeTicks:
		return strconv.FormatUint(uint64(v.Raw.(uint32)), 10)
	case Counter64:
		return strconv.FormatUint(v.Raw.(uint64), 10)
	case NoSuchObject:
		return "NoSuchObject"
	case NoSuchInstance:
		return "NoSuchInstance"
	case EndOfMibView:
		return "EndOfMibView"
	}
	return fmt.Sprintf("unrecognised data type %d", v.Type)
}

// Equal compares two values for semantic equality, used by the codec
// round-trip property: it does not require identical Go representations,
// only identical meaning.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case Integer:
		return v.Raw.(*big.Int).Cmp(other.Raw.(*big.Int)) == 0
	case Boolean:
		return v.Raw.(bool) == other.Raw.(bool)
	case OctetString:
		return string(v.Raw.([]byte)) == string(other.Raw.([]byte))
	case Null, NoSuchObject, NoSuchInstance, EndOfMibView:
		return true
	case ObjectIdentifier:
		return v.Raw.(OID).Equal(other.Raw.(OID))
	case IPAddress:
		return v.Raw.([4]byte) == other.Raw.([4]byte)
	case Counter32, Gauge32, TimeTicks:
		return v.Raw.(uint32) == other.Raw.(uint32)
	case Counter64:
		return v.Raw.(uint64) == other.Raw.(uint64)
	}
	return false
}

// hexDump renders a byte slice for diagnostics, truncated so a long binary
// OctetString doesn't flood a log line.
func hexDump(b []byte) string {
	if len(b) > 32 {
		return hex.EncodeToString(b[:32]) + "..."
	}
	return hex.EncodeToString(b)
}

// isPrintable reports whether b looks like text worth rendering directly,
// rather than binary worth hex-dumping.
func isPrintable(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c >= 0x7f {
			if c != '\t' && c != '\n' && c != '\r' {
				return false
			}
		}
	}
	return true
}
