package snmp

import (
	"fmt"
	"math/big"

	"github.com/oidwatch/snmpagent/ber"
)

// EncodeResponse assembles the SNMP message envelope described in the
// codec's wire format around a Response, using the ber package for every
// tag/length/payload detail.
func EncodeResponse(resp *Response) ([]byte, error) {
	enc := ber.NewEncoder()
	enc.Enter(ber.ClassUniversal, ber.TagNumber(ber.TagSequence))
	writeInteger(enc, int64(resp.Version))
	enc.WritePrimitive(ber.ClassUniversal, ber.TagOctetString, []byte(resp.Community))

	enc.Enter(ber.ClassContextSpecific, ber.TagNumber(pduTag(GetResponse)))
	writeInteger(enc, int64(resp.RequestID))
	writeInteger(enc, int64(resp.ErrorStatus))
	writeInteger(enc, int64(resp.ErrorIndex))

	enc.Enter(ber.ClassUniversal, ber.TagNumber(ber.TagSequence))
	for _, vb := range resp.VariableBindings {
		enc.Enter(ber.ClassUniversal, ber.TagNumber(ber.TagSequence))
		oidBytes, err := ber.EncodeOID(vb.OID)
		if err != nil {
			return nil, invariant(err)
		}
		enc.WritePrimitive(ber.ClassUniversal, ber.TagOID, oidBytes)
		if err := writeValue(enc, vb.Value); err != nil {
			return nil, err
		}
		if err := enc.Leave(); err != nil {
			return nil, invariant(err)
		}
	}
	for i := 0; i < 3; i++ {
		if err := enc.Leave(); err != nil {
			return nil, invariant(err)
		}
	}

	out, err := enc.Output()
	if err != nil {
		return nil, invariant(err)
	}
	return out, nil
}

func writeInteger(enc *ber.Encoder, n int64) {
	enc.WritePrimitive(ber.ClassUniversal, ber.TagInteger, ber.EncodeInteger(big.NewInt(n)))
}

// writeValue emits the tag + length + payload for a single SNMPValue.
func writeValue(enc *ber.Encoder, v Value) error {
	tag := tagOf(v.Type)
	class, _, number := ber.TagClass(tag), ber.TagConstructed(tag), ber.TagNumber(tag)
	switch v.Type {
	case Integer:
		enc.WritePrimitive(class, number, ber.EncodeInteger(v.Raw.(*big.Int)))
	case Boolean:
		b := byte(0x00)
		if v.Raw.(bool) {
			b = 0xFF
		}
		enc.WritePrimitive(class, number, []byte{b})
	case OctetString:
		enc.WritePrimitive(class, number, v.Raw.([]byte))
	case Null, NoSuchObject, NoSuchInstance, EndOfMibView:
		enc.WritePrimitive(class, number, nil)
	case ObjectIdentifier:
		oidBytes, err := ber.EncodeOID(v.Raw.(OID))
		if err != nil {
			return invariant(err)
		}
		enc.WritePrimitive(class, number, oidBytes)
	case IPAddress:
		b := v.Raw.([4]byte)
		enc.WritePrimitive(class, number, b[:])
	case Counter32, Gauge32, TimeTicks:
		enc.WritePrimitive(class, number, ber.EncodeInteger(big.NewInt(int64(v.Raw.(uint32)))))
	case Counter64:
		enc.WritePrimitive(class, number, ber.EncodeInteger(new(big.Int).SetUint64(v.Raw.(uint64))))
	default:
		return invariant(fmt.Errorf("unrecognised data type %d", v.Type))
	}
	return nil
}

// DecodeRequest reverses the codec's wire format, producing an immutable
// Request. Variable-binding values are parsed but discarded; only the OID
// of each binding is kept, with Value fixed to Null per the resolver's
// contract.
func DecodeRequest(data []byte) (*Request, error) {
	dec := ber.NewDecoder(data)
	if err := dec.Enter(); err != nil {
		return nil, malformed(err)
	}

	versionTag, versionValue, err := dec.Read()
	if err != nil {
		return nil, malformed(err)
	}
	if versionTag != ber.TagInteger {
		return nil, malformed(fmt.Errorf("expected version INTEGER, got tag 0x%02x", versionTag))
	}
	versionCode := versionValue.(*big.Int).Int64()
	if versionCode != int64(V1) && versionCode != int64(V2C) {
		return nil, unsupportedVersion(fmt.Errorf("SNMP version code %d is not implemented", versionCode))
	}
	version := Version(versionCode)

	communityTag, communityValue, err := dec.Read()
	if err != nil {
		return nil, malformed(err)
	}
	if communityTag != ber.TagOctetString {
		return nil, malformed(fmt.Errorf("expected community OCTET STRING, got tag 0x%02x", communityTag))
	}
	community := string(communityValue.([]byte))

	pduTagByte, err := dec.Peek()
	if err != nil {
		return nil, malformed(err)
	}
	variant, ok := pduVariantForTag[pduTagByte]
	if !ok {
		return nil, unsupportedPDU(fmt.Errorf("PDU tag 0x%02x is not implemented", pduTagByte))
	}

	if err := dec.Enter(); err != nil {
		return nil, malformed(err)
	}

	requestIDTag, requestIDValue, err := dec.Read()
	if err != nil {
		return nil, malformed(err)
	}
	if requestIDTag != ber.TagInteger {
		return nil, malformed(fmt.Errorf("expected request-id INTEGER, got tag 0x%02x", requestIDTag))
	}
	requestID := int32(requestIDValue.(*big.Int).Int64())

	var nonRepeaters, maxRepetitions uint
	if variant == GetBulkRequest {
		_, nrValue, err := dec.Read()
		if err != nil {
			return nil, malformed(err)
		}
		_, mrValue, err := dec.Read()
		if err != nil {
			return nil, malformed(err)
		}
		nonRepeaters = uint(nrValue.(*big.Int).Int64())
		maxRepetitions = uint(mrValue.(*big.Int).Int64())
	} else {
		// error_status / error_index on input: ignored per the originator
		// always sending zero, but still consumed to advance the cursor.
		if _, _, err := dec.Read(); err != nil {
			return nil, malformed(err)
		}
		if _, _, err := dec.Read(); err != nil {
			return nil, malformed(err)
		}
	}

	if err := dec.Enter(); err != nil {
		return nil, malformed(err)
	}
	var bindings []VarBinding
	for !dec.EOF() {
		if err := dec.Enter(); err != nil {
			return nil, malformed(err)
		}
		oidTag, oidValue, err := dec.Read()
		if err != nil {
			return nil, malformed(err)
		}
		if oidTag != ber.TagOID {
			return nil, malformed(fmt.Errorf("expected OID, got tag 0x%02x", oidTag))
		}
		if _, _, err := dec.ReadRaw(); err != nil { // discard the request's value
			return nil, malformed(err)
		}
		bindings = append(bindings, VarBinding{
			OID:   OID(oidValue.([]uint64)),
			Value: NewNull(),
		})
		if err := dec.Leave(); err != nil {
			return nil, malformed(err)
		}
	}
	if err := dec.Leave(); err != nil {
		return nil, malformed(err)
	}
	if err := dec.Leave(); err != nil {
		return nil, malformed(err)
	}
	if err := dec.Leave(); err != nil {
		return nil, malformed(err)
	}

	return &Request{
		Version:          version,
		Community:        community,
		PDUVariant:       variant,
		RequestID:        requestID,
		NonRepeaters:     nonRepeaters,
		MaxRepetitions:   maxRepetitions,
		VariableBindings: bindings,
	}, nil
}
