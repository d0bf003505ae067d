package snmp

// Version identifies the SNMP protocol version carried in a message.
type Version int32

const (
	V1  Version = 0
	V2C Version = 1
)

// PDUVariant discriminates the four PDU kinds this agent understands. Each
// case corresponds to a distinct context-specific constructed BER tag.
type PDUVariant int

const (
	GetRequest PDUVariant = iota
	GetNextRequest
	GetBulkRequest
	GetResponse
)

// pduTag maps a PDUVariant to its context-specific constructed tag octet.
func pduTag(v PDUVariant) byte {
	switch v {
	case GetRequest:
		return 0xA0
	case GetNextRequest:
		return 0xA1
	case GetBulkRequest:
		return 0xA5
	case GetResponse:
		return 0xA2
	}
	panic("snmp: unrecognised PDU variant")
}

// pduVariantForTag is the decoder's inverse of pduTag, restricted to the
// variants the agent accepts on input.
var pduVariantForTag = map[byte]PDUVariant{
	0xA0: GetRequest,
	0xA1: GetNextRequest,
	0xA5: GetBulkRequest,
}

// VarBinding pairs an OID with the value bound to it. Request bindings
// always carry a Null value on the wire; the resolver ignores it.
type VarBinding struct {
	OID   OID
	Value Value
}

// Request is an immutable record decoded from an inbound datagram.
type Request struct {
	Version         Version
	Community       string
	PDUVariant      PDUVariant
	RequestID       int32
	NonRepeaters    uint
	MaxRepetitions  uint
	VariableBindings []VarBinding
}

// Reply builds the Response for this request, copying Version, Community
// and RequestID, and fixing PDUVariant to GetResponse. No other field of
// the request is consulted or mutated.
func (r *Request) Reply(vbs []VarBinding, errorStatus, errorIndex int) *Response {
	return &Response{
		Version:         r.Version,
		Community:       r.Community,
		PDUVariant:      GetResponse,
		RequestID:       r.RequestID,
		ErrorStatus:     errorStatus,
		ErrorIndex:      errorIndex,
		VariableBindings: vbs,
	}
}

// Response is the GetResponse PDU emitted by the agent.
type Response struct {
	Version         Version
	Community       string
	PDUVariant      PDUVariant
	RequestID       int32
	ErrorStatus     int
	ErrorIndex      int
	VariableBindings []VarBinding
}
