package snmp

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

// scenarioTable builds the table used throughout the concrete resolver
// scenarios: sysDescr, sysUpTime and ifNumber (an Integer).
func scenarioTable(t *testing.T) []VarBinding {
	t.Helper()
	return []VarBinding{
		{OID: mustOID(t, "1.3.6.1.2.1.1.1.0"), Value: NewOctetString([]byte("sysDescr"))},
		{OID: mustOID(t, "1.3.6.1.2.1.1.3.0"), Value: NewTimeTicks(12345)},
		{OID: mustOID(t, "1.3.6.1.2.1.2.1.0"), Value: NewIntegerInt64(4)},
	}
}

func TestResolveGetExact(t *testing.T) {
	table := scenarioTable(t)
	req := &Request{
		PDUVariant:       GetRequest,
		VariableBindings: []VarBinding{{OID: mustOID(t, "1.3.6.1.2.1.1.1.0")}},
	}
	got := Resolve(req, table)
	assert.Len(t, got, 1)
	assert.Equal(t, "1.3.6.1.2.1.1.1.0", got[0].OID.String())
	assert.True(t, got[0].Value.Equal(NewOctetString([]byte("sysDescr"))))
}

func TestResolveGetMiss(t *testing.T) {
	table := scenarioTable(t)
	req := &Request{
		PDUVariant:       GetRequest,
		VariableBindings: []VarBinding{{OID: mustOID(t, "1.3.6.1.2.1.99.0")}},
	}
	got := Resolve(req, table)
	assert.Len(t, got, 1)
	assert.Equal(t, "1.3.6.1.2.1.99.0", got[0].OID.String())
	assert.Equal(t, NoSuchObject, got[0].Value.Type)
}

func TestResolveGetNextWalk(t *testing.T) {
	table := scenarioTable(t)
	req := &Request{
		PDUVariant:       GetNextRequest,
		VariableBindings: []VarBinding{{OID: mustOID(t, "1.3.6.1.2.1.1.1.0")}},
	}
	got := Resolve(req, table)
	assert.Len(t, got, 1)
	assert.Equal(t, "1.3.6.1.2.1.1.3.0", got[0].OID.String())
	assert.True(t, got[0].Value.Equal(NewTimeTicks(12345)))
}

func TestResolveGetNextEnd(t *testing.T) {
	table := scenarioTable(t)
	req := &Request{
		PDUVariant:       GetNextRequest,
		VariableBindings: []VarBinding{{OID: mustOID(t, "1.3.6.1.2.1.2.1.0")}},
	}
	got := Resolve(req, table)
	assert.Len(t, got, 1)
	assert.Equal(t, "1.3.6.1.2.1.2.1.0", got[0].OID.String())
	assert.Equal(t, EndOfMibView, got[0].Value.Type)
}

func TestResolveGetBulkLayout(t *testing.T) {
	table := scenarioTable(t)
	req := &Request{
		PDUVariant:       GetBulkRequest,
		NonRepeaters:     0,
		MaxRepetitions:   2,
		VariableBindings: []VarBinding{{OID: mustOID(t, "1.3.6.1.2.1.1.0")}},
	}
	got := Resolve(req, table)
	assert.Len(t, got, 2)
	assert.Equal(t, "1.3.6.1.2.1.1.1.0", got[0].OID.String())
	assert.True(t, got[0].Value.Equal(NewOctetString([]byte("sysDescr"))))
	assert.Equal(t, "1.3.6.1.2.1.1.3.0", got[1].OID.String())
	assert.True(t, got[1].Value.Equal(NewTimeTicks(12345)))
}

func TestResolveGetBulkCountsMatchNPlusRTimesKMinusN(t *testing.T) {
	table := scenarioTable(t)
	nonRepeaters := uint(1)
	maxRepetitions := uint(3)
	reqVBs := []VarBinding{
		{OID: mustOID(t, "1.3.6.1.2.1.1.1.0")},
		{OID: mustOID(t, "1.3.6.1.2.1.1.0")},
		{OID: mustOID(t, "1.3.6.1.2.1.2.0")},
	}
	req := &Request{
		PDUVariant:       GetBulkRequest,
		NonRepeaters:     nonRepeaters,
		MaxRepetitions:   maxRepetitions,
		VariableBindings: reqVBs,
	}
	got := Resolve(req, table)
	k := uint(len(reqVBs))
	want := int(nonRepeaters + maxRepetitions*(k-nonRepeaters))
	assert.Len(t, got, want)
}

func TestResolveGetBulkContinuesPastEndOfMibView(t *testing.T) {
	table := scenarioTable(t)
	req := &Request{
		PDUVariant:       GetBulkRequest,
		NonRepeaters:     0,
		MaxRepetitions:   3,
		VariableBindings: []VarBinding{{OID: mustOID(t, "1.3.6.1.2.1.2.1.0")}},
	}
	got := Resolve(req, table)
	assert.Len(t, got, 3)
	for _, vb := range got {
		assert.Equal(t, EndOfMibView, vb.Value.Type)
		assert.Equal(t, "1.3.6.1.2.1.2.1.0", vb.OID.String())
	}
}

func TestResolveDoesNotMutateCallerTable(t *testing.T) {
	table := scenarioTable(t)
	original := make([]VarBinding, len(table))
	copy(original, table)

	req := &Request{
		PDUVariant:       GetBulkRequest,
		MaxRepetitions:   2,
		VariableBindings: []VarBinding{{OID: mustOID(t, "1.3.6.1.2.1.1.0")}},
	}
	Resolve(req, table)

	for i := range table {
		assert.Equal(t, original[i].OID.String(), table[i].OID.String())
	}
}

func TestReplyFixesPDUVariantAndCopiesEnvelope(t *testing.T) {
	req := &Request{
		Version:    V2C,
		Community:  "public",
		PDUVariant: GetRequest,
		RequestID:  42,
	}
	vbs := []VarBinding{{OID: mustOID(t, "1.3.6.1.2.1.1.1.0"), Value: NewOctetString([]byte("sysDescr"))}}
	resp := req.Reply(vbs, 0, 0)
	assert.Equal(t, req.Version, resp.Version)
	assert.Equal(t, req.Community, resp.Community)
	assert.Equal(t, req.RequestID, resp.RequestID)
	assert.Equal(t, GetResponse, resp.PDUVariant)
	assert.Equal(t, 0, resp.ErrorStatus)
	assert.Equal(t, 0, resp.ErrorIndex)
	assert.Equal(t, vbs, resp.VariableBindings)
}
