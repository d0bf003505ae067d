package snmp

import "sort"

// Resolve dispatches a decoded Request against table, producing the
// variable-binding list for the eventual GetResponse. The resolver is pure:
// it never mutates table and never fails - unknown OIDs become
// NoSuchObject, exhausted traversal becomes EndOfMibView.
func Resolve(req *Request, table []VarBinding) []VarBinding {
	switch req.PDUVariant {
	case GetRequest:
		return resolveGet(req.VariableBindings, table)
	case GetNextRequest:
		return resolveGetNext(req.VariableBindings, table)
	case GetBulkRequest:
		return resolveGetBulk(req.VariableBindings, req.NonRepeaters, req.MaxRepetitions, table)
	}
	return nil
}

// resolveGet returns, for each requested binding, an exact OID match copied
// from table, or NoSuchObject if none exists.
func resolveGet(reqVBs, table []VarBinding) []VarBinding {
	results := make([]VarBinding, 0, len(reqVBs))
	for _, reqVB := range reqVBs {
		found := false
		for _, vb := range table {
			if vb.OID.Equal(reqVB.OID) {
				results = append(results, VarBinding{OID: vb.OID, Value: vb.Value})
				found = true
				break
			}
		}
		if !found {
			results = append(results, VarBinding{OID: reqVB.OID, Value: NoSuchObjectValue()})
		}
	}
	return results
}

// sortedCopy returns a stably-sorted copy of table in ascending OID order,
// leaving the caller's slice untouched.
func sortedCopy(table []VarBinding) []VarBinding {
	sorted := make([]VarBinding, len(table))
	copy(sorted, table)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OID.LessThan(sorted[j].OID)
	})
	return sorted
}

// resolveGetNext returns, for each requested binding, the first table entry
// whose OID is strictly greater than the request OID in the stably-sorted
// table, or EndOfMibView if none exists.
func resolveGetNext(reqVBs, table []VarBinding) []VarBinding {
	sorted := sortedCopy(table)
	results := make([]VarBinding, 0, len(reqVBs))
	for _, reqVB := range reqVBs {
		results = append(results, getNextOne(reqVB.OID, sorted))
	}
	return results
}

func getNextOne(oid OID, sorted []VarBinding) VarBinding {
	for _, vb := range sorted {
		if oid.LessThan(vb.OID) {
			return VarBinding{OID: vb.OID, Value: vb.Value}
		}
	}
	return VarBinding{OID: oid, Value: EndOfMibViewValue()}
}

// resolveGetBulk partitions the request into non-repeating head bindings
// (one GetNext pass) and repeating tail bindings (maxRepetitions GetNext
// passes, each walking forward from the OID the previous pass returned).
// Iteration order is repetition-major: for each repetition, one VB per tail
// index, matching the canonical GetBulk wire layout.
func resolveGetBulk(reqVBs []VarBinding, nonRepeaters, maxRepetitions uint, table []VarBinding) []VarBinding {
	n := int(nonRepeaters)
	if n > len(reqVBs) {
		n = len(reqVBs)
	}
	head := reqVBs[:n]
	tail := make([]VarBinding, len(reqVBs)-n)
	copy(tail, reqVBs[n:])

	sorted := sortedCopy(table)
	results := resolveGetNext(head, sorted)

	for r := 0; r < int(maxRepetitions); r++ {
		for i := range tail {
			result := getNextOne(tail[i].OID, sorted)
			results = append(results, result)
			// Advance this tail slot from the OID just returned, even past
			// EndOfMibView: subsequent repetitions keep chasing forward
			// lexicographically from that sentinel OID rather than
			// latching it.
			tail[i] = VarBinding{OID: result.OID, Value: NewNull()}
		}
	}
	return results
}
