package config

import (
	"fmt"
	"math/big"
	"net"
	"strconv"

	"github.com/oidwatch/snmpagent/snmp"
)

// convertBinding parses a raw YAML binding entry into a snmp.VarBinding.
// Type names mirror the SNMPValue variant names from the wire model:
// integer, octetstring, null, oid, ipaddress, counter32, gauge32,
// timeticks, counter64.
func convertBinding(oidText string, e rawBindingEntry) (snmp.VarBinding, error) {
	oid, err := snmp.ParseOID(oidText)
	if err != nil {
		return snmp.VarBinding{}, err
	}

	value, err := convertValue(e.Type, e.Value)
	if err != nil {
		return snmp.VarBinding{}, fmt.Errorf("oid %s: %w", oidText, err)
	}
	return snmp.VarBinding{OID: oid, Value: value}, nil
}

func convertValue(valueType, raw string) (snmp.Value, error) {
	switch valueType {
	case "integer":
		n, ok := new(big.Int).SetString(raw, 10)
		if !ok {
			return snmp.Value{}, fmt.Errorf("invalid integer %q", raw)
		}
		return snmp.NewInteger(n), nil

	case "octetstring":
		return snmp.NewOctetString([]byte(raw)), nil

	case "null":
		return snmp.NewNull(), nil

	case "oid":
		oid, err := snmp.ParseOID(raw)
		if err != nil {
			return snmp.Value{}, err
		}
		return snmp.NewOID(oid), nil

	case "ipaddress":
		ip := net.ParseIP(raw).To4()
		if ip == nil {
			return snmp.Value{}, fmt.Errorf("invalid IPv4 address %q", raw)
		}
		return snmp.NewIPAddress([4]byte{ip[0], ip[1], ip[2], ip[3]}), nil

	case "counter32":
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return snmp.Value{}, err
		}
		return snmp.NewCounter32(uint32(v)), nil

	case "gauge32":
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return snmp.Value{}, err
		}
		return snmp.NewGauge32(uint32(v)), nil

	case "timeticks":
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return snmp.Value{}, err
		}
		return snmp.NewTimeTicks(uint32(v)), nil

	case "counter64":
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return snmp.Value{}, err
		}
		return snmp.NewCounter64(v), nil
	}
	return snmp.Value{}, fmt.Errorf("unrecognised binding type %q", valueType)
}
