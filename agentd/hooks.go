package agentd

import (
	"encoding/hex"
	"log/slog"
	"net"
)

// Hooks defines the observability seams a Server invokes around the
// listen/decode/resolve/encode/write cycle. Every field is optional;
// resolveHooks fills any nil field from NoOpHooks before use.
type Hooks struct {
	// StartListening is called once the UDP socket is bound.
	StartListening func(addr net.Addr)

	// StopListening is called when the listen loop exits.
	StopListening func(addr net.Addr, err error)

	// AuthRejected is called when a datagram's community string does not
	// match the configured one.
	AuthRejected func(addr net.Addr)

	// RateLimited is called when a source address exceeds its request
	// budget and the datagram is dropped without a reply.
	RateLimited func(addr net.Addr)

	// DecodeError is called when decode_request fails, with the raw
	// datagram that failed to decode.
	DecodeError func(addr net.Addr, input []byte, err error)

	// EncodeError is called when encode_response fails.
	EncodeError func(addr net.Addr, err error)

	// RequestHandled is called after a request has been resolved and its
	// response written, with the number of variable bindings in each.
	RequestHandled func(addr net.Addr, req *requestSummary)

	// WriteError is called when writing the response datagram fails.
	WriteError func(addr net.Addr, err error)
}

// requestSummary is a small diagnostic projection of a handled request,
// kept separate from snmp.Request so hooks don't need to import snmp's
// full decode surface just to log a count.
type requestSummary struct {
	PDUVariant   string
	RequestID    int32
	BindingCount int
}

// NewLoggingHooks builds a Hooks set that logs through logger. When
// diagnostic is true it additionally logs listen/stop transitions and every
// successfully handled request; otherwise it logs only conditions an
// operator needs to act on (auth failures, rate limiting, decode/encode/
// write errors).
func NewLoggingHooks(logger *slog.Logger, diagnostic bool) *Hooks {
	h := &Hooks{
		AuthRejected: func(addr net.Addr) {
			logger.Warn("snmp request rejected: bad community string", "source", addr)
		},
		RateLimited: func(addr net.Addr) {
			logger.Warn("snmp request dropped: rate limit exceeded", "source", addr)
		},
		DecodeError: func(addr net.Addr, input []byte, err error) {
			if diagnostic {
				logger.Warn("snmp request dropped: decode failed",
					"source", addr, "error", err, "input", hexPrefix(input))
				return
			}
			logger.Warn("snmp request dropped: decode failed", "source", addr, "error", err)
		},
		EncodeError: func(addr net.Addr, err error) {
			logger.Error("snmp response encode failed", "source", addr, "error", err)
		},
		WriteError: func(addr net.Addr, err error) {
			logger.Warn("snmp response write failed", "destination", addr, "error", err)
		},
	}
	if diagnostic {
		h.StartListening = func(addr net.Addr) {
			logger.Info("snmp agent listening", "address", addr)
		}
		h.StopListening = func(addr net.Addr, err error) {
			logger.Info("snmp agent stopped listening", "address", addr, "error", err)
		}
		h.RequestHandled = func(addr net.Addr, req *requestSummary) {
			logger.Debug("snmp request handled",
				"source", addr, "pdu", req.PDUVariant, "request_id", req.RequestID, "bindings", req.BindingCount)
		}
	}
	return h
}

// DefaultHooks logs only the conditions an operator needs to act on, through
// the default slog logger. Callers with their own *slog.Logger should build
// hooks via NewLoggingHooks instead.
var DefaultHooks = NewLoggingHooks(slog.Default(), false)

// DiagnosticHooks additionally logs every successful listen/handle cycle,
// for use while developing against a new binding table.
var DiagnosticHooks = NewLoggingHooks(slog.Default(), true)

// NoOpHooks discards every event; resolveHooks merges missing fields from
// this set so Server never has to nil-check a hook before calling it.
var NoOpHooks = &Hooks{
	StartListening: func(addr net.Addr) {},
	StopListening:  func(addr net.Addr, err error) {},
	AuthRejected:   func(addr net.Addr) {},
	RateLimited:    func(addr net.Addr) {},
	DecodeError:    func(addr net.Addr, input []byte, err error) {},
	EncodeError:    func(addr net.Addr, err error) {},
	RequestHandled: func(addr net.Addr, req *requestSummary) {},
	WriteError:     func(addr net.Addr, err error) {},
}

func hexPrefix(b []byte) string {
	if len(b) > 64 {
		return hex.EncodeToString(b[:64]) + "..."
	}
	return hex.EncodeToString(b)
}
