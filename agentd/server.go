package agentd

import (
	"context"
	"crypto/subtle"
	"io"
	"net"

	"github.com/pkg/errors"

	"github.com/oidwatch/snmpagent/snmp"
)

// Table supplies the binding table the resolver runs Get/GetNext/GetBulk
// against. Implementations own their own synchronization; Bindings is
// called once for each datagram that passes the rate limit, decode and
// community checks, and its result is treated as a consistent snapshot for
// that call.
type Table interface {
	Bindings() []snmp.VarBinding
}

// TableFunc adapts a plain function to Table.
type TableFunc func() []snmp.VarBinding

func (f TableFunc) Bindings() []snmp.VarBinding { return f() }

// Server is a running SNMP agent UDP listener.
type Server io.Closer

const maxDatagramSize = 65535

type serverImpl struct {
	conn        net.PacketConn
	config      *config
	table       Table
	rateLimiter *rateLimiter
}

// Listen binds a UDP socket per the supplied options and starts serving
// Get/GetNext/GetBulk requests against table in a background goroutine.
func Listen(ctx context.Context, table Table, opts ...Option) (Server, error) {
	cfg := defaultConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.resolveHooks()

	addr := &net.UDPAddr{Port: cfg.port, IP: net.ParseIP(cfg.address)}
	conn, err := net.ListenUDP(cfg.network, addr)
	if err != nil {
		return nil, errors.Wrap(err, "agentd: failed to bind UDP socket")
	}

	s := &serverImpl{
		conn:        conn,
		config:      &cfg,
		table:       table,
		rateLimiter: newRateLimiter(cfg.perSourceLimit, cfg.rateLimitWindow),
	}
	go s.serve(ctx)
	return s, nil
}

func (s *serverImpl) Close() error {
	return s.conn.Close()
}

func (s *serverImpl) serve(ctx context.Context) {
	s.config.hooks.StartListening(s.conn.LocalAddr())
	go func() {
		<-ctx.Done()
		_ = s.conn.Close()
	}()

	var err error
	for {
		var input []byte
		var addr net.Addr
		input, addr, err = s.readDatagram()
		if err != nil {
			break
		}
		s.handleDatagram(input, addr)
	}
	s.config.hooks.StopListening(s.conn.LocalAddr(), err)
}

func (s *serverImpl) readDatagram() ([]byte, net.Addr, error) {
	buf := make([]byte, maxDatagramSize)
	n, addr, err := s.conn.ReadFrom(buf)
	if err != nil {
		return nil, nil, err
	}
	return buf[:n], addr, nil
}

func (s *serverImpl) handleDatagram(input []byte, addr net.Addr) {
	if !s.rateLimiter.Allow(addr.String()) {
		s.config.hooks.RateLimited(addr)
		return
	}

	req, err := snmp.DecodeRequest(input)
	if err != nil {
		s.config.hooks.DecodeError(addr, input, err)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Community), []byte(s.config.community)) != 1 {
		s.config.hooks.AuthRejected(addr)
		return
	}

	vbs := snmp.Resolve(req, s.table.Bindings())
	resp := req.Reply(vbs, 0, 0)

	out, err := snmp.EncodeResponse(resp)
	if err != nil {
		s.config.hooks.EncodeError(addr, err)
		return
	}

	if _, err := s.conn.WriteTo(out, addr); err != nil {
		s.config.hooks.WriteError(addr, err)
		return
	}

	s.config.hooks.RequestHandled(addr, &requestSummary{
		PDUVariant:   pduVariantName(req.PDUVariant),
		RequestID:    req.RequestID,
		BindingCount: len(vbs),
	})
}

func pduVariantName(v snmp.PDUVariant) string {
	switch v {
	case snmp.GetRequest:
		return "GetRequest"
	case snmp.GetNextRequest:
		return "GetNextRequest"
	case snmp.GetBulkRequest:
		return "GetBulkRequest"
	case snmp.GetResponse:
		return "GetResponse"
	}
	return "Unknown"
}
