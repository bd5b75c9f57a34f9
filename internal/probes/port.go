package probes

import (
	"context"
	"errors"
	"net"
	"syscall"

	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

// Dialer primitiva de conexión inyectable; permite probar las sondas
// contra fakes sin red real
type Dialer interface {
	DialContext(ctx context.Context, network, addr string) (net.Conn, error)
}

// PortProbe sonda de conexión TCP a (host, puerto)
type PortProbe struct {
	host   string
	dialer Dialer
}

// NewPortProbe crea la sonda de puertos para un host
func NewPortProbe(host string, dialer Dialer) *PortProbe {
	return &PortProbe{host: host, dialer: dialer}
}

// Execute conexión completada → Success, rechazo activo → Negative,
// sin respuesta dentro del presupuesto → Timeout, resto → Error
func (p *PortProbe) Execute(ctx context.Context, unit models.ProbeUnit) models.ProbeResult {
	res := models.ProbeResult{ScanID: unit.ScanID, Key: unit.Key}

	addr := net.JoinHostPort(p.host, unit.Key)
	conn, err := p.dialer.DialContext(ctx, "tcp", addr)
	if err == nil {
		conn.Close()
		res.Outcome = models.OutcomeSuccess
		res.Payload = "puerto abierto"
		return res
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		res.Outcome = models.OutcomeNegative
	case isTimeout(err):
		res.Outcome = models.OutcomeTimeout
	default:
		res.Outcome = models.OutcomeError
		res.Err = err.Error()
	}
	return res
}

// isTimeout deadline del contexto o timeout de la capa de red
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
