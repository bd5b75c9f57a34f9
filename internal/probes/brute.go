package probes

import (
	"context"
	"net"
	"strings"

	"golang.org/x/crypto/ssh"

	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

// SSHBruteProbe prueba de una credencial "usuario:clave" contra SSH.
// Cada unidad es un intento independiente; el pool limita la
// concurrencia para no provocar bloqueos de cuenta.
type SSHBruteProbe struct {
	addr   string
	dialer Dialer
}

// NewSSHBruteProbe crea la sonda; addr acepta host o host:puerto
func NewSSHBruteProbe(addr string, dialer Dialer) *SSHBruteProbe {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, "22")
	}
	return &SSHBruteProbe{addr: addr, dialer: dialer}
}

// Execute autenticación aceptada → Success{credencial}, rechazada →
// Negative, sin respuesta → Timeout, resto → Error
func (p *SSHBruteProbe) Execute(ctx context.Context, unit models.ProbeUnit) models.ProbeResult {
	res := models.ProbeResult{ScanID: unit.ScanID, Key: unit.Key}

	user, pass, ok := strings.Cut(unit.Key, ":")
	if !ok {
		res.Outcome = models.OutcomeError
		res.Err = "credencial malformada, se espera usuario:clave"
		return res
	}

	raw, err := p.dialer.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		if isTimeout(err) {
			res.Outcome = models.OutcomeTimeout
		} else {
			res.Outcome = models.OutcomeError
			res.Err = err.Error()
		}
		return res
	}
	defer raw.Close()

	// Deadline duro también sobre el handshake SSH
	if deadline, dok := ctx.Deadline(); dok {
		raw.SetDeadline(deadline)
	}

	cfg := &ssh.ClientConfig{
		User:            user,
		Auth:            []ssh.AuthMethod{ssh.Password(pass)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	conn, chans, reqs, err := ssh.NewClientConn(raw, p.addr, cfg)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "unable to authenticate"):
			res.Outcome = models.OutcomeNegative
		case isTimeout(err):
			res.Outcome = models.OutcomeTimeout
		default:
			res.Outcome = models.OutcomeError
			res.Err = err.Error()
		}
		return res
	}
	client := ssh.NewClient(conn, chans, reqs)
	client.Close()

	res.Outcome = models.OutcomeSuccess
	res.Payload = "credencial válida: " + user + ":" + pass
	return res
}
