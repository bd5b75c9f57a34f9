package probes

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

// expiryWarning margen de aviso de caducidad de certificado
const expiryWarning = 30 * 24 * time.Hour

// SSLProbe evaluación TLS de (host, puerto): versión de protocolo,
// caducidad del certificado y coincidencia de nombre
type SSLProbe struct {
	host   string
	dialer Dialer
}

// NewSSLProbe crea la sonda TLS para un host
func NewSSLProbe(host string, dialer Dialer) *SSLProbe {
	return &SSLProbe{host: host, dialer: dialer}
}

// Execute debilidad detectada → Success{hallazgo}, endpoint sano →
// Negative, sin respuesta → Timeout, fallo de conexión → Error
func (p *SSLProbe) Execute(ctx context.Context, unit models.ProbeUnit) models.ProbeResult {
	res := models.ProbeResult{ScanID: unit.ScanID, Key: unit.Key}

	raw, err := p.dialer.DialContext(ctx, "tcp", net.JoinHostPort(p.host, unit.Key))
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

	if deadline, ok := ctx.Deadline(); ok {
		raw.SetDeadline(deadline)
	}

	// Verificación manual: queremos inspeccionar certificados inválidos,
	// no rechazarlos en el handshake
	conn := tls.Client(raw, &tls.Config{
		ServerName:         p.host,
		InsecureSkipVerify: true,
		MinVersion:         tls.VersionTLS10,
	})
	if err := conn.HandshakeContext(ctx); err != nil {
		if isTimeout(err) {
			res.Outcome = models.OutcomeTimeout
		} else {
			res.Outcome = models.OutcomeError
			res.Err = err.Error()
		}
		return res
	}

	state := conn.ConnectionState()
	findings := inspectTLS(state, p.host, time.Now())
	if len(findings) == 0 {
		res.Outcome = models.OutcomeNegative
		return res
	}
	res.Outcome = models.OutcomeSuccess
	res.Payload = strings.Join(findings, "; ")
	return res
}

// inspectTLS reglas puras sobre el estado del handshake
func inspectTLS(state tls.ConnectionState, host string, now time.Time) []string {
	var findings []string

	if state.Version < tls.VersionTLS12 {
		findings = append(findings, fmt.Sprintf("protocolo obsoleto %s", tls.VersionName(state.Version)))
	}

	if len(state.PeerCertificates) > 0 {
		cert := state.PeerCertificates[0]
		switch {
		case now.After(cert.NotAfter):
			findings = append(findings, fmt.Sprintf("certificado caducado el %s", cert.NotAfter.Format("2006-01-02")))
		case now.Add(expiryWarning).After(cert.NotAfter):
			findings = append(findings, fmt.Sprintf("certificado caduca el %s", cert.NotAfter.Format("2006-01-02")))
		}
		if err := cert.VerifyHostname(host); err != nil {
			findings = append(findings, "el certificado no cubre el hostname")
		}
	}
	return findings
}
