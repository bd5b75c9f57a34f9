package probes

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

// Resolver abstracción del resolutor DNS; net.DefaultResolver en
// producción, fake en tests
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// SubdomainProbe resolución DNS de candidato.dominio
type SubdomainProbe struct {
	domain   string
	resolver Resolver
}

// NewSubdomainProbe crea la sonda de subdominios para un dominio base
func NewSubdomainProbe(domain string, resolver Resolver) *SubdomainProbe {
	return &SubdomainProbe{domain: domain, resolver: resolver}
}

// Execute resuelto → Success{ip}, NXDOMAIN → Negative, timeout →
// Timeout, cualquier otro fallo del resolutor → Error
func (p *SubdomainProbe) Execute(ctx context.Context, unit models.ProbeUnit) models.ProbeResult {
	res := models.ProbeResult{ScanID: unit.ScanID, Key: unit.Key}

	fqdn := unit.Key + "." + p.domain
	addrs, err := p.resolver.LookupHost(ctx, fqdn)
	if err == nil && len(addrs) > 0 {
		res.Outcome = models.OutcomeSuccess
		res.Payload = strings.Join(addrs, ",")
		return res
	}

	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &dnsErr) && dnsErr.IsNotFound:
		res.Outcome = models.OutcomeNegative
	case isTimeout(err):
		res.Outcome = models.OutcomeTimeout
	default:
		res.Outcome = models.OutcomeError
		if err != nil {
			res.Err = err.Error()
		} else {
			res.Err = "respuesta vacía del resolutor"
		}
	}
	return res
}
