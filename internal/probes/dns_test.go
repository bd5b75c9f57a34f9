package probes

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

// fakeResolver resolutor de pruebas con tabla fija
type fakeResolver struct {
	hosts map[string][]string
	fail  map[string]error
}

func (r *fakeResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	if err, ok := r.fail[host]; ok {
		return nil, err
	}
	if addrs, ok := r.hosts[host]; ok {
		return addrs, nil
	}
	return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
}

func TestSubdomainProbeOutcomes(t *testing.T) {
	resolver := &fakeResolver{
		hosts: map[string][]string{
			"www.example.com": {"93.184.216.34"},
		},
		fail: map[string]error{
			"broken.example.com": &net.DNSError{Err: "servfail", Name: "broken.example.com"},
		},
	}
	probe := NewSubdomainProbe("example.com", resolver)
	ctx := context.Background()

	resolved := probe.Execute(ctx, unit("www"))
	assert.Equal(t, models.OutcomeSuccess, resolved.Outcome)
	assert.Equal(t, "93.184.216.34", resolved.Payload)

	missing := probe.Execute(ctx, unit("ghost"))
	assert.Equal(t, models.OutcomeNegative, missing.Outcome)

	servfail := probe.Execute(ctx, unit("broken"))
	assert.Equal(t, models.OutcomeError, servfail.Outcome)
	assert.NotEmpty(t, servfail.Err)
}

func TestSubdomainProbeTimeout(t *testing.T) {
	resolver := &fakeResolver{
		fail: map[string]error{
			"slow.example.com": &net.DNSError{Err: "i/o timeout", Name: "slow.example.com", IsTimeout: true},
		},
	}
	probe := NewSubdomainProbe("example.com", resolver)

	res := probe.Execute(context.Background(), unit("slow"))
	assert.Equal(t, models.OutcomeTimeout, res.Outcome)
}
