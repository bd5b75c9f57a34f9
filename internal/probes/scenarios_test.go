package probes

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamrohitkandpal/Astra-A-Weapon/internal/engine"
	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// Escaneo de puertos de extremo a extremo con dialer falso: 22 y 80
// abiertos, el resto rechaza
func TestPortScanScenario(t *testing.T) {
	dialer := &fakeDialer{open: map[string]bool{
		"127.0.0.1:22": true,
		"127.0.0.1:80": true,
	}}
	eng := engine.New(NewFactory(Deps{Dialer: dialer}), quietLogger())

	h, err := eng.StartScan(models.ScanRequest{
		Kind:        models.KindPortScan,
		Target:      "127.0.0.1",
		PortStart:   1,
		PortEnd:     100,
		Concurrency: 5,
		Timeout:     200 * time.Millisecond,
	})
	require.NoError(t, err)
	require.NoError(t, h.Wait(context.Background()))

	snap := h.Snapshot()
	assert.Equal(t, models.StatusCompleted, snap.Status)
	assert.Equal(t, 100, snap.Total)
	assert.Equal(t, 100, snap.Completed)

	results := h.Results()
	require.Len(t, results, 100)
	assert.Equal(t, models.OutcomeSuccess, results["22"].Outcome)
	assert.Equal(t, models.OutcomeSuccess, results["80"].Outcome)
	assert.Equal(t, 98, snap.CountByOutcome(models.OutcomeNegative))

	// El clasificador anota servicio y riesgo de los puertos conocidos
	assert.Equal(t, "ssh", results["22"].Service)
	assert.Equal(t, "http", results["80"].Service)
	assert.Equal(t, "high", results["22"].Risk)
}

// Enumeración de subdominios: solo www resuelve
func TestSubdomainEnumScenario(t *testing.T) {
	resolver := &fakeResolver{hosts: map[string][]string{
		"www.example.com": {"93.184.216.34"},
	}}
	eng := engine.New(NewFactory(Deps{Resolver: resolver}), quietLogger())

	h, err := eng.StartScan(models.ScanRequest{
		Kind:     models.KindSubdomainEnum,
		Target:   "example.com",
		Wordlist: []string{"www", "mail", "ghost"},
		Timeout:  200 * time.Millisecond,
	})
	require.NoError(t, err)
	require.NoError(t, h.Wait(context.Background()))

	results := h.Results()
	require.Len(t, results, 3)
	assert.Equal(t, models.OutcomeSuccess, results["www"].Outcome)
	assert.Equal(t, "93.184.216.34", results["www"].Payload)
	assert.Equal(t, models.OutcomeNegative, results["mail"].Outcome)
	assert.Equal(t, models.OutcomeNegative, results["ghost"].Outcome)
}

// Un host mayormente filtrado: los timeouts se registran como datos y
// el escaneo termina igualmente
func TestFilteredHostStillCompletes(t *testing.T) {
	dialer := &fakeDialer{
		open: map[string]bool{"10.0.0.1:8080": true},
		hang: map[string]bool{
			"10.0.0.1:1": true, "10.0.0.1:2": true, "10.0.0.1:3": true,
		},
	}
	eng := engine.New(NewFactory(Deps{Dialer: dialer}), quietLogger())

	h, err := eng.StartScan(models.ScanRequest{
		Kind:        models.KindPortScan,
		Target:      "10.0.0.1",
		PortStart:   1,
		PortEnd:     10,
		Concurrency: 3,
		Timeout:     50 * time.Millisecond,
	})
	require.NoError(t, err)
	require.NoError(t, h.Wait(context.Background()))

	snap := h.Snapshot()
	assert.Equal(t, models.StatusCompleted, snap.Status)
	assert.Equal(t, 10, snap.Completed)
	assert.Equal(t, 3, snap.CountByOutcome(models.OutcomeTimeout))
	assert.Equal(t, 1, snap.CountByOutcome(models.OutcomeSuccess))
}
