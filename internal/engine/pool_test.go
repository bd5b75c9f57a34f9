package engine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

// funcProbe sonda de prueba definida por una función
type funcProbe func(ctx context.Context, unit models.ProbeUnit) models.ProbeResult

func (f funcProbe) Execute(ctx context.Context, unit models.ProbeUnit) models.ProbeResult {
	return f(ctx, unit)
}

func negativeProbe(ctx context.Context, unit models.ProbeUnit) models.ProbeResult {
	return models.ProbeResult{ScanID: unit.ScanID, Key: unit.Key, Outcome: models.OutcomeNegative}
}

func TestPoolDispatchesEveryUnitExactlyOnce(t *testing.T) {
	gen, err := NewPortRangeGenerator("s1", 1, 200)
	require.NoError(t, err)

	pool := NewPool(8, time.Second, funcProbe(negativeProbe), quietLogger())
	seen := make(map[string]int)
	for res := range pool.Run(context.Background(), gen.Units(context.Background())) {
		seen[res.Key]++
	}

	require.Len(t, seen, 200)
	for key, n := range seen {
		assert.Equalf(t, 1, n, "clave %s despachada %d veces", key, n)
	}
}

func TestPoolRespectsConcurrencyLimit(t *testing.T) {
	const limit = 5
	var inFlight, peak atomic.Int64

	probe := funcProbe(func(ctx context.Context, unit models.ProbeUnit) models.ProbeResult {
		cur := inFlight.Add(1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return negativeProbe(ctx, unit)
	})

	gen, err := NewPortRangeGenerator("s1", 1, 100)
	require.NoError(t, err)

	pool := NewPool(limit, time.Second, probe, quietLogger())
	n := 0
	for range pool.Run(context.Background(), gen.Units(context.Background())) {
		n++
	}

	assert.Equal(t, 100, n)
	assert.LessOrEqual(t, peak.Load(), int64(limit))
}

func TestPoolStopsDispatchOnCancel(t *testing.T) {
	const workers = 2
	started := make(chan struct{}, 100)
	release := make(chan struct{})
	var executed atomic.Int64

	probe := funcProbe(func(ctx context.Context, unit models.ProbeUnit) models.ProbeResult {
		executed.Add(1)
		started <- struct{}{}
		<-release
		return negativeProbe(ctx, unit)
	})

	gen, err := NewPortRangeGenerator("s1", 1, 10)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	results := NewPool(workers, time.Second, probe, quietLogger()).Run(ctx, gen.Units(ctx))

	// Esperar a que ambos slots estén ocupados, cancelar y soltar
	<-started
	<-started
	cancel()
	close(release)

	n := 0
	for range results {
		n++
	}

	// Las unidades en vuelo terminan, ninguna nueva se despacha
	assert.Equal(t, int64(workers), executed.Load())
	assert.Equal(t, workers, n)
}

func TestSlowProbeIsBoundedByTimeout(t *testing.T) {
	// Sonda que nunca responde por sí misma: solo el deadline la corta
	probe := funcProbe(func(ctx context.Context, unit models.ProbeUnit) models.ProbeResult {
		<-ctx.Done()
		return models.ProbeResult{ScanID: unit.ScanID, Key: unit.Key, Outcome: models.OutcomeTimeout}
	})

	gen, err := NewPortRangeGenerator("s1", 1, 4)
	require.NoError(t, err)

	start := time.Now()
	pool := NewPool(4, 50*time.Millisecond, probe, quietLogger())
	var results []models.ProbeResult
	for res := range pool.Run(context.Background(), gen.Units(context.Background())) {
		results = append(results, res)
	}
	elapsed := time.Since(start)

	require.Len(t, results, 4)
	for _, res := range results {
		assert.Equal(t, models.OutcomeTimeout, res.Outcome)
	}
	assert.Less(t, elapsed, time.Second)
}

func TestPanickingProbeBecomesErrorResult(t *testing.T) {
	probe := funcProbe(func(ctx context.Context, unit models.ProbeUnit) models.ProbeResult {
		if unit.Key == "2" {
			panic("sonda rota")
		}
		return negativeProbe(ctx, unit)
	})

	gen, err := NewPortRangeGenerator("s1", 1, 3)
	require.NoError(t, err)

	pool := NewPool(2, time.Second, probe, quietLogger())
	byKey := make(map[string]models.ProbeResult)
	for res := range pool.Run(context.Background(), gen.Units(context.Background())) {
		byKey[res.Key] = res
	}

	require.Len(t, byKey, 3)
	assert.Equal(t, models.OutcomeError, byKey["2"].Outcome)
	assert.Contains(t, byKey["2"].Err, "pánico")
	assert.Equal(t, models.OutcomeNegative, byKey["1"].Outcome)
	assert.Equal(t, models.OutcomeNegative, byKey["3"].Outcome)
}
