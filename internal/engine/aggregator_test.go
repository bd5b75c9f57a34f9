package engine

import (
	"io"
	"strconv"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testRequest() models.ScanRequest {
	return models.ScanRequest{
		ID:     "scan-1",
		Kind:   models.KindPortScan,
		Target: "127.0.0.1",
	}
}

func TestAggregatorRecordsInArrivalOrder(t *testing.T) {
	agg := NewAggregator(testRequest(), 3, nil, quietLogger())

	agg.Record(models.ProbeResult{ScanID: "scan-1", Key: "80", Outcome: models.OutcomeSuccess})
	agg.Record(models.ProbeResult{ScanID: "scan-1", Key: "22", Outcome: models.OutcomeNegative})

	snap := agg.Snapshot()
	assert.Equal(t, []string{"80", "22"}, snap.Order)
	assert.Equal(t, 2, snap.Completed)
	assert.Equal(t, 3, snap.Total)
}

func TestAggregatorRejectsDuplicateKeys(t *testing.T) {
	agg := NewAggregator(testRequest(), 2, nil, quietLogger())

	ok := agg.Record(models.ProbeResult{ScanID: "scan-1", Key: "22", Outcome: models.OutcomeSuccess})
	require.True(t, ok)
	ok = agg.Record(models.ProbeResult{ScanID: "scan-1", Key: "22", Outcome: models.OutcomeNegative})
	require.False(t, ok)

	// First-write-wins: el duplicado jamás sobrescribe
	snap := agg.Snapshot()
	assert.Equal(t, models.OutcomeSuccess, snap.Results["22"].Outcome)
	assert.Equal(t, 1, snap.Completed)
	assert.Equal(t, 1, snap.Conflicts)
}

func TestAggregatorIdempotentUnderConcurrentDuplicates(t *testing.T) {
	const writers = 16
	agg := NewAggregator(testRequest(), 100, nil, quietLogger())

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				agg.Record(models.ProbeResult{
					ScanID:  "scan-1",
					Key:     strconv.Itoa(i),
					Outcome: models.OutcomeNegative,
				})
			}
		}()
	}
	wg.Wait()

	snap := agg.Snapshot()
	assert.Equal(t, 100, snap.Completed)
	assert.Len(t, snap.Results, 100)
	assert.Len(t, snap.Order, 100)
	assert.Equal(t, (writers-1)*100, snap.Conflicts)
}

func TestAggregatorAppliesClassifierOnSuccessOnly(t *testing.T) {
	classify := func(r models.ProbeResult) models.ProbeResult {
		r.Service = "ssh"
		return r
	}
	agg := NewAggregator(testRequest(), 2, classify, quietLogger())

	agg.Record(models.ProbeResult{ScanID: "scan-1", Key: "22", Outcome: models.OutcomeSuccess})
	agg.Record(models.ProbeResult{ScanID: "scan-1", Key: "23", Outcome: models.OutcomeNegative})

	snap := agg.Snapshot()
	assert.Equal(t, "ssh", snap.Results["22"].Service)
	assert.Empty(t, snap.Results["23"].Service)
}

func TestSnapshotIsIsolatedFromLaterWrites(t *testing.T) {
	agg := NewAggregator(testRequest(), 2, nil, quietLogger())
	agg.Record(models.ProbeResult{ScanID: "scan-1", Key: "1", Outcome: models.OutcomeNegative})

	snap := agg.Snapshot()
	agg.Record(models.ProbeResult{ScanID: "scan-1", Key: "2", Outcome: models.OutcomeSuccess})

	assert.Len(t, snap.Results, 1)
	assert.Len(t, snap.Order, 1)
}

func TestProgressKeepsRecentResults(t *testing.T) {
	agg := NewAggregator(testRequest(), 10, nil, quietLogger())
	for i := 0; i < 10; i++ {
		agg.Record(models.ProbeResult{ScanID: "scan-1", Key: strconv.Itoa(i), Outcome: models.OutcomeNegative})
	}

	p := agg.Progress()
	assert.Equal(t, 10, p.Completed)
	require.Len(t, p.Recent, recentKeep)
	assert.Equal(t, "9", p.Recent[len(p.Recent)-1].Key)
}
