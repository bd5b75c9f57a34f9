package engine

import (
	"context"
	"sync"
	"time"

	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

// Pool conjunto acotado de ejecutores concurrentes. Como máximo N sondas
// en vuelo; la siguiente unidad se despacha solo cuando alguna termina.
type Pool struct {
	workers int
	timeout time.Duration
	probe   Probe
	logger  Logger
}

// NewPool crea un pool con límite de concurrencia workers
func NewPool(workers int, timeout time.Duration, probe Probe, logger Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers, timeout: timeout, probe: probe, logger: logger}
}

// Run consume unidades y emite resultados por un canal acotado con
// backpressure: si el agregador se retrasa, los workers bloquean en la
// entrega, nunca se descartan resultados. Cancelar ctx detiene el
// despacho de nuevas unidades; las sondas en vuelo terminan por sí
// mismas o por su propio timeout. El canal se cierra al drenar.
func (p *Pool) Run(ctx context.Context, units <-chan models.ProbeUnit) <-chan models.ProbeResult {
	results := make(chan models.ProbeResult, p.workers)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case unit, ok := <-units:
					if !ok {
						return
					}
					if ctx.Err() != nil {
						return
					}
					// El deadline de la sonda es independiente de la
					// cancelación del despacho: una unidad ya en vuelo
					// resuelve de forma natural, acotada por su timeout.
					res := safeExecute(context.Background(), p.probe, unit, p.timeout)
					results <- res
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}
