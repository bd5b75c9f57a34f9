package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

// Probe operación polimórfica sobre una unidad. Implementaciones:
// nunca bloquear más allá del deadline del contexto, nunca escribir
// estado compartido, devolver siempre un resultado.
type Probe interface {
	Execute(ctx context.Context, unit models.ProbeUnit) models.ProbeResult
}

// Logger interface mínima de logging que usan los componentes del engine
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// safeExecute ejecuta una sonda con deadline duro y frontera de pánico:
// un fallo no controlado en una unidad se convierte en OutcomeError y
// jamás tumba al resto de sondas en vuelo.
func safeExecute(ctx context.Context, p Probe, unit models.ProbeUnit, timeout time.Duration) (result models.ProbeResult) {
	defer func() {
		if r := recover(); r != nil {
			result = models.ProbeResult{
				ScanID:  unit.ScanID,
				Key:     unit.Key,
				Outcome: models.OutcomeError,
				Err:     fmt.Sprintf("pánico en sonda: %v", r),
			}
		}
	}()

	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.Execute(pctx, unit)
}
