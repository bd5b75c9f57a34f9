package engine

import (
	"sync"
	"time"

	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

// Classifier clasificación pura y determinista aplicada a resultados
// positivos (banner→servicio, puerto→riesgo). No hace I/O.
type Classifier func(models.ProbeResult) models.ProbeResult

// recentKeep últimos resultados retenidos para notificaciones de progreso
const recentKeep = 5

// Aggregator único escritor del estado del escaneo. Pliega resultados en
// orden de llegada; escrituras idempotentes por clave (first-write-wins,
// los duplicados se registran como conflicto, nunca sobrescriben).
type Aggregator struct {
	mu       sync.Mutex
	state    models.Snapshot
	recent   []models.ProbeResult
	classify Classifier
	logger   Logger
}

// NewAggregator crea el estado para un escaneo recién iniciado
func NewAggregator(req models.ScanRequest, total int, classify Classifier, logger Logger) *Aggregator {
	return &Aggregator{
		state: models.Snapshot{
			ScanID:    req.ID,
			Kind:      req.Kind,
			Target:    req.Target,
			Status:    models.StatusRunning,
			Total:     total,
			StartTime: time.Now(),
			Results:   make(map[string]models.ProbeResult, total),
		},
		classify: classify,
		logger:   logger,
	}
}

// Record pliega un resultado. Devuelve false si la clave ya existía;
// un duplicado es señal de bug en el despacho, no un error de usuario.
func (a *Aggregator) Record(res models.ProbeResult) bool {
	if a.classify != nil && res.Outcome == models.OutcomeSuccess {
		res = a.classify(res)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, dup := a.state.Results[res.Key]; dup {
		a.state.Conflicts++
		a.logger.Warnf("resultado duplicado descartado: scan=%s clave=%s", res.ScanID, res.Key)
		return false
	}
	a.state.Results[res.Key] = res
	a.state.Order = append(a.state.Order, res.Key)
	a.state.Completed++

	a.recent = append(a.recent, res)
	if len(a.recent) > recentKeep {
		a.recent = a.recent[1:]
	}
	return true
}

// Completed unidades plegadas hasta ahora
func (a *Aggregator) Completed() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Completed
}

// Finish fija el estado terminal del escaneo
func (a *Aggregator) Finish(status models.ScanStatus) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Status = status
	a.state.EndTime = time.Now()
}

// Snapshot copia puntual de solo lectura, segura frente a escrituras
// concurrentes: los lectores nunca ven un resultado a medias.
func (a *Aggregator) Snapshot() models.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := a.state
	snap.Results = make(map[string]models.ProbeResult, len(a.state.Results))
	for k, v := range a.state.Results {
		snap.Results[k] = v
	}
	snap.Order = append([]string(nil), a.state.Order...)
	return snap
}

// Progress instantánea ligera para la GUI
func (a *Aggregator) Progress() models.Progress {
	a.mu.Lock()
	defer a.mu.Unlock()
	return models.Progress{
		ScanID:    a.state.ScanID,
		Completed: a.state.Completed,
		Total:     a.state.Total,
		Status:    a.state.Status,
		Recent:    append([]models.ProbeResult(nil), a.recent...),
	}
}
