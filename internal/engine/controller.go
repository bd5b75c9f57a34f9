package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

// ProbeFactory selecciona la implementación de sonda y el clasificador
// en el momento de construir la petición; evita inspección de tipos en
// tiempo de ejecución.
type ProbeFactory func(req models.ScanRequest) (Probe, Classifier, error)

// progressHz tope de notificaciones de progreso por segundo hacia la GUI
const progressHz = 10

// Valores por defecto por tipo de escaneo
const (
	defaultPortConcurrency  = 100
	defaultEnumConcurrency  = 20
	defaultBruteConcurrency = 4
	defaultTimeout          = 2 * time.Second
)

// Engine controlador de escaneos. Un proceso puede ejecutar varios
// escaneos a la vez, cada uno con su pool y su estado independientes.
type Engine struct {
	factory ProbeFactory
	logger  Logger

	mu    sync.Mutex
	scans map[string]*Handle
}

// New crea el engine
func New(factory ProbeFactory, logger Logger) *Engine {
	return &Engine{
		factory: factory,
		logger:  logger,
		scans:   make(map[string]*Handle),
	}
}

// Handle manejador del ciclo de vida de un escaneo en curso
type Handle struct {
	id   string
	req  models.ScanRequest
	agg  *Aggregator
	stop context.CancelFunc

	cancelled atomic.Bool
	done      chan struct{}

	limiter *rate.Limiter
	subMu   sync.Mutex
	subs    []chan models.Progress
	closed  bool
}

// StartScan valida la petición y arranca el escaneo. Falla de forma
// síncrona con ErrInvalidRange / ErrEmptyWordlist sin crear estado;
// si la petición es válida devuelve el manejador de inmediato.
func (e *Engine) StartScan(req models.ScanRequest) (*Handle, error) {
	applyDefaults(&req)

	gen, err := buildGenerator(req)
	if err != nil {
		return nil, err
	}
	probe, classify, err := e.factory(req)
	if err != nil {
		return nil, err
	}

	ctx, stop := context.WithCancel(context.Background())
	h := &Handle{
		id:      req.ID,
		req:     req,
		agg:     NewAggregator(req, gen.Count(), classify, e.logger),
		stop:    stop,
		done:    make(chan struct{}),
		limiter: rate.NewLimiter(rate.Limit(progressHz), 1),
	}

	e.mu.Lock()
	e.scans[h.id] = h
	e.mu.Unlock()

	e.logger.Infof("escaneo %s iniciado: %s %s (%d unidades, concurrencia %d)",
		h.id, req.Kind, req.Target, gen.Count(), req.Concurrency)

	pool := NewPool(req.Concurrency, req.Timeout, probe, e.logger)
	go h.run(ctx, gen, pool)
	return h, nil
}

// Scan busca un manejador por id
func (e *Engine) Scan(id string) (*Handle, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	h, ok := e.scans[id]
	return h, ok
}

// Scans manejadores conocidos, para la GUI
func (e *Engine) Scans() []*Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Handle, 0, len(e.scans))
	for _, h := range e.scans {
		out = append(out, h)
	}
	return out
}

// run bucle de plegado: consume resultados hasta drenar el pool y fija
// el estado terminal. Es el único sitio que escribe en el agregador.
func (h *Handle) run(ctx context.Context, gen Generator, pool *Pool) {
	results := pool.Run(ctx, gen.Units(ctx))
	for res := range results {
		h.agg.Record(res)
		h.publish(false)
	}

	status := models.StatusCompleted
	if h.cancelled.Load() {
		status = models.StatusCancelled
	}
	h.agg.Finish(status)
	h.publish(true)
	h.closeSubs()
	close(h.done)
}

// ID identificador del escaneo
func (h *Handle) ID() string { return h.id }

// Request petición original, inmutable
func (h *Handle) Request() models.ScanRequest { return h.req }

// Cancel solicitud de cancelación: idempotente y monótona. Detiene el
// despacho de nuevas unidades; las sondas en vuelo resuelven solas.
// Devuelve en cuanto la solicitud queda registrada, no espera el drenado.
func (h *Handle) Cancel() {
	if h.cancelled.CompareAndSwap(false, true) {
		h.stop()
	}
}

// Progress instantánea puntual de progreso
func (h *Handle) Progress() models.Progress {
	return h.agg.Progress()
}

// Results mapa clave→resultado plegado hasta ahora; estable una vez
// el estado es Completed o Cancelled
func (h *Handle) Results() map[string]models.ProbeResult {
	return h.agg.Snapshot().Results
}

// Snapshot copia completa de solo lectura del estado
func (h *Handle) Snapshot() models.Snapshot {
	return h.agg.Snapshot()
}

// Wait bloquea hasta el estado terminal o hasta cancelar ctx
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe canal de notificaciones de progreso coalescidas. El canal
// se cierra al terminar el escaneo.
func (h *Handle) Subscribe() <-chan models.Progress {
	ch := make(chan models.Progress, 8)
	h.subMu.Lock()
	defer h.subMu.Unlock()
	if h.closed {
		close(ch)
		return ch
	}
	h.subs = append(h.subs, ch)
	return ch
}

// publish emite progreso a los suscriptores a ritmo acotado; nunca
// bloquea a los workers: si un suscriptor va lleno, pierde esa muestra.
func (h *Handle) publish(force bool) {
	if !force && !h.limiter.Allow() {
		return
	}
	p := h.agg.Progress()
	h.subMu.Lock()
	defer h.subMu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- p:
		default:
		}
	}
}

func (h *Handle) closeSubs() {
	h.subMu.Lock()
	defer h.subMu.Unlock()
	h.closed = true
	for _, ch := range h.subs {
		close(ch)
	}
	h.subs = nil
}

// applyDefaults completa id, concurrencia y timeout de la petición
func applyDefaults(req *models.ScanRequest) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Timeout <= 0 {
		req.Timeout = defaultTimeout
	}
	if req.Concurrency <= 0 {
		switch req.Kind {
		case models.KindPortScan:
			req.Concurrency = defaultPortConcurrency
		case models.KindBruteForce:
			// Concurrencia baja para no provocar bloqueos de cuenta
			req.Concurrency = defaultBruteConcurrency
		default:
			req.Concurrency = defaultEnumConcurrency
		}
	}
}

// buildGenerator construye el generador de unidades según el tipo
func buildGenerator(req models.ScanRequest) (Generator, error) {
	switch req.Kind {
	case models.KindPortScan:
		return NewPortRangeGenerator(req.ID, req.PortStart, req.PortEnd)
	case models.KindSubdomainEnum:
		return NewWordlistGenerator(req.ID, req.Wordlist)
	case models.KindVulnCheck:
		paths := req.Paths
		if len(paths) == 0 {
			paths = req.Wordlist
		}
		return NewWordlistGenerator(req.ID, paths)
	case models.KindSSLCheck:
		ports := req.Wordlist
		if len(ports) == 0 {
			ports = []string{"443"}
		}
		return NewWordlistGenerator(req.ID, ports)
	case models.KindBruteForce:
		var combos []string
		for _, u := range req.Usernames {
			for _, p := range req.Passwords {
				combos = append(combos, u+":"+p)
			}
		}
		return NewWordlistGenerator(req.ID, combos)
	default:
		return nil, fmt.Errorf("tipo de escaneo desconocido: %q", req.Kind)
	}
}
