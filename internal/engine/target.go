package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

var (
	// ErrInvalidRange rango de puertos fuera de [1,65535] o invertido
	ErrInvalidRange = errors.New("rango de puertos inválido")
	// ErrEmptyWordlist wordlist vacía tras limpieza
	ErrEmptyWordlist = errors.New("wordlist vacía")
)

// unitBuffer tamaño del lookahead; rangos grandes nunca se materializan completos
const unitBuffer = 64

// Generator secuencia finita, perezosa y reiniciable de unidades de sondeo.
// Cada llamada a Units produce la secuencia desde el principio.
type Generator interface {
	Count() int
	Units(ctx context.Context) <-chan models.ProbeUnit
}

// PortRangeGenerator genera una unidad por puerto en [Start, End]
type PortRangeGenerator struct {
	scanID string
	start  int
	end    int
}

// NewPortRangeGenerator valida el rango antes de cualquier sondeo
func NewPortRangeGenerator(scanID string, start, end int) (*PortRangeGenerator, error) {
	if start < 1 || end > 65535 || start > end {
		return nil, fmt.Errorf("%w: %d-%d", ErrInvalidRange, start, end)
	}
	return &PortRangeGenerator{scanID: scanID, start: start, end: end}, nil
}

// Count total de unidades del rango
func (g *PortRangeGenerator) Count() int {
	return g.end - g.start + 1
}

// Units emite los puertos en orden ascendente
func (g *PortRangeGenerator) Units(ctx context.Context) <-chan models.ProbeUnit {
	out := make(chan models.ProbeUnit, unitBuffer)
	go func() {
		defer close(out)
		for port := g.start; port <= g.end; port++ {
			unit := models.ProbeUnit{
				ScanID: g.scanID,
				Key:    strconv.Itoa(port),
				Port:   port,
			}
			select {
			case out <- unit:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// WordlistGenerator genera una unidad por palabra de la lista
type WordlistGenerator struct {
	scanID string
	words  []string
}

// NewWordlistGenerator limpia la lista: recorta, salta vacías y deduplica
// conservando el orden de primera aparición
func NewWordlistGenerator(scanID string, words []string) (*WordlistGenerator, error) {
	seen := make(map[string]struct{}, len(words))
	clean := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		clean = append(clean, w)
	}
	if len(clean) == 0 {
		return nil, ErrEmptyWordlist
	}
	return &WordlistGenerator{scanID: scanID, words: clean}, nil
}

// Count total de palabras tras limpieza
func (g *WordlistGenerator) Count() int {
	return len(g.words)
}

// Units emite las palabras en orden de lista
func (g *WordlistGenerator) Units(ctx context.Context) <-chan models.ProbeUnit {
	out := make(chan models.ProbeUnit, unitBuffer)
	go func() {
		defer close(out)
		for _, w := range g.words {
			unit := models.ProbeUnit{
				ScanID: g.scanID,
				Key:    w,
				Label:  w,
			}
			select {
			case out <- unit:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
