package comparison

import (
	"fmt"

	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

// Change un cambio de desenlace entre dos escaneos para la misma clave
type Change struct {
	Key     string
	Service string
	Action  string // "opened", "closed", "appeared", "gone"
}

// ComparisonResult resultado de comparación entre dos escaneos
type ComparisonResult struct {
	Older   *models.Snapshot
	Newer   *models.Snapshot
	Opened  []Change
	Closed  []Change
	Summary string
}

// CompareSnapshots compara dos instantáneas del mismo objetivo:
// hallazgos que aparecen en el escaneo nuevo y hallazgos que
// desaparecieron respecto al antiguo
func CompareSnapshots(older, newer *models.Snapshot) *ComparisonResult {
	result := &ComparisonResult{
		Older: older,
		Newer: newer,
	}

	// Detectar hallazgos nuevos
	for _, key := range newer.Order {
		nr := newer.Results[key]
		if nr.Outcome != models.OutcomeSuccess {
			continue
		}
		or, existed := older.Results[key]
		if !existed || or.Outcome != models.OutcomeSuccess {
			result.Opened = append(result.Opened, Change{
				Key:     key,
				Service: nr.Service,
				Action:  openAction(newer.Kind),
			})
		}
	}

	// Detectar hallazgos desaparecidos
	for _, key := range older.Order {
		or := older.Results[key]
		if or.Outcome != models.OutcomeSuccess {
			continue
		}
		nr, exists := newer.Results[key]
		if !exists || nr.Outcome != models.OutcomeSuccess {
			result.Closed = append(result.Closed, Change{
				Key:     key,
				Service: or.Service,
				Action:  closeAction(older.Kind),
			})
		}
	}

	result.Summary = fmt.Sprintf("%s: %d nuevos, %d desaparecidos",
		newer.Target, len(result.Opened), len(result.Closed))
	return result
}

func openAction(kind models.ScanKind) string {
	if kind == models.KindPortScan {
		return "opened"
	}
	return "appeared"
}

func closeAction(kind models.ScanKind) string {
	if kind == models.KindPortScan {
		return "closed"
	}
	return "gone"
}
