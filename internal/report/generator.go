package report

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

// Generator generador de reportes
type Generator struct {
	logger Logger
}

// Logger interface
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NewGenerator crea nuevo generador
func NewGenerator(logger Logger) *Generator {
	return &Generator{logger: logger}
}

// GeneratePDF genera reporte en PDF de una instantánea terminal
func (g *Generator) GeneratePDF(snap *models.Snapshot, filename string) error {
	g.logger.Infof("Generando reporte PDF: %s", filename)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Título
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Astra - Reporte de Escaneo")
	pdf.Ln(15)

	// Información general
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 10, fmt.Sprintf("Target: %s", snap.Target))
	pdf.Ln(7)
	pdf.Cell(0, 10, fmt.Sprintf("Tipo: %s - Estado: %s", snap.Kind, snap.Status))
	pdf.Ln(7)
	pdf.Cell(0, 10, fmt.Sprintf("Fecha: %s", snap.StartTime.Format("2006-01-02 15:04:05")))
	pdf.Ln(7)
	duration := snap.EndTime.Sub(snap.StartTime)
	pdf.Cell(0, 10, fmt.Sprintf("Unidades: %d/%d - Duración: %v", snap.Completed, snap.Total, duration))
	pdf.Ln(7)
	pdf.Cell(0, 10, fmt.Sprintf("Hallazgos: %d - Timeouts: %d - Errores: %d",
		snap.CountByOutcome(models.OutcomeSuccess),
		snap.CountByOutcome(models.OutcomeTimeout),
		snap.CountByOutcome(models.OutcomeError)))
	pdf.Ln(15)

	// Hallazgos
	hits := snap.Successes()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, "Hallazgos")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	if len(hits) == 0 {
		pdf.Cell(0, 8, "Sin hallazgos positivos")
		pdf.Ln(6)
	}
	for _, r := range hits {
		line := r.Key
		if r.Service != "" {
			line += fmt.Sprintf(" (%s)", r.Service)
		}
		if r.Risk != "" {
			line += fmt.Sprintf(" - Riesgo: %s", r.Risk)
		}
		if r.Payload != "" {
			line += " - " + r.Payload
		}
		pdf.MultiCell(0, 6, line, "", "", false)
		pdf.Ln(2)
	}

	// Unidades no concluyentes
	unreachable := snap.CountByOutcome(models.OutcomeTimeout) + snap.CountByOutcome(models.OutcomeError)
	if unreachable > 0 {
		pdf.Ln(8)
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 10, "Unidades sin respuesta o con error")
		pdf.Ln(10)

		pdf.SetFont("Arial", "", 9)
		for _, key := range snap.Order {
			r := snap.Results[key]
			if r.Outcome != models.OutcomeTimeout && r.Outcome != models.OutcomeError {
				continue
			}
			pdf.Cell(0, 6, fmt.Sprintf("%s - %s %s", r.Key, r.Outcome, r.Err))
			pdf.Ln(5)
		}
	}

	// Guardar
	err := pdf.OutputFileAndClose(filename)
	if err != nil {
		g.logger.Errorf("Error generando PDF: %v", err)
		return err
	}

	g.logger.Infof("Reporte PDF generado: %s", filename)
	return nil
}
