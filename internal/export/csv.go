package export

import (
	"encoding/csv"
	"os"

	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

// ExportToCSV exporta una instantánea a CSV, una fila por unidad en
// orden de llegada
func ExportToCSV(filename string, snap *models.Snapshot) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Header
	header := []string{"Clave", "Desenlace", "Servicio", "Riesgo", "Detalle", "Error"}
	if err := writer.Write(header); err != nil {
		return err
	}

	// Datos
	for _, key := range snap.Order {
		r := snap.Results[key]
		row := []string{r.Key, string(r.Outcome), r.Service, r.Risk, r.Payload, r.Err}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}
