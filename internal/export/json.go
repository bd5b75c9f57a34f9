package export

import (
	"encoding/json"
	"os"

	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

// ExportToJSON exporta una instantánea a JSON
func ExportToJSON(filename string, snap *models.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}
