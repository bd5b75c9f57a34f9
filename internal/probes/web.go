package probes

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

// securityHeaders cabeceras cuya ausencia se reporta como hallazgo
var securityHeaders = []string{
	"X-Frame-Options",
	"X-Content-Type-Options",
	"Content-Security-Policy",
	"Strict-Transport-Security",
}

// WebProbe comprobación de una ruta candidata sobre HTTP: rutas
// expuestas y cabeceras de seguridad ausentes
type WebProbe struct {
	baseURL string
	client  *http.Client
}

// NewWebProbe crea la sonda web; baseURL sin barra final
func NewWebProbe(baseURL string, client *http.Client) *WebProbe {
	return &WebProbe{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Execute ruta accesible → Success{hallazgo}, 404 u otra respuesta
// limpia → Negative, sin respuesta → Timeout, fallo de transporte → Error
func (p *WebProbe) Execute(ctx context.Context, unit models.ProbeUnit) models.ProbeResult {
	res := models.ProbeResult{ScanID: unit.ScanID, Key: unit.Key}

	url := p.baseURL + "/" + strings.TrimLeft(unit.Key, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		res.Outcome = models.OutcomeError
		res.Err = err.Error()
		return res
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			res.Outcome = models.OutcomeTimeout
		} else {
			res.Outcome = models.OutcomeError
			res.Err = err.Error()
		}
		return res
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		res.Outcome = models.OutcomeNegative
		return res
	}

	var missing []string
	for _, h := range securityHeaders {
		if resp.Header.Get(h) == "" {
			missing = append(missing, h)
		}
	}

	res.Outcome = models.OutcomeSuccess
	if len(missing) > 0 {
		res.Payload = fmt.Sprintf("ruta accesible (%d); cabeceras ausentes: %s",
			resp.StatusCode, strings.Join(missing, ", "))
	} else {
		res.Payload = fmt.Sprintf("ruta accesible (%d)", resp.StatusCode)
	}
	return res
}
