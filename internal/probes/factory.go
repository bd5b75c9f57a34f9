package probes

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/iamrohitkandpal/Astra-A-Weapon/internal/classify"
	"github.com/iamrohitkandpal/Astra-A-Weapon/internal/engine"
	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

// Deps colaboradores de red de las sondas; cualquier campo a nil toma
// la implementación real
type Deps struct {
	Dialer   Dialer
	Resolver Resolver
	Client   *http.Client
}

// NewFactory construye la fábrica de sondas del engine: una
// implementación por tipo de escaneo, elegida al crear la petición
func NewFactory(deps Deps) engine.ProbeFactory {
	if deps.Dialer == nil {
		deps.Dialer = &net.Dialer{}
	}
	if deps.Resolver == nil {
		deps.Resolver = net.DefaultResolver
	}
	if deps.Client == nil {
		deps.Client = &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	}

	return func(req models.ScanRequest) (engine.Probe, engine.Classifier, error) {
		switch req.Kind {
		case models.KindPortScan:
			return NewPortProbe(req.Target, deps.Dialer), portClassifier, nil
		case models.KindSubdomainEnum:
			return NewSubdomainProbe(req.Target, deps.Resolver), nil, nil
		case models.KindVulnCheck:
			return NewWebProbe(req.Target, deps.Client), nil, nil
		case models.KindSSLCheck:
			return NewSSLProbe(req.Target, deps.Dialer), nil, nil
		case models.KindBruteForce:
			return NewSSHBruteProbe(req.Target, deps.Dialer), nil, nil
		default:
			return nil, nil, fmt.Errorf("tipo de escaneo desconocido: %q", req.Kind)
		}
	}
}

// portClassifier clasificación pura de un puerto abierto: nombre de
// servicio y riesgo conocido
func portClassifier(res models.ProbeResult) models.ProbeResult {
	port := classify.PortFromKey(res.Key)
	if port == 0 {
		return res
	}
	res.Service = classify.ServiceName(port)
	if rule, ok := classify.RiskForPort(port); ok {
		res.Risk = rule.Risk
		res.Payload = rule.Description
	}
	return res
}
