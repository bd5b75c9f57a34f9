package scanner

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Ullaakut/nmap/v3"

	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

// ServiceDetail detalle de servicio detectado en la pasada profunda
type ServiceDetail struct {
	Port    int
	State   string
	Service string
	Product string
	Version string
	CPE     []string
}

// DeepResult resultado de la pasada profunda sobre puertos abiertos
type DeepResult struct {
	Target    string
	StartTime time.Time
	EndTime   time.Time
	Services  []ServiceDetail
}

// Logger interface
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// DeepScan pasada de detección de servicio/versión con Nmap sobre los
// puertos que el engine encontró abiertos. Opcional: requiere nmap en
// el sistema.
func DeepScan(ctx context.Context, snap *models.Snapshot, logger Logger) (*DeepResult, error) {
	if snap.Kind != models.KindPortScan {
		return nil, fmt.Errorf("la pasada profunda solo aplica a escaneos de puertos")
	}

	var ports []string
	for _, r := range snap.Successes() {
		ports = append(ports, r.Key)
	}
	if len(ports) == 0 {
		return nil, fmt.Errorf("sin puertos abiertos que inspeccionar")
	}

	scanner, err := nmap.NewScanner(
		ctx,
		nmap.WithTargets(snap.Target),
		nmap.WithPorts(ports...),
		nmap.WithServiceInfo(),
		nmap.WithTimingTemplate(nmap.TimingAggressive),
	)
	if err != nil {
		return nil, fmt.Errorf("error creando scanner: %w", err)
	}

	startTime := time.Now()
	result, warnings, err := scanner.Run()
	if err != nil {
		return nil, fmt.Errorf("error en escaneo: %w", err)
	}
	if warnings != nil && len(*warnings) > 0 {
		logger.Warnf("Advertencias de nmap: %v", *warnings)
	}

	deep := &DeepResult{
		Target:    snap.Target,
		StartTime: startTime,
		EndTime:   time.Now(),
	}
	for _, host := range result.Hosts {
		for _, port := range host.Ports {
			d := ServiceDetail{
				Port:    int(port.ID),
				State:   string(port.State.State),
				Service: port.Service.Name,
				Product: port.Service.Product,
				Version: port.Service.Version,
			}
			for _, cpe := range port.Service.CPEs {
				d.CPE = append(d.CPE, string(cpe))
			}
			deep.Services = append(deep.Services, d)
		}
	}

	logger.Infof("Pasada profunda de %s: %d servicios identificados", snap.Target, len(deep.Services))
	return deep, nil
}

// PortsOf puertos inspeccionados, como enteros ordenados por aparición
func (d *DeepResult) PortsOf() []int {
	var out []int
	for _, s := range d.Services {
		out = append(out, s.Port)
	}
	return out
}

// String resumen de una línea por servicio
func (d *ServiceDetail) String() string {
	label := d.Service
	if d.Product != "" {
		label += " " + d.Product
	}
	if d.Version != "" {
		label += " " + d.Version
	}
	return strconv.Itoa(d.Port) + "/" + d.State + " " + label
}
