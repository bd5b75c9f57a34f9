package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"

	"github.com/iamrohitkandpal/Astra-A-Weapon/internal/config"
	"github.com/iamrohitkandpal/Astra-A-Weapon/internal/engine"
	"github.com/iamrohitkandpal/Astra-A-Weapon/internal/export"
	"github.com/iamrohitkandpal/Astra-A-Weapon/internal/gui"
	"github.com/iamrohitkandpal/Astra-A-Weapon/internal/probes"
	"github.com/iamrohitkandpal/Astra-A-Weapon/internal/scanner"
	"github.com/iamrohitkandpal/Astra-A-Weapon/internal/storage"
	"github.com/iamrohitkandpal/Astra-A-Weapon/internal/wordlist"
	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

var uiLogs []string

const maxUILogs = 50

func appendUILog(log string) {
	if len(uiLogs) >= maxUILogs {
		uiLogs = uiLogs[1:]
	}
	uiLogs = append(uiLogs, log)
}

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	headless := flag.Bool("headless", false, "Modo headless (sin GUI)")
	target := flag.String("target", "", "Target para escaneo directo")
	kind := flag.String("kind", "portscan", "Tipo de escaneo: portscan|subdomain|vulncheck|sslcheck")
	ports := flag.String("ports", "1-1024", "Rango de puertos a-b")
	wordlistPath := flag.String("wordlist", "", "Ruta a wordlist")
	deep := flag.Bool("deep", false, "Pasada profunda con nmap tras el escaneo de puertos")
	out := flag.String("out", "", "Exportar resultado a fichero .json o .csv")
	flag.Parse()

	logger := setupLogger(*verbose)
	logger.Infof("Astra v%s (%s) iniciando...", version, commit)

	// Obtener directorio home - si estamos en sudo, usar /root
	homeDir := os.Getenv("HOME")
	if homeDir == "" {
		homeDir, _ = os.UserHomeDir()
	}
	dataDir := filepath.Join(homeDir, ".astra")
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		logger.Warnf("Error creando directorio: %v", err)
	}

	cfg, err := config.Load(dataDir)
	if err != nil {
		logger.Warnf("Error cargando configuración, usando defaults: %v", err)
	}

	db, err := storage.NewDatabase(cfg.DatabaseFile, logger)
	if err != nil {
		logger.Fatalf("Error inicializando BD: %v", err)
	}
	defer db.Close()

	eng := engine.New(probes.NewFactory(probes.Deps{}), logger)

	if *headless && *target != "" {
		logger.Infof("Modo headless: escaneo de %s", *target)
		runHeadlessScan(logger, cfg, db, eng, *kind, *target, *ports, *wordlistPath, *deep, *out)
		return
	}

	startGUI(logger, eng, db)
}

func setupLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	})
	logger.AddHook(&UILogHook{})
	return logger
}

// UILogHook acumula las últimas líneas de log para la vista de la GUI
type UILogHook struct{}

func (h *UILogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *UILogHook) Fire(e *logrus.Entry) error {
	logstr := fmt.Sprintf("[%s] %s", strings.ToUpper(e.Level.String()), e.Message)
	appendUILog(logstr)
	return nil
}

func startGUI(logger *logrus.Logger, eng *engine.Engine, db *storage.Database) {
	myApp := app.New()
	myWindow := myApp.NewWindow("Astra - Security Toolkit")
	myWindow.Resize(fyne.NewSize(1200, 800))

	ui := gui.NewApp(myWindow, logger, eng, db)
	myWindow.SetContent(ui.CreateMainContent())

	myWindow.ShowAndRun()
}

// buildHeadlessRequest petición a partir de las flags de línea de comandos
func buildHeadlessRequest(cfg config.Config, kind, target, ports, wordlistPath string) (models.ScanRequest, error) {
	req := models.ScanRequest{
		Kind:    models.ScanKind(kind),
		Target:  target,
		Timeout: cfg.ProbeTimeout(),
	}

	switch req.Kind {
	case models.KindPortScan:
		start, end, found := strings.Cut(ports, "-")
		if _, err := fmt.Sscanf(start, "%d", &req.PortStart); err != nil {
			return req, fmt.Errorf("rango malformado: %q", ports)
		}
		req.PortEnd = req.PortStart
		if found {
			if _, err := fmt.Sscanf(end, "%d", &req.PortEnd); err != nil {
				return req, fmt.Errorf("rango malformado: %q", ports)
			}
		}
		req.Concurrency = cfg.PortWorkers
	case models.KindSubdomainEnum:
		req.Wordlist = wordlist.DefaultSubdomains
		req.Concurrency = cfg.EnumWorkers
		if wordlistPath != "" {
			words, err := wordlist.Load(wordlistPath)
			if err != nil {
				return req, err
			}
			req.Wordlist = words
		}
	case models.KindVulnCheck:
		req.Paths = wordlist.DefaultPaths
		if !strings.Contains(target, "://") {
			req.Target = "http://" + target
		}
	case models.KindSSLCheck:
		// Unidad única sobre el 443 por defecto
	default:
		return req, fmt.Errorf("tipo de escaneo no soportado en headless: %q", kind)
	}
	return req, nil
}

func runHeadlessScan(logger *logrus.Logger, cfg config.Config, db *storage.Database,
	eng *engine.Engine, kind, target, ports, wordlistPath string, deep bool, out string) {

	req, err := buildHeadlessRequest(cfg, kind, target, ports, wordlistPath)
	if err != nil {
		logger.Fatalf("Petición inválida: %v", err)
	}

	handle, err := eng.StartScan(req)
	if err != nil {
		logger.Fatalf("Error iniciando escaneo: %v", err)
	}

	for p := range handle.Subscribe() {
		logger.Debugf("progreso %d/%d", p.Completed, p.Total)
	}
	if err := handle.Wait(context.Background()); err != nil {
		logger.Fatalf("Error esperando escaneo: %v", err)
	}

	snap := handle.Snapshot()
	logger.Infof("Escaneo %s terminado: %s, %d/%d unidades, %d hallazgos",
		snap.ScanID, snap.Status, snap.Completed, snap.Total,
		snap.CountByOutcome(models.OutcomeSuccess))

	for _, r := range snap.Successes() {
		line := r.Key
		if r.Service != "" {
			line += " [" + r.Service + "]"
		}
		if r.Payload != "" {
			line += " - " + r.Payload
		}
		fmt.Println("✅ " + line)
	}

	if err := db.SaveSnapshot(snap); err != nil {
		logger.Errorf("Error guardando instantánea: %v", err)
	}

	if deep && snap.Kind == models.KindPortScan {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		deepRes, err := scanner.DeepScan(ctx, &snap, logger)
		if err != nil {
			logger.Warnf("Pasada profunda fallida: %v", err)
		} else {
			for _, svc := range deepRes.Services {
				fmt.Println("🔎 " + svc.String())
			}
		}
	}

	if out != "" {
		switch {
		case strings.HasSuffix(out, ".csv"):
			err = export.ExportToCSV(out, &snap)
		default:
			err = export.ExportToJSON(out, &snap)
		}
		if err != nil {
			logger.Errorf("Error exportando: %v", err)
		} else {
			logger.Infof("Resultado exportado a %s", out)
		}
	}
}
