package gui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/iamrohitkandpal/Astra-A-Weapon/internal/classify"
	"github.com/iamrohitkandpal/Astra-A-Weapon/internal/comparison"
	"github.com/iamrohitkandpal/Astra-A-Weapon/internal/engine"
	"github.com/iamrohitkandpal/Astra-A-Weapon/internal/export"
	"github.com/iamrohitkandpal/Astra-A-Weapon/internal/report"
	"github.com/iamrohitkandpal/Astra-A-Weapon/internal/storage"
	"github.com/iamrohitkandpal/Astra-A-Weapon/internal/wordlist"
	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

// Logger interface
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// App aplicación principal GUI
type App struct {
	logger Logger
	eng    *engine.Engine
	db     *storage.Database
	window fyne.Window
}

// NewApp crea nueva aplicación GUI
func NewApp(window fyne.Window, logger Logger, eng *engine.Engine, db *storage.Database) *App {
	return &App{
		logger: logger,
		eng:    eng,
		db:     db,
		window: window,
	}
}

// CreateMainContent crea contenido principal
func (a *App) CreateMainContent() *fyne.Container {
	tabs := container.NewAppTabs(
		container.NewTabItem("Escaneo", a.createScanTab()),
		container.NewTabItem("Historial", a.createHistoryTab()),
		container.NewTabItem("Comparar", a.createCompareTab()),
	)

	return container.NewStack(tabs)
}

// kindLabels etiquetas del selector de tipo de escaneo
var kindLabels = map[string]models.ScanKind{
	"Escaneo de puertos":       models.KindPortScan,
	"Enumeración de subdominios": models.KindSubdomainEnum,
	"Chequeo web":              models.KindVulnCheck,
	"Evaluación SSL/TLS":       models.KindSSLCheck,
	"Fuerza bruta SSH":         models.KindBruteForce,
}

// createScanTab formulario de escaneo con progreso en vivo
func (a *App) createScanTab() *fyne.Container {
	targetEntry := widget.NewEntry()
	targetEntry.SetPlaceHolder("ej: 127.0.0.1 o example.com")

	rangeEntry := widget.NewEntry()
	rangeEntry.SetPlaceHolder("ej: 1-1024")
	rangeEntry.SetText("1-1024")

	wordlistEntry := widget.NewEntry()
	wordlistEntry.SetPlaceHolder("ruta a wordlist (opcional)")

	concEntry := widget.NewEntry()
	concEntry.SetPlaceHolder("concurrencia (auto)")

	var names []string
	for name := range kindLabels {
		names = append(names, name)
	}
	kindSelect := widget.NewSelect(names, nil)
	kindSelect.SetSelected("Escaneo de puertos")

	progressBar := widget.NewProgressBar()
	statusLabel := widget.NewLabel("Listo.")
	resultsText := widget.NewMultiLineEntry()
	resultsText.Disable()

	var current *engine.Handle
	var cancelBtn *widget.Button

	scanBtn := widget.NewButton("🔍 Iniciar Escaneo", func() {
		req, err := a.buildRequest(kindSelect.Selected, targetEntry.Text,
			rangeEntry.Text, wordlistEntry.Text, concEntry.Text)
		if err != nil {
			statusLabel.SetText(fmt.Sprintf("Petición inválida: %v", err))
			return
		}

		handle, err := a.eng.StartScan(req)
		if err != nil {
			statusLabel.SetText(fmt.Sprintf("Error: %v", err))
			a.logger.Errorf("Error iniciando escaneo: %v", err)
			return
		}
		current = handle
		cancelBtn.Enable()
		statusLabel.SetText(fmt.Sprintf("Escaneando %s...", req.Target))

		go a.followScan(handle, progressBar, statusLabel, resultsText, cancelBtn)
	})
	scanBtn.Importance = widget.HighImportance

	cancelBtn = widget.NewButton("Cancelar", func() {
		if current != nil {
			a.logger.Warnf("Cancelando escaneo %s...", current.ID())
			current.Cancel()
		}
	})
	cancelBtn.Disable()

	form := container.NewVBox(
		widget.NewLabelWithStyle("Configuración de Escaneo", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
		kindSelect,
		widget.NewLabel("Target (IP o dominio):"),
		targetEntry,
		widget.NewLabel("Rango de puertos:"),
		rangeEntry,
		widget.NewLabel("Wordlist:"),
		wordlistEntry,
		widget.NewLabel("Concurrencia:"),
		concEntry,
		container.NewHBox(scanBtn, cancelBtn),
		widget.NewSeparator(),
		progressBar,
		statusLabel,
	)

	split := container.NewHSplit(container.NewVScroll(form), container.NewVScroll(resultsText))
	split.Offset = 0.4
	return container.NewStack(split)
}

// followScan consume las notificaciones coalescidas del manejador y
// refresca la vista; corre fuera del hilo de eventos
func (a *App) followScan(h *engine.Handle, bar *widget.ProgressBar,
	status *widget.Label, results *widget.Entry, cancelBtn *widget.Button) {

	for p := range h.Subscribe() {
		if p.Total > 0 {
			bar.SetValue(float64(p.Completed) / float64(p.Total))
		}
		status.SetText(fmt.Sprintf("%s — %d/%d", p.Status, p.Completed, p.Total))
	}

	snap := h.Snapshot()
	bar.SetValue(1)
	status.SetText(fmt.Sprintf("%s — %d/%d", snap.Status, snap.Completed, snap.Total))
	results.SetText(renderSnapshot(&snap))
	cancelBtn.Disable()

	if err := a.db.SaveSnapshot(snap); err != nil {
		a.logger.Errorf("Error guardando instantánea: %v", err)
	}
}

// renderSnapshot texto plano de resultados: hallazgos primero, luego
// timeouts y errores (los cerrados/negativos se resumen en una línea)
func renderSnapshot(snap *models.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎯 %s (%s) — %s\n\n", snap.Target, snap.Kind, snap.Status)

	for _, r := range snap.Successes() {
		fmt.Fprintf(&b, "✅ %s", r.Key)
		if r.Service != "" {
			fmt.Fprintf(&b, " [%s]", r.Service)
		}
		if r.Risk != "" {
			fmt.Fprintf(&b, " %s", classify.RiskLabel(r.Risk))
		}
		if r.Payload != "" {
			fmt.Fprintf(&b, " — %s", r.Payload)
		}
		b.WriteString("\n")
	}

	for _, key := range snap.Order {
		r := snap.Results[key]
		switch r.Outcome {
		case models.OutcomeTimeout:
			fmt.Fprintf(&b, "⏱ %s — sin respuesta\n", r.Key)
		case models.OutcomeError:
			fmt.Fprintf(&b, "⚠ %s — %s\n", r.Key, r.Err)
		}
	}

	fmt.Fprintf(&b, "\nNegativos: %d | Timeouts: %d | Errores: %d | Conflictos: %d\n",
		snap.CountByOutcome(models.OutcomeNegative),
		snap.CountByOutcome(models.OutcomeTimeout),
		snap.CountByOutcome(models.OutcomeError),
		snap.Conflicts)
	return b.String()
}

// buildRequest convierte el formulario en una ScanRequest
func (a *App) buildRequest(kindLabel, target, portRange, wordlistPath, conc string) (models.ScanRequest, error) {
	req := models.ScanRequest{
		Kind:   kindLabels[kindLabel],
		Target: strings.TrimSpace(target),
	}
	if req.Target == "" {
		return req, fmt.Errorf("target vacío")
	}
	if n, err := strconv.Atoi(strings.TrimSpace(conc)); err == nil {
		req.Concurrency = n
	}

	switch req.Kind {
	case models.KindPortScan:
		start, end, err := parsePortRange(portRange)
		if err != nil {
			return req, err
		}
		req.PortStart, req.PortEnd = start, end
	case models.KindSubdomainEnum:
		words := wordlist.DefaultSubdomains
		if wordlistPath != "" {
			loaded, err := wordlist.Load(wordlistPath)
			if err != nil {
				return req, err
			}
			words = loaded
		}
		req.Wordlist = words
	case models.KindVulnCheck:
		req.Paths = wordlist.DefaultPaths
		if wordlistPath != "" {
			loaded, err := wordlist.Load(wordlistPath)
			if err != nil {
				return req, err
			}
			req.Paths = loaded
		}
		if !strings.Contains(req.Target, "://") {
			req.Target = "http://" + req.Target
		}
	case models.KindBruteForce:
		if wordlistPath == "" {
			return req, fmt.Errorf("fuerza bruta requiere wordlist usuario:clave")
		}
		combos, err := wordlist.Load(wordlistPath)
		if err != nil {
			return req, err
		}
		for _, c := range combos {
			user, pass, ok := strings.Cut(c, ":")
			if !ok {
				continue
			}
			req.Usernames = append(req.Usernames, user)
			req.Passwords = append(req.Passwords, pass)
		}
	}
	return req, nil
}

// parsePortRange "a-b" o puerto único
func parsePortRange(s string) (int, int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, 1024, nil
	}
	start, end, found := strings.Cut(s, "-")
	a, err := strconv.Atoi(strings.TrimSpace(start))
	if err != nil {
		return 0, 0, fmt.Errorf("rango malformado: %q", s)
	}
	if !found {
		return a, a, nil
	}
	b, err := strconv.Atoi(strings.TrimSpace(end))
	if err != nil {
		return 0, 0, fmt.Errorf("rango malformado: %q", s)
	}
	return a, b, nil
}

// createHistoryTab historial de escaneos guardados con exportación
func (a *App) createHistoryTab() *fyne.Container {
	list := container.NewVBox()
	status := widget.NewLabel("")

	refresh := func() {
		list.RemoveAll()
		scans, err := a.db.GetScanHistory(20)
		if err != nil {
			a.logger.Errorf("Error cargando historial: %v", err)
			return
		}
		if len(scans) == 0 {
			list.Add(widget.NewLabel("Sin escaneos recientes"))
		}
		for _, s := range scans {
			s := s
			info := fmt.Sprintf("🎯 %s | %s | %s | %d/%d | hallazgos: %d | %s",
				s.Target, s.Kind, s.Status, s.Completed, s.Total, s.Successes, s.Timestamp)
			row := container.NewHBox(
				widget.NewLabelWithStyle(info, fyne.TextAlignLeading, fyne.TextStyle{Monospace: true}),
				widget.NewButton("JSON", func() { a.exportScan(s.ID, "json", status) }),
				widget.NewButton("CSV", func() { a.exportScan(s.ID, "csv", status) }),
				widget.NewButton("PDF", func() { a.exportScan(s.ID, "pdf", status) }),
			)
			list.Add(row)
		}
		list.Refresh()
	}

	refreshBtn := widget.NewButton("🔄 Actualizar", refresh)
	refresh()

	content := container.NewBorder(
		container.NewVBox(refreshBtn, widget.NewSeparator()),
		status, nil, nil,
		container.NewVScroll(list),
	)
	return container.NewStack(content)
}

// exportScan vuelca una instantánea guardada al formato pedido
func (a *App) exportScan(id, format string, status *widget.Label) {
	snap, err := a.db.GetSnapshot(id)
	if err != nil {
		status.SetText(fmt.Sprintf("Error recuperando escaneo: %v", err))
		return
	}

	filename := fmt.Sprintf("astra-%s-%s.%s", snap.Target, time.Now().Format("20060102-150405"), format)
	switch format {
	case "json":
		err = export.ExportToJSON(filename, snap)
	case "csv":
		err = export.ExportToCSV(filename, snap)
	case "pdf":
		err = report.NewGenerator(a.logger).GeneratePDF(snap, filename)
	}
	if err != nil {
		status.SetText(fmt.Sprintf("Error exportando: %v", err))
		return
	}
	status.SetText("Exportado: " + filename)
	a.logger.Infof("Exportado %s", filename)
}

// createCompareTab comparación entre dos escaneos guardados
func (a *App) createCompareTab() *fyne.Container {
	firstEntry := widget.NewEntry()
	firstEntry.SetPlaceHolder("id del escaneo antiguo")
	secondEntry := widget.NewEntry()
	secondEntry.SetPlaceHolder("id del escaneo nuevo")

	output := widget.NewMultiLineEntry()
	output.Disable()

	compareBtn := widget.NewButton("⚖️ Comparar", func() {
		older, err := a.db.GetSnapshot(strings.TrimSpace(firstEntry.Text))
		if err != nil {
			output.SetText(fmt.Sprintf("Error: %v", err))
			return
		}
		newer, err := a.db.GetSnapshot(strings.TrimSpace(secondEntry.Text))
		if err != nil {
			output.SetText(fmt.Sprintf("Error: %v", err))
			return
		}

		cmp := comparison.CompareSnapshots(older, newer)
		var b strings.Builder
		b.WriteString(cmp.Summary + "\n\n")
		for _, c := range cmp.Opened {
			fmt.Fprintf(&b, "➕ %s %s (%s)\n", c.Key, c.Action, c.Service)
		}
		for _, c := range cmp.Closed {
			fmt.Fprintf(&b, "➖ %s %s (%s)\n", c.Key, c.Action, c.Service)
		}
		output.SetText(b.String())
	})

	form := container.NewVBox(
		widget.NewLabelWithStyle("Comparar Escaneos", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
		firstEntry,
		secondEntry,
		compareBtn,
	)
	return container.NewBorder(form, nil, nil, nil, container.NewVScroll(output))
}
