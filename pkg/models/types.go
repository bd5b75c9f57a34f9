package models

import "time"

// ScanKind tipo de sondeo
type ScanKind string

const (
	KindPortScan      ScanKind = "portscan"
	KindSubdomainEnum ScanKind = "subdomain"
	KindVulnCheck     ScanKind = "vulncheck"
	KindSSLCheck      ScanKind = "sslcheck"
	KindBruteForce    ScanKind = "bruteforce"
)

// ScanStatus estado del ciclo de vida de un escaneo
type ScanStatus string

const (
	StatusIdle      ScanStatus = "idle"
	StatusRunning   ScanStatus = "running"
	StatusCompleted ScanStatus = "completed"
	StatusCancelled ScanStatus = "cancelled"
	StatusFailed    ScanStatus = "failed"
)

// Outcome desenlace de una sonda individual
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeNegative Outcome = "negative"
	OutcomeTimeout  Outcome = "timeout"
	OutcomeError    Outcome = "error"
)

// ScanRequest petición de escaneo, inmutable una vez iniciada
type ScanRequest struct {
	ID          string        `json:"id"`
	Kind        ScanKind      `json:"kind"`
	Target      string        `json:"target"`
	PortStart   int           `json:"port_start,omitempty"`
	PortEnd     int           `json:"port_end,omitempty"`
	Wordlist    []string      `json:"wordlist,omitempty"`
	Usernames   []string      `json:"usernames,omitempty"`
	Passwords   []string      `json:"passwords,omitempty"`
	Paths       []string      `json:"paths,omitempty"`
	Concurrency int           `json:"concurrency"`
	Timeout     time.Duration `json:"timeout"`
}

// ProbeUnit unidad atómica de trabajo derivada de una petición
type ProbeUnit struct {
	ScanID string `json:"scan_id"`
	Key    string `json:"key"`
	Port   int    `json:"port,omitempty"`
	Label  string `json:"label,omitempty"`
}

// ProbeResult resultado inmutable de una sonda; identidad (ScanID, Key)
type ProbeResult struct {
	ScanID  string  `json:"scan_id"`
	Key     string  `json:"key"`
	Outcome Outcome `json:"outcome"`
	Payload string  `json:"payload,omitempty"`
	Service string  `json:"service,omitempty"`
	Risk    string  `json:"risk,omitempty"`
	Err     string  `json:"error,omitempty"`
}

// Progress instantánea de progreso de un escaneo
type Progress struct {
	ScanID    string        `json:"scan_id"`
	Completed int           `json:"completed"`
	Total     int           `json:"total"`
	Status    ScanStatus    `json:"status"`
	Recent    []ProbeResult `json:"recent,omitempty"`
}

// Snapshot vista de solo lectura del estado de un escaneo
type Snapshot struct {
	ScanID    string                 `json:"scan_id"`
	Kind      ScanKind               `json:"kind"`
	Target    string                 `json:"target"`
	Status    ScanStatus             `json:"status"`
	Total     int                    `json:"total"`
	Completed int                    `json:"completed"`
	StartTime time.Time              `json:"start_time"`
	EndTime   time.Time              `json:"end_time,omitempty"`
	Results   map[string]ProbeResult `json:"results"`
	Order     []string               `json:"order"`
	Conflicts int                    `json:"conflicts,omitempty"`
}

// Successes resultados positivos en orden de llegada
func (s *Snapshot) Successes() []ProbeResult {
	var hits []ProbeResult
	for _, key := range s.Order {
		if r, ok := s.Results[key]; ok && r.Outcome == OutcomeSuccess {
			hits = append(hits, r)
		}
	}
	return hits
}

// CountByOutcome cuenta resultados por desenlace
func (s *Snapshot) CountByOutcome(o Outcome) int {
	n := 0
	for _, r := range s.Results {
		if r.Outcome == o {
			n++
		}
	}
	return n
}
