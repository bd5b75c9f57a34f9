package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/iamrohitkandpal/Astra-A-Weapon/pkg/models"
)

// Database gestión de BD de instantáneas de escaneo
type Database struct {
	db *sql.DB
}

// Logger interface para logging
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// ScanInfo fila resumida del historial
type ScanInfo struct {
	ID        string
	Kind      string
	Target    string
	Status    string
	Total     int
	Completed int
	Successes int
	Timestamp string
}

// NewDatabase abre la BD y crea el esquema si hace falta
func NewDatabase(dbPath string, logger Logger) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error abriendo DB: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error conectando DB: %w", err)
	}

	database := &Database{db: db}
	if err := database.createTables(); err != nil {
		return nil, err
	}

	logger.Infof("Base de datos inicializada: %s", dbPath)
	return database, nil
}

// createTables crea estructura de tablas
func (db *Database) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scans (
		id TEXT PRIMARY KEY,
		kind TEXT,
		target TEXT,
		status TEXT,
		total INTEGER,
		completed INTEGER,
		successes INTEGER,
		start_time DATETIME,
		end_time DATETIME,
		data TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_scans_target ON scans(target);
	`
	_, err := db.db.Exec(schema)
	return err
}

// Close cierra la BD
func (db *Database) Close() error {
	return db.db.Close()
}

// SaveSnapshot guarda una instantánea terminal de escaneo
func (db *Database) SaveSnapshot(snap models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("error serializando instantánea: %w", err)
	}

	query := `INSERT OR REPLACE INTO scans
		(id, kind, target, status, total, completed, successes, start_time, end_time, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = db.db.Exec(query,
		snap.ScanID, string(snap.Kind), snap.Target, string(snap.Status),
		snap.Total, snap.Completed, snap.CountByOutcome(models.OutcomeSuccess),
		snap.StartTime, snap.EndTime, string(data))
	return err
}

// GetSnapshot recupera una instantánea completa por id
func (db *Database) GetSnapshot(id string) (*models.Snapshot, error) {
	var data string
	err := db.db.QueryRow("SELECT data FROM scans WHERE id = ?", id).Scan(&data)
	if err != nil {
		return nil, err
	}

	var snap models.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("instantánea corrupta: %w", err)
	}
	return &snap, nil
}

// GetScanHistory últimas n filas del historial, más recientes primero
func (db *Database) GetScanHistory(n int) ([]ScanInfo, error) {
	rows, err := db.db.Query(`SELECT id, kind, target, status, total, completed, successes, created_at
		FROM scans ORDER BY created_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []ScanInfo
	for rows.Next() {
		var s ScanInfo
		if err := rows.Scan(&s.ID, &s.Kind, &s.Target, &s.Status,
			&s.Total, &s.Completed, &s.Successes, &s.Timestamp); err != nil {
			return nil, err
		}
		scans = append(scans, s)
	}
	return scans, rows.Err()
}

// GetScansForTarget instantáneas de un mismo objetivo, para comparación
func (db *Database) GetScansForTarget(target string, n int) ([]ScanInfo, error) {
	rows, err := db.db.Query(`SELECT id, kind, target, status, total, completed, successes, created_at
		FROM scans WHERE target = ? ORDER BY created_at DESC LIMIT ?`, target, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []ScanInfo
	for rows.Next() {
		var s ScanInfo
		if err := rows.Scan(&s.ID, &s.Kind, &s.Target, &s.Status,
			&s.Total, &s.Completed, &s.Successes, &s.Timestamp); err != nil {
			return nil, err
		}
		scans = append(scans, s)
	}
	return scans, rows.Err()
}
