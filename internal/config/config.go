package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config configuración de la aplicación, en ~/.astra/config.yaml
type Config struct {
	DataDir        string `yaml:"data_dir"`
	DatabaseFile   string `yaml:"database_file"`
	WordlistPath   string `yaml:"wordlist_path"`
	ProbeTimeoutMS int    `yaml:"probe_timeout_ms"`
	PortWorkers    int    `yaml:"port_workers"`
	EnumWorkers    int    `yaml:"enum_workers"`
	BruteWorkers   int    `yaml:"brute_workers"`
	DeepScanNmap   bool   `yaml:"deep_scan_nmap"`
}

// ProbeTimeout presupuesto por sonda
func (c Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutMS) * time.Millisecond
}

// Default valores por defecto; dataDir suele ser ~/.astra
func Default(dataDir string) Config {
	return Config{
		DataDir:        dataDir,
		DatabaseFile:   filepath.Join(dataDir, "astra.db"),
		ProbeTimeoutMS: 2000,
		PortWorkers:    100,
		EnumWorkers:    20,
		BruteWorkers:   4,
	}
}

// Load lee la configuración; si el fichero no existe escribe y
// devuelve los valores por defecto
func Load(dataDir string) (Config, error) {
	cfg := Default(dataDir)
	path := filepath.Join(dataDir, "config.yaml")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if werr := Save(path, cfg); werr != nil {
			return cfg, werr
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("error leyendo configuración: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("configuración malformada: %w", err)
	}
	if cfg.DatabaseFile == "" {
		cfg.DatabaseFile = filepath.Join(cfg.DataDir, "astra.db")
	}
	return cfg, nil
}

// Save escribe la configuración en disco
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
