// Package config loads the driver's YAML configuration: the named-meter
// registry, log path/retention, and diagnostics server port.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Meters []MeterEntry `yaml:"meters"`
	Logs   LogsConfig   `yaml:"logs"`
	Server ServerConfig `yaml:"server"`
}

// MeterEntry is one named meter's connection parameters, as spec §3
// describes them: a serial port, connection type, optional fixed baud, the
// handshake address, and the P1/P2 password used by Authenticate.
type MeterEntry struct {
	Name           string `yaml:"name"`
	Port           string `yaml:"port"`
	ConnectionType string `yaml:"connection_type"` // "optical", "auto", "other"
	Baud           int    `yaml:"baud"`             // 0 = auto-probe
	ReadDeadline   time.Duration `yaml:"read_deadline"`
	Address        string `yaml:"address"`
	Password       string `yaml:"password"`
}

type LogsConfig struct {
	Path          string `yaml:"path"`
	RetentionDays int    `yaml:"retention_days"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// Load reads and unmarshals path over a defaults-then-unmarshal skeleton
// (the teacher's pattern): fields the file omits keep their defaults
// instead of zeroing out.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Logs: LogsConfig{
			Path:          "/var/lib/meterd/logs",
			RetentionDays: 30,
		},
		Server: ServerConfig{
			Port: 8088,
		},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	for i := range cfg.Meters {
		if cfg.Meters[i].ConnectionType == "" {
			cfg.Meters[i].ConnectionType = "auto"
		}
		if cfg.Meters[i].ReadDeadline == 0 {
			cfg.Meters[i].ReadDeadline = 5 * time.Second
		}
	}

	return cfg, nil
}
