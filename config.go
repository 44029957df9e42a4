package tracks

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/tmeire/typedtracks/database"
	"github.com/tmeire/typedtracks/otel"
)

const defaultPort = 8080

type Config struct {
	Name       string          `json:"name" yaml:"name"`
	Version    string          `json:"version" yaml:"version"`
	Port       int             `json:"port" yaml:"port"`
	BaseDomain string          `json:"base_domain" yaml:"base_domain"`
	Secure     bool            `json:"secure" yaml:"secure"`
	Database   database.Config `json:"database" yaml:"database"`
	Telemetry  otel.Config     `json:"telemetry" yaml:"telemetry"`
}

// LoadConfig reads config.json, config.yaml or config.yml from dir, in that
// order. A missing file yields the defaults. The PORT environment variable
// overrides the configured port.
func LoadConfig(dir string) (Config, error) {
	var conf Config

	loaders := []struct {
		file   string
		decode func([]byte, any) error
	}{
		{"config.json", json.Unmarshal},
		{"config.yaml", yaml.Unmarshal},
		{"config.yml", yaml.Unmarshal},
	}

	for _, l := range loaders {
		path := filepath.Join(dir, l.file)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := l.decode(data, &conf); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		break
	}

	if p := os.Getenv("PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT %q: %w", p, err)
		}
		conf.Port = port
	}
	if conf.Port == 0 {
		conf.Port = defaultPort
	}
	if conf.Name == "" {
		conf.Name = "tracks"
	}

	return conf, nil
}
