package config

import (
	"encoding/json"
	"os"

	"github.com/example/reserva/internal/flagx"
	"github.com/example/reserva/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "5s"
// or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL           string         `json:"api_base_url"`
	LocalDBPath          string         `json:"local_db_path"`
	ErrorDisplayDuration timex.Duration `json:"error_display_duration"`
}

// parseJson overlays Config with values loaded from a JSON file resolved
// via the -c/-config flags. Missing file path means no JSON is loaded.
// Read or unmarshal errors panic; intended usage is
// defaults -> parseJson -> parseFlags, later stages overriding earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.LocalDBPath != "" {
		cfg.LocalDBPath = jc.LocalDBPath
	}
	if jc.ErrorDisplayDuration.Duration != 0 {
		cfg.ErrorDisplayDuration = jc.ErrorDisplayDuration.Duration
	}
}
