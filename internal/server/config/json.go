package config

import (
	"encoding/json"
	"os"

	"github.com/example/reserva/internal/flagx"
	"github.com/example/reserva/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	AdminEmail            string         `json:"admin_email"`
	AdminPassword         string         `json:"admin_password"`
}

// parseJson overlays Config with values loaded from a JSON file resolved
// via the -c/-config flags. Missing file path means no JSON is loaded.
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

	if jc.EndpointAddr != "" {
		cfg.EndpointAddr = jc.EndpointAddr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.TokenValidityDuration.Duration != 0 {
		cfg.TokenValidityDuration = jc.TokenValidityDuration.Duration
	}
	if jc.AdminEmail != "" {
		cfg.AdminEmail = jc.AdminEmail
	}
	if jc.AdminPassword != "" {
		cfg.AdminPassword = jc.AdminPassword
	}
}
