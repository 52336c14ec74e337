package file

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Overrides holds values taken from the process environment.
// Non-empty fields take precedence over the configuration file.
type Overrides struct {
	ConfigPath  string `env:"DBTASKS_CONFIG"`
	Environment string `env:"DBTASKS_ENV"`
	Root        string `env:"DBTASKS_ROOT"`
	SQLite3     string `env:"DBTASKS_SQLITE3"`
}

// ParseOverrides loads overrides from environment variables.
func ParseOverrides() (Overrides, error) {
	var o Overrides
	if err := env.Parse(&o); err != nil {
		return Overrides{}, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}
