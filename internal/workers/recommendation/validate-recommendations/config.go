// internal/workers/recommendation/validate-recommendations/config.go
package validaterecommendations

import "time"

type Config struct {
	Timeout time.Duration
	// DefaultReason is used for candidates that arrive without one.
	DefaultReason string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       10 * time.Second,
		DefaultReason: "Демонстрационная рекомендация",
	}
}
