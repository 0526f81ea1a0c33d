// internal/workers/recommendation/recommend-movies/config.go
package recommendmovies

import "time"

type Config struct {
	Timeout time.Duration
	Note    string
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
		Note:    "Демо-режим: внешние API отключены, рекомендации сгенерированы локально.",
	}
}
