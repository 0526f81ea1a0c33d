// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Server        ServerConfig            `mapstructure:"server"`
	Catalog       CatalogConfig           `mapstructure:"catalog"`
	Cache         CacheConfig             `mapstructure:"cache"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Workers       map[string]WorkerConfig `mapstructure:"workers" validate:"dive"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
	Logging       LoggingConfig           `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig configures the HTTP listener. Timeouts are milliseconds.
type ServerConfig struct {
	Port            int      `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     int      `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    int      `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout" validate:"gt=0"`
	RequestTimeout  int      `mapstructure:"request_timeout" validate:"gt=0"`
	MaxBodyBytes    int64    `mapstructure:"max_body_bytes" validate:"gt=0"`
	AllowedOrigins  []string `mapstructure:"allowed_origins" validate:"min=1"`
}

// CatalogConfig points at an optional JSON catalog file. Empty means the built-in table.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig selects the lookup memoization backend.
type CacheConfig struct {
	Backend    string      `mapstructure:"backend" validate:"oneof=memory redis"`
	MaxEntries int         `mapstructure:"max_entries" validate:"min=0"`
	TTL        int         `mapstructure:"ttl"` // milliseconds, redis only; 0 keeps entries forever
	KeyPrefix  string      `mapstructure:"key_prefix"`
	Redis      RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
}

type CamundaConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BrokerAddress  string `mapstructure:"broker_address" validate:"required_if=Enabled true"`
	Plaintext      bool   `mapstructure:"plaintext"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

// WorkerConfig holds the settings applicable to every job worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active" validate:"min=1"`
	Timeout       int  `mapstructure:"timeout" validate:"min=1"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries" validate:"min=0"`
}

type ObservabilityConfig struct {
	ServiceName    string `mapstructure:"service_name"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
	Output string `mapstructure:"output"`
}
