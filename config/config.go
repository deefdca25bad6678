package config

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Cache  Cache  `json:"cache" yaml:"cache" mapstructure:"cache"`
	AI     AI     `json:"ai" yaml:"ai" mapstructure:"ai"`
	Server Server `json:"server" yaml:"server" mapstructure:"server"`
	Batch  Batch  `json:"batch" yaml:"batch" mapstructure:"batch"`
}

// Cache bounds the in-process result cache.
type Cache struct {
	Capacity int           `json:"capacity" yaml:"capacity" mapstructure:"capacity" validate:"gt=0"`
	TTL      time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl" validate:"gt=0"`
}

// AI configures the optional remote recognition fallback.
type AI struct {
	Enabled     bool          `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Endpoint    string        `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,url"`
	APIKey      string        `json:"apiKey" yaml:"apiKey" mapstructure:"apiKey"`
	Threshold   float64       `json:"threshold" yaml:"threshold" mapstructure:"threshold" validate:"gte=0,lte=1"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
	MaxRetries  int           `json:"maxRetries" yaml:"maxRetries" mapstructure:"maxRetries" validate:"gte=0"`
	BaseBackoff time.Duration `json:"backoff" yaml:"backoff" mapstructure:"backoff" validate:"gte=0"`
}

type Server struct {
	Port int `json:"port" yaml:"port" mapstructure:"port" validate:"gt=0,lte=65535"`
}

// Batch sizes the recognition worker pool. It stays small on purpose so
// concurrent AI calls respect the remote service's rate limits.
type Batch struct {
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers" validate:"gte=1,lte=3"`
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads and validates a configuration
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	if err := cu.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, c.Validate()
}

// Validate checks the tunables against their allowed ranges.
func (c Config) Validate() error {
	return validator.New().Struct(c)
}
