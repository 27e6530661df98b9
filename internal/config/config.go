// Package config assembles the relay configuration from viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jmylchreest/cleanread/pkg/llm"
	"github.com/jmylchreest/cleanread/pkg/summary"
)

// ErrMissingAPIKey is returned when the selected provider needs a key and
// none is configured.
var ErrMissingAPIKey = errors.New("missing API key")

// Viper keys read by Load.
const (
	KeyAddr        = "relay.addr"
	KeyBasePath    = "relay.base_path"
	KeyProvider    = "relay.provider"
	KeyModel       = "relay.model"
	KeyAPIKey      = "relay.api_key"
	KeyBaseURL     = "relay.base_url"
	KeyTimeout     = "relay.timeout"
	KeyMaxBodySize = "relay.max_body_size"
	KeyRateLimit   = "relay.rate_limit"
	KeyRateBurst   = "relay.rate_burst"
	KeyCORSOrigins = "relay.cors_origins"
	KeyChunkSize   = "relay.chunk_size"
)

// Relay is the typed relay configuration.
type Relay struct {
	Addr        string        `validate:"required"`
	BasePath    string        `validate:"required,startswith=/"`
	Provider    string        `validate:"required"`
	Model       string        `validate:"required"`
	APIKey      string        `json:"-"`
	BaseURL     string        `validate:"omitempty,url"`
	Timeout     time.Duration `validate:"gt=0"`
	MaxBodySize int64         `validate:"gt=0"`
	RateLimit   float64       `validate:"gte=0"` // requests per second per client, 0 disables
	RateBurst   int           `validate:"gte=1"`
	CORSOrigins []string      `validate:"dive,required"`
	ChunkSize   int           `validate:"gt=0"`
}

// SetDefaults registers the relay defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAddr, ":3000")
	v.SetDefault(KeyBasePath, "/api")
	v.SetDefault(KeyTimeout, llm.DefaultTimeout)
	v.SetDefault(KeyMaxBodySize, "1MB")
	v.SetDefault(KeyRateLimit, 2.0)
	v.SetDefault(KeyRateBurst, 10)
	v.SetDefault(KeyCORSOrigins, []string{"*"})
	v.SetDefault(KeyChunkSize, summary.DefaultChunkSize)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load builds and validates a Relay from v. When no provider is set it is
// detected from the API keys in the environment. A provider that needs a
// key without one yields ErrMissingAPIKey.
func Load(v *viper.Viper) (*Relay, error) {
	cfg := &Relay{
		Addr:        v.GetString(KeyAddr),
		BasePath:    "/" + strings.Trim(v.GetString(KeyBasePath), "/"),
		Provider:    strings.ToLower(v.GetString(KeyProvider)),
		Model:       v.GetString(KeyModel),
		APIKey:      v.GetString(KeyAPIKey),
		BaseURL:     v.GetString(KeyBaseURL),
		Timeout:     v.GetDuration(KeyTimeout),
		RateLimit:   v.GetFloat64(KeyRateLimit),
		RateBurst:   v.GetInt(KeyRateBurst),
		CORSOrigins: v.GetStringSlice(KeyCORSOrigins),
		ChunkSize:   v.GetInt(KeyChunkSize),
	}

	size, err := humanize.ParseBytes(v.GetString(KeyMaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyMaxBodySize, err)
	}
	cfg.MaxBodySize = int64(size)

	if cfg.Provider == "" {
		provider, key := llm.DetectProvider()
		cfg.Provider = provider
		if cfg.APIKey == "" {
			cfg.APIKey = key
		}
	}
	if !llm.IsRegistered(cfg.Provider) {
		return nil, fmt.Errorf("unknown provider %q (available: %s)", cfg.Provider, strings.Join(llm.AvailableProviders(), ", "))
	}
	if cfg.APIKey == "" {
		cfg.APIKey = llm.APIKeyFromEnv(cfg.Provider)
	}
	if cfg.Model == "" {
		cfg.Model = llm.GetDefaultModel(cfg.Provider)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid relay config: %w", err)
	}

	if cfg.APIKey == "" && llm.RequiresAPIKey(cfg.Provider) {
		return nil, fmt.Errorf("%w for provider %s: set %s or %s", ErrMissingAPIKey, cfg.Provider, llm.APIKeyEnv(cfg.Provider), KeyAPIKey)
	}
	return cfg, nil
}

// ProviderConfig returns the llm settings carried by the relay config.
func (r *Relay) ProviderConfig() llm.ProviderConfig {
	return llm.ProviderConfig{
		APIKey:  r.APIKey,
		BaseURL: r.BaseURL,
		Model:   r.Model,
		Timeout: r.Timeout,
	}
}

// MaxBodySizeString formats MaxBodySize for logs.
func (r *Relay) MaxBodySizeString() string {
	return humanize.Bytes(uint64(r.MaxBodySize))
}
