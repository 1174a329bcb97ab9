// Package config loads the billmap configuration from yaml files with
// environment variable overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Maps configuration for the external mapping provider.
	Maps *MapsConfig `json:"maps" yaml:"maps"`

	// Inventory configuration for tabular ingestion.
	Inventory *InventoryConfig `json:"inventory" yaml:"inventory"`

	// Proximity configuration for radius membership.
	Proximity *ProximityConfig `json:"proximity" yaml:"proximity"`

	// Search configuration for place text search.
	Search *SearchConfig `json:"search" yaml:"search"`
}

// MapsConfig defines access to the external mapping provider.
type MapsConfig struct {
	APIKey  string        `json:"apiKey" yaml:"apiKey"`
	BaseURL string        `json:"baseUrl" yaml:"baseUrl"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// InventoryConfig defines tabular ingestion behavior.
type InventoryConfig struct {
	// Number of leading workbook rows scanned for the header row.
	HeaderScanRows int `json:"headerScanRows" yaml:"headerScanRows"`

	// Maximum image references carried per item.
	MaxImages int `json:"maxImages" yaml:"maxImages"`

	// Name assigned to rows that resolve to no usable name.
	PlaceholderName string `json:"placeholderName" yaml:"placeholderName"`
}

// ProximityConfig defines radius membership behavior.
type ProximityConfig struct {
	DefaultRadius float64 `json:"defaultRadius" yaml:"defaultRadius"`
	MaxRadius     float64 `json:"maxRadius" yaml:"maxRadius"`
}

// SearchConfig defines place search pacing.
type SearchConfig struct {
	// Delay between successive result pages of one text search.
	PageDelay time.Duration `json:"pageDelay" yaml:"pageDelay"`

	// Quiet interval before a debounced re-search fires.
	DebounceInterval time.Duration `json:"debounceInterval" yaml:"debounceInterval"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: MAPS_APIKEY -> maps.apiKey (not maps.apikey)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Inventory == nil {
		cfg.Inventory = &InventoryConfig{}
	}
	if cfg.Inventory.HeaderScanRows <= 0 {
		cfg.Inventory.HeaderScanRows = 20
	}
	if cfg.Inventory.MaxImages <= 0 {
		cfg.Inventory.MaxImages = 3
	}
	if cfg.Inventory.PlaceholderName == "" {
		cfg.Inventory.PlaceholderName = "Panou"
	}

	if cfg.Proximity == nil {
		cfg.Proximity = &ProximityConfig{}
	}
	if cfg.Proximity.DefaultRadius <= 0 {
		cfg.Proximity.DefaultRadius = 1000
	}
	if cfg.Proximity.MaxRadius <= 0 {
		cfg.Proximity.MaxRadius = 10000
	}

	if cfg.Search == nil {
		cfg.Search = &SearchConfig{}
	}
	if cfg.Search.PageDelay <= 0 {
		cfg.Search.PageDelay = 300 * time.Millisecond
	}
	if cfg.Search.DebounceInterval <= 0 {
		cfg.Search.DebounceInterval = 400 * time.Millisecond
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
