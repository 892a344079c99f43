package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath          = "."
	defaultStorageDriver = "memory"
	defaultMaxFileSize   = "10MiB"
	defaultActivityLimit = 10
	defaultTaxRate       = 0.18
	defaultQRCodeSize    = 256
)

// Storage drivers.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageRedis  = "redis"
)

// ID strategies.
const (
	IDSequence = "sequence"
	IDUUID     = "uuid"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	// Storage selects and configures the key-value store behind every slot
	Storage *StorageConfig `json:"storage" yaml:"storage"`

	// Cart configuration for totals
	Cart *CartConfig `json:"cart" yaml:"cart"`

	// Activity configuration for the login activity feed
	Activity *ActivityConfig `json:"activity" yaml:"activity"`

	// Upload configuration for item attachments
	Upload *UploadConfig `json:"upload" yaml:"upload"`

	// IDs configuration for identifier generation
	IDs *IDConfig `json:"ids" yaml:"ids"`

	// QRCode configuration for listing contact QR codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// Metrics configuration for the exported counters
	Metrics *MetricsConfig `json:"metrics" yaml:"metrics"`
}

// MetricsConfig defines where counters are written
type MetricsConfig struct {
	// Textfile is a node_exporter textfile path; empty disables the export
	Textfile string `json:"textfile" yaml:"textfile"`
}

// StorageConfig defines where slots are kept
type StorageConfig struct {
	// Driver is one of "memory", "file" or "redis"
	Driver string `json:"driver" yaml:"driver"`

	// Path is the directory used by the file driver
	Path string `json:"path" yaml:"path"`

	// Prefix is prepended to every slot key
	Prefix string `json:"prefix" yaml:"prefix"`

	Redis RedisConfig `json:"redis" yaml:"redis"`
}

// RedisConfig defines the redis driver connection
type RedisConfig struct {
	Addr     string        `json:"addr" yaml:"addr"`
	Password string        `json:"password" yaml:"password"`
	DB       int           `json:"db" yaml:"db"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
}

// CartConfig defines cart totals configuration
type CartConfig struct {
	TaxRate *float64 `json:"taxRate" yaml:"taxRate"` // Nil means the default; zero is a tax-free cart.
}

// ActivityConfig defines the recent activity feed
type ActivityConfig struct {
	Limit int `json:"limit" yaml:"limit"`
}

// UploadConfig defines which attachments items accept
type UploadConfig struct {
	// MaxFileSize is a human readable size, e.g. "10MiB"
	MaxFileSize  string   `json:"maxFileSize" yaml:"maxFileSize"`
	AllowedTypes []string `json:"allowedTypes" yaml:"allowedTypes"`
}

// IDConfig defines identifier generation
type IDConfig struct {
	// Strategy is "sequence" (user_1, item_1, ...) or "uuid"
	Strategy string `json:"strategy" yaml:"strategy"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
	BaseURL              string `json:"baseUrl" yaml:"baseUrl"`
}

// MaxFileSizeBytes parses MaxFileSize.
func (u *UploadConfig) MaxFileSizeBytes() (int64, error) {
	size := u.MaxFileSize
	if strings.TrimSpace(size) == "" {
		size = defaultMaxFileSize
	}

	n, err := humanize.ParseBytes(size)
	if err != nil {
		return 0, errors.Wrapf(err, "parse upload.maxFileSize %q", size)
	}

	return int64(n), nil
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
			// Example: STORAGE_REDIS_ADDR -> storage.redis.addr, CART_TAXRATE -> cart.taxRate
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

	ApplyDefaults(cfg)

	return cfg, nil
}

// ApplyDefaults fills every section the config file left out.
func ApplyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Env.Log.Level) == "" {
		cfg.Env.Log.Level = "info"
	}
	if cfg.Storage == nil {
		cfg.Storage = &StorageConfig{}
	}
	if strings.TrimSpace(cfg.Storage.Driver) == "" {
		cfg.Storage.Driver = defaultStorageDriver
	}
	if cfg.Cart == nil {
		cfg.Cart = &CartConfig{}
	}
	if cfg.Cart.TaxRate == nil {
		rate := defaultTaxRate
		cfg.Cart.TaxRate = &rate
	}
	if cfg.Activity == nil || cfg.Activity.Limit <= 0 {
		cfg.Activity = &ActivityConfig{Limit: defaultActivityLimit}
	}
	if cfg.Upload == nil {
		cfg.Upload = &UploadConfig{}
	}
	if strings.TrimSpace(cfg.Upload.MaxFileSize) == "" {
		cfg.Upload.MaxFileSize = defaultMaxFileSize
	}
	if cfg.IDs == nil || strings.TrimSpace(cfg.IDs.Strategy) == "" {
		cfg.IDs = &IDConfig{Strategy: IDSequence}
	}
	if cfg.QRCode == nil {
		cfg.QRCode = &QRCodeConfig{Size: defaultQRCodeSize, ErrorCorrectionLevel: "M"}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &MetricsConfig{}
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
