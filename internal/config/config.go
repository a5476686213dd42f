package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Printful    PrintfulConfig
	Assets      AssetsConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type PrintfulConfig struct {
	BaseURL string
	// PublicURL is the externally reachable base URL of this service,
	// used to register the webhook callback endpoint.
	PublicURL  string
	StoresFile string
	Stores     []PrintfulStore
}

// PrintfulStore binds one Printful account to a local product bundle.
// Owned by configuration; the integration core only reads it.
type PrintfulStore struct {
	ID              string `mapstructure:"id"`
	Label           string `mapstructure:"label"`
	APIKey          string `mapstructure:"api_key"`
	CommerceStoreID string `mapstructure:"commerce_store_id"`
	// Currency is the store's billing currency; item prices are converted
	// into it when it differs from the order currency.
	Currency        string         `mapstructure:"currency"`
	ProductBundle   string         `mapstructure:"product_bundle"`
	VariationBundle string         `mapstructure:"variation_bundle"`
	AttributeMap    []MappingEntry `mapstructure:"attribute_mapping"`
	SyncOrders      bool           `mapstructure:"sync_orders"`
	DraftOrders     bool           `mapstructure:"draft_orders"`
	Webhooks        []string       `mapstructure:"webhooks"`
}

// MappingEntry maps a Printful variant parameter (or "image") to a local
// variation field name. Order matters: entries are applied in sequence.
type MappingEntry struct {
	Source string `mapstructure:"source"`
	Field  string `mapstructure:"field"`
}

type AssetsConfig struct {
	// Directory is the base path variant preview images are stored under.
	Directory string
	// Scheme is recorded on stored asset paths, e.g. "public".
	Scheme string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "commerce"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Printful: PrintfulConfig{
			BaseURL:    getEnvOrViper("PRINTFUL_API_BASE_URL", "https://api.printful.com/"),
			PublicURL:  getEnvOrViper("PUBLIC_URL", ""),
			StoresFile: getEnvOrViper("PRINTFUL_STORES_FILE", "stores.yaml"),
		},
		Assets: AssetsConfig{
			Directory: getEnvOrViper("ASSETS_DIR", "assets/printful"),
			Scheme:    getEnvOrViper("ASSETS_SCHEME", "public"),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	stores, err := loadStores(cfg.Printful.StoresFile)
	if err != nil {
		return nil, err
	}
	cfg.Printful.Stores = stores

	return cfg, nil
}

// loadStores reads the Printful store bindings from a YAML file and
// validates them. At most one store may bind a given product bundle.
func loadStores(path string) ([]PrintfulStore, error) {
	if _, err := os.Stat(path); err != nil {
		// No stores file means no stores configured yet.
		return nil, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading stores file %s: %w", path, err)
	}

	var stores []PrintfulStore
	if err := v.UnmarshalKey("stores", &stores); err != nil {
		return nil, fmt.Errorf("error parsing stores file %s: %w", path, err)
	}

	bundles := make(map[string]string)
	for _, store := range stores {
		if store.ID == "" {
			return nil, fmt.Errorf("printful store with empty id in %s", path)
		}
		if store.APIKey == "" {
			return nil, fmt.Errorf("printful store %s has no api_key", store.ID)
		}
		if store.ProductBundle == "" {
			return nil, fmt.Errorf("printful store %s has no product_bundle", store.ID)
		}
		if other, ok := bundles[store.ProductBundle]; ok {
			return nil, fmt.Errorf("product bundle %q bound by both %s and %s", store.ProductBundle, other, store.ID)
		}
		bundles[store.ProductBundle] = store.ID
	}

	return stores, nil
}

// StoreByID returns the Printful store with the given ID, if configured.
func (c PrintfulConfig) StoreByID(id string) (PrintfulStore, bool) {
	for _, store := range c.Stores {
		if store.ID == id {
			return store, true
		}
	}
	return PrintfulStore{}, false
}

// StoreByBundle returns the Printful store bound to the given product
// bundle, if any.
func (c PrintfulConfig) StoreByBundle(bundle string) (PrintfulStore, bool) {
	for _, store := range c.Stores {
		if store.ProductBundle == bundle {
			return store, true
		}
	}
	return PrintfulStore{}, false
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
