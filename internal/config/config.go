package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	AppEnv   string `mapstructure:"APP_ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	Store  StoreConfig  `mapstructure:",squash"`
	Import ImportConfig `mapstructure:",squash"`
}

type StoreConfig struct {
	Driver        string `mapstructure:"STORE_DRIVER"`
	PostgresURL   string `mapstructure:"POSTGRES_URL"`
	SQLitePath    string `mapstructure:"SQLITE_PATH"`
	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`
}

type ImportConfig struct {
	StudentsPath     string `mapstructure:"IMPORT_STUDENTS_PATH"`
	TransactionsPath string `mapstructure:"IMPORT_TRANSACTIONS_PATH"`
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

var keys = map[string]interface{}{
	"PORT":                     "5000",
	"APP_ENV":                  "development",
	"LOG_LEVEL":                "info",
	"STORE_DRIVER":             DriverPostgres,
	"POSTGRES_URL":             "",
	"SQLITE_PATH":              "schoolpay.db",
	"MONGO_URI":                "",
	"MONGO_DATABASE":           "schoolpay",
	"IMPORT_STUDENTS_PATH":     "data/student.csv",
	"IMPORT_TRANSACTIONS_PATH": "data/transactions.csv",
}

// Load reads config.env / .env when present, then the process environment.
// Environment variables always win over the files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{"config.env", ".env"}
	}
	for _, f := range files {
		// godotenv.Load never overrides variables that are already set.
		_ = godotenv.Load(f)
	}

	v := viper.New()
	for k, def := range keys {
		v.SetDefault(k, def)
		if err := v.BindEnv(k); err != nil {
			return Config{}, err
		}
	}
	// CONN_STR is the historical name of the Mongo connection string.
	if err := v.BindEnv("MONGO_URI", "MONGO_URI", "CONN_STR"); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverPostgres:
		if c.Store.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL must be set when STORE_DRIVER=%s", DriverPostgres)
		}
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must be set when STORE_DRIVER=%s", DriverSQLite)
		}
	case DriverMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("MONGO_URI (or CONN_STR) must be set when STORE_DRIVER=%s", DriverMongo)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want %s, %s or %s)", c.Store.Driver, DriverPostgres, DriverSQLite, DriverMongo)
	}
	return nil
}
