// Package config reads the server configuration from command-line flags.
// Flag defaults come from VITRINA_* environment variables, which may be set
// in a .env file in the working directory.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Defaults.
const (
	DefaultAddr           = ":8080"
	DefaultStore          = StoreSQLite
	DefaultDBPath         = "vitrina.sqlite3"
	DefaultRedisURL       = "redis://localhost:6379/0"
	DefaultGatewayTimeout = 5 * time.Second
)

// ErrHelp is returned when -h or -help was given.
var ErrHelp = flag.ErrHelp

// Config holds the server configuration.
type Config struct {
	Addr           string
	Store          string
	DBPath         string
	RedisURL       string
	LogPath        string
	GatewayTimeout time.Duration
}

const usage = `Usage: vitrina [flags]

Flags:
  -a, -addr <host:port>        listen address (default: :8080)
  -s, -store <name>            item store: sqlite, redis or memory (default: sqlite)
  -d, -db <path>               SQLite database path (default: vitrina.sqlite3)
  -r, -redis <url>             Redis URL (default: redis://localhost:6379/0)
  -l, -log <path>              log file path (default: no file, stdout/stderr only)
  -t, -gateway-timeout <dur>   notification gateway call timeout (default: 5s)
  -h, -help                    show this help and exit

Every flag defaults to its environment variable (VITRINA_ADDR, VITRINA_STORE,
VITRINA_DB, VITRINA_REDIS_URL, VITRINA_LOG, VITRINA_GATEWAY_TIMEOUT), which may
also be set in a .env file.
`

// Load parses args (without the program name). Usage and flag errors are
// written to out.
func Load(args []string, out io.Writer) (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	timeout, err := getEnvDuration("VITRINA_GATEWAY_TIMEOUT", DefaultGatewayTimeout)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	fs := flag.NewFlagSet("vitrina", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { fmt.Fprint(out, usage) }

	addr := getEnv("VITRINA_ADDR", DefaultAddr)
	fs.StringVar(&cfg.Addr, "addr", addr, "")
	fs.StringVar(&cfg.Addr, "a", addr, "")

	storeName := getEnv("VITRINA_STORE", DefaultStore)
	fs.StringVar(&cfg.Store, "store", storeName, "")
	fs.StringVar(&cfg.Store, "s", storeName, "")

	dbPath := getEnv("VITRINA_DB", DefaultDBPath)
	fs.StringVar(&cfg.DBPath, "db", dbPath, "")
	fs.StringVar(&cfg.DBPath, "d", dbPath, "")

	redisURL := getEnv("VITRINA_REDIS_URL", DefaultRedisURL)
	fs.StringVar(&cfg.RedisURL, "redis", redisURL, "")
	fs.StringVar(&cfg.RedisURL, "r", redisURL, "")

	logPath := getEnv("VITRINA_LOG", "")
	fs.StringVar(&cfg.LogPath, "log", logPath, "")
	fs.StringVar(&cfg.LogPath, "l", logPath, "")

	fs.DurationVar(&cfg.GatewayTimeout, "gateway-timeout", timeout, "")
	fs.DurationVar(&cfg.GatewayTimeout, "t", timeout, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks option values that flag parsing cannot.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreSQLite, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("invalid store %q: must be sqlite, redis or memory", c.Store)
	}
	if c.GatewayTimeout <= 0 {
		return fmt.Errorf("invalid gateway timeout %s: must be positive", c.GatewayTimeout)
	}
	if c.Addr == "" {
		return fmt.Errorf("listen address required")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}
