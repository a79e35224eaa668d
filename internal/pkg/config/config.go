package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is built once at startup and injected into component constructors;
// nothing reads the environment after Load returns.
type Config struct {
	Port        string `env:"PORT,         default=8080"`
	Env         string `env:"ENV,          default=development"`
	LogLevel    string `env:"LOG_LEVEL,    default=info"`
	TokenSecret string `env:"TOKEN_SECRET"`

	// Storage roots: credential records and audit trails live under
	// DataDir, tenant homes under HomesDir.
	DataDir  string `env:"DATA_DIR,  default=./data"`
	HomesDir string `env:"HOMES_DIR, default=./homes"`

	// Command policy. Deny wins over allow.
	AllowCommands []string `env:"ALLOW_COMMANDS, default=cat,date,echo,find,grep,head,ls,mkdir,pwd,sort,tail,touch,uniq,wc,whoami"`
	DenyCommands  []string `env:"DENY_COMMANDS,  default=chmod,chown,su,sudo"`

	// UserStore selects the ports.UserRepository implementation:
	// "file" (default) or "mongo".
	UserStore string `env:"USER_STORE, default=file"`

	Mongo    MongoConfig
	Throttle ThrottleConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=identity"`
}

// ThrottleConfig controls the optional Redis-backed login throttle; it is
// off unless Addr is set.
type ThrottleConfig struct {
	Addr        string        `env:"REDIS_ADDR"`
	DB          int           `env:"REDIS_DB,              default=0"`
	MaxFailures int64         `env:"THROTTLE_MAX_FAILURES, default=10"`
	Window      time.Duration `env:"THROTTLE_WINDOW,       default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
