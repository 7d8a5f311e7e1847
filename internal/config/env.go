package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// The store password is never read from the environment; see PromptForPassword.
type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	SolanaRPCURL string `envconfig:"SOLANA_RPC_URL" default:"https://api.devnet.solana.com"`

	StoreDriver  string `envconfig:"STORE_DRIVER" default:"bolt"`
	StorePath    string `envconfig:"STORE_PATH" default:"keypairs.db"`
	RedisAddr    string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	StoreEncrypt bool   `envconfig:"STORE_ENCRYPT" default:"false"`

	ConfirmTimeout      time.Duration   `envconfig:"CONFIRM_TIMEOUT" default:"30s"`
	ConfirmPollInterval time.Duration   `envconfig:"CONFIRM_POLL_INTERVAL" default:"500ms"`
	FaucetCap           decimal.Decimal `envconfig:"FAUCET_CAP" default:"2"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// Validate checks values envconfig cannot check on its own
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case "bolt", "leveldb", "redis", "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q: expected bolt, leveldb, redis or memory", c.StoreDriver)
	}
	if c.ConfirmTimeout <= 0 {
		return errors.New("CONFIRM_TIMEOUT must be positive")
	}
	if c.ConfirmPollInterval <= 0 {
		return errors.New("CONFIRM_POLL_INTERVAL must be positive")
	}
	if !c.FaucetCap.IsPositive() {
		return errors.New("FAUCET_CAP must be positive")
	}
	return nil
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// PromptForPassword reads a password from the terminal without echoing it.
// The caller owns the returned slice and must zero it after use.
func PromptForPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	password := make([]byte, len(raw))
	copy(password, raw)
	clear(raw)
	return password, nil
}
