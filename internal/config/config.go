package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Specs  SpecsConfig
	Sync   SyncConfig
	Deploy DeployConfig
	Logger LoggerConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// SpecsConfig controls which specifications are mounted at startup and where
// the schema mirror lives.
type SpecsConfig struct {
	Files   []string
	DataDir string
}

type SyncConfig struct {
	Remote string
	Ref    string
}

type DeployConfig struct {
	Cloud      string
	Stage      string
	LedgerPath string
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SPEC_FILES", "")
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("SYNC_REMOTE", "")
	v.SetDefault("SYNC_REF", "")
	v.SetDefault("DEPLOY_CLOUD", "aws")
	v.SetDefault("DEPLOY_STAGE", "dev")
	v.SetDefault("LEDGER_PATH", "deployments.db")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	// Env
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Specs: SpecsConfig{
			Files:   splitList(v.GetString("SPEC_FILES")),
			DataDir: v.GetString("DATA_DIR"),
		},
		Sync: SyncConfig{
			Remote: v.GetString("SYNC_REMOTE"),
			Ref:    v.GetString("SYNC_REF"),
		},
		Deploy: DeployConfig{
			Cloud:      v.GetString("DEPLOY_CLOUD"),
			Stage:      v.GetString("DEPLOY_STAGE"),
			LedgerPath: v.GetString("LEDGER_PATH"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	return cfg, nil
}

// splitList parses a comma separated env value into its non-empty entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
