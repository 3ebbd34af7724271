package config

import "github.com/ilyakaznacheev/cleanenv"

// Config is the client's environment-driven configuration. The --server
// flag on the root command overrides ServerURL when set.
type Config struct {
	ServerURL string `env:"BANKING_SERVER_URL" env-default:"http://localhost:8080/api"`
	StateDir  string `env:"BANKING_STATE_DIR" env-default:""`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
