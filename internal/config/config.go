package config

import (
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Config carries every runtime setting. It is built once at startup and
// handed to the components that need it; nothing mutates it afterwards.
type Config struct {
	Port        string `env:"PORT,default=3000"`
	UploadDir   string `env:"UPLOAD_DIR,default=./uploads"`
	UploadToken string `env:"UPLOAD_TOKEN"`
	PublicBase  string `env:"PUBLIC_BASE"`
	MaxAgeHours int    `env:"MAX_AGE_HOURS,default=24"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env file is normal outside development.
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MaxAge returns the retention threshold as a duration.
func (c *Config) MaxAge() time.Duration {
	return time.Duration(c.MaxAgeHours) * time.Hour
}
