package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings. Values come from the environment,
// optionally seeded from a .env file in development.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	MongoURI string `env:"MONGO_URI,required"`
	MongoDB  string `env:"MONGO_DB" envDefault:"alumnet"`

	JWTSecret string        `env:"JWT_SECRET,required"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"168h"`

	OTPTTL time.Duration `env:"OTP_TTL" envDefault:"10m"`

	SMTPHost string `env:"SMTP_HOST"`
	SMTPPort string `env:"SMTP_PORT"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`

	// SweepInterval controls how often expired events/jobs and idle chat
	// sessions are deactivated.
	SweepInterval  time.Duration `env:"SWEEP_INTERVAL" envDefault:"10m"`
	SessionTimeout time.Duration `env:"CHAT_SESSION_TIMEOUT" envDefault:"30m"`
}

// App is the process-wide configuration, populated by Load.
var App Config

// Load reads .env (if present) and parses the environment into App.
func Load() error {
	_ = godotenv.Load()
	return env.Parse(&App)
}
