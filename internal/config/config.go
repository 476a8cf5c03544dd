package config

import (
	"errors"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// ServerConfig is a struct that contains configuration values for the server.
type ServerConfig struct {
	// Env is either development or production.
	Env string
	// AllowedOrigins is a list of URLs that the server will accept requests from.
	AllowedOrigins []string
	// Port is the port the server should run on.
	Port int
	// ShutdownTimeout bounds how long in-flight requests may run once the server is asked to stop.
	ShutdownTimeout time.Duration

	// FirebaseProjectID is the Google Cloud project that holds the Firestore database.
	FirebaseProjectID string
	// FirebaseCredentialsFile is the path to a service account key. If empty, application default credentials
	// are used.
	FirebaseCredentialsFile string

	// TokenSecret signs and verifies access tokens.
	TokenSecret string
	// TokenExpiration is how long an issued access token is valid.
	TokenExpiration time.Duration

	Payments PaymentConfig
}

// PaymentConfig selects and configures the payment gateway.
type PaymentConfig struct {
	// Provider is "stripe" or "midtrans".
	Provider  string
	SecretKey string
	// Currency is the ISO currency code payment intents are created in.
	Currency string
	// Production switches Midtrans from the sandbox to the production environment.
	Production bool
}

func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Env:             EnvDevelopment,
		AllowedOrigins:  []string{"http://localhost:5173"},
		Port:            5000,
		ShutdownTimeout: 10 * time.Second,
		TokenExpiration: 7 * 24 * time.Hour,
		Payments: PaymentConfig{
			Provider: "stripe",
			Currency: "usd",
		},
	}
}

// Load reads the configuration from the environment, after loading a .env file if one is present.
func Load() (*ServerConfig, error) {
	if err := godotenv.Load(); err != nil {
		glog.Infoln("No .env file found, using environment variables")
	}

	def := DefaultConfig()
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("ENV", def.Env)
	v.SetDefault("CLIENT_ORIGINS", strings.Join(def.AllowedOrigins, ","))
	v.SetDefault("PORT", def.Port)
	v.SetDefault("SHUTDOWN_TIMEOUT", def.ShutdownTimeout)
	v.SetDefault("TOKEN_TTL", def.TokenExpiration)
	v.SetDefault("PAYMENT_PROVIDER", def.Payments.Provider)
	v.SetDefault("PAYMENT_CURRENCY", def.Payments.Currency)

	cfg := &ServerConfig{
		Env:                     v.GetString("ENV"),
		AllowedOrigins:          splitAndTrim(v.GetString("CLIENT_ORIGINS")),
		Port:                    v.GetInt("PORT"),
		ShutdownTimeout:         v.GetDuration("SHUTDOWN_TIMEOUT"),
		FirebaseProjectID:       v.GetString("FIREBASE_PROJECT_ID"),
		FirebaseCredentialsFile: v.GetString("FIREBASE_CREDENTIALS_FILE"),
		TokenSecret:             v.GetString("ACCESS_TOKEN_SECRET"),
		TokenExpiration:         v.GetDuration("TOKEN_TTL"),
		Payments: PaymentConfig{
			Provider:   strings.ToLower(v.GetString("PAYMENT_PROVIDER")),
			SecretKey:  v.GetString("PAYMENT_SECRET_KEY"),
			Currency:   strings.ToLower(v.GetString("PAYMENT_CURRENCY")),
			Production: v.GetBool("MIDTRANS_PRODUCTION"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ServerConfig) validate() error {
	if c.TokenSecret == "" {
		return errors.New("ACCESS_TOKEN_SECRET is required")
	}
	if c.Port <= 0 {
		return errors.New("PORT must be a positive integer")
	}
	if c.TokenExpiration <= 0 {
		return errors.New("TOKEN_TTL must be a positive duration")
	}
	switch c.Payments.Provider {
	case "stripe", "midtrans":
	default:
		return errors.New("PAYMENT_PROVIDER must be stripe or midtrans")
	}
	return nil
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimRight(strings.TrimSpace(part), "/"); part != "" {
			out = append(out, part)
		}
	}
	return out
}
