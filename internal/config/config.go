package config

import (
	"fmt"
	"os"
	"reflect"
	"sync"
)

var cfg *Config
var once sync.Once

// Config is the configuration for the application
type Config struct {
	Server
	Mongo
	Auth
	Gateway
	Logging
}

// Server is the configuration for the HTTP server
type Server struct {
	Port        string `env:"PORT" envDefault:"8080"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
}

// Addr returns the listen address for the server
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%s", "0.0.0.0", s.Port)
}

// Mongo is the configuration for the document store
type Mongo struct {
	URI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"MONGO_DB" envDefault:"schoolpay"`
}

// Auth holds the service-wide token secret
type Auth struct {
	JWTSecret string `env:"JWT_SECRET" envDefault:""`
}

// Gateway is the configuration for the external payment gateway
type Gateway struct {
	SigningKey  string `env:"PG_KEY" envDefault:""`
	BaseURI     string `env:"PG_URI" envDefault:""`
	CallbackURL string `env:"CALLBACK_URL" envDefault:""`
	APIKey      string `env:"PAYMENT_API_KEY" envDefault:""`
}

// Logging selects log sinks
type Logging struct {
	File    string `env:"LOG_FILE" envDefault:""`
	Console string `env:"LOG_CONSOLE" envDefault:"true"`
}

// ConsoleEnabled reports whether console output is requested
func (l Logging) ConsoleEnabled() bool {
	return l.Console != "false"
}

// Load loads the configuration from environment variables
func Load() *Config {
	once.Do(func() {
		cfg = &Config{}
		cfgType := reflect.TypeOf(*cfg)
		cfgValue := reflect.ValueOf(cfg).Elem()

		for i := 0; i < cfgType.NumField(); i++ {
			field := cfgType.Field(i)
			fieldValue := cfgValue.Field(i)
			for j := 0; j < field.Type.NumField(); j++ {
				subField := field.Type.Field(j)
				envVar := subField.Tag.Get("env")
				envDefault := subField.Tag.Get("envDefault")
				fieldValue.Field(j).SetString(getEnv(envVar, envDefault))
			}
		}
	})

	return cfg
}

// getEnv retrieves the value of the environment variable named by the key or returns the defaultValue if not set
func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = defaultValue
	}
	return value
}
