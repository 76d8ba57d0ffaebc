package config

import (
	"sync/atomic"
)

var configValue atomic.Value

func GetConfig() *Config {
	return configValue.Load().(*Config)
}

func SetConfig(cfg *Config) {
	configValue.Store(cfg)
}

type Config struct {
	Version     string          `mapstructure:"version"`
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Weather     WeatherConfig   `mapstructure:"weather"`
	Location    LocationConfig  `mapstructure:"location"`
	Store       StoreConfig     `mapstructure:"store"`
	Logging     LoggingConfig   `mapstructure:"logging"`
	Telemetry   TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Host         string `mapstructure:"host"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

// WeatherConfig configures the OpenWeatherMap upstream. APIKey is the
// only required field for real deployments; leaving it empty makes the
// provider reject every request, which surfaces as an upstream error.
type WeatherConfig struct {
	BaseURL string `mapstructure:"base_url"`
	GeoURL  string `mapstructure:"geo_url"`
	TileURL string `mapstructure:"tile_url"`
	APIKey  string `mapstructure:"api_key"`
	Lang    string `mapstructure:"lang"`
	Timeout int    `mapstructure:"timeout"`
}

// LocationConfig gates the device-location path. Allow mirrors the
// runtime permission grant: when false, location resolution fails with
// a permission error before any network call.
type LocationConfig struct {
	Allow   bool   `mapstructure:"allow"`
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"`
}

// StoreConfig selects the key-value backend. "memory" keeps favorites
// and the last location for the process lifetime only.
type StoreConfig struct {
	Backend string      `mapstructure:"backend"`
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Version:     "1.0.0",
		Environment: "development",
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  60,
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.openweathermap.org/data/2.5",
			GeoURL:  "https://api.openweathermap.org/geo/1.0",
			TileURL: "https://tile.openweathermap.org/map",
			APIKey:  "",
			Lang:    "es",
			Timeout: 10,
		},
		Location: LocationConfig{
			Allow:   true,
			BaseURL: "http://ip-api.com/json",
			Timeout: 10,
		},
		Store: StoreConfig{
			Backend: "memory",
			Redis: RedisConfig{
				Host:     "localhost",
				Port:     6379,
				Password: "",
				Database: 0,
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "",
		},
		Telemetry: TelemetryConfig{
			Enabled:  false,
			Endpoint: "tempo:4317",
		},
	}
}
