package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the flights aggregator.
// It is built once at startup and never mutated afterwards.
//
// Fields:
// - Env: The current environment (local, development, production).
// - Port: The port of the HTTP server.
// - APIKey: The flight provider API key (required).
// - Workers: The number of concurrent weather lookups per request.
// - RadiusMiles: The search radius around the requested point.
// - RequestTimeout: The timeout of every upstream request.
// - Flight, Weather: Upstream provider settings.
// - AllowedOrigins: Origins permitted to call /flights cross-origin.
type Config struct {
	Env            string         // Env is the current environment: local, dev, prod.
	Port           int            // Port is the HTTP server port.
	APIKey         string         // The API key for the flight-search provider.
	Workers        int            // The number of concurrent weather lookups.
	RadiusMiles    float64        // Search radius in miles.
	RequestTimeout time.Duration  // Timeout of a single upstream request.
	Flight         ProviderConfig // Flight-search provider settings.
	Weather        WeatherConfig  // Weather provider settings.
	AllowedOrigins []string       // CORS origins for /flights (cors.allowed_origins).
}

// ProviderConfig holds the connection settings of an upstream provider.
type ProviderConfig struct {
	BaseURL   string // BaseURL of the provider API.
	RateLimit int    // RateLimit in requests per second.
}

// WeatherConfig extends ProviderConfig with the coordinate every weather lookup uses.
type WeatherConfig struct {
	ProviderConfig

	Latitude  float64 // Latitude of the weather reference point.
	Longitude float64 // Longitude of the weather reference point.
}

const (
	envPrefix      = "OVERHEAD"
	configFileEnv  = "OVERHEAD_CONFIG"
	apiKeyEnv      = "APIKEY"
	defaultTimeout = "5s"
)

// MustLoad loads the configuration from .env, the environment and an optional YAML file
// named by OVERHEAD_CONFIG. It panics if the configuration is unusable.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("api_key", apiKeyEnv); err != nil {
		panic("failed to bind APIKEY environment variable")
	}

	if path := strings.TrimSpace(v.GetString("config")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	interval, err := time.ParseDuration(v.GetString("request_timeout"))
	if err != nil || interval <= 0 {
		panic("failed to parse request timeout from configuration")
	}

	port, err := parseInt(v, "port")
	if err != nil {
		panic("failed to parse port for HTTP server from configuration")
	}

	workers, err := parseInt(v, "workers")
	if err != nil || workers < 1 {
		panic("failed to parse workers from configuration, must be a positive integer")
	}

	radius, err := parseFloat(v, "radius_miles")
	if err != nil || radius <= 0 {
		panic("failed to parse search radius from configuration, must be a positive number")
	}

	flightRate, err := parseInt(v, "flight.rate_limit")
	if err != nil {
		panic("failed to parse flight rate limit from configuration")
	}

	weatherRate, err := parseInt(v, "weather.rate_limit")
	if err != nil {
		panic("failed to parse weather rate limit from configuration")
	}

	weatherLat, err := parseFloat(v, "weather.latitude")
	if err != nil || weatherLat < -90 || weatherLat > 90 {
		panic("failed to parse weather latitude from configuration")
	}

	weatherLon, err := parseFloat(v, "weather.longitude")
	if err != nil || weatherLon < -180 || weatherLon > 180 {
		panic("failed to parse weather longitude from configuration")
	}

	apiKey := strings.TrimSpace(v.GetString("api_key"))
	if apiKey == "" {
		panic("APIKEY is required")
	}

	return &Config{
		Env:            v.GetString("env"),
		Port:           port,
		APIKey:         apiKey,
		Workers:        workers,
		RadiusMiles:    radius,
		RequestTimeout: interval,
		Flight: ProviderConfig{
			BaseURL:   v.GetString("flight.base_url"),
			RateLimit: flightRate,
		},
		Weather: WeatherConfig{
			ProviderConfig: ProviderConfig{
				BaseURL:   v.GetString("weather.base_url"),
				RateLimit: weatherRate,
			},
			Latitude:  weatherLat,
			Longitude: weatherLon,
		},
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("config", "")
	v.SetDefault("env", "production")
	v.SetDefault("port", "5000")
	v.SetDefault("workers", "10")
	v.SetDefault("radius_miles", "5")
	v.SetDefault("request_timeout", defaultTimeout)
	v.SetDefault("flight.base_url", "https://aeroapi.flightaware.com/aeroapi/")
	v.SetDefault("flight.rate_limit", "5")
	v.SetDefault("weather.base_url", "https://weather-microservice.onrender.com")
	v.SetDefault("weather.rate_limit", "10")
	v.SetDefault("weather.latitude", "33.6541267")
	v.SetDefault("weather.longitude", "-84.4171372")
	v.SetDefault("cors.allowed_origins", "*")
}
