// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Cache      CacheConfig
	Simulation SimulationConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

type CacheConfig struct {
	Enabled          bool
	RedisURL         string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	ReportTTLSeconds int
}

// SimulationConfig carries the fixed dashboard constants and the default slider positions.
type SimulationConfig struct {
	DemandMean           float64
	HorizonDays          int
	OrderingCost         string
	AnnualHoldingCost    string
	Seed                 uint64
	ServiceLevel         float64
	DemandStdDev         float64
	LeadTimeDays         int
	StockoutCost         string
	SweepLow             float64
	SweepHigh            float64
	SweepPoints          int
	Workers              int
	MaxConcurrentReports int
}

var (
	once     sync.Once
	instance *Config
)

// Load reads the configuration once from .env and the process environment.
func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		v := viper.New()
		setDefaults(v)
		v.AutomaticEnv()

		instance = fromViper(v)
	})

	return instance
}

// Defaults returns the built-in configuration without reading the environment.
func Defaults() *Config {
	v := viper.New()
	setDefaults(v)
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_REPORT_TTL_SECONDS", 300)

	v.SetDefault("SIM_DEMAND_MEAN", 50)
	v.SetDefault("SIM_HORIZON_DAYS", 365)
	v.SetDefault("SIM_ORDERING_COST", "200.00")
	v.SetDefault("SIM_ANNUAL_HOLDING_COST", "2.00")
	v.SetDefault("SIM_SEED", 42)
	v.SetDefault("SIM_SERVICE_LEVEL", 95.0)
	v.SetDefault("SIM_DEMAND_STDDEV", 15)
	v.SetDefault("SIM_LEAD_TIME_DAYS", 5)
	v.SetDefault("SIM_STOCKOUT_COST", "10.0")
	v.SetDefault("SIM_SWEEP_LOW", 80.0)
	v.SetDefault("SIM_SWEEP_HIGH", 99.9)
	v.SetDefault("SIM_SWEEP_POINTS", 20)
	v.SetDefault("SIM_WORKERS", 4)
	v.SetDefault("SIM_MAX_CONCURRENT_REPORTS", 8)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			ReadTimeout:    v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: v.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Cache: CacheConfig{
			Enabled:          v.GetBool("CACHE_ENABLED"),
			RedisURL:         v.GetString("REDIS_URL"),
			RedisHost:        v.GetString("REDIS_HOST"),
			RedisPort:        v.GetString("REDIS_PORT"),
			RedisPassword:    v.GetString("REDIS_PASSWORD"),
			RedisDB:          v.GetInt("REDIS_DB"),
			ReportTTLSeconds: v.GetInt("CACHE_REPORT_TTL_SECONDS"),
		},
		Simulation: SimulationConfig{
			DemandMean:           v.GetFloat64("SIM_DEMAND_MEAN"),
			HorizonDays:          v.GetInt("SIM_HORIZON_DAYS"),
			OrderingCost:         v.GetString("SIM_ORDERING_COST"),
			AnnualHoldingCost:    v.GetString("SIM_ANNUAL_HOLDING_COST"),
			Seed:                 v.GetUint64("SIM_SEED"),
			ServiceLevel:         v.GetFloat64("SIM_SERVICE_LEVEL"),
			DemandStdDev:         v.GetFloat64("SIM_DEMAND_STDDEV"),
			LeadTimeDays:         v.GetInt("SIM_LEAD_TIME_DAYS"),
			StockoutCost:         v.GetString("SIM_STOCKOUT_COST"),
			SweepLow:             v.GetFloat64("SIM_SWEEP_LOW"),
			SweepHigh:            v.GetFloat64("SIM_SWEEP_HIGH"),
			SweepPoints:          v.GetInt("SIM_SWEEP_POINTS"),
			Workers:              v.GetInt("SIM_WORKERS"),
			MaxConcurrentReports: v.GetInt("SIM_MAX_CONCURRENT_REPORTS"),
		},
	}
}
