package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/poolwatch/poolfee-backend/internal/types/environments"
)

type AppConfig struct {
	Environment environments.Environment
	ApiServer   ApiServerConfig
	Postgres    DBConnection
	Etherscan   EtherscanConfig
	Binance     BinanceConfig
	Indexer     IndexerConfig
}

type ApiServerConfig struct {
	Port           string
	AllowedOrigins string
}

type DBConnection struct {
	Host string
	Port string
	User string
	Name string
	Pass string

	SSLMode string
}

type EtherscanConfig struct {
	APIURL string
	APIKey string

	// MaxPages bounds the fetch-all-pages loop so a misbehaving upstream
	// cannot spin it forever.
	MaxPages int
}

type BinanceConfig struct {
	APIURL string
}

type IndexerConfig struct {
	// Period is a duration string consumed by the cron scheduler, e.g. "30s".
	Period string
	// LookbackSeconds caps how far back one indexing window may reach.
	LookbackSeconds int64
	// Pool is the pool the background indexer ingests.
	Pool string
}

func New() *AppConfig {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// this will not override env variables if they already exist
	godotenv.Load(".env." + env)

	return &AppConfig{
		Environment: environments.Environment(env),
		ApiServer: ApiServerConfig{
			Port:           envVarWithDefault("API_PORT", "5000"),
			AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		},
		Postgres: DBConnection{
			Host:    os.Getenv("DB_HOST"),
			Port:    os.Getenv("DB_PORT"),
			User:    os.Getenv("DB_USER"),
			Name:    os.Getenv("DB_NAME"),
			Pass:    os.Getenv("DB_PASS"),
			SSLMode: os.Getenv("DB_SSL_MODE"),
		},
		Etherscan: EtherscanConfig{
			APIURL:   envVarWithDefault("ETHERSCAN_API_URL", "https://api.etherscan.io/api"),
			APIKey:   os.Getenv("ETHERSCAN_API_KEY"),
			MaxPages: envVarAtoiWithDefault("ETHERSCAN_MAX_PAGES", 1000),
		},
		Binance: BinanceConfig{
			APIURL: envVarWithDefault("BINANCE_API_URL", "https://api.binance.com/api/v3/klines"),
		},
		Indexer: IndexerConfig{
			Period:          envVarWithDefault("INDEX_PERIOD", "30s"),
			LookbackSeconds: int64(envVarAtoiWithDefault("INDEX_LOOKBACK_SECONDS", 300)),
			Pool:            envVarWithDefault("INDEX_POOL", "WETH-USDC"),
		},
	}
}

func envVarWithDefault(envName, defaultValue string) string {
	value := os.Getenv(envName)
	if value == "" {
		return defaultValue
	}

	return value
}

func envVarAtoiWithDefault(envName string, defaultValue int) int {
	valueStr := os.Getenv(envName)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
