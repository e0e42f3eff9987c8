package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"reporting-service/infrastructure/logger"

	"github.com/spf13/viper"
)

const (
	DefaultPort            = 10002
	DefaultVideoAPIURL     = "http://localhost:3000/api"
	DefaultVideoAPITimeout = 30
)

type Config struct {
	App         App         `json:"app"`
	VideoAPI    VideoAPI    `json:"videoApi"`
	RedisClient RedisClient `json:"redisClient"`
	Logger      Logger      `json:"logger"`
	Cors        Cors        `json:"cors"`
}

type App struct {
	Port int    `json:"port"`
	Mode string `json:"mode"`
}

// VideoAPI configures the outbound catalog API client.
type VideoAPI struct {
	BaseURL        string `json:"baseUrl"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
	Header         Header `json:"header"`
}

type Header struct {
	Accept    string `json:"accept"`
	UserAgent string `json:"userAgent"`
}

type RedisClient struct {
	Host       string `json:"host"`
	Port       string `json:"port"`
	Password   string `json:"password"`
	Username   string `json:"username"`
	DB         int    `json:"db"`
	TTLSeconds int    `json:"ttlSeconds"`
}

type Logger struct {
	Format string `json:"format"`
	Level  string `json:"level"`
}

type Cors struct {
	AllowOrigins []string `json:"allowOrigins"`
}

var C Config

func init() {
	// Load env from files (non-destructive; OS env still has precedence)
	LoadEnvFromFile("config.env", ".env")
	LoadConfig()
	initApp(&C)
	initVideoAPI(&C)
	initRedis(&C)
	initLogger(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			// Config file was found but another error was produced
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initApp(C *Config) {
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = DefaultPort
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		C.App.Mode = v
	}
	if len(C.Cors.AllowOrigins) == 0 {
		C.Cors.AllowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
}

func initVideoAPI(C *Config) {
	C.VideoAPI.BaseURL = getConfigValue(C.VideoAPI.BaseURL, "NODE_API_URL", DefaultVideoAPIURL)
	C.VideoAPI.BaseURL = strings.TrimRight(C.VideoAPI.BaseURL, "/")
	if v := os.Getenv("NODE_API_TIMEOUT"); v != "" {
		if t, err := strconv.Atoi(v); err == nil {
			C.VideoAPI.TimeoutSeconds = t
		}
	}
	if C.VideoAPI.TimeoutSeconds <= 0 {
		C.VideoAPI.TimeoutSeconds = DefaultVideoAPITimeout
	}
	if C.VideoAPI.Header.Accept == "" {
		C.VideoAPI.Header.Accept = "application/json"
	}
	if C.VideoAPI.Header.UserAgent == "" {
		C.VideoAPI.Header.UserAgent = "reporting-service"
	}
}

func initRedis(C *Config) {
	C.RedisClient.Host = getConfigValue(C.RedisClient.Host, "REDIS_HOST", "")
	C.RedisClient.Port = getConfigValue(C.RedisClient.Port, "REDIS_PORT", "6379")
	C.RedisClient.Password = getConfigValue(C.RedisClient.Password, "REDIS_PASSWORD", "")
	if v := os.Getenv("REDIS_TTL_SECONDS"); v != "" {
		if t, err := strconv.Atoi(v); err == nil {
			C.RedisClient.TTLSeconds = t
		}
	}
	// A non-positive TTL disables the catalog cache
	if C.RedisClient.TTLSeconds < 0 {
		C.RedisClient.TTLSeconds = 0
	}
}

func initLogger(C *Config) {
	C.Logger.Format = getConfigValue(C.Logger.Format, "LOG_FORMAT", "json")
	C.Logger.Level = getConfigValue(C.Logger.Level, "LOG_LEVEL", "debug")
}

// CacheEnabled reports whether the gateway cache should be wired.
func (c Config) CacheEnabled() bool {
	return c.RedisClient.Host != "" && c.RedisClient.TTLSeconds > 0
}

// getConfigValue gets value from environment first, then config, then default
func getConfigValue(configValue, envKey, defaultValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if configValue != "" {
		return configValue
	}
	return defaultValue
}
