package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultLogLevel      = "info"
	defaultEnv           = "local"
	defaultConfigDir     = ".fluiddiary"
	defaultDebounce      = 2
)

type Config struct {
	Env             string `mapstructure:"app_env"`
	ServerAddress   string `mapstructure:"server_address"`
	LogLevel        string `mapstructure:"log_level"`
	ConfigDir       string `mapstructure:"config_dir"`
	DataPath        string `mapstructure:"data_path"`
	RoomPath        string `mapstructure:"room_path"`
	ShareBaseURL    string `mapstructure:"share_base_url"`
	DebounceSeconds int    `mapstructure:"sync_debounce_seconds"`
	EnableTLS       bool   `mapstructure:"enable_tls"`
}

// MustLoad reads the client configuration from the environment, with an
// optional .env file next to the binary or one directory up.
func MustLoad() *Config {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("could not load .env file: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("SYNC_DEBOUNCE_SECONDS", defaultDebounce)
	viper.SetDefault("ENABLE_TLS", false)
	viper.SetDefault("SHARE_BASE_URL", "")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		fmt.Printf("could not create config directory: %v\n", err)
	}

	config := &Config{
		Env:             viper.GetString("APP_ENV"),
		ServerAddress:   viper.GetString("SERVER_ADDRESS"),
		LogLevel:        viper.GetString("LOG_LEVEL"),
		ConfigDir:       configDir,
		DataPath:        filepath.Join(configDir, "diary.db"),
		RoomPath:        filepath.Join(configDir, "room"),
		ShareBaseURL:    viper.GetString("SHARE_BASE_URL"),
		DebounceSeconds: viper.GetInt("SYNC_DEBOUNCE_SECONDS"),
		EnableTLS:       viper.GetBool("ENABLE_TLS"),
	}

	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("configuration error: %v", err))
	}

	return config
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address must not be empty")
	}
	if c.DebounceSeconds < 1 {
		return fmt.Errorf("sync_debounce_seconds must be at least 1")
	}
	return nil
}

// ShareBase is the URL join links are built on. Unless overridden it points
// at the sync server itself.
func (c *Config) ShareBase() string {
	if c.ShareBaseURL != "" {
		return c.ShareBaseURL
	}
	scheme := "http://"
	if c.EnableTLS {
		scheme = "https://"
	}
	return scheme + c.ServerAddress + "/sync"
}
