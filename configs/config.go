package configs

import (
	"errors"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Gangsta686/HabitForgeApp2/internal/logger"
)

type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	Store struct {
		SnapshotPath string `mapstructure:"snapshot_path"`
		HistoryPath  string `mapstructure:"history_path"`
	} `mapstructure:"store"`
	JWT struct {
		SECRET string `mapstructure:"secret"`
	} `mapstructure:"jwt"`
	Demo struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"demo"`
}

var AppConfig Config

func LoadConfig() {
	viper.AddConfigPath("./configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("store.snapshot_path", "habitforge.db")
	viper.SetDefault("store.history_path", "habitforge_history.db")

	viper.AutomaticEnv()

	var fileLookupError viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil {
		if errors.As(err, &fileLookupError) {
			logger.Log.Fatal("config file not found", zap.Error(err))
		}
		logger.Log.Fatal("failed to read config", zap.Error(err))
	}

	viper.Unmarshal(&AppConfig)
}
