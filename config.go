package main

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds the server settings. Precedence: flags > env
// (CSVINSIGHT_*) > config file > defaults.
type Config struct {
	Addr        string `mapstructure:"addr"`
	MaxUploadMB int64  `mapstructure:"max_upload_mb"`
	MaxRows     int    `mapstructure:"max_rows"`
}

func (c Config) MaxUploadBytes() int64 { return c.MaxUploadMB << 20 }

func loadConfig(cfgFile string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CSVINSIGHT")
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("max_upload_mb", 10)
	v.SetDefault("max_rows", 10000)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("csvinsight")
		v.SetConfigType("yaml")
		// the implicit file is optional, but a broken one is an error
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, err
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}
