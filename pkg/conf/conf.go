// Package conf contains utility functions for loading and parsing configuration files.
package conf

import (
	"os"

	"github.com/spf13/viper"
)

// MixpanelConf describes a default configuration for the mixpanel API.
type MixpanelConf struct {
	Token          string `mapstructure:"token"`
	Host           string `mapstructure:"host"`
	TrackEndpoint  string `mapstructure:"track_endpoint"`
	EngageEndpoint string `mapstructure:"engage_endpoint"`
	TestOnly       bool   `mapstructure:"test_only"`
	Verbose        bool   `mapstructure:"verbose"`
	Timeout        int    `mapstructure:"timeout"`
}

// RedisConf describes a default configuration for the redis.
type RedisConf struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Password   string `mapstructure:"password"`
	Database   int    `mapstructure:"database"`
	DisableTLS bool   `mapstructure:"disable_tls"`
}

// AddrConf describes an address to listen on.
type AddrConf struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Load opens and parses a configuration file.
func Load(file string, conf interface{}) error {
	_, err := os.Stat(file)
	if err != nil {
		return err
	}

	viper.SetConfigFile(file)
	viper.SetConfigType("toml")

	err = viper.ReadInConfig()
	if err != nil {
		return err
	}

	err = viper.GetViper().Unmarshal(conf)
	if err != nil {
		return err
	}

	return nil
}
