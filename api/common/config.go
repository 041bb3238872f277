package common

import (
	"github.com/spf13/viper"
)

// Config api configuration
type Config struct {
	Port           int   `mapstructure:"port"`
	ReadTimeout    int   `mapstructure:"readTimeout"`
	WriteTimeout   int   `mapstructure:"writeTimeout"`
	ProxyCount     int   `mapstructure:"proxyCount"`
	MaxContentSize int64 `mapstructure:"maxContentSize"`
}

// InitConfig initialize api configuration
func InitConfig() (*Config, error) {
	config := &Config{}
	subv := viper.Sub("api")
	err := subv.Unmarshal(&config)
	return config, err
}
