package mongodatabase

import (
	"github.com/spf13/viper"
)

// DBConfig mongo database configuration
type DBConfig struct {
	Host   string `mapstructure:"host"`
	DBName string `mapstructure:"dbName"`
}

// InitConfig initialize mongo configuration
func InitConfig() (*DBConfig, error) {
	config := &DBConfig{}
	subv := viper.Sub("mongodb")
	err := subv.Unmarshal(&config)
	return config, err
}
