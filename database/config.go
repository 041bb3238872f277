package database

import (
	"time"

	"github.com/spf13/viper"
)

// DBConfig mysql database configuration
type DBConfig struct {
	Type         string        `mapstructure:"type"`
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	UserName     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	MaxLifetime  time.Duration `mapstructure:"maxLifetime"`
	MaxOpenConns int           `mapstructure:"maxOpenConns"`
	MaxIdleConns int           `mapstructure:"maxIdleConns"`
}

// Config master / replica pair
type Config struct {
	Master  *DBConfig `mapstructure:"master"`
	Replica *DBConfig `mapstructure:"replica"`
}

// InitConfig initialize database configuration
func InitConfig() (*Config, error) {
	config := &Config{}
	subv := viper.Sub("database")
	err := subv.Unmarshal(&config)
	return config, err
}
