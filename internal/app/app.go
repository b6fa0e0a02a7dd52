package app

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"shopease-main/internal/shopping_cart"
)

const (
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type Config struct {
	CfgDB        ConfigDB      `yaml:"db"`
	CfgRedis     ConfigRedis   `yaml:"redis"`
	CfgKafka     ConfigKafka   `yaml:"kafka"`
	Store        string        `yaml:"store"`
	CartKey      string        `yaml:"cart_key"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	ServerPort   string        `yaml:"srv_port"`
	StoreTimeout time.Duration `yaml:"store_timeout"`
	MaxSessions  int           `yaml:"max_sessions"`
	SessionTTL   time.Duration `yaml:"session_ttl"`
}

type ConfigDB struct {
	Login    string `yaml:"login"`
	Password string `yaml:"password"`
	Port     uint   `yaml:"port"`
	Database string `yaml:"database"`
	Host     string `yaml:"host"`
}

type ConfigRedis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ConfigKafka пустой список брокеров отключает отправку заказов
type ConfigKafka struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

func NewConfig(configPath string) (*Config, error) {
	cfg, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var c Config
	err = yaml.Unmarshal(cfg, &c)
	if err != nil {
		return nil, err
	}

	c.setDefaults()

	return &c, nil
}

func (c *Config) setDefaults() {
	if c.Store == "" {
		c.Store = StoreRedis
	}
	if c.CartKey == "" {
		c.CartKey = shopping_cart.DefaultKey
	}
	if c.ServerPort == "" {
		c.ServerPort = ":8080"
	}
	if c.CfgRedis.Addr == "" {
		c.CfgRedis.Addr = "redis:6379"
	}
	if c.CfgKafka.Topic == "" {
		c.CfgKafka.Topic = "orders"
	}
	if c.StoreTimeout == 0 {
		c.StoreTimeout = 3 * time.Second
	}
	if c.MaxSessions == 0 {
		c.MaxSessions = shopping_cart.DefaultMaxSessions
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = shopping_cart.DefaultIdleTTL
	}
}
