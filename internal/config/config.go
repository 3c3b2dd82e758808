package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "./config/local.yaml"

type Config struct {
	Env         string `yaml:"env" env-default:"prod"`
	StoragePath string `yaml:"storage_path" env-default:"./data"`
	HTTPServer  `yaml:"http_server"`
	DBUser      string `yaml:"db_user" env-required:"true"`
	DBPassword  string `yaml:"db_password"`
	DBHost      string `yaml:"db_host" env-default:"localhost"`
	DBPort      int    `yaml:"db_port" env-default:"3306"`
	DBName      string `yaml:"db_name" env-required:"true"`
	ParseTime   bool   `yaml:"parse_time" env-default:"true"`

	StandardsFile string `yaml:"standards_file" env-default:"standards.json"`
	UnitsEqFile   string `yaml:"units_eq_file" env-default:"units_eq.json"`

	AdminLogin string `yaml:"admin_login"`
	AdminPass  string `yaml:"admin_pass"`
}

type HTTPServer struct {
	Address        string        `yaml:"address" env-default:"localhost:4001"`
	Timeout        time.Duration `yaml:"timeout"  env-default:"4s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"  env-default:"60s"`
	AllowedOrigins []string      `yaml:"allowed_origins" env-default:"http://localhost:5173"`
}

// DSN собирает строку подключения для go-sql-driver/mysql.
func (c Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=%v",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.ParseTime,
	)
}

func (c Config) StandardsPath() string {
	return joinData(c.StoragePath, c.StandardsFile)
}

func (c Config) UnitsEqPath() string {
	return joinData(c.StoragePath, c.UnitsEqFile)
}

func joinData(dir, file string) string {
	if dir == "" {
		return file
	}
	return filepath.Join(dir, file)
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = defaultConfigPath
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}

	return &cfg, nil
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("%s", err)
	}

	return cfg
}
