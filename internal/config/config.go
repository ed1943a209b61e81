package config

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
)

const devEnvFile = ".env.dev"

const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageMySQL  = "mysql"
)

type DB struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type Config struct {
	Addr            string        `yaml:"addr"`
	Storage         string        `yaml:"storage"`
	DataFile        string        `yaml:"data_file"`
	LogLevel        string        `yaml:"log_level"`
	LogFormat       string        `yaml:"log_format"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	DB              DB            `yaml:"db"`
}

func Default() Config {
	return Config{
		Addr:            ":8080",
		Storage:         StorageMemory,
		DataFile:        "data/users.json",
		LogLevel:        "info",
		LogFormat:       "json",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load builds the configuration from defaults, the YAML file named by
// CONFIG_FILE, .env.dev and the process environment, in that order.
func Load() (Config, error) {
	cfg := Default()

	if p := os.Getenv("CONFIG_FILE"); p != "" {
		if err := cfg.readFile(p); err != nil {
			return Config{}, err
		}
	}

	loadEnvFile(devEnvFile)
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// loadEnvFile sets KEY=VALUE lines from path for keys that are not
// already present in the environment. A missing file is ignored.
func loadEnvFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		ln := strings.TrimSpace(sc.Text())
		if ln == "" {
			continue
		}
		if strings.HasPrefix(ln, "#") {
			continue
		}
		if strings.HasPrefix(ln, "export ") {
			ln = strings.TrimSpace(ln[len("export "):])
		}
		i := strings.IndexByte(ln, '=')
		if i <= 0 {
			continue
		}
		k := strings.TrimSpace(ln[:i])
		v := strings.Trim(strings.TrimSpace(ln[i+1:]), `"'`)
		if k == "" {
			continue
		}
		if _, ok := os.LookupEnv(k); ok {
			continue
		}
		os.Setenv(k, v)
	}
}

func (c *Config) applyEnv() error {
	setString(&c.Addr, "ADDR")
	setString(&c.Storage, "STORAGE")
	setString(&c.DataFile, "DATA_FILE")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFormat, "LOG_FORMAT")
	setString(&c.DB.Host, "DB_HOST")
	setString(&c.DB.Port, "DB_PORT")
	setString(&c.DB.User, "DB_USER")
	setString(&c.DB.Password, "DB_PASSWORD")
	setString(&c.DB.Name, "DB_NAME")

	for k, d := range map[string]*time.Duration{
		"READ_TIMEOUT_SEC":     &c.ReadTimeout,
		"WRITE_TIMEOUT_SEC":    &c.WriteTimeout,
		"IDLE_TIMEOUT_SEC":     &c.IdleTimeout,
		"SHUTDOWN_TIMEOUT_SEC": &c.ShutdownTimeout,
	} {
		if err := setSeconds(d, k); err != nil {
			return err
		}
	}
	return nil
}

func setString(dst *string, k string) {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		*dst = v
	}
}

func setSeconds(dst *time.Duration, k string) error {
	v, ok := os.LookupEnv(k)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fmt.Errorf("env %s: invalid seconds %q", k, v)
	}
	*dst = time.Duration(n) * time.Second
	return nil
}

func (c Config) Validate() error {
	switch c.Storage {
	case StorageMemory:
	case StorageFile:
		if c.DataFile == "" {
			return errors.New("storage file requires a data file path")
		}
	case StorageMySQL:
		var missing []string
		for k, v := range map[string]string{
			"DB_HOST":     c.DB.Host,
			"DB_PORT":     c.DB.Port,
			"DB_USER":     c.DB.User,
			"DB_PASSWORD": c.DB.Password,
			"DB_NAME":     c.DB.Name,
		} {
			if v == "" {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			slices.Sort(missing)
			return fmt.Errorf("storage mysql: env %s is not set", strings.Join(missing, ", "))
		}
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}
	return nil
}

func (d DB) DSN() string {
	mc := mysql.NewConfig()
	mc.User = d.User
	mc.Passwd = d.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(d.Host, d.Port)
	mc.DBName = d.Name
	mc.ParseTime = true
	mc.Collation = "utf8mb4_unicode_ci"
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}
