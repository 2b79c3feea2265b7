package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var (
	once     sync.Once
	instance *Config
)

const envPath = "./configs/.env"

type Config struct {
}

// New loads ./configs/.env once. A missing file only means everything comes from
// the process environment.
func New() *Config {
	once.Do(func() {
		err := godotenv.Load(envPath)
		if err != nil {
			log.Println("loading envs from " + envPath + " skipped: " + err.Error())
		}
		instance = &Config{}
	})
	return instance
}

func (c *Config) GetString(key string) string {
	return os.Getenv(key)
}

func (c *Config) GetStringOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func (c *Config) GetInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func (c *Config) GetDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

// GetLocation resolves an IANA zone name, falling back to the machine's local zone.
func (c *Config) GetLocation(key string) *time.Location {
	name := os.Getenv(key)
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Println("unknown timezone " + name + ", using local: " + err.Error())
		return time.Local
	}
	return loc
}
