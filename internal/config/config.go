package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type Catalog struct {
	BaseURL  string
	APIKey   string
	APIHost  string
	PersonID string
	Timeout  time.Duration
	Cache    string
	CacheTTL time.Duration
}

type Auth struct {
	Store      string
	SessionTTL time.Duration
	Required   bool
}

type Storage struct {
	WatchlistPersistence string
}

type Config struct {
	HTTP     HTTPServer
	Redis    RedisCache
	Postgres Postgres
	Catalog  Catalog
	Auth     Auth
	Storage  Storage
}

const (
	BackendNone     = "none"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := FromEnv()

	log.Printf("%s backend config : %+v\n", logtag, cfg.redacted())
	return cfg
}

// FromEnv builds the config from the current process environment only.
func FromEnv() *Config {
	return &Config{
		HTTP:     *newHTTP(),
		Redis:    *newRedis(),
		Postgres: *newPostgres(),
		Catalog:  *newCatalog(),
		Auth:     *newAuth(),
		Storage:  *newStorage(),
	}
}

func (c Config) redacted() Config {
	if c.Catalog.APIKey != "" {
		c.Catalog.APIKey = "***"
	}
	if c.Redis.Password != "" {
		c.Redis.Password = "***"
	}
	if c.Postgres.Password != "" {
		c.Postgres.Password = "***"
	}
	return c
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "8080"),
		Host: getenv("HTTP_HOST", "localhost"),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", "redis"),
		Password: getenv("REDIS_PASSWORD", ""),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getenv("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "watchnext"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newCatalog() *Catalog {
	return &Catalog{
		BaseURL:  getenv("CATALOG_BASE_URL", "https://imdb236.p.rapidapi.com/"),
		APIKey:   getsecret("CATALOG_API_KEY"),
		APIHost:  getenv("CATALOG_API_HOST", "imdb236.p.rapidapi.com"),
		PersonID: getenv("CATALOG_PERSON_ID", "nm0000190"),
		Timeout:  getduration("CATALOG_TIMEOUT", 10*time.Second),
		Cache:    getenv("CATALOG_CACHE", BackendNone),
		CacheTTL: getduration("CATALOG_CACHE_TTL", 10*time.Minute),
	}
}

func newAuth() *Auth {
	return &Auth{
		Store:      getenv("AUTH_STORE", BackendMemory),
		SessionTTL: getduration("AUTH_SESSION_TTL", 24*time.Hour),
		Required:   getbool("AUTH_REQUIRED", true),
	}
}

func newStorage() *Storage {
	return &Storage{
		WatchlistPersistence: getenv("WATCHLIST_PERSISTENCE", BackendNone),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

func getsecret(key string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined\n", logtag, key)
		return ""
	}
	fmt.Printf("%s %s is set\n", logtag, key)
	return val
}

func getduration(key string, defaultValue time.Duration) time.Duration {
	raw := getenv(key, defaultValue.String())
	d, err := time.ParseDuration(raw)
	if err != nil {
		fmt.Printf("%s %s: bad duration %q. Using default value %s\n", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getbool(key string, defaultValue bool) bool {
	raw := getenv(key, strconv.FormatBool(defaultValue))
	b, err := strconv.ParseBool(raw)
	if err != nil {
		fmt.Printf("%s %s: bad bool %q. Using default value %t\n", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return b
}
