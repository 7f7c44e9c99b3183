// Package config reads process configuration from the environment. Call
// godotenv.Load before FromEnv so a local .env file is honoured.
package config

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/text/language"
)

// DefaultGeoJSONURL is the Natural Earth admin-0 layer.
const DefaultGeoJSONURL = "https://raw.githubusercontent.com/nvkelso/natural-earth-vector/master/geojson/ne_110m_admin_0_countries.geojson"

// Config holds everything main needs to wire collaborators.
type Config struct {
	GeoJSONURL  string
	GeoJSONFile string // local document; overrides GeoJSONURL when set
	CacheDir    string
	Lang        language.Tag
	UserID      string
	Input       string // "fine" or "coarse"

	Hint     Hint
	Postgres Postgres
	Redis    Redis

	MetricsAddr string
}

// Hint configures the remote hint endpoint. An empty APIKey disables remote
// hints and every round uses the fallback.
type Hint struct {
	APIURL   string
	APIKey   string
	Model    string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Postgres configures the history store. Enabled is false unless PG_HOST is set.
type Postgres struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DB       string
	SSLMode  string
}

// Redis configures the hint cache. Enabled is false unless REDIS_HOST is set.
type Redis struct {
	Enabled bool
	Addr    string
	Pass    string
	DB      int
}

// FromEnv builds a Config from environment variables with defaults.
func FromEnv() Config {
	c := Config{
		GeoJSONURL:  getenv("GEOQUIZ_GEOJSON_URL", DefaultGeoJSONURL),
		GeoJSONFile: os.Getenv("GEOQUIZ_GEOJSON_FILE"),
		CacheDir:    getenv("GEOQUIZ_CACHE_DIR", defaultCacheDir()),
		Lang:        parseLang(os.Getenv("GEOQUIZ_LANG")),
		UserID:      os.Getenv("GEOQUIZ_USER"),
		Input:       getenv("GEOQUIZ_INPUT", "fine"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),
	}
	c.Hint = Hint{
		APIURL:   getenv("HINT_API_URL", "https://generativelanguage.googleapis.com/v1beta"),
		APIKey:   os.Getenv("HINT_API_KEY"),
		Model:    getenv("HINT_MODEL", "gemini-2.0-flash"),
		Timeout:  time.Duration(getint("HINT_TIMEOUT_MS", 8000)) * time.Millisecond,
		CacheTTL: time.Duration(getint("HINT_CACHE_TTL_S", 86400)) * time.Second,
	}
	c.Postgres = Postgres{
		Enabled:  os.Getenv("PG_HOST") != "",
		Host:     getenv("PG_HOST", "localhost"),
		Port:     getenv("PG_PORT", "5432"),
		User:     getenv("PG_USER", "postgres"),
		Password: os.Getenv("PG_PASSWORD"),
		DB:       getenv("PG_DB", "geoquiz"),
		SSLMode:  getenv("PG_SSLMODE", "disable"),
	}
	c.Redis = Redis{
		Enabled: os.Getenv("REDIS_HOST") != "",
		Addr:    os.Getenv("REDIS_HOST") + ":" + getenv("REDIS_PORT", "6379"),
		Pass:    os.Getenv("REDIS_PASS"),
	}
	// parse errors fall back to 0
	if n, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil && n >= 0 {
		c.Redis.DB = n
	}
	return c
}

// DSN renders the lib/pq connection URL.
func (p Postgres) DSN() string {
	dsn := "postgres://" + p.User
	if p.Password != "" {
		dsn += ":" + p.Password
	}
	dsn += "@" + p.Host + ":" + p.Port + "/" + p.DB + "?sslmode=" + p.SSLMode
	return dsn
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// parseLang returns language.Und for empty or invalid tags, which keeps
// English admin names.
func parseLang(s string) language.Tag {
	if s == "" {
		return language.Und
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und
	}
	return tag
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return dir + string(os.PathSeparator) + "geoquiz"
	}
	return ".geoquiz-cache"
}
