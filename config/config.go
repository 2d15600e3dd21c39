package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

// DefaultBlockMarkers are the texts that mark a denied or bot-flagged response
var DefaultBlockMarkers = []string{
	"사용자의 접속이 제한",
	"Robot",
	"비정상적인 접근",
	"자동화된 접근",
}

// Config represents the application configuration
type Config struct {
	// Source variants
	PpomURL       string
	PpomMobileURL string
	SiteCharset   string

	// Classification
	KeywordsFile      string
	HotPriceThreshold int

	// Collection
	CollectionCap  int
	RequestTimeout time.Duration
	FetchDelayMin  time.Duration
	FetchDelayMax  time.Duration
	BlockMarkers   []string
	SortByBadge    bool

	// Output
	OutputPath string

	// Memcache configuration (variant cooldown), disabled when empty
	MemcacheAddr    string
	VariantCooldown time.Duration

	// Redis configuration (batch publish), disabled when empty
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamMaxLength int

	// Prometheus textfile output, disabled when empty
	MetricsTextfile string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	return &Config{
		PpomURL:              getEnv("PPOM_URL", "https://www.ppomppu.co.kr/zboard/zboard.php?id=ppomppu"),
		PpomMobileURL:        getEnv("PPOM_MOBILE_URL", "https://m.ppomppu.co.kr/new/bbs_list.php?id=ppomppu"),
		SiteCharset:          getEnv("SITE_CHARSET", "euc-kr"),
		KeywordsFile:         getEnv("KEYWORDS_FILE", ""),
		HotPriceThreshold:    getEnvInt("HOT_PRICE_THRESHOLD", 100000),
		CollectionCap:        getEnvInt("COLLECTION_CAP", 25),
		RequestTimeout:       time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 25)) * time.Second,
		FetchDelayMin:        time.Duration(getEnvInt("FETCH_DELAY_MIN_MS", 500)) * time.Millisecond,
		FetchDelayMax:        time.Duration(getEnvInt("FETCH_DELAY_MAX_MS", 2000)) * time.Millisecond,
		BlockMarkers:         getEnvList("BLOCK_MARKERS", DefaultBlockMarkers),
		SortByBadge:          getEnvBool("SORT_BY_BADGE", false),
		OutputPath:           getEnv("OUTPUT_PATH", "deals.csv"),
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", ""),
		VariantCooldown:      time.Duration(getEnvInt("VARIANT_COOLDOWN_SECONDS", 600)) * time.Second,
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisDB:              getEnvInt("REDIS_DB", 0),
		RedisStream:          getEnv("REDIS_STREAM", "deals"),
		RedisStreamMaxLength: getEnvInt("REDIS_STREAM_MAX_LENGTH", 100),
		MetricsTextfile:      getEnv("METRICS_TEXTFILE", ""),
		Environment:          getEnv("DEALCOLLECTOR_ENVIRONMENT", "development"),
	}
}

// Validate reports every configuration problem at once
func (c *Config) Validate() error {
	var err error

	for name, raw := range map[string]string{"PPOM_URL": c.PpomURL, "PPOM_MOBILE_URL": c.PpomMobileURL} {
		if raw == "" {
			continue
		}
		u, parseErr := url.Parse(raw)
		if parseErr != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			err = multierror.Append(err, fmt.Errorf("%s must be an absolute http(s) URL: %q", name, raw))
		}
	}
	if c.PpomURL == "" && c.PpomMobileURL == "" {
		err = multierror.Append(err, fmt.Errorf("at least one source variant URL must be configured"))
	}
	if c.CollectionCap <= 0 {
		err = multierror.Append(err, fmt.Errorf("COLLECTION_CAP must be positive, got %d", c.CollectionCap))
	}
	if c.HotPriceThreshold < 0 {
		err = multierror.Append(err, fmt.Errorf("HOT_PRICE_THRESHOLD must not be negative, got %d", c.HotPriceThreshold))
	}
	if c.RequestTimeout <= 0 {
		err = multierror.Append(err, fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive"))
	}
	if c.FetchDelayMin < 0 || c.FetchDelayMax < c.FetchDelayMin {
		err = multierror.Append(err, fmt.Errorf("fetch delay range [%v, %v] is invalid", c.FetchDelayMin, c.FetchDelayMax))
	}
	if c.OutputPath == "" {
		err = multierror.Append(err, fmt.Errorf("OUTPUT_PATH must not be empty"))
	}
	if c.RedisAddr != "" && c.RedisStream == "" {
		err = multierror.Append(err, fmt.Errorf("REDIS_STREAM must be set when REDIS_ADDR is configured"))
	}

	return err
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated variable, dropping blank entries
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
