package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Shell   ShellConfig   `mapstructure:"shell"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Storage StorageConfig `mapstructure:"storage"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Render  RenderConfig  `mapstructure:"render"`
	CORS    CORSConfig    `mapstructure:"cors"`

	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig 静态页面宿主配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		Level:      c.Level,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// ShellConfig 页面外壳（静态资源）配置
type ShellConfig struct {
	Dir       string            `mapstructure:"dir"`        // 静态资源目录
	IndexFile string            `mapstructure:"index_file"` // 首页文件
	Selectors map[string]string `mapstructure:"selectors"`  // 插槽选择器覆盖
}

// CatalogConfig 商品目录配置
type CatalogConfig struct {
	Source             string   `mapstructure:"source"`   // file / http
	Path               string   `mapstructure:"path"`     // 本地目录文件
	URL                string   `mapstructure:"url"`      // 远程目录地址
	Route              string   `mapstructure:"route"`    // 静态宿主暴露的目录路径
	TimeoutMS          int      `mapstructure:"timeout_ms"`
	CacheMaxAgeSeconds int      `mapstructure:"cache_max_age_seconds"`
	DefaultToken       string   `mapstructure:"default_token"`
	ProductCategory    string   `mapstructure:"product_category"`
	AccessoryCategory  string   `mapstructure:"accessory_category"`
	MainAccessories    []string `mapstructure:"main_accessories"`
	SampleMarker       string   `mapstructure:"sample_marker"`
	HeroProductID      string   `mapstructure:"hero_product_id"`
	SloganProductID    string   `mapstructure:"slogan_product_id"`
	HeroDefault        string   `mapstructure:"hero_default"`
	DetailPage         string   `mapstructure:"detail_page"`
	RefreshSeconds     int      `mapstructure:"refresh_interval_seconds"` // 0 表示不定时刷新
}

// Timeout 目录拉取超时
func (c CatalogConfig) Timeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// RefreshInterval 目录定时刷新间隔，0 表示关闭
func (c CatalogConfig) RefreshInterval() time.Duration {
	if c.RefreshSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RefreshSeconds) * time.Second
}

// StoragePoolConfig 数据库连接池配置
type StoragePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// StorageConfig 购物车持久化配置
type StorageConfig struct {
	Driver string            `mapstructure:"driver"` // memory / sqlite / postgres / redis
	DSN    string            `mapstructure:"dsn"`
	Key    string            `mapstructure:"key"`
	Pool   StoragePoolConfig `mapstructure:"pool"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// RenderConfig 渲染与延迟回调配置
type RenderConfig struct {
	RefreshDelayMS    int  `mapstructure:"refresh_delay_ms"`
	OpenCartDelayMS   int  `mapstructure:"open_cart_delay_ms"`
	BridgeInitDelayMS int  `mapstructure:"bridge_init_delay_ms"`
	CartInitRecheckMS int  `mapstructure:"cart_init_recheck_ms"`
	Debounce          bool `mapstructure:"debounce"` // 合并同一插槽的重复刷新
}

// RefreshDelay 组件刷新延迟
func (c RenderConfig) RefreshDelay() time.Duration {
	return millis(c.RefreshDelayMS, constants.WidgetRefreshDelay)
}

// OpenCartDelay 加购后打开购物车的延迟
func (c RenderConfig) OpenCartDelay() time.Duration {
	return millis(c.OpenCartDelayMS, constants.CartOpenDelay)
}

// BridgeInitDelay 表单绑定延迟
func (c RenderConfig) BridgeInitDelay() time.Duration {
	return millis(c.BridgeInitDelayMS, constants.BridgeInitDelay)
}

// CartInitRecheck 购物车初始化重试延迟
func (c RenderConfig) CartInitRecheck() time.Duration {
	return millis(c.CartInitRecheckMS, constants.CartInitRecheckDelay)
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// RateLimitRule 单条限流规则
type RateLimitRule struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
}

// RateLimitConfig 限流配置（仅在 Redis 启用时生效）
type RateLimitConfig struct {
	Catalog RateLimitRule `mapstructure:"catalog"`
}

// Load 从 config.yml 加载配置
func Load() *Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("../")
	v.AddConfigPath("./etc")

	SetDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // catalog.path -> CATALOG_PATH

	if err := v.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	cfg, err := Decode(v)
	if err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}
	return cfg
}

// Decode 将 viper 实例解析为配置并补齐缺省值
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return &cfg, nil
}

// Default 返回全部使用默认值的配置
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Decode(v)
	if err != nil {
		panic(fmt.Errorf("默认配置解析失败: %w", err))
	}
	return cfg
}

// SetDefaults 写入默认值
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "storefront.log")
	v.SetDefault("log.level", "")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("log.compress", true)
	v.SetDefault("shell.dir", "./public")
	v.SetDefault("shell.index_file", "index.html")
	v.SetDefault("catalog.source", "file")
	v.SetDefault("catalog.path", "./public/data/mock-cms-data.json")
	v.SetDefault("catalog.url", "")
	v.SetDefault("catalog.route", "/data/mock-cms-data.json")
	v.SetDefault("catalog.timeout_ms", 5000)
	v.SetDefault("catalog.cache_max_age_seconds", 60)
	v.SetDefault("catalog.default_token", constants.DefaultProductToken)
	v.SetDefault("catalog.product_category", constants.CategoryMainProducts)
	v.SetDefault("catalog.accessory_category", constants.CategoryAccessories)
	v.SetDefault("catalog.main_accessories", constants.MainAccessoryIDs)
	v.SetDefault("catalog.sample_marker", constants.SampleIDMarker)
	v.SetDefault("catalog.hero_product_id", constants.MarketingHeroProductID)
	v.SetDefault("catalog.slogan_product_id", constants.MarketingSloganProductID)
	v.SetDefault("catalog.hero_default", constants.MarketingHeroDefault)
	v.SetDefault("catalog.detail_page", constants.ProductDetailPage)
	v.SetDefault("catalog.refresh_interval_seconds", 0)
	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.dsn", "./db/storefront.db")
	v.SetDefault("storage.key", constants.CartStorageKey)
	v.SetDefault("storage.pool.max_open_conns", 1)
	v.SetDefault("storage.pool.max_idle_conns", 1)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "sf")
	v.SetDefault("render.refresh_delay_ms", int(constants.WidgetRefreshDelay/time.Millisecond))
	v.SetDefault("render.open_cart_delay_ms", int(constants.CartOpenDelay/time.Millisecond))
	v.SetDefault("render.bridge_init_delay_ms", int(constants.BridgeInitDelay/time.Millisecond))
	v.SetDefault("render.cart_init_recheck_ms", int(constants.CartInitRecheckDelay/time.Millisecond))
	v.SetDefault("render.debounce", false)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "HEAD", "OPTIONS"})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("rate_limit.catalog.window_seconds", 60)
	v.SetDefault("rate_limit.catalog.max_requests", 120)
}

func (c *Config) normalize() {
	c.Catalog.Source = strings.ToLower(strings.TrimSpace(c.Catalog.Source))
	if strings.TrimSpace(c.Catalog.DefaultToken) == "" {
		c.Catalog.DefaultToken = constants.DefaultProductToken
	}
	if strings.TrimSpace(c.Catalog.ProductCategory) == "" {
		c.Catalog.ProductCategory = constants.CategoryMainProducts
	}
	if strings.TrimSpace(c.Catalog.AccessoryCategory) == "" {
		c.Catalog.AccessoryCategory = constants.CategoryAccessories
	}
	if c.Catalog.SampleMarker == "" {
		c.Catalog.SampleMarker = constants.SampleIDMarker
	}
	if len(c.Catalog.MainAccessories) == 0 {
		c.Catalog.MainAccessories = append([]string(nil), constants.MainAccessoryIDs...)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		c.Storage.Key = constants.CartStorageKey
	}
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
}

func millis(value int, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}
	return time.Duration(value) * time.Millisecond
}
