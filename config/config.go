package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	JWT           JWTConfig           `mapstructure:"jwt"`
	OSS           OSSConfig           `mapstructure:"oss"`
	OAuth         OAuthConfig         `mapstructure:"oauth"`
	Email         EmailConfig         `mapstructure:"email"`
	Queue         QueueConfig         `mapstructure:"queue"`
	CORS          CORSConfig          `mapstructure:"cors"`
	RateLimit     RateLimitConfig     `mapstructure:"rate_limit"`
	Advertisement AdvertisementConfig `mapstructure:"advertisement"`
	Agent         AgentConfig         `mapstructure:"agent"`
	Upload        UploadConfig        `mapstructure:"upload"`
	Categories    []CategoryConfig    `mapstructure:"categories"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
	// 前端地址，用于拼接推广链接
	FrontendURL string `mapstructure:"frontend_url"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	BucketName      string `mapstructure:"bucket_name"`
	CDNDomain       string `mapstructure:"cdn_domain"`
}

type OAuthConfig struct {
	Google GoogleOAuthConfig `mapstructure:"google"`
}

type GoogleOAuthConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURI  string `mapstructure:"redirect_uri"`
}

type EmailConfig struct {
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type QueueConfig struct {
	NotificationQueue string `mapstructure:"notification_queue"`
	MaxWorkers        int    `mapstructure:"max_workers"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type AdvertisementConfig struct {
	Plans map[string]PlanConfig `mapstructure:"plans"`
	// 过期扫描间隔（分钟）
	SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes"`
	// 到期提醒窗口（小时）
	ReminderWindowHours int `mapstructure:"reminder_window_hours"`
	// 单条记录操作锁超时（秒）
	ActionLockSeconds int `mapstructure:"action_lock_seconds"`
}

type PlanConfig struct {
	Price         float64 `mapstructure:"price"`
	DurationHours int     `mapstructure:"duration_hours"`
}

type AgentConfig struct {
	DefaultDiscountPercent int          `mapstructure:"default_discount_percent"`
	Tiers                  []TierConfig `mapstructure:"tiers"`
}

type TierConfig struct {
	Name           string  `mapstructure:"name"`
	MinReferrals   int     `mapstructure:"min_referrals"`
	CommissionRate float64 `mapstructure:"commission_rate"`
}

type UploadConfig struct {
	MaxSize          int64    `mapstructure:"max_size"`           // 最大文件大小（字节）
	AllowedTypes     []string `mapstructure:"allowed_types"`      // 允许的 Content-Type
	ImageLoadTimeout int      `mapstructure:"image_load_timeout"` // 图片加载探测超时（秒）
}

type CategoryConfig struct {
	Key         string `mapstructure:"key"`
	DisplayName string `mapstructure:"display_name"`
	Noun        string `mapstructure:"noun"`
	PublishPath string `mapstructure:"publish_path"`
	ManagePath  string `mapstructure:"manage_path"`
	ViewPath    string `mapstructure:"view_path"`
}

// ImageLoadTimeoutDuration 图片探测超时，未配置时默认 10 秒
func (c UploadConfig) ImageLoadTimeoutDuration() time.Duration {
	if c.ImageLoadTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ImageLoadTimeout) * time.Second
}

func Load(configPath string) (*Config, error) {
	// .env 只是补充环境变量，不存在时忽略
	_ = godotenv.Load()

	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// 环境变量覆盖
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
