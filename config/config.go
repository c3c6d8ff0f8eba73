package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	OSS      OSSConfig      `mapstructure:"oss"`
	Email    EmailConfig    `mapstructure:"email"`
	Queue    QueueConfig    `mapstructure:"queue"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Search   SearchConfig   `mapstructure:"search"`
	AI       AIConfig       `mapstructure:"ai"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Report   ReportConfig   `mapstructure:"report"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
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

// JWTConfig secret 为空时接口不启用认证
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

type EmailConfig struct {
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	NotifyTo string `mapstructure:"notify_to"` // 报告完成通知收件人，为空则不发送
}

type QueueConfig struct {
	SearchQueue string `mapstructure:"search_queue"`
	MaxWorkers  int    `mapstructure:"max_workers"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// SearchConfig Google Custom Search 配置
type SearchConfig struct {
	APIKey         string `mapstructure:"api_key"`
	CSEID          string `mapstructure:"cse_id"`
	Endpoint       string `mapstructure:"endpoint"`        // 默认官方 customsearch 地址
	Country        string `mapstructure:"country"`         // gl 参数
	Language       string `mapstructure:"language"`        // hl 参数
	TimeoutSeconds int    `mapstructure:"timeout_seconds"` // 单次请求超时（秒）
}

// AIConfig 大模型分析配置
type AIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// PipelineConfig 聚合管线策略配置
type PipelineConfig struct {
	FilterStrategy string `mapstructure:"filter_strategy"` // strict / score，两种过滤策略互斥
	MinScore       int    `mapstructure:"min_score"`       // score 策略的分数阈值
	JobExpireHours int    `mapstructure:"job_expire_hours"`
}

type ReportConfig struct {
	Dir         string `mapstructure:"dir"`         // 报告文件保存目录
	ExpireDays  int    `mapstructure:"expire_days"` // 本地报告保留天数
	UploadToOSS bool   `mapstructure:"upload_to_oss"`
}

func Load(configPath string) (*Config, error) {
	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	// 检查 config.local.yaml 是否存在
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

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Search.Endpoint == "" {
		cfg.Search.Endpoint = "https://www.googleapis.com/customsearch/v1"
	}
	if cfg.Search.TimeoutSeconds <= 0 {
		cfg.Search.TimeoutSeconds = 15
	}
	if cfg.Queue.SearchQueue == "" {
		cfg.Queue.SearchQueue = "osint_search_queue"
	}
	if cfg.Queue.MaxWorkers <= 0 {
		cfg.Queue.MaxWorkers = 4
	}
	if cfg.Pipeline.FilterStrategy == "" {
		cfg.Pipeline.FilterStrategy = "strict"
	}
	if cfg.Pipeline.MinScore <= 0 {
		cfg.Pipeline.MinScore = 3
	}
	if cfg.Pipeline.JobExpireHours <= 0 {
		cfg.Pipeline.JobExpireHours = 24
	}
	if cfg.Report.Dir == "" {
		cfg.Report.Dir = "reports"
	}
	if cfg.Report.ExpireDays <= 0 {
		cfg.Report.ExpireDays = 30
	}
}
