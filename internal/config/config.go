package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config 结构体包含所有应用的配置
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	MySQL         MySQLConfig         `mapstructure:"mysql" validate:"required"`
	Redis         RedisConfig         `mapstructure:"redis"`
	MinIO         MinIOConfig         `mapstructure:"minio"`
	AliyunOSS     AliyunOSSConfig     `mapstructure:"aliyun_oss"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	JWT           JWTConfig           `mapstructure:"jwt" validate:"required"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Album         AlbumConfig         `mapstructure:"album"`
	Log           LogConfig           `mapstructure:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    string `mapstructure:"port"`
	BaseURL string `mapstructure:"base_url"` // 用于拼接分享链接，例如 https://album.example.com
}

// MySQLConfig 数据库配置
type MySQLConfig struct {
	DSN string `mapstructure:"dsn" validate:"required"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
}

type AliyunOSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"` // 例如: oss-cn-hangzhou.aliyuncs.com
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// ElasticsearchConfig 定义 Elasticsearch 连接配置，用于照片描述的全文搜索
type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
}

// JWTConfig JWT配置
type JWTConfig struct {
	SecretKey       string        `mapstructure:"secret_key" validate:"required"`
	ExpiresIn       time.Duration `mapstructure:"expires_in"`        // 管理员 Token 有效期
	ViewerExpiresIn time.Duration `mapstructure:"viewer_expires_in"` // 访客会话 Token 有效期
	Issuer          string        `mapstructure:"issuer"`
}

type StorageConfig struct {
	Type               string `mapstructure:"type"`                 // minio 或 aliyun_oss
	PresignedURLExpiry int    `mapstructure:"presigned_url_expiry"` // 预签名URL有效期（分钟）
}

// AlbumConfig 相册业务相关的限制
type AlbumConfig struct {
	MaxUploadSizeMB    int64  `mapstructure:"max_upload_size_mb"`  // 单张照片上传上限
	MaxImageWidth      int    `mapstructure:"max_image_width"`     // 压缩后最大宽度（像素）
	ImageQuality       int    `mapstructure:"image_quality"`       // JPEG 压缩质量 (1-100)
	TimelineLimit      int    `mapstructure:"timeline_limit"`      // 时间线默认返回条数
	MinSharePasswordLn int    `mapstructure:"min_share_password"`  // 分享密码最短长度
	ValidateRateLimit  int    `mapstructure:"validate_rate_limit"` // 每个IP每分钟允许的分享校验次数
	ShareTokenParam    string `mapstructure:"share_token_param"`   // 访客入口的 query 参数名
}

// zap日志配置
type LogConfig struct {
	OutputPath string `mapstructure:"output_path"`
	ErrorPath  string `mapstructure:"error_path"`
	Level      string `mapstructure:"level"`
}

var AppConfig *Config // 全局应用配置实例

// LoadConfig 加载配置
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/lil-heart/")

	// 读取环境变量，例如 LIL_HEART_MYSQL_DSN 覆盖 mysql.dsn
	viper.SetEnvPrefix("LIL_HEART")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 合理的默认值，配置文件和环境变量都可以覆盖
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("jwt.expires_in", time.Hour)
	viper.SetDefault("jwt.viewer_expires_in", 12*time.Hour)
	viper.SetDefault("jwt.issuer", "lil-heart")
	viper.SetDefault("storage.type", "minio")
	viper.SetDefault("storage.presigned_url_expiry", 60)
	viper.SetDefault("album.max_upload_size_mb", 10)
	viper.SetDefault("album.max_image_width", 1920)
	viper.SetDefault("album.image_quality", 85)
	viper.SetDefault("album.timeline_limit", 50)
	viper.SetDefault("album.min_share_password", 4)
	viper.SetDefault("album.validate_rate_limit", 30)
	viper.SetDefault("album.share_token_param", "share_token")
	viper.SetDefault("log.output_path", "logs/app.log")
	viper.SetDefault("log.error_path", "logs/error.log")
	viper.SetDefault("log.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// 配置文件未找到不是致命错误，可以完全依赖环境变量和默认值
			log.Println("Warning: config file not found, using environment variables and defaults.")
		} else {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	AppConfig = &Config{}
	if err := viper.Unmarshal(AppConfig); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// 启动前校验必填项，缺少密钥或DSN直接失败比运行期报错好定位
	if err := validator.New().Struct(AppConfig); err != nil {
		return nil, fmt.Errorf("配置校验失败: %w", err)
	}

	return AppConfig, nil
}
