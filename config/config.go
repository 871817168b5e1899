/*
Package config 配置管理包

项目目录结构：
/techlib
├── main.go              # 程序入口，委托给 cmd
├── cmd/                 # cobra 命令（serve / migrate / seed / cleanup-sessions）
├── config/              # 配置、数据库连接、日志
├── server/              # HTTP服务器启动和后台清理任务
├── routes/              # API路由注册
├── handles/             # HTTP处理层
├── services/            # 业务层（标签共现、视频查询、标签/分类管理、会话）
├── models/              # 数据库模型
├── errs/                # 业务错误定义
├── middleware/          # CORS、管理员会话认证
└── utils/               # 响应格式、时长格式化、缓存

数据流向：
1. main.go -> cmd -> 加载配置、初始化数据库 -> 启动server
2. server -> 注册routes -> handles处理请求
3. handles -> 调用services -> 操作models（数据库）

运行方式：
1. 服务器模式: ./techlib serve
2. 建表:       ./techlib migrate
3. 示例数据:   ./techlib seed
*/
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"server"`

	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`

	Admin struct {
		// 管理员登录口令，生产环境务必通过 ADMIN_PASSWORD 覆盖
		Password string `mapstructure:"password"`
	} `mapstructure:"admin"`

	Session struct {
		TTLHours int `mapstructure:"ttl_hours"`
	} `mapstructure:"session"`

	Duration struct {
		// 外部时长查询接口，留空则不获取时长
		Endpoint       string `mapstructure:"endpoint"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"duration"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

var AppConfig *Config

// LoadConfig 加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func LoadConfig() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.path", "techlib.db")
	viper.SetDefault("admin.password", "")
	viper.SetDefault("session.ttl_hours", 24)
	viper.SetDefault("duration.endpoint", "")
	viper.SetDefault("duration.timeout_seconds", 10)
	viper.SetDefault("log.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 没有配置文件时使用默认值
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	AppConfig = &cfg
	return &cfg, nil
}
