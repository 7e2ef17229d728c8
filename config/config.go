package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Shop     ShopConfig     `mapstructure:"shop"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
}

type ServerConfig struct {
	Port      int    `mapstructure:"port"`
	StaticDir string `mapstructure:"static_dir"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"` // sqlite 文件路径
}

type AuthConfig struct {
	JWTSecret        string `mapstructure:"jwt_secret"`
	TokenExpireHours int    `mapstructure:"token_expire_hours"`
}

// ShopConfig 营业与联系信息
// ForceClosed 是全局停业总闸（从旧版前端的硬编码常量改为配置项），
// 优先级最高，压过人工开关和排班
type ShopConfig struct {
	Name         string `mapstructure:"name"`
	WhatsApp     string `mapstructure:"whatsapp"` // 收单的 WhatsApp 号码，国家码开头
	Timezone     string `mapstructure:"timezone"` // 固定参考时区，如 Asia/Jakarta
	OpenHour     int    `mapstructure:"open_hour"`
	CloseHour    int    `mapstructure:"close_hour"`
	ForceClosed  bool   `mapstructure:"force_closed"`
	ClosedNotice string `mapstructure:"closed_notice"`
}

type CatalogConfig struct {
	Path string `mapstructure:"path"` // 菜单目录文件
}

// LoadConfig 解析配置文件
func LoadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %v", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %v", err)
	}

	return &cfg, nil
}
