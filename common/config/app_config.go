package config

import (
	"fmt"
	"strings"
	"time"

	"jongcore/common/log"
	"jongcore/runtime/game/engines/mahjong"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var Conf *Config

type Config struct {
	AppName string       `mapstructure:"appName"`
	Log     LogConf      `mapstructure:"log"`
	Cache   CacheConf    `mapstructure:"cache"`
	Rule    mahjong.Rule `mapstructure:"rule"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

// CacheConf 向听/听牌查询缓存
type CacheConf struct {
	Size int64         `mapstructure:"size"`
	TTL  time.Duration `mapstructure:"ttl"`
}

// Default 没有配置文件时使用
func Default() *Config {
	return &Config{
		AppName: "evaluator",
		Log:     LogConf{Level: "info"},
		Cache:   CacheConf{Size: 4096, TTL: 10 * time.Minute},
		Rule:    mahjong.DefaultRule(),
	}
}

func newViper(configFile string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件出错, err:%w", err)
	}
	if err := cfg.Rule.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load 读取配置文件, 未出现的项保持默认值
func Load(configFile string) (*Config, error) {
	v := newViper(configFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件出错, err:%w", err)
	}
	return decode(v)
}

// InitConfig 加载到 Conf, configFile 为空时使用默认配置
func InitConfig(configFile string) {
	if configFile == "" {
		Conf = Default()
		return
	}
	cfg, err := Load(configFile)
	if err != nil {
		panic(err)
	}
	Conf = cfg
}

// Watch 配置文件变化时重新加载并回调, 解析失败的修改被忽略
func Watch(configFile string, fn func(*Config)) error {
	v := newViper(configFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("读取配置文件出错, err:%w", err)
	}
	v.OnConfigChange(func(in fsnotify.Event) {
		cfg, err := decode(v)
		if err != nil {
			log.Warn("reload %s: %v", in.Name, err)
			return
		}
		log.Info("配置文件已更新: %s", in.Name)
		fn(cfg)
	})
	v.WatchConfig()
	return nil
}
