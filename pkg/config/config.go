package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/moyu-x/forganize/internal"
)

type Config struct {
	Logging struct {
		Level string
		File  string
	}
	Performance struct {
		Workers int
	}
	Classify struct {
		Sniff bool
	}
	// pattern::folder 形式的规则，排在命令行规则之后
	Rules []string
}

// Load 读取配置文件。path 为空时在默认位置查找 config.*，找不到文件不算错误。
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(expandHome(internal.DefaultConfigDir))
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/forganize")
	}

	v.SetEnvPrefix("FORGANIZE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
	v.SetDefault("performance.workers", internal.DefaultWorkers)
	v.SetDefault("classify.sniff", false)
	v.SetDefault("rules", []string{})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if cfg.Performance.Workers < 1 {
		cfg.Performance.Workers = internal.DefaultWorkers
	}

	return &cfg, nil
}

func expandHome(path string) string {
	if len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == '\\') {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
