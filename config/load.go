package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/rushteam/eventrec/store"
)

const (
	// ConfigPathEnvVar 指定 YAML 配置文件路径
	ConfigPathEnvVar = "EVENTREC_CONFIG"
	// EnvPrefix 是环境变量前缀
	EnvPrefix = "EVENTREC_"
)

// sliceConfigPaths 在环境变量中以逗号分隔的配置项
var sliceConfigPaths = []string{
	"recommend.blocked_event_ids",
}

// Load 按 默认值 -> 配置文件 -> 环境变量 的顺序加载配置并校验。
// 配置文件路径取自 EVENTREC_CONFIG，未设置时只使用默认值与环境变量。
func Load(_ context.Context) (*Config, error) {
	return LoadFile(os.Getenv(ConfigPathEnvVar))
}

// LoadFile 与 Load 相同，但显式指定配置文件路径（可为空）。
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// EVENTREC_STORE__REDIS__ADDR -> store.redis.addr
	envProvider := env.Provider(EnvPrefix, ".", envKey)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey 将环境变量名转换为配置路径；返回空字符串表示忽略该变量。
func envKey(key string) string {
	if key == ConfigPathEnvVar {
		return ""
	}
	key = strings.TrimPrefix(key, EnvPrefix)
	key = strings.ToLower(key)
	return strings.ReplaceAll(key, "__", ".")
}

// processSliceFields 把环境变量中逗号分隔的字符串转换为切片。
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := strings.Split(s, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate 校验配置。
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Store.Backend == store.BackendRedis && c.Store.Redis.Addr == "" {
		return fmt.Errorf("invalid config: store.redis.addr is required for the redis backend")
	}
	return nil
}
