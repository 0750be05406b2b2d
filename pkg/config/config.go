// Package config 加载公共库的运行配置
//
// 配置来源优先级（从高到低）：环境变量(HUB_前缀) > 配置文件 > 默认值
// 例如 snowflake.machine-id 对应环境变量 HUB_SNOWFLAKE_MACHINE_ID
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"intern-hub-common/pkg/idgen/core"
	"intern-hub-common/pkg/idgen/snowflake"
)

const (
	// EnvPrefix 环境变量前缀
	EnvPrefix = "HUB"

	// epochLayout epoch配置的时间格式（RFC 3339）
	epochLayout = time.RFC3339
)

var validate = validator.New()

// Config 顶层配置
type Config struct {
	Snowflake SnowflakeConfig `mapstructure:"snowflake"`
	Log       LogConfig       `mapstructure:"log"`
}

// SnowflakeConfig 默认ID生成器配置
type SnowflakeConfig struct {
	MachineID     int64  `mapstructure:"machine-id" validate:"gte=0,lte=1023"`
	Epoch         string `mapstructure:"epoch" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	EnableMetrics bool   `mapstructure:"enable-metrics"`
}

// LogConfig 日志配置
// File为空时输出到标准输出，否则写入文件并按大小滚动
type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"oneof=json console"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max-size-mb" validate:"gte=1"`
	MaxBackups int    `mapstructure:"max-backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max-age-days" validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

// setDefaults 注册默认值
// 注意：AutomaticEnv只对已知key生效，所有key都必须在这里登记
func setDefaults(v *viper.Viper) {
	v.SetDefault("snowflake.machine-id", 1)
	v.SetDefault("snowflake.epoch", "")
	v.SetDefault("snowflake.enable-metrics", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max-size-mb", 100)
	v.SetDefault("log.max-backups", 3)
	v.SetDefault("log.max-age-days", 7)
	v.SetDefault("log.compress", false)
}

// Load 加载配置
// path为空时只使用默认值和环境变量；path非空时文件必须存在
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 验证配置
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			if fe.StructField() == "MachineID" {
				return fmt.Errorf("%w: got %v, valid range [0, %d]",
					core.ErrInvalidMachineID, fe.Value(), snowflake.MaxMachineID)
			}
			if fe.StructField() == "Epoch" {
				return fmt.Errorf("%w: %q is not RFC 3339", core.ErrInvalidEpoch, fe.Value())
			}
			return fmt.Errorf("%w: field %s fails '%s'",
				core.ErrInvalidConfiguration, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", core.ErrInvalidConfiguration, err)
	}
	return nil
}

// EpochTime 解析epoch，未配置时返回零值（生成器使用默认epoch）
func (s *SnowflakeConfig) EpochTime() (time.Time, error) {
	if s.Epoch == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(epochLayout, s.Epoch)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", core.ErrInvalidEpoch, err)
	}
	return t, nil
}

// ToGeneratorConfig 转换为snowflake生成器配置
func (s *SnowflakeConfig) ToGeneratorConfig(logger *zap.Logger) (*snowflake.Config, error) {
	epoch, err := s.EpochTime()
	if err != nil {
		return nil, err
	}
	return &snowflake.Config{
		MachineID:     s.MachineID,
		Epoch:         epoch,
		EnableMetrics: s.EnableMetrics,
		Logger:        logger,
	}, nil
}
