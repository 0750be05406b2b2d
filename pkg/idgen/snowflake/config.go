package snowflake

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"intern-hub-common/pkg/idgen/core"
)

// configValidate 配置结构体校验器（validator实例并发安全，可共享）
var configValidate = validator.New()

// Config Snowflake生成器配置
type Config struct {
	// MachineID 机器ID
	// 范围：0-1023（10位二进制）
	// 用途：标识不同的进程/实例，同一epoch下必须唯一，由外部统一分配
	MachineID int64 `validate:"gte=0,lte=1023"`

	// Epoch 起始时间
	// 零值表示使用 DefaultEpoch (2025-01-01 UTC)
	// 不能晚于当前时间，也不能早到41位时间戳已经耗尽
	Epoch time.Time

	// EnableMetrics 是否启用性能监控
	// 默认值：false
	EnableMetrics bool

	// Logger 结构化日志，nil时不输出
	Logger *zap.Logger `validate:"-"`
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				if fe.StructField() == "MachineID" {
					return fmt.Errorf("%w: got %d, valid range [0, %d]",
						core.ErrInvalidMachineID, c.MachineID, MaxMachineID)
				}
			}
		}
		return fmt.Errorf("%w: %v", core.ErrInvalidConfiguration, err)
	}

	if !c.Epoch.IsZero() {
		return validateEpoch(c.Epoch.UnixMilli(), time.Now().UnixMilli())
	}
	return nil
}

// validateEpoch 校验epoch在[now-MaxTimestamp, now]范围内
func validateEpoch(epoch, now int64) error {
	if epoch > now {
		return fmt.Errorf("%w: epoch %d is in the future (now %d)",
			core.ErrInvalidEpoch, epoch, now)
	}
	if now-epoch > MaxTimestamp {
		return fmt.Errorf("%w: epoch %d exhausts the %d-bit timestamp field",
			core.ErrInvalidEpoch, epoch, TimestampBits)
	}
	return nil
}

// EpochMillis 返回生效的epoch（Unix毫秒）
func (c *Config) EpochMillis() int64 {
	if c.Epoch.IsZero() {
		return DefaultEpoch
	}
	return c.Epoch.UnixMilli()
}

// SetDefaults 设置配置的默认值
func (c *Config) SetDefaults() {
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
}

// Clone 克隆配置对象
func (c *Config) Clone() *Config {
	return &Config{
		MachineID:     c.MachineID,
		Epoch:         c.Epoch,
		EnableMetrics: c.EnableMetrics,
		Logger:        c.Logger,
	}
}
