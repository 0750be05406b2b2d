package snowflake

import (
	"fmt"

	"intern-hub-common/pkg/idgen/core"
)

// Validator Snowflake ID验证器
type Validator struct {
	epoch int64
	clock func() int64
}

// ValidateID 使用DefaultEpoch验证ID
func ValidateID(id int64) error {
	return defaultParser.validator.Validate(id)
}

// NewValidator 创建绑定指定epoch的验证器
func NewValidator(epoch int64) *Validator {
	return &Validator{epoch: epoch, clock: systemClock}
}

// Validate 验证Snowflake ID的有效性
func (v *Validator) Validate(id int64) error {
	// 验证1：ID必须为正整数（最高位永远为0）
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d",
			core.ErrInvalidSnowflakeID, id)
	}

	// 验证2：时间戳不能太超前，容忍服务器之间的时钟偏差
	timestamp := ((id >> TimestampShift) & MaxTimestamp) + v.epoch
	now := v.clock()
	if timestamp > now+maxFutureTimeTolerance {
		return fmt.Errorf("%w: timestamp %d is too far in the future (current: %d, max tolerance: %d ms)",
			core.ErrInvalidSnowflakeID, timestamp, now, maxFutureTimeTolerance)
	}

	return nil
}

// ValidateBatch 批量验证ID，遇到第一个错误立即返回
func (v *Validator) ValidateBatch(ids []int64) error {
	for i, id := range ids {
		if err := v.Validate(id); err != nil {
			return fmt.Errorf("invalid ID at index %d: %w", i, err)
		}
	}
	return nil
}

var _ core.IIDValidator = (*Validator)(nil)
