package core

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

// TestErrors 测试错误定义
func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidConfiguration", ErrInvalidConfiguration},
		{"ErrInvalidMachineID", ErrInvalidMachineID},
		{"ErrInvalidEpoch", ErrInvalidEpoch},
		{"ErrNilConfig", ErrNilConfig},
		{"ErrInvalidSnowflakeID", ErrInvalidSnowflakeID},
		{"ErrInvalidBatchSize", ErrInvalidBatchSize},
		{"ErrGeneratorNotFound", ErrGeneratorNotFound},
		{"ErrGeneratorAlreadyExists", ErrGeneratorAlreadyExists},
		{"ErrMachineIDInUse", ErrMachineIDInUse},
		{"ErrInvalidKey", ErrInvalidKey},
		{"ErrMaxGeneratorsReached", ErrMaxGeneratorsReached},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("错误不应为nil")
			}
			if tt.err.Error() == "" {
				t.Error("错误消息不应为空")
			}
		})
	}
}

// TestErrorsIs 测试配置类错误都归属于ErrInvalidConfiguration
func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"机器ID错误属于配置错误", ErrInvalidMachineID, ErrInvalidConfiguration, true},
		{"epoch错误属于配置错误", ErrInvalidEpoch, ErrInvalidConfiguration, true},
		{"nil配置属于配置错误", ErrNilConfig, ErrInvalidConfiguration, true},
		{"包装后仍可识别", fmt.Errorf("%w: got 1024", ErrInvalidMachineID), ErrInvalidConfiguration, true},
		{"ID错误不属于配置错误", ErrInvalidSnowflakeID, ErrInvalidConfiguration, false},
		{"不同错误", ErrInvalidMachineID, ErrInvalidEpoch, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, 期望 %v", got, tt.want)
			}
		})
	}
}

// TestIDInfo_Time 测试时间转换
func TestIDInfo_Time(t *testing.T) {
	info := &IDInfo{Timestamp: 1735689600000}
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := info.Time(); !got.Equal(want) {
		t.Errorf("Time() = %v, 期望 %v", got, want)
	}

	var nilInfo *IDInfo
	if got := nilInfo.Time(); !got.IsZero() {
		t.Errorf("nil IDInfo 应返回零值时间, 得到 %v", got)
	}
}
