package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration 生成器配置无效（所有构造失败的根错误）
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidMachineID 机器ID超出有效范围
	ErrInvalidMachineID = fmt.Errorf("%w: machine id must be between 0 and 1023", ErrInvalidConfiguration)

	// ErrInvalidEpoch 起始时间无效（在未来，或已超出41位时间戳可表示范围）
	ErrInvalidEpoch = fmt.Errorf("%w: epoch out of usable range", ErrInvalidConfiguration)

	// ErrNilConfig 配置为nil
	ErrNilConfig = fmt.Errorf("%w: config cannot be nil", ErrInvalidConfiguration)

	// ErrInvalidSnowflakeID 无效的Snowflake ID
	ErrInvalidSnowflakeID = errors.New("invalid snowflake id")

	// ErrInvalidBatchSize 批量生成数量无效
	ErrInvalidBatchSize = errors.New("invalid batch size")

	// ErrGeneratorNotFound 生成器未找到
	ErrGeneratorNotFound = errors.New("generator not found")

	// ErrGeneratorAlreadyExists 生成器已存在
	ErrGeneratorAlreadyExists = errors.New("generator already exists")

	// ErrMachineIDInUse 同一epoch下机器ID已被其他生成器占用
	ErrMachineIDInUse = errors.New("machine id already in use")

	// ErrInvalidKey 无效的键
	ErrInvalidKey = errors.New("invalid key")

	// ErrMaxGeneratorsReached 达到最大生成器数量
	ErrMaxGeneratorsReached = errors.New("maximum number of generators reached")
)
