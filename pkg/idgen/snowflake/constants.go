package snowflake

const (
	// DefaultEpoch 默认起始时间戳 (2025-01-01 00:00:00 UTC)
	DefaultEpoch int64 = 1735689600000 // 毫秒时间戳

	// 位数分配
	TimestampBits = 41 // 时间戳位数（约69年）
	MachineIDBits = 10 // 机器ID位数
	SequenceBits  = 12 // 序列号位数

	// 最大值计算(切记不是个数)
	MaxTimestamp = -1 ^ (-1 << TimestampBits) // 2^41 - 1
	MaxMachineID = -1 ^ (-1 << MachineIDBits) // 1023 (2^10 - 1) [0, 1023]
	MaxSequence  = -1 ^ (-1 << SequenceBits)  // 4095 (2^12 - 1) [0, 4095]

	// 位移量
	MachineIDShift = SequenceBits                 // 12
	TimestampShift = SequenceBits + MachineIDBits // 22

	// 批量生成最大数量（支持跨毫秒生成）
	maxBatchSize = 100_000

	// 允许的未来时间容差（毫秒）
	maxFutureTimeTolerance = 60 * 1000 // 1分钟
)
