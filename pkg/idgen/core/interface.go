package core

// IIDGenerator ID生成器基础接口
type IIDGenerator interface {
	// Next 生成下一个唯一ID（线程安全，永不失败）
	Next() int64
}

// IBatchGenerator 批量ID生成接口
type IBatchGenerator interface {
	IIDGenerator

	// NextBatch 批量生成指定数量的ID（线程安全）
	NextBatch(n int) ([]int64, error)
}

// IConfigurableGenerator 可配置的生成器接口
type IConfigurableGenerator interface {
	// GetMachineID 获取机器ID（0-1023）
	GetMachineID() int64

	// GetEpoch 获取起始时间戳（Unix毫秒）
	GetEpoch() int64
}

// IMonitorableGenerator 可监控的生成器接口
type IMonitorableGenerator interface {
	// GetMetrics 获取性能监控指标
	GetMetrics() map[string]uint64

	// ResetMetrics 重置性能监控指标
	ResetMetrics()

	// GetIDCount 获取已生成的ID总数
	GetIDCount() uint64
}

// IIDParser ID解析器接口
type IIDParser interface {
	// Parse 解析ID，提取完整的元信息
	Parse(id int64) (*IDInfo, error)

	// ExtractTimestamp 提取时间戳（Unix毫秒）
	ExtractTimestamp(id int64) int64

	// ExtractMachineID 提取机器ID
	ExtractMachineID(id int64) int64

	// ExtractSequence 提取序列号
	ExtractSequence(id int64) int64
}

// IIDValidator ID验证器接口
type IIDValidator interface {
	// Validate 验证ID的有效性
	Validate(id int64) error

	// ValidateBatch 批量验证ID
	ValidateBatch(ids []int64) error
}

// IGenerator 完整功能的生成器接口
type IGenerator interface {
	IBatchGenerator
	IConfigurableGenerator
	IMonitorableGenerator
	IIDParser
}
