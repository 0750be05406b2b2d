package snowflake

import (
	"fmt"
	"time"

	"intern-hub-common/pkg/idgen/core"
)

// defaultParser 绑定DefaultEpoch的共享解析器（无状态，并发安全）
var defaultParser = NewParser(DefaultEpoch)

// Parser Snowflake ID解析器
// 所有提取方法都是纯函数，不访问生成器的共享状态
type Parser struct {
	epoch     int64      // 起始时间戳（Unix毫秒）
	validator *Validator // 验证器，用于Parse前验证ID有效性
}

// NewParser 创建绑定指定epoch的解析器
func NewParser(epoch int64) *Parser {
	return &Parser{
		epoch:     epoch,
		validator: NewValidator(epoch),
	}
}

// DefaultParser 返回绑定DefaultEpoch的解析器
func DefaultParser() *Parser {
	return defaultParser
}

// GetEpoch 获取起始时间戳（Unix毫秒）
func (p *Parser) GetEpoch() int64 {
	return p.epoch
}

// Parse 解析Snowflake ID，提取完整的元信息
// 只解析有效的ID，避免返回错误的元信息
func (p *Parser) Parse(id int64) (*core.IDInfo, error) {
	if err := p.validator.Validate(id); err != nil {
		return nil, fmt.Errorf("parse snowflake id: %w", err)
	}

	return &core.IDInfo{
		ID:        id,
		Timestamp: p.ExtractTimestamp(id),
		MachineID: p.ExtractMachineID(id),
		Sequence:  p.ExtractSequence(id),
	}, nil
}

// ExtractTimestamp 提取时间戳（Unix毫秒）
// 右移22位，取41位，再加上epoch
func (p *Parser) ExtractTimestamp(id int64) int64 {
	return ((id >> TimestampShift) & MaxTimestamp) + p.epoch
}

// ExtractMachineID 提取机器ID（右移12位，取低10位）
func (p *Parser) ExtractMachineID(id int64) int64 {
	return (id >> MachineIDShift) & MaxMachineID
}

// ExtractSequence 提取序列号（取低12位）
func (p *Parser) ExtractSequence(id int64) int64 {
	return id & MaxSequence
}

// ExtractTime 提取时间戳并转换为UTC时间
func (p *Parser) ExtractTime(id int64) time.Time {
	return time.UnixMilli(p.ExtractTimestamp(id)).UTC()
}
