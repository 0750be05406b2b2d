// Package idgen 无锁Snowflake ID分配的统一入口
//
// 位布局（从高到低）：1位符号(恒为0) | 41位时间戳 | 10位机器ID | 12位序列号
//
// 子包：
//   - core：接口与错误定义
//   - snowflake：生成器、解析器、验证器与监控
//   - registry：按名称管理多个生成器，以及进程级默认生成器
//   - domain：ID值类型（JSON字符串序列化、数据库读写）
//   - gormid：GORM主键分配插件
//
// 大多数调用方只需要本包：
//
//	id, err := idgen.NewID()
package idgen

import (
	"time"

	"intern-hub-common/pkg/idgen/core"
	"intern-hub-common/pkg/idgen/domain"
	"intern-hub-common/pkg/idgen/registry"
	"intern-hub-common/pkg/idgen/snowflake"
)

type (
	// ID Snowflake ID值类型
	ID = domain.ID
	// IDSlice ID切片
	IDSlice = domain.IDSlice
	// IDSet ID集合
	IDSet = domain.IDSet
	// IDInfo 解码后的ID信息
	IDInfo = core.IDInfo
	// Generator Snowflake生成器
	Generator = snowflake.Generator
)

// New 使用默认epoch创建生成器，机器ID在进程间必须唯一
func New(machineID int64) (*Generator, error) {
	return snowflake.New(machineID)
}

// NewWithEpoch 使用自定义epoch创建生成器
func NewWithEpoch(machineID int64, epoch time.Time) (*Generator, error) {
	return snowflake.NewWithEpoch(machineID, epoch)
}

// NewID 使用默认生成器生成ID
func NewID() (ID, error) {
	id, err := registry.GenerateID()
	if err != nil {
		return 0, err
	}
	return ID(id), nil
}

// NewIDs 使用默认生成器批量生成ID
func NewIDs(n int) (IDSlice, error) {
	ids, err := registry.GenerateIDs(n)
	if err != nil {
		return nil, err
	}
	return domain.FromInt64s(ids), nil
}

// ParseID 从字符串解析ID（十进制、0x、0b）
func ParseID(s string) (ID, error) {
	return domain.ParseID(s)
}
