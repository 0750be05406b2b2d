package core

import "time"

// IDInfo ID信息结构
type IDInfo struct {
	ID        int64 // 原始ID值
	Timestamp int64 // 时间戳（Unix毫秒）
	MachineID int64 // 机器ID（0-1023）
	Sequence  int64 // 序列号（0-4095，同一毫秒内的序号）
}

// Time 将时间戳转换为UTC时间
func (i *IDInfo) Time() time.Time {
	if i == nil {
		return time.Time{}
	}
	return time.UnixMilli(i.Timestamp).UTC()
}
