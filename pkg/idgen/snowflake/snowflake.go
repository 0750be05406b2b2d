package snowflake

import (
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"intern-hub-common/pkg/idgen/core"
)

// Generator Snowflake算法的ID生成器实现
//
// 无锁设计：全部可变状态压缩在一个64位原子值中，
// 高位为上次时间戳（相对epoch），低12位为序列号，
// 并发调用通过CAS重试解决竞争，不存在互斥锁。
type Generator struct {
	// ========== 核心状态 ==========
	state atomic.Uint64 // (lastTimestamp << SequenceBits) | sequence

	// ========== 不可变配置 ==========
	*Parser                // 绑定同一epoch的解析器
	machineID        int64 // 机器ID（0-1023）
	machineIDShifted int64 // 预计算的 machineID << MachineIDShift
	clock            func() int64

	// ========== 监控和工具 ==========
	metrics *Metrics // 性能监控指标（可选，nil时不收集）
	logger  *zap.Logger
}

// New 使用默认epoch创建生成器
func New(machineID int64) (*Generator, error) {
	return NewWithConfig(&Config{MachineID: machineID})
}

// NewWithEpoch 使用自定义epoch创建生成器
func NewWithEpoch(machineID int64, epoch time.Time) (*Generator, error) {
	return NewWithConfig(&Config{MachineID: machineID, Epoch: epoch})
}

// NewWithConfig 使用配置创建Snowflake ID生成器
func NewWithConfig(config *Config) (*Generator, error) {
	if config == nil {
		return nil, core.ErrNilConfig
	}

	// 步骤1：验证配置（失败时不返回任何部分构造的生成器）
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// 步骤2：使用副本设置默认值，不修改调用方的配置
	cfg := config.Clone()
	cfg.SetDefaults()

	var metrics *Metrics
	if cfg.EnableMetrics {
		metrics = NewMetrics()
	}

	epoch := cfg.EpochMillis()
	g := &Generator{
		Parser:           NewParser(epoch),
		machineID:        cfg.MachineID,
		machineIDShifted: cfg.MachineID << MachineIDShift,
		clock:            systemClock,
		metrics:          metrics,
		logger:           cfg.Logger,
	}

	g.logger.Info("Snowflake生成器创建成功",
		zap.Int64("machine_id", g.machineID),
		zap.Int64("epoch", epoch),
		zap.Bool("metrics_enabled", metrics != nil))

	return g, nil
}

// systemClock 当前Unix毫秒
func systemClock() int64 {
	return time.Now().UnixMilli()
}

// Next 生成下一个唯一ID（线程安全，永不失败）
func (g *Generator) Next() int64 {
	for {
		// 步骤1：读取当前时间（相对epoch）
		now := g.clock() - g.epoch

		// 步骤2：读取并解码当前状态
		current := g.state.Load()
		lastTs, seq := unpackState(current)

		// 步骤3：计算候选状态
		var nextTs, nextSeq int64
		if now > lastTs {
			nextTs, nextSeq = now, 0
		} else {
			// 同一毫秒或时钟回拨：保持时间戳，序列号递增
			if now < lastTs && g.metrics != nil {
				g.metrics.ClockBackward.Add(1)
			}
			nextTs, nextSeq = lastTs, seq+1
			if nextSeq > MaxSequence {
				nextTs, nextSeq = g.spinUntilNextMillis(lastTs), 0
			}
		}

		// 步骤4：CAS提交，失败说明被其他调用方抢先，重新开始
		if g.state.CompareAndSwap(current, packState(nextTs, nextSeq)) {
			if g.metrics != nil {
				g.metrics.IDCount.Add(1)
			}
			return (nextTs << TimestampShift) | g.machineIDShifted | nextSeq
		}
		if g.metrics != nil {
			g.metrics.CASRetries.Add(1)
		}
	}
}

// NextBatch 批量生成ID（线程安全）
// 每个毫秒桶只做一次CAS，一次性预留一段连续序列号
func (g *Generator) NextBatch(n int) ([]int64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: batch size must be positive, got %d",
			core.ErrInvalidBatchSize, n)
	}
	if n > maxBatchSize {
		return nil, fmt.Errorf("%w: batch size too large (max %d), got %d",
			core.ErrInvalidBatchSize, maxBatchSize, n)
	}

	ids := make([]int64, 0, n)
	for len(ids) < n {
		now := g.clock() - g.epoch
		current := g.state.Load()
		lastTs, seq := unpackState(current)

		var ts, first int64
		if now > lastTs {
			ts, first = now, 0
		} else {
			if now < lastTs && g.metrics != nil {
				g.metrics.ClockBackward.Add(1)
			}
			ts, first = lastTs, seq+1
			if first > MaxSequence {
				ts, first = g.spinUntilNextMillis(lastTs), 0
			}
		}

		// 本轮数量不能超过当前毫秒剩余的序列号
		count := int64(n - len(ids))
		if available := MaxSequence - first + 1; count > available {
			count = available
		}
		last := first + count - 1

		if !g.state.CompareAndSwap(current, packState(ts, last)) {
			if g.metrics != nil {
				g.metrics.CASRetries.Add(1)
			}
			continue
		}

		base := (ts << TimestampShift) | g.machineIDShifted
		for s := first; s <= last; s++ {
			ids = append(ids, base|s)
		}
	}

	if g.metrics != nil {
		g.metrics.IDCount.Add(uint64(n))
	}
	return ids, nil
}

// spinUntilNextMillis 忙等待直到时钟越过lastTs
// 不休眠：等待上限为时钟的一个刻度（约1ms）
func (g *Generator) spinUntilNextMillis(lastTs int64) int64 {
	var start time.Time
	if g.metrics != nil {
		g.metrics.SequenceOverflow.Add(1)
		start = time.Now()
	}

	ts := g.clock() - g.epoch
	if ts < lastTs {
		g.logger.Warn("时钟回拨，保持上次时间戳并等待时钟追上",
			zap.Int64("machine_id", g.machineID),
			zap.Int64("drift_ms", lastTs-ts))
	}
	for ts <= lastTs {
		ts = g.clock() - g.epoch
	}

	if g.metrics != nil {
		g.metrics.WaitCount.Add(1)
		g.metrics.TotalWaitTimeNs.Add(uint64(time.Since(start).Nanoseconds()))
	}
	return ts
}

func packState(ts, seq int64) uint64 {
	return uint64(ts<<SequenceBits | seq)
}

func unpackState(state uint64) (ts, seq int64) {
	return int64(state >> SequenceBits), int64(state & MaxSequence)
}

// GetMachineID 获取机器ID
func (g *Generator) GetMachineID() int64 {
	return g.machineID
}

// GetMetrics 获取性能监控指标
func (g *Generator) GetMetrics() map[string]uint64 {
	return g.metrics.ToMap()
}

// ResetMetrics 重置性能监控指标
func (g *Generator) ResetMetrics() {
	g.metrics.Reset()
}

// GetIDCount 获取已生成的ID总数
func (g *Generator) GetIDCount() uint64 {
	if g.metrics == nil {
		return 0
	}
	return g.metrics.IDCount.Load()
}

// ValidateID 使用本生成器的epoch验证ID
func (g *Generator) ValidateID(id int64) error {
	return g.Parser.validator.Validate(id)
}

var _ core.IGenerator = (*Generator)(nil)
