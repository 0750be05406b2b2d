package snowflake

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "idgen"

// Collector 将生成器的监控指标导出为Prometheus指标
// 未启用监控的生成器不产出任何样本
type Collector struct {
	gen *Generator

	idCount          *prometheus.Desc
	sequenceOverflow *prometheus.Desc
	clockBackward    *prometheus.Desc
	casRetries       *prometheus.Desc
	waitSeconds      *prometheus.Desc
}

// NewCollector 创建绑定生成器的Collector，machine_id作为常量标签
func NewCollector(gen *Generator) *Collector {
	labels := prometheus.Labels{"machine_id": strconv.FormatInt(gen.GetMachineID(), 10)}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(metricsNamespace, "snowflake", name), help, nil, labels)
	}

	return &Collector{
		gen:              gen,
		idCount:          desc("ids_generated_total", "Total number of snowflake ids generated."),
		sequenceOverflow: desc("sequence_overflow_total", "Times the per-millisecond sequence was exhausted."),
		clockBackward:    desc("clock_backward_total", "Calls that observed the wall clock behind the held timestamp."),
		casRetries:       desc("cas_retries_total", "Compare-and-swap attempts lost to concurrent callers."),
		waitSeconds:      desc("wait_seconds_total", "Total time spent spinning for the next millisecond."),
	}
}

// Describe 实现prometheus.Collector接口
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.idCount
	ch <- c.sequenceOverflow
	ch <- c.clockBackward
	ch <- c.casRetries
	ch <- c.waitSeconds
}

// Collect 实现prometheus.Collector接口
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	m := c.gen.metrics
	if m == nil {
		return
	}

	ch <- prometheus.MustNewConstMetric(c.idCount, prometheus.CounterValue, float64(m.IDCount.Load()))
	ch <- prometheus.MustNewConstMetric(c.sequenceOverflow, prometheus.CounterValue, float64(m.SequenceOverflow.Load()))
	ch <- prometheus.MustNewConstMetric(c.clockBackward, prometheus.CounterValue, float64(m.ClockBackward.Load()))
	ch <- prometheus.MustNewConstMetric(c.casRetries, prometheus.CounterValue, float64(m.CASRetries.Load()))
	ch <- prometheus.MustNewConstMetric(c.waitSeconds, prometheus.CounterValue, float64(m.TotalWaitTimeNs.Load())/1e9)
}
