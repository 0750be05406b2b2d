package snowflake

import (
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"intern-hub-common/pkg/idgen/core"
)

// TestNew 测试创建Snowflake生成器
func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		machineID int64
		wantErr   bool
	}{
		{"有效参数_最小值", 0, false},
		{"有效参数_最大值", 1023, false},
		{"有效参数_中间值", 512, false},
		{"无效MachineID_负数", -1, true},
		{"无效MachineID_超出", 1024, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := New(tt.machineID)
			if tt.wantErr {
				if err == nil {
					t.Fatal("期望得到错误，但没有返回错误")
				}
				if !errors.Is(err, core.ErrInvalidConfiguration) {
					t.Errorf("错误应属于ErrInvalidConfiguration, 得到: %v", err)
				}
				if !errors.Is(err, core.ErrInvalidMachineID) {
					t.Errorf("错误应属于ErrInvalidMachineID, 得到: %v", err)
				}
				if gen != nil {
					t.Error("失败时不应返回生成器")
				}
				return
			}
			if err != nil {
				t.Fatalf("不期望错误，但得到: %v", err)
			}
			if gen.GetMachineID() != tt.machineID {
				t.Errorf("GetMachineID() = %d, 期望 %d", gen.GetMachineID(), tt.machineID)
			}
			if gen.GetEpoch() != DefaultEpoch {
				t.Errorf("GetEpoch() = %d, 期望 %d", gen.GetEpoch(), DefaultEpoch)
			}
		})
	}
}

// TestNewWithEpoch 测试自定义epoch
func TestNewWithEpoch(t *testing.T) {
	tests := []struct {
		name    string
		epoch   time.Time
		wantErr bool
	}{
		{"2020年", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"一秒前", time.Now().Add(-time.Second), false},
		{"未来时间", time.Now().Add(time.Hour), true},
		{"超出41位时间戳范围", time.Now().AddDate(-70, 0, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewWithEpoch(1, tt.epoch)
			if tt.wantErr {
				if !errors.Is(err, core.ErrInvalidEpoch) {
					t.Fatalf("期望ErrInvalidEpoch, 得到: %v", err)
				}
				if !errors.Is(err, core.ErrInvalidConfiguration) {
					t.Errorf("错误应属于ErrInvalidConfiguration, 得到: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("不期望错误，但得到: %v", err)
			}
			if gen.GetEpoch() != tt.epoch.UnixMilli() {
				t.Errorf("GetEpoch() = %d, 期望 %d", gen.GetEpoch(), tt.epoch.UnixMilli())
			}
		})
	}
}

// TestNewWithConfig 测试使用配置创建
func TestNewWithConfig(t *testing.T) {
	t.Run("有效配置", func(t *testing.T) {
		config := &Config{MachineID: 1, EnableMetrics: true}

		gen, err := NewWithConfig(config)
		if err != nil {
			t.Fatalf("创建失败: %v", err)
		}
		if gen.GetMachineID() != 1 {
			t.Errorf("MachineID = %d, 期望 1", gen.GetMachineID())
		}
		if config.Logger != nil {
			t.Error("不应修改调用方的配置")
		}
	})

	t.Run("nil配置", func(t *testing.T) {
		_, err := NewWithConfig(nil)
		if !errors.Is(err, core.ErrNilConfig) {
			t.Errorf("期望ErrNilConfig, 得到: %v", err)
		}
	})
}

// TestNext 测试单线程唯一性、正数性和单调性
func TestNext(t *testing.T) {
	gen, err := New(1)
	if err != nil {
		t.Fatal(err)
	}

	ids := make(map[int64]bool)
	count := 10000
	var prev int64

	for i := 0; i < count; i++ {
		id := gen.Next()
		if id <= 0 {
			t.Fatalf("ID应为正数，得到: %d", id)
		}
		if ids[id] {
			t.Fatalf("发现重复ID: %d", id)
		}
		if id <= prev {
			t.Fatalf("ID未单调递增: prev=%d, current=%d", prev, id)
		}
		ids[id] = true
		prev = id
	}

	if len(ids) != count {
		t.Errorf("生成了 %d 个唯一ID，期望 %d 个", len(ids), count)
	}
}

// TestNext_SequenceOverflow 快速生成超过单毫秒上限的ID
func TestNext_SequenceOverflow(t *testing.T) {
	gen, err := New(1)
	if err != nil {
		t.Fatal(err)
	}

	count := 5000
	ids := make(map[int64]bool, count)
	var prev int64
	for i := 0; i < count; i++ {
		id := gen.Next()
		if ids[id] {
			t.Fatalf("发现重复ID: %d", id)
		}
		if id <= prev {
			t.Fatalf("ID未单调递增: prev=%d, current=%d", prev, id)
		}
		ids[id] = true
		prev = id
	}
}

// TestNext_Extraction 测试时间戳和机器ID的往返提取
func TestNext_Extraction(t *testing.T) {
	for _, machineID := range []int64{0, 1, 100, 500, 1023} {
		gen, err := New(machineID)
		if err != nil {
			t.Fatal(err)
		}

		before := time.Now().UnixMilli()
		id := gen.Next()
		after := time.Now().UnixMilli()

		if got := gen.ExtractMachineID(id); got != machineID {
			t.Errorf("ExtractMachineID() = %d, 期望 %d", got, machineID)
		}
		ts := gen.ExtractTimestamp(id)
		if ts < before || ts > after {
			t.Errorf("ExtractTimestamp() = %d, 期望在 [%d, %d] 内", ts, before, after)
		}
	}
}

// TestNext_CustomEpoch 测试自定义epoch下的时间戳提取
func TestNext_CustomEpoch(t *testing.T) {
	epoch := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	gen, err := NewWithEpoch(1, epoch)
	if err != nil {
		t.Fatal(err)
	}

	id := gen.Next()
	ts := gen.ExtractTimestamp(id)
	if ts < epoch.UnixMilli() {
		t.Errorf("ExtractTimestamp() = %d, 不应早于epoch %d", ts, epoch.UnixMilli())
	}
	if now := time.Now().UnixMilli(); ts > now {
		t.Errorf("ExtractTimestamp() = %d, 不应晚于当前时间 %d", ts, now)
	}
	if id <= 0 {
		t.Errorf("ID应为正数，得到: %d", id)
	}
}

// TestConcurrency 测试并发唯一性
func TestConcurrency(t *testing.T) {
	gen, err := New(1)
	if err != nil {
		t.Fatal(err)
	}

	const goroutines = 10
	const perGoroutine = 1000

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[int64]bool, goroutines*perGoroutine)
	)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]int64, 0, perGoroutine)
			var prev int64
			for j := 0; j < perGoroutine; j++ {
				id := gen.Next()
				// 同一goroutine内观察到的ID必须递增
				if id <= prev {
					t.Errorf("goroutine内ID未递增: prev=%d, current=%d", prev, id)
				}
				prev = id
				local = append(local, id)
			}
			mu.Lock()
			for _, id := range local {
				ids[id] = true
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(ids) != goroutines*perGoroutine {
		t.Errorf("并发生成了 %d 个唯一ID，期望 %d 个", len(ids), goroutines*perGoroutine)
	}
}

// TestCrossInstance 测试不同机器ID的实例之间不冲突
func TestCrossInstance(t *testing.T) {
	gen1, err := New(1)
	if err != nil {
		t.Fatal(err)
	}
	gen2, err := New(2)
	if err != nil {
		t.Fatal(err)
	}

	const count = 5000
	results := make([][]int64, 2)

	var wg sync.WaitGroup
	for i, gen := range []*Generator{gen1, gen2} {
		wg.Add(1)
		go func(i int, gen *Generator) {
			defer wg.Done()
			out := make([]int64, count)
			for j := range out {
				out[j] = gen.Next()
			}
			results[i] = out
		}(i, gen)
	}
	wg.Wait()

	seen := make(map[int64]bool, 2*count)
	for i, gen := range []*Generator{gen1, gen2} {
		for _, id := range results[i] {
			if got := gen.ExtractMachineID(id); got != gen.GetMachineID() {
				t.Fatalf("ExtractMachineID() = %d, 期望 %d", got, gen.GetMachineID())
			}
			if seen[id] {
				t.Fatalf("两个实例之间发现重复ID: %d", id)
			}
			seen[id] = true
		}
	}
}

// TestNextBatch 测试批量生成ID
func TestNextBatch(t *testing.T) {
	gen, err := New(2)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"批量生成1个", 1, false},
		{"批量生成1000个", 1000, false},
		{"批量生成10000个_跨毫秒", 10000, false},
		{"无效数量_负数", -1, true},
		{"无效数量_零", 0, true},
		{"无效数量_超过最大值", maxBatchSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := gen.NextBatch(tt.n)
			if tt.wantErr {
				if !errors.Is(err, core.ErrInvalidBatchSize) {
					t.Errorf("期望ErrInvalidBatchSize, 得到: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("不期望错误，但得到: %v", err)
			}
			if len(ids) != tt.n {
				t.Fatalf("生成了 %d 个ID，期望 %d 个", len(ids), tt.n)
			}
			for i := 1; i < len(ids); i++ {
				if ids[i] <= ids[i-1] {
					t.Fatalf("批量ID未严格递增: [%d]=%d, [%d]=%d", i-1, ids[i-1], i, ids[i])
				}
			}
		})
	}
}

// TestNextBatch_MixedConcurrency 测试Next与NextBatch并发混用的唯一性
func TestNextBatch_MixedConcurrency(t *testing.T) {
	gen, err := New(3)
	if err != nil {
		t.Fatal(err)
	}

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		all []int64
	)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var local []int64
			if i%2 == 0 {
				for j := 0; j < 2000; j++ {
					local = append(local, gen.Next())
				}
			} else {
				for j := 0; j < 4; j++ {
					ids, err := gen.NextBatch(500)
					if err != nil {
						t.Errorf("NextBatch失败: %v", err)
						return
					}
					local = append(local, ids...)
				}
			}
			mu.Lock()
			all = append(all, local...)
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	for i := 1; i < len(all); i++ {
		if all[i] == all[i-1] {
			t.Fatalf("发现重复ID: %d", all[i])
		}
	}
	if len(all) != 16000 {
		t.Errorf("共生成 %d 个ID，期望 16000", len(all))
	}
}

// TestGetMetrics 测试获取监控指标
func TestGetMetrics(t *testing.T) {
	gen, err := NewWithConfig(&Config{MachineID: 1, EnableMetrics: true})
	if err != nil {
		t.Fatal(err)
	}

	count := 100
	for i := 0; i < count; i++ {
		gen.Next()
	}
	if _, err := gen.NextBatch(50); err != nil {
		t.Fatal(err)
	}

	metrics := gen.GetMetrics()
	if metrics["metrics_enabled"] != 1 {
		t.Error("监控应已启用")
	}
	if metrics["id_count"] != 150 {
		t.Errorf("id_count = %d, 期望 150", metrics["id_count"])
	}
	if gen.GetIDCount() != 150 {
		t.Errorf("GetIDCount() = %d, 期望 150", gen.GetIDCount())
	}
}

// TestGetMetrics_Disabled 测试未启用监控
func TestGetMetrics_Disabled(t *testing.T) {
	gen, err := New(1)
	if err != nil {
		t.Fatal(err)
	}
	gen.Next()

	if gen.GetMetrics()["metrics_enabled"] != 0 {
		t.Error("监控应未启用")
	}
	if gen.GetIDCount() != 0 {
		t.Errorf("GetIDCount() = %d, 期望 0", gen.GetIDCount())
	}
	// 未启用时重置不应panic
	gen.ResetMetrics()
}

// TestResetMetrics 测试重置监控指标
func TestResetMetrics(t *testing.T) {
	gen, err := NewWithConfig(&Config{MachineID: 1, EnableMetrics: true})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		gen.Next()
	}
	gen.ResetMetrics()

	if gen.GetIDCount() != 0 {
		t.Errorf("重置后 GetIDCount() = %d, 期望 0", gen.GetIDCount())
	}
}

// TestValidateID 测试生成器验证ID
func TestValidateID(t *testing.T) {
	gen, err := New(1)
	if err != nil {
		t.Fatal(err)
	}

	if err := gen.ValidateID(gen.Next()); err != nil {
		t.Errorf("新生成的ID应有效: %v", err)
	}
	if err := gen.ValidateID(0); !errors.Is(err, core.ErrInvalidSnowflakeID) {
		t.Errorf("零值ID应无效, 得到: %v", err)
	}
}

// BenchmarkNext 基准测试：单线程生成
func BenchmarkNext(b *testing.B) {
	gen, err := New(1)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gen.Next()
	}
}

// BenchmarkNextParallel 基准测试：并发生成
func BenchmarkNextParallel(b *testing.B) {
	gen, err := New(1)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			gen.Next()
		}
	})
}

// BenchmarkNextBatch 基准测试：批量生成
func BenchmarkNextBatch(b *testing.B) {
	gen, err := New(1)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := gen.NextBatch(100); err != nil {
			b.Fatal(err)
		}
	}
}
