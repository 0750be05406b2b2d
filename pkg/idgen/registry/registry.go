package registry

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	"go.uber.org/zap"

	"intern-hub-common/pkg/idgen/core"
	"intern-hub-common/pkg/idgen/snowflake"
)

const (
	// defaultMaxGenerators 默认最大生成器数量
	// 说明：限制注册表中可存储的生成器数量，防止内存泄漏
	defaultMaxGenerators = 100

	// absoluteMaxGenerators 绝对最大生成器数量（硬性上限）
	// 说明：即使通过SetMaxGenerators也不能超过此限制
	absoluteMaxGenerators = 100_000

	// maxKeyLength 键的最大长度
	maxKeyLength = 256
)

// keyFormatRegex 键的合法字符正则表达式
// 允许字符：字母（a-z, A-Z）、数字（0-9）、下划线(_)、连字符(-)、点(.)
var keyFormatRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)

// slot 同一epoch下的一个机器ID，两个生成器占用同一slot会产生重复ID
type slot struct {
	epoch     int64
	machineID int64
}

// Registry 生成器注册表
type Registry struct {
	generators    map[string]*snowflake.Generator // 生成器映射表
	slots         map[slot]string                 // 已占用的(epoch, 机器ID) -> key
	maxGenerators int                             // 最大生成器数量限制
	logger        *zap.Logger                     // nil时使用zap全局logger
	mu            sync.RWMutex                    // 读写锁，保护并发访问
}

var (
	// globalRegistry 全局生成器注册表实例（单例）
	globalRegistry *Registry

	// registryOnce 确保注册表只初始化一次
	registryOnce sync.Once
)

// NewRegistry 创建独立的注册表
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		generators:    make(map[string]*snowflake.Generator),
		slots:         make(map[slot]string),
		maxGenerators: defaultMaxGenerators,
		logger:        logger,
	}
}

// GetRegistry 获取全局生成器注册表
func GetRegistry() *Registry {
	registryOnce.Do(func() {
		globalRegistry = NewRegistry(nil)
	})
	return globalRegistry
}

func (r *Registry) log() *zap.Logger {
	if r.logger != nil {
		return r.logger
	}
	return zap.L()
}

// Create 创建并注册一个新的生成器
func (r *Registry) Create(key string, config *snowflake.Config) (*snowflake.Generator, error) {
	// 步骤1：验证参数
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if config == nil {
		return nil, core.ErrNilConfig
	}

	// 步骤2：加写锁，保护注册表
	r.mu.Lock()
	defer r.mu.Unlock()

	// 步骤3：检查key是否已存在
	if _, exists := r.generators[key]; exists {
		return nil, fmt.Errorf("%w: key '%s'", core.ErrGeneratorAlreadyExists, key)
	}

	return r.createLocked(key, config)
}

// GetOrCreate 获取生成器，如果不存在则创建
// 已存在时直接返回，忽略config
func (r *Registry) GetOrCreate(key string, config *snowflake.Config) (*snowflake.Generator, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	// 快速路径：读锁命中
	r.mu.RLock()
	generator, exists := r.generators[key]
	r.mu.RUnlock()
	if exists {
		return generator, nil
	}

	if config == nil {
		return nil, core.ErrNilConfig
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// 双重检查：加写锁期间可能已被其他goroutine创建
	if generator, exists := r.generators[key]; exists {
		return generator, nil
	}

	return r.createLocked(key, config)
}

// createLocked 创建生成器并登记，调用方必须持有写锁
func (r *Registry) createLocked(key string, config *snowflake.Config) (*snowflake.Generator, error) {
	// 检查数量限制
	if len(r.generators) >= r.maxGenerators {
		return nil, fmt.Errorf("%w: current %d, max %d",
			core.ErrMaxGeneratorsReached, len(r.generators), r.maxGenerators)
	}

	// 先验证配置，保证机器ID检查基于合法值
	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := slot{epoch: config.EpochMillis(), machineID: config.MachineID}
	if owner, used := r.slots[s]; used {
		return nil, fmt.Errorf("%w: machine id %d already used by '%s'",
			core.ErrMachineIDInUse, config.MachineID, owner)
	}

	generator, err := snowflake.NewWithConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	r.generators[key] = generator
	r.slots[s] = key

	r.log().Info("生成器创建成功",
		zap.String("key", key),
		zap.Int64("machine_id", config.MachineID))

	return generator, nil
}

// Get 获取已注册的生成器
func (r *Registry) Get(key string) (*snowflake.Generator, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	// 使用读锁，允许并发读取
	r.mu.RLock()
	defer r.mu.RUnlock()

	generator, exists := r.generators[key]
	if !exists {
		return nil, fmt.Errorf("%w: key '%s'", core.ErrGeneratorNotFound, key)
	}

	return generator, nil
}

// Has 检查生成器是否存在
func (r *Registry) Has(key string) bool {
	if err := validateKey(key); err != nil {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.generators[key]
	return exists
}

// Remove 移除生成器，同时释放其占用的机器ID
// 注意：释放后若同一机器ID在同一毫秒内被新生成器复用，可能产生重复ID
func (r *Registry) Remove(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	generator, exists := r.generators[key]
	if !exists {
		return fmt.Errorf("%w: key '%s'", core.ErrGeneratorNotFound, key)
	}

	delete(r.generators, key)
	delete(r.slots, slot{epoch: generator.GetEpoch(), machineID: generator.GetMachineID()})

	r.log().Info("生成器已移除", zap.String("key", key))

	return nil
}

// Clear 清空所有生成器
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	// 创建新的map，让GC回收旧的map
	r.generators = make(map[string]*snowflake.Generator)
	r.slots = make(map[slot]string)

	r.log().Info("注册表已清空")
}

// Count 获取生成器数量
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.generators)
}

// ListKeys 列出所有生成器的键（已排序）
func (r *Registry) ListKeys() []string {
	r.mu.RLock()
	keys := make([]string, 0, len(r.generators))
	for key := range r.generators {
		keys = append(keys, key)
	}
	r.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// SetMaxGenerators 设置最大生成器数量
func (r *Registry) SetMaxGenerators(max int) error {
	if max <= 0 {
		return fmt.Errorf("max generators must be positive, got %d", max)
	}

	// 检查绝对上限
	if max > absoluteMaxGenerators {
		return fmt.Errorf("max generators cannot exceed absolute limit %d, got %d",
			absoluteMaxGenerators, max)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// 检查当前数量是否已超过新的限制
	if len(r.generators) > max {
		return fmt.Errorf("current generator count %d exceeds new max %d",
			len(r.generators), max)
	}

	r.maxGenerators = max

	r.log().Info("注册表容量已调整",
		zap.Int("new_max", max),
		zap.Int("current_count", len(r.generators)))

	return nil
}

// GetMaxGenerators 获取最大生成器数量
func (r *Registry) GetMaxGenerators() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.maxGenerators
}

// validateKey 验证键的有效性
func validateKey(key string) error {
	// 规则1：不能为空
	if len(key) == 0 {
		return fmt.Errorf("%w: key cannot be empty", core.ErrInvalidKey)
	}

	// 规则2：长度限制
	if len(key) > maxKeyLength {
		return fmt.Errorf("%w: key too long (max %d), got %d",
			core.ErrInvalidKey, maxKeyLength, len(key))
	}

	// 规则3：格式验证（只允许安全字符）
	if !keyFormatRegex.MatchString(key) {
		return fmt.Errorf("%w: key '%s' contains invalid characters",
			core.ErrInvalidKey, key)
	}

	return nil
}
