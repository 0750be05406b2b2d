package registry

import (
	"fmt"
	"sync"

	"intern-hub-common/pkg/config"
	"intern-hub-common/pkg/idgen/snowflake"
	"intern-hub-common/pkg/logger"
)

const (
	// DefaultGeneratorKey 默认生成器的键
	DefaultGeneratorKey = "default"
)

var (
	// 默认生成器实例
	defaultGenerator     *snowflake.Generator
	defaultGeneratorOnce sync.Once
	defaultGeneratorErr  error
)

// GetDefaultGenerator 获取默认的Snowflake生成器（单例模式）
// 配置来自环境变量（HUB_前缀），未配置时机器ID为1，使用默认epoch
// 生成器登记在全局注册表的DefaultGeneratorKey下
func GetDefaultGenerator() (*snowflake.Generator, error) {
	defaultGeneratorOnce.Do(func() {
		defaultGenerator, defaultGeneratorErr = newDefaultGenerator()
	})
	return defaultGenerator, defaultGeneratorErr
}

func newDefaultGenerator() (*snowflake.Generator, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, fmt.Errorf("load default generator config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("build default generator logger: %w", err)
	}

	genCfg, err := cfg.Snowflake.ToGeneratorConfig(log)
	if err != nil {
		return nil, err
	}

	return GetRegistry().GetOrCreate(DefaultGeneratorKey, genCfg)
}

// GenerateID 使用默认生成器生成ID
func GenerateID() (int64, error) {
	gen, err := GetDefaultGenerator()
	if err != nil {
		return 0, err
	}
	return gen.Next(), nil
}

// GenerateIDs 使用默认生成器批量生成ID
func GenerateIDs(n int) ([]int64, error) {
	gen, err := GetDefaultGenerator()
	if err != nil {
		return nil, err
	}
	return gen.NextBatch(n)
}

// ResetDefaultGenerator 重置默认生成器（仅用于测试，不能与GetDefaultGenerator并发调用）
func ResetDefaultGenerator() {
	if defaultGenerator != nil {
		_ = GetRegistry().Remove(DefaultGeneratorKey)
	}
	defaultGeneratorOnce = sync.Once{}
	defaultGenerator = nil
	defaultGeneratorErr = nil
}
