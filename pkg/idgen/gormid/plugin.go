// Package gormid 提供GORM插件，在Create时为主键分配Snowflake ID
//
// 使用方式：
//
//	gen, _ := snowflake.New(1)
//	_ = db.Use(gormid.New(gen))
//
// 模型主键需为整数类型并关闭自增，例如：
//
//	ID domain.ID `gorm:"primaryKey;autoIncrement:false"`
package gormid

import (
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"intern-hub-common/pkg/idgen/core"
)

const (
	pluginName   = "gormid"
	callbackName = "gormid:assign_id"
)

// Plugin 主键ID分配插件
type Plugin struct {
	gen core.IBatchGenerator
}

// New 创建插件
func New(gen core.IBatchGenerator) *Plugin {
	return &Plugin{gen: gen}
}

// Name 实现gorm.Plugin接口
func (p *Plugin) Name() string {
	return pluginName
}

// Initialize 实现gorm.Plugin接口，在gorm:create之前注册回调
func (p *Plugin) Initialize(db *gorm.DB) error {
	return db.Callback().Create().Before("gorm:create").Register(callbackName, p.assignID)
}

// assignID 为零值主键分配ID，已设置的主键保持不变
func (p *Plugin) assignID(db *gorm.DB) {
	if db.Error != nil || db.Statement.Schema == nil {
		return
	}

	field := db.Statement.Schema.PrioritizedPrimaryField
	if field == nil || !isIntegerKind(field.FieldType.Kind()) {
		return
	}

	rv := db.Statement.ReflectValue
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		p.assignBatch(db, field, rv)
	case reflect.Struct:
		ctx := db.Statement.Context
		if _, isZero := field.ValueOf(ctx, rv); isZero {
			if err := field.Set(ctx, rv, p.gen.Next()); err != nil {
				_ = db.AddError(err)
			}
		}
	}
}

// assignBatch 批量插入时一次性分配所有缺失的ID
func (p *Plugin) assignBatch(db *gorm.DB, field *schema.Field, rv reflect.Value) {
	ctx := db.Statement.Context

	var missing []reflect.Value
	for i := 0; i < rv.Len(); i++ {
		elem := reflect.Indirect(rv.Index(i))
		if elem.Kind() != reflect.Struct {
			continue
		}
		if _, isZero := field.ValueOf(ctx, elem); isZero {
			missing = append(missing, elem)
		}
	}
	if len(missing) == 0 {
		return
	}

	ids, err := p.gen.NextBatch(len(missing))
	if err != nil {
		_ = db.AddError(err)
		return
	}
	for i, elem := range missing {
		if err := field.Set(ctx, elem, ids[i]); err != nil {
			_ = db.AddError(err)
			return
		}
	}
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return true
	}
	return false
}
