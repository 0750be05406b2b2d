package domain

import (
	"fmt"
	"sort"
)

// maxSliceLength 切片和集合的容量上限，防止内存耗尽
const maxSliceLength = 1_000_000

// IDSlice ID切片类型
type IDSlice []ID

// NewIDSlice 创建新的ID切片（副本）
func NewIDSlice(ids ...ID) IDSlice {
	if len(ids) > maxSliceLength {
		ids = ids[:maxSliceLength]
	}
	result := make(IDSlice, len(ids))
	copy(result, ids)
	return result
}

// FromInt64s 从int64切片构造，通常用于包装NextBatch的结果
func FromInt64s(vals []int64) IDSlice {
	if len(vals) > maxSliceLength {
		vals = vals[:maxSliceLength]
	}
	result := make(IDSlice, len(vals))
	for i, v := range vals {
		result[i] = ID(v)
	}
	return result
}

// Int64Slice 转换为int64切片
func (ids IDSlice) Int64Slice() []int64 {
	result := make([]int64, len(ids))
	for i, id := range ids {
		result[i] = int64(id)
	}
	return result
}

// StringSlice 转换为字符串切片
func (ids IDSlice) StringSlice() []string {
	result := make([]string, len(ids))
	for i, id := range ids {
		result[i] = id.String()
	}
	return result
}

// Contains 线性查找，O(n)
func (ids IDSlice) Contains(id ID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Len 实现sort.Interface
func (ids IDSlice) Len() int { return len(ids) }

// Less 实现sort.Interface
func (ids IDSlice) Less(i, j int) bool { return ids[i] < ids[j] }

// Swap 实现sort.Interface
func (ids IDSlice) Swap(i, j int) { ids[i], ids[j] = ids[j], ids[i] }

// Sort 原地升序排序
// 同一生成器产生的ID升序即为生成顺序
func (ids IDSlice) Sort() {
	sort.Sort(ids)
}

// IsSorted 是否已严格递增（无重复）
func (ids IDSlice) IsSorted() bool {
	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			return false
		}
	}
	return true
}

// Deduplicate 去重，保持首次出现的顺序
func (ids IDSlice) Deduplicate() IDSlice {
	seen := make(map[ID]struct{}, len(ids))
	result := make(IDSlice, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			result = append(result, id)
		}
	}
	return result
}

// Filter 过滤ID，predicate为nil时返回副本
func (ids IDSlice) Filter(predicate func(ID) bool) IDSlice {
	result := make(IDSlice, 0, len(ids))
	for _, id := range ids {
		if predicate == nil || predicate(id) {
			result = append(result, id)
		}
	}
	return result
}

// ValidateAll 验证所有ID，返回第一个无效ID的位置
func (ids IDSlice) ValidateAll() error {
	for i, id := range ids {
		if err := id.Validate(); err != nil {
			return fmt.Errorf("invalid ID at index %d: %w", i, err)
		}
	}
	return nil
}
