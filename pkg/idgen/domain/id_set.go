package domain

import "fmt"

// IDSet ID集合，O(1)查找，自动去重
type IDSet map[ID]struct{}

// NewIDSet 创建新的ID集合
func NewIDSet(ids ...ID) IDSet {
	if len(ids) > maxSliceLength {
		ids = ids[:maxSliceLength]
	}
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Add 添加ID，达到容量上限时忽略
func (s IDSet) Add(id ID) {
	if len(s) >= maxSliceLength {
		return
	}
	s[id] = struct{}{}
}

// Remove 移除ID
func (s IDSet) Remove(id ID) {
	delete(s, id)
}

// Contains 是否包含
func (s IDSet) Contains(id ID) bool {
	_, exists := s[id]
	return exists
}

// Size 集合大小
func (s IDSet) Size() int {
	return len(s)
}

// IsEmpty 是否为空
func (s IDSet) IsEmpty() bool {
	return len(s) == 0
}

// ToSlice 转换为升序的ID切片
func (s IDSet) ToSlice() IDSlice {
	result := make(IDSlice, 0, len(s))
	for id := range s {
		result = append(result, id)
	}
	result.Sort()
	return result
}

// Clone 返回独立副本
func (s IDSet) Clone() IDSet {
	result := make(IDSet, len(s))
	for id := range s {
		result[id] = struct{}{}
	}
	return result
}

// Union 并集
func (s IDSet) Union(other IDSet) IDSet {
	result := s.Clone()
	for id := range other {
		result.Add(id)
	}
	return result
}

// Intersect 交集，遍历较小的集合
func (s IDSet) Intersect(other IDSet) IDSet {
	smaller, larger := s, other
	if len(other) < len(s) {
		smaller, larger = other, s
	}

	result := make(IDSet)
	for id := range smaller {
		if larger.Contains(id) {
			result[id] = struct{}{}
		}
	}
	return result
}

// Difference 差集 s - other
func (s IDSet) Difference(other IDSet) IDSet {
	result := make(IDSet)
	for id := range s {
		if !other.Contains(id) {
			result[id] = struct{}{}
		}
	}
	return result
}

// Equal 两个集合元素相同
func (s IDSet) Equal(other IDSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// ValidateAll 验证集合中所有ID（快速失败）
func (s IDSet) ValidateAll() error {
	for id := range s {
		if err := id.Validate(); err != nil {
			return fmt.Errorf("invalid ID %d: %w", id, err)
		}
	}
	return nil
}
