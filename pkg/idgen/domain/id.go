package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"intern-hub-common/pkg/idgen/core"
	"intern-hub-common/pkg/idgen/snowflake"
)

const (
	// maxSafeInteger JavaScript最大安全整数 (2^53 - 1)
	// 超过此值的整数在JavaScript中会丢失精度
	maxSafeInteger = 1<<53 - 1

	// maxParseIDStringLength 解析ID字符串的最大长度
	// 100个字符足以表示任意int64（二进制最多63位）
	maxParseIDStringLength = 100
)

// ID Snowflake ID的值类型
//
// JSON中序列化为字符串（避免前端精度丢失），
// 数据库中以BIGINT存储（实现sql.Scanner和driver.Valuer）。
// 元信息按DefaultEpoch解码，自定义epoch的ID请使用对应生成器的Parser。
type ID int64

// ParseID 从字符串解析ID
// 支持十进制、十六进制(0x)、二进制(0b)
func ParseID(s string) (ID, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("ID string cannot be empty")
	}
	if len(s) > maxParseIDStringLength {
		return 0, fmt.Errorf("ID string too long: max %d characters, got %d",
			maxParseIDStringLength, len(s))
	}

	base, digits := 10, s
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		base, digits = 16, s[2:]
	case strings.HasPrefix(s, "0b"), strings.HasPrefix(s, "0B"):
		base, digits = 2, s[2:]
	}
	if digits == "" {
		return 0, fmt.Errorf("invalid ID %q: missing digits after prefix", s)
	}

	val, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse ID: %w", err)
	}
	if val < 0 {
		return 0, fmt.Errorf("invalid ID: must be non-negative, got %d", val)
	}
	return ID(val), nil
}

// Int64 转换为int64类型
func (id ID) Int64() int64 {
	return int64(id)
}

// String 十进制字符串
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Hex 带0x前缀的十六进制字符串
func (id ID) Hex() string {
	return "0x" + strconv.FormatInt(int64(id), 16)
}

// Binary 带0b前缀的二进制字符串
func (id ID) Binary() string {
	return "0b" + strconv.FormatInt(int64(id), 2)
}

// IsZero 检查ID是否为零值
func (id ID) IsZero() bool {
	return id == 0
}

// IsValid Snowflake ID恒为正数
func (id ID) IsValid() bool {
	return id > 0
}

// IsSafeForJavaScript 检查ID是否在JavaScript安全整数范围内
func (id ID) IsSafeForJavaScript() bool {
	return id >= 0 && id <= maxSafeInteger
}

// MarshalJSON 序列化为JSON字符串
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON 支持字符串或数字两种形式
func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty JSON data")
	}
	if len(data) > maxParseIDStringLength {
		return fmt.Errorf("JSON data too large: max %d bytes, got %d",
			maxParseIDStringLength, len(data))
	}

	// 字符串形式（优先）
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("invalid ID string: %w", err)
		}
		parsed, err := ParseID(str)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	}

	// 数字形式
	var num int64
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("invalid ID format: expected string or number, got %s", string(data))
	}
	if num < 0 {
		return fmt.Errorf("invalid ID: must be non-negative, got %d", num)
	}
	*id = ID(num)
	return nil
}

// Scan 实现sql.Scanner
func (id *ID) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*id = 0
	case int64:
		*id = ID(v)
	case []byte:
		parsed, err := ParseID(string(v))
		if err != nil {
			return err
		}
		*id = parsed
	case string:
		parsed, err := ParseID(v)
		if err != nil {
			return err
		}
		*id = parsed
	default:
		return fmt.Errorf("cannot scan %T into ID", src)
	}
	return nil
}

// Value 实现driver.Valuer
func (id ID) Value() (driver.Value, error) {
	return int64(id), nil
}

// Validate 按DefaultEpoch验证ID
func (id ID) Validate() error {
	return snowflake.ValidateID(int64(id))
}

// Parse 解析ID，提取元信息
func (id ID) Parse() (*core.IDInfo, error) {
	return snowflake.DefaultParser().Parse(int64(id))
}

// Time 生成时间（UTC），无效ID返回零值
func (id ID) Time() time.Time {
	if !id.IsValid() {
		return time.Time{}
	}
	return snowflake.DefaultParser().ExtractTime(int64(id))
}

// MachineID 机器ID，无效ID返回-1
func (id ID) MachineID() int64 {
	if !id.IsValid() {
		return -1
	}
	return snowflake.DefaultParser().ExtractMachineID(int64(id))
}

// Sequence 序列号，无效ID返回-1
func (id ID) Sequence() int64 {
	if !id.IsValid() {
		return -1
	}
	return snowflake.DefaultParser().ExtractSequence(int64(id))
}
