// Package timex provides a database/JSON friendly time type and the
// timestamp formats used by stored records.
// Package timex 提供可直接用于数据库与 JSON 的时间类型，以及记录使用的时间格式
package timex

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"
)

// RecordLayout is the human-readable timestamp layout of records (UTC, milliseconds)
// RecordLayout 记录中可读时间戳的格式（UTC，毫秒精度）
const RecordLayout = "2006-01-02T15:04:05.000Z"

const dbLayout = "2006-01-02 15:04:05"

// Time wraps time.Time for gorm columns and JSON output
// Time 封装 time.Time，用于 gorm 字段与 JSON 输出
type Time time.Time

// Now returns the current local time
// Now 返回当前时间
func Now() Time {
	return Time(time.Now())
}

func (t Time) Unix() int64      { return time.Time(t).Unix() }
func (t Time) UnixMilli() int64 { return time.Time(t).UnixMilli() }
func (t Time) UnixMicro() int64 { return time.Time(t).UnixMicro() }
func (t Time) UnixNano() int64  { return time.Time(t).UnixNano() }

func (t Time) String() string {
	return time.Time(t).Format(dbLayout)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if time.Time(t).IsZero() {
		return []byte(`""`), nil
	}
	return []byte(strconv.Quote(t.String())), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil || s == "" {
		*t = Time(time.Time{})
		return nil
	}
	parsed, err := time.ParseInLocation(dbLayout, s, time.Local)
	if err != nil {
		return err
	}
	*t = Time(parsed)
	return nil
}

// GormDataType maps the column to each dialect's datetime type
// GormDataType 将字段映射为各数据库方言的时间类型
func (Time) GormDataType() string {
	return "time"
}

// Value implements driver.Valuer
func (t Time) Value() (driver.Value, error) {
	if time.Time(t).IsZero() {
		return nil, nil
	}
	return time.Time(t), nil
}

// Scan implements sql.Scanner
func (t *Time) Scan(v interface{}) error {
	switch val := v.(type) {
	case nil:
		*t = Time(time.Time{})
	case time.Time:
		*t = Time(val)
	case string:
		parsed, err := parseDB(val)
		if err != nil {
			return err
		}
		*t = Time(parsed)
	case []byte:
		parsed, err := parseDB(string(val))
		if err != nil {
			return err
		}
		*t = Time(parsed)
	default:
		return fmt.Errorf("timex: cannot scan %T", v)
	}
	return nil
}

func parseDB(s string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return parsed, nil
	}
	return time.ParseInLocation(dbLayout, s, time.Local)
}

// FormatRecord renders epoch milliseconds in RecordLayout
// FormatRecord 将毫秒时间戳格式化为 RecordLayout
func FormatRecord(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(RecordLayout)
}

// ParseRecord parses a record timestamp into epoch milliseconds
// ParseRecord 将记录时间戳解析为毫秒时间戳
func ParseRecord(s string) (int64, error) {
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, err
	}
	return parsed.UnixMilli(), nil
}
