package model

import (
	"database/sql/driver"
	"fmt"

	"github.com/bytedance/sonic"
)

// JSONList stores an ordered list as a JSON text column; nil is stored as NULL
// JSONList 以 JSON 文本列存储有序列表，nil 存为 NULL
type JSONList[T any] []T

func (JSONList[T]) GormDataType() string {
	return "text"
}

// Value implements driver.Valuer
func (l JSONList[T]) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := sonic.ConfigStd.Marshal([]T(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *JSONList[T]) Scan(v interface{}) error {
	var data []byte
	switch val := v.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		data = []byte(val)
	case []byte:
		data = val
	default:
		return fmt.Errorf("model: cannot scan %T into JSONList", v)
	}

	var out []T
	if err := sonic.ConfigStd.Unmarshal(data, &out); err != nil {
		return err
	}
	if out == nil {
		out = []T{}
	}
	*l = out
	return nil
}
