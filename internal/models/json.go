package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSON 通用 JSON 字段类型（存储为文本列）
type JSON map[string]interface{}

// Value 用于数据库写入
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return "{}", nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 用于数据库读取
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = JSON{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported json column type")
	}
	if len(data) == 0 {
		*j = JSON{}
		return nil
	}
	return json.Unmarshal(data, j)
}
