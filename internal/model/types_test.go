package model

import (
	"database/sql"
	"database/sql/driver"
	"testing"
)

// 值类型字段（Preset.DefaultTags 等）直接写库，Valuer 必须由值类型满足
var (
	_ driver.Valuer = StringSlice{}
	_ driver.Valuer = JSONMap{}
	_ sql.Scanner   = &StringSlice{}
	_ sql.Scanner   = &JSONMap{}
)

func TestStringSliceValue(t *testing.T) {
	s := StringSlice{"digital download", "wall art"}

	val, err := s.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	bytes, ok := val.([]byte)
	if !ok {
		t.Fatalf("Value() 类型 = %T, want []byte", val)
	}

	var restored StringSlice
	if err := restored.Scan(bytes); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(restored) != 2 || restored[0] != "digital download" {
		t.Errorf("往返后 = %v, want %v", restored, s)
	}
}

func TestStringSliceValueNil(t *testing.T) {
	var s StringSlice

	val, err := s.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if val != "[]" {
		t.Errorf("nil 切片 Value() = %v, want \"[]\"", val)
	}
}

func TestJSONMapValueAndScan(t *testing.T) {
	m := JSONMap{"primary_color": float64(1), "occasion": []interface{}{float64(20), float64(21)}}

	val, err := m.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}

	var restored JSONMap
	if err := restored.Scan(val); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if restored["primary_color"] != float64(1) {
		t.Errorf("primary_color = %v, want 1", restored["primary_color"])
	}
	if vals, ok := restored["occasion"].([]interface{}); !ok || len(vals) != 2 {
		t.Errorf("occasion = %v, want 两个值", restored["occasion"])
	}
}

func TestJSONMapScanNil(t *testing.T) {
	var m JSONMap
	if err := m.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) error = %v", err)
	}
	if m == nil {
		t.Error("Scan(nil) 后应为空 map 而非 nil")
	}
}
