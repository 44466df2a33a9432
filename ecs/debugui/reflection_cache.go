package debugui

import (
	"reflect"
	"sync"
)

// FieldKind groups field types by how the component inspector draws them.
type FieldKind uint8

const (
	// FieldScalar is a number, bool or string edited in place.
	FieldScalar FieldKind = iota
	// FieldNested is a struct or array opened as a tree node.
	FieldNested
	// FieldCollection is a slice or map, shown by length only.
	FieldCollection
	// FieldOpaque is anything else, printed read-only.
	FieldOpaque
)

// FieldInfo describes one exported field of a component struct. Type is the
// field's type with one level of pointer removed.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
	Kind      FieldKind
}

// ReflectionCache memoizes the exported fields of struct types. It is safe
// for concurrent use.
type ReflectionCache struct {
	fields sync.Map // reflect.Type -> []FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{}
}

// GetFields returns the exported fields of t in declaration order, or nil
// when t is not a struct.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	if cached, ok := rc.fields.Load(t); ok {
		return cached.([]FieldInfo)
	}
	actual, _ := rc.fields.LoadOrStore(t, describeFields(t))
	return actual.([]FieldInfo)
}

func describeFields(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []FieldInfo
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		info := FieldInfo{Name: sf.Name, Type: sf.Type, Index: i}
		if sf.Type.Kind() == reflect.Pointer {
			info.IsPointer = true
			info.Type = sf.Type.Elem()
		}
		info.Kind = fieldKindOf(info.Type)
		fields = append(fields, info)
	}
	return fields
}

func fieldKindOf(t reflect.Type) FieldKind {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return FieldScalar
	case reflect.Struct, reflect.Array:
		return FieldNested
	case reflect.Slice, reflect.Map:
		return FieldCollection
	default:
		return FieldOpaque
	}
}

var globalReflectionCache = NewReflectionCache()
