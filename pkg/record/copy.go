package record

import "reflect"

// deepCopy returns a copy of v that shares no slices, maps or pointers with
// it. Functions and channels are shared. Unexported struct fields are copied
// by value only.
func deepCopy(v any) any {
	if v == nil {
		return nil
	}
	return copyValue(reflect.ValueOf(v), map[uintptr]reflect.Value{}).Interface()
}

// copyValue copies src. seen maps already copied pointers to their copies so
// cyclic values terminate.
func copyValue(src reflect.Value, seen map[uintptr]reflect.Value) reflect.Value {
	switch src.Kind() {
	case reflect.Pointer:
		if src.IsNil() {
			return src
		}
		if dst, ok := seen[src.Pointer()]; ok {
			return dst
		}
		dst := reflect.New(src.Type().Elem())
		seen[src.Pointer()] = dst
		dst.Elem().Set(copyValue(src.Elem(), seen))
		return dst
	case reflect.Slice:
		if src.IsNil() {
			return src
		}
		dst := reflect.MakeSlice(src.Type(), src.Len(), src.Len())
		for i := range src.Len() {
			dst.Index(i).Set(copyValue(src.Index(i), seen))
		}
		return dst
	case reflect.Array:
		dst := reflect.New(src.Type()).Elem()
		for i := range src.Len() {
			dst.Index(i).Set(copyValue(src.Index(i), seen))
		}
		return dst
	case reflect.Map:
		if src.IsNil() {
			return src
		}
		dst := reflect.MakeMapWithSize(src.Type(), src.Len())
		iter := src.MapRange()
		for iter.Next() {
			dst.SetMapIndex(iter.Key(), copyValue(iter.Value(), seen))
		}
		return dst
	case reflect.Struct:
		dst := reflect.New(src.Type()).Elem()
		dst.Set(src)
		for i := range src.NumField() {
			if f := dst.Field(i); f.CanSet() {
				f.Set(copyValue(src.Field(i), seen))
			}
		}
		return dst
	case reflect.Interface:
		if src.IsNil() {
			return src
		}
		dst := reflect.New(src.Type()).Elem()
		dst.Set(copyValue(src.Elem(), seen))
		return dst
	default:
		return src
	}
}
