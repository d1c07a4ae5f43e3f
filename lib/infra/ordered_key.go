package infra

import (
	"reflect"
)

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is a constraint that permits any integer type.
type Integer interface {
	Signed | Unsigned
}

// Float is a constraint that permits any floating-point type.
type Float interface {
	~float32 | ~float64
}

// OrderedKey
// byte => ~uint8
type OrderedKey interface {
	Integer | Float | ~string
}

// KeyComparator
// Assume i is the new key.
//  1. i == j (return 0)
//  2. i > j (return 1), turn to right part.
//  3. i < j (return -1), turn to left part.
//
// A comparator must describe a total order.
type KeyComparator[K any] func(i, j K) int64

// Comparable is implemented by keys that know their own order.
type Comparable[K any] interface {
	Compare(other K) int64
}

func OrderedKeyCompare[K OrderedKey](i, j K) int64 {
	if i == j {
		return 0
	} else if i < j {
		return -1
	}
	return 1
}

// NaturalCompare compares two keys by the natural order of their kind.
// Named types are resolved by their underlying kind.
// Returns ok == false if the key has no natural order.
func NaturalCompare[K any](i, j K) (res int64, ok bool) {
	if c, _ok := any(i).(Comparable[K]); _ok {
		return c.Compare(j), true
	}

	vi, vj := reflect.ValueOf(i), reflect.ValueOf(j)
	if !vi.IsValid() || !vj.IsValid() || vi.Kind() != vj.Kind() {
		return 0, false
	}
	switch vi.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return OrderedKeyCompare(vi.Int(), vj.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return OrderedKeyCompare(vi.Uint(), vj.Uint()), true
	case reflect.Float32, reflect.Float64:
		fi, fj := vi.Float(), vj.Float()
		if /* NaN breaks the total order */ fi != fi || fj != fj {
			return 0, false
		}
		return OrderedKeyCompare(fi, fj), true
	case reflect.String:
		return OrderedKeyCompare(vi.String(), vj.String()), true
	default:
	}
	return 0, false
}
