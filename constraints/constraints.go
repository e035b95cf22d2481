// Package constraints defines the type sets used as type parameter
// constraints across this module.
package constraints

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type Integer interface {
	Signed | Unsigned
}

type Float interface {
	~float32 | ~float64
}

// Ordered is any type that supports the <, <=, >= and > operators.
type Ordered interface {
	Integer | Float | ~string
}
