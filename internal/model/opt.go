package model

import "math"

// OptInt is an integer that may be undefined for lack of history.
// Mirrors the database/sql Null* convention.
type OptInt struct {
	Int   int
	Valid bool
}

// OptBool is a boolean that may be undefined for lack of history.
type OptBool struct {
	Bool  bool
	Valid bool
}

// Int wraps a defined integer value.
func Int(v int) OptInt { return OptInt{Int: v, Valid: true} }

// Bool wraps a defined boolean value.
func Bool(v bool) OptBool { return OptBool{Bool: v, Valid: true} }

// And is the three-valued conjunction: a defined false decides the result
// even when the other operand is undefined.
func (a OptBool) And(b OptBool) OptBool {
	if a.Valid && !a.Bool {
		return Bool(false)
	}
	if b.Valid && !b.Bool {
		return Bool(false)
	}
	if a.Valid && b.Valid {
		return Bool(true)
	}
	return OptBool{}
}

// Or is the three-valued disjunction: a defined true decides the result
// even when the other operand is undefined.
func (a OptBool) Or(b OptBool) OptBool {
	if a.Valid && a.Bool {
		return Bool(true)
	}
	if b.Valid && b.Bool {
		return Bool(true)
	}
	if a.Valid && b.Valid {
		return Bool(false)
	}
	return OptBool{}
}

// Not negates a three-valued boolean; undefined stays undefined.
func (a OptBool) Not() OptBool {
	if !a.Valid {
		return OptBool{}
	}
	return Bool(!a.Bool)
}

// True reports whether the value is defined and true.
func (a OptBool) True() bool { return a.Valid && a.Bool }

// Greater compares two possibly-NaN floats; undefined if either is NaN.
func Greater(a, b float64) OptBool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return OptBool{}
	}
	return Bool(a > b)
}

// Less compares two possibly-NaN floats; undefined if either is NaN.
func Less(a, b float64) OptBool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return OptBool{}
	}
	return Bool(a < b)
}
