package delay

import (
	"strconv"
	"strings"
)

// Param identifies a device parameter.
type Param string

// Recognized parameters.
const (
	Offset  Param = "offset"
	Length  Param = "length"
	Spacing Param = "spacing"
	Repeats Param = "repeats"
)

// Constraint describes the valid values of a parameter and its wire code.
// Min/Max are inclusive and in physical units (ns for time parameters,
// raw count for repeats). Step is the device clock tick the value must be
// aligned to (5ns tick, 1 for counts).
type Constraint struct {
	Code byte
	Min  int64
	Max  int64
	Step int64
}

// Ranges reflect the width of the firmware counters: 32 bits for offset,
// 7 for length, 20 for spacing, 5 for repeats.
var constraints = map[Param]Constraint{
	Offset:  {Code: 'o', Min: 10, Max: (1<<32 - 1) * 5, Step: 5},
	Length:  {Code: 'l', Min: 5, Max: (1<<7 - 1) * 5, Step: 5},
	Spacing: {Code: 's', Min: 36, Max: (1<<20 - 1) * 5, Step: 5},
	Repeats: {Code: 'r', Min: 0, Max: 31, Step: 1},
}

// Params lists the recognized parameters in canonical order.
func Params() []Param {
	return []Param{Offset, Length, Spacing, Repeats}
}

// ConstraintOf retrieves the constraint of p.
func ConstraintOf(p Param) (Constraint, error) {
	con, ok := constraints[p]
	if !ok {
		return Constraint{}, &InvalidParamError{Name: string(p)}
	}
	return con, nil
}

// Validate checks value (physical units) against the constraint of p.
func Validate(p Param, value int64) error {
	con, err := ConstraintOf(p)
	if err != nil {
		return err
	}
	if value < con.Min || value > con.Max {
		return &RangeError{Param: p, Value: value, Min: con.Min, Max: con.Max}
	}
	if value%con.Step != 0 {
		return &AlignError{Param: p, Value: value, Step: con.Step}
	}
	return nil
}

// Setting is one (parameter, value) pair with value in physical units.
type Setting struct {
	Param Param
	Value int64
}

// Settings is an ordered list of settings. The order is preserved in the
// outgoing command so the wire bytes are deterministic.
type Settings []Setting

// ParseParam parses a parameter name.
func ParseParam(name string) (Param, error) {
	p := Param(name)
	if _, ok := constraints[p]; !ok {
		return "", &InvalidParamError{Name: name}
	}
	return p, nil
}

// ParseSetting parses a PARAM=VALUE assignment with VALUE in physical units.
func ParseSetting(item string) (Setting, error) {
	name, val, ok := strings.Cut(item, "=")
	if !ok {
		return Setting{}, &InvalidItemError{Item: item, Err: ErrNotAssignment}
	}
	p, err := ParseParam(name)
	if err != nil {
		return Setting{}, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return Setting{}, &InvalidItemError{Item: item, Err: ErrNotInteger}
	}
	return Setting{Param: p, Value: n}, nil
}
