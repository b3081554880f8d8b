// ==============================================================================================
// FILE: object/object.go
// ==============================================================================================
// PACKAGE: object
// PURPOSE: The runtime value system for LOLCODE: the closed Value variant
//          set and the implicit/explicit coercion matrix.
// ==============================================================================================

package object

import (
	"fmt"
	"regexp"
	"strconv"

	"lolcode/ast"
	"lolcode/lolerr"
)

// TypeTag names the target of a coercion. NUM is not a surface LOLCODE
// type keyword; it is the generic "some kind of number" target that
// arithmetic/boolean/comparison operands implicitly coerce to, collapsing
// NUMBR and NUMBAR into one shape.
type TypeTag string

const (
	NOOB   TypeTag = "NOOB"
	TROOF  TypeTag = "TROOF"
	NUMBR  TypeTag = "NUMBR"
	NUMBAR TypeTag = "NUMBAR"
	YARN   TypeTag = "YARN"
	NUM    TypeTag = "NUM"
)

// Value is implemented by every runtime value variant.
type Value interface {
	Type() TypeTag
	Inspect() string
}

// ----------------------------------------------------------------------------
// Noob
// ----------------------------------------------------------------------------

type Noob struct{}

func (n *Noob) Type() TypeTag   { return NOOB }
func (n *Noob) Inspect() string { return "NOOB" }

var TheNoob = &Noob{}

// ----------------------------------------------------------------------------
// Bool
// ----------------------------------------------------------------------------

type Bool struct {
	Value bool
}

func NewBool(v bool) *Bool { return &Bool{Value: v} }

func (b *Bool) Type() TypeTag { return TROOF }
func (b *Bool) Inspect() string {
	if b.Value {
		return "WIN"
	}
	return "FAIL"
}

// ----------------------------------------------------------------------------
// Num: Int and Flt, the two concrete numeric shapes.
// ----------------------------------------------------------------------------

type Int struct {
	Value int64
}

func (i *Int) Type() TypeTag   { return NUMBR }
func (i *Int) Inspect() string { return strconv.FormatInt(i.Value, 10) }

type Flt struct {
	Value float64
}

func (f *Flt) Type() TypeTag   { return NUMBAR }
func (f *Flt) Inspect() string { return fmt.Sprintf("%g", f.Value) }

// IsNum reports whether v is one of the two numeric shapes.
func IsNum(v Value) bool {
	switch v.(type) {
	case *Int, *Flt:
		return true
	}
	return false
}

// ----------------------------------------------------------------------------
// Str
// ----------------------------------------------------------------------------

type Str struct {
	Value string
}

func (s *Str) Type() TypeTag   { return YARN }
func (s *Str) Inspect() string { return s.Value }

// ----------------------------------------------------------------------------
// Array is one-dimensional, homogeneous, zero-indexed, fixed capacity.
// Slots is preallocated to Capacity entries, all zero-valued at creation;
// Length is the logical high-water mark a write has reached.
// ----------------------------------------------------------------------------

type Array struct {
	ElemType TypeTag
	Capacity int
	Length   int
	Slots    []Value
}

func (a *Array) Type() TypeTag { return "ARRAY" }
func (a *Array) Inspect() string {
	out := "["
	for i := 0; i < a.Length; i++ {
		if i > 0 {
			out += ", "
		}
		out += a.Slots[i].Inspect()
	}
	return out + "]"
}

// ZeroValue returns the zero value for an array element type keyword.
func ZeroValue(elemType TypeTag) Value {
	switch elemType {
	case NOOB:
		return TheNoob
	case TROOF:
		return NewBool(false)
	case NUMBR:
		return &Int{Value: 0}
	case NUMBAR:
		return &Flt{Value: 0.0}
	case YARN:
		return &Str{Value: ""}
	default:
		return TheNoob
	}
}

// NewArray builds an Array of the given capacity, every slot set to the
// element type's zero value, logical length 0.
func NewArray(elemType TypeTag, capacity int) *Array {
	slots := make([]Value, capacity)
	for i := range slots {
		slots[i] = ZeroValue(elemType)
	}
	return &Array{ElemType: elemType, Capacity: capacity, Length: 0, Slots: slots}
}

// Confine writes value at idx, appending (idx == Length) or overwriting
// (idx < Length); any other index is out of range.
func (a *Array) Confine(line int, idx int, value Value) *lolerr.Error {
	if idx < 0 || idx >= a.Capacity {
		return lolerr.NewRuntime(line, 0, fmt.Sprintf(
			"Array index %d out of range.\nValid indices are 0 to %d.", idx, a.Capacity-1))
	}
	if idx > a.Length {
		return lolerr.NewRuntime(line, 0, fmt.Sprintf(
			"Cannot write at index %d: array has length %d.\nWrite at index %d first, or overwrite an existing index.", idx, a.Length, a.Length))
	}
	a.Slots[idx] = value
	if idx == a.Length {
		a.Length++
	}
	return nil
}

// Discharge removes and returns the element at idx, shifting later
// elements left and decrementing Length.
func (a *Array) Discharge(line int, idx int) (Value, *lolerr.Error) {
	if idx < 0 || idx >= a.Length {
		return nil, lolerr.NewRuntime(line, 0, fmt.Sprintf(
			"Array index %d out of range.\nValid indices are 0 to %d.", idx, a.Length-1))
	}
	removed := a.Slots[idx]
	copy(a.Slots[idx:a.Length-1], a.Slots[idx+1:a.Length])
	a.Slots[a.Length-1] = ZeroValue(a.ElemType)
	a.Length--
	return removed, nil
}

// Access reads the element at idx.
func (a *Array) Access(line int, idx int) (Value, *lolerr.Error) {
	if idx < 0 || idx >= a.Length {
		return nil, lolerr.NewRuntime(line, 0, fmt.Sprintf(
			"Array index %d out of range.\nValid indices are 0 to %d.", idx, a.Length-1))
	}
	return a.Slots[idx], nil
}

// ----------------------------------------------------------------------------
// Function captures its defining context for closures.
// ----------------------------------------------------------------------------

type Function struct {
	Name      string
	Params    []string
	Body      *ast.StmtList
	Captured  *Context
}

func (f *Function) Type() TypeTag   { return "FUNCTION" }
func (f *Function) Inspect() string { return fmt.Sprintf("<function %s>", f.Name) }

// ----------------------------------------------------------------------------
// Break / Return are control-flow sentinels.
// ----------------------------------------------------------------------------

type Break struct{}

func (b *Break) Type() TypeTag   { return "BREAK" }
func (b *Break) Inspect() string { return "GTFO" }

type Return struct {
	Value Value
}

func (r *Return) Type() TypeTag   { return "RETURN" }
func (r *Return) Inspect() string { return r.Value.Inspect() }

// ----------------------------------------------------------------------------
// Coercion matrix
// ----------------------------------------------------------------------------

var (
	reInt   = regexp.MustCompile(`^-?\d+$`)
	reFloat = regexp.MustCompile(`^-?\d*\.\d+$`)
)

func typeName(v Value) string {
	switch v.(type) {
	case *Noob:
		return "NOOB"
	case *Bool:
		return "TROOF"
	case *Int, *Flt:
		return "Number"
	case *Str:
		return "YARN"
	case *Array:
		return "Array"
	case *Function:
		return "Function"
	}
	return string(v.Type())
}

func implicitErr(line int, v Value, target TypeTag) *lolerr.Error {
	return lolerr.NewRuntime(line, 0, fmt.Sprintf(
		"Cannot implicitly convert %s (%s) to %s.\nUse explicit typecasting with MAEK or IS NOW A.",
		typeName(v), v.Inspect(), target))
}

// CoerceImplicit applies the implicit coercion rules. target is one of
// TROOF, NUM (generic numeric), YARN, or NOOB.
func CoerceImplicit(line int, v Value, target TypeTag) (Value, *lolerr.Error) {
	switch val := v.(type) {
	case *Noob:
		switch target {
		case NOOB:
			return val, nil
		case TROOF:
			return NewBool(false), nil
		default:
			return nil, implicitErr(line, v, target)
		}

	case *Bool:
		switch target {
		case TROOF:
			return val, nil
		case NUM, NUMBR, NUMBAR:
			if val.Value {
				return &Int{Value: 1}, nil
			}
			return &Int{Value: 0}, nil
		case YARN:
			return &Str{Value: val.Inspect()}, nil
		default:
			return nil, implicitErr(line, v, target)
		}

	case *Int:
		switch target {
		case NUM, NUMBR:
			return val, nil
		case NUMBAR:
			return &Flt{Value: float64(val.Value)}, nil
		case TROOF:
			return NewBool(val.Value != 0), nil
		case YARN:
			return &Str{Value: strconv.FormatInt(val.Value, 10)}, nil
		default:
			return nil, implicitErr(line, v, target)
		}

	case *Flt:
		switch target {
		case NUM, NUMBAR:
			return val, nil
		case NUMBR:
			return val, nil // generic NUM coercion never narrows; see CoerceExplicit for truncation
		case TROOF:
			return NewBool(val.Value != 0.0), nil
		case YARN:
			return &Str{Value: fmt.Sprintf("%.2f", val.Value)}, nil
		default:
			return nil, implicitErr(line, v, target)
		}

	case *Str:
		switch target {
		case YARN:
			return val, nil
		case TROOF:
			return NewBool(val.Value != ""), nil
		case NUM, NUMBR, NUMBAR:
			if reInt.MatchString(val.Value) {
				n, _ := strconv.ParseInt(val.Value, 10, 64)
				return &Int{Value: n}, nil
			}
			if reFloat.MatchString(val.Value) {
				f, _ := strconv.ParseFloat(val.Value, 64)
				return &Flt{Value: f}, nil
			}
			return nil, lolerr.NewRuntime(line, 0, fmt.Sprintf(
				"Cannot convert YARN '%s' to a number.\nThe string contains non-numerical characters.", val.Value))
		default:
			return nil, implicitErr(line, v, target)
		}

	default:
		return nil, implicitErr(line, v, target)
	}
}

// CoerceExplicit applies MAEK/IS NOW A semantics: NOOB casts to any
// target's zero value (toFloat picks a NUMBAR zero for a generic NUM
// target); a NUMBR target truncates a NUMBAR and a NUMBAR target widens a
// NUMBR; everything else matches the implicit rule.
func CoerceExplicit(line int, v Value, target TypeTag, toFloat bool) (Value, *lolerr.Error) {
	if noob, ok := v.(*Noob); ok {
		switch target {
		case NOOB:
			return noob, nil
		case TROOF:
			return NewBool(false), nil
		case YARN:
			return &Str{Value: ""}, nil
		case NUM, NUMBR, NUMBAR:
			if toFloat || target == NUMBAR {
				return &Flt{Value: 0.0}, nil
			}
			return &Int{Value: 0}, nil
		default:
			return nil, lolerr.NewRuntime(line, 0, fmt.Sprintf(
				"Cannot convert NOOB to %s.\nThis type conversion is not supported.", target))
		}
	}

	switch target {
	case NUMBR:
		if f, ok := v.(*Flt); ok {
			return &Int{Value: int64(f.Value)}, nil
		}
		if i, ok := v.(*Int); ok {
			return i, nil
		}
	case NUMBAR:
		if i, ok := v.(*Int); ok {
			return &Flt{Value: float64(i.Value)}, nil
		}
		if f, ok := v.(*Flt); ok {
			return f, nil
		}
	}

	return CoerceImplicit(line, v, target)
}

// NumEquals implements BOTH SAEM / DIFFRINT's strict rule: both operands
// must already be numeric (Int or Flt) with no coercion attempted; any
// other pairing is a RuntimeError.
func NumEquals(line int, a, b Value) (bool, *lolerr.Error) {
	av, aok := numericValue(a)
	bv, bok := numericValue(b)
	if !aok || !bok {
		return false, lolerr.NewRuntime(line, 0, fmt.Sprintf(
			"Cannot compare non-numeric types. Only NUMBR and NUMBAR can be compared.\nConvert %s and %s to numbers first using explicit typecasting.",
			typeName(a), typeName(b)))
	}
	return av == bv, nil
}

func numericValue(v Value) (float64, bool) {
	switch val := v.(type) {
	case *Int:
		return float64(val.Value), true
	case *Flt:
		return val.Value, true
	}
	return 0, false
}

// SwitchEquals implements the switch/case matching predicate: equality
// without coercion, rather than NumEquals's numeric-only restriction.
// NUMBR and NUMBAR compare by numeric value; other values match only a
// value of the same type. Mismatched types simply don't match (no error)
// so the switch tries the next case.
func SwitchEquals(a, b Value) bool {
	switch av := a.(type) {
	case *Noob:
		_, ok := b.(*Noob)
		return ok
	case *Bool:
		bv, ok := b.(*Bool)
		return ok && av.Value == bv.Value
	case *Int:
		if bv, ok := b.(*Int); ok {
			return av.Value == bv.Value
		}
		if bv, ok := b.(*Flt); ok {
			return float64(av.Value) == bv.Value
		}
		return false
	case *Flt:
		if bv, ok := b.(*Flt); ok {
			return av.Value == bv.Value
		}
		if bv, ok := b.(*Int); ok {
			return av.Value == float64(bv.Value)
		}
		return false
	case *Str:
		bv, ok := b.(*Str)
		return ok && av.Value == bv.Value
	}
	return false
}

// Biggr and Smallr implement BIGGR OF / SMALLR OF. YARN operands get a
// numeric-first-then-lexicographic fallback; every other pairing coerces
// implicitly to a generic number.
func Biggr(line int, a, b Value) (Value, *lolerr.Error) {
	return extremum(line, a, b, true)
}

func Smallr(line int, a, b Value) (Value, *lolerr.Error) {
	return extremum(line, a, b, false)
}

func extremum(line int, a, b Value, wantMax bool) (Value, *lolerr.Error) {
	as, aIsStr := a.(*Str)
	bs, bIsStr := b.(*Str)
	if aIsStr && bIsStr {
		an, aerr := CoerceImplicit(line, as, NUM)
		bn, berr := CoerceImplicit(line, bs, NUM)
		if aerr == nil && berr == nil {
			return numericExtremum(an, bn, wantMax), nil
		}
		if wantMax {
			if as.Value >= bs.Value {
				return as, nil
			}
			return bs, nil
		}
		if as.Value <= bs.Value {
			return as, nil
		}
		return bs, nil
	}

	an, err := CoerceImplicit(line, a, NUM)
	if err != nil {
		return nil, err
	}
	bn, err := CoerceImplicit(line, b, NUM)
	if err != nil {
		return nil, err
	}
	return numericExtremum(an, bn, wantMax), nil
}

func numericExtremum(a, b Value, wantMax bool) Value {
	af, aFloat := asFloat(a)
	bf, bFloat := asFloat(b)
	pick := af >= bf
	if !wantMax {
		pick = af <= bf
	}
	if aFloat || bFloat {
		if pick {
			return &Flt{Value: af}
		}
		return &Flt{Value: bf}
	}
	if pick {
		return a
	}
	return b
}

func asFloat(v Value) (float64, bool) {
	switch val := v.(type) {
	case *Int:
		return float64(val.Value), false
	case *Flt:
		return val.Value, true
	}
	return 0, false
}
