package havjson

import "fmt"

// Kind identifies the variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt32
	KindIntWide
	KindInt64
	KindUInt32
	KindUIntWide
	KindUInt64
	KindDouble
	KindString
	KindArray
	KindObject
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt32:
		return "int32"
	case KindIntWide:
		return "int"
	case KindInt64:
		return "int64"
	case KindUInt32:
		return "uint32"
	case KindUIntWide:
		return "uint"
	case KindUInt64:
		return "uint64"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// IsSignedInt reports whether k is one of the three signed-integer
// widths.
func (k Kind) IsSignedInt() bool {
	return k == KindInt32 || k == KindIntWide || k == KindInt64
}

// IsUnsignedInt reports whether k is one of the three
// unsigned-integer widths.
func (k Kind) IsUnsignedInt() bool {
	return k == KindUInt32 || k == KindUIntWide || k == KindUInt64
}

// IsInt reports whether k is any of the six integer widths.
func (k Kind) IsInt() bool {
	return k.IsSignedInt() || k.IsUnsignedInt()
}

// IsNumeric reports whether k is an integer width or double.
func (k Kind) IsNumeric() bool {
	return k.IsInt() || k == KindDouble
}

// Entry is a key/value pair inside an Object, kept in lexicographic
// key order.
type Entry struct {
	Key   string
	Value *Value
}

// Value is the polymorphic tree node. Only the field matching Kind is
// meaningful; accessors fail with ErrKindMismatch otherwise. Array and
// Object children are shared-ownership handles (plain Go pointers):
// aliasing two trees onto the same *Value is legal, but the
// constructors in this package never produce cycles.
type Value struct {
	kind Kind

	boolVal   bool
	signedVal int64
	unsignedVal uint64
	doubleVal float64
	strVal    string

	arr []*Value
	obj []Entry
}

// Kind returns the value's kind. A nil *Value reports KindNull, so
// navigation helpers can treat "absent" the same as "null".
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether v is null (including a nil pointer).
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// ============================================================
// Constructors
// ============================================================

// Null returns a null value.
func Null() *Value { return &Value{kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) *Value { return &Value{kind: KindBool, boolVal: b} }

// Int32 returns a signed 32-bit integer value.
func Int32(n int32) *Value { return &Value{kind: KindInt32, signedVal: int64(n)} }

// IntWide returns a signed wide (platform-word) integer value. The
// wide width exists only as a Kind tag; the payload is stored as int64
// and is not narrowed.
func IntWide(n int64) *Value { return &Value{kind: KindIntWide, signedVal: n} }

// Int64 returns a signed 64-bit integer value.
func Int64(n int64) *Value { return &Value{kind: KindInt64, signedVal: n} }

// UInt32 returns an unsigned 32-bit integer value.
func UInt32(n uint32) *Value { return &Value{kind: KindUInt32, unsignedVal: uint64(n)} }

// UIntWide returns an unsigned wide integer value.
func UIntWide(n uint64) *Value { return &Value{kind: KindUIntWide, unsignedVal: n} }

// UInt64 returns an unsigned 64-bit integer value.
func UInt64(n uint64) *Value { return &Value{kind: KindUInt64, unsignedVal: n} }

// Double returns a binary64 floating point value.
func Double(f float64) *Value { return &Value{kind: KindDouble, doubleVal: f} }

// String returns a UTF-8 string value. The caller is responsible for
// passing well-formed UTF-8; see the Invariants in the data model.
func String(s string) *Value { return &Value{kind: KindString, strVal: s} }

// Array returns an array value containing elems in order. elems is
// taken by reference, not copied.
func Array(elems ...*Value) *Value { return &Value{kind: KindArray, arr: elems} }

// Object returns an object value built from entries, sorted into
// lexicographic key order. Duplicate keys keep the last occurrence.
func Object(entries ...Entry) *Value {
	dedup := make(map[string]*Value, len(entries))
	order := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := dedup[e.Key]; !ok {
			order = append(order, e.Key)
		}
		dedup[e.Key] = e.Value
	}
	sortStrings(order)
	out := make([]Entry, len(order))
	for i, k := range order {
		out[i] = Entry{Key: k, Value: dedup[k]}
	}
	return &Value{kind: KindObject, obj: out}
}

// Field builds an Entry for use with Object.
func Field(key string, val *Value) Entry { return Entry{Key: key, Value: val} }

// ============================================================
// Accessors
// ============================================================

func kindMismatch(want Kind, v *Value) *Error {
	return newErrf(ErrKindMismatch, 0, "expected %s, got %s", want, v.Kind())
}

// AsBool returns the boolean payload.
func (v *Value) AsBool() (bool, error) {
	if v.Kind() != KindBool {
		return false, kindMismatch(KindBool, v)
	}
	return v.boolVal, nil
}

// AsInt64 returns any signed-integer-width payload widened to int64.
func (v *Value) AsInt64() (int64, error) {
	if !v.Kind().IsSignedInt() {
		return 0, kindMismatch(KindInt64, v)
	}
	return v.signedVal, nil
}

// AsUint64 returns any unsigned-integer-width payload widened to
// uint64.
func (v *Value) AsUint64() (uint64, error) {
	if !v.Kind().IsUnsignedInt() {
		return 0, kindMismatch(KindUInt64, v)
	}
	return v.unsignedVal, nil
}

// AsDouble returns the double payload.
func (v *Value) AsDouble() (float64, error) {
	if v.Kind() != KindDouble {
		return 0, kindMismatch(KindDouble, v)
	}
	return v.doubleVal, nil
}

// AsNumber returns any numeric kind coerced to float64, for callers
// that don't care about the exact width.
func (v *Value) AsNumber() (float64, error) {
	switch {
	case v.Kind().IsSignedInt():
		return float64(v.signedVal), nil
	case v.Kind().IsUnsignedInt():
		return float64(v.unsignedVal), nil
	case v.Kind() == KindDouble:
		return v.doubleVal, nil
	default:
		return 0, newErrf(ErrKindMismatch, 0, "expected numeric, got %s", v.Kind())
	}
}

// AsString returns the string payload.
func (v *Value) AsString() (string, error) {
	if v.Kind() != KindString {
		return "", kindMismatch(KindString, v)
	}
	return v.strVal, nil
}

// AsArray returns the array elements. The returned slice aliases v's
// internal storage; mutating it mutates v.
func (v *Value) AsArray() ([]*Value, error) {
	if v.Kind() != KindArray {
		return nil, kindMismatch(KindArray, v)
	}
	return v.arr, nil
}

// AsObject returns the object entries in lexicographic key order. The
// returned slice aliases v's internal storage.
func (v *Value) AsObject() ([]Entry, error) {
	if v.Kind() != KindObject {
		return nil, kindMismatch(KindObject, v)
	}
	return v.obj, nil
}

// Len returns the number of elements (array) or fields (object); zero
// for any other kind.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Get returns the live child Value for key, or nil if v is not an
// object or the key is absent. The returned pointer is the same one
// held by the parent; mutating through it mutates the parent.
func (v *Value) Get(key string) *Value {
	if v.Kind() != KindObject {
		return nil
	}
	lo, hi := 0, len(v.obj)
	for lo < hi {
		mid := (lo + hi) / 2
		if v.obj[mid].Key < key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(v.obj) && v.obj[lo].Key == key {
		return v.obj[lo].Value
	}
	return nil
}

// Index returns the i-th array element.
func (v *Value) Index(i int) (*Value, error) {
	if v.Kind() != KindArray {
		return nil, kindMismatch(KindArray, v)
	}
	if i < 0 || i >= len(v.arr) {
		return nil, newErrf(ErrOutOfRange, 0, "index %d out of bounds (len=%d)", i, len(v.arr))
	}
	return v.arr[i], nil
}

// Set inserts or replaces the field named key on an object, keeping
// lexicographic order. Panics if v is not an object.
func (v *Value) Set(key string, val *Value) {
	if v.Kind() != KindObject {
		panic("havjson: Set on non-object value")
	}
	lo, hi := 0, len(v.obj)
	for lo < hi {
		mid := (lo + hi) / 2
		if v.obj[mid].Key < key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(v.obj) && v.obj[lo].Key == key {
		v.obj[lo].Value = val
		return
	}
	v.obj = append(v.obj, Entry{})
	copy(v.obj[lo+1:], v.obj[lo:])
	v.obj[lo] = Entry{Key: key, Value: val}
}

// Delete removes the field named key from an object, if present.
func (v *Value) Delete(key string) {
	if v.Kind() != KindObject {
		return
	}
	for i, e := range v.obj {
		if e.Key == key {
			v.obj = append(v.obj[:i], v.obj[i+1:]...)
			return
		}
	}
}

// Append adds val to the end of an array. Panics if v is not an
// array.
func (v *Value) Append(val *Value) {
	if v.Kind() != KindArray {
		panic("havjson: Append on non-array value")
	}
	v.arr = append(v.arr, val)
}

func sortStrings(s []string) {
	// insertion sort: object arity is small in practice and this
	// avoids importing sort for a handful of comparisons done at
	// construction time only.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// Equal reports deep structural equality: same Kind, same payload,
// recursively for containers, with objects compared as sets of
// key/value pairs (not depending on the narrow-width distinctions
// collapsed by the bin narrowing rewrites — use EqualNarrowed for
// that).
func Equal(a, b *Value) bool {
	return equal(a, b, false)
}

// EqualNarrowed reports structural equality up to the BIN encoder's
// narrowing rewrites: unsigned-32 ≡ signed-32, wide-signed ≡ int64,
// wide-unsigned ≡ uint64. The three signed widths also compare equal
// to each other by value (see narrowKindForCompare).
func EqualNarrowed(a, b *Value) bool {
	return equal(a, b, true)
}

func equal(a, b *Value, narrowed bool) bool {
	origA, origB := a.Kind(), b.Kind()
	ak, bk := origA, origB
	if narrowed {
		ak, bk = narrowKindForCompare(ak), narrowKindForCompare(bk)
	}
	if ak != bk {
		return false
	}
	switch ak {
	case KindNull:
		return true
	case KindBool:
		return a.boolVal == b.boolVal
	case KindInt32, KindIntWide, KindInt64:
		return signedPayload(a, origA) == signedPayload(b, origB)
	case KindUInt32, KindUIntWide, KindUInt64:
		return a.unsignedVal == b.unsignedVal
	case KindDouble:
		return a.doubleVal == b.doubleVal
	case KindString:
		return a.strVal == b.strVal
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !equal(a.arr[i], b.arr[i], narrowed) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.obj) != len(b.obj) {
			return false
		}
		for i := range a.obj {
			if a.obj[i].Key != b.obj[i].Key || !equal(a.obj[i].Value, b.obj[i].Value, narrowed) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// signedPayload returns v's value as int64 for the purposes of the
// signed-family comparison above. A plain UInt32 only lands here when
// narrowed comparison has folded it into the signed-32 family (the
// same reinterpretation the BIN encoder's narrowing rewrite performs);
// every other signed kind already stores its payload as signedVal.
func signedPayload(v *Value, orig Kind) int64 {
	if orig == KindUInt32 {
		return int64(int32(v.unsignedVal))
	}
	return v.signedVal
}

// narrowKindForCompare maps a Kind onto the bucket EqualNarrowed
// compares within. Signed width distinctions collapse entirely — BIN
// round-tripping re-derives the narrowest width that fits the decoded
// literal, so a wide int can legitimately come back as an Int32 and
// still be the "same" narrowed value. KindUInt32 joins the signed
// bucket because the encoder reinterprets it as a signed 32-bit wire
// value (see signedPayload). KindUIntWide and KindUInt64 form a
// separate unsigned bucket.
func narrowKindForCompare(k Kind) Kind {
	switch k {
	case KindInt32, KindIntWide, KindInt64, KindUInt32:
		return KindInt64
	case KindUIntWide, KindUInt64:
		return KindUInt64
	default:
		return k
	}
}

// GoString renders a debug form, mainly useful in test failure
// output.
func (v *Value) GoString() string {
	if v == nil {
		return "null"
	}
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%v", v.boolVal)
	case KindInt32, KindIntWide, KindInt64:
		return fmt.Sprintf("%s(%d)", v.kind, v.signedVal)
	case KindUInt32, KindUIntWide, KindUInt64:
		return fmt.Sprintf("%s(%d)", v.kind, v.unsignedVal)
	case KindDouble:
		return fmt.Sprintf("%g", v.doubleVal)
	case KindString:
		return fmt.Sprintf("%q", v.strVal)
	case KindArray:
		return fmt.Sprintf("array[%d]", len(v.arr))
	case KindObject:
		return fmt.Sprintf("object{%d}", len(v.obj))
	default:
		return "?"
	}
}
