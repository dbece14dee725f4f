package havjson

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode is configured with Core Deterministic Encoding
// (RFC 8949 §4.2): sorted map keys, smallest integer widths, no
// indefinite-length items. Same Value always produces identical
// bytes. Grounded verbatim on bureau-foundation-bureau's
// lib/codec/cbor.go.
var cborEncMode cbor.EncMode

// cborDecMode decodes any-typed CBOR maps into map[string]any rather
// than CBOR's default map[interface{}]interface{}, matching this
// package's json-bridge intermediate representation.
var cborDecMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.CoreDetEncOptions()
	cborEncMode, err = encOpts.EncMode()
	if err != nil {
		panic("havjson: CBOR encoder initialization failed: " + err.Error())
	}

	cborDecMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("havjson: CBOR decoder initialization failed: " + err.Error())
	}
}

// ValueToCBOR converts v to CBOR bytes via the same any-tree bridge
// used for JSON, encoded with Core Deterministic Encoding.
func ValueToCBOR(v *Value) ([]byte, error) {
	a, err := valueToAny(v)
	if err != nil {
		return nil, err
	}
	out, err := cborEncMode.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("havjson: marshal cbor: %w", err)
	}
	return out, nil
}

// ValueFromCBOR parses CBOR bytes into a Value tree.
func ValueFromCBOR(data []byte) (*Value, error) {
	var a any
	if err := cborDecMode.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("havjson: unmarshal cbor: %w", err)
	}
	return anyFromCBOR(a)
}

// anyFromCBOR is like anyToValue but also accepts the integer and
// map[any]any shapes the CBOR decoder can produce that JSON's decoder
// never does (CBOR has native int64/uint64/map[any]any).
func anyFromCBOR(a any) (*Value, error) {
	switch t := a.(type) {
	case int64:
		if t >= minInt32 && t <= maxInt32 {
			return Int32(int32(t)), nil
		}
		return Int64(t), nil
	case uint64:
		if t <= maxUint32 {
			return UInt32(uint32(t)), nil
		}
		return UInt64(t), nil
	case map[any]any:
		entries := make([]Entry, 0, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("havjson: cbor map key %v is not a string", k)
			}
			v, err := anyFromCBOR(e)
			if err != nil {
				return nil, err
			}
			entries = append(entries, Field(ks, v))
		}
		return Object(entries...), nil
	case []any:
		elems := make([]*Value, len(t))
		for i, e := range t {
			v, err := anyFromCBOR(e)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return Array(elems...), nil
	case map[string]any:
		entries := make([]Entry, 0, len(t))
		for k, e := range t {
			v, err := anyFromCBOR(e)
			if err != nil {
				return nil, err
			}
			entries = append(entries, Field(k, v))
		}
		return Object(entries...), nil
	default:
		return anyToValue(a)
	}
}
