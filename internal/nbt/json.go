package nbt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// FromJSONObject decodes raw registry-asset JSON into an order-preserving
// Compound, following the reference server's registry loader conversion
// rule: objects become Compounds with fields kept in file order, arrays
// become Lists (erroring on heterogeneous element types rather than
// picking a common supertype), whole numbers become Int unless they are
// math.MaxInt32 or beyond it in either direction (then Long), non-integral
// numbers become Double, and
// bool/string map onto Byte/String. encoding/json's Decoder is driven
// token-by-token instead of unmarshaling into map[string]any, since Go
// maps don't preserve key order and the registry format is order
// sensitive (field order is part of a registry entry's wire identity).
func FromJSONObject(raw []byte) (Compound, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return nil, fmt.Errorf("nbt: top-level JSON must be an object")
	}

	compound, err := decodeObjectBody(dec)
	if err != nil {
		return nil, err
	}
	return compound, nil
}

func decodeValue(dec *json.Decoder) (Tag, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeValueToken(dec, tok)
}

func decodeValueToken(dec *json.Decoder, tok json.Token) (Tag, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObjectBody(dec)
		case '[':
			return decodeArrayBody(dec)
		default:
			return nil, fmt.Errorf("nbt: unexpected delimiter %q", t)
		}
	case json.Number:
		return numberToTag(t), nil
	case string:
		return String(t), nil
	case bool:
		if t {
			return Byte(1), nil
		}
		return Byte(0), nil
	case nil:
		return Byte(0), nil
	default:
		return nil, fmt.Errorf("nbt: unsupported JSON token %T", tok)
	}
}

func decodeObjectBody(dec *json.Decoder) (Compound, error) {
	var out Compound
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("nbt: object key must be a string")
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		out = append(out, CompoundEntry{Name: key, Tag: val})
	}
	// consume the closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeArrayBody(dec *json.Decoder) (Tag, error) {
	var out List
	var elemID TagID
	for i := 0; dec.More(); i++ {
		tag, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			elemID = tag.ID()
		} else if tag.ID() != elemID {
			return nil, ErrMixedListTypes
		}
		out = append(out, tag)
	}
	// consume the closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if out == nil {
		out = List{}
	}
	return out, nil
}

func numberToTag(n json.Number) Tag {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		if i >= math.MinInt32 && i < math.MaxInt32 {
			return Int(int32(i))
		}
		return Long(i)
	}
	f, _ := n.Float64()
	return Double(f)
}
