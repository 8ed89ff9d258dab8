// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/bureau-foundation/wirejson/lib/schema"
)

// bytesEncoding is the wire convention for byte-string fields: padded
// standard base64, strict decoding (non-canonical trailing bits are
// rejected, not silently zeroed).
var bytesEncoding = base64.StdEncoding.Strict()

// appendJSONString appends the JSON encoding of s, with quotes and
// escaping.
func appendJSONString(buf []byte, s string) []byte {
	// json.Marshal never fails for a string.
	encoded, _ := json.Marshal(s)
	return append(buf, encoded...)
}

// appendScalar appends the JSON token for a populated scalar or enum
// value. The 64-bit integer kinds use decimal strings (JSON numbers
// lose precision above 2^53); bytes use base64; enums use the
// registered name or fail.
func appendScalar(buf []byte, fieldType schema.Type, value Value, path string) ([]byte, error) {
	switch fieldType.Kind {
	case schema.KindBool:
		return strconv.AppendBool(buf, value.v.(bool)), nil

	case schema.KindInt32:
		return strconv.AppendInt(buf, int64(value.v.(int32)), 10), nil

	case schema.KindUint32:
		return strconv.AppendUint(buf, uint64(value.v.(uint32)), 10), nil

	case schema.KindInt64:
		buf = append(buf, '"')
		buf = strconv.AppendInt(buf, value.v.(int64), 10)
		return append(buf, '"'), nil

	case schema.KindUint64:
		buf = append(buf, '"')
		buf = strconv.AppendUint(buf, value.v.(uint64), 10)
		return append(buf, '"'), nil

	case schema.KindFloat:
		number := value.v.(float64)
		if math.IsNaN(number) || math.IsInf(number, 0) {
			return nil, errorf(TypeMismatch, path, "non-finite float %v has no JSON number representation", number)
		}
		return appendFloat(buf, number), nil

	case schema.KindString:
		return appendJSONString(buf, value.v.(string)), nil

	case schema.KindBytes:
		buf = append(buf, '"')
		buf = append(buf, bytesEncoding.EncodeToString(value.v.([]byte))...)
		return append(buf, '"'), nil

	case schema.KindEnum:
		number := int32(value.v.(enumNumber))
		name, registered := fieldType.Enum.ValueName(number)
		if !registered {
			return nil, errorf(UnregisteredEnumNumber, path,
				"enum %s has no value numbered %d", fieldType.Enum.Name(), number)
		}
		return appendJSONString(buf, name), nil
	}

	return nil, errorf(TypeMismatch, path, "kind %s is not a scalar", fieldType.Kind)
}

// appendFloat appends a float as a JSON number, using the shortest
// representation that round-trips and normalizing the exponent forms
// strconv produces into valid JSON.
func appendFloat(buf []byte, number float64) []byte {
	abs := math.Abs(number)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	return strconv.AppendFloat(buf, number, format, -1, 64)
}

// mapKeyString renders a map key value as its JSON object key text
// (without quotes). Integer keys are decimal, bool keys are
// "true"/"false". This is also the canonical form used for duplicate
// detection in [Map].
func mapKeyString(key Value) (string, error) {
	switch value := key.v.(type) {
	case string:
		return value, nil
	case bool:
		return strconv.FormatBool(value), nil
	case int32:
		return strconv.FormatInt(int64(value), 10), nil
	case int64:
		return strconv.FormatInt(value, 10), nil
	case uint32:
		return strconv.FormatUint(uint64(value), 10), nil
	case uint64:
		return strconv.FormatUint(value, 10), nil
	default:
		return "", fmt.Errorf("value %v is not a valid map key", key)
	}
}

// parseMapKey parses a JSON object key into a typed map key value.
func parseMapKey(keyKind schema.Kind, raw, path string) (Value, *Error) {
	switch keyKind {
	case schema.KindString:
		return String(raw), nil
	case schema.KindBool:
		switch raw {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		}
		return Value{}, errorf(TypeMismatch, path, "map key %q is not a boolean", raw)
	case schema.KindInt32:
		number, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return Value{}, errorf(InvalidNumericString, path, "map key %q is not an int32", raw)
		}
		return Int32(int32(number)), nil
	case schema.KindInt64:
		number, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, errorf(InvalidNumericString, path, "map key %q is not an int64", raw)
		}
		return Int64(number), nil
	case schema.KindUint32:
		number, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return Value{}, errorf(InvalidNumericString, path, "map key %q is not a uint32", raw)
		}
		return Uint32(uint32(number)), nil
	case schema.KindUint64:
		number, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return Value{}, errorf(InvalidNumericString, path, "map key %q is not a uint64", raw)
		}
		return Uint64(number), nil
	}
	return Value{}, errorf(TypeMismatch, path, "kind %s is not a valid map key kind", keyKind)
}

// tokenShape names a decoded JSON token's shape for TypeMismatch
// details.
func tokenShape(token any) string {
	switch value := token.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case json.Delim:
		if value == '{' {
			return "object"
		}
		return "array"
	default:
		return fmt.Sprintf("%T", token)
	}
}

// decodeScalarToken converts a non-container JSON token into a typed
// value for a scalar or enum field. Integer kinds accept both JSON
// numbers and decimal strings; both paths are range-checked against
// the target width. Enum fields accept a registered name or a
// registered number, nothing else.
func decodeScalarToken(fieldType schema.Type, token any, path string) (Value, *Error) {
	switch fieldType.Kind {
	case schema.KindBool:
		value, ok := token.(bool)
		if !ok {
			return Value{}, errorf(TypeMismatch, path, "expected boolean, got %s", tokenShape(token))
		}
		return Bool(value), nil

	case schema.KindInt32:
		raw, mismatch := integerText(token, path)
		if mismatch != nil {
			return Value{}, mismatch
		}
		number, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return Value{}, errorf(InvalidNumericString, path, "%q is not an int32", raw)
		}
		return Int32(int32(number)), nil

	case schema.KindInt64:
		raw, mismatch := integerText(token, path)
		if mismatch != nil {
			return Value{}, mismatch
		}
		number, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, errorf(InvalidNumericString, path, "%q is not an int64", raw)
		}
		return Int64(number), nil

	case schema.KindUint32:
		raw, mismatch := integerText(token, path)
		if mismatch != nil {
			return Value{}, mismatch
		}
		number, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return Value{}, errorf(InvalidNumericString, path, "%q is not a uint32", raw)
		}
		return Uint32(uint32(number)), nil

	case schema.KindUint64:
		raw, mismatch := integerText(token, path)
		if mismatch != nil {
			return Value{}, mismatch
		}
		number, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return Value{}, errorf(InvalidNumericString, path, "%q is not a uint64", raw)
		}
		return Uint64(number), nil

	case schema.KindFloat:
		number, ok := token.(json.Number)
		if !ok {
			return Value{}, errorf(TypeMismatch, path, "expected number, got %s", tokenShape(token))
		}
		value, err := strconv.ParseFloat(number.String(), 64)
		if err != nil {
			return Value{}, errorf(InvalidNumericString, path, "%q is not a float", number.String())
		}
		return Float(value), nil

	case schema.KindString:
		value, ok := token.(string)
		if !ok {
			return Value{}, errorf(TypeMismatch, path, "expected string, got %s", tokenShape(token))
		}
		return String(value), nil

	case schema.KindBytes:
		text, ok := token.(string)
		if !ok {
			return Value{}, errorf(TypeMismatch, path, "expected base64 string, got %s", tokenShape(token))
		}
		decoded, err := bytesEncoding.DecodeString(text)
		if err != nil {
			return Value{}, errorf(InvalidBase64, path, "%v", err)
		}
		return Bytes(decoded), nil

	case schema.KindEnum:
		switch value := token.(type) {
		case string:
			number, registered := fieldType.Enum.ValueNumber(value)
			if !registered {
				return Value{}, errorf(InvalidEnumValue, path,
					"enum %s has no value named %q", fieldType.Enum.Name(), value)
			}
			return Enum(number), nil
		case json.Number:
			number, err := strconv.ParseInt(value.String(), 10, 32)
			if err != nil {
				return Value{}, errorf(InvalidEnumValue, path,
					"%q is not an enum number", value.String())
			}
			if _, registered := fieldType.Enum.ValueName(int32(number)); !registered {
				return Value{}, errorf(InvalidEnumValue, path,
					"enum %s has no value numbered %d", fieldType.Enum.Name(), number)
			}
			return Enum(int32(number)), nil
		default:
			return Value{}, errorf(TypeMismatch, path,
				"expected enum name or number, got %s", tokenShape(token))
		}
	}

	return Value{}, errorf(TypeMismatch, path, "kind %s is not a scalar", fieldType.Kind)
}

// integerText extracts the decimal text of an integer token, which
// may arrive as a JSON number or as a decimal string (the 64-bit
// string convention; accepted for all integer widths).
func integerText(token any, path string) (string, *Error) {
	switch value := token.(type) {
	case json.Number:
		return value.String(), nil
	case string:
		return value, nil
	default:
		return "", errorf(TypeMismatch, path, "expected integer, got %s", tokenShape(token))
	}
}
