package convert

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/nucleus/cmis-core/pkg/cmis"
)

// decimalPrecision is the mantissa size used for decoded decimals.
const decimalPrecision = 128

// DecodeValue converts one wire scalar into the Go value used for typ.
// DateTime values travel as milliseconds since the Unix epoch, UTC; RFC 3339
// strings are accepted too.
func DecodeValue(typ cmis.PropertyType, raw any) (any, error) {
	switch raw.(type) {
	case *Object, []any:
		return nil, invalidValue(typ, raw)
	}

	switch typ {
	case cmis.PropertyTypeString, cmis.PropertyTypeID, cmis.PropertyTypeHTML, cmis.PropertyTypeURI:
		if s, ok := scalarText(raw); ok {
			return s, nil
		}
		if raw != nil {
			return nativeText(raw)
		}

	case cmis.PropertyTypeBoolean:
		switch x := raw.(type) {
		case bool:
			return x, nil
		case string:
			switch x {
			case "true":
				return true, nil
			case "false":
				return false, nil
			}
		}

	case cmis.PropertyTypeInteger:
		if i, ok := integerOf(raw); ok {
			return i, nil
		}

	case cmis.PropertyTypeDecimal:
		if f, ok := decimalOf(raw); ok {
			return f, nil
		}

	case cmis.PropertyTypeDateTime:
		if t, ok := raw.(time.Time); ok {
			return t.UTC(), nil
		}
		if i, ok := integerOf(raw); ok && i.IsInt64() {
			return time.UnixMilli(i.Int64()).UTC(), nil
		}
		if x, ok := raw.(string); ok {
			if t, ok := parseDateTime(x); ok {
				return t, nil
			}
		}

	default:
		return nil, cmis.Errorf(cmis.ErrUnsupportedPropertyType, "property type %q", typ)
	}

	return nil, invalidValue(typ, raw)
}

// DecodeValues converts a wire value that may be an array or a bare scalar.
// Nulls are skipped.
func DecodeValues(typ cmis.PropertyType, raw any) ([]any, error) {
	items, ok := raw.([]any)
	if !ok {
		items = []any{raw}
	}

	var out []any
	for _, item := range items {
		if item == nil {
			continue
		}
		v, err := DecodeValue(typ, item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// CheckValue reports whether v may be stored in a property of type typ.
func CheckValue(typ cmis.PropertyType, v any) error {
	if !typ.AcceptsValue(v) {
		return cmis.Errorf(cmis.ErrInvalidPropertyValue, "%v (%T) is not a valid %s value", v, v, typ)
	}
	return nil
}

// EncodeValue renders a property value for a form request.
func EncodeValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return strconv.FormatInt(x.UnixMilli(), 10)
	case *time.Time:
		if x == nil {
			return ""
		}
		return strconv.FormatInt(x.UnixMilli(), 10)
	case *big.Int:
		if x == nil {
			return ""
		}
		return x.String()
	case *big.Float:
		if x == nil {
			return ""
		}
		return x.Text('f', -1)
	case json.Number:
		return x.String()
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	if s, err := nativeText(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}

// InferPropertyType guesses a type from the first wire value of a property
// nobody defined. Decimal-shaped numbers become decimals, other numbers
// integers, RFC 3339 strings date times.
func InferPropertyType(first any) cmis.PropertyType {
	switch x := first.(type) {
	case nil:
		return cmis.PropertyTypeString
	case string:
		if _, ok := parseDateTime(x); ok {
			return cmis.PropertyTypeDateTime
		}
		return cmis.PropertyTypeString
	case bool:
		return cmis.PropertyTypeBoolean
	case time.Time:
		return cmis.PropertyTypeDateTime
	case json.Number:
		if strings.ContainsAny(x.String(), ".eE") {
			return cmis.PropertyTypeDecimal
		}
	case float32, float64:
		return cmis.PropertyTypeDecimal
	}
	return cmis.PropertyTypeInteger
}

func parseDateTime(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

func integerOf(raw any) (*big.Int, bool) {
	switch x := raw.(type) {
	case json.Number:
		return new(big.Int).SetString(x.String(), 10)
	case string:
		return new(big.Int).SetString(strings.TrimSpace(x), 10)
	case int:
		return big.NewInt(int64(x)), true
	case int64:
		return big.NewInt(x), true
	case *big.Int:
		return x, x != nil
	}
	return nil, false
}

func decimalOf(raw any) (*big.Float, bool) {
	var text string
	switch x := raw.(type) {
	case json.Number:
		text = x.String()
	case string:
		text = strings.TrimSpace(x)
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return nil, false
		}
		return new(big.Float).SetPrec(decimalPrecision).SetFloat64(x), true
	case int:
		return new(big.Float).SetPrec(decimalPrecision).SetInt64(int64(x)), true
	case int64:
		return new(big.Float).SetPrec(decimalPrecision).SetInt64(x), true
	case *big.Float:
		return x, x != nil
	default:
		return nil, false
	}

	f, _, err := big.ParseFloat(text, 10, decimalPrecision, big.ToNearestEven)
	if err != nil || f.IsInf() {
		return nil, false
	}
	return f, true
}

func nativeText(v any) (string, error) {
	switch x := v.(type) {
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case time.Time:
		return strconv.FormatInt(x.UnixMilli(), 10), nil
	}
	return "", cmis.Errorf(cmis.ErrInvalidPropertyValue, "unsupported value %v (%T)", v, v)
}

func invalidValue(typ cmis.PropertyType, raw any) error {
	return cmis.Errorf(cmis.ErrInvalidPropertyValue, "%s is not a valid %s value", describe(raw), typ)
}

func describe(raw any) string {
	if s, ok := scalarText(raw); ok {
		if _, isString := raw.(string); isString {
			return strconv.Quote(s)
		}
		return s
	}
	return jsonKind(raw)
}
