package document

import (
	"fmt"
	"math"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/ssargent/yad/pkg/codec"
)

// JSON view of a document. The view is typed and lossless: every value
// carries its exact wire type, 64-bit integers round-trip through raw JSON
// numbers without float precision loss, and the 8/16-bit float formats carry
// their raw bit patterns so non-finite and exact payloads survive.

type jsonDocument struct {
	Version jsonVersion        `json:"version"`
	Rows    map[string]jsonRow `json:"rows"`
}

type jsonVersion struct {
	Major uint8 `json:"major"`
	Minor uint8 `json:"minor"`
	Patch uint8 `json:"patch"`
	Beta  uint8 `json:"beta"`
}

// jsonRow maps key names to their typed values.
type jsonRow map[string]jsonValue

type jsonValue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
	Bits  *uint64         `json:"bits,omitempty"`
	Items []jsonValue     `json:"items,omitempty"`
}

// ToJSON renders the document as typed JSON.
func ToJSON(d *Document) ([]byte, error) {
	out := jsonDocument{
		Version: jsonVersion(d.Version),
		Rows:    make(map[string]jsonRow, len(d.Rows)),
	}
	for name, r := range d.Rows {
		jr := make(jsonRow, len(r.Keys))
		for kn, k := range r.Keys {
			jv, err := valueToJSON(k.Value)
			if err != nil {
				return nil, fmt.Errorf("row %q key %q: %w", name, kn, err)
			}
			jr[kn] = jv
		}
		out.Rows[name] = jr
	}
	return json.MarshalIndent(out, "", "  ")
}

// FromJSON parses a typed JSON rendering back into a document.
func FromJSON(b []byte) (*Document, error) {
	var in jsonDocument
	if err := json.Unmarshal(b, &in); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	d := &Document{
		Version: Version(in.Version),
		Rows:    make(map[string]Row, len(in.Rows)),
	}
	for name, jr := range in.Rows {
		r := NewRow(name)
		for kn, jv := range jr {
			v, err := valueFromJSON(jv)
			if err != nil {
				return nil, fmt.Errorf("row %q key %q: %w", name, kn, err)
			}
			r.Set(NewKey(kn, v))
		}
		d.Set(r)
	}
	return d, nil
}

func rawUint(n uint64) json.RawMessage {
	return json.RawMessage(strconv.AppendUint(nil, n, 10))
}

func rawInt(n int64) json.RawMessage {
	return json.RawMessage(strconv.AppendInt(nil, n, 10))
}

func valueToJSON(v codec.Value) (jsonValue, error) {
	switch v.Kind() {
	case codec.TypeTrue, codec.TypeFalse:
		b, _ := v.Bool()
		raw, _ := json.Marshal(b)
		return jsonValue{Type: "bool", Value: raw}, nil

	case codec.TypeString:
		s, _ := v.Str()
		raw, err := json.Marshal(s)
		if err != nil {
			return jsonValue{}, err
		}
		return jsonValue{Type: "string", Value: raw}, nil

	case codec.TypeArray:
		elems, _ := v.Array()
		items := make([]jsonValue, len(elems))
		for i, e := range elems {
			jv, err := valueToJSON(e)
			if err != nil {
				return jsonValue{}, err
			}
			items[i] = jv
		}
		return jsonValue{Type: "array", Items: items}, nil

	case codec.TypeUint:
		switch v.Width() {
		case codec.LengthOne:
			n, _ := v.Uint8()
			return jsonValue{Type: "uint8", Value: rawUint(uint64(n))}, nil
		case codec.LengthTwo:
			n, _ := v.Uint16()
			return jsonValue{Type: "uint16", Value: rawUint(uint64(n))}, nil
		case codec.LengthFour:
			n, _ := v.Uint32()
			return jsonValue{Type: "uint32", Value: rawUint(uint64(n))}, nil
		default:
			n, _ := v.Uint64()
			return jsonValue{Type: "uint64", Value: rawUint(n)}, nil
		}

	case codec.TypeInt:
		switch v.Width() {
		case codec.LengthOne:
			n, _ := v.Int8()
			return jsonValue{Type: "int8", Value: rawInt(int64(n))}, nil
		case codec.LengthTwo:
			n, _ := v.Int16()
			return jsonValue{Type: "int16", Value: rawInt(int64(n))}, nil
		case codec.LengthFour:
			n, _ := v.Int32()
			return jsonValue{Type: "int32", Value: rawInt(int64(n))}, nil
		default:
			n, _ := v.Int64()
			return jsonValue{Type: "int64", Value: rawInt(n)}, nil
		}

	case codec.TypeFloat:
		return floatToJSON(v)
	}

	return jsonValue{}, fmt.Errorf("%w: %s", codec.ErrInvalidType, v.Kind())
}

// floatToJSON always stores the raw bit pattern. A readable "value" is added
// only when the float is finite; JSON has no rendering for NaN or infinity.
func floatToJSON(v codec.Value) (jsonValue, error) {
	var (
		name string
		bits uint64
		f    float64
	)
	switch v.Width() {
	case codec.LengthOne:
		b, _ := v.Float8()
		name, bits, f = "float8", uint64(b), codec.Float8ToFloat64(b)
	case codec.LengthTwo:
		b, _ := v.Float16()
		name, bits, f = "float16", uint64(b), codec.Float16ToFloat64(b)
	case codec.LengthFour:
		g, _ := v.Float32()
		name, bits, f = "float32", uint64(math.Float32bits(g)), float64(g)
	default:
		g, _ := v.Float64()
		name, bits, f = "float64", math.Float64bits(g), g
	}

	jv := jsonValue{Type: name, Bits: &bits}
	if !math.IsNaN(f) && !math.IsInf(f, 0) {
		raw, err := json.Marshal(f)
		if err != nil {
			return jsonValue{}, err
		}
		jv.Value = raw
	}
	return jv, nil
}

func valueFromJSON(jv jsonValue) (codec.Value, error) {
	switch jv.Type {
	case "bool":
		var b bool
		if err := json.Unmarshal(jv.Value, &b); err != nil {
			return codec.Value{}, fmt.Errorf("bool: %w", err)
		}
		return codec.Bool(b), nil

	case "string":
		var s string
		if err := json.Unmarshal(jv.Value, &s); err != nil {
			return codec.Value{}, fmt.Errorf("string: %w", err)
		}
		return codec.String(s)

	case "array":
		elems := make([]codec.Value, len(jv.Items))
		for i, item := range jv.Items {
			e, err := valueFromJSON(item)
			if err != nil {
				return codec.Value{}, fmt.Errorf("array element %d: %w", i, err)
			}
			elems[i] = e
		}
		return codec.Array(elems...)

	case "uint8", "uint16", "uint32", "uint64":
		n, err := strconv.ParseUint(string(jv.Value), 10, intBits(jv.Type))
		if err != nil {
			return codec.Value{}, fmt.Errorf("%s: %w", jv.Type, err)
		}
		switch jv.Type {
		case "uint8":
			return codec.Uint8(uint8(n)), nil
		case "uint16":
			return codec.Uint16(uint16(n)), nil
		case "uint32":
			return codec.Uint32(uint32(n)), nil
		}
		return codec.Uint64(n), nil

	case "int8", "int16", "int32", "int64":
		n, err := strconv.ParseInt(string(jv.Value), 10, intBits(jv.Type))
		if err != nil {
			return codec.Value{}, fmt.Errorf("%s: %w", jv.Type, err)
		}
		switch jv.Type {
		case "int8":
			return codec.Int8(int8(n)), nil
		case "int16":
			return codec.Int16(int16(n)), nil
		case "int32":
			return codec.Int32(int32(n)), nil
		}
		return codec.Int64(n), nil

	case "float8", "float16", "float32", "float64":
		return floatFromJSON(jv)
	}

	return codec.Value{}, fmt.Errorf("%w: unknown json type %q", codec.ErrInvalidType, jv.Type)
}

func floatFromJSON(jv jsonValue) (codec.Value, error) {
	if jv.Bits != nil {
		switch jv.Type {
		case "float8":
			if *jv.Bits > math.MaxUint8 {
				return codec.Value{}, fmt.Errorf("float8: bits %d out of range", *jv.Bits)
			}
			return codec.Float8(uint8(*jv.Bits)), nil
		case "float16":
			if *jv.Bits > math.MaxUint16 {
				return codec.Value{}, fmt.Errorf("float16: bits %d out of range", *jv.Bits)
			}
			return codec.Float16(uint16(*jv.Bits)), nil
		case "float32":
			if *jv.Bits > math.MaxUint32 {
				return codec.Value{}, fmt.Errorf("float32: bits %d out of range", *jv.Bits)
			}
			return codec.Float32(math.Float32frombits(uint32(*jv.Bits))), nil
		default:
			return codec.Float64(math.Float64frombits(*jv.Bits)), nil
		}
	}

	var f float64
	if err := json.Unmarshal(jv.Value, &f); err != nil {
		return codec.Value{}, fmt.Errorf("%s: %w", jv.Type, err)
	}
	switch jv.Type {
	case "float8":
		return codec.Float8(codec.Float8FromFloat64(f)), nil
	case "float16":
		return codec.Float16(codec.Float16FromFloat64(f)), nil
	case "float32":
		return codec.Float32(float32(f)), nil
	}
	return codec.Float64(f), nil
}

func intBits(name string) int {
	switch name[len(name)-1] {
	case '8':
		return 8
	case '6':
		return 16
	case '2':
		return 32
	}
	return 64
}
