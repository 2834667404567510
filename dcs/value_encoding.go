package dcs

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ValueType represents the type of a value
type ValueType byte

const (
	TypeString ValueType = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeSet
)

// Type returns the type of a value
func Type(v Value) (ValueType, error) {
	switch val := Normalize(v).(type) {
	case string:
		return TypeString, nil
	case int64:
		return TypeInt, nil
	case float64:
		return TypeFloat, nil
	case bool:
		return TypeBool, nil
	case *Denotation:
		return TypeSet, nil
	default:
		return 0, fmt.Errorf("unknown value type: %T", val)
	}
}

// EncodeTuple serializes a tuple as
//
//	uvarint(columns) { type byte, uvarint(len), payload }...
//
// The encoding is deterministic, so it doubles as a storage key suffix.
func EncodeTuple(t Tuple) ([]byte, error) {
	buf := binary.AppendUvarint(nil, uint64(len(t)))
	for _, v := range t {
		vt, err := Type(v)
		if err != nil {
			return nil, err
		}
		payload, err := valueBytes(vt, Normalize(v))
		if err != nil {
			return nil, err
		}
		buf = append(buf, byte(vt))
		buf = binary.AppendUvarint(buf, uint64(len(payload)))
		buf = append(buf, payload...)
	}
	return buf, nil
}

// DecodeTuple is the inverse of EncodeTuple.
func DecodeTuple(data []byte) (Tuple, error) {
	n, read := binary.Uvarint(data)
	if read <= 0 {
		return nil, fmt.Errorf("invalid tuple header")
	}
	data = data[read:]

	t := make(Tuple, 0, n)
	for i := uint64(0); i < n; i++ {
		if len(data) < 1 {
			return nil, fmt.Errorf("truncated tuple at column %d", i)
		}
		vt := ValueType(data[0])
		size, read := binary.Uvarint(data[1:])
		if read <= 0 || uint64(len(data)-1-read) < size {
			return nil, fmt.Errorf("truncated value at column %d", i)
		}
		start := 1 + read
		v, err := valueFromBytes(vt, data[start:start+int(size)])
		if err != nil {
			return nil, err
		}
		t = append(t, v)
		data = data[start+int(size):]
	}
	return t, nil
}

// valueBytes serializes a single value
func valueBytes(vt ValueType, v Value) ([]byte, error) {
	switch vt {
	case TypeString:
		return []byte(v.(string)), nil
	case TypeInt:
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(v.(int64)))
		return buf, nil
	case TypeFloat:
		f := v.(float64)
		if f == 0 {
			f = 0 // store -0 as 0
		}
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, math.Float64bits(f))
		return buf, nil
	case TypeBool:
		if v.(bool) {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case TypeSet:
		d := v.(*Denotation)
		if d.IsUniversal() {
			return nil, fmt.Errorf("cannot encode the universal denotation")
		}
		// Sorted so equal sets encode identically
		buf := binary.AppendUvarint(nil, uint64(d.Size()))
		for _, t := range d.Sorted() {
			enc, err := EncodeTuple(t)
			if err != nil {
				return nil, err
			}
			buf = binary.AppendUvarint(buf, uint64(len(enc)))
			buf = append(buf, enc...)
		}
		return buf, nil
	}
	return nil, fmt.Errorf("cannot encode value type: %v", vt)
}

// valueFromBytes deserializes a value from bytes
func valueFromBytes(vt ValueType, data []byte) (Value, error) {
	switch vt {
	case TypeString:
		return string(data), nil
	case TypeInt:
		if len(data) != 8 {
			return nil, fmt.Errorf("int value must be 8 bytes, got %d", len(data))
		}
		return int64(binary.BigEndian.Uint64(data)), nil
	case TypeFloat:
		if len(data) != 8 {
			return nil, fmt.Errorf("float value must be 8 bytes, got %d", len(data))
		}
		return math.Float64frombits(binary.BigEndian.Uint64(data)), nil
	case TypeBool:
		if len(data) != 1 {
			return nil, fmt.Errorf("bool value must be 1 byte, got %d", len(data))
		}
		return data[0] != 0, nil
	case TypeSet:
		n, read := binary.Uvarint(data)
		if read <= 0 {
			return nil, fmt.Errorf("invalid set header")
		}
		data = data[read:]
		b := NewBuilder(int(n))
		for i := uint64(0); i < n; i++ {
			size, read := binary.Uvarint(data)
			if read <= 0 || uint64(len(data)-read) < size {
				return nil, fmt.Errorf("truncated set member %d", i)
			}
			t, err := DecodeTuple(data[read : read+int(size)])
			if err != nil {
				return nil, err
			}
			b.Add(t)
			data = data[read+int(size):]
		}
		return b.Denotation(), nil
	default:
		return nil, fmt.Errorf("unknown value type: %v", vt)
	}
}
