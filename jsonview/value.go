package jsonview

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// jsonAPI leaves HTML escaping to the DOM serializer.
var jsonAPI = jsoniter.Config{
	EscapeHTML:             false,
	ValidateJsonRawMessage: true,
}.Froze()

// ValueType identifies the JSON type of a Value.
type ValueType int

const (
	NullValue ValueType = iota
	BoolValue
	NumberValue
	StringValue
	ArrayValue
	ObjectValue
)

func (t ValueType) String() string {
	switch t {
	case NullValue:
		return "null"
	case BoolValue:
		return "bool"
	case NumberValue:
		return "number"
	case StringValue:
		return "string"
	case ArrayValue:
		return "array"
	case ObjectValue:
		return "object"
	default:
		return fmt.Sprintf("ValueType(%d)", int(t))
	}
}

// Value is a decoded JSON value that keeps number literals and object field order.
type Value struct {
	Type   ValueType
	Str    string
	Num    json.Number
	Bool   bool
	Items  []Value
	Fields []Field
}

// Field is one member of a JSON object.
type Field struct {
	Key   string
	Value Value
}

// Null returns the JSON null value.
func Null() Value { return Value{Type: NullValue} }

// String returns a JSON string value.
func String(s string) Value { return Value{Type: StringValue, Str: s} }

// Number returns a JSON number value with the given literal text.
func Number(literal string) Value { return Value{Type: NumberValue, Num: json.Number(literal)} }

// Bool returns a JSON boolean value.
func Bool(b bool) Value { return Value{Type: BoolValue, Bool: b} }

// Array returns a JSON array value.
func Array(items ...Value) Value { return Value{Type: ArrayValue, Items: items} }

// Object returns a JSON object value with fields in the given order.
func Object(fields ...Field) Value { return Value{Type: ObjectValue, Fields: fields} }

// Get returns the first field named key of an object value.
func (v Value) Get(key string) (Value, bool) {
	if v.Type != ObjectValue {
		return Value{}, false
	}
	for _, f := range v.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Text returns the display text of a value: strings verbatim, numbers as their
// original literal, null as empty, containers as compact JSON.
func (v Value) Text() string {
	switch v.Type {
	case NullValue:
		return ""
	case BoolValue:
		if v.Bool {
			return "true"
		}
		return "false"
	case NumberValue:
		return v.Num.String()
	case StringValue:
		return v.Str
	default:
		return v.JSON()
	}
}

// JSON returns the compact JSON encoding of the value.
func (v Value) JSON() string {
	stream := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(stream)

	writeValue(stream, v)
	return string(stream.Buffer())
}

func writeValue(stream *jsoniter.Stream, v Value) {
	switch v.Type {
	case NullValue:
		stream.WriteNil()
	case BoolValue:
		stream.WriteBool(v.Bool)
	case NumberValue:
		stream.WriteRaw(v.Num.String())
	case StringValue:
		stream.WriteString(v.Str)
	case ArrayValue:
		stream.WriteArrayStart()
		for i, item := range v.Items {
			if i > 0 {
				stream.WriteMore()
			}
			writeValue(stream, item)
		}
		stream.WriteArrayEnd()
	case ObjectValue:
		stream.WriteObjectStart()
		for i, f := range v.Fields {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(f.Key)
			writeValue(stream, f.Value)
		}
		stream.WriteObjectEnd()
	}
}

// ParseValue decodes a single JSON document into a Value.
func ParseValue(data []byte) (Value, error) {
	// A trailing newline terminates a top-level number before the end of input.
	buf := make([]byte, len(data)+1)
	copy(buf, data)
	buf[len(data)] = '\n'

	if !jsonAPI.Valid(buf) {
		return Value{}, fmt.Errorf("invalid JSON")
	}

	iter := jsonAPI.BorrowIterator(buf)
	defer jsonAPI.ReturnIterator(iter)

	v := readValue(iter)
	if iter.Error != nil {
		return Value{}, fmt.Errorf("failed to parse JSON: %w", iter.Error)
	}
	// Reaching the end of input sets io.EOF; anything else is trailing data.
	if next := iter.WhatIsNext(); next != jsoniter.InvalidValue || !errors.Is(iter.Error, io.EOF) {
		return Value{}, fmt.Errorf("unexpected data after top-level value")
	}
	return v, nil
}

func readValue(iter *jsoniter.Iterator) Value {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		return String(iter.ReadString())
	case jsoniter.NumberValue:
		return Value{Type: NumberValue, Num: iter.ReadNumber()}
	case jsoniter.BoolValue:
		return Bool(iter.ReadBool())
	case jsoniter.NilValue:
		iter.ReadNil()
		return Null()
	case jsoniter.ArrayValue:
		v := Value{Type: ArrayValue, Items: []Value{}}
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			v.Items = append(v.Items, readValue(it))
			return it.Error == nil
		})
		return v
	case jsoniter.ObjectValue:
		v := Value{Type: ObjectValue, Fields: []Field{}}
		iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			v.Fields = append(v.Fields, Field{Key: key, Value: readValue(it)})
			return it.Error == nil
		})
		return v
	default:
		iter.ReportError("readValue", "unexpected token")
		return Null()
	}
}
