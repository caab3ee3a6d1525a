// Package tree decodes a complete TLV document into an in-memory Value tree,
// and encodes one back out, for callers who don't want to drive a
// tlv.Reader/tlv.Writer token loop themselves.
package tree

import (
	"hash/maphash"

	"github.com/aristanetworks/gomap"

	"github.com/tlvproto/tlv"
)

// Kind discriminates the shapes a Value can hold.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt64
	KindUint64
	KindFloat64
	KindString
	KindArray
	KindMap
)

// A Value is one node of a decoded document: exactly one of its fields is
// meaningful, selected by Kind.
type Value struct {
	Kind Kind

	Bool    bool
	Int64   int64
	Uint64  uint64
	Float64 float64
	String  string
	Array   []Value
	Map     Map
}

// Map is an insertion-ordered string-keyed map. A plain Go map can't
// preserve encounter order, and this format's key ordering is explicitly
// unspecified-but-preserved, so Map wraps github.com/aristanetworks/gomap's
// generic ordered map instead.
type Map struct {
	m *gomap.Map[string, Value]
}

// NewMap returns an empty, ready-to-use Map.
func NewMap() Map {
	return Map{m: gomap.NewHint[string, Value](0, mapKeyEqual, mapKeyHash)}
}

// Set assigns key to value, appending key to the iteration order if it
// isn't already present.
func (m Map) Set(key string, value Value) {
	m.m.Set(key, value)
}

// Get returns the value for key and whether it was present.
func (m Map) Get(key string) (Value, bool) {
	return m.m.Get(key)
}

// Len returns the number of entries.
func (m Map) Len() int {
	if m.m == nil {
		return 0
	}
	return m.m.Len()
}

// Range calls fn for each entry in insertion order, stopping early if fn
// returns false.
func (m Map) Range(fn func(key string, value Value) bool) {
	if m.m == nil {
		return
	}
	m.m.Iter()(fn)
}

func mapKeyEqual(a, b string) bool { return a == b }

func mapKeyHash(seed maphash.Seed, x string) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteString(x)
	return h.Sum64()
}

// Decode walks exactly one value (scalar or container, with all of its
// descendants) off r into a Value tree. It assumes r has not yet produced
// any tokens, or that the caller wants the NEXT value r would produce.
func Decode(r *tlv.Reader) (Value, error) {
	tok, err := r.Next()
	if err != nil {
		return Value{}, err
	}
	return decodeValue(r, tok)
}

func decodeValue(r *tlv.Reader, tok tlv.Token) (Value, error) {
	switch tok.Kind {
	case tlv.Null:
		return Value{Kind: KindNull}, nil
	case tlv.True:
		return Value{Kind: KindBool, Bool: true}, nil
	case tlv.False:
		return Value{Kind: KindBool, Bool: false}, nil
	case tlv.Number:
		return decodeNumber(tok)
	case tlv.String:
		return decodeString(tok)
	case tlv.BeginArray:
		return decodeArray(r)
	case tlv.BeginObject:
		return decodeObject(r)
	default:
		return Value{}, &tlv.InvalidStateError{Msg: "unexpected top-level token kind"}
	}
}

func decodeNumber(tok tlv.Token) (Value, error) {
	if u, err := tok.Uint64(); err == nil {
		return Value{Kind: KindUint64, Uint64: u}, nil
	}
	i, err := tok.Int64()
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: KindInt64, Int64: i}, nil
}

func decodeString(tok tlv.Token) (Value, error) {
	buf := make([]byte, tok.Size)
	n, err := tok.String(buf)
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: KindString, String: string(buf[:n])}, nil
}

func decodeArray(r *tlv.Reader) (Value, error) {
	var elems []Value
	for {
		tok, err := r.Next()
		if err != nil {
			return Value{}, err
		}
		if tok.Kind == tlv.EndArray {
			return Value{Kind: KindArray, Array: elems}, nil
		}
		v, err := decodeValue(r, tok)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
}

func decodeObject(r *tlv.Reader) (Value, error) {
	m := NewMap()
	for {
		tok, err := r.Next()
		if err != nil {
			return Value{}, err
		}
		if tok.Kind == tlv.EndObject {
			return Value{Kind: KindMap, Map: m}, nil
		}
		keyBuf := make([]byte, tok.Size)
		n, err := tok.String(keyBuf)
		if err != nil {
			return Value{}, err
		}
		valTok, err := r.Next()
		if err != nil {
			return Value{}, err
		}
		v, err := decodeValue(r, valTok)
		if err != nil {
			return Value{}, err
		}
		m.Set(string(keyBuf[:n]), v)
	}
}

// Encode walks v back through w, emitting the equivalent token stream.
func Encode(w *tlv.Writer, v Value) error {
	switch v.Kind {
	case KindNull:
		return w.AppendNull()
	case KindBool:
		return w.AppendBool(v.Bool)
	case KindInt64:
		return w.AppendInt64(v.Int64)
	case KindUint64:
		return w.AppendUint64(v.Uint64)
	case KindFloat64:
		return w.AppendDouble(v.Float64, 15)
	case KindString:
		return w.AppendString([]byte(v.String))
	case KindArray:
		if err := w.AppendBeginArray(len(v.Array)); err != nil {
			return err
		}
		for _, elem := range v.Array {
			if err := Encode(w, elem); err != nil {
				return err
			}
		}
		return w.AppendEndArray()
	case KindMap:
		if err := w.AppendBeginObject(v.Map.Len()); err != nil {
			return err
		}
		var encErr error
		v.Map.Range(func(key string, value Value) bool {
			if err := w.AppendPropertyName([]byte(key)); err != nil {
				encErr = err
				return false
			}
			if err := Encode(w, value); err != nil {
				encErr = err
				return false
			}
			return true
		})
		if encErr != nil {
			return encErr
		}
		return w.AppendEndObject()
	default:
		return &tlv.InvalidStateError{Msg: "unknown value kind"}
	}
}
