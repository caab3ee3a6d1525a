/*
 * Copyright 2020 Amazon.com, Inc. or its affiliates. All Rights Reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License").
 * You may not use this file except in compliance with the License.
 * A copy of the License is located at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * or in the "license" file accompanying this file. This file is distributed
 * on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
 * express or implied. See the License for the specific language governing
 * permissions and limitations under the License.
 */

package tlv

import (
	"bytes"
	"math"
	"strconv"
)

// Bool returns the boolean value of a True or False token.
func (t *Token) Bool() (bool, error) {
	switch t.Kind {
	case True:
		return true, nil
	case False:
		return false, nil
	default:
		return false, &InvalidStateError{Msg: "token is not a boolean"}
	}
}

// materialize copies this token's logical bytes into dst, reassembling
// across segments when necessary, and returns the number of bytes written.
// dst must be at least len big enough; callers that already know the size
// (Size) are expected to size dst accordingly.
func (t *Token) materialize(dst []byte) int {
	if !t.isMultisegment {
		return copy(dst, t.Slice)
	}
	bufs := *t.buffers
	off := 0
	for idx := t.startBufferIndex; idx <= t.endBufferIndex; idx++ {
		seg := bufs[idx]
		from, to := 0, len(seg)
		if idx == t.startBufferIndex {
			from = t.startBufferOffset
		}
		if idx == t.endBufferIndex {
			to = t.endBufferOffset
		}
		off += copy(dst[off:], seg[from:to])
	}
	return off
}

// CopyInto copies this token's complete logical value (reassembling across
// segments for a multisegment token) into dst and returns the unused tail of
// dst. It is the only supported way to obtain a contiguous view of a
// multisegment string; Slice alone only holds the tail segment's portion.
func (t *Token) CopyInto(dst []byte) []byte {
	n := t.materialize(dst)
	return dst[n:]
}

// decodeNumberHeader parses a materialized number token's header byte and
// returns its major type and decoded argument.
func decodeNumberHeader(raw []byte) (majorType, uint64, error) {
	hb := raw[0]
	mt := majorType(hb >> 5)
	ai := hb & 0x1F
	rest := raw[1:]

	switch {
	case ai <= aiMaxImmediate:
		return mt, uint64(ai), nil
	case ai == aiOneByte:
		return mt, uint64(rest[0]), nil
	case ai == aiTwoByte:
		return mt, uint64(rest[0])<<8 | uint64(rest[1]), nil
	case ai == aiFourByte:
		var v uint32
		for i := 0; i < 4; i++ {
			v = v<<8 | uint32(rest[i])
		}
		return mt, uint64(v), nil
	default:
		return mt, 0, &UnexpectedCharError{Byte: hb, Msg: "unsupported additional-info value"}
	}
}

func (t *Token) numberParts() (majorType, uint64, error) {
	if t.Kind != Number {
		return 0, 0, &InvalidStateError{Msg: "token is not a number"}
	}
	var buf [9]byte
	n := t.materialize(buf[:])
	return decodeNumberHeader(buf[:n])
}

// Uint64 decodes an unsigned 64-bit integer token.
func (t *Token) Uint64() (uint64, error) {
	mt, arg, err := t.numberParts()
	if err != nil {
		return 0, err
	}
	if mt == majorNegativeInt {
		return 0, &UnexpectedCharError{Msg: "negative value does not fit in uint64"}
	}
	return arg, nil
}

// Uint32 decodes an unsigned 32-bit integer token, failing if the value
// overflows 32 bits.
func (t *Token) Uint32() (uint32, error) {
	v, err := t.Uint64()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, &UnexpectedCharError{Msg: "value overflows uint32"}
	}
	return uint32(v), nil
}

// Int64 decodes a signed 64-bit integer token.
func (t *Token) Int64() (int64, error) {
	mt, arg, err := t.numberParts()
	if err != nil {
		return 0, err
	}
	if mt == majorUnsignedInt {
		if arg > math.MaxInt64 {
			return 0, &UnexpectedCharError{Msg: "value overflows int64"}
		}
		return int64(arg), nil
	}
	// majorNegativeInt: the encoded value is -(arg+1).
	if arg > math.MaxInt64 {
		return 0, &UnexpectedCharError{Msg: "value overflows int64"}
	}
	return -1 - int64(arg), nil
}

// Int32 decodes a signed 32-bit integer token, failing if the value
// overflows 32 bits.
func (t *Token) Int32() (int32, error) {
	v, err := t.Int64()
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, &UnexpectedCharError{Msg: "value overflows int32"}
	}
	return int32(v), nil
}

// Double decodes a numeric token as a float64. A Number token (always an
// integer on the wire) converts exactly; a String token is parsed as the
// decimal text produced by Writer.AppendDouble, since this format has no
// native binary float encoding (see DESIGN.md's resolution of the
// textual-vs-binary number question).
func (t *Token) Double() (float64, error) {
	switch t.Kind {
	case Number:
		mt, arg, err := t.numberParts()
		if err != nil {
			return 0, err
		}
		if mt == majorUnsignedInt {
			return float64(arg), nil
		}
		return -1 - float64(arg), nil
	case String:
		var buf [40]byte
		dst := buf[:0]
		if int(t.Size) > len(buf) {
			dst = make([]byte, t.Size)
		} else {
			dst = buf[:t.Size]
		}
		n := t.materialize(dst)
		v, err := strconv.ParseFloat(string(dst[:n]), 64)
		if err != nil {
			return 0, &UnexpectedCharError{Msg: "malformed decimal text"}
		}
		return v, nil
	default:
		return 0, &InvalidStateError{Msg: "token is not a number"}
	}
}

// String materializes this token's UTF-8 bytes into dst, which must be at
// least Size bytes long, and returns the number of bytes written.
func (t *Token) String(dst []byte) (int, error) {
	if t.Kind != String && t.Kind != PropertyName {
		return 0, &InvalidStateError{Msg: "token is not a string or property name"}
	}
	n := int(t.Size)
	if len(dst) < n {
		return 0, &NotEnoughSpaceError{Needed: n, Available: len(dst)}
	}
	return t.materialize(dst[:n]), nil
}

// IsTextEqual reports whether a String or PropertyName token's value is
// byte-for-byte equal to expected, without requiring the caller to
// materialize the token first.
func (t *Token) IsTextEqual(expected []byte) bool {
	if t.Kind != String && t.Kind != PropertyName {
		return false
	}
	if int(t.Size) != len(expected) {
		return false
	}
	if !t.isMultisegment {
		return bytes.Equal(t.Slice, expected)
	}
	bufs := *t.buffers
	pos := 0
	for idx := t.startBufferIndex; idx <= t.endBufferIndex; idx++ {
		seg := bufs[idx]
		from, to := 0, len(seg)
		if idx == t.startBufferIndex {
			from = t.startBufferOffset
		}
		if idx == t.endBufferIndex {
			to = t.endBufferOffset
		}
		chunk := seg[from:to]
		if !bytes.Equal(chunk, expected[pos:pos+len(chunk)]) {
			return false
		}
		pos += len(chunk)
	}
	return true
}
