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

import "fmt"

// TokenKind discriminates the kinds of tokens a Reader can emit.
type TokenKind uint8

const (
	// None means there is no current value, as distinct from Null.
	None TokenKind = iota
	BeginObject
	EndObject
	BeginArray
	EndArray
	PropertyName
	String
	Number
	True
	False
	Null
)

func (k TokenKind) String() string {
	switch k {
	case None:
		return "none"
	case BeginObject:
		return "begin_object"
	case EndObject:
		return "end_object"
	case BeginArray:
		return "begin_array"
	case EndArray:
		return "end_array"
	case PropertyName:
		return "property_name"
	case String:
		return "string"
	case Number:
		return "number"
	case True:
		return "true"
	case False:
		return "false"
	case Null:
		return "null"
	default:
		return fmt.Sprintf("<invalid token kind %v>", uint8(k))
	}
}

// A Token is the Reader's output record for a single advance. Slice is a
// zero-copy view into the last-touched input segment: for strings it
// excludes the header/length framing, for numbers it's the header byte
// followed by its big-endian argument bytes, for containers it's the single
// header byte, and for keyword literals it's the single literal byte.
//
// Slice is only valid until the reader's input buffers are mutated or go
// out of scope; a Token must not outlive the Reader it came from.
type Token struct {
	Kind  TokenKind
	Slice []byte
	Size  int32

	isMultisegment        bool
	stringHasEscapedChars bool

	buffers *[][]byte

	startBufferIndex  int
	startBufferOffset int
	endBufferIndex    int
	endBufferOffset   int
}

// IsMultisegment reports whether this token's value straddled more than one
// input segment. When true, Slice holds only the tail portion of the value
// in the last segment touched, and CopyInto must be used to materialize the
// full value into a contiguous buffer.
func (t *Token) IsMultisegment() bool {
	return t.isMultisegment
}

// StringHasEscapedChars reports whether a String or PropertyName token's
// payload contains escape sequences. The Reader never sets it, because this
// format's text payload is raw UTF-8 with no escape syntax, so it always
// returns false; String copies the payload bytes unchanged.
func (t *Token) StringHasEscapedChars() bool {
	return t.stringHasEscapedChars
}
