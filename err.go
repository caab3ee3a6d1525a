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
	"errors"
	"fmt"
)

// ErrReaderDone is returned by Reader.Next when a well-formed document has
// been fully consumed. It plays the same role io.EOF plays for bufio.Reader:
// a clean, expected end of stream rather than a failure.
var ErrReaderDone = errors.New("tlv: reader done")

// An UnexpectedEndError is returned when the reader runs out of input bytes
// or segments in the middle of a token.
type UnexpectedEndError struct {
	Offset int
}

func (e *UnexpectedEndError) Error() string {
	return fmt.Sprintf("tlv: unexpected end of input (offset %v)", e.Offset)
}

// An UnexpectedCharError is returned when a header byte or payload is
// malformed, or a numeric decode overflows its target width.
type UnexpectedCharError struct {
	Byte   byte
	Offset int
	Msg    string
}

func (e *UnexpectedCharError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("tlv: unexpected char: %v (offset %v)", e.Msg, e.Offset)
	}
	return fmt.Sprintf("tlv: unexpected char 0x%02X (offset %v)", e.Byte, e.Offset)
}

// A NestingOverflowError is returned when a reader or writer would exceed
// MaxDepth levels of container nesting.
type NestingOverflowError struct{}

func (e *NestingOverflowError) Error() string {
	return fmt.Sprintf("tlv: nesting exceeds maximum depth of %v", MaxDepth)
}

// An InvalidStateError is returned when an operation is not valid for the
// current token kind or writer state.
type InvalidStateError struct {
	Msg string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("tlv: invalid state: %v", e.Msg)
}

// A NotEnoughSpaceError is returned when a destination buffer is too small
// to hold the requested bytes.
type NotEnoughSpaceError struct {
	Needed    int
	Available int
}

func (e *NotEnoughSpaceError) Error() string {
	return fmt.Sprintf("tlv: not enough space: need %v, have %v", e.Needed, e.Available)
}

// A NotSupportedError is returned for well-formed requests this core
// deliberately does not support (a length or integer argument that would need
// the 8-byte form, a float that isn't finite or representable within the
// writer's integer budget).
type NotSupportedError struct {
	Msg string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("tlv: not supported: %v", e.Msg)
}
