/*
 * Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBool(t *testing.T) {
	r, err := NewReader([]byte{0xF5}, nil)
	require.NoError(t, err)
	tok, err := r.Next()
	require.NoError(t, err)
	v, err := tok.Bool()
	require.NoError(t, err)
	assert.True(t, v)
}

func TestTokenBoolWrongKind(t *testing.T) {
	r, err := NewReader([]byte{0xF6}, nil)
	require.NoError(t, err)
	tok, err := r.Next()
	require.NoError(t, err)
	_, err = tok.Bool()
	require.Error(t, err)
	assert.IsType(t, &InvalidStateError{}, err)
}

func TestTokenUint64Max(t *testing.T) {
	// ai=26 (four-byte) is the widest this core supports; uint64 max
	// itself requires the unsupported 8-byte form, so exercise the
	// largest representable unsigned value instead.
	r, err := NewReader([]byte{0x1A, 0xFF, 0xFF, 0xFF, 0xFF}, nil)
	require.NoError(t, err)
	tok, err := r.Next()
	require.NoError(t, err)
	v, err := tok.Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0xFFFFFFFF), v)
}

func TestTokenEightByteLengthUnsupported(t *testing.T) {
	r, err := NewReader([]byte{0x3B, 0, 0, 0, 0, 0, 0, 0, 0}, nil)
	require.NoError(t, err)
	_, err = r.Next()
	require.Error(t, err) // ai=27 (eight-byte) is unsupported
	assert.IsType(t, &UnexpectedCharError{}, err)
}

func TestTokenUint32ExactMax(t *testing.T) {
	r, err := NewReader([]byte{0x1A, 0xFF, 0xFF, 0xFF, 0xFF}, nil)
	require.NoError(t, err)
	tok, err := r.Next()
	require.NoError(t, err)
	_, err = tok.Uint32()
	require.NoError(t, err)
}

func TestTokenStringNotEnoughSpace(t *testing.T) {
	r, err := NewReader([]byte{0x63, 'a', 'b', 'c'}, nil)
	require.NoError(t, err)
	tok, err := r.Next()
	require.NoError(t, err)

	dst := make([]byte, 2)
	_, err = tok.String(dst)
	require.Error(t, err)
	assert.IsType(t, &NotEnoughSpaceError{}, err)
}

func TestTokenIsTextEqual(t *testing.T) {
	r, err := NewReader([]byte{0x63, 'a', 'b', 'c'}, nil)
	require.NoError(t, err)
	tok, err := r.Next()
	require.NoError(t, err)

	assert.True(t, tok.IsTextEqual([]byte("abc")))
	assert.False(t, tok.IsTextEqual([]byte("abd")))
	assert.False(t, tok.IsTextEqual([]byte("ab")))
}

func TestTokenCopyInto(t *testing.T) {
	r, err := NewReader([]byte{0x63, 'a', 'b', 'c'}, nil)
	require.NoError(t, err)
	tok, err := r.Next()
	require.NoError(t, err)

	dst := make([]byte, 5)
	tail := tok.CopyInto(dst)
	assert.Equal(t, []byte("abc"), dst[:3])
	assert.Equal(t, 2, len(tail))
}

func TestTokenDoubleFromNumberKind(t *testing.T) {
	r, err := NewReader([]byte{0x09}, nil)
	require.NoError(t, err)
	tok, err := r.Next()
	require.NoError(t, err)
	v, err := tok.Double()
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)
}
