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

func TestBitStackPushPeekPop(t *testing.T) {
	var b BitStack
	require.True(t, b.Empty())

	require.NoError(t, b.Push(KindArray))
	require.NoError(t, b.Push(KindObject))
	assert.Equal(t, 2, b.Depth())
	assert.Equal(t, KindObject, b.Peek())

	assert.Equal(t, KindObject, b.Pop())
	assert.Equal(t, KindArray, b.Peek())
	assert.Equal(t, 1, b.Depth())

	assert.Equal(t, KindArray, b.Pop())
	assert.True(t, b.Empty())
}

func TestBitStackNestingOverflow(t *testing.T) {
	var b BitStack
	for i := 0; i < MaxDepth; i++ {
		require.NoError(t, b.Push(KindArray))
	}
	err := b.Push(KindArray)
	require.Error(t, err)
	assert.IsType(t, &NestingOverflowError{}, err)
	assert.Equal(t, MaxDepth, b.Depth())
}

func TestBitStackPopEmptyPanics(t *testing.T) {
	var b BitStack
	assert.Panics(t, func() { b.Pop() })
}

func TestBitStackPeekEmptyPanics(t *testing.T) {
	var b BitStack
	assert.Panics(t, func() { b.Peek() })
}
