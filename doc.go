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

// Package tlv implements a streaming reader and writer for a binary,
// self-describing data interchange format derived from the RFC 8949 major
// types: unsigned/negative integers, byte and text strings, arrays, maps,
// and the simple values true/false/null.
//
// The Reader is a pull-driven tokenizer: each call to Next returns the next
// Token, a zero-copy view into the caller's own buffers. The Writer is a
// push-driven emitter: each Append call validates the call against the
// writer's current nesting state and appends bytes to the destination.
//
// Neither Reader nor Writer is safe for concurrent use, and neither
// performs any I/O of its own; all input and output is in-memory, supplied
// either as a single contiguous buffer or as a sequence of buffers.
package tlv
