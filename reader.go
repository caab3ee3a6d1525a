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

import "errors"

// ErrEmptyInput is returned by NewReader/NewChunkedReader when the input (or
// one of its segments) is empty, which can never be well-formed input.
var ErrEmptyInput = errors.New("tlv: reader input must be non-empty")

// ReaderOptions customizes Reader behavior. The core currently recognizes no
// options; the type exists as a forward-compatible extension point.
type ReaderOptions struct {
	_ struct{}
}

// DefaultReaderOptions returns the zero-value ReaderOptions.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{}
}

// A Reader is a pull-driven tokenizer over a TLV-encoded byte payload held
// in one contiguous buffer, or an ordered sequence of non-contiguous
// buffers. Reader is not safe for concurrent use, and a Token obtained from
// it must not outlive the buffers backing it.
type Reader struct {
	buffers       [][]byte
	bufferIndex   int
	bytesConsumed int
	totalConsumed int

	isComplex bool
	stack     BitStack
	remaining [MaxDepth + 1]uint64

	lastKind  TokenKind
	lastToken Token

	done bool
	err  error

	options ReaderOptions
}

// NewReader initializes a Reader over a single contiguous buffer.
func NewReader(buf []byte, opts *ReaderOptions) (*Reader, error) {
	return NewChunkedReader([][]byte{buf}, opts)
}

// NewChunkedReader initializes a Reader over an ordered sequence of
// non-contiguous buffers. Every segment must be non-empty.
func NewChunkedReader(bufs [][]byte, opts *ReaderOptions) (*Reader, error) {
	if len(bufs) == 0 {
		return nil, ErrEmptyInput
	}
	for _, b := range bufs {
		if len(b) == 0 {
			return nil, ErrEmptyInput
		}
	}
	o := DefaultReaderOptions()
	if opts != nil {
		o = *opts
	}
	return &Reader{buffers: bufs, options: o}, nil
}

// TotalBytesConsumed returns the total number of input bytes consumed so
// far across every segment.
func (r *Reader) TotalBytesConsumed() int {
	return r.totalConsumed
}

// Depth returns the reader's current container nesting depth.
func (r *Reader) Depth() int {
	return r.stack.Depth()
}

// Next advances to the next token and returns it. It returns ErrReaderDone
// once a well-formed document has been fully consumed, and any other error
// leaves the Reader in an undefined state that must not be reused.
func (r *Reader) Next() (Token, error) {
	if r.done {
		return Token{}, r.err
	}

	var err error
	switch r.lastKind {
	case None, PropertyName:
		err = r.beginValue(false)
	case BeginObject, BeginArray:
		err = r.continueContainer()
	default:
		if r.stack.Empty() {
			r.done = true
			r.err = ErrReaderDone
			return Token{}, ErrReaderDone
		}
		err = r.continueContainer()
	}

	if err != nil {
		r.done = true
		r.err = err
		return Token{}, err
	}
	return r.lastToken, nil
}

// SkipChildren skips over any nested elements of the current token. If the
// current token is a PropertyName, it first advances to the property's
// value. If that value (or the current token, when it wasn't a property
// name) is a BeginObject/BeginArray, it advances until the matching
// EndObject/EndArray has been consumed. For any other token kind it is a
// no-op.
func (r *Reader) SkipChildren() error {
	if r.lastKind == PropertyName {
		if _, err := r.Next(); err != nil {
			return err
		}
	}

	if r.lastKind == BeginObject || r.lastKind == BeginArray {
		target := r.stack.Depth() - 1
		for r.stack.Depth() > target {
			if _, err := r.Next(); err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *Reader) setToken(t Token) {
	r.lastToken = t
	r.lastKind = t.Kind
}

// continueContainer handles the shared logic for "we're positioned
// somewhere inside the innermost open container, decide what's next":
// close the container if its element count is exhausted, otherwise parse
// the next property name (objects) or value (arrays).
func (r *Reader) continueContainer() error {
	kind := r.stack.Peek()
	depth := r.stack.Depth()

	if r.remaining[depth] == 0 {
		return r.closeContainer(kind)
	}
	r.remaining[depth]--

	if kind == KindObject && r.lastKind != PropertyName {
		return r.beginValue(true)
	}
	return r.beginValue(false)
}

func (r *Reader) closeContainer(kind ContainerKind) error {
	r.stack.Pop()
	tk := EndArray
	if kind == KindObject {
		tk = EndObject
	}
	r.setToken(Token{Kind: tk})
	return nil
}

// beginValue reads one header byte and dispatches on its major type. When
// wantPropertyName is true, only the text-string major type is legal.
func (r *Reader) beginValue(wantPropertyName bool) error {
	if err := r.ensureByteAvailable(); err != nil {
		return err
	}
	startIdx, startOff, startTotal := r.bufferIndex, r.bytesConsumed, r.totalConsumed

	hb, err := r.readByte()
	if err != nil {
		return err
	}
	mt := majorType(hb >> 5)
	ai := hb & 0x1F

	switch mt {
	case majorTextString:
		return r.finishString(ai, hb, wantPropertyName)
	case majorByteString:
		if wantPropertyName {
			return r.unexpectedChar(hb)
		}
		return r.finishString(ai, hb, false)
	case majorArray:
		if wantPropertyName {
			return r.unexpectedChar(hb)
		}
		return r.finishContainer(KindArray, ai, hb, startIdx, startOff)
	case majorMap:
		if wantPropertyName {
			return r.unexpectedChar(hb)
		}
		return r.finishContainer(KindObject, ai, hb, startIdx, startOff)
	case majorUnsignedInt, majorNegativeInt:
		if wantPropertyName {
			return r.unexpectedChar(hb)
		}
		return r.finishNumber(ai, hb, startIdx, startOff, startTotal)
	case majorSimple:
		if wantPropertyName {
			return r.unexpectedChar(hb)
		}
		return r.finishSimple(hb, startIdx, startOff)
	default:
		return r.unexpectedChar(hb)
	}
}

func (r *Reader) unexpectedChar(hb byte) error {
	return &UnexpectedCharError{Byte: hb, Offset: r.totalConsumed - 1}
}

func (r *Reader) finishString(ai, hb byte, wantPropertyName bool) error {
	length, err := r.readArgument(ai, hb)
	if err != nil {
		return err
	}

	if length > 0 {
		if err := r.ensureByteAvailable(); err != nil {
			return err
		}
	}
	payloadIdx, payloadOff := r.bufferIndex, r.bytesConsumed
	if err := r.skipN(int(length)); err != nil {
		return err
	}

	slice, multiseg := r.sliceSince(payloadIdx, payloadOff)

	kind := String
	if wantPropertyName {
		kind = PropertyName
	}

	tok := Token{
		Kind:             kind,
		Slice:            slice,
		Size:             int32(length),
		isMultisegment:   multiseg,
		startBufferIndex: payloadIdx, startBufferOffset: payloadOff,
		endBufferIndex: r.bufferIndex, endBufferOffset: r.bytesConsumed,
	}
	if multiseg {
		tok.buffers = &r.buffers
	}
	r.setToken(tok)
	return nil
}

func (r *Reader) finishContainer(kind ContainerKind, ai, hb byte, headerIdx, headerOff int) error {
	count, err := r.readArgument(ai, hb)
	if err != nil {
		return err
	}
	if err := r.stack.Push(kind); err != nil {
		return err
	}
	r.remaining[r.stack.Depth()] = count
	r.isComplex = true

	slice := r.buffers[headerIdx][headerOff : headerOff+1]
	tk := BeginArray
	if kind == KindObject {
		tk = BeginObject
	}
	r.setToken(Token{Kind: tk, Slice: slice, Size: 1})
	return nil
}

func (r *Reader) finishNumber(ai, hb byte, headerIdx, headerOff, startTotal int) error {
	if _, err := r.readArgument(ai, hb); err != nil {
		return err
	}

	slice, multiseg := r.sliceSince(headerIdx, headerOff)
	tok := Token{
		Kind:             Number,
		Slice:            slice,
		Size:             int32(r.totalConsumed - startTotal),
		isMultisegment:   multiseg,
		startBufferIndex: headerIdx, startBufferOffset: headerOff,
		endBufferIndex: r.bufferIndex, endBufferOffset: r.bytesConsumed,
	}
	if multiseg {
		tok.buffers = &r.buffers
	}
	r.setToken(tok)
	return nil
}

func (r *Reader) finishSimple(hb byte, headerIdx, headerOff int) error {
	var kind TokenKind
	switch hb {
	case simpleFalse:
		kind = False
	case simpleTrue:
		kind = True
	case simpleNull:
		kind = Null
	default:
		return r.unexpectedChar(hb)
	}
	slice, _ := r.sliceSince(headerIdx, headerOff)
	r.setToken(Token{Kind: kind, Slice: slice, Size: 1})
	return nil
}

// readArgument decodes the additional-info argument that follows a header
// byte, per the format's additional-info table. Non-shortest encodings of an
// argument are accepted.
func (r *Reader) readArgument(ai, hb byte) (uint64, error) {
	switch {
	case ai <= aiMaxImmediate:
		return uint64(ai), nil
	case ai == aiOneByte:
		b, err := r.readByte()
		if err != nil {
			return 0, err
		}
		return uint64(b), nil
	case ai == aiTwoByte:
		b0, err := r.readByte()
		if err != nil {
			return 0, err
		}
		b1, err := r.readByte()
		if err != nil {
			return 0, err
		}
		return uint64(b0)<<8 | uint64(b1), nil
	case ai == aiFourByte:
		var v uint32
		for i := 0; i < 4; i++ {
			b, err := r.readByte()
			if err != nil {
				return 0, err
			}
			v = v<<8 | uint32(b)
		}
		return uint64(v), nil
	default:
		// aiEightByte, reserved ai 28-30, and aiIndefinite are all
		// unsupported by this core.
		return 0, &UnexpectedCharError{Byte: hb, Offset: r.totalConsumed - 1}
	}
}

// ensureByteAvailable normalizes the reader's position so it points at an
// actual unread byte, crossing segment boundaries as needed. Callers that
// mark a span's start position must call this first: otherwise a mark taken
// exactly at the exhausted end of a segment would wrongly make a span that
// is entirely within the *next* segment look like it crossed one.
func (r *Reader) ensureByteAvailable() error {
	for r.bytesConsumed >= len(r.buffers[r.bufferIndex]) {
		if err := r.advanceSegment(false); err != nil {
			return err
		}
	}
	return nil
}

// readByte reads and returns the next byte of input, crossing a segment
// boundary via advanceSegment when the current segment is exhausted.
func (r *Reader) readByte() (byte, error) {
	if err := r.ensureByteAvailable(); err != nil {
		return 0, err
	}
	b := r.buffers[r.bufferIndex][r.bytesConsumed]
	r.bytesConsumed++
	r.totalConsumed++
	return b, nil
}

// skipN advances n bytes without retaining them individually, crossing
// segment boundaries as needed. Used to consume a string's payload once its
// length is known; the bytes themselves are recovered afterwards via
// sliceSince, a zero-copy re-slice of the segment(s) just walked.
func (r *Reader) skipN(n int) error {
	remaining := n
	for remaining > 0 {
		avail := len(r.buffers[r.bufferIndex]) - r.bytesConsumed
		if avail == 0 {
			if err := r.advanceSegment(false); err != nil {
				return err
			}
			continue
		}
		take := remaining
		if take > avail {
			take = avail
		}
		r.bytesConsumed += take
		r.totalConsumed += take
		remaining -= take
	}
	return nil
}

// advanceSegment moves the reader to the next input segment. skipWhitespace
// is retained for parity with the chunk-boundary contract in spec.md §4.5;
// this binary-only core has no whitespace to skip, so it is always false.
func (r *Reader) advanceSegment(skipWhitespace bool) error {
	_ = skipWhitespace
	if r.bufferIndex+1 >= len(r.buffers) {
		return &UnexpectedEndError{Offset: r.totalConsumed}
	}
	r.bufferIndex++
	r.bytesConsumed = 0
	if len(r.buffers[r.bufferIndex]) == 0 {
		return &UnexpectedEndError{Offset: r.totalConsumed}
	}
	return nil
}

// sliceSince returns a zero-copy view of the bytes consumed since
// (startIdx, startOff), and whether that span crossed a segment boundary.
// For a multisegment span, the returned slice is only the tail portion in
// the final segment, per spec.md's "Multisegment strings/numbers" rule.
func (r *Reader) sliceSince(startIdx, startOff int) ([]byte, bool) {
	if r.bufferIndex == startIdx {
		return r.buffers[startIdx][startOff:r.bytesConsumed], false
	}
	return r.buffers[r.bufferIndex][0:r.bytesConsumed], true
}
