// Copyright 2026 The luadis Authors
// SPDX-License-Identifier: MIT

package luabc

import (
	"encoding/binary"
	"io"
	"math"
	"strconv"
)

// Reader is a cursor over an immutable byte slice that tracks its
// absolute position so callers can stamp decoded values with the byte
// offset they started at. It is single-owner: there is no concurrent
// access and no seeking backwards.
type Reader struct {
	data  []byte
	pos   int
	order binary.ByteOrder
}

// NewReader returns a [Reader] over data. The byte order starts as
// [binary.BigEndian]; [Reader.SetOrder] is called once the header has
// determined the chunk's actual endianness.
func NewReader(data []byte) *Reader {
	return &Reader{data: data, order: binary.BigEndian}
}

// SetOrder changes the byte order used by [Reader.ReadUint] and
// [Reader.ReadFloat] for all subsequent reads.
func (r *Reader) SetOrder(order binary.ByteOrder) {
	r.order = order
}

// Position returns the current byte offset into the original data.
func (r *Reader) Position() int {
	return r.pos
}

// Len returns the number of unread bytes remaining.
func (r *Reader) Len() int {
	return len(r.data) - r.pos
}

// ReadBytes consumes and returns the next n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.Len() < n {
		return nil, io.ErrUnexpectedEOF
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadU8 reads a single unsigned byte.
func (r *Reader) ReadU8() (byte, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint reads width bytes (width must be 4 or 8) and interprets
// them as an unsigned integer under the reader's current byte order.
func (r *Reader) ReadUint(width int) (uint64, error) {
	b, err := r.ReadBytes(width)
	if err != nil {
		return 0, err
	}
	switch width {
	case 4:
		return uint64(r.order.Uint32(b)), nil
	case 8:
		return r.order.Uint64(b), nil
	default:
		return 0, errInvalidWidth(width)
	}
}

// ReadFloat reads width bytes (width must be 4 or 8) and interprets
// them as an IEEE-754 float under the reader's current byte order,
// widening a 4-byte value to float64.
func (r *Reader) ReadFloat(width int) (float64, error) {
	b, err := r.ReadBytes(width)
	if err != nil {
		return 0, err
	}
	switch width {
	case 4:
		return float64(math.Float32frombits(r.order.Uint32(b))), nil
	case 8:
		return math.Float64frombits(r.order.Uint64(b)), nil
	default:
		return 0, errInvalidWidth(width)
	}
}

type errInvalidWidth int

func (w errInvalidWidth) Error() string {
	return "luabc: invalid integer width " + strconv.Itoa(int(w))
}
