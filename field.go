// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

// OffsT is the type used for offsets and lengths inside a PField.
// uint32 since a single accumulated message buffer can exceed 64k once
// several chunks of a streamed request have been appended by a
// MessageProcessor.
type OffsT uint32

// PField is a parsed field: an offset/length pair referencing bytes
// inside a buffer owned by the caller. No parser in this module ever
// allocates or copies the string content a PField refers to.
type PField struct {
	Offs OffsT
	Len  OffsT
}

// Set sets a PField to point to [start:end).
func (p *PField) Set(start, end int) {
	p.Offs = OffsT(start)
	p.Len = OffsT(end - start)
	if end < start {
		panic("sipparser: invalid PField range")
	}
}

// Reset sets a PField to the empty value.
func (p *PField) Reset() {
	p.Offs = 0
	p.Len = 0
}

// Extend "grows" a PField to a new end offset, keeping Offs unchanged.
func (p *PField) Extend(newEnd int) {
	if newEnd < int(p.Offs) {
		panic("sipparser: invalid PField end offset")
	}
	p.Len = OffsT(newEnd) - p.Offs
}

// Empty returns true if the field is zero-length.
func (p PField) Empty() bool {
	return p.Len == 0
}

// End returns the offset one past the last byte of the field.
func (p PField) End() OffsT {
	return p.Offs + p.Len
}

// Get returns the byte slice for f inside buf.
func (p PField) Get(buf []byte) []byte {
	return GetPField(buf, p)
}

// GetPField returns a byte slice for the corresponding field f, pointing
// inside buf.
func GetPField(buf []byte, f PField) []byte {
	return buf[f.Offs : f.Offs+f.Len]
}

// addOffset returns a copy of p shifted by delta; an empty field is
// returned unchanged. Used by AddBias to bias-adjust spans so that they
// remain valid against a moved or accumulated buffer.
func (p PField) addOffset(delta int) PField {
	if p.Len == 0 {
		return p
	}
	return PField{Offs: OffsT(int(p.Offs) + delta), Len: p.Len}
}
