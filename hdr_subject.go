// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

// PSubjectBody holds a parsed Subject header value:
// [TEXT-UTF8-TRIM]. Unlike the token/param headers, Subject content is
// free text and inline LWS is kept verbatim; only a folded CRLF (CRLF
// followed by SP/HTAB) is special, since it splits the text into
// separate "fold parts" whose leading fold whitespace is not part of
// the logical value.
type PSubjectBody struct {
	V      PField   // whole value, span from first to last non-fold byte
	Parts  []PField // per fold-part spans, min(NParts, len(Parts))
	NParts int      // number of fold parts found, can be > len(Parts)
	last   PField   // overflow slot, used if Parts is too small
	PSubjectIState
}

// Reset re-initializes sb.
func (sb *PSubjectBody) Reset() {
	parts := sb.Parts
	*sb = PSubjectBody{}
	sb.Parts = parts
}

// Init initializes the fold-part spans from a caller-supplied array.
func (sb *PSubjectBody) Init(partsbuf []PField) {
	sb.Parts = partsbuf
}

// Empty returns true if nothing has been parsed yet.
func (sb *PSubjectBody) Empty() bool {
	return sb.state == sjInit
}

// Parsed returns true if the value is fully parsed.
func (sb *PSubjectBody) Parsed() bool {
	return sb.state == sjFIN
}

// PartNo returns the number of fold-part spans that fit in Parts.
func (sb *PSubjectBody) PartNo() int {
	if sb.NParts > len(sb.Parts) {
		return len(sb.Parts)
	}
	return sb.NParts
}

// PSubjectIState contains ParseSubjectVal internal state (private).
type PSubjectIState struct {
	state      uint8
	soffs      int // start of the current fold part
	foldBefore bool
}

const (
	sjInit uint8 = iota
	sjText
	sjCR
	sjLF
	sjFIN
)

// ParseSubjectVal parses the value of a Subject header. buf[offs:]
// should point just after the ':'. Leading and trailing LWS is
// trimmed; internal LWS (including ordinary inline spaces) is kept
// verbatim as part of the text, but a folded CRLF is recorded as a
// fold-part boundary, not as literal content: use Text to reconstruct
// the logical (unfolded) value.
func ParseSubjectVal(buf []byte, offs int, sb *PSubjectBody) (int, ErrorHdr) {
	if sb.state == sjFIN {
		return offs, 0
	}
	i := offs
	for i < len(buf) {
		c := buf[i]
		switch sb.state {
		case sjInit:
			switch c {
			case ' ', '\t':
			case '\r':
				sb.state = sjCR
			case '\n':
				sb.state = sjLF
			default:
				sb.soffs = i
				sb.V.Set(i, i)
				sb.state = sjText
				continue
			}
		case sjText:
			switch c {
			case '\r', '\n':
				// trailing SP/HTAB before the CR/LF is not part of the text
				e := i
				for e > sb.soffs && (buf[e-1] == ' ' || buf[e-1] == '\t') {
					e--
				}
				sb.addPart(e)
				if c == '\r' {
					sb.state = sjCR
				} else {
					sb.state = sjLF
				}
			default:
				// all other bytes, incl. inline SP/HTAB and UTF8-NONASCII,
				// are kept as part of the text verbatim
			}
		case sjCR:
			switch c {
			case '\n':
				sb.state = sjLF
			default:
				return i, ErrHdrBadChar
			}
		case sjLF:
			switch c {
			case ' ', '\t':
				// fold whitespace, skipped
			case '\r', '\n':
				goto endOfHdr
			default:
				if buf[i-1] != ' ' && buf[i-1] != '\t' {
					// CR/LF not followed by SP/HTAB: end of the header
					goto endOfHdr
				}
				sb.soffs = i
				sb.foldBefore = true
				sb.state = sjText
				continue
			}
		}
		i++
	}
	return i, ErrHdrMoreBytes
endOfHdr:
	switch sb.state {
	case sjLF:
		// do nothing, last fold part (if any) already closed
	default:
		return i, ErrHdrBug
	}
	sb.state = sjFIN
	return i, 0
}

func (sb *PSubjectBody) addPart(end int) {
	p := PField{}
	p.Set(sb.soffs, end)
	if sb.V.Len == 0 {
		sb.V = p
	} else {
		sb.V.Extend(end)
	}
	if sb.NParts < len(sb.Parts) {
		sb.Parts[sb.NParts] = p
	} else {
		sb.last = p
	}
	sb.NParts++
}

// Text reconstructs the logical (unfolded) Subject value, appending it
// to dst and returning the extended slice: fold parts are joined with
// a single SP, matching the SP the original folding LWS would collapse
// to. If no fold occurred it is just buf[V.Offs:V.End()].
func (sb *PSubjectBody) Text(buf []byte, dst []byte) []byte {
	n := sb.PartNo()
	if n == 0 {
		if sb.NParts == 0 {
			return dst
		}
		return append(dst, sb.last.Get(buf)...)
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = append(dst, sb.Parts[i].Get(buf)...)
	}
	if sb.NParts > n {
		dst = append(dst, ' ')
		dst = append(dst, sb.last.Get(buf)...)
	}
	return dst
}
