// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

// MaxCSeqNValueSize is the maximum allowed number of digits for the
// CSeq numeric part.
const MaxCSeqNValueSize = 10

// MaxCSeqNValue is the maximum allowed numeric value for CSeq.
const MaxCSeqNValue = 1<<31 - 1

// PCSeqBody holds a parsed CSeq header value: "1 INVITE".
type PCSeqBody struct {
	CSeqNo   uint32
	MethodNo SIPMethod
	CSeq     PField // digits
	Method   PField // method token
	V        PField // whole value, trimmed
	PCSeqIState
}

// Reset re-initializes cs.
func (cs *PCSeqBody) Reset() {
	*cs = PCSeqBody{}
}

// Empty returns true if nothing has been parsed yet.
func (cs PCSeqBody) Empty() bool {
	return cs.state == csInit
}

// Parsed returns true if parsing completed successfully.
func (cs PCSeqBody) Parsed() bool {
	return cs.state == csFIN
}

// Pending returns true if parsing is in progress (partial value).
func (cs PCSeqBody) Pending() bool {
	return cs.state != csFIN && cs.state != csInit
}

// PCSeqIState contains ParseCSeqVal internal state (private).
type PCSeqIState struct {
	state uint8
	soffs int
}

const (
	csInit uint8 = iota
	csFoundDigit
	csEndDigit
	csFoundMethod
	csEnd
	csFIN
)

// ParseCSeqVal parses the value of a CSeq header (buf[offs:], pointing
// just after the ':'). It returns the offset immediately after the
// parsed value and an error; ErrHdrMoreBytes means more input is
// needed and the function should be re-invoked with the returned
// offset and the same pcs.
func ParseCSeqVal(buf []byte, offs int, pcs *PCSeqBody) (int, ErrorHdr) {
	if pcs.state == csFIN {
		return offs, 0
	}
	i := offs
	var n, crl int
	var err ErrorHdr
	for i < len(buf) {
		c := buf[i]
		switch c {
		case ' ', '\t', '\n', '\r':
			switch pcs.state {
			case csFoundDigit, csFoundMethod:
				if pcs.state == csFoundDigit {
					pcs.CSeq.Set(pcs.soffs, i)
					pcs.V.Set(pcs.soffs, i)
					pcs.state = csEndDigit
				} else {
					pcs.Method.Set(pcs.soffs, i)
					pcs.V.Extend(i)
					pcs.state = csEnd
				}
				fallthrough
			case csInit, csEndDigit, csEnd:
				n, crl, err = skipLWS(buf, i)
				if err == 0 {
					i = n
					continue
				}
				if err == ErrHdrEOH {
					goto endOfHdr
				}
				if err == ErrHdrMoreBytes {
					i = n
					goto moreBytes
				}
				return n, err
			}
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			switch pcs.state {
			case csInit:
				pcs.state = csFoundDigit
				pcs.soffs = i
				pcs.CSeqNo = uint32(c - '0')
			case csFoundDigit:
				v := pcs.CSeqNo*10 + uint32(c-'0')
				if pcs.CSeqNo > v {
					return i, ErrHdrNumTooBig
				}
				pcs.CSeqNo = v
			case csEndDigit:
				pcs.state = csFoundMethod
				pcs.soffs = i
			case csFoundMethod:
				// do nothing, digits allowed inside extension methods
			case csEnd:
				return i, ErrHdrBadChar
			}
		default:
			switch pcs.state {
			case csInit, csFoundDigit:
				return i, ErrHdrBadChar
			case csEndDigit:
				pcs.state = csFoundMethod
				pcs.soffs = i
			case csFoundMethod:
				// do nothing
			case csEnd:
				return i, ErrHdrBadChar
			}
		}
		i++
	}
moreBytes:
	return i, ErrHdrMoreBytes
endOfHdr:
	switch pcs.state {
	case csEnd:
		// do nothing
	case csFoundMethod:
		pcs.Method.Set(pcs.soffs, i)
		pcs.V.Extend(i)
	case csInit, csFoundDigit, csEndDigit:
		return n + crl, ErrHdrBad
	default:
		return n + crl, ErrHdrBug
	}
	pcs.state = csFIN
	if pcs.CSeq.Len > MaxCSeqNValueSize || pcs.CSeqNo > MaxCSeqNValue {
		return int(pcs.CSeq.Offs), ErrHdrNumTooBig
	}
	pcs.soffs = 0
	pcs.MethodNo = GetMethodNo(pcs.Method.Get(buf))
	return n + crl, 0
}
