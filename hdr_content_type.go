// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

// PCTypeBody holds a parsed Content-Type header value:
// m-type "/" m-subtype *( ";" m-parameter ).
type PCTypeBody struct {
	Type    PField // m-type, e.g. "application"
	Subtype PField // m-subtype, e.g. "sdp"
	Params  PField // raw params part, trimmed
	V       PField // whole value, trimmed
	PCTypeIState
}

// Reset re-initializes cb.
func (cb *PCTypeBody) Reset() {
	*cb = PCTypeBody{}
}

// Empty returns true if nothing has been parsed yet.
func (cb *PCTypeBody) Empty() bool {
	return cb.state == ctInit
}

// Parsed returns true if the value is fully parsed.
func (cb *PCTypeBody) Parsed() bool {
	return cb.state == ctFIN
}

// PCTypeIState contains ParseContentTypeVal internal state (private).
type PCTypeIState struct {
	state uint8
	soffs int
}

const (
	ctInit uint8 = iota
	ctType
	ctTypeLWS
	ctSubtypeStart
	ctSubtype
	ctSubtypeLWS
	ctParamStart
	ctParam
	ctFIN
)

// ParseContentTypeVal parses the value of a Content-Type header.
// buf[offs:] should point just after the ':'. Folded lines (CRLF
// followed by SP/HTAB) are accepted as LWS before the type, after the
// subtype and around the parameters; between the type, the '/' and the
// subtype only SP and HTAB are accepted.
func ParseContentTypeVal(buf []byte, offs int, cb *PCTypeBody) (int, ErrorHdr) {
	if cb.state == ctFIN {
		return offs, 0
	}
	i := offs
	var n, crl int
	var err ErrorHdr
	for i < len(buf) {
		c := buf[i]
		switch cb.state {
		case ctInit:
			switch {
			case c == ' ' || c == '\t' || c == '\r' || c == '\n':
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
			case tokAllowedChar(c):
				cb.soffs = i
				cb.V.Set(i, i)
				cb.state = ctType
			default:
				return i, ErrHdrBadChar
			}
		case ctType:
			switch {
			case tokAllowedChar(c) && c != '/':
				// stay
			case c == '/':
				cb.Type.Set(cb.soffs, i)
				cb.state = ctSubtypeStart
			case c == ' ' || c == '\t':
				cb.Type.Set(cb.soffs, i)
				cb.state = ctTypeLWS
			default:
				return i, ErrHdrBadChar
			}
		case ctTypeLWS:
			switch {
			case c == ' ' || c == '\t':
			case c == '/':
				cb.state = ctSubtypeStart
			default:
				return i, ErrHdrBadChar
			}
		case ctSubtypeStart:
			switch {
			case c == ' ' || c == '\t':
			case tokAllowedChar(c):
				cb.soffs = i
				cb.state = ctSubtype
			default:
				return i, ErrHdrBadChar
			}
		case ctSubtype:
			switch {
			case tokAllowedChar(c) && c != ';':
				// stay
			case c == ' ' || c == '\t':
				cb.Subtype.Set(cb.soffs, i)
				cb.state = ctSubtypeLWS
			case c == ';':
				cb.Subtype.Set(cb.soffs, i)
				cb.V.Extend(i)
				cb.Params.Set(i+1, i+1)
				cb.soffs = i + 1
				cb.state = ctParamStart
			case c == '\r' || c == '\n':
				n, crl, err = skipLWS(buf, i)
				if err == ErrHdrEOH {
					cb.Subtype.Set(cb.soffs, i)
					cb.V.Extend(i)
					goto endOfHdr
				}
				if err == ErrHdrMoreBytes {
					i = n
					goto moreBytes
				}
				if err == 0 {
					cb.Subtype.Set(cb.soffs, i)
					cb.V.Extend(i)
					cb.state = ctSubtypeLWS
					i = n
					continue
				}
				return n, err
			default:
				return i, ErrHdrBadChar
			}
		case ctSubtypeLWS:
			switch {
			case c == ' ' || c == '\t' || c == '\r' || c == '\n':
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
			case c == ';':
				cb.V.Extend(i)
				cb.Params.Set(i+1, i+1)
				cb.soffs = i + 1
				cb.state = ctParamStart
			default:
				return i, ErrHdrBadChar
			}
		case ctParamStart:
			var p PTokParam
			n, err = ParseTokenParam(buf, cb.soffs, &p, ';', 0)
			switch err {
			case ErrHdrMoreBytes:
				i = n
				goto moreBytes
			case ErrHdrOk:
				cb.Params.Extend(n)
				cb.V.Extend(n)
				cb.state = ctFIN
				return n, 0
			case ErrHdrEOH:
				if !p.All.Empty() {
					cb.Params.Extend(int(p.All.End()))
					cb.V.Extend(int(p.All.End()))
				}
				i = n
				goto endOfHdr
			case ErrHdrMoreValues:
				cb.Params.Extend(n)
				cb.V.Extend(n)
				cb.soffs = n
				i = n
				continue
			default:
				return n, err
			}
		}
		i++
	}
moreBytes:
	return i, ErrHdrMoreBytes
endOfHdr:
	switch cb.state {
	case ctSubtype, ctSubtypeLWS, ctParamStart:
		// do nothing, already extended above
	case ctInit, ctType, ctTypeLWS, ctSubtypeStart:
		return n + crl, ErrHdrBad
	}
	cb.state = ctFIN
	return n + crl, 0
}
