// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

import (
	"github.com/intuitivelabs/bytescase"
)

// PAcceptBody holds one fully or partially parsed value of an Accept,
// Accept-Encoding or Accept-Language header. Accept values carry a
// media-range (type "/" subtype); Accept-Encoding and Accept-Language
// values carry a single token in Type and leave Subtype empty.
type PAcceptBody struct {
	Type    PField
	Subtype PField // empty for Accept-Encoding/Accept-Language
	Q       uint16 // q * 1000, 0 if there is no valid q parameter (see HasQ)
	HasQ    bool
	Params  PField
	V       PField // whole value, trimmed
	PAcceptIState
}

// Reset re-initializes ab.
func (ab *PAcceptBody) Reset() {
	*ab = PAcceptBody{}
}

// Empty returns true if nothing has been parsed yet.
func (ab *PAcceptBody) Empty() bool {
	return ab.state == acInit
}

// Parsed returns true if the value is fully parsed.
func (ab *PAcceptBody) Parsed() bool {
	return ab.state == acFIN
}

// PAcceptIState contains ParseAcceptVal internal state (private).
type PAcceptIState struct {
	state uint8
	soffs int
}

const (
	acInit uint8 = iota
	acType
	acTypeLWS
	acSubtypeStart
	acSubtype
	acSubtypeLWS
	acParamStart
	acParam
	acFIN
)

// ParseAcceptVal parses one value of an Accept header (media-range):
// ( "*/*" | (type "/" "*") | (type "/" subtype) ) *( ";" accept-param ).
// buf[offs:] should point just after the ':' (for the first value) or
// just after the separating ',' (for subsequent values).
func ParseAcceptVal(buf []byte, offs int, ab *PAcceptBody) (int, ErrorHdr) {
	return parseAcceptLikeVal(buf, offs, ab, true)
}

// ParseAcceptEncodingVal parses one value of an Accept-Encoding header:
// codings *( ";" "q" "=" qvalue ). Same multi-value/params conventions
// as ParseAcceptVal, without the type "/" subtype split.
func ParseAcceptEncodingVal(buf []byte, offs int, ab *PAcceptBody) (int, ErrorHdr) {
	return parseAcceptLikeVal(buf, offs, ab, false)
}

// ParseAcceptLanguageVal parses one value of an Accept-Language header:
// language-range *( ";" "q" "=" qvalue ). Same shape as
// ParseAcceptEncodingVal; language-range subtags (e.g. "en-US") are
// plain tokens and fit the same grammar.
func ParseAcceptLanguageVal(buf []byte, offs int, ab *PAcceptBody) (int, ErrorHdr) {
	return parseAcceptLikeVal(buf, offs, ab, false)
}

func parseAcceptLikeVal(buf []byte, offs int, ab *PAcceptBody, hasSubtype bool) (int, ErrorHdr) {
	if ab.state == acFIN {
		return offs, 0
	}
	i := offs
	var n, crl int
	var err ErrorHdr
	for i < len(buf) {
		c := buf[i]
		switch ab.state {
		case acInit:
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
			case c == ',':
				goto moreValues
			case tokAllowedChar(c):
				ab.soffs = i
				ab.V.Set(i, i)
				ab.state = acType
			default:
				return i, ErrHdrBadChar
			}
		case acType:
			switch {
			case hasSubtype && c == '/':
				ab.Type.Set(ab.soffs, i)
				ab.state = acSubtypeStart
			case !hasSubtype && (c == ';' || c == ',' || c == ' ' || c == '\t' || c == '\r' || c == '\n'):
				ab.Type.Set(ab.soffs, i)
				ab.V.Extend(i)
				ab.state = acParamStart
				continue
			case tokAllowedChar(c):
				// stay
			case c == ' ' || c == '\t':
				ab.Type.Set(ab.soffs, i)
				ab.state = acTypeLWS
			default:
				return i, ErrHdrBadChar
			}
		case acTypeLWS:
			switch {
			case c == ' ' || c == '\t':
			case hasSubtype && c == '/':
				ab.state = acSubtypeStart
			default:
				return i, ErrHdrBadChar
			}
		case acSubtypeStart:
			switch {
			case c == ' ' || c == '\t':
			case tokAllowedChar(c):
				ab.soffs = i
				ab.state = acSubtype
			default:
				return i, ErrHdrBadChar
			}
		case acSubtype:
			switch {
			case c == ';' || c == ',' || c == ' ' || c == '\t' || c == '\r' || c == '\n':
				ab.Subtype.Set(ab.soffs, i)
				ab.V.Extend(i)
				ab.state = acParamStart
				continue
			case tokAllowedChar(c):
				// stay
			default:
				return i, ErrHdrBadChar
			}
		case acParamStart:
			switch c {
			case ' ', '\t', '\r', '\n':
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
			case ',':
				goto moreValues
			case ';':
				if ab.Params.Offs == 0 {
					ab.Params.Set(i+1, i+1)
				}
				ab.soffs = i + 1
				ab.state = acParam
			default:
				return i, ErrHdrBadChar
			}
		case acParam:
			var p PTokParam
			n, err = ParseTokenParam(buf, ab.soffs, &p,
				';', POptTokCommaTermF)
			switch err {
			case ErrHdrMoreBytes:
				i = n
				goto moreBytes
			case ErrHdrOk:
				setAcceptParamVal(buf, ab, &p)
				ab.Params.Extend(n)
				ab.V.Extend(n)
				if n < len(buf) && buf[n] == ',' {
					ab.state = acFIN
					ab.soffs = 0
					return n + 1, ErrHdrMoreValues
				}
				ab.state = acFIN
				ab.soffs = 0
				return n, ErrHdrOk
			case ErrHdrEOH:
				setAcceptParamVal(buf, ab, &p)
				if !p.All.Empty() {
					ab.Params.Extend(int(p.All.End()))
					ab.V.Extend(int(p.All.End()))
				}
				i = n
				goto endOfHdr
			case ErrHdrMoreValues:
				setAcceptParamVal(buf, ab, &p)
				ab.Params.Extend(n)
				ab.V.Extend(n)
				ab.soffs = n
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
moreValues:
	ab.state = acFIN
	ab.soffs = 0
	return i + 1, ErrHdrMoreValues
endOfHdr:
	switch ab.state {
	case acType:
		ab.Type.Set(ab.soffs, i)
		ab.V.Extend(i)
	case acSubtype:
		ab.Subtype.Set(ab.soffs, i)
		ab.V.Extend(i)
	case acInit, acTypeLWS, acSubtypeStart:
		return n + crl, ErrHdrBad
	}
	ab.state = acFIN
	ab.soffs = 0
	return n + crl, 0
}

func setAcceptParamVal(buf []byte, ab *PAcceptBody, p *PTokParam) {
	name := p.Name.Get(buf)
	q := [...]byte{'q'}
	if bytescase.CmpEq(name, q[:]) {
		val := p.Val.Get(buf)
		u, d, ok := parseQVal(val)
		if ok {
			ab.HasQ = true
			ab.Q = u*1000 + d
		}
	}
}

// parseQVal decodes a qvalue ("0" ["." 0*3DIGIT] | "1" ["." 0*3("0")])
// into fixed-point thousandths, split into the integer and fractional
// (already scaled to thousandths) parts. ok is false on malformed input.
func parseQVal(b []byte) (u, d uint16, ok bool) {
	if len(b) == 0 {
		return 0, 0, false
	}
	i := 0
	for ; i < len(b) && b[i] != '.'; i++ {
	}
	iv, err := pUInt64Val(b[:i])
	if err != 0 || iv > 1 {
		return 0, 0, false
	}
	u = uint16(iv)
	if i < len(b) {
		frac := b[i+1:]
		if len(frac) > 3 {
			return 0, 0, false
		}
		fv, err := pUInt64Val(frac)
		if err != 0 {
			return 0, 0, false
		}
		switch len(frac) {
		case 1:
			fv *= 100
		case 2:
			fv *= 10
		}
		d = uint16(fv)
	}
	if u == 1 && d > 0 {
		return 0, 0, false
	}
	return u, d, true
}

// PAccepts holds the parsed values of one or more Accept,
// Accept-Encoding or Accept-Language headers.
type PAccepts struct {
	Vals []PAcceptBody
	N    int
	HNo  int
	last PAcceptBody
}

// VNo returns the number of parsed values that fit in Vals.
func (a *PAccepts) VNo() int {
	if a.N > len(a.Vals) {
		return len(a.Vals)
	}
	return a.N
}

// GetAccept returns the requested parsed value, or nil.
func (a *PAccepts) GetAccept(n int) *PAcceptBody {
	if a.VNo() > n {
		return &a.Vals[n]
	}
	return nil
}

// Empty returns true if no values have been parsed.
func (a *PAccepts) Empty() bool {
	return a.N == 0
}

// Parsed returns true if at least one value was parsed.
func (a *PAccepts) Parsed() bool {
	return a.N > 0
}

// Reset re-initializes the parsed values.
func (a *PAccepts) Reset() {
	for i := 0; i < a.VNo(); i++ {
		a.Vals[i].Reset()
	}
	v := a.Vals
	*a = PAccepts{}
	a.Vals = v
}

// Init initializes the values from a caller-supplied array.
func (a *PAccepts) Init(valbuf []PAcceptBody) {
	a.Vals = valbuf
}

// parseAllFunc is the shape shared by ParseAcceptVal,
// ParseAcceptEncodingVal and ParseAcceptLanguageVal.
type parseAllFunc func([]byte, int, *PAcceptBody) (int, ErrorHdr)

// ParseAllAcceptValues parses all the comma-separated values of an
// Accept header found at offs in buf, appending them to a.
func ParseAllAcceptValues(buf []byte, offs int, a *PAccepts) (int, ErrorHdr) {
	return parseAllAcceptLikeValues(buf, offs, a, ParseAcceptVal)
}

// ParseAllAcceptEncodingValues parses all the comma-separated values
// of an Accept-Encoding header found at offs in buf, appending them to a.
func ParseAllAcceptEncodingValues(buf []byte, offs int, a *PAccepts) (int, ErrorHdr) {
	return parseAllAcceptLikeValues(buf, offs, a, ParseAcceptEncodingVal)
}

// ParseAllAcceptLanguageValues parses all the comma-separated values
// of an Accept-Language header found at offs in buf, appending them to a.
func ParseAllAcceptLanguageValues(buf []byte, offs int, a *PAccepts) (int, ErrorHdr) {
	return parseAllAcceptLikeValues(buf, offs, a, ParseAcceptLanguageVal)
}

func parseAllAcceptLikeValues(buf []byte, offs int, a *PAccepts, f parseAllFunc) (int, ErrorHdr) {
	var next int
	var err ErrorHdr
	var pa *PAcceptBody

	if a.N >= len(a.Vals) && a.last.Parsed() {
		a.last.Reset()
	}
	for {
		if a.N < len(a.Vals) {
			pa = &a.Vals[a.N]
		} else {
			pa = &a.last
		}
		next, err = f(buf, offs, pa)
		switch err {
		case 0, ErrHdrMoreValues:
			a.N++
			if err == ErrHdrMoreValues {
				offs = next
				if pa == &a.last {
					a.last.Reset()
				}
				continue
			}
		case ErrHdrMoreBytes:
			// do nothing
		default:
			if pa == &a.last {
				a.last.Reset()
			}
		}
		break
	}
	return next, err
}
