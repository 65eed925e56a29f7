// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

import (
	"github.com/intuitivelabs/bytescase"
)

// PFromBody holds a fully or partially parsed From, To, Contact,
// Record-Route or Route header value.
type PFromBody struct {
	Name       PField
	URI        PField
	Tag        PField
	Star       bool // contact: *
	LR         bool // route ;lr present
	HasExpires bool // expires present
	Type       HdrT
	Q          uint16 // contact q * 1000
	Expires    uint32 // contact expires
	Params     PField
	V          PField   // complete value, trimmed
	ParamErr   ErrorHdr // error parsing the params
	ErrOffs    OffsT    // param parsing error offset
	PFromIState
}

// Reset re-initializes the parsing state and the parsed values.
func (fv *PFromBody) Reset() {
	*fv = PFromBody{}
}

// Empty returns true if nothing has been parsed yet.
func (fv *PFromBody) Empty() bool {
	return fv.state == fbInit
}

// Parsed returns true if the values are fully parsed.
func (fv *PFromBody) Parsed() bool {
	return fv.state == fbFIN
}

// Pending returns true for partially parsed values (more input needed).
func (fv *PFromBody) Pending() bool {
	return fv.state != fbFIN && fv.state != fbInit
}

// PFromIState contains ParseNameAddrPVal internal state (private).
type PFromIState struct {
	state  uint8
	soffs  int
	pstart int
	pend   int
	vstart int
	vend   int
}

const (
	fbInit      uint8 = iota
	fbNameOrURI       // 1st token, possible uri if no other token and no <>
	fbNameOrURIEnd
	fbName
	fbQuoted
	fbURI
	fbURIFound
	fbNewPossibleParam
	fbPossibleParamName
	fbPossibleParamNameEnd
	fbNewParam
	fbParamName
	fbParamNameEnd
	fbNewParamVal
	fbParamVal
	fbParamValEnd
	fbNewPossibleVal
	fbPossibleVal
	fbPossibleValEnd
	fbQuotedVal
	fbQuotedPossibleVal
	fbTagT
	fbTagA
	fbTagG
	fbTagEq
	fbTagVal
	fbPTagT
	fbPTagA
	fbPTagG
	fbPTagEq
	fbPTagVal
	fbStar
	fbFIN
)

// ParseFromVal parses the value of a From header. See ParseNameAddrPVal.
func ParseFromVal(buf []byte, offs int, pfrom *PFromBody) (int, ErrorHdr) {
	return ParseNameAddrPVal(HdrFrom, buf, offs, pfrom)
}

// ParseToVal parses the value of a To header. See ParseNameAddrPVal.
func ParseToVal(buf []byte, offs int, pto *PFromBody) (int, ErrorHdr) {
	return ParseNameAddrPVal(HdrTo, buf, offs, pto)
}

func multipleValsOk(h HdrT) bool {
	switch h {
	case HdrContact, HdrRecordRoute, HdrRoute:
		return true
	}
	return false
}

// ParseNameAddrPVal parses the value of a From, To, Contact,
// Record-Route or Route header: [display-name] (name-addr | addr-spec)
// *(SEMI contact-params). buf[offs:] should point just after the ':'.
// It returns a new offset and an error. ErrHdrMoreBytes means more
// input is needed; call again with the same buffer, the returned
// offset and the same pfrom. ErrHdrMoreValues means this header
// contains multiple comma-separated values (Contact, Record-Route,
// Route): pfrom holds the current value and the caller should pass a
// fresh PFromBody for the next one.
func ParseNameAddrPVal(h HdrT, buf []byte, offs int, pfrom *PFromBody) (int, ErrorHdr) {
	if pfrom.state == fbFIN {
		return offs, 0
	}
	var s = pfrom.soffs
	i := offs
	var n, crl int
	var err, retOkErr ErrorHdr
	for i < len(buf) {
		c := buf[i]
		switch pfrom.state {
		case fbInit, fbName, fbNameOrURI, fbNameOrURIEnd:
			switch c {
			case ' ', '\t', '\n', '\r':
				if pfrom.state == fbNameOrURI {
					pfrom.URI.Set(s, i)
					pfrom.V.Extend(i)
					pfrom.state = fbNameOrURIEnd
				}
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
				if multipleValsOk(h) {
					goto moreValues
				}
			case '<':
				if pfrom.state != fbInit {
					pfrom.Name.Set(s, i)
					pfrom.URI.Reset()
					pfrom.Params.Reset()
					pfrom.Tag.Reset()
				} else {
					pfrom.V.Set(i, i)
				}
				s = i + 1
				pfrom.state = fbURI
			case '"':
				if pfrom.state == fbInit {
					s = i
					pfrom.V.Set(i, i)
				} else {
					pfrom.URI.Reset()
					pfrom.Params.Reset()
					pfrom.Tag.Reset()
				}
				pfrom.state = fbQuoted
			case ';':
				if pfrom.state == fbNameOrURI {
					pfrom.URI.Set(s, i)
					pfrom.V.Extend(i + 1)
					s = i + 1
					pfrom.state = fbNewPossibleParam
				} else if pfrom.state == fbNameOrURIEnd {
					pfrom.state = fbNewPossibleParam
				} else {
					return i, ErrHdrBadChar
				}
			case '>':
				return i, ErrHdrBadChar
			case '*':
				if pfrom.state == fbInit {
					pfrom.state = fbStar
					s = i
					pfrom.V.Set(i, i+1)
				}
			default:
				if pfrom.state == fbInit {
					s = i
					pfrom.V.Set(i, i)
					pfrom.state = fbNameOrURI
				} else if pfrom.state == fbNameOrURIEnd {
					pfrom.state = fbName
					pfrom.URI.Reset()
					pfrom.Params.Reset()
					pfrom.Tag.Reset()
				}
			}
		case fbQuoted, fbQuotedVal, fbQuotedPossibleVal:
			switch c {
			case '"':
				if pfrom.state == fbQuoted {
					pfrom.state = fbName
				} else if pfrom.state == fbQuotedVal {
					pfrom.state = fbParamVal
				} else {
					pfrom.state = fbPossibleVal
				}
			case '\\':
				if (i + 1) < len(buf) {
					if buf[i+1] == '\r' || buf[i+1] == '\n' {
						return i + 1, ErrHdrBadChar
					}
					i += 2
					continue
				}
				goto moreBytes
			case ' ', '\t', '\n', '\r':
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
		case fbURI:
			switch c {
			case '>':
				pfrom.URI.Set(s, i)
				pfrom.V.Extend(i + 1)
				pfrom.state = fbURIFound
			case '<', ' ', '\t', '\n', '\r':
				return i, ErrHdrBadChar
			}
		case fbURIFound:
			switch c {
			case ' ', '\t', '\n', '\r':
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
				if multipleValsOk(h) {
					goto moreValues
				}
			case ';':
				pfrom.state = fbNewParam
				s = 0
			}
		case fbNewParam, fbNewPossibleParam, fbParamName, fbPossibleParamName:
			switch c {
			case ' ', '\t', '\n', '\r':
				n, crl, err = skipLWS(buf, i)
				if err == ErrHdrMoreBytes {
					goto moreBytes
				}
				if pfrom.state == fbParamName {
					pfrom.state = fbParamNameEnd
					pfrom.pend = i
				} else if pfrom.state == fbPossibleParamName {
					pfrom.state = fbPossibleParamNameEnd
					pfrom.pend = i
				}
				if err == 0 {
					i = n
					continue
				}
				if err == ErrHdrEOH {
					goto endOfHdr
				}
				return n, err
			case ',':
				if multipleValsOk(h) {
					goto moreValues
				}
			case '=':
				if pfrom.state == fbParamName {
					pfrom.state = fbNewParamVal
					pfrom.pend = i
					pfrom.vstart = i + 1
				} else if pfrom.state == fbPossibleParamName {
					pfrom.state = fbNewPossibleVal
					pfrom.pend = i
					pfrom.vstart = i + 1
				} else {
					return i, ErrHdrBadChar
				}
			case '<':
				fallthrough
			case '>':
				return i, ErrHdrBadChar
			case ';':
				if pfrom.state == fbParamName {
					pfrom.state = fbNewParam
					pfrom.pend = i
				} else if pfrom.state == fbPossibleParamName {
					pfrom.state = fbNewPossibleParam
					pfrom.pend = i
				}
			default:
				if pfrom.state == fbNewParam {
					pfrom.state = fbParamName
					pfrom.pstart = i
				} else if pfrom.state == fbNewPossibleParam {
					pfrom.state = fbPossibleParamName
					pfrom.pstart = i
				}
				if pfrom.Params.Offs == 0 {
					pfrom.Params.Offs = OffsT(i)
				}
			}
		case fbParamNameEnd, fbPossibleParamNameEnd:
			switch c {
			case '=':
				if pfrom.state == fbParamNameEnd {
					pfrom.state = fbNewParamVal
					pfrom.vstart = i + 1
				} else {
					pfrom.state = fbNewPossibleVal
					pfrom.vstart = i + 1
				}
			case ';':
				if pfrom.state == fbParamNameEnd {
					pfrom.state = fbNewParam
				} else {
					pfrom.state = fbNewPossibleParam
				}
			default:
				return i, ErrHdrBadChar
			}
		case fbNewParamVal, fbNewPossibleVal, fbParamVal, fbPossibleVal:
			switch c {
			case ' ', '\t', '\n', '\r':
				n, crl, err = skipLWS(buf, i)
				if err == ErrHdrMoreBytes {
					goto moreBytes
				}
				switch pfrom.state {
				case fbNewParamVal, fbNewPossibleVal:
					if err == 0 {
						pfrom.vstart = n
					}
				case fbParamVal:
					pfrom.state = fbParamValEnd
					pfrom.vend = i
				case fbPossibleVal:
					pfrom.state = fbPossibleValEnd
					pfrom.vend = i
				}
				if err == 0 {
					i = n
					continue
				}
				if err == ErrHdrEOH {
					goto endOfHdr
				}
				return n, err
			case ',':
				if multipleValsOk(h) {
					goto moreValues
				}
			case ';':
				if pfrom.state == fbNewParamVal || pfrom.state == fbParamVal {
					pfrom.state = fbNewParam
					pfrom.vend = i
					setFromParamVal(buf, pfrom)
				} else {
					pfrom.state = fbNewPossibleParam
					pfrom.vend = i
					setFromParamVal(buf, pfrom)
				}
			case '=', '<', '>':
				return i, ErrHdrBadChar
			case '"':
				if pfrom.state == fbParamVal {
					pfrom.state = fbQuotedVal
				} else if pfrom.state == fbNewParamVal {
					pfrom.state = fbQuotedVal
					pfrom.vstart = i
				} else if pfrom.state == fbPossibleVal {
					pfrom.state = fbQuotedPossibleVal
				} else {
					pfrom.state = fbQuotedPossibleVal
					pfrom.vstart = i
				}
			default:
				if pfrom.state == fbNewParamVal {
					pfrom.state = fbParamVal
					pfrom.vstart = i
				} else if pfrom.state == fbNewPossibleVal {
					pfrom.state = fbPossibleVal
					pfrom.vstart = i
				}
			}
		case fbParamValEnd, fbPossibleValEnd:
			switch c {
			case ';':
				if pfrom.state == fbParamValEnd {
					pfrom.state = fbNewParam
					setFromParamVal(buf, pfrom)
				} else {
					pfrom.state = fbNewPossibleParam
					setFromParamVal(buf, pfrom)
				}
			default:
				return i, ErrHdrBadChar
			}
		case fbStar:
			switch c {
			case ' ', '\t', '\n', '\r':
				n, crl, err = skipLWS(buf, i)
				switch err {
				case ErrHdrMoreBytes:
					i = n
					goto moreBytes
				case 0:
					i = n
					continue
				case ErrHdrEOH:
					goto endOfHdr
				}
				return n, err
			default:
				return i, ErrHdrBadChar
			}
		}
		i++
	}
moreBytes:
	pfrom.soffs = s
	return i, ErrHdrMoreBytes
moreValues:
	retOkErr = ErrHdrMoreValues
	n = i
	crl = 1
endOfHdr:
	switch pfrom.state {
	case fbURIFound, fbNameOrURIEnd:
		// do nothing
	case fbNameOrURI:
		pfrom.URI.Set(s, i)
		pfrom.V.Extend(i)
	case fbNewParam, fbParamNameEnd, fbNewPossibleParam, fbPossibleParamNameEnd:
		pfrom.Params.Extend(i)
		pfrom.V.Extend(i)
	case fbParamValEnd, fbPossibleValEnd:
		setFromParamVal(buf, pfrom)
		pfrom.Params.Extend(i)
		pfrom.V.Extend(i)
	case fbNewParamVal, fbNewPossibleVal:
		pfrom.vstart = i
		fallthrough
	case fbParamVal, fbPossibleVal:
		pfrom.vend = i
		setFromParamVal(buf, pfrom)
		pfrom.Params.Extend(i)
		pfrom.V.Extend(i)
	case fbStar:
		pfrom.Star = true
		pfrom.URI = pfrom.V
	case fbInit, fbName, fbURI, fbQuoted, fbQuotedVal, fbQuotedPossibleVal:
		return n + crl, ErrHdrBad
	default:
		return n + crl, ErrHdrBug
	}
	pfrom.state = fbFIN
	pfrom.soffs = 0
	pfrom.Type = h
	return n + crl, retOkErr
}

// setFromParamVal recognizes the well known tag/expires/q/lr
// parameters and fills in their dedicated fields.
func setFromParamVal(buf []byte, pf *PFromBody) ErrorHdr {
	var err ErrorHdr
	tag := [...]byte{'t', 'a', 'g'}
	expires := [...]byte{'e', 'x', 'p', 'i', 'r', 'e', 's'}
	q := [...]byte{'q'}
	lr := [...]byte{'l', 'r'}

	if (pf.pstart < pf.pend) && (pf.vstart < pf.vend) {
		if ((pf.pend - pf.pstart) == len(tag)) &&
			bytescase.CmpEq(buf[pf.pstart:pf.pend], tag[:]) {
			pf.Tag.Set(pf.vstart, pf.vend)
		} else if ((pf.pend - pf.pstart) == len(expires)) &&
			bytescase.CmpEq(buf[pf.pstart:pf.pend], expires[:]) {
			pf.HasExpires = true
			exp, e := pUInt64Val(buf[pf.vstart:pf.vend])
			if exp < uint64(^uint32(0)) {
				pf.Expires = uint32(exp)
			} else {
				pf.Expires = ^uint32(0)
			}
			err = e
		} else if ((pf.pend - pf.pstart) == len(q)) &&
			bytescase.CmpEq(buf[pf.pstart:pf.pend], q[:]) {
			i := pf.vstart
			for ; i < pf.vend && buf[i] != '.'; i++ {
			}
			if pf.vend-i <= 4 {
				var u, d uint64
				u, err = pUInt64Val(buf[pf.vstart:i])
				if err == 0 && i < pf.vend {
					d, err = pUInt64Val(buf[i+1 : pf.vend])
				}
				if err == 0 {
					if u > 1 || d > 999 || (u == 1 && d > 0) {
						err = ErrHdrValBad
						pf.ParamErr = err
						pf.ErrOffs = OffsT(pf.vstart)
					} else {
						switch pf.vend - (i + 1) {
						case 1:
							d = d * 100
						case 2:
							d = d * 10
						}
						pf.Q = uint16(u*1000 + d)
					}
				}
			} else {
				err = ErrHdrValTooLong
				pf.ParamErr = err
				pf.ErrOffs = OffsT(pf.vend)
			}
		} else if ((pf.pend - pf.pstart) == len(lr)) &&
			bytescase.CmpEq(buf[pf.pstart:pf.pend], lr[:]) {
			pf.LR = true
		}
	} else if (pf.pstart < pf.pend) && (pf.vstart == pf.vend) {
		if ((pf.pend - pf.pstart) == len(lr)) &&
			bytescase.CmpEq(buf[pf.pstart:pf.pend], lr[:]) {
			pf.LR = true
		}
	} else {
		err = ErrHdrValBad
		pf.ParamErr = err
		pf.ErrOffs = OffsT(pf.vstart)
	}
	pf.pstart = 0
	pf.pend = 0
	pf.vstart = 0
	pf.vend = 0
	return err
}

func pUInt64Val(b []byte) (n uint64, err ErrorHdr) {
	if len(b) > 20 {
		err = ErrHdrValTooLong
		return
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			err = ErrHdrValNotNumber
			return
		}
		n = n*10 + uint64(c-'0')
	}
	return
}
