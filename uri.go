// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

import (
	"bytes"

	"github.com/intuitivelabs/bytescase"
)

// URIScheme is the type for possible uri schemes (sip, sips, tel).
type URIScheme int8

const (
	InvalidURI URIScheme = iota
	SIPuri
	SIPSuri
	TELuri
)

func (s URIScheme) String() string {
	uriSchemeStr := [...]string{
		"invalid",
		"sip",
		"sips",
		"tel",
	}
	if s < 0 || int(s) >= len(uriSchemeStr) {
		return "error"
	}
	return uriSchemeStr[s]
}

// PsipURI holds a fully parsed SIP/SIPS/tel URI.
type PsipURI struct {
	URIType URIScheme
	Scheme  PField
	User    PField
	Pass    PField
	Host    PField
	IPv6    bool // host was bracketed ([...])
	Port    PField
	Params  PField
	Headers PField
	PortNo  uint16
}

// Reset re-initializes u.
func (u *PsipURI) Reset() {
	*u = PsipURI{}
}

// Flat returns the uri in "string" form.
func (u *PsipURI) Flat(buf []byte) []byte {
	var r PField
	switch {
	case u.Headers.Len > 0:
		r.Set(int(u.Scheme.Offs), int(u.Headers.Offs+u.Headers.Len))
	case u.Params.Len > 0:
		r.Set(int(u.Scheme.Offs), int(u.Params.Offs+u.Params.Len))
	case u.Port.Len > 0:
		r.Set(int(u.Scheme.Offs), int(u.Port.Offs+u.Port.Len))
	case u.Host.Len > 0:
		r.Set(int(u.Scheme.Offs), int(u.Host.Offs+u.Host.Len))
	case u.User.Len > 0:
		r.Set(int(u.Scheme.Offs), int(u.User.Offs+u.User.Len))
	}
	return r.Get(buf)
}

// Short returns a "shortened" uri form (scheme up to host/port), good
// for comparisons: no parameters or headers included.
func (u *PsipURI) Short() PField {
	var r PField
	switch {
	case u.Port.Len > 0:
		r.Set(int(u.Scheme.Offs), int(u.Port.Offs+u.Port.Len))
	case u.Host.Len > 0:
		r.Set(int(u.Scheme.Offs), int(u.Host.Offs+u.Host.Len))
	case u.User.Len > 0:
		r.Set(int(u.Scheme.Offs), int(u.User.Offs+u.User.Len))
	}
	return r
}

// Truncate "shortens" a parsed uri by removing the parameters and headers.
func (u *PsipURI) Truncate() {
	u.Params.Reset()
	u.Headers.Reset()
}

// URICmpShort compares 2 "shortened" uris (up to port, not including
// parameters or headers). This is not a full rfc3261 19.1.4 URI
// comparison (it ignores the uri parameters and headers matching rules).
func URICmpShort(u1 *PsipURI, buf1 []byte, u2 *PsipURI, buf2 []byte) bool {
	return u1.URIType == u2.URIType && u1.PortNo == u2.PortNo &&
		bytes.Equal(u1.User.Get(buf1), u2.User.Get(buf2)) &&
		bytes.Equal(u1.Pass.Get(buf1), u2.Pass.Get(buf2)) &&
		bytescase.CmpEq(u1.Host.Get(buf1), u2.Host.Get(buf2))
}

// ParseURI parses a complete SIP/SIPS/tel URI held in a single
// contiguous byte slice (by the time a uri is handed to this function
// its extent has already been delimited by the caller, e.g. the
// name-addr/addr-spec parser or the request-line parser: unlike the
// header micro-parsers this one is not resumable across chunk
// boundaries). It returns the offset parsed up to and an error.
func ParseURI(uri []byte, puri *PsipURI) (int, ErrorHdr) {
	const (
		schSIP  uint32 = 0x3a706973 // "sip:"
		schSIPS        = 0x73706973 // "sips"
		schTEL         = 0x3a6c6574 // "tel:"
	)

	const (
		uInit uint8 = iota
		uInitSIP
		uInitSIPS
		uInitTEL
		uUser
		uPass0
		uPass1
		uHost0
		uHost1
		uHost61
		uHost6E
		uPort
		uParam0
		uParam1
		uHeaders
	)

	if len(uri) < 5 {
		return len(uri), ErrHdrBadURI
	}
	var offs int
	sch := ((uint32(uri[3]) << 24) | (uint32(uri[2]) << 16) |
		(uint32(uri[1]) << 8) | (uint32(uri[0]))) | 0x20202020
	var schLen int
	state := uInit

	switch sch {
	case schSIP:
		puri.URIType = SIPuri
		state = uInitSIP
		schLen = 3
	case schTEL:
		puri.URIType = TELuri
		state = uInitTEL
		schLen = 3
	case schSIPS:
		if uri[4] == ':' {
			puri.URIType = SIPSuri
			state = uInitSIPS
			schLen = 4
		} else {
			puri.URIType = InvalidURI
			return 4, ErrHdrBadURI
		}
	default:
		puri.URIType = InvalidURI
		return 4, ErrHdrBadURI
	}
	puri.Scheme.Set(offs, offs+schLen+1) // include ":"
	offs += schLen + 1
	var s int
	var foundUser bool
	var passOffs int
	var portNo int
	var errHeaders bool
	i := offs
	var c byte
	for ; i < len(uri); i++ {
		c = uri[i]
		switch state {
		case uInitSIP, uInitSIPS, uInitTEL:
			switch c {
			case '[':
				state = uHost61
				s = i + 1 // skip '[', not part of the host span
			case ':', ']':
				return i, ErrHdrBadChar
			default:
				state = uUser
				s = i
			}
		case uUser:
			switch c {
			case '@':
				puri.User.Set(s, i)
				state = uHost0
				foundUser = true
				s = i + 1
			case ':':
				puri.User.Set(s, i)
				state = uPass0
				s = i + 1
			case ';':
				puri.Host.Set(s, i)
				state = uParam0
				s = i + 1
			case '?':
				puri.Host.Set(s, i)
				state = uHeaders
				s = i + 1
			case '[', ']':
				return i, ErrHdrBadChar
			}
		case uPass0:
			switch c {
			case '@':
				puri.Pass.Set(s, i)
				portNo = 0
				state = uHost0
				foundUser = true
				s = i + 1
			case ';', '?':
				puri.Port.Set(s, i)
				if portNo > 65535 {
					return i, ErrHdrBadPort
				}
				puri.PortNo = uint16(portNo)
				puri.Host = puri.User
				puri.User.Reset()
				foundUser = true
				s = i + 1
				if c == ';' {
					state = uParam0
				} else {
					state = uHeaders
				}
			case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
				portNo = portNo*10 + int(c-'0')
			case '[', ']', ':':
				return i, ErrHdrBadChar
			default:
				portNo = 0
				state = uPass1
			}
		case uPass1:
			switch c {
			case '@':
				puri.Pass.Set(s, i)
				state = uHost0
				foundUser = true
				s = i + 1
			case ';', '?', '[', ']', ':':
				return i, ErrHdrBadChar
			}
		case uHost0:
			switch c {
			case '[':
				state = uHost61
				s = i + 1 // skip '[', not part of the host span
			case ':', ';', '?', '&', '@':
				return i, ErrHdrBadHost
			default:
				state = uHost1
			}
		case uHost1:
			switch c {
			case ':':
				puri.Host.Set(s, i)
				state = uPort
				s = i + 1
			case ';':
				puri.Host.Set(s, i)
				state = uParam0
				s = i + 1
			case '?':
				puri.Host.Set(s, i)
				state = uHeaders
				s = i + 1
			case '&', '@':
				return i, ErrHdrBadChar
			}
		case uHost61:
			switch c {
			case ']':
				state = uHost6E
			case '[', '@', ';', '?', '&':
				return i, ErrHdrBadHost
			}
		case uHost6E:
			switch c {
			case ':':
				puri.Host.Set(s, i-1) // i-1 excludes the ']'
				puri.IPv6 = true
				state = uPort
				s = i + 1
			case ';':
				puri.Host.Set(s, i-1)
				puri.IPv6 = true
				state = uParam0
				s = i + 1
			case '?':
				puri.Host.Set(s, i-1)
				puri.IPv6 = true
				state = uHeaders
				s = i + 1
			default:
				return i, ErrHdrBadHost
			}
		case uPort:
			switch c {
			case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
				portNo = portNo*10 + int(c-'0')
			case ';':
				puri.Port.Set(s, i)
				if portNo > 65535 {
					return i, ErrHdrBadPort
				}
				puri.PortNo = uint16(portNo)
				state = uParam0
				s = i + 1
			case '?':
				puri.Port.Set(s, i)
				if portNo > 65535 {
					return i, ErrHdrBadPort
				}
				puri.PortNo = uint16(portNo)
				state = uHeaders
				s = i + 1
			default:
				return i, ErrHdrBadPort
			}
		case uParam0, uParam1:
			switch c {
			case '@':
				if !foundUser {
					if passOffs != 0 {
						puri.User.Set(int(puri.Host.Offs), passOffs)
						puri.Pass.Set(passOffs+1, i)
					} else {
						puri.User.Set(int(puri.Host.Offs), i)
						puri.Pass.Reset()
					}
					foundUser = true
					errHeaders = false
					state = uHost0
					s = i + 1
					puri.Host.Reset()
					puri.Port.Reset()
					puri.PortNo = 0
					puri.Params.Reset()
					puri.Headers.Reset()
				} else {
					return i, ErrHdrBadChar
				}
			case ':':
				if !foundUser {
					if passOffs != 0 {
						foundUser = true
						passOffs = 0
					} else {
						passOffs = i
					}
				}
				state = uParam1
			case ';':
				if passOffs != 0 {
					passOffs = 0
					foundUser = true
				}
				state = uParam0
			case '?':
				puri.Params.Set(s, i)
				state = uHeaders
				s = i + 1
				if passOffs != 0 {
					passOffs = 0
					foundUser = true
				}
			default:
				state = uParam1
			}
		case uHeaders:
			switch c {
			case '@':
				if !foundUser {
					if passOffs != 0 {
						puri.User.Set(int(puri.Host.Offs), passOffs)
						puri.Pass.Set(passOffs+1, i)
					} else {
						puri.User.Set(int(puri.Host.Offs), i)
						puri.Pass.Reset()
					}
					foundUser = true
					errHeaders = false
					state = uHost0
					s = i + 1
					puri.Host.Reset()
					puri.Port.Reset()
					puri.PortNo = 0
					puri.Params.Reset()
					puri.Headers.Reset()
				} else {
					return i, ErrHdrBadChar
				}
			case ';':
				if foundUser || passOffs != 0 {
					return i, ErrHdrBadChar
				}
				errHeaders = true
			case ':':
				if !foundUser {
					if passOffs != 0 {
						foundUser = true
						passOffs = 0
					} else {
						passOffs = i
					}
				}
			case '?':
				if passOffs != 0 {
					foundUser = true
					passOffs = 0
				}
			}
		}
	}
	switch state {
	case uInit, uInitTEL, uInitSIP, uInitSIPS:
		return i, ErrHdrBadURI
	case uUser:
		if foundUser {
			return i, ErrHdrBadURI
		}
		puri.Host.Set(s, i)
	case uPass0, uPass1:
		if foundUser || state == uPass1 {
			return i, ErrHdrBadPort
		}
		puri.Port.Set(s, i)
		if portNo > 65535 {
			return i, ErrHdrBadPort
		}
		puri.PortNo = uint16(portNo)
		puri.Host = puri.User
		puri.User.Reset()
	case uHost1:
		puri.Host.Set(s, i)
	case uHost6E:
		puri.Host.Set(s, i-1) // i-1 excludes the ']'
		puri.IPv6 = true
	case uHost0, uHost61:
		return i, ErrHdrBadHost
	case uPort:
		puri.Port.Set(s, i)
		if portNo > 65535 {
			return i, ErrHdrBadPort
		}
		puri.PortNo = uint16(portNo)
	case uParam0, uParam1:
		puri.Params.Set(s, i)
	case uHeaders:
		puri.Headers.Set(s, i)
		if errHeaders {
			return i, ErrHdrBadURI
		}
	default:
		return i, ErrHdrBug
	}

	if puri.URIType == TELuri {
		// for tel: uris the number is kept in the user part
		puri.User = puri.Host
		puri.Host.Reset()
	}

	return i, ErrHdrOk
}

// ValidPctEncoding scans buf for '%' escapes and checks each one is
// followed by 2 valid hex digits (rfc3261 25.1 escaped = "%" HEXDIG
// HEXDIG). Used to validate the user/password/param parts of a parsed
// URI, which tokAllowedChar lets through verbatim since '%' is itself
// a legal uri-unreserved-adjacent char.
func ValidPctEncoding(buf []byte) bool {
	for i := 0; i < len(buf); i++ {
		if buf[i] == '%' {
			if _, _, err := unhexEscape(buf, i); err != ErrHdrOk {
				return false
			}
			i += 2
		}
	}
	return true
}

// URIParamF is the type used for the well known uri parameters,
// converted to a "flags" numeric value (values are 2^k).
type URIParamF uint

const URIParamNone URIParamF = 0
const (
	URIParamTransportF URIParamF = 1 << iota
	URIParamUserF
	URIParamMethodF
	URIParamTTLF
	URIParamMaddrF
	URIParamLRF
	URIParamOtherF
)

// URIParamResolve resolves a uri parameter name to its URIParamF flag.
func URIParamResolve(n []byte) URIParamF {
	switch len(n) {
	case 9:
		if bytescase.CmpEq(n, []byte("transport")) {
			return URIParamTransportF
		}
	case 2:
		if bytescase.CmpEq(n, []byte("lr")) {
			return URIParamLRF
		}
	case 5:
		if bytescase.CmpEq(n, []byte("maddr")) {
			return URIParamMaddrF
		}
	case 4:
		if bytescase.CmpEq(n, []byte("user")) {
			return URIParamUserF
		}
	case 6:
		if bytescase.CmpEq(n, []byte("method")) {
			return URIParamMethodF
		}
	case 3:
		if bytescase.CmpEq(n, []byte("ttl")) {
			return URIParamTTLF
		}
	}
	return URIParamOtherF
}

// URIParam holds one parsed uri-parameter and its resolved type.
type URIParam struct {
	Param PTokParam
	T     URIParamF
}

// Reset re-initializes p.
func (p *URIParam) Reset() {
	p.Param.Reset()
	p.T = URIParamNone
}

// URIParamsLst holds the parsed uri-parameters (;p1=v1;p2=v2...).
type URIParamsLst struct {
	Params []URIParam
	N      int
	Types  URIParamF

	tmp URIParam
}

// Reset re-initializes the parsed parameter list.
func (l *URIParamsLst) Reset() {
	for i := 0; i < l.PNo(); i++ {
		l.Params[i].Reset()
	}
	t := l.Params
	*l = URIParamsLst{}
	l.Params = t
}

// PNo returns the number of parsed parameters that fit in Params.
func (l *URIParamsLst) PNo() int {
	if l.N > len(l.Params) {
		return len(l.Params)
	}
	return l.N
}

// More returns true if there are more values that did not fit in Params.
func (l *URIParamsLst) More() bool {
	return l.N > len(l.Params)
}

// Init initializes the parsed parameters list with a place-holder array.
func (l *URIParamsLst) Init(pbuf []URIParam) {
	l.Params = pbuf
}

// Empty returns true if no parameters have been parsed.
func (l *URIParamsLst) Empty() bool {
	return l.N == 0
}

// ParseAllURIParams parses buf[offs:] as a ';'-separated list of
// uri-parameters, terminated according to flags (POptTokQmTermF for the
// "?headers" boundary, POptInputEndF if buf holds the whole uri).
func ParseAllURIParams(buf []byte, offs int, l *URIParamsLst,
	flags POptFlags) (int, int, ErrorHdr) {
	var next int
	var err ErrorHdr
	var p *URIParam

	vNo := 0
	for {
		if l.N < len(l.Params) {
			p = &l.Params[l.N]
		} else {
			p = &l.tmp
		}
		next, err = ParseTokenParam(buf, offs, &p.Param, ';', flags)
		switch err {
		case ErrHdrOk, ErrHdrMoreValues, ErrHdrEOH:
			p.T = URIParamResolve(p.Param.Name.Get(buf))
			l.Types |= p.T
			vNo++
			l.N++
			if p == &l.tmp {
				l.tmp.Reset()
			}
			if err == ErrHdrMoreValues {
				offs = next
				continue
			}
		case ErrHdrMoreBytes:
			// do nothing -> exit
		default:
			p.Reset()
		}
		break
	}
	return next, vNo, err
}

// URIHdr holds one parsed uri-header (?h1&h2...).
type URIHdr PTokParam

// Reset re-initializes h.
func (h *URIHdr) Reset() {
	(*PTokParam)(h).Reset()
}

// URIHdrsLst holds the parsed uri-headers (?h1&h2&h3...).
type URIHdrsLst struct {
	Hdrs []URIHdr
	N    int

	tmp URIHdr
}

// Reset re-initializes the parsed headers list.
func (l *URIHdrsLst) Reset() {
	for i := 0; i < l.HNo(); i++ {
		l.Hdrs[i].Reset()
	}
	t := l.Hdrs
	*l = URIHdrsLst{}
	l.Hdrs = t
}

// HNo returns the number of parsed headers that fit in Hdrs.
func (l *URIHdrsLst) HNo() int {
	if l.N > len(l.Hdrs) {
		return len(l.Hdrs)
	}
	return l.N
}

// More returns true if there are more values that did not fit in Hdrs.
func (l *URIHdrsLst) More() bool {
	return l.N > len(l.Hdrs)
}

// Init initializes the parsed headers list with a place-holder array.
func (l *URIHdrsLst) Init(hbuf []URIHdr) {
	l.Hdrs = hbuf
}

// Empty returns true if no uri headers have been parsed.
func (l *URIHdrsLst) Empty() bool {
	return l.N == 0
}

// ParseAllURIHdrs parses buf[offs:] as a '&'-separated list of
// uri-headers and adds them to l.
func ParseAllURIHdrs(buf []byte, offs int, l *URIHdrsLst,
	flags POptFlags) (int, int, ErrorHdr) {
	var next int
	var err ErrorHdr
	var h *URIHdr

	vNo := 0
	for {
		if l.N < len(l.Hdrs) {
			h = &l.Hdrs[l.N]
		} else {
			h = &l.tmp
		}
		next, err = ParseTokenParam(buf, offs, (*PTokParam)(h), '&', flags)
		switch err {
		case ErrHdrOk, ErrHdrMoreValues, ErrHdrEOH:
			vNo++
			l.N++
			if h == &l.tmp {
				l.tmp.Reset()
			}
			if err == ErrHdrMoreValues {
				offs = next
				continue
			}
		case ErrHdrMoreBytes:
			// do nothing -> exit
		default:
			h.Reset()
		}
		break
	}
	return next, vNo, err
}

// URIHdrsLstEq returns true if 2 parsed uri-headers lists are equal
// according to rfc3261 19.1.4: each present uri header must be present
// in both URIs and match (case insensitive).
func URIHdrsLstEq(l1 *URIHdrsLst, buf1 []byte, l2 *URIHdrsLst, buf2 []byte) bool {
	if l1.HNo() != l2.HNo() {
		return false
	}
	for i := 0; i < l1.HNo(); i++ {
		found := false
		for j := 0; j < l2.HNo(); j++ {
			if bytescase.CmpEq(l1.Hdrs[i].Name.Get(buf1), l2.Hdrs[j].Name.Get(buf2)) {
				if !bytescase.CmpEq(l1.Hdrs[i].Val.Get(buf1), l2.Hdrs[j].Val.Get(buf2)) {
					break
				}
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
