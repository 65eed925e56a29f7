// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Code originally from intuitivelabs/https/parse_tok.go, generalized
// into a single ';' or '&' separated name[=value] parameter-list
// parser shared by the Via, Content-Type and Accept* micro-parsers and
// by the SIP-URI parameters and headers parts (From/To/Contact parse
// their parameters in hdr_addr.go).

package sipparser

// POptFlags controls the optional behaviour of ParseTokenParam.
type POptFlags uint16

const (
	// POptInputEndF tells ParseTokenParam that buf holds all the
	// remaining input: an unterminated trailing token/value is
	// accepted as final instead of being reported as ErrHdrMoreBytes.
	POptInputEndF POptFlags = 1 << iota
	// POptTokCommaTermF makes ',' end the current parameter (and the
	// whole list), returning the ',' offset, instead of being an
	// error. Used for comma-separated header value lists (Via,
	// Contact, Accept) where each value has its own ';' separated
	// parameters.
	POptTokCommaTermF
	// POptTokSpTermF makes an unexpected token character after a
	// value end the parameter at the preceding separator instead of
	// being an error.
	POptTokSpTermF
	// POptTokQmTermF makes '?' end the current parameter instead of
	// being an error (used while parsing the last URI parameter
	// before the '?headers' part).
	POptTokQmTermF
)

// PTokParam contains one parameter from a separator separated
// name[=val] list, e.g. "p1=v1;p2=v2" yields a PTokParam for "p1=v1"
// on the first call to ParseTokenParam and another for "p2=v2" on the
// next.
type PTokParam struct {
	All   PField // complete parameter field (name = value), e.g. "p1=v1"
	Name  PField // param name with stripped whitespace (e.g. "p1")
	Val   PField // param value with stripped whitespace (e.g. "v1"), quotes stripped
	Quoted bool  // true if Val was a quoted-string
	state uint8
}

// Reset re-initializes pt.
func (pt *PTokParam) Reset() {
	*pt = PTokParam{}
}

// Empty returns true if no parameter was parsed.
func (pt *PTokParam) Empty() bool {
	return pt.All.Empty()
}

// SkipQuoted skips a quoted string, looking for the closing quote. It
// handles backslash escapes and expects to be called with offs
// pointing just inside the opening '"'. On success it returns an
// offset after the closing quote. CR and LF are never allowed inside
// the quoted string (rfc3261 25.1, rfc7230 3.2.6).
func SkipQuoted(buf []byte, offs int) (int, ErrorHdr) {
	i := offs
	for i < len(buf) {
		c := buf[i]
		switch c {
		case '"':
			return i + 1, ErrHdrOk
		case '\\':
			if (i + 1) < len(buf) {
				if buf[i+1] == '\r' || buf[i+1] == '\n' {
					return i + 1, ErrHdrBadChar
				}
				i += 2
				continue
			}
			goto moreBytes
		case '\n', '\r', 0x7f:
			return i, ErrHdrBadChar
		default:
			if c < 0x21 && c != ' ' && c != '\t' {
				return i, ErrHdrBadChar
			}
		}
		i++
	}
moreBytes:
	return i, ErrHdrMoreBytes
}

// tokAllowedChar returns true if c is an allowed ascii char inside a
// token param name or value (rfc3261 25.1 token, generalized with the
// extra chars allowed in uri-parameter/uri-headers productions).
func tokAllowedChar(c byte) bool {
	if c <= 32 || c >= 127 {
		return false
	}
	if (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z') {
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	case '[', ']', '/', ':', '+', '$', '&', '%':
		return true
	}
	return false
}

// ParseTokenParam parses a string of the form: name [ = value ] [sep].
// name has to be a valid token, value can be a token or a quoted
// string. White space is allowed around '='. The value part can be
// missing (e.g. ";lr"). sep is the parameter separator character
// (';' for header and URI parameters, '&' for URI headers).
//
// Return values:
//   - offs, ErrHdrOk - parsed the full param and it is the last one.
//   - offs, ErrHdrEOH - parsed the full param, end of header found.
//   - offs, ErrHdrMoreValues - parsed the full param, more params
//     follow; offs is the start of the next one.
//   - offs, ErrHdrMoreBytes - more bytes needed, call again with the
//     returned offset and the same param.
//   - any other ErrorHdr - parse error, offs is the offending byte.
func ParseTokenParam(buf []byte, offs int, param *PTokParam, sep byte,
	flags POptFlags) (int, ErrorHdr) {

	const (
		paramInit uint8 = iota
		paramName
		paramFEq
		paramFVal
		paramVal
		paramFSemi
		paramFNxt
		paramInitNxtVal
		paramQuotedVal
		paramERR
		paramFIN
	)

	if param.state == paramFIN {
		return offs, 0
	}
	i := offs
	var n, crl int
	var err, retOkErr ErrorHdr

	for i < len(buf) {
		c := buf[i]
		n = 0
		switch param.state {
		case paramInit, paramInitNxtVal, paramFNxt:
			switch {
			case c == ' ' || c == '\t' || c == '\n' || c == '\r':
				n, crl, err = skipLWS(buf, i)
				if err == ErrHdrMoreBytes {
					goto moreBytes
				}
				if err == 0 {
					i = n
					continue
				}
				if err == ErrHdrEOH {
					goto endOfHdr
				}
				return n, err
			case c == sep:
				// empty param, skip
			default:
				if !tokAllowedChar(c) {
					param.state = paramERR
					return i, ErrHdrBadChar
				}
				if param.state == paramFNxt {
					goto moreValues
				}
				param.state = paramName
				param.Name.Set(i, i)
				param.All.Set(i, i)
			}
		case paramName:
			switch {
			case c == ' ' || c == '\t' || c == '\n' || c == '\r':
				n, crl, err = skipLWS(buf, i)
				if err == ErrHdrMoreBytes {
					goto moreBytes
				}
				param.state = paramFEq
				param.Name.Extend(i)
				param.All.Extend(i)
				if err == 0 {
					i = n
					continue
				}
				if err == ErrHdrEOH {
					goto endOfHdr
				}
				return n, err
			case c == sep:
				param.Name.Extend(i)
				param.All.Extend(i)
				param.state = paramFNxt
			case c == '=':
				param.Name.Extend(i)
				param.All.Extend(i + 1)
				param.state = paramFVal
			case c == ',' && flags&POptTokCommaTermF != 0:
				param.Name.Extend(i)
				param.All.Extend(i)
				param.state = paramFIN
				return i, ErrHdrOk
			case c == '?' && flags&POptTokQmTermF != 0:
				param.Name.Extend(i)
				param.All.Extend(i)
				param.state = paramFIN
				return i, ErrHdrOk
			default:
				if !tokAllowedChar(c) {
					param.state = paramERR
					return i, ErrHdrBadChar
				}
			}
		case paramFEq:
			switch {
			case c == ' ' || c == '\t' || c == '\n' || c == '\r':
				n, crl, err = skipLWS(buf, i)
				if err == ErrHdrMoreBytes {
					goto moreBytes
				}
				if err == 0 {
					i = n
					continue
				}
				if err == ErrHdrEOH {
					goto endOfHdr
				}
				return n, err
			case c == sep:
				param.state = paramFNxt
			case c == '=':
				param.state = paramFVal
			case c == ',' && flags&POptTokCommaTermF != 0:
				param.state = paramFIN
				return i, ErrHdrOk
			case c == '?' && flags&POptTokQmTermF != 0:
				param.state = paramFIN
				return i, ErrHdrOk
			default:
				if !tokAllowedChar(c) {
					param.state = paramERR
					return i, ErrHdrBadChar
				}
				if flags&POptTokSpTermF != 0 {
					param.state = paramFIN
					if i >= offs+1 {
						return i - 1, ErrHdrOk
					}
					return i, ErrHdrOk
				}
				param.state = paramERR
				return i, ErrHdrBadChar
			}
		case paramFVal:
			switch {
			case c == ' ' || c == '\t' || c == '\n' || c == '\r':
				n, crl, err = skipLWS(buf, i)
				if err == ErrHdrMoreBytes {
					goto moreBytes
				}
				if err == 0 {
					i = n
					continue
				}
				if err == ErrHdrEOH {
					goto endOfHdr
				}
				return n, err
			case c == sep:
				param.Val.Set(i, i)
				param.All.Extend(i)
				param.state = paramFNxt
			case c == ',' && flags&POptTokCommaTermF != 0:
				param.Val.Set(i, i)
				param.state = paramFIN
				return i, ErrHdrOk
			case c == '?' && flags&POptTokQmTermF != 0:
				param.Val.Set(i, i)
				param.state = paramFIN
				return i, ErrHdrOk
			case c == '"':
				param.Val.Set(i+1, i+1)
				param.All.Extend(i)
				param.Quoted = true
				param.state = paramQuotedVal
			default:
				if !tokAllowedChar(c) {
					param.state = paramERR
					return i, ErrHdrBadChar
				}
				param.state = paramVal
				param.Val.Set(i, i)
				param.All.Extend(i)
			}
		case paramVal:
			switch {
			case c == ' ' || c == '\t' || c == '\n' || c == '\r':
				n, crl, err = skipLWS(buf, i)
				if err == ErrHdrMoreBytes {
					goto moreBytes
				}
				param.state = paramFSemi
				param.Val.Extend(i)
				param.All.Extend(i)
				if err == 0 {
					i = n
					continue
				}
				if err == ErrHdrEOH {
					goto endOfHdr
				}
				return n, err
			case c == sep:
				param.Val.Extend(i)
				param.All.Extend(i)
				param.state = paramFNxt
			case c == ',' && flags&POptTokCommaTermF != 0:
				param.Val.Extend(i)
				param.All.Extend(i)
				param.state = paramFIN
				return i, ErrHdrOk
			case c == '?' && flags&POptTokQmTermF != 0:
				param.Val.Extend(i)
				param.All.Extend(i)
				param.state = paramFIN
				return i, ErrHdrOk
			default:
				if !tokAllowedChar(c) {
					param.state = paramERR
					return i, ErrHdrBadChar
				}
			}
		case paramQuotedVal:
			n, err = SkipQuoted(buf, i)
			if err == ErrHdrMoreBytes {
				i = n
				goto moreBytes
			}
			if err == 0 {
				param.Val.Extend(n - 1) // exclude closing quote
				i = n
				param.All.Extend(i)
				param.state = paramFSemi
				continue
			}
			return n, err
		case paramFSemi:
			switch {
			case c == ' ' || c == '\t' || c == '\n' || c == '\r':
				n, crl, err = skipLWS(buf, i)
				if err == ErrHdrMoreBytes {
					goto moreBytes
				}
				if err == 0 {
					i = n
					continue
				}
				if err == ErrHdrEOH {
					goto endOfHdr
				}
				return n, err
			case c == sep:
				param.state = paramFNxt
			case c == ',' && flags&POptTokCommaTermF != 0:
				param.state = paramFIN
				return i, ErrHdrOk
			case c == '?' && flags&POptTokQmTermF != 0:
				param.state = paramFIN
				return i, ErrHdrOk
			default:
				if !tokAllowedChar(c) {
					param.state = paramERR
					return i, ErrHdrBadChar
				}
				if flags&POptTokSpTermF != 0 {
					param.state = paramFIN
					if i >= offs+1 {
						return i - 1, ErrHdrOk
					}
					return i, ErrHdrOk
				}
				param.state = paramERR
				return i, ErrHdrBadChar
			}
		}
		i++
	}
moreBytes:
	if flags&POptInputEndF != 0 {
		switch param.state {
		case paramInit, paramInitNxtVal, paramFNxt, paramFSemi,
			paramFVal, paramFEq:
			// do nothing
		case paramName:
			param.Name.Extend(i)
			param.All.Extend(i)
		case paramVal:
			param.Val.Extend(i)
			param.All.Extend(i)
		case paramQuotedVal:
			return i, ErrHdrMoreBytes
		default:
			return i, ErrHdrBug
		}
		crl = 0
		n = len(buf)
		if param.state == paramInit || param.state == paramInitNxtVal {
			goto endOfHdr
		}
		param.state = paramFIN
		return n, ErrHdrOk
	}
	return i, ErrHdrMoreBytes
moreValues:
	retOkErr = ErrHdrMoreValues
	n = i
	crl = 0
	switch param.state {
	case paramFNxt:
		param.state = paramInitNxtVal
	default:
		param.state = paramERR
		return n + crl, ErrHdrBug
	}
	return n + crl, retOkErr
endOfHdr:
	switch param.state {
	case paramInit, paramInitNxtVal:
		return n + crl, ErrHdrEOH
	case paramFNxt, paramName, paramFEq, paramFVal, paramVal, paramFSemi:
		param.state = paramFIN
	default:
		param.state = paramERR
		return n + crl, ErrHdrBug
	}
	return n + crl, ErrHdrEOH
}
