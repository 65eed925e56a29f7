// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

import (
	"github.com/intuitivelabs/bytescase"
)

// Parser is an incremental, byte-at-a-time, chunk-boundary-invariant
// SIP message parser: the L1 layer. It never copies or allocates
// string storage for the message itself; every span reported to a
// Settings callback points directly into the buf passed to the
// Execute call that produced it.
//
// A Parser is not safe for concurrent use: one logical connection owns
// one instance.
type Parser struct {
	Mode  ParserMode
	Flags ParserFlags

	// MaxHeaderSize overrides DefaultMaxHeaderSize for this Parser if
	// non-zero.
	MaxHeaderSize uint32

	// UserData is an opaque slot for the consumer; the parser never
	// reads or writes it.
	UserData interface{}

	Request    bool
	Method     SIPMethod
	StatusCode uint16

	state       uint8
	headerState uint8
	lad         methodLadder

	vIndex    int // sub-index for version/status digit matching
	hasCLen   bool
	clenVal   uint64
	clenWSOK  bool // interior spaces seen so far in the Content-Length value
	keepAlive bool

	nread uint32 // header-block byte counter, reset on headers-complete

	mark     int  // offset, within the current Execute buf, of the active span's start

	err     Kind
	paused  bool
}

// Init (re)initializes p for a new connection / message stream.
func (p *Parser) Init(mode ParserMode) {
	*p = Parser{Mode: mode}
	p.keepAlive = true
	p.state = pStart
}

// Pause puts the parser into a sticky KindPaused state; subsequent
// Execute calls return 0 until Unpause is called. Pause has no effect
// on an already-errored parser.
func (p *Parser) Pause() {
	if p.err == KindOK {
		p.err = KindPaused
		p.paused = true
	}
}

// Unpause clears a pause set via Pause. It has no effect if the parser
// is stuck in a non-pause error.
func (p *Parser) Unpause() {
	if p.paused {
		p.err = KindOK
		p.paused = false
	}
}

// Err returns the sticky error, if any.
func (p *Parser) Err() Kind {
	return p.err
}

// IsBodyFinal returns true while inside OnBody if this call's span is
// the last contiguous run of a Content-Length body. For a body read
// until end of input it returns false. Only meaningful to query from
// within OnBody.
func (p *Parser) IsBodyFinal() bool {
	return p.hasCLen && p.clenVal == 0
}

func (p *Parser) maxHeaderSize() uint32 {
	if p.MaxHeaderSize != 0 {
		return p.MaxHeaderSize
	}
	return DefaultMaxHeaderSize
}

// internal top-level states, in execution order
const (
	pDead uint8 = iota
	pStart
	pMethod
	pURL
	pReqVersionS
	pReqVersionI
	pReqVersionP
	pVersionS
	pVersionI
	pVersionP
	pVersionMajor
	pVersionDot
	pVersionMinor
	pReqLineCR
	pStatusSP
	pStatus
	pStatusSP2
	pReason
	pRplLineCR
	pReqLineLF
	pLineLF
	pHeaderFieldStart
	pHeaderField
	pHeaderFieldDiscardWS
	pHeaderValueDiscardWS
	pHeaderValue
	pHeaderAlmostDone
	pHeadersAlmostDone
	pBodyIdentity
	pBodyIdentityEOF
)

// content-length header-name sub-ladder states
const (
	hGeneral uint8 = iota
	hC
	hCO
	hCON
	hCONT
	hConte
	hContent
	hContentDash
	hContentL
	hContentLe
	hContentLen
	hContentLeng
	hContentLengt
	hContentLengTh
	hContentLength
	hL
)

func isTokenChar(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '@', ',', ';', ':', '\\', '"', '/', '[', ']',
		'?', '=', '{', '}', ' ', '\t':
		return false
	}
	return c > 31 && c < 127
}

func isCtl(c byte) bool {
	return c < 32 && c != '\t' || c == 127
}

// Execute advances the parser as far as it can over buf, starting at
// buf[0] (buf itself is a fresh chunk each call; this is not an offset
// into an accumulating buffer -- a MessageProcessor is responsible for
// that bookkeeping). It returns the number of bytes consumed and the
// sticky Kind (KindOK on clean exhaustion). Calling Execute with an
// empty buf signals end-of-input, used to finalize a response body
// that is framed by connection close rather than Content-Length.
func (p *Parser) Execute(s *Settings, buf []byte) (int, Kind) {
	if p.err != KindOK {
		return 0, p.err
	}
	if len(buf) == 0 {
		return p.executeEOF(s)
	}

	i := 0
	n := len(buf)
	p.mark = 0

	flushSpan := func(cb DataCB, end int) int {
		if cb != nil {
			if r := cb(p, buf, p.mark, end-p.mark); r != 0 {
				return 1
			}
		}
		return 0
	}

	for ; i < n; i++ {
		c := buf[i]
		switch p.state {
		case pStart:
			if c == '\r' || c == '\n' {
				continue // tolerate leading CRLF between messages
			}
			if p.Mode == ModeResponse {
				if c != 'S' {
					p.err = KindInvalidVersion
					return i, p.err
				}
				p.mark = i
				p.lad = methodLadder{}
				p.state = pVersionS
				p.vIndex = 0
				continue
			}
			if !isAlphaU(c) {
				p.err = KindInvalidMethod
				return i, p.err
			}
			p.mark = i
			if p.Mode == ModeRequest {
				// a request-only parser never treats a leading 'S' as the
				// tentative start of "SIP/2.0": it can only be SUBSCRIBE.
				if !p.lad.start(c) {
					p.err = KindInvalidMethod
					return i, p.err
				}
				p.Request = true
				p.state = pMethod
				continue
			}
			switch c {
			case 'S':
				p.lad = methodLadder{}
				p.state = pVersionS // tentatively response; disambiguated below
				p.vIndex = 0
			default:
				if !p.lad.start(c) {
					p.err = KindInvalidMethod
					return i, p.err
				}
				p.Request = true
				p.state = pMethod
			}

		case pVersionS: // 'S' seen: next byte disambiguates SIP/... vs SUBSCRIBE
			switch c {
			case 'I':
				p.state = pVersionI
			case 'U':
				if p.Mode == ModeResponse {
					p.err = KindInvalidMethod
					return i, p.err
				}
				p.Request = true
				p.lad.start('S')
				if !p.lad.advance('U') {
					p.err = KindInvalidMethod
					return i, p.err
				}
				p.state = pMethod
			default:
				p.err = KindInvalidMethod
				return i, p.err
			}
		case pVersionI:
			if c != 'P' {
				p.err = KindInvalidVersion
				return i, p.err
			}
			p.state = pVersionP
		case pVersionP:
			if c != '/' {
				p.err = KindInvalidVersion
				return i, p.err
			}
			p.state = pVersionMajor
		case pVersionMajor:
			if !isDigit(c) {
				p.err = KindInvalidVersion
				return i, p.err
			}
			p.state = pVersionDot
		case pVersionDot:
			if c != '.' {
				p.err = KindInvalidVersion
				return i, p.err
			}
			p.state = pVersionMinor
		case pVersionMinor:
			if !isDigit(c) {
				p.err = KindInvalidVersion
				return i, p.err
			}
			if p.Request {
				p.state = pReqLineCR
			} else {
				if s.OnMessageBegin != nil {
					if r := s.OnMessageBegin(p); r != 0 {
						p.err = KindCBMessageBegin
						return i, p.err
					}
				}
				p.state = pStatusSP
			}

		case pMethod:
			if c == ' ' {
				if p.lad.method == MUndef {
					p.err = KindInvalidMethod
					return i, p.err
				}
				p.Method = p.lad.method
				if s.OnMessageBegin != nil {
					if r := s.OnMessageBegin(p); r != 0 {
						p.err = KindCBMessageBegin
						return i, p.err
					}
				}
				p.state = pURL
				p.mark = i + 1
				continue
			}
			if p.lad.spaceTerminates() {
				p.err = KindInvalidMethod
				return i, p.err
			}
			if !p.lad.advance(c) {
				p.err = KindInvalidMethod
				return i, p.err
			}

		case pURL:
			if c == ' ' {
				if i == p.mark {
					p.err = KindInvalidURL
					return i, p.err
				}
				if flushSpan(s.OnURL, i) != 0 {
					p.err = KindCBURL
					return i, p.err
				}
				p.state = pReqVersionS
				continue
			}
			if isCtl(c) {
				p.err = KindInvalidURL
				return i, p.err
			}

		case pReqVersionS:
			if c != 'S' {
				p.err = KindInvalidVersion
				return i, p.err
			}
			p.state = pReqVersionI
		case pReqVersionI:
			if c != 'I' {
				p.err = KindInvalidVersion
				return i, p.err
			}
			p.state = pReqVersionP
		case pReqVersionP:
			if c != 'P' {
				p.err = KindInvalidVersion
				return i, p.err
			}
			p.state = pVersionP

		case pStatusSP:
			if c != ' ' {
				p.err = KindInvalidStatus
				return i, p.err
			}
			p.state = pStatus
			p.vIndex = 0
			p.StatusCode = 0

		case pStatus:
			if !isDigit(c) {
				p.err = KindInvalidStatus
				return i, p.err
			}
			p.StatusCode = p.StatusCode*10 + uint16(c-'0')
			p.vIndex++
			if p.vIndex == 3 {
				p.state = pStatusSP2
			}

		case pStatusSP2:
			if c != ' ' {
				p.err = KindInvalidStatus
				return i, p.err
			}
			// StatusCode itself is reported via p.StatusCode; the on_status
			// span callback covers the reason phrase only, below.
			p.state = pReason
			p.mark = i + 1

		case pReason:
			if c == '\r' {
				if flushSpan(s.OnStatus, i) != 0 {
					p.err = KindCBStatus
					return i, p.err
				}
				p.state = pRplLineCR
				continue
			}
			if c == '\n' {
				if (p.Flags & FlagLenient) == 0 {
					p.err = KindLFExpected
					return i, p.err
				}
				if flushSpan(s.OnStatus, i) != 0 {
					p.err = KindCBStatus
					return i, p.err
				}
				p.state = pLineLF
				p.resetHeaderBlock()
				continue
			}
			if isCtl(c) {
				p.err = KindInvalidStatus
				return i, p.err
			}

		case pRplLineCR:
			if c != '\n' {
				p.err = KindLFExpected
				return i, p.err
			}
			p.state = pLineLF
			p.resetHeaderBlock()

		case pReqLineCR:
			if c == '\n' {
				if (p.Flags & FlagLenient) == 0 {
					p.err = KindLFExpected
					return i, p.err
				}
				p.state = pLineLF
				p.resetHeaderBlock()
				continue
			}
			if c != '\r' {
				p.err = KindLFExpected
				return i, p.err
			}
			p.state = pReqLineLF

		case pReqLineLF:
			if c != '\n' {
				p.err = KindLFExpected
				return i, p.err
			}
			p.state = pLineLF
			p.resetHeaderBlock()

		case pLineLF:
			// fallthrough entry point into the header loop; re-dispatch
			// the current byte as if we were at pHeaderFieldStart.
			p.state = pHeaderFieldStart
			i--
			continue

		case pHeaderFieldStart:
			p.nread++
			if p.nread > p.maxHeaderSize() {
				p.err = KindHeaderOverflow
				return i, p.err
			}
			if c == '\r' {
				p.state = pHeadersAlmostDone
				continue
			}
			if c == '\n' {
				if (p.Flags & FlagLenient) == 0 {
					p.err = KindLFExpected
					return i, p.err
				}
				if e := p.headersComplete(s); e != KindOK {
					p.err = e
					return i, p.err
				}
				continue
			}
			if !isTokenChar(c) {
				p.err = KindInvalidHeaderToken
				return i, p.err
			}
			p.mark = i
			p.headerState = hGeneral
			switch bytescase.ByteToLower(c) {
			case 'c':
				p.headerState = hC
			case 'l':
				p.headerState = hL
			}
			p.state = pHeaderField

		case pHeaderField:
			p.nread++
			if p.nread > p.maxHeaderSize() {
				p.err = KindHeaderOverflow
				return i, p.err
			}
			if c == ':' {
				if p.headerState == hL {
					p.headerState = hContentLength
				}
				if flushSpan(s.OnHeaderField, i) != 0 {
					p.err = KindCBHeaderField
					return i, p.err
				}
				p.state = pHeaderValueDiscardWS
				continue
			}
			if c == ' ' || c == '\t' {
				if p.headerState == hL {
					p.headerState = hContentLength
				}
				if flushSpan(s.OnHeaderField, i) != 0 {
					p.err = KindCBHeaderField
					return i, p.err
				}
				p.state = pHeaderFieldDiscardWS
				continue
			}
			if !isTokenChar(c) {
				p.err = KindInvalidHeaderToken
				return i, p.err
			}
			p.advanceHeaderNameLadder(bytescase.ByteToLower(c))

		case pHeaderFieldDiscardWS:
			p.nread++
			if p.nread > p.maxHeaderSize() {
				p.err = KindHeaderOverflow
				return i, p.err
			}
			switch c {
			case ' ', '\t':
			case ':':
				if p.headerState == hL {
					p.headerState = hContentLength
				}
				p.state = pHeaderValueDiscardWS
			default:
				p.err = KindInvalidHeaderToken
				return i, p.err
			}

		case pHeaderValueDiscardWS:
			p.nread++
			if p.nread > p.maxHeaderSize() {
				p.err = KindHeaderOverflow
				return i, p.err
			}
			switch c {
			case ' ', '\t':
				continue
			case '\r':
				p.state = pHeaderAlmostDone
				continue
			case '\n':
				if (p.Flags & FlagLenient) == 0 {
					p.err = KindLFExpected
					return i, p.err
				}
				p.state = pHeaderFieldStart
				continue
			}
			p.mark = i
			if p.headerState == hContentLength {
				if !isDigit(c) {
					p.err = KindInvalidContentLength
					return i, p.err
				}
				if p.hasCLen {
					p.err = KindUnexpectedContentLength
					return i, p.err
				}
				p.hasCLen = true
				p.clenVal = uint64(c - '0')
			}
			p.state = pHeaderValue

		case pHeaderValue:
			p.nread++
			if p.nread > p.maxHeaderSize() {
				p.err = KindHeaderOverflow
				return i, p.err
			}
			if c == '\r' {
				if flushSpan(s.OnHeaderValue, i) != 0 {
					p.err = KindCBHeaderValue
					return i, p.err
				}
				p.state = pHeaderAlmostDone
				continue
			}
			if c == '\n' {
				if (p.Flags & FlagLenient) == 0 {
					p.err = KindLFExpected
					return i, p.err
				}
				if flushSpan(s.OnHeaderValue, i) != 0 {
					p.err = KindCBHeaderValue
					return i, p.err
				}
				p.state = pHeaderFieldStart
				continue
			}
			if p.headerState == hContentLength {
				if isDigit(c) {
					if p.clenWSOK {
						p.err = KindInvalidContentLength
						return i, p.err
					}
					nv := p.clenVal*10 + uint64(c-'0')
					if (nv-uint64(c-'0'))/10 != p.clenVal {
						p.err = KindInvalidContentLength
						return i, p.err
					}
					p.clenVal = nv
				} else if c == ' ' || c == '\t' {
					p.clenWSOK = true
				} else {
					p.err = KindInvalidContentLength
					return i, p.err
				}
			} else if isCtl(c) && (p.Flags&FlagLenient) == 0 {
				p.err = KindInvalidHeaderToken
				return i, p.err
			}

		case pHeaderAlmostDone:
			p.nread++
			if c != '\n' {
				p.err = KindLFExpected
				return i, p.err
			}
			p.state = pHeaderFieldStart

		case pHeadersAlmostDone:
			if c != '\n' {
				p.err = KindLFExpected
				return i, p.err
			}
			if e := p.headersComplete(s); e != KindOK {
				p.err = e
				return i, p.err
			}

		case pBodyIdentity:
			avail := uint64(n - i)
			if avail > p.clenVal {
				avail = p.clenVal
			}
			end := i + int(avail)
			// decremented first so that IsBodyFinal holds inside the
			// OnBody call that delivers the last body bytes
			p.clenVal -= avail
			if flushCB(s.OnBody, p, buf, i, end) != 0 {
				p.err = KindCBBody
				return i, p.err
			}
			i = end - 1
			if p.clenVal == 0 {
				if e := p.messageComplete(s); e != KindOK {
					p.err = e
					return i + 1, p.err
				}
			}

		case pBodyIdentityEOF:
			// body runs to connection close (execute called w/ empty buf);
			// until then the whole remaining chunk is body.
			if flushCB(s.OnBody, p, buf, i, n) != 0 {
				p.err = KindCBBody
				return i, p.err
			}
			i = n - 1

		default:
			p.err = KindInvalidInternalState
			return i, p.err
		}
	}
	// buffer exhausted mid-span: flush whatever was captured of the
	// current field so far. The next Execute call starts a fresh buf
	// at offset 0, which is exactly where this field continues -- the
	// consumer is expected to concatenate the spans.
	if cb, fail := p.spanCB(s); cb != nil && n-p.mark > 0 {
		if r := cb(p, buf, p.mark, n-p.mark); r != 0 {
			p.err = fail
			return n, p.err
		}
	}
	return n, KindOK
}

// spanCB returns the DataCB (and its failure Kind) that owns the field
// currently being captured, if p.state is a mid-span state.
func (p *Parser) spanCB(s *Settings) (DataCB, Kind) {
	switch p.state {
	case pURL:
		return s.OnURL, KindCBURL
	case pReason:
		return s.OnStatus, KindCBStatus
	case pHeaderField:
		return s.OnHeaderField, KindCBHeaderField
	case pHeaderValue:
		return s.OnHeaderValue, KindCBHeaderValue
	default:
		return nil, KindOK
	}
}

// executeEOF handles Execute(settings, nil/empty): the only legal time
// to call it is while waiting for a connection-close-terminated body.
func (p *Parser) executeEOF(s *Settings) (int, Kind) {
	switch p.state {
	case pStart:
		return 0, KindOK
	case pBodyIdentityEOF:
		if e := p.messageComplete(s); e != KindOK {
			p.err = e
			return 0, p.err
		}
		return 0, KindOK
	default:
		p.err = KindInvalidEOFState
		return 0, p.err
	}
}

func flushCB(cb DataCB, p *Parser, buf []byte, offs, end int) int {
	if cb == nil {
		return 0
	}
	return cb(p, buf, offs, end-offs)
}

func (p *Parser) resetHeaderBlock() {
	p.nread = 0
	p.hasCLen = false
	p.clenVal = 0
	p.clenWSOK = false
}

// headersComplete runs the on_headers_complete notification and
// transitions into the body state per its return value and the
// parsed Content-Length.
func (p *Parser) headersComplete(s *Settings) Kind {
	p.nread = 0
	skip := 0
	if s.OnHeadersComplete != nil {
		r := s.OnHeadersComplete(p)
		switch r {
		case 0:
		case 1:
			skip = 1
		case 2:
			skip = 1
			p.keepAlive = false
		default:
			return KindCBHeadersComplete
		}
	}
	if skip != 0 {
		return p.messageComplete(s)
	}
	switch {
	case p.hasCLen && p.clenVal == 0:
		return p.messageComplete(s)
	case p.hasCLen:
		p.state = pBodyIdentity
	case p.Request:
		// no Content-Length on a request: treat as zero-length body
		return p.messageComplete(s)
	default:
		p.state = pBodyIdentityEOF
	}
	return KindOK
}

func (p *Parser) messageComplete(s *Settings) Kind {
	if s.OnMessageComplete != nil {
		if r := s.OnMessageComplete(p); r != 0 {
			return KindCBMessageComplete
		}
	}
	if !p.keepAlive {
		p.state = pDead
		return KindClosedConnection
	}
	savedMode, savedFlags, savedMaxHdr, savedUD := p.Mode, p.Flags, p.MaxHeaderSize, p.UserData
	*p = Parser{Mode: savedMode, Flags: savedFlags, MaxHeaderSize: savedMaxHdr, UserData: savedUD}
	p.keepAlive = true
	p.state = pStart
	return KindOK
}

func (p *Parser) advanceHeaderNameLadder(lc byte) {
	switch p.headerState {
	case hC:
		p.headerState = matchNext(lc, 'o', hCO)
	case hCO:
		p.headerState = matchNext(lc, 'n', hCON)
	case hCON:
		p.headerState = matchNext(lc, 't', hCONT)
	case hCONT:
		p.headerState = matchNext(lc, 'e', hConte)
	case hConte:
		p.headerState = matchNext(lc, 'n', hContent)
	case hContent:
		p.headerState = matchNext(lc, 't', hContentDash)
	case hContentDash:
		p.headerState = matchNext(lc, '-', hContentL)
	case hContentL:
		p.headerState = matchNext(lc, 'l', hContentLe)
	case hContentLe:
		p.headerState = matchNext(lc, 'e', hContentLen)
	case hContentLen:
		p.headerState = matchNext(lc, 'n', hContentLeng)
	case hContentLeng:
		p.headerState = matchNext(lc, 'g', hContentLengt)
	case hContentLengt:
		p.headerState = matchNext(lc, 't', hContentLengTh)
	case hContentLengTh:
		p.headerState = matchNext(lc, 'h', hContentLength)
	case hContentLength, hL:
		p.headerState = hGeneral
	}
}

func matchNext(got, want byte, next uint8) uint8 {
	if got == want {
		return next
	}
	return hGeneral
}

func isAlphaU(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
