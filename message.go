// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

// PSIPMsg contains a fully or partially parsed SIP message: the start
// line (PFLine), the selected header values (PHdrVals) and the raw
// header list (HdrLst), plus the message body span. If the message is
// not fully contained in the passed input, the internal parsing state
// is kept internally and parsing can be resumed later, once more
// input is available, exactly like the individual header micro-parsers.
type PSIPMsg struct {
	FL   PFLine   // first line (request or status)
	PV   PHdrVals // selected, eagerly-decoded header values
	HL   HdrLst   // every header, broken into name/value spans
	Body PField   // message body

	hdrs     [10]Hdr       // default backing array for HL.Hdrs
	vias     [3]PViaBody   // default backing array for PV.Vias
	contacts [10]PFromBody // default backing array for PV.Contacts

	// Buf is the slice passed to ParseSIPMsg; parsed values point
	// inside it. The actual message can start at a non-zero offset
	// (e.g. after skipping a transport-level keep-alive CRLF).
	Buf          []byte
	RawMsg       []byte // Buf[initial_offset:final_offset], the raw message
	SIPMsgIState        // internal parsing state
}

// Reset re-initializes m and its internal parsing state.
func (m *PSIPMsg) Reset() {
	*m = PSIPMsg{}
}

// Init initializes m with a new message buffer and, optionally,
// caller-supplied backing arrays for the headers/vias/contacts slices;
// a nil argument falls back to m's private array. Accept*/Allow value
// retention can be wired in separately through m.PV.Accepts.Init(),
// m.PV.AcceptEnc.Init(), m.PV.AcceptLang.Init() and m.PV.Allows.Init(),
// since PHdrVals only bundles the contact/via backing arrays by default.
func (m *PSIPMsg) Init(msg []byte, hdrs []Hdr, vias []PViaBody, contacts []PFromBody) {
	m.Reset()
	m.Buf = msg
	if hdrs != nil {
		m.HL.Hdrs = hdrs
	} else {
		m.HL.Hdrs = m.hdrs[:]
	}
	if vias == nil {
		vias = m.vias[:]
	}
	if contacts == nil {
		contacts = m.contacts[:]
	}
	m.PV.Init(contacts, vias)
}

// Parsed returns true if the message is fully parsed (no more input needed).
func (m *PSIPMsg) Parsed() bool {
	return m.state == SIPMsgFIN
}

// Err returns true if parsing failed.
func (m *PSIPMsg) Err() bool {
	return m.state == SIPMsgErr
}

// Request returns true if the message is a SIP request.
func (m *PSIPMsg) Request() bool {
	return m.FL.Request()
}

// Method returns the numeric SIP method: the start-line method for a
// request, or the CSeq method for a reply (the CSeq method always
// mirrors the request that is being replied to, rfc3261 8.1.1.5/12.2).
func (m *PSIPMsg) Method() SIPMethod {
	if m.Request() {
		return m.FL.MethodNo
	}
	return m.PV.CSeq.MethodNo
}

// SIPMsgIState holds the internal message-parsing state.
type SIPMsgIState struct {
	state uint8
	offs  int
}

// Parsing states.
const (
	SIPMsgInit uint8 = iota
	SIPMsgFLine
	SIPMsgHeaders
	SIPMsgBody
	SIPMsgErr
	SIPMsgNoCLen // no Content-Length and Content-Length was required
	SIPMsgFIN    // fully parsed
)

// Parsing flags for ParseSIPMsg.
const (
	SIPMsgSkipBodyF   = 1 << iota // don't parse the body, return at body start
	SIPMsgCLenReqF                // error if SIPMsgSkipBodyF and no Content-Length
	SIPMsgNoMoreDataF             // no more message data available (EOF/whole datagram)
)

// ParseSIPMsg parses a SIP message held in buf[], starting at offset
// offs. If parsing needs more data than buf[offs:] holds
// (ErrHdrMoreBytes), call it again with a buffer that extends the old
// data with the newly arrived bytes and offs equal to the previously
// returned offset, reusing the same msg. The offset on the first call
// is usually 0, but can be any valid offset into buf.
// It returns the offset parsing stopped at and an error. Pass
// SIPMsgNoMoreDataF once no more input will ever follow (e.g. a full
// UDP datagram, or a TCP connection close), so that a response body
// with no Content-Length can be finalized at end-of-input rather than
// waiting forever for more bytes.
func ParseSIPMsg(buf []byte, offs int, msg *PSIPMsg, flags uint8) (int, ErrorHdr) {
	var o = offs
	var err ErrorHdr
	switch msg.state {
	case SIPMsgInit:
		msg.offs = offs
		msg.state = SIPMsgFLine
		fallthrough
	case SIPMsgFLine:
		if o, err = ParseFLine(buf, o, &msg.FL); err != 0 {
			goto errOut
		}
		msg.state = SIPMsgHeaders
		fallthrough
	case SIPMsgHeaders:
		if o, err = ParseHeaders(buf, o, &msg.HL, &msg.PV); err != 0 {
			goto errOut
		}
		msg.state = SIPMsgBody
		fallthrough
	case SIPMsgBody:
		msg.Body.Set(o, o)
		if (flags & SIPMsgSkipBodyF) != 0 {
			if flags&SIPMsgCLenReqF != 0 && !msg.PV.CLen.Parsed() {
				msg.state = SIPMsgNoCLen
				msg.Buf = buf[0:o]
				msg.RawMsg = msg.Buf[msg.offs:o]
				return o, ErrHdrNoCLen
			}
			msg.state = SIPMsgFIN
			goto end
		}
		if msg.PV.CLen.Parsed() {
			if (o + int(msg.PV.CLen.UIVal)) > len(buf) {
				if (flags & SIPMsgNoMoreDataF) != 0 {
					o = len(buf)
					goto end // allow a truncated body
				}
				// o is the body start: a resumed call restarts the body here
				return o, ErrHdrMoreBytes
			}
			o += int(msg.PV.CLen.UIVal)
		} else {
			if msg.Request() {
				// no Content-Length on a request: assume a zero-length body
				goto end
			}
			if (flags & SIPMsgNoMoreDataF) == 0 {
				return o, ErrHdrMoreBytes
			}
			// response, no Content-Length, connection closing: body runs
			// to the end of the available data
			o = len(buf)
		}
	default:
		err = ErrHdrBug
		goto errOut
	}
end:
	msg.Body.Extend(o)
	msg.Buf = buf[0:o]
	msg.RawMsg = msg.Buf[msg.offs:o]
	msg.state = SIPMsgFIN
	return o, 0
errOut:
	if err != ErrHdrMoreBytes {
		msg.state = SIPMsgErr
	} else if (flags & SIPMsgNoMoreDataF) != 0 {
		msg.state = SIPMsgErr
		err = ErrHdrTrunc
	}
	return o, err
}

// MessageProcessor drives ParseSIPMsg over a caller-managed
// accumulating buffer and handles back-to-back messages: once one
// message is fully parsed, the processor advances past it and is
// ready to start the next one from the same underlying buffer.
//
// A MessageProcessor keeps no bias of its own: if the consumer compacts
// or slides its accumulation buffer, spans of a message parsed before
// the slide can be adjusted with AddBias.
type MessageProcessor struct {
	Msg   PSIPMsg
	Flags uint8 // same flags as ParseSIPMsg
}

// Reset clears the processor's state, discarding any in-progress message.
func (mp *MessageProcessor) Reset() {
	mp.Msg.Reset()
}

// Process parses as many complete messages as buf[offs:] contains,
// invoking onMsg for each. It stops and returns the offset to resume
// from when a message needs more bytes than buf holds, or on the first
// parse error (in which case onMsg is not called for the failed
// message). onMsg returning false stops processing early and the
// returned offset points at the start of the message that was just
// delivered to it (so the caller can re-examine it if desired).
func (mp *MessageProcessor) Process(buf []byte, offs int, flags uint8,
	onMsg func(*PSIPMsg) bool) (int, ErrorHdr) {
	o := offs
	for {
		msgStart := o
		var err ErrorHdr
		o, err = ParseSIPMsg(buf, o, &mp.Msg, flags)
		if err != 0 {
			return o, err
		}
		if !mp.Msg.Parsed() {
			return o, ErrHdrMoreBytes
		}
		cont := onMsg(&mp.Msg)
		mp.Msg.Reset()
		if !cont {
			return msgStart, 0
		}
		if o >= len(buf) {
			return o, 0
		}
	}
}

// AddBias adds delta to the offsets of msg's start-line spans, its Body
// span and the Name/Val spans of the headers in msg.HL, so that they
// stay valid after the consumer moves its accumulation buffer's
// contents by delta bytes (delta is negative when bytes were discarded
// from the front). Empty spans are left unchanged. The decoded header
// values in msg.PV and the internal resume offset are not adjusted.
func AddBias(msg *PSIPMsg, delta int) {
	msg.FL.Method = msg.FL.Method.addOffset(delta)
	msg.FL.URI = msg.FL.URI.addOffset(delta)
	msg.FL.Version = msg.FL.Version.addOffset(delta)
	msg.FL.StatusCode = msg.FL.StatusCode.addOffset(delta)
	msg.FL.Reason = msg.FL.Reason.addOffset(delta)
	msg.Body = msg.Body.addOffset(delta)
	for i := 0; i < msg.HL.N && i < len(msg.HL.Hdrs); i++ {
		msg.HL.Hdrs[i].Name = msg.HL.Hdrs[i].Name.addOffset(delta)
		msg.HL.Hdrs[i].Val = msg.HL.Hdrs[i].Val.addOffset(delta)
	}
}
