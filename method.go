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

// SIPMethod is the type used to hold the various SIP request methods.
type SIPMethod uint8

// method types
const (
	MUndef SIPMethod = iota
	MRegister
	MInvite
	MAck
	MBye
	MPrack
	MCancel
	MOptions
	MSubscribe
	MNotify
	MUpdate
	MInfo
	MRefer
	MPublish
	MMessage
	MOther // last
)

// Method2Name translates between a numeric SIPMethod and the ASCII name.
var Method2Name = [MOther + 1][]byte{
	MUndef:     []byte(""),
	MInvite:    []byte("INVITE"),
	MAck:       []byte("ACK"),
	MBye:       []byte("BYE"),
	MCancel:    []byte("CANCEL"),
	MRegister:  []byte("REGISTER"),
	MPrack:     []byte("PRACK"),
	MOptions:   []byte("OPTIONS"),
	MUpdate:    []byte("UPDATE"),
	MSubscribe: []byte("SUBSCRIBE"),
	MNotify:    []byte("NOTIFY"),
	MInfo:      []byte("INFO"),
	MRefer:     []byte("REFER"),
	MPublish:   []byte("PUBLISH"),
	MMessage:   []byte("MESSAGE"),
	MOther:     []byte("OTHER"),
}

// Name returns the ASCII sip method name.
func (m SIPMethod) Name() []byte {
	if m > MOther {
		return Method2Name[MUndef]
	}
	return Method2Name[m]
}

// String implements the Stringer interface.
func (m SIPMethod) String() string {
	return string(m.Name())
}

// GetMethodNo converts from a complete ASCII SIP method name to the
// corresponding numeric internal value. Used by micro-parsers (CSeq,
// Allow) that already have the whole method token assembled.
func GetMethodNo(buf []byte) SIPMethod {
	if len(buf) == 0 {
		return MOther
	}
	i := hashMthName(buf)
	for _, m := range mthNameLookup[i] {
		if bytes.Equal(buf, m.n) {
			return m.t
		}
	}
	return MOther
}

// magic values: after adding/removing methods run tests again
// looking for max. elem per bucket == 1 for minimum hash size
const (
	mthBitsLen   uint = 2
	mthBitsFChar uint = 3
)

type mth2Type struct {
	n []byte
	t SIPMethod
}

var mthNameLookup [1 << (mthBitsLen + mthBitsFChar)][]mth2Type

func hashMthName(n []byte) int {
	const (
		mC = (1 << mthBitsFChar) - 1
		mL = (1 << mthBitsLen) - 1
	)
	return (int(bytescase.ByteToLower(n[0])) & mC) |
		((len(n) & mL) << mthBitsFChar)
}

func init() {
	for i := MUndef + 1; i < MOther; i++ {
		h := hashMthName(Method2Name[i])
		mthNameLookup[h] = append(mthNameLookup[h], mth2Type{Method2Name[i], i})
	}
}

// methodLadder is the incremental, per-byte method matcher used by the
// L1 message parser while the request line's method token is streamed
// in one byte at a time, possibly split across several Execute() calls.
// It mirrors the original C source's s_start_req / s_req_method states:
// the first letter picks a candidate method and the remaining bytes are
// matched against that candidate's literal spelling, with three
// explicit re-branch points (INFO->INVITE, PRACK->PUBLISH,
// REFER->REGISTER) exactly like the original.
type methodLadder struct {
	method SIPMethod
	index  int
}

// start begins matching at the first method byte. Returns false if ch
// cannot start any known method (InvalidMethod).
func (l *methodLadder) start(ch byte) bool {
	switch ch {
	case 'A':
		l.method = MAck
	case 'B':
		l.method = MBye
	case 'C':
		l.method = MCancel
	case 'I':
		l.method = MInfo // or INVITE, disambiguated below
	case 'M':
		l.method = MMessage
	case 'N':
		l.method = MNotify
	case 'O':
		l.method = MOptions
	case 'P':
		l.method = MPrack // or PUBLISH
	case 'R':
		l.method = MRefer // or REGISTER
	case 'S':
		l.method = MSubscribe
	case 'U':
		l.method = MUpdate
	default:
		return false
	}
	l.index = 1
	return true
}

// spaceTerminates returns true if ch==' ' legally ends the method token
// at the ladder's current position (i.e. the candidate's full name has
// been matched).
func (l *methodLadder) spaceTerminates() bool {
	matcher := l.method.Name()
	return l.index == len(matcher)
}

// advance feeds the next method byte. It returns true if ch continued
// matching the current candidate or triggered a valid re-branch, and
// false if ch is invalid for any candidate (InvalidMethod). The SP that
// ends the token is handled by the caller (see spaceTerminates).
func (l *methodLadder) advance(ch byte) bool {
	matcher := l.method.Name()
	switch {
	case l.index < len(matcher) && ch == matcher[l.index]:
		// nada, stay on the same candidate
	case (ch >= 'A' && ch <= 'Z') || ch == '-':
		switch {
		case l.method == MInfo && l.index == 2 && ch == 'V':
			l.method = MInvite
		case l.method == MPrack && l.index == 1 && ch == 'U':
			l.method = MPublish
		case l.method == MRefer && l.index == 2 && ch == 'G':
			l.method = MRegister
		default:
			return false
		}
	default:
		return false
	}
	l.index++
	return true
}
