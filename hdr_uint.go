// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

// MaxCLenValueSize is the maximum length of the Content-Length value
// as a string (more than 9 digits can overflow a uint32).
const MaxCLenValueSize = 9

// MaxClenValue is the maximum accepted numeric Content-Length value.
const MaxClenValue = 1 << 24

// MaxForwardsValueSize is the maximum length of the Max-Forwards value
// as a string.
const MaxForwardsValueSize = 3

// MaxForwardsValue is the maximum accepted numeric Max-Forwards value
// (rfc3261 20.22 recommends 70 as a default and treats it as a small
// hop count, never a 32 bit quantity).
const MaxForwardsValue = 255

// PUIntBody holds a partial or fully parsed unsigned integer header
// value, shared by Content-Length, Max-Forwards and Expires.
type PUIntBody struct {
	UIVal uint32
	SVal  PField
	PUIntIState
}

// Reset re-initializes the parsed value and internal parsing state.
func (cl *PUIntBody) Reset() {
	*cl = PUIntBody{}
}

// Empty returns true if nothing was parsed yet.
func (cl PUIntBody) Empty() bool {
	return cl.state == clInit
}

// Parsed returns true if the value is fully parsed.
func (cl PUIntBody) Parsed() bool {
	return cl.state == clFIN
}

// Pending returns true if the value is only partially parsed.
func (cl PUIntBody) Pending() bool {
	return cl.state != clFIN && cl.state != clInit
}

// PUIntIState contains ParseUIntVal internal state (private).
type PUIntIState struct {
	state uint8
	soffs int
}

const (
	clInit uint8 = iota
	clFound
	clEnd
	clFIN
)

// ParseCLenVal parses a Content-Length header value.
func ParseCLenVal(buf []byte, offs int, pcl *PUIntBody) (int, ErrorHdr) {
	o, err := ParseUIntVal(buf, offs, pcl)
	if err == 0 &&
		(pcl.SVal.Len > MaxCLenValueSize || pcl.UIVal > MaxClenValue) {
		return int(pcl.SVal.Offs), ErrHdrNumTooBig
	}
	return o, err
}

// ParseMaxFwdVal parses a Max-Forwards header value.
func ParseMaxFwdVal(buf []byte, offs int, pmf *PUIntBody) (int, ErrorHdr) {
	o, err := ParseUIntVal(buf, offs, pmf)
	if err == 0 &&
		(pmf.SVal.Len > MaxForwardsValueSize || pmf.UIVal > MaxForwardsValue) {
		return int(pmf.SVal.Offs), ErrHdrNumTooBig
	}
	return o, err
}

// ParseExpiresVal parses an Expires header value (also used for the
// Contact "expires" parameter's deltaSeconds value).
func ParseExpiresVal(buf []byte, offs int, pe *PUIntBody) (int, ErrorHdr) {
	return ParseUIntVal(buf, offs, pe)
}

// ParseUIntVal parses the value of a header whose entire content is a
// single non-negative decimal integer (e.g. Content-Length,
// Max-Forwards, Expires). buf[offs:] should point just after the ':'.
// It returns a new offset and an error; ErrHdrMoreBytes means more
// input is needed and the function should be re-invoked with the
// returned offset and the same pcl.
func ParseUIntVal(buf []byte, offs int, pcl *PUIntBody) (int, ErrorHdr) {
	if pcl.state == clFIN {
		return offs, 0
	}
	i := offs
	var n, crl int
	var err ErrorHdr
	for i < len(buf) {
		c := buf[i]
		switch c {
		case ' ', '\t', '\n', '\r':
			switch pcl.state {
			case clFound:
				pcl.SVal.Set(pcl.soffs, i)
				pcl.state = clEnd
				fallthrough
			case clInit, clEnd:
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
			switch pcl.state {
			case clInit:
				pcl.state = clFound
				pcl.soffs = i
				pcl.UIVal = uint32(c - '0')
			case clFound:
				v := pcl.UIVal*10 + uint32(c-'0')
				if pcl.UIVal > v {
					return i, ErrHdrNumTooBig
				}
				pcl.UIVal = v
			case clEnd:
				return i, ErrHdrBadChar
			}
		default:
			return i, ErrHdrBadChar
		}
		i++
	}
moreBytes:
	return i, ErrHdrMoreBytes
endOfHdr:
	switch pcl.state {
	case clEnd:
		// do nothing
	case clFound:
		pcl.SVal.Set(pcl.soffs, i)
	case clInit:
		return n + crl, ErrHdrBad
	default:
		return n + crl, ErrHdrBug
	}
	pcl.state = clFIN
	pcl.soffs = 0
	return n + crl, 0
}
