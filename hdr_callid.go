// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

// PCallIDBody holds a parsed Call-ID header value: word ["@" word].
// CallID always holds the whole opaque token; LocalID and Host are
// sub-spans split on the first '@' found, when present.
type PCallIDBody struct {
	CallID  PField // whole value
	LocalID PField // part before '@' (or the whole value if no '@')
	Host    PField // part after '@', empty if absent
	PCallIDIState
}

// Reset re-initializes cv.
func (cv *PCallIDBody) Reset() {
	*cv = PCallIDBody{}
}

// Empty returns true if nothing has been parsed yet.
func (cv PCallIDBody) Empty() bool {
	return cv.state == ciInit
}

// Parsed returns true if parsing completed successfully.
func (cv PCallIDBody) Parsed() bool {
	return cv.state == ciFIN
}

// Pending returns true if parsing is in progress.
func (cv PCallIDBody) Pending() bool {
	return cv.state != ciFIN && cv.state != ciInit
}

// PCallIDIState contains ParseCallIDVal internal state (private).
type PCallIDIState struct {
	state  uint8
	soffs  int
	atOffs int // offset of '@' inside the token, -1 if none seen yet
}

const (
	ciInit uint8 = iota
	ciFound
	ciEnd
	ciFIN
)

// ParseCallIDVal parses the value of a Call-ID header (buf[offs:],
// pointing just after the ':'). It returns the offset immediately
// after the parsed value and an error; ErrHdrMoreBytes means more
// input is needed and the function should be re-invoked with the
// returned offset and the same pcid.
func ParseCallIDVal(buf []byte, offs int, pcid *PCallIDBody) (int, ErrorHdr) {
	if pcid.state == ciFIN {
		return offs, 0
	}
	if pcid.state == ciInit {
		pcid.atOffs = -1
	}
	i := offs
	var n, crl int
	var err ErrorHdr
	for i < len(buf) {
		c := buf[i]
		switch c {
		case ' ', '\t', '\n', '\r':
			switch pcid.state {
			case ciFound:
				pcid.CallID.Set(pcid.soffs, i)
				pcid.state = ciEnd
				fallthrough
			case ciInit, ciEnd:
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
		case '@':
			switch pcid.state {
			case ciInit:
				pcid.state = ciFound
				pcid.soffs = i
				pcid.atOffs = i
			case ciFound:
				if pcid.atOffs < 0 {
					pcid.atOffs = i
				}
				// a 2nd '@' is tolerated as part of the host (opaque token)
			case ciEnd:
				return i, ErrHdrBadChar
			}
		default:
			switch pcid.state {
			case ciInit:
				pcid.state = ciFound
				pcid.soffs = i
			case ciFound:
				// do nothing, accept any non-ws byte
			case ciEnd:
				return i, ErrHdrBadChar
			}
		}
		i++
	}
moreBytes:
	return i, ErrHdrMoreBytes
endOfHdr:
	switch pcid.state {
	case ciEnd:
		// do nothing
	case ciFound:
		pcid.CallID.Set(pcid.soffs, i)
	case ciInit:
		return n + crl, ErrHdrBad
	default:
		return n + crl, ErrHdrBug
	}
	pcid.state = ciFIN
	if pcid.atOffs >= 0 {
		pcid.LocalID.Set(int(pcid.CallID.Offs), pcid.atOffs)
		pcid.Host.Set(pcid.atOffs+1, int(pcid.CallID.End()))
	} else {
		pcid.LocalID = pcid.CallID
	}
	pcid.soffs = 0
	return n + crl, 0
}
