// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

// ErrorHdr is the type returned by the L2/L3 header-value micro-parsers
// (CSeq, Via, From/To/Contact, Content-Type, Accept*, Allow, Subject,
// Max-Forwards, the SIP-URI parser, and the generic parameter-list
// parser they all share). It implements the error interface. The zero
// value is by convention a non-error, so to convert an ErrorHdr to
// error one should use: if errHdr == 0 { return nil } else { return
// errHdr } (similar to syscall.Errno).
type ErrorHdr uint32

// Possible ErrorHdr values.
const (
	ErrHdrOk         ErrorHdr = iota // no error, equiv. to nil
	ErrHdrEOH                        // header end
	ErrHdrEmpty                      // empty header (e.g. body start marker)
	ErrHdrMoreBytes                  // more input needed (premature end)
	ErrHdrMoreValues                 // more values present, call again
	ErrHdrNoCR
	ErrHdrBadChar
	ErrHdrParams
	ErrHdrBad
	ErrHdrValNotNumber
	ErrHdrValTooLong
	ErrHdrValBad
	ErrHdrNumTooBig
	ErrHdrTrunc
	ErrHdrNoCLen // no Content-Length header and Content-Length required
	ErrHdrBadURI
	ErrHdrBadHost
	ErrHdrBadPort
	ErrHdrBug
	ErrConvBug
)

// error values corresponding to each ErrorHdr value: this way the
// interface allocations are done only once.
// NOTE: keep in sync with the const block above.
var err2ErrorVal = [...]error{
	nil, // 0 corresponds to nil
	ErrHdrEOH,
	ErrHdrEmpty,
	ErrHdrMoreBytes,
	ErrHdrMoreValues,
	ErrHdrNoCR,
	ErrHdrBadChar,
	ErrHdrParams,
	ErrHdrBad,
	ErrHdrValNotNumber,
	ErrHdrValTooLong,
	ErrHdrValBad,
	ErrHdrNumTooBig,
	ErrHdrTrunc,
	ErrHdrNoCLen,
	ErrHdrBadURI,
	ErrHdrBadHost,
	ErrHdrBadPort,
	ErrHdrBug,
	ErrConvBug,
}

var errHdrStr = [...]string{
	ErrHdrOk:           "no error",
	ErrHdrEmpty:        "empty header",
	ErrHdrEOH:          "end of header",
	ErrHdrMoreBytes:    "more bytes needed",
	ErrHdrMoreValues:   "more header values present",
	ErrHdrNoCR:         "CR expected",
	ErrHdrBadChar:      "invalid character in header",
	ErrHdrParams:       "error parsing header parameter",
	ErrHdrBad:          "bad header",
	ErrHdrValNotNumber: "header value is not a number",
	ErrHdrValTooLong:   "header value is too long",
	ErrHdrValBad:       "bad header value",
	ErrHdrNumTooBig:    "numeric header value too big",
	ErrHdrTrunc:        "incomplete/truncated data",
	ErrHdrNoCLen:       "no Content-Length header in message",
	ErrHdrBadURI:       "malformed SIP URI",
	ErrHdrBadHost:      "malformed host",
	ErrHdrBadPort:      "malformed port number",
	ErrHdrBug:          "internal BUG while parsing header",
	ErrConvBug:         "error conversion BUG",
}

func (e ErrorHdr) Error() string {
	return errHdrStr[e]
}

// ErrorConv converts the ErrorHdr value to error. It uses "boxed"
// values to prevent runtime allocations.
func (e ErrorHdr) ErrorConv() error {
	if 0 <= int(e) && int(e) < len(err2ErrorVal) {
		return err2ErrorVal[e]
	}
	return ErrConvBug
}
