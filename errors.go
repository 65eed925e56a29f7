// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

// Kind is the type for the errors returned by the incremental message
// parser (Parser.Execute). It implements the error interface; the zero
// value is by convention a non-error.
type Kind uint32

// Possible Kind values. These mirror, one to one, the SIP_ERRNO_MAP of
// the original sip-parser C source (itself modeled after
// nodejs/http-parser's http_errno).
const (
	KindOK Kind = iota

	// callback-related errors: the user callback returned non-zero
	KindCBMessageBegin
	KindCBURL
	KindCBStatus
	KindCBHeaderField
	KindCBHeaderValue
	KindCBHeadersComplete
	KindCBBody
	KindCBMessageComplete

	// structural errors
	KindInvalidEOFState
	KindHeaderOverflow
	KindClosedConnection
	KindInvalidVersion
	KindInvalidStatus
	KindInvalidMethod
	KindInvalidURL
	KindInvalidHost
	KindInvalidPort
	KindInvalidPath
	KindInvalidQueryString
	KindInvalidFragment
	KindLFExpected
	KindInvalidHeaderToken
	KindInvalidContentLength
	KindUnexpectedContentLength
	KindInvalidConstant
	KindInvalidInternalState
	KindStrict
	KindPaused
	KindUnknown
)

var kindName = [...]string{
	KindOK:                      "OK",
	KindCBMessageBegin:          "CB_message_begin",
	KindCBURL:                   "CB_url",
	KindCBStatus:                "CB_status",
	KindCBHeaderField:           "CB_header_field",
	KindCBHeaderValue:           "CB_header_value",
	KindCBHeadersComplete:       "CB_headers_complete",
	KindCBBody:                  "CB_body",
	KindCBMessageComplete:       "CB_message_complete",
	KindInvalidEOFState:         "INVALID_EOF_STATE",
	KindHeaderOverflow:          "HEADER_OVERFLOW",
	KindClosedConnection:        "CLOSED_CONNECTION",
	KindInvalidVersion:          "INVALID_VERSION",
	KindInvalidStatus:           "INVALID_STATUS",
	KindInvalidMethod:           "INVALID_METHOD",
	KindInvalidURL:              "INVALID_URL",
	KindInvalidHost:             "INVALID_HOST",
	KindInvalidPort:             "INVALID_PORT",
	KindInvalidPath:             "INVALID_PATH",
	KindInvalidQueryString:      "INVALID_QUERY_STRING",
	KindInvalidFragment:         "INVALID_FRAGMENT",
	KindLFExpected:              "LF_EXPECTED",
	KindInvalidHeaderToken:      "INVALID_HEADER_TOKEN",
	KindInvalidContentLength:    "INVALID_CONTENT_LENGTH",
	KindUnexpectedContentLength: "UNEXPECTED_CONTENT_LENGTH",
	KindInvalidConstant:         "INVALID_CONSTANT",
	KindInvalidInternalState:    "INVALID_INTERNAL_STATE",
	KindStrict:                  "STRICT",
	KindPaused:                  "PAUSED",
	KindUnknown:                 "UNKNOWN",
}

var kindDesc = [...]string{
	KindOK:                      "success",
	KindCBMessageBegin:          "the on_message_begin callback failed",
	KindCBURL:                   "the on_url callback failed",
	KindCBStatus:                "the on_status callback failed",
	KindCBHeaderField:           "the on_header_field callback failed",
	KindCBHeaderValue:           "the on_header_value callback failed",
	KindCBHeadersComplete:       "the on_headers_complete callback failed",
	KindCBBody:                  "the on_body callback failed",
	KindCBMessageComplete:       "the on_message_complete callback failed",
	KindInvalidEOFState:         "stream ended at an unexpected time",
	KindHeaderOverflow:          "too many header bytes seen; overflow detected",
	KindClosedConnection:        "data received after completed connection close",
	KindInvalidVersion:          "invalid SIP version",
	KindInvalidStatus:           "invalid SIP status code",
	KindInvalidMethod:           "invalid SIP method",
	KindInvalidURL:              "invalid URL",
	KindInvalidHost:             "invalid host",
	KindInvalidPort:             "invalid port",
	KindInvalidPath:             "invalid path",
	KindInvalidQueryString:      "invalid query string",
	KindInvalidFragment:         "invalid fragment",
	KindLFExpected:              "LF character expected",
	KindInvalidHeaderToken:      "invalid character in header",
	KindInvalidContentLength:    "invalid character in content-length header",
	KindUnexpectedContentLength: "unexpected content-length header",
	KindInvalidConstant:         "invalid constant string",
	KindInvalidInternalState:    "encountered unexpected internal state",
	KindStrict:                  "strict mode assertion failed",
	KindPaused:                  "parser is paused",
	KindUnknown:                 "unknown error",
}

// Error implements the error interface.
func (k Kind) Error() string {
	if int(k) < len(kindDesc) {
		return kindDesc[k]
	}
	return kindDesc[KindUnknown]
}

// Name returns the machine-readable name for k.
func (k Kind) Name() string {
	if int(k) < len(kindName) {
		return kindName[k]
	}
	return kindName[KindUnknown]
}

// Desc returns the human-readable description for k.
func (k Kind) Desc() string {
	return k.Error()
}

// cbFailure maps a callback identity to its dedicated Kind, following
// CALLBACK_NOTIFY_/CALLBACK_DATA_ from the original C source: every
// callback slot gets its own sticky error so the caller can tell which
// callback rejected the message.
type cbID uint8

const (
	cbMessageBegin cbID = iota
	cbURL
	cbStatus
	cbHeaderField
	cbHeaderValue
	cbHeadersComplete
	cbBody
	cbMessageComplete
)

var cbKind = [...]Kind{
	cbMessageBegin:    KindCBMessageBegin,
	cbURL:             KindCBURL,
	cbStatus:          KindCBStatus,
	cbHeaderField:     KindCBHeaderField,
	cbHeaderValue:     KindCBHeaderValue,
	cbHeadersComplete: KindCBHeadersComplete,
	cbBody:            KindCBBody,
	cbMessageComplete: KindCBMessageComplete,
}
