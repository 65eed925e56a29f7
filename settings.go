// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

// DataCB is the span-callback type used for on_url, on_status,
// on_header_field, on_header_value and on_body: buf[offs:offs+n] is the
// chunk of the logical field made available by this Execute call. A
// non-zero return value aborts parsing with the callback's dedicated
// Kind.
type DataCB func(p *Parser, buf []byte, offs, n int) int

// NotifyCB is the callback type used for on_message_begin and
// on_message_complete: no payload, just a notification point.
type NotifyCB func(p *Parser) int

// HeadersCompleteCB is invoked once, after the blank line terminating
// the header block has been consumed and before any body byte. Its
// return value decides body handling: 0 expects a body, 1 skips the
// body (e.g. the consumer already knows this exchange has none, as for
// a HEAD-like semantic), 2 skips the body and additionally marks the
// connection as closing: once OnMessageComplete has run, the Execute
// call returns KindClosedConnection, and so does every further Execute
// call on this parser. Any other value fails parsing with
// KindCBHeadersComplete.
type HeadersCompleteCB func(p *Parser) int

// Settings mirrors the original C source's sip_parser_settings: every
// slot is optional (a nil callback is simply skipped).
type Settings struct {
	OnMessageBegin    NotifyCB
	OnURL             DataCB
	OnStatus          DataCB
	OnHeaderField     DataCB
	OnHeaderValue     DataCB
	OnHeadersComplete HeadersCompleteCB
	OnBody            DataCB
	OnMessageComplete NotifyCB
}

// DefaultMaxHeaderSize is the upper bound, in bytes, on the header
// block (everything between the start line and the blank line) that a
// Parser will accept before failing with KindHeaderOverflow, unless
// overridden per-Parser via Parser.MaxHeaderSize. Mirrors the single
// mutable global the C original exposes for this setting: it is
// process-wide and advisory, taking effect for parsers Init'd or
// resumed after the change, never retroactively for one already mid-body.
var DefaultMaxHeaderSize uint32 = 80 * 1024

// SetMaxHeaderSize changes the process-wide default header-block size
// limit. It does not affect a Parser that already has an explicit
// MaxHeaderSize set.
func SetMaxHeaderSize(n uint32) {
	DefaultMaxHeaderSize = n
}

// ParserMode selects whether a Parser expects requests, responses or
// either (auto-detected off the first non-whitespace byte, the way the
// original's s_start_req_or_res state does).
type ParserMode uint8

const (
	ModeBoth ParserMode = iota
	ModeRequest
	ModeResponse
)

// ParserFlags control lenient/strict behavior (spec.md §6 Configuration).
type ParserFlags uint8

const (
	// FlagLenient relaxes the invalid-header-token checks within header
	// values and accepts a bare LF where CRLF is otherwise required.
	FlagLenient ParserFlags = 1 << iota
)
