// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package sipparser implements a streaming, no-copy SIP (RFC 3261)
// message parser.
//
// It is organized in three layers: an incremental byte-at-a-time
// message parser (Parser / Settings) that turns a transport byte
// stream into a sequence of callbacks carrying offset/length spans
// (PField) into the caller's buffer; a family of per-header
// micro-parsers that decompose an already-isolated header value span
// into typed substructure (ParseCSeqVal, ParseNameAddrPVal,
// ParseViaVal, ...); and a SIP-URI parser (ParseURI) used standalone
// and from the address-header micro-parsers.
//
// No parsed value is ever copied: every result is a PField, an
// offset/length pair that remains valid only as long as the buffer it
// was parsed from is unchanged.
package sipparser
