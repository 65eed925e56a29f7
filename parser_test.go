// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

import (
	"bytes"
	"testing"
)

// recordedHdr is one fully assembled header name/value pair, built up
// from possibly many OnHeaderField/OnHeaderValue span callbacks.
type recordedHdr struct {
	name, val []byte
}

// recorder accumulates every callback a Parser invokes so tests can
// check the fully assembled result regardless of how the input bytes
// were chunked across Execute calls.
type recorder struct {
	url, status, body bytes.Buffer
	hdrs              []recordedHdr
	curName, curVal   bytes.Buffer
	haveHdr           bool
	lastWasValue      bool
	msgBegins         int
	msgCompletes      int
	headersCompletes  int
}

func (r *recorder) finalizeHdr() {
	if r.haveHdr {
		r.hdrs = append(r.hdrs, recordedHdr{
			name: append([]byte(nil), r.curName.Bytes()...),
			val:  append([]byte(nil), r.curVal.Bytes()...),
		})
	}
	r.curName.Reset()
	r.curVal.Reset()
	r.haveHdr = false
	r.lastWasValue = false
}

func (r *recorder) settings() *Settings {
	return &Settings{
		OnMessageBegin: func(p *Parser) int {
			r.msgBegins++
			return 0
		},
		OnURL: func(p *Parser, buf []byte, offs, n int) int {
			r.url.Write(buf[offs : offs+n])
			return 0
		},
		OnStatus: func(p *Parser, buf []byte, offs, n int) int {
			r.status.Write(buf[offs : offs+n])
			return 0
		},
		OnHeaderField: func(p *Parser, buf []byte, offs, n int) int {
			if r.lastWasValue {
				r.finalizeHdr()
			}
			r.haveHdr = true
			r.curName.Write(buf[offs : offs+n])
			return 0
		},
		OnHeaderValue: func(p *Parser, buf []byte, offs, n int) int {
			r.curVal.Write(buf[offs : offs+n])
			r.lastWasValue = true
			return 0
		},
		OnHeadersComplete: func(p *Parser) int {
			r.finalizeHdr()
			r.headersCompletes++
			return 0
		},
		OnBody: func(p *Parser, buf []byte, offs, n int) int {
			r.body.Write(buf[offs : offs+n])
			return 0
		},
		OnMessageComplete: func(p *Parser) int {
			r.msgCompletes++
			return 0
		},
	}
}

func (r *recorder) header(name string) (string, bool) {
	for _, h := range r.hdrs {
		if bytescaseEqStr(h.name, name) {
			return string(h.val), true
		}
	}
	return "", false
}

// bytescaseEqStr does a case-insensitive compare without pulling in
// the bytescase package's whole API just for a test helper.
func bytescaseEqStr(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := range b {
		c := b[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		d := s[i]
		if d >= 'A' && d <= 'Z' {
			d += 'a' - 'A'
		}
		if c != d {
			return false
		}
	}
	return true
}

// execAll feeds msg to p in chunks of the given size (0 means whole
// buffer at once), driving Execute until the buffer is exhausted.
func execAll(t *testing.T, p *Parser, s *Settings, msg []byte, chunkSz int) {
	t.Helper()
	if chunkSz <= 0 {
		chunkSz = len(msg)
	}
	for off := 0; off < len(msg); {
		end := off + chunkSz
		if end > len(msg) {
			end = len(msg)
		}
		consumed, kind := p.Execute(s, msg[off:end])
		if kind != KindOK {
			t.Fatalf("Execute error at offset %d: %v", off+consumed, kind)
		}
		off += consumed
	}
}

const inviteMsg = "INVITE sip:bob@biloxi.com SIP/2.0\r\n" +
	"Via: SIP/2.0/UDP pc33.atlanta.com;branch=z9hG4bK776asdhds\r\n" +
	"Max-Forwards: 70\r\n" +
	"To: Bob <sip:bob@biloxi.com>\r\n" +
	"From: Alice <sip:alice@atlanta.com>;tag=1928301774\r\n" +
	"Call-ID: a84b4c76e66710@pc33.atlanta.com\r\n" +
	"CSeq: 314159 INVITE\r\n" +
	"Contact: <sip:alice@pc33.atlanta.com>\r\n" +
	"Content-Type: application/sdp\r\n" +
	"Content-Length: 4\r\n" +
	"\r\n" +
	"test"

const okMsg = "SIP/2.0 200 OK\r\n" +
	"Via: SIP/2.0/UDP pc33.atlanta.com;branch=z9hG4bK776asdhds\r\n" +
	"To: Bob <sip:bob@biloxi.com>;tag=a6c85cf\r\n" +
	"From: Alice <sip:alice@atlanta.com>;tag=1928301774\r\n" +
	"Call-ID: a84b4c76e66710@pc33.atlanta.com\r\n" +
	"CSeq: 314159 INVITE\r\n" +
	"Content-Length: 0\r\n" +
	"\r\n"

func checkInviteResult(t *testing.T, r *recorder) {
	t.Helper()
	if r.url.String() != "sip:bob@biloxi.com" {
		t.Errorf("URL = %q", r.url.String())
	}
	if r.body.String() != "test" {
		t.Errorf("body = %q", r.body.String())
	}
	if r.msgBegins != 1 || r.msgCompletes != 1 || r.headersCompletes != 1 {
		t.Errorf("begins=%d completes=%d headersComplete=%d",
			r.msgBegins, r.msgCompletes, r.headersCompletes)
	}
	if v, ok := r.header("Content-Length"); !ok || v != "4" {
		t.Errorf("Content-Length = %q, %v", v, ok)
	}
	if v, ok := r.header("call-id"); !ok || v != "a84b4c76e66710@pc33.atlanta.com" {
		t.Errorf("Call-ID = %q, %v", v, ok)
	}
	if _, ok := r.header("Via"); !ok {
		t.Error("Via header missing")
	}
}

// TestChunkBoundaryInvariance feeds the same canonical INVITE through
// a variety of chunk sizes (including one byte at a time) and checks
// that the assembled result is identical regardless of how the input
// was split across Execute calls.
func TestChunkBoundaryInvariance(t *testing.T) {
	for _, chunkSz := range []int{0, 1, 2, 3, 5, 7, 16, 37} {
		var p Parser
		p.Init(ModeBoth)
		var rec recorder
		execAll(t, &p, rec.settings(), []byte(inviteMsg), chunkSz)
		checkInviteResult(t, &rec)
	}
}

func TestParseInviteWhole(t *testing.T) {
	var p Parser
	p.Init(ModeRequest)
	var rec recorder
	execAll(t, &p, rec.settings(), []byte(inviteMsg), 0)
	checkInviteResult(t, &rec)
}

func TestParseOKZeroBody(t *testing.T) {
	var p Parser
	p.Init(ModeResponse)
	var rec recorder
	execAll(t, &p, rec.settings(), []byte(okMsg), 0)
	if rec.status.String() != "OK" {
		t.Errorf("status = %q", rec.status.String())
	}
	if rec.body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.body.String())
	}
	if rec.msgBegins != 1 || rec.msgCompletes != 1 {
		t.Errorf("begins=%d completes=%d", rec.msgBegins, rec.msgCompletes)
	}
}

// TestBackToBackMessages checks that two messages concatenated in one
// buffer are both parsed, with no state leaking between them.
func TestBackToBackMessages(t *testing.T) {
	buf := []byte(inviteMsg + okMsg)
	var p Parser
	p.Init(ModeBoth)
	var rec recorder
	execAll(t, &p, rec.settings(), buf, 0)
	if rec.msgBegins != 2 {
		t.Errorf("msgBegins = %d, want 2", rec.msgBegins)
	}
	if rec.msgCompletes != 2 {
		t.Errorf("msgCompletes = %d, want 2", rec.msgCompletes)
	}
}

func TestContentLengthHeaderName(t *testing.T) {
	for _, name := range []string{"Content-Length", "CONTENT-LENGTH", "content-length", "l", "L"} {
		msg := "INVITE sip:bob@biloxi.com SIP/2.0\r\n" +
			name + ": 2\r\n" +
			"\r\n" +
			"ab"
		var p Parser
		p.Init(ModeRequest)
		var rec recorder
		execAll(t, &p, rec.settings(), []byte(msg), 0)
		if rec.body.String() != "ab" {
			t.Errorf("name=%q: body = %q, want \"ab\"", name, rec.body.String())
		}
	}
}

func TestContentLengthTrailingSpace(t *testing.T) {
	// a trailing space after the digits is tolerated.
	msg := "INVITE sip:bob@biloxi.com SIP/2.0\r\n" +
		"Content-Length: 2 \r\n" +
		"\r\n" +
		"xy"
	var p Parser
	p.Init(ModeRequest)
	var rec recorder
	execAll(t, &p, rec.settings(), []byte(msg), 0)
	if rec.body.String() != "xy" {
		t.Errorf("body = %q, want \"xy\"", rec.body.String())
	}
}

func TestContentLengthDigitAfterSpaceRejected(t *testing.T) {
	// a digit reappearing after an interior space is not a valid
	// Content-Length value (only a single run of digits, optionally
	// followed by whitespace, is accepted).
	msg := "INVITE sip:bob@biloxi.com SIP/2.0\r\n" +
		"Content-Length: 1 2\r\n" +
		"\r\n"
	var p Parser
	p.Init(ModeRequest)
	var rec recorder
	_, kind := p.Execute(rec.settings(), []byte(msg))
	if kind != KindInvalidContentLength {
		t.Errorf("kind = %v, want KindInvalidContentLength", kind)
	}
}

func TestHeaderOverflow(t *testing.T) {
	var p Parser
	p.Init(ModeRequest)
	p.MaxHeaderSize = 16
	var rec recorder
	msg := []byte("INVITE sip:bob@biloxi.com SIP/2.0\r\n" +
		"X-Long-Header: this-value-is-long-enough-to-overflow\r\n" +
		"\r\n")
	_, kind := p.Execute(rec.settings(), msg)
	if kind != KindHeaderOverflow {
		t.Errorf("kind = %v, want KindHeaderOverflow", kind)
	}
}

func TestInvalidMethod(t *testing.T) {
	var p Parser
	p.Init(ModeRequest)
	var rec recorder
	_, kind := p.Execute(rec.settings(), []byte("9NVALID sip:x SIP/2.0\r\n\r\n"))
	if kind != KindInvalidMethod {
		t.Errorf("kind = %v, want KindInvalidMethod", kind)
	}
}

func TestPauseUnpause(t *testing.T) {
	var p Parser
	p.Init(ModeRequest)
	p.Pause()
	var rec recorder
	n, kind := p.Execute(rec.settings(), []byte("INVITE"))
	if n != 0 || kind != KindPaused {
		t.Errorf("n=%d kind=%v, want 0, KindPaused", n, kind)
	}
	p.Unpause()
	if p.Err() != KindOK {
		t.Errorf("Err() = %v after Unpause, want KindOK", p.Err())
	}
}
