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

type pflERes struct {
	err ErrorHdr
	t   SIPMethod
	s   uint16 // reply code
	m   []byte // method
	u   []byte // uri
	v   []byte // version
	sc  []byte // reply status code as "string"
	r   []byte // reply reason
}

func TestParseFLine(t *testing.T) {
	type testCase struct {
		t1, t2, t3 string // method/uri/ver or ver/status/reason
		pflERes
	}

	tests := [...]testCase{
		{"INVITE", "sip:foo@bar.com", "SIP/2.0", pflERes{err: 0, t: MInvite}},
		{"REGISTER", "sip:f@b.com:5060", "SIP/2.0", pflERes{err: 0, t: MRegister}},
		{"ACK", "sip:bar.com;p=v", "SIP/2.0", pflERes{err: 0, t: MAck}},
		{"BYE", "sip:foo@bar.com?h1", "SIP/2.0", pflERes{err: 0, t: MBye}},
		{"CANCEL", "sip:foo@bar.com?h1;h2=h3", "SIP/2.0", pflERes{err: 0, t: MCancel}},
		{"PRACK", "sip:123456@x.com", "SIP/2.0", pflERes{err: 0, t: MPrack}},
		{"SIP/2.0", "200", "OK", pflERes{err: 0, s: 200}},
		{"SIP/2.0", "401", "Unauthorized", pflERes{err: 0, s: 401}},
		{"SIP/2.0", "480", "Temporarily not available", pflERes{err: 0, s: 480}},
		{"SIP/2.0", "100", "", pflERes{err: 0, s: 100}},
		{"SIP/2.0", "110", " ", pflERes{err: 0, s: 110}},
	}

	for _, c := range tests {
		b := []byte(c.t1 + " " + c.t2 + " " + c.t3 + "\r\n")
		if c.s == 0 {
			c.m = []byte(c.t1)
			c.u = []byte(c.t2)
			c.v = []byte(c.t3)
		} else {
			c.v = []byte(c.t1)
			c.sc = []byte(c.t2)
			c.r = []byte(c.t3)
		}
		checkParseFLine(t, b, len(b), &c.pflERes)
	}
}

func checkParseFLine(t *testing.T, buf []byte, wantOffs int, e *pflERes) {
	t.Helper()
	var fl PFLine
	o, err := ParseFLine(buf, 0, &fl)
	if err != e.err {
		t.Fatalf("ParseFLine(%q): err = %v, want %v (state %d)", buf, err, e.err, fl.state)
	}
	if o != wantOffs {
		t.Errorf("ParseFLine(%q): offs = %d, want %d", buf, o, wantOffs)
	}
	if err != 0 {
		return
	}
	if fl.Status != e.s {
		t.Errorf("ParseFLine(%q): Status = %d, want %d", buf, fl.Status, e.s)
	}
	if fl.MethodNo != e.t {
		t.Errorf("ParseFLine(%q): MethodNo = %v, want %v", buf, fl.MethodNo, e.t)
	}
	if !bytes.Equal(fl.Method.Get(buf), e.m) {
		t.Errorf("ParseFLine(%q): Method = %q, want %q", buf, fl.Method.Get(buf), e.m)
	}
	if !bytes.Equal(fl.URI.Get(buf), e.u) {
		t.Errorf("ParseFLine(%q): URI = %q, want %q", buf, fl.URI.Get(buf), e.u)
	}
	if !bytes.Equal(fl.Version.Get(buf), e.v) {
		t.Errorf("ParseFLine(%q): Version = %q, want %q", buf, fl.Version.Get(buf), e.v)
	}
	if !bytes.Equal(fl.StatusCode.Get(buf), e.sc) {
		t.Errorf("ParseFLine(%q): StatusCode = %q, want %q", buf, fl.StatusCode.Get(buf), e.sc)
	}
	if !bytes.Equal(fl.Reason.Get(buf), e.r) {
		t.Errorf("ParseFLine(%q): Reason = %q, want %q", buf, fl.Reason.Get(buf), e.r)
	}
	if !fl.Parsed() {
		t.Errorf("ParseFLine(%q): Parsed() = false, state %d", buf, fl.state)
	}
}

// TestParseFLinePartial feeds a request-line byte by byte, checking that
// every partial call reports ErrHdrMoreBytes and never claims Parsed(),
// and that the final byte completes it with the expected pieces.
func TestParseFLinePartial(t *testing.T) {
	buf := []byte("INVITE sip:foo@bar.com SIP/2.0\r\n")
	var fl PFLine
	o := 0
	for end := 1; end < len(buf); end++ {
		no, err := ParseFLine(buf[:end], o, &fl)
		if err != ErrHdrMoreBytes {
			t.Fatalf("partial len %d: err = %v, want ErrHdrMoreBytes", end, err)
		}
		if fl.Parsed() {
			t.Fatalf("partial len %d: Parsed() = true", end)
		}
		o = no
	}
	o, err := ParseFLine(buf, o, &fl)
	if err != 0 {
		t.Fatalf("final: err = %v", err)
	}
	if o != len(buf) {
		t.Errorf("final: offs = %d, want %d", o, len(buf))
	}
	if !fl.Parsed() {
		t.Error("final: Parsed() = false")
	}
	if fl.MethodNo != MInvite {
		t.Errorf("MethodNo = %v, want MInvite", fl.MethodNo)
	}
	if string(fl.URI.Get(buf)) != "sip:foo@bar.com" {
		t.Errorf("URI = %q", fl.URI.Get(buf))
	}
}

func TestParseFLineInvalid(t *testing.T) {
	tests := []string{
		"SIP/2.0 2xx OK\r\n", // non-numeric status
		"SIP/2.0 20 OK\r\n",  // status code not 3 digits
	}
	for _, s := range tests {
		var fl PFLine
		_, err := ParseFLine([]byte(s), 0, &fl)
		if err == 0 {
			t.Errorf("%q: want error, got none", s)
		}
	}
}
