// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

import "testing"

func TestParseContentTypeVal(t *testing.T) {
	buf := []byte("application/sdp\r\n")
	var cb PCTypeBody
	o, err := ParseContentTypeVal(buf, 0, &cb)
	if err != ErrHdrOk {
		t.Fatalf("err = %v", err)
	}
	if o != len(buf) {
		t.Errorf("offs = %d, want %d", o, len(buf))
	}
	if string(cb.Type.Get(buf)) != "application" {
		t.Errorf("Type = %q, want application", cb.Type.Get(buf))
	}
	if string(cb.Subtype.Get(buf)) != "sdp" {
		t.Errorf("Subtype = %q, want sdp", cb.Subtype.Get(buf))
	}
	if !cb.Parsed() {
		t.Error("Parsed() = false")
	}
}

func TestParseContentTypeValWithParams(t *testing.T) {
	buf := []byte("multipart/mixed;boundary=boundary42\r\n")
	var cb PCTypeBody
	_, err := ParseContentTypeVal(buf, 0, &cb)
	if err != ErrHdrOk {
		t.Fatalf("err = %v", err)
	}
	if string(cb.Type.Get(buf)) != "multipart" || string(cb.Subtype.Get(buf)) != "mixed" {
		t.Errorf("Type/Subtype = %q/%q", cb.Type.Get(buf), cb.Subtype.Get(buf))
	}
	if string(cb.Params.Get(buf)) != "boundary=boundary42" {
		t.Errorf("Params = %q, want boundary=boundary42", cb.Params.Get(buf))
	}
}

func TestParseContentTypeValBadMissingSubtype(t *testing.T) {
	buf := []byte("application\r\n")
	var cb PCTypeBody
	_, err := ParseContentTypeVal(buf, 0, &cb)
	if err == ErrHdrOk {
		t.Error("want error for a type with no subtype, got none")
	}
}

func TestParseAcceptVal(t *testing.T) {
	buf := []byte("application/sdp;q=0.8, application/*;q=0.5, */*\r\n")
	var a PAccepts
	var abuf [4]PAcceptBody
	a.Init(abuf[:])
	o, err := ParseAllAcceptValues(buf, 0, &a)
	if err != ErrHdrOk {
		t.Fatalf("err = %v", err)
	}
	if o != len(buf) {
		t.Errorf("offs = %d, want %d", o, len(buf))
	}
	if a.VNo() != 3 {
		t.Fatalf("VNo() = %d, want 3", a.VNo())
	}
	v0 := a.GetAccept(0)
	if string(v0.Type.Get(buf)) != "application" || string(v0.Subtype.Get(buf)) != "sdp" {
		t.Errorf("v0 Type/Subtype = %q/%q", v0.Type.Get(buf), v0.Subtype.Get(buf))
	}
	if !v0.HasQ || v0.Q != 800 {
		t.Errorf("v0 Q = %d HasQ=%v, want 800/true", v0.Q, v0.HasQ)
	}
	v2 := a.GetAccept(2)
	if string(v2.Type.Get(buf)) != "*" || string(v2.Subtype.Get(buf)) != "*" {
		t.Errorf("v2 Type/Subtype = %q/%q, want */*", v2.Type.Get(buf), v2.Subtype.Get(buf))
	}
	if v2.HasQ {
		t.Error("v2 HasQ = true, want false (no q param)")
	}
}

func TestParseAcceptEncodingVal(t *testing.T) {
	buf := []byte("gzip;q=1.0, identity\r\n")
	var a PAccepts
	var abuf [4]PAcceptBody
	a.Init(abuf[:])
	_, err := ParseAllAcceptEncodingValues(buf, 0, &a)
	if err != ErrHdrOk {
		t.Fatalf("err = %v", err)
	}
	if a.VNo() != 2 {
		t.Fatalf("VNo() = %d, want 2", a.VNo())
	}
	if string(a.GetAccept(0).Type.Get(buf)) != "gzip" {
		t.Errorf("Type = %q, want gzip", a.GetAccept(0).Type.Get(buf))
	}
	if len(a.GetAccept(0).Subtype.Get(buf)) != 0 {
		t.Errorf("Subtype = %q, want empty", a.GetAccept(0).Subtype.Get(buf))
	}
}

func TestParseQVal(t *testing.T) {
	tests := []struct {
		in   string
		u, d uint16
		ok   bool
	}{
		{"1", 1, 0, true},
		{"1.0", 1, 0, true},
		{"0", 0, 0, true},
		{"0.5", 0, 500, true},
		{"0.8", 0, 800, true},
		{"0.123", 0, 123, true},
		{"1.1", 0, 0, false},  // q must be <= 1
		{"2", 0, 0, false},    // only 0 or 1 for the integer part
		{"0.1234", 0, 0, false}, // too many fractional digits
		{"", 0, 0, false},
	}
	for _, tc := range tests {
		u, d, ok := parseQVal([]byte(tc.in))
		if ok != tc.ok {
			t.Errorf("parseQVal(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && (u != tc.u || d != tc.d) {
			t.Errorf("parseQVal(%q) = %d,%d want %d,%d", tc.in, u, d, tc.u, tc.d)
		}
	}
}

func TestParseAllowVal(t *testing.T) {
	buf := []byte("INVITE, ACK, OPTIONS, CANCEL, BYE\r\n")
	var a PAllows
	var abuf [8]PAllowBody
	a.Init(abuf[:])
	o, err := ParseAllAllowValues(buf, 0, &a)
	if err != ErrHdrOk {
		t.Fatalf("err = %v", err)
	}
	if o != len(buf) {
		t.Errorf("offs = %d, want %d", o, len(buf))
	}
	if a.VNo() != 5 {
		t.Fatalf("VNo() = %d, want 5", a.VNo())
	}
	want := []SIPMethod{MInvite, MAck, MOptions, MCancel, MBye}
	for i, m := range want {
		if a.GetAllow(i).Method != m {
			t.Errorf("Allow[%d].Method = %v, want %v", i, a.GetAllow(i).Method, m)
		}
	}
	if !a.Has(MBye) {
		t.Error("Has(MBye) = false, want true")
	}
	if a.Has(MRegister) {
		t.Error("Has(MRegister) = true, want false")
	}
}

func TestParseAllowValUnknownMethod(t *testing.T) {
	// an unrecognized token is still a syntactically valid method name;
	// it maps to MOther rather than causing a parse error.
	buf := []byte("FROB\r\n")
	var ab PAllowBody
	_, err := ParseAllowVal(buf, 0, &ab)
	if err != ErrHdrOk {
		t.Fatalf("err = %v", err)
	}
	if ab.Method != MOther {
		t.Errorf("Method = %v, want MOther", ab.Method)
	}
}
