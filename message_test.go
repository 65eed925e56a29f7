// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

import "testing"

func TestParseSIPMsgInvite(t *testing.T) {
	buf := []byte(inviteMsg)
	var msg PSIPMsg
	msg.Init(buf, nil, nil, nil)
	o, err := ParseSIPMsg(buf, 0, &msg, 0)
	if err != 0 {
		t.Fatalf("ParseSIPMsg: %v", err)
	}
	if o != len(buf) {
		t.Errorf("offset = %d, want %d", o, len(buf))
	}
	if !msg.Request() {
		t.Error("Request() = false, want true")
	}
	if msg.Method() != MInvite {
		t.Errorf("Method() = %v, want MInvite", msg.Method())
	}
	if !msg.PV.CLen.Parsed() || msg.PV.CLen.UIVal != 4 {
		t.Errorf("CLen = %+v", msg.PV.CLen)
	}
	if string(msg.Body.Get(buf)) != "test" {
		t.Errorf("Body = %q, want \"test\"", msg.Body.Get(buf))
	}
	if !msg.Parsed() {
		t.Error("Parsed() = false")
	}
}

func TestParseSIPMsgOK(t *testing.T) {
	buf := []byte(okMsg)
	var msg PSIPMsg
	msg.Init(buf, nil, nil, nil)
	o, err := ParseSIPMsg(buf, 0, &msg, 0)
	if err != 0 {
		t.Fatalf("ParseSIPMsg: %v", err)
	}
	if o != len(buf) {
		t.Errorf("offset = %d, want %d", o, len(buf))
	}
	if msg.Request() {
		t.Error("Request() = true, want false")
	}
	if msg.FL.Status != 200 {
		t.Errorf("Status = %d, want 200", msg.FL.Status)
	}
	if msg.Method() != MInvite {
		t.Errorf("Method() (from CSeq) = %v, want MInvite", msg.Method())
	}
	if len(msg.Body.Get(buf)) != 0 {
		t.Errorf("Body = %q, want empty", msg.Body.Get(buf))
	}
}

func TestParseSIPMsgIncompleteBody(t *testing.T) {
	full := []byte(inviteMsg)
	// feed everything except the last 2 bytes of the body: headers are
	// complete, but Content-Length says more body bytes should follow
	// than are actually present yet.
	partial := full[:len(full)-2]
	var msg PSIPMsg
	msg.Init(partial, nil, nil, nil)
	_, err := ParseSIPMsg(partial, 0, &msg, 0)
	if err != ErrHdrMoreBytes {
		t.Fatalf("err = %v, want ErrHdrMoreBytes", err)
	}
	if msg.Parsed() {
		t.Error("Parsed() = true on a truncated body")
	}
}

func TestParseSIPMsgNoMoreDataTruncatedBody(t *testing.T) {
	// SIPMsgNoMoreDataF allows a short body to be accepted as final
	// (e.g. a connection closed before the declared Content-Length was
	// fully received).
	full := []byte(inviteMsg)
	partial := full[:len(full)-2]
	var msg PSIPMsg
	msg.Init(partial, nil, nil, nil)
	o, err := ParseSIPMsg(partial, 0, &msg, SIPMsgNoMoreDataF)
	if err != 0 {
		t.Fatalf("err = %v, want 0", err)
	}
	if !msg.Parsed() || o != len(partial) {
		t.Errorf("parsed=%v o=%d, want true, %d", msg.Parsed(), o, len(partial))
	}
	if string(msg.Body.Get(partial)) != "te" {
		t.Errorf("Body = %q, want \"te\" (truncated)", msg.Body.Get(partial))
	}
}

func TestMessageProcessorBackToBack(t *testing.T) {
	buf := []byte(inviteMsg + okMsg)
	var mp MessageProcessor
	var got []SIPMethod
	var reqCount, replCount int
	_, err := mp.Process(buf, 0, 0, func(m *PSIPMsg) bool {
		got = append(got, m.Method())
		if m.Request() {
			reqCount++
		} else {
			replCount++
		}
		return true
	})
	if err != 0 {
		t.Fatalf("Process: %v", err)
	}
	if reqCount != 1 || replCount != 1 {
		t.Errorf("reqCount=%d replCount=%d, want 1,1", reqCount, replCount)
	}
	if len(got) != 2 || got[0] != MInvite || got[1] != MInvite {
		t.Errorf("methods = %v, want [MInvite MInvite]", got)
	}
}

func TestDefaultReason(t *testing.T) {
	if r := DefaultReason(200); r != "OK" {
		t.Errorf("DefaultReason(200) = %q, want OK", r)
	}
	if r := DefaultReason(9999); r != "" {
		t.Errorf("DefaultReason(9999) = %q, want empty", r)
	}
}
