// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

import "testing"

func TestParseViaValBasic(t *testing.T) {
	buf := []byte("SIP/2.0/UDP pc33.atlanta.com:5060;branch=z9hG4bK776asdhds\r\n")
	var vb PViaBody
	o, err := ParseViaVal(buf, 0, &vb)
	if err != ErrHdrOk {
		t.Fatalf("err = %v", err)
	}
	if o != len(buf) {
		t.Errorf("offs = %d, want %d", o, len(buf))
	}
	if string(vb.Proto.Get(buf)) != "SIP" {
		t.Errorf("Proto = %q, want SIP", vb.Proto.Get(buf))
	}
	if string(vb.ProtoVer.Get(buf)) != "2.0" {
		t.Errorf("ProtoVer = %q, want 2.0", vb.ProtoVer.Get(buf))
	}
	if string(vb.Transport.Get(buf)) != "UDP" {
		t.Errorf("Transport = %q, want UDP", vb.Transport.Get(buf))
	}
	if string(vb.Host.Get(buf)) != "pc33.atlanta.com" {
		t.Errorf("Host = %q, want pc33.atlanta.com", vb.Host.Get(buf))
	}
	if vb.PortNo != 5060 {
		t.Errorf("PortNo = %d, want 5060", vb.PortNo)
	}
	if string(vb.Branch.Get(buf)) != "z9hG4bK776asdhds" {
		t.Errorf("Branch = %q, want z9hG4bK776asdhds", vb.Branch.Get(buf))
	}
	if !vb.Parsed() {
		t.Error("Parsed() = false")
	}
}

func TestParseViaValNoPort(t *testing.T) {
	buf := []byte("SIP/2.0/TCP biloxi.com\r\n")
	var vb PViaBody
	_, err := ParseViaVal(buf, 0, &vb)
	if err != ErrHdrOk {
		t.Fatalf("err = %v", err)
	}
	if string(vb.Host.Get(buf)) != "biloxi.com" {
		t.Errorf("Host = %q, want biloxi.com", vb.Host.Get(buf))
	}
	if vb.PortNo != 0 {
		t.Errorf("PortNo = %d, want 0", vb.PortNo)
	}
}

func TestParseViaValIPv6(t *testing.T) {
	buf := []byte("SIP/2.0/UDP [2001:db8::9:1];received=2001:db8::9:1;rport=5060\r\n")
	var vb PViaBody
	_, err := ParseViaVal(buf, 0, &vb)
	if err != ErrHdrOk {
		t.Fatalf("err = %v", err)
	}
	if !vb.IPv6 {
		t.Error("IPv6 = false, want true")
	}
	if string(vb.Host.Get(buf)) != "2001:db8::9:1" {
		t.Errorf("Host = %q, want 2001:db8::9:1 (brackets stripped)", vb.Host.Get(buf))
	}
	if !vb.HasRPort || string(vb.RPort.Get(buf)) != "5060" {
		t.Errorf("RPort = %q HasRPort=%v, want 5060/true", vb.RPort.Get(buf), vb.HasRPort)
	}
}

func TestParseViaValRPortFlagOnly(t *testing.T) {
	// rport can appear as a bare flag (client-side request for the
	// server to reflect back the source port) with no value yet.
	buf := []byte("SIP/2.0/UDP pc33.atlanta.com;branch=z9hG4bK77;rport\r\n")
	var vb PViaBody
	_, err := ParseViaVal(buf, 0, &vb)
	if err != ErrHdrOk {
		t.Fatalf("err = %v", err)
	}
	if !vb.HasRPort {
		t.Error("HasRPort = false, want true")
	}
	if len(vb.RPort.Get(buf)) != 0 {
		t.Errorf("RPort = %q, want empty", vb.RPort.Get(buf))
	}
}

func TestParseAllViaValuesMulti(t *testing.T) {
	buf := []byte("SIP/2.0/UDP a.com:5060;branch=z9hG4bK1, SIP/2.0/UDP b.com:5061;branch=z9hG4bK2\r\n")
	var v PVias
	var vbuf [4]PViaBody
	v.Init(vbuf[:])
	o, err := ParseAllViaValues(buf, 0, &v)
	if err != ErrHdrOk {
		t.Fatalf("err = %v", err)
	}
	if o != len(buf) {
		t.Errorf("offs = %d, want %d", o, len(buf))
	}
	if v.VNo() != 2 {
		t.Fatalf("VNo() = %d, want 2", v.VNo())
	}
	if string(v.GetVia(0).Host.Get(buf)) != "a.com" {
		t.Errorf("Via[0].Host = %q, want a.com", v.GetVia(0).Host.Get(buf))
	}
	if string(v.GetVia(1).Host.Get(buf)) != "b.com" {
		t.Errorf("Via[1].Host = %q, want b.com", v.GetVia(1).Host.Get(buf))
	}
}

func TestParseViaValTTLMaddr(t *testing.T) {
	buf := []byte("SIP/2.0/UDP 224.0.0.1;ttl=16;maddr=239.255.255.1\r\n")
	var vb PViaBody
	_, err := ParseViaVal(buf, 0, &vb)
	if err != ErrHdrOk {
		t.Fatalf("err = %v", err)
	}
	if string(vb.TTL.Get(buf)) != "16" {
		t.Errorf("TTL = %q, want 16", vb.TTL.Get(buf))
	}
	if string(vb.Maddr.Get(buf)) != "239.255.255.1" {
		t.Errorf("Maddr = %q, want 239.255.255.1", vb.Maddr.Get(buf))
	}
}

func TestParseViaValPartial(t *testing.T) {
	full := []byte("SIP/2.0/UDP pc33.atlanta.com:5060;branch=z9hG4bK776\r\n")
	var vb PViaBody
	o := 0
	for end := 1; end < len(full); end++ {
		no, err := ParseViaVal(full[:end], o, &vb)
		if err == ErrHdrOk {
			t.Fatalf("completed prematurely at len %d", end)
		}
		if err != ErrHdrMoreBytes {
			t.Fatalf("partial len %d: err = %v, want ErrHdrMoreBytes", end, err)
		}
		o = no
	}
	o, err := ParseViaVal(full, o, &vb)
	if err != ErrHdrOk {
		t.Fatalf("final: err = %v", err)
	}
	if o != len(full) {
		t.Errorf("final offs = %d, want %d", o, len(full))
	}
	if string(vb.Host.Get(full)) != "pc33.atlanta.com" {
		t.Errorf("Host = %q", vb.Host.Get(full))
	}
}
