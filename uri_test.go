// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

import "testing"

func TestParseURIBasic(t *testing.T) {
	tests := []struct {
		uri      string
		typ      URIScheme
		user     string
		host     string
		port     uint16
		ipv6     bool
		params   string
		headers  string
		wantErr  ErrorHdr
	}{
		{
			uri:  "sip:alice@atlanta.com",
			typ:  SIPuri,
			user: "alice",
			host: "atlanta.com",
		},
		{
			uri:  "sips:bob@biloxi.com:5061",
			typ:  SIPSuri,
			user: "bob",
			host: "biloxi.com",
			port: 5061,
		},
		{
			uri:    "sip:alice@atlanta.com;transport=tcp",
			typ:    SIPuri,
			user:   "alice",
			host:   "atlanta.com",
			params: "transport=tcp",
		},
		{
			uri:     "sip:alice@atlanta.com?subject=project",
			typ:     SIPuri,
			user:    "alice",
			host:    "atlanta.com",
			headers: "subject=project",
		},
		{
			uri:  "sip:[2001:db8::1]:5060",
			typ:  SIPuri,
			host: "2001:db8::1",
			port: 5060,
			ipv6: true,
		},
		{
			uri:  "sip:atlanta.com",
			typ:  SIPuri,
			host: "atlanta.com",
		},
		{
			uri:  "tel:+1-212-555-0101",
			typ:  TELuri,
			user: "+1-212-555-0101",
		},
	}
	for _, tc := range tests {
		var u PsipURI
		buf := []byte(tc.uri)
		o, err := ParseURI(buf, &u)
		if err != ErrHdrOk {
			t.Errorf("%q: err = %v, want ErrHdrOk", tc.uri, err)
			continue
		}
		if o != len(buf) {
			t.Errorf("%q: consumed %d, want %d", tc.uri, o, len(buf))
		}
		if u.URIType != tc.typ {
			t.Errorf("%q: URIType = %v, want %v", tc.uri, u.URIType, tc.typ)
		}
		if string(u.User.Get(buf)) != tc.user {
			t.Errorf("%q: User = %q, want %q", tc.uri, u.User.Get(buf), tc.user)
		}
		if string(u.Host.Get(buf)) != tc.host {
			t.Errorf("%q: Host = %q, want %q", tc.uri, u.Host.Get(buf), tc.host)
		}
		if tc.port != 0 && u.PortNo != tc.port {
			t.Errorf("%q: PortNo = %d, want %d", tc.uri, u.PortNo, tc.port)
		}
		if u.IPv6 != tc.ipv6 {
			t.Errorf("%q: IPv6 = %v, want %v", tc.uri, u.IPv6, tc.ipv6)
		}
		if string(u.Params.Get(buf)) != tc.params {
			t.Errorf("%q: Params = %q, want %q", tc.uri, u.Params.Get(buf), tc.params)
		}
		if string(u.Headers.Get(buf)) != tc.headers {
			t.Errorf("%q: Headers = %q, want %q", tc.uri, u.Headers.Get(buf), tc.headers)
		}
	}
}

func TestParseURIUserPass(t *testing.T) {
	buf := []byte("sip:alice:secret@atlanta.com")
	var u PsipURI
	_, err := ParseURI(buf, &u)
	if err != ErrHdrOk {
		t.Fatalf("err = %v", err)
	}
	if string(u.User.Get(buf)) != "alice" {
		t.Errorf("User = %q, want alice", u.User.Get(buf))
	}
	if string(u.Pass.Get(buf)) != "secret" {
		t.Errorf("Pass = %q, want secret", u.Pass.Get(buf))
	}
	if string(u.Host.Get(buf)) != "atlanta.com" {
		t.Errorf("Host = %q, want atlanta.com", u.Host.Get(buf))
	}
}

// TestParseURIAtBacktrack exercises the reinterpretation the parser does
// when a '@' shows up after the parser already committed to treating
// what came before ';' as the host: the "user" part can contain ';' and
// the whole prefix gets reinterpreted as userinfo once '@' is seen past
// a parameter list.
func TestParseURIAtBacktrack(t *testing.T) {
	buf := []byte("sip:1_unusual;party=yes@atlanta.com")
	var u PsipURI
	_, err := ParseURI(buf, &u)
	if err != ErrHdrOk {
		t.Fatalf("err = %v", err)
	}
	if string(u.User.Get(buf)) != "1_unusual;party=yes" {
		t.Errorf("User = %q, want %q", u.User.Get(buf), "1_unusual;party=yes")
	}
	if string(u.Host.Get(buf)) != "atlanta.com" {
		t.Errorf("Host = %q, want atlanta.com", u.Host.Get(buf))
	}
	if !u.Params.Empty() {
		t.Errorf("Params = %q, want empty (consumed by backtracked user)", u.Params.Get(buf))
	}
}

func TestParseURIInvalid(t *testing.T) {
	tests := []string{
		"",
		"x",
		"http://atlanta.com",
		"sips;atlanta.com",
		"sip:",
		"sip:alice@",
		"sip:[::1",
		"sip:alice@atlanta.com:notaport",
		"sip:alice@atlanta.com:99999",
	}
	for _, uri := range tests {
		var u PsipURI
		_, err := ParseURI([]byte(uri), &u)
		if err == ErrHdrOk {
			t.Errorf("%q: want error, got none", uri)
		}
	}
}

func TestParseAllURIParams(t *testing.T) {
	buf := []byte("transport=tcp;lr;ttl=15")
	var l URIParamsLst
	var pbuf [8]URIParam
	l.Init(pbuf[:])
	o, n, err := ParseAllURIParams(buf, 0, &l, POptInputEndF)
	if err != ErrHdrOk {
		t.Fatalf("err = %v", err)
	}
	if o != len(buf) {
		t.Errorf("consumed = %d, want %d", o, len(buf))
	}
	if n != 3 || l.PNo() != 3 {
		t.Errorf("n = %d PNo = %d, want 3", n, l.PNo())
	}
	if l.Types&URIParamTransportF == 0 || l.Types&URIParamLRF == 0 ||
		l.Types&URIParamTTLF == 0 {
		t.Errorf("Types = %v, missing expected flags", l.Types)
	}
}

func TestURIParamResolve(t *testing.T) {
	tests := []struct {
		name string
		want URIParamF
	}{
		{"transport", URIParamTransportF},
		{"TRANSPORT", URIParamTransportF},
		{"user", URIParamUserF},
		{"method", URIParamMethodF},
		{"ttl", URIParamTTLF},
		{"maddr", URIParamMaddrF},
		{"lr", URIParamLRF},
		{"unknown-param", URIParamOtherF},
	}
	for _, tc := range tests {
		if got := URIParamResolve([]byte(tc.name)); got != tc.want {
			t.Errorf("URIParamResolve(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestURICmpShort(t *testing.T) {
	buf1 := []byte("sip:alice@atlanta.com:5060")
	buf2 := []byte("SIP:alice@ATLANTA.COM:5060;transport=tcp")
	var u1, u2 PsipURI
	if _, err := ParseURI(buf1, &u1); err != ErrHdrOk {
		t.Fatalf("err1 = %v", err)
	}
	if _, err := ParseURI(buf2, &u2); err != ErrHdrOk {
		t.Fatalf("err2 = %v", err)
	}
	if !URICmpShort(&u1, buf1, &u2, buf2) {
		t.Error("URICmpShort: want equal (case-insensitive host, params ignored)")
	}
}

func TestValidPctEncoding(t *testing.T) {
	if !ValidPctEncoding([]byte("alice%20smith")) {
		t.Error("valid percent-encoding rejected")
	}
	if ValidPctEncoding([]byte("alice%2")) {
		t.Error("truncated percent-encoding accepted")
	}
	if ValidPctEncoding([]byte("alice%zz")) {
		t.Error("invalid hex digits accepted")
	}
}
