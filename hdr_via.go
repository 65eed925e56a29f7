// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

import (
	"github.com/intuitivelabs/bytescase"
)

// PViaBody holds one fully or partially parsed Via header value:
// sent-protocol SP sent-by *( SEMI via-params ).
type PViaBody struct {
	Proto     PField // e.g. "SIP"
	ProtoVer  PField // e.g. "2.0"
	Transport PField // e.g. "UDP", "TCP", "TLS"
	Host      PField // host part, brackets stripped for IPv6 references
	IPv6      bool   // host was bracketed ([...]), i.e. IPv6 reference
	Port      PField
	PortNo    uint16
	Params    PField // raw params, trimmed
	Branch    PField // ;branch= value
	Received  PField // ;received= value
	RPort     PField // ;rport= value (may be empty if flag-only)
	HasRPort  bool
	TTL       PField
	Maddr     PField
	V         PField // whole value, trimmed
	PViaIState
}

// Reset re-initializes vb.
func (vb *PViaBody) Reset() {
	*vb = PViaBody{}
}

// Empty returns true if nothing has been parsed yet.
func (vb *PViaBody) Empty() bool {
	return vb.state == viaInit
}

// Parsed returns true if the value is fully parsed.
func (vb *PViaBody) Parsed() bool {
	return vb.state == viaFIN
}

// PViaIState contains ParseViaVal internal state (private).
type PViaIState struct {
	state uint8
	soffs int
}

const (
	viaInit uint8 = iota
	viaProto
	viaProtoSlash
	viaVer
	viaVerSlash
	viaTransport
	viaHostStart
	viaHost
	viaHost6
	viaHostEnd
	viaPort
	viaParamStart
	viaParam
	viaFIN
)

// ParseViaVal parses one Via value (the part up to the next ',' or
// end of header). buf[offs:] should point just after the ':' (for the
// first value) or just after the separating ',' (for subsequent
// values). It returns the offset of the next value/end of header and
// an error. ErrHdrMoreValues signals a comma-separated continuation,
// identically to the Contact header multi-value convention.
func ParseViaVal(buf []byte, offs int, vb *PViaBody) (int, ErrorHdr) {
	if vb.state == viaFIN {
		return offs, 0
	}
	i := offs
	var n, crl int
	var err ErrorHdr
	for i < len(buf) {
		c := buf[i]
		switch vb.state {
		case viaInit:
			switch {
			case c == ' ' || c == '\t' || c == '\r' || c == '\n':
				n, crl, err = skipLWS(buf, i)
				if err == 0 {
					i = n
					continue
				}
				if err == ErrHdrEOH {
					i = n
					goto endOfHdr
				}
				if err == ErrHdrMoreBytes {
					i = n
					goto moreBytes
				}
				return n, err
			default:
				vb.soffs = i
				vb.V.Set(i, i)
				vb.state = viaProto
				continue
			}
		case viaProto:
			if c == '/' {
				vb.Proto.Set(vb.soffs, i)
				vb.soffs = i + 1
				vb.state = viaProtoSlash
			} else if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
				return i, ErrHdrBadChar
			}
		case viaProtoSlash:
			if c == '/' {
				vb.ProtoVer.Set(vb.soffs, i)
				vb.soffs = i + 1
				vb.state = viaVerSlash
			} else if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
				return i, ErrHdrBadChar
			}
		case viaVerSlash:
			switch {
			case c == ' ' || c == '\t':
				vb.Transport.Set(vb.soffs, i)
				i = skipWS(buf, i)
				vb.soffs = i
				vb.state = viaHostStart
				continue
			case c == '\r' || c == '\n':
				return i, ErrHdrBadChar
			}
		case viaHostStart:
			switch c {
			case '[':
				vb.soffs = i + 1
				vb.IPv6 = true
				vb.state = viaHost6
			case ' ', '\t', '\r', '\n':
				return i, ErrHdrBadChar
			default:
				vb.soffs = i
				vb.state = viaHost
				continue
			}
		case viaHost6:
			if c == ']' {
				vb.Host.Set(vb.soffs, i)
				vb.state = viaHostEnd
			} else if c == '\r' || c == '\n' {
				return i, ErrHdrBadChar
			}
		case viaHost:
			switch c {
			case ':':
				vb.Host.Set(vb.soffs, i)
				vb.soffs = i + 1
				vb.state = viaPort
			case ';', ',', ' ', '\t', '\r', '\n':
				vb.Host.Set(vb.soffs, i)
				vb.V.Extend(i)
				vb.state = viaParamStart
				continue
			}
		case viaHostEnd:
			switch c {
			case ':':
				vb.soffs = i + 1
				vb.state = viaPort
			case ';', ',', ' ', '\t', '\r', '\n':
				vb.V.Extend(i)
				vb.state = viaParamStart
				continue
			default:
				return i, ErrHdrBadChar
			}
		case viaPort:
			switch {
			case c >= '0' && c <= '9':
				v := vb.PortNo*10 + uint16(c-'0')
				if v < vb.PortNo {
					return i, ErrHdrNumTooBig
				}
				vb.PortNo = v
			case c == ';' || c == ',' || c == ' ' || c == '\t' || c == '\r' || c == '\n':
				vb.Port.Set(vb.soffs, i)
				vb.V.Extend(i)
				vb.state = viaParamStart
				continue
			default:
				return i, ErrHdrBadChar
			}
		case viaParamStart:
			switch c {
			case ' ', '\t', '\r', '\n':
				n, crl, err = skipLWS(buf, i)
				if err == 0 {
					i = n
					continue
				}
				if err == ErrHdrEOH {
					i = n
					goto endOfHdr
				}
				if err == ErrHdrMoreBytes {
					i = n
					goto moreBytes
				}
				return n, err
			case ',':
				goto moreValues
			case ';':
				if vb.Params.Offs == 0 {
					vb.Params.Set(i+1, i+1)
				}
				vb.soffs = i + 1
				vb.state = viaParam
			default:
				return i, ErrHdrBadChar
			}
		case viaParam:
			var p PTokParam
			n, err = ParseTokenParam(buf, vb.soffs, &p,
				';', POptTokCommaTermF)
			switch err {
			case ErrHdrMoreBytes:
				i = n
				goto moreBytes
			case ErrHdrOk:
				// n points at ',': last param of this Via value
				setViaParamVal(buf, vb, &p)
				vb.Params.Extend(n)
				vb.V.Extend(n)
				if n < len(buf) && buf[n] == ',' {
					vb.state = viaFIN
					vb.soffs = 0
					return n + 1, ErrHdrMoreValues
				}
				vb.state = viaFIN
				vb.soffs = 0
				return n, ErrHdrOk
			case ErrHdrEOH:
				setViaParamVal(buf, vb, &p)
				if !p.All.Empty() {
					vb.Params.Extend(int(p.All.End()))
					vb.V.Extend(int(p.All.End()))
				}
				i = n
				goto endOfHdr
			case ErrHdrMoreValues:
				setViaParamVal(buf, vb, &p)
				vb.Params.Extend(n)
				vb.V.Extend(n)
				vb.soffs = n
				i = n
				continue
			default:
				return n, err
			}
		}
		i++
	}
moreBytes:
	return i, ErrHdrMoreBytes
moreValues:
	vb.state = viaFIN
	vb.soffs = 0
	return i + 1, ErrHdrMoreValues
endOfHdr:
	vb.state = viaFIN
	vb.soffs = 0
	return i + crl, 0
}

func setViaParamVal(buf []byte, vb *PViaBody, p *PTokParam) {
	name := p.Name.Get(buf)
	branch := [...]byte{'b', 'r', 'a', 'n', 'c', 'h'}
	received := [...]byte{'r', 'e', 'c', 'e', 'i', 'v', 'e', 'd'}
	rport := [...]byte{'r', 'p', 'o', 'r', 't'}
	ttl := [...]byte{'t', 't', 'l'}
	maddr := [...]byte{'m', 'a', 'd', 'd', 'r'}
	switch {
	case bytescase.CmpEq(name, branch[:]):
		vb.Branch = p.Val
	case bytescase.CmpEq(name, received[:]):
		vb.Received = p.Val
	case bytescase.CmpEq(name, rport[:]):
		vb.HasRPort = true
		vb.RPort = p.Val
	case bytescase.CmpEq(name, ttl[:]):
		vb.TTL = p.Val
	case bytescase.CmpEq(name, maddr[:]):
		vb.Maddr = p.Val
	}
}

// PVias holds the parsed Via header values for one or more Via
// headers, following the PContacts multi-value aggregation pattern.
type PVias struct {
	Vals []PViaBody
	N    int
	HNo  int
	last PViaBody
}

// VNo returns the number of parsed Via values that fit in Vals.
func (v *PVias) VNo() int {
	if v.N > len(v.Vals) {
		return len(v.Vals)
	}
	return v.N
}

// GetVia returns the requested parsed Via value, or nil.
func (v *PVias) GetVia(n int) *PViaBody {
	if v.VNo() > n {
		return &v.Vals[n]
	}
	return nil
}

// Empty returns true if no Via values have been parsed.
func (v *PVias) Empty() bool {
	return v.N == 0
}

// Parsed returns true if at least one Via value was parsed.
func (v *PVias) Parsed() bool {
	return v.N > 0
}

// Reset re-initializes the parsed values.
func (v *PVias) Reset() {
	for i := 0; i < v.VNo(); i++ {
		v.Vals[i].Reset()
	}
	vals := v.Vals
	*v = PVias{}
	v.Vals = vals
}

// Init initializes the Via values from a caller-supplied array.
func (v *PVias) Init(valbuf []PViaBody) {
	v.Vals = valbuf
}

// ParseAllViaValues parses all the comma-separated values of a Via
// header found at offs in buf, appending them to v.
func ParseAllViaValues(buf []byte, offs int, v *PVias) (int, ErrorHdr) {
	var next int
	var err ErrorHdr
	var pv *PViaBody

	if v.N >= len(v.Vals) && v.last.Parsed() {
		v.last.Reset()
	}
	for {
		if v.N < len(v.Vals) {
			pv = &v.Vals[v.N]
		} else {
			pv = &v.last
		}
		next, err = ParseViaVal(buf, offs, pv)
		switch err {
		case 0, ErrHdrMoreValues:
			v.N++
			if err == ErrHdrMoreValues {
				offs = next
				if pv == &v.last {
					v.last.Reset()
				}
				continue
			}
		case ErrHdrMoreBytes:
			// do nothing
		default:
			if pv == &v.last {
				v.last.Reset()
			}
		}
		break
	}
	return next, err
}
