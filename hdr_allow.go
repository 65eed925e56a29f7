// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

// PAllowBody holds one fully or partially parsed value (one method
// token) of an Allow header.
type PAllowBody struct {
	Method SIPMethod
	Name   PField // raw method token, as found on the wire
	V      PField // same as Name, kept for symmetry with the other headers
	PAllowIState
}

// Reset re-initializes ab.
func (ab *PAllowBody) Reset() {
	*ab = PAllowBody{}
}

// Empty returns true if nothing has been parsed yet.
func (ab *PAllowBody) Empty() bool {
	return ab.state == alInit
}

// Parsed returns true if the value is fully parsed.
func (ab *PAllowBody) Parsed() bool {
	return ab.state == alFIN
}

// PAllowIState contains ParseAllowVal internal state (private).
type PAllowIState struct {
	state uint8
	soffs int
}

const (
	alInit uint8 = iota
	alMethod
	alMethodLWS
	alFIN
)

// ParseAllowVal parses one value (method token) of an Allow header:
// Method *( COMMA Method ). buf[offs:] should point just after the ':'
// (for the first value) or just after the separating ',' (for
// subsequent values). It returns ErrHdrMoreValues when a comma
// separates this value from the next one, same convention as Contact
// and Via.
func ParseAllowVal(buf []byte, offs int, ab *PAllowBody) (int, ErrorHdr) {
	if ab.state == alFIN {
		return offs, 0
	}
	i := offs
	var n, crl int
	var err ErrorHdr
	for i < len(buf) {
		c := buf[i]
		switch ab.state {
		case alInit:
			switch {
			case c == ' ' || c == '\t' || c == '\r' || c == '\n':
				n, crl, err = skipLWS(buf, i)
				if err == 0 {
					i = n
					continue
				}
				if err == ErrHdrEOH {
					goto endOfHdr
				}
				if err == ErrHdrMoreBytes {
					i = n
					goto moreBytes
				}
				return n, err
			case c == ',':
				goto moreValues
			case tokAllowedChar(c):
				ab.soffs = i
				ab.state = alMethod
			default:
				return i, ErrHdrBadChar
			}
		case alMethod:
			switch {
			case c == ',':
				ab.Name.Set(ab.soffs, i)
				ab.V = ab.Name
				ab.Method = GetMethodNo(ab.Name.Get(buf))
				goto moreValues
			case c == ' ' || c == '\t' || c == '\r' || c == '\n':
				ab.Name.Set(ab.soffs, i)
				ab.V = ab.Name
				ab.Method = GetMethodNo(ab.Name.Get(buf))
				ab.state = alMethodLWS
				continue
			case tokAllowedChar(c):
				// stay
			default:
				return i, ErrHdrBadChar
			}
		case alMethodLWS:
			switch {
			case c == ' ' || c == '\t' || c == '\r' || c == '\n':
				n, crl, err = skipLWS(buf, i)
				if err == 0 {
					i = n
					continue
				}
				if err == ErrHdrEOH {
					goto endOfHdr
				}
				if err == ErrHdrMoreBytes {
					i = n
					goto moreBytes
				}
				return n, err
			case c == ',':
				goto moreValues
			default:
				return i, ErrHdrBadChar
			}
		}
		i++
	}
moreBytes:
	return i, ErrHdrMoreBytes
moreValues:
	ab.state = alFIN
	ab.soffs = 0
	return i + 1, ErrHdrMoreValues
endOfHdr:
	switch ab.state {
	case alMethod:
		ab.Name.Set(ab.soffs, i)
		ab.V = ab.Name
		ab.Method = GetMethodNo(ab.Name.Get(buf))
	case alMethodLWS:
		// do nothing, already set
	case alInit:
		return n + crl, ErrHdrBad
	}
	ab.state = alFIN
	ab.soffs = 0
	return n + crl, 0
}

// PAllows holds the parsed values of one or more Allow headers.
type PAllows struct {
	Vals []PAllowBody
	N    int
	HNo  int
	last PAllowBody
}

// VNo returns the number of parsed values that fit in Vals.
func (a *PAllows) VNo() int {
	if a.N > len(a.Vals) {
		return len(a.Vals)
	}
	return a.N
}

// GetAllow returns the requested parsed value, or nil.
func (a *PAllows) GetAllow(n int) *PAllowBody {
	if a.VNo() > n {
		return &a.Vals[n]
	}
	return nil
}

// Empty returns true if no values have been parsed.
func (a *PAllows) Empty() bool {
	return a.N == 0
}

// Parsed returns true if at least one value was parsed.
func (a *PAllows) Parsed() bool {
	return a.N > 0
}

// Reset re-initializes the parsed values.
func (a *PAllows) Reset() {
	for i := 0; i < a.VNo(); i++ {
		a.Vals[i].Reset()
	}
	v := a.Vals
	*a = PAllows{}
	a.Vals = v
}

// Init initializes the values from a caller-supplied array.
func (a *PAllows) Init(valbuf []PAllowBody) {
	a.Vals = valbuf
}

// Has returns true if method m is present among the parsed values.
func (a *PAllows) Has(m SIPMethod) bool {
	for i := 0; i < a.VNo(); i++ {
		if a.Vals[i].Method == m {
			return true
		}
	}
	return false
}

// ParseAllAllowValues parses all the comma-separated values of an
// Allow header found at offs in buf, appending them to a.
func ParseAllAllowValues(buf []byte, offs int, a *PAllows) (int, ErrorHdr) {
	var next int
	var err ErrorHdr
	var pa *PAllowBody

	if a.N >= len(a.Vals) && a.last.Parsed() {
		a.last.Reset()
	}
	for {
		if a.N < len(a.Vals) {
			pa = &a.Vals[a.N]
		} else {
			pa = &a.last
		}
		next, err = ParseAllowVal(buf, offs, pa)
		switch err {
		case 0, ErrHdrMoreValues:
			a.N++
			if err == ErrHdrMoreValues {
				offs = next
				if pa == &a.last {
					a.last.Reset()
				}
				continue
			}
		case ErrHdrMoreBytes:
			// do nothing
		default:
			if pa == &a.last {
				a.last.Reset()
			}
		}
		break
	}
	return next, err
}
