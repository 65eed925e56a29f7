// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

// PContacts holds the parsed Contact header values for one or more
// Contact headers (all the contacts in the message that fit in the
// parsed value array).
type PContacts struct {
	Vals       []PFromBody // parsed contacts, min(N, len(Vals))
	N          int         // no of contact _values_ found, can be > len(Vals)
	HNo        int         // no of different Contact: _headers_ found
	MaxExpires uint32
	MinExpires uint32
	LastHVal   PField    // value part of the last contact _header_ parsed
	last       PFromBody // used if no space in Vals, for keeping state
	first      PFromBody // even if Vals is nil, remember the first value
}

// VNo returns the number of parsed contact values that fit in Vals.
func (c *PContacts) VNo() int {
	if c.N > len(c.Vals) {
		return len(c.Vals)
	}
	return c.N
}

// GetContact returns the requested parsed contact body, or nil.
func (c *PContacts) GetContact(n int) *PFromBody {
	if c.VNo() > n {
		return &c.Vals[n]
	}
	if c.Empty() {
		return nil
	}
	if c.N == (n + 1) {
		return &c.last
	}
	if n == 0 {
		return &c.first
	}
	return nil
}

// More returns true if there are more contacts that did not fit in Vals.
func (c *PContacts) More() bool {
	return c.N > len(c.Vals)
}

// Reset re-initializes the parsed values.
func (c *PContacts) Reset() {
	for i := 0; i < c.VNo(); i++ {
		c.Vals[i].Reset()
	}
	v := c.Vals
	*c = PContacts{}
	c.Vals = v
}

// Init initializes the contact values from a caller-supplied array.
func (c *PContacts) Init(valbuf []PFromBody) {
	c.Vals = valbuf
}

// Empty returns true if no contact values have been parsed.
func (c *PContacts) Empty() bool {
	return c.N == 0
}

// Parsed returns true if at least one contact value was parsed.
func (c *PContacts) Parsed() bool {
	return c.N > 0
}

// ParseOneContact parses the content of one Contact value found at
// offset offs in buf. See ParseNameAddrPVal for details.
func ParseOneContact(buf []byte, offs int, pfrom *PFromBody) (int, ErrorHdr) {
	return ParseNameAddrPVal(HdrContact, buf, offs, pfrom)
}

// ParseAllContactValues parses all the comma-separated values of a
// Contact header found at offs in buf, appending them to c. It returns
// ErrHdrMoreBytes if more data is needed.
func ParseAllContactValues(buf []byte, offs int, c *PContacts) (int, ErrorHdr) {
	var next int
	var err ErrorHdr
	var pf *PFromBody

	if c.N >= len(c.Vals) {
		if c.last.Parsed() {
			c.last.Reset()
		}
	}
	for {
		if c.N < len(c.Vals) {
			pf = &c.Vals[c.N]
		} else {
			pf = &c.last
		}
		next, err = ParseOneContact(buf, offs, pf)
		switch err {
		case 0, ErrHdrMoreValues:
			if c.N == 0 {
				c.LastHVal = pf.V
				c.MinExpires = ^uint32(0)
			} else {
				c.LastHVal.Extend(int(pf.V.Offs + pf.V.Len))
			}
			c.N++
			if c.MaxExpires < pf.Expires {
				c.MaxExpires = pf.Expires
			}
			if c.MinExpires > pf.Expires {
				c.MinExpires = pf.Expires
			}
			if c.N == 1 && len(c.Vals) == 0 {
				c.first = *pf
			}
			if err == ErrHdrMoreValues {
				offs = next
				if pf == &c.last {
					c.last.Reset()
				}
				continue
			}
		case ErrHdrMoreBytes:
			// do nothing, just for readability
		default:
			if pf == &c.last {
				c.last.Reset()
			}
		}
		break
	}
	return next, err
}
