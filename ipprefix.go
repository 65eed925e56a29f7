// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

// IP4Prefix checks if a []byte string starts with an ipv4 address.
// It will also parse the ip address and return it in dst (if not nil).
// It returns true if the string starts with an ipv4 address and false if
// not; an offset pointing where the parsing has stopped (if the whole
// input buffer was parsed it will be equal to len(buf)) and an error
// value which can be used to get more information about the point where
// the parsing stopped.
// The error values are:
//   - ErrHdrOk  -- the input buffer contains only an ip (parse ok)
//   - ErrHdrMoreValues -- candidate ip parsed, but it's followed by
//     a possible another IP (ends in a digit).
//   - ErrHdrBadChar -- candidate ip parsed, but it's followed by
//     another non-numeric char
//   - ErrHdrMoreBytes  -- input buffer exhausted without finishing parsing
//     the ip.
//   - ErrHdrBad -- buf[] does not start with an ip address
//
// It tells an IPv4 literal apart from a hostname without allocating or
// running a full resolver; the Via and SIP-URI host parsers do not call
// it.
func IP4Prefix(buf []byte, dst []byte) (bool, int, ErrorHdr) {
	var ip [4]byte
	pos := 0
	digits := 0
	o := 0
	for ; o < len(buf); o++ {
		if buf[o] <= '9' && buf[o] >= '0' {
			digits++
			if digits > 3 || (uint(ip[pos])*10+uint(buf[o]-'0') > 255) {
				// too many digits or value out of range
				if pos < 3 {
					// too few dots => invalid input
					return false, o, ErrHdrBad
				}
				if len(dst) > 0 {
					copy(dst, ip[:])
				}
				return true, o, ErrHdrMoreValues // possible more concat. IPs
			}
			ip[pos] = ip[pos]*10 + buf[o] - '0'
		} else if buf[o] == '.' {
			if digits == 0 {
				return false, o, ErrHdrBad
			}
			pos++
			if pos > 3 {
				if len(dst) > 0 {
					copy(dst, ip[:])
				}
				return true, o, ErrHdrBadChar // ip found, but bad char follows
			}
			digits = 0
			ip[pos] = 0
		} else {
			if pos < 3 || digits == 0 {
				return false, o, ErrHdrBad
			}
			if len(dst) > 0 {
				copy(dst, ip[:])
			}
			return true, o, ErrHdrBadChar // ip found, followed by bad char
		}
	}
	if pos < 3 || digits == 0 {
		return false, o, ErrHdrMoreBytes
	}
	if len(dst) > 0 {
		copy(dst, ip[:])
	}
	return true, o, ErrHdrOk
}
