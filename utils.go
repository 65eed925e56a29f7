// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

// skipLWS jumps over linear white space (including CRLF SP, the obs-fold
// production). It returns an offset pointing after the white space, or
// ErrHdrEOH and the CR offset/length if the end of header was found, or
// ErrHdrMoreBytes and a continuation offset if the input buffer was
// exhausted or too short to hold a complete CR/LF sequence. A CRLF that
// ends the buffer is reported as end of header (ErrHdrEOH): no fold
// continuation is looked for past the end of buf. It accepts CR SP
// or LF SP as well as a full CRLF SP.
func skipLWS(buf []byte, offs int) (int, int, ErrorHdr) {
	i := offs
	for ; i < len(buf); i++ {
		c := buf[i]
		switch c {
		case ' ', '\t':
			// do nothing
		case '\r', '\n':
			n, crl, err := skipCRLF(buf, i)
			if err == 0 {
				if n >= len(buf) {
					return i, crl, ErrHdrEOH
				}
				if buf[n] != ' ' && buf[n] != '\t' {
					return i, crl, ErrHdrEOH
				}
			} else {
				return n, crl, err
			}
			i = n
		default:
			return i, 0, ErrHdrOk
		}
	}
	return i, 0, ErrHdrMoreBytes
}

// skipCRLF tries to skip over a CRLF, CR or LF. It returns an offset
// immediately after the skipped part, its length (2 or 1) and an
// error. ErrHdrMoreBytes means there is not enough space in buf[offs:]
// to check for CRLF. It expects a CR or LF at buf[offs] (else
// ErrHdrNoCR is returned).
func skipCRLF(buf []byte, offs int) (int, int, ErrorHdr) {
	i := offs
	if i+1 >= len(buf) {
		if (i < len(buf)) && (buf[i] != '\r') && (buf[i] != '\n') {
			return i, 0, ErrHdrNoCR
		}
		return i, 0, ErrHdrMoreBytes
	}
	if buf[i] == '\r' {
		if buf[i+1] == '\n' {
			return i + 2, 2, ErrHdrOk
		}
		return i + 1, 1, ErrHdrOk
	} else if buf[i] == '\n' {
		return i + 1, 1, ErrHdrOk
	}
	return i, 0, ErrHdrNoCR
}

// skipWS jumps over white space (' ', '\t'), stopping at the first
// non-whitespace character, CR, LF or end of string.
func skipWS(buf []byte, offs int) int {
	for ; offs < len(buf) && (buf[offs] == ' ' || buf[offs] == '\t'); offs++ {
	}
	return offs
}

// skipToken jumps over non-white space, stopping at the first
// whitespace character, CR, LF or end of string.
func skipToken(buf []byte, offs int) int {
	for ; offs < len(buf) &&
		buf[offs] != ' ' &&
		buf[offs] != '\t' &&
		buf[offs] != '\r' &&
		buf[offs] != '\n'; offs++ {
	}
	return offs
}

// skipTokenDelim is like skipToken but also stops at delim.
func skipTokenDelim(buf []byte, offs int, delim byte) int {
	for ; offs < len(buf) &&
		buf[offs] != ' ' &&
		buf[offs] != '\t' &&
		buf[offs] != '\r' &&
		buf[offs] != '\n' &&
		buf[offs] != delim; offs++ {
	}
	return offs
}

// skipLine skips over an entire line terminated by CRLF, CR or LF.
func skipLine(buf []byte, offs int) (int, int, ErrorHdr) {
	for ; offs < len(buf) && buf[offs] != '\n' && buf[offs] != '\r'; offs++ {
	}
	return skipCRLF(buf, offs)
}

// isDigit reports whether c is an ASCII decimal digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isAlpha reports whether c is an ASCII letter.
func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
