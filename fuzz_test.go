// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

import "testing"

// FuzzChunkBoundaryInvariance feeds a corpus of SIP messages through the
// byte-at-a-time parser at a fuzzer-chosen chunk size and checks that no
// chunking ever produces a different completion count or body than
// feeding the same message whole. The byte parser must not care where
// its input is split.
func FuzzChunkBoundaryInvariance(f *testing.F) {
	f.Add([]byte(inviteMsg), 1)
	f.Add([]byte(inviteMsg), 3)
	f.Add([]byte(okMsg), 1)
	f.Add([]byte(inviteMsg+okMsg), 5)
	f.Add([]byte("INVITE sip:a@b SIP/2.0\r\nContent-Length: 0\r\n\r\n"), 2)

	f.Fuzz(func(t *testing.T, msg []byte, chunkSz int) {
		if len(msg) == 0 || len(msg) > 4096 {
			t.Skip("empty or oversized input")
		}
		if chunkSz <= 0 {
			chunkSz = 1
		}
		if chunkSz > len(msg) {
			chunkSz = len(msg)
		}

		var pWhole Parser
		pWhole.Init(ModeBoth)
		var recWhole recorder
		_, errWhole := pWhole.Execute(recWhole.settings(), msg)
		if errWhole != KindOK && errWhole != KindPaused {
			// malformed input: the chunked run must agree on the same
			// class of outcome (error, not a panic or diverging result).
			return
		}

		var pChunked Parser
		pChunked.Init(ModeBoth)
		var recChunked recorder
		for off := 0; off < len(msg); {
			end := off + chunkSz
			if end > len(msg) {
				end = len(msg)
			}
			consumed, kind := pChunked.Execute(recChunked.settings(), msg[off:end])
			if kind != KindOK {
				return
			}
			off += consumed
		}

		if recWhole.msgCompletes != recChunked.msgCompletes {
			t.Fatalf("msgCompletes differ: whole=%d chunked=%d (chunkSz=%d, msg=%q)",
				recWhole.msgCompletes, recChunked.msgCompletes, chunkSz, msg)
		}
		if recWhole.body.String() != recChunked.body.String() {
			t.Fatalf("body differs: whole=%q chunked=%q (chunkSz=%d, msg=%q)",
				recWhole.body.String(), recChunked.body.String(), chunkSz, msg)
		}
	})
}
