// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package sipparser

// logging functions

import (
	"github.com/intuitivelabs/slog"
)

// Log is the generic log.
var Log slog.Log = slog.New(slog.LERR, slog.LbackTraceL|slog.LlocInfoL,
	slog.LStdErr)

// BuildTags records which logging build tag was compiled in (debug or
// nodebug), for diagnostics.
var BuildTags []string

// WARN is a shorthand for logging a warning message.
func WARN(f string, a ...interface{}) {
	Log.LLog(slog.LWARN, 1, "WARNING: sipparser: ", f, a...)
}

// ERR is a shorthand for logging an error message.
func ERR(f string, a ...interface{}) {
	Log.LLog(slog.LERR, 1, "ERROR: sipparser: ", f, a...)
}

// BUG is a shorthand for logging a bug message (reached an internal
// state that should not be reachable).
func BUG(f string, a ...interface{}) {
	Log.LLog(slog.LBUG, 1, "BUG: sipparser: ", f, a...)
}
