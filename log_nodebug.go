// Copyright 2019-2026 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

//go:build nodebug

package sipparser

// logging functions, no debug version (empty, do nothing functions)

func init() {
	BuildTags = append(BuildTags, "nodebug")
}

// DBGon returns false: debug logging is compiled out.
func DBGon() bool {
	return false
}

// DBG is a shorthand for logging a debug message (no-op in this build).
func DBG(f string, a ...interface{}) {
}
