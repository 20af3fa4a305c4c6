// SPDX-License-Identifier: MPL-2.0

// Package precheck validates the host and the supplied source trees before
// a benchmark run starts.
//
// hyperfine runs for hours with little debugging output on failure, so as
// many common failure causes as possible are caught up front: missing or
// implausible source trees, a dirty kernel tree, a kernel too old for the
// matrix, a missing timing tool. All checks are cheap existence and content
// probes; each failure is an actionable error naming the fix.
package precheck
