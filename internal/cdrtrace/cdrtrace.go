// Package cdrtrace provides the optional slog-based diagnostics hook a Cdr
// cursor attaches via SetLogger: structured keys, no required global
// state, scoped down to what a codec trace line needs: position, direction,
// and the wire concept being read or written.
package cdrtrace

import (
	"io"
	"log/slog"
	"os"
)

// Standard field keys for codec trace events. A codec trace line never
// carries request/auth/share context, only cursor state.
const (
	KeyOffset    = "offset"     // absolute byte offset at the time of the event
	KeyOrigin    = "origin"     // current alignment origin
	KeyWidth     = "width"      // primitive width in bytes, where applicable
	KeyMemberID  = "member_id"  // member identity for framing events
	KeyEncoding  = "encoding"   // active member-framing algorithm
	KeyHeaderLen = "header_len" // header byte count chosen for a member
)

// New builds a debug-level logger suitable for attaching to a Cdr via
// SetLogger. Callers that already have a configured *slog.Logger should
// just pass it directly instead; New exists for standalone use (tests,
// small tools) that need no further logger configuration.
func New(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
