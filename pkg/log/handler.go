package log

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// CauseAttrKey holds the Go type of the innermost error, e.g.
// "*errors.FileNotFoundError".
const CauseAttrKey = "error.cause"

// ErrFmtHandler decorates records that carry an error under ErrAttrKey with
// the innermost stack trace recorded by cockroachdb/errors and the type of
// the root cause. Records without an error pass through unchanged.
type ErrFmtHandler struct {
	next slog.Handler
}

// WrapByErrFmtHandler returns next wrapped by an ErrFmtHandler.
func WrapByErrFmtHandler(next slog.Handler) slog.Handler {
	return &ErrFmtHandler{next: next}
}

func (h *ErrFmtHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.next.Enabled(ctx, l)
}

func (h *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key != ErrAttrKey {
			return true
		}
		err, _ = attr.Value.Any().(error)
		return false
	})
	if err == nil {
		return h.next.Handle(ctx, r)
	}

	r.AddAttrs(slog.String(CauseAttrKey, fmt.Sprintf("%T", errors.UnwrapAll(err))))
	if stack := stacktrace(err); stack != "" {
		r.AddAttrs(slog.String(StacktraceAttrKey, stack))
	}
	return h.next.Handle(ctx, r)
}

func (h *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{next: h.next.WithAttrs(attrs)}
}

func (h *ErrFmtHandler) WithGroup(g string) slog.Handler {
	return &ErrFmtHandler{next: h.next.WithGroup(g)}
}

// stacktrace returns the innermost stack attached to err. Details are
// listed from the outermost wrapper inwards.
func stacktrace(err error) string {
	var stack string
	for _, payload := range errors.GetAllSafeDetails(err) {
		if len(payload.SafeDetails) > 0 && payload.SafeDetails[0] != "" {
			stack = payload.SafeDetails[0]
		}
	}
	return stack
}
