package argman

import (
	"errors"

	"go.uber.org/zap"

	"github.com/numlink/numlink"
	"github.com/numlink/numlink/errman"
)

// LibraryFunc is the shape of an extension entry point body.
type LibraryFunc func(m *Manager) error

// Run executes fn at a call boundary and maps its outcome to the host's
// integer return contract: nil maps to the NoError code, a registry error to
// its id, and any other error to FunctionError. A panic inside fn is
// reported as FunctionError rather than unwinding into the host.
func Run(ld *numlink.LibraryData, args []numlink.Argument, res *numlink.Argument, fn LibraryFunc) (code int) {
	noError := errman.Named(errman.NoError).ID()
	fallback := errman.Named(errman.FunctionError).ID()

	defer func() {
		if r := recover(); r != nil {
			numlink.Logger().Error("panic in library function", zap.Any("panic", r))
			code = fallback
		}
	}()

	m, err := NewManager(ld, args, res)
	if err != nil {
		return codeFor(err, fallback)
	}
	if err := fn(m); err != nil {
		numlink.Logger().Debug("library function failed", zap.Error(err))
		return codeFor(err, fallback)
	}
	return noError
}

func codeFor(err error, fallback int) int {
	var e *errman.Error
	if errors.As(err, &e) {
		return e.ID()
	}
	return fallback
}
