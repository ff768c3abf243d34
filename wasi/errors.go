package wasi

import (
	"errors"
	"fmt"

	"github.com/pgavlin/vwasi/fs"
)

// ExitError is the abrupt-termination signal raised by proc_exit. It unwinds
// the guest call as a panic and must be recovered by the driving loop; Catch
// is the supported way to do that.
type ExitError struct {
	code int
}

// Code returns the guest's exit code.
func (e *ExitError) Code() int {
	return e.code
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// SignalError is raised by proc_raise. Guests are not expected to raise
// signals; the driving loop should treat this as fatal.
type SignalError struct {
	Signal uint8
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("signal %d raised", e.Signal)
}

// SockError is raised by any socket operation. Sandboxed guests must not
// assume socket access, so these calls are fatal rather than reportable.
type SockError struct {
	Op string
}

func (e *SockError) Error() string {
	return fmt.Sprintf("%s: sockets are not available to sandboxed guests", e.Op)
}

// Catch invokes f and converts the termination signals raised by proc_exit,
// proc_raise, and the socket family into ordinary errors. Any other panic is
// re-raised. A nil return means f completed normally; an *ExitError return
// carries the guest's exit code, including 0.
func Catch(f func()) (err error) {
	defer func() {
		if x := recover(); x != nil {
			switch e := x.(type) {
			case *ExitError:
				err = e
			case *SignalError:
				err = e
			case *SockError:
				err = e
			default:
				panic(x)
			}
		}
	}()
	f()
	return nil
}

// fsErrno translates a virtual filesystem error into its WASI error code.
func fsErrno(err error) Errno {
	switch {
	case err == nil:
		return ErrnoSuccess
	case errors.Is(err, fs.ErrNotFound):
		return ErrnoNoent
	case errors.Is(err, fs.ErrExists):
		return ErrnoExist
	case errors.Is(err, fs.ErrNotDir):
		return ErrnoNotdir
	case errors.Is(err, fs.ErrIsDir):
		return ErrnoIsdir
	case errors.Is(err, fs.ErrNotEmpty):
		return ErrnoNotempty
	case errors.Is(err, fs.ErrReadOnly):
		return ErrnoPerm
	case errors.Is(err, fs.ErrPerm):
		return ErrnoPerm
	case errors.Is(err, fs.ErrInvalidPath):
		return ErrnoInval
	case errors.Is(err, fs.ErrAbsolutePath), errors.Is(err, fs.ErrPathEscape):
		return ErrnoNotcapable
	case errors.Is(err, fs.ErrNameTooLong):
		return ErrnoNametoolong
	default:
		return ErrnoIo
	}
}
