package wasi

import (
	"io"
	"sync"

	"github.com/pgavlin/vwasi/fs"
)

// deviceFdstat is the descriptor shape shared by every character device.
func deviceFdstat(flags Fdflags) Fdstat {
	return Fdstat{
		Filetype:   FiletypeCharacterDevice,
		Flags:      flags,
		RightsBase: FileRights,
	}
}

func deviceFilestat() Filestat {
	return Filestat{Filetype: FiletypeCharacterDevice, Nlink: 1}
}

// ConsoleStdout is a write-only character device that delivers complete lines
// to a callback. Bytes past the last newline are buffered until the next
// write or until the handle is closed.
type ConsoleStdout struct {
	unsupportedHandle

	sink func(line string)
	buf  []byte
}

// NewConsole returns a line-buffered output device delivering lines, without
// their trailing newline, to sink.
func NewConsole(sink func(line string)) *ConsoleStdout {
	return &ConsoleStdout{sink: sink}
}

func (h *ConsoleStdout) Fdstat() (Fdstat, Errno) {
	return deviceFdstat(0), ErrnoSuccess
}

func (h *ConsoleStdout) Filestat() (Filestat, Errno) {
	return deviceFilestat(), ErrnoSuccess
}

func (h *ConsoleStdout) Write(p []byte) (uint32, Errno) {
	h.buf = append(h.buf, p...)
	for {
		nl := -1
		for i, b := range h.buf {
			if b == '\n' {
				nl = i
				break
			}
		}
		if nl < 0 {
			break
		}
		h.sink(string(h.buf[:nl]))
		h.buf = h.buf[nl+1:]
	}
	return uint32(len(p)), ErrnoSuccess
}

// Close flushes any buffered partial line.
func (h *ConsoleStdout) Close() Errno {
	if len(h.buf) != 0 {
		h.sink(string(h.buf))
		h.buf = nil
	}
	return ErrnoSuccess
}

// PollableStdin is a readable character device fed by the embedder. Pushed
// chunks queue until the guest reads them; an empty open stream reports
// ErrnoAgain rather than blocking, and readiness is visible to poll_oneoff.
//
// Push and CloseInput may be called from other goroutines; the wake callback
// lets an event loop re-enter the guest when new input arrives.
type PollableStdin struct {
	unsupportedHandle

	mu     sync.Mutex
	chunks [][]byte
	closed bool
	wake   func()
}

// NewPollableStdin returns an input device. wake, which may be nil, is
// invoked once per Push and once when the input side is closed.
func NewPollableStdin(wake func()) *PollableStdin {
	return &PollableStdin{wake: wake}
}

// Push queues a copy of p for the guest to read. Pushes after CloseInput are
// dropped.
func (h *PollableStdin) Push(p []byte) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.chunks = append(h.chunks, append([]byte(nil), p...))
	wake := h.wake
	h.mu.Unlock()

	if wake != nil {
		wake()
	}
}

// CloseInput marks end-of-input. Queued chunks remain readable; once they
// drain, reads report EOF.
func (h *PollableStdin) CloseInput() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	wake := h.wake
	h.mu.Unlock()

	if wake != nil {
		wake()
	}
}

func (h *PollableStdin) Fdstat() (Fdstat, Errno) {
	return deviceFdstat(FdflagNonblock), ErrnoSuccess
}

func (h *PollableStdin) Filestat() (Filestat, Errno) {
	return deviceFilestat(), ErrnoSuccess
}

func (h *PollableStdin) Read(p []byte) (uint32, Errno) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.chunks) == 0 {
		if h.closed {
			return 0, ErrnoSuccess
		}
		return 0, ErrnoAgain
	}

	n := copy(p, h.chunks[0])
	if n == len(h.chunks[0]) {
		h.chunks = h.chunks[1:]
	} else {
		h.chunks[0] = h.chunks[0][n:]
	}
	return uint32(n), ErrnoSuccess
}

func (h *PollableStdin) PollRead() (uint64, Eventrwflags, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var total uint64
	for _, c := range h.chunks {
		total += uint64(len(c))
	}
	if total > 0 {
		return total, 0, true
	}
	if h.closed {
		return 0, EventFdReadwriteHangup, true
	}
	return 0, 0, false
}

// Close releases the guest's handle. The input side is closed as well so a
// later Push does not accumulate unreadable data.
func (h *PollableStdin) Close() Errno {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	return ErrnoSuccess
}

// writerDevice is a write-only character device backed by an io.Writer.
type writerDevice struct {
	unsupportedHandle

	w io.Writer
}

// NewWriterDevice returns a character device that forwards writes to w.
func NewWriterDevice(w io.Writer) Handle {
	return &writerDevice{w: w}
}

func (h *writerDevice) Fdstat() (Fdstat, Errno) {
	return deviceFdstat(0), ErrnoSuccess
}

func (h *writerDevice) Filestat() (Filestat, Errno) {
	return deviceFilestat(), ErrnoSuccess
}

func (h *writerDevice) Write(p []byte) (uint32, Errno) {
	n, err := h.w.Write(p)
	if err != nil {
		return uint32(n), ErrnoIo
	}
	return uint32(n), ErrnoSuccess
}

// deviceDirectory is a synthetic pre-opened directory exposing a single
// write-only device file named "out". It lives outside any FS tree, so its
// entries carry the reserved ino 0.
type deviceDirectory struct {
	unsupportedHandle

	name string
	out  io.Writer
}

// NewDeviceDirectory returns a pre-opened capability named name whose only
// entry, "out", opens as a writer device over out.
func NewDeviceDirectory(name string, out io.Writer) Handle {
	return &deviceDirectory{name: name, out: out}
}

func (h *deviceDirectory) Fdstat() (Fdstat, Errno) {
	return Fdstat{
		Filetype:         FiletypeDirectory,
		RightsBase:       DirectoryRights,
		RightsInheriting: AllRights,
	}, ErrnoSuccess
}

func (h *deviceDirectory) Filestat() (Filestat, Errno) {
	return Filestat{Filetype: FiletypeDirectory, Nlink: 1}, ErrnoSuccess
}

func (h *deviceDirectory) Preopen() (string, bool) {
	return h.name, true
}

func (h *deviceDirectory) Readdir(cookie uint64) (*Dirent, Errno) {
	switch cookie {
	case 0:
		return &Dirent{Next: 1, Type: FiletypeDirectory, Name: "."}, ErrnoSuccess
	case 1:
		return &Dirent{Next: 2, Type: FiletypeDirectory, Name: ".."}, ErrnoSuccess
	case 2:
		return &Dirent{Next: 3, Type: FiletypeCharacterDevice, Name: "out"}, ErrnoSuccess
	default:
		return nil, ErrnoSuccess
	}
}

func (h *deviceDirectory) PathOpen(path fs.Path, oflags Oflags, fdflags Fdflags) (Handle, Errno) {
	if len(path.Components) != 1 || path.Components[0] != "out" || path.Dir {
		return nil, ErrnoNoent
	}
	return &writerDevice{w: h.out}, ErrnoSuccess
}
