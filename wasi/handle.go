package wasi

import (
	"time"

	"github.com/pgavlin/vwasi/fs"
)

// Dirent is one decoded directory entry as reported by Readdir.
type Dirent struct {
	// Next is the cookie that resumes enumeration after this entry.
	Next uint64
	// Ino is the entry's inode number.
	Ino uint64
	// Type is the entry's file type.
	Type Filetype
	// Name is the entry's name. "." and ".." are always enumerated first.
	Name string
}

// Handle is an open file description. Implementations support the subset of
// operations that make sense for their kind and inherit failure defaults for
// the rest from unsupportedHandle. Methods report errors as WASI error codes
// rather than Go errors; ErrnoSuccess means the operation succeeded.
//
// Handles are not safe for concurrent use. The dispatcher serializes all
// access on behalf of a single-threaded guest.
type Handle interface {
	// Fdstat returns the descriptor's type, flags, and default rights.
	Fdstat() (Fdstat, Errno)
	// Filestat returns the attributes of the underlying file.
	Filestat() (Filestat, Errno)
	// SetFlags replaces the descriptor's fdflags.
	SetFlags(flags Fdflags) Errno
	// SetSize truncates or extends the underlying file.
	SetSize(size uint64) Errno
	// SetTimes adjusts the underlying file's timestamps. Nil leaves a
	// timestamp untouched.
	SetTimes(atim, mtim *time.Time) Errno
	// Advise provides usage hints for a region of the file.
	Advise(offset, length uint64, advice uint8) Errno
	// Allocate ensures the file covers [offset, offset+length).
	Allocate(offset, length uint64) Errno

	// Read reads from the current position, advancing it.
	Read(p []byte) (uint32, Errno)
	// Write writes at the current position, advancing it. Append-mode
	// descriptors write at end-of-file regardless of position.
	Write(p []byte) (uint32, Errno)
	// Pread reads at offset without touching the position.
	Pread(p []byte, offset uint64) (uint32, Errno)
	// Pwrite writes at offset without touching the position.
	Pwrite(p []byte, offset uint64) (uint32, Errno)
	// Seek moves the position and returns the new absolute offset.
	Seek(offset int64, whence uint8) (uint64, Errno)
	// Tell returns the current position.
	Tell() (uint64, Errno)

	// Readdir returns the entry selected by cookie, or nil with
	// ErrnoSuccess once the directory is exhausted.
	Readdir(cookie uint64) (*Dirent, Errno)

	// Sync and Datasync flush state. The virtual filesystem has no backing
	// store, so both succeed trivially where supported.
	Sync() Errno
	Datasync() Errno
	// Close releases the handle. Closing is idempotent at the table layer;
	// a handle's Close is called at most once.
	Close() Errno

	// Preopen reports the guest-visible name of a pre-opened directory.
	Preopen() (string, bool)

	// PathOpen opens path relative to this directory handle.
	PathOpen(path fs.Path, oflags Oflags, fdflags Fdflags) (Handle, Errno)
	// PathCreateDirectory creates a directory at path.
	PathCreateDirectory(path fs.Path) Errno
	// PathFilestat returns the attributes of the node at path.
	PathFilestat(path fs.Path) (Filestat, Errno)
	// PathSetTimes adjusts the timestamps of the node at path.
	PathSetTimes(path fs.Path, atim, mtim *time.Time) Errno
	// PathRemoveDirectory removes the empty directory at path.
	PathRemoveDirectory(path fs.Path) Errno
	// PathUnlinkFile removes the non-directory entry at path.
	PathUnlinkFile(path fs.Path) Errno
	// Dir exposes the backing directory for cross-descriptor operations
	// such as link and rename.
	Dir() (*fs.Directory, Errno)

	// PollRead reports whether a read would make progress and, if so, how
	// many bytes are available and any stream flags.
	PollRead() (nbytes uint64, flags Eventrwflags, ready bool)
	// PollWrite reports whether a write would make progress.
	PollWrite() (nbytes uint64, flags Eventrwflags, ready bool)
}

// unsupportedHandle fails every operation with the error code appropriate to
// a descriptor of the wrong kind. Concrete handles embed it and override what
// they actually support.
type unsupportedHandle struct{}

func (unsupportedHandle) Fdstat() (Fdstat, Errno) {
	return Fdstat{}, ErrnoNotsup
}

func (unsupportedHandle) Filestat() (Filestat, Errno) {
	return Filestat{}, ErrnoNotsup
}

func (unsupportedHandle) SetFlags(flags Fdflags) Errno {
	return ErrnoNotsup
}

func (unsupportedHandle) SetSize(size uint64) Errno {
	return ErrnoNotsup
}

func (unsupportedHandle) SetTimes(atim, mtim *time.Time) Errno {
	return ErrnoNotsup
}

func (unsupportedHandle) Advise(offset, length uint64, advice uint8) Errno {
	return ErrnoNotsup
}

func (unsupportedHandle) Allocate(offset, length uint64) Errno {
	return ErrnoNotsup
}

func (unsupportedHandle) Read(p []byte) (uint32, Errno) {
	return 0, ErrnoNotsup
}

func (unsupportedHandle) Write(p []byte) (uint32, Errno) {
	return 0, ErrnoNotsup
}

func (unsupportedHandle) Pread(p []byte, offset uint64) (uint32, Errno) {
	return 0, ErrnoNotsup
}

func (unsupportedHandle) Pwrite(p []byte, offset uint64) (uint32, Errno) {
	return 0, ErrnoNotsup
}

func (unsupportedHandle) Seek(offset int64, whence uint8) (uint64, Errno) {
	return 0, ErrnoSpipe
}

func (unsupportedHandle) Tell() (uint64, Errno) {
	return 0, ErrnoSpipe
}

func (unsupportedHandle) Readdir(cookie uint64) (*Dirent, Errno) {
	return nil, ErrnoNotdir
}

func (unsupportedHandle) Sync() Errno {
	return ErrnoSuccess
}

func (unsupportedHandle) Datasync() Errno {
	return ErrnoSuccess
}

func (unsupportedHandle) Close() Errno {
	return ErrnoSuccess
}

func (unsupportedHandle) Preopen() (string, bool) {
	return "", false
}

func (unsupportedHandle) PathOpen(path fs.Path, oflags Oflags, fdflags Fdflags) (Handle, Errno) {
	return nil, ErrnoNotdir
}

func (unsupportedHandle) PathCreateDirectory(path fs.Path) Errno {
	return ErrnoNotdir
}

func (unsupportedHandle) PathFilestat(path fs.Path) (Filestat, Errno) {
	return Filestat{}, ErrnoNotdir
}

func (unsupportedHandle) PathSetTimes(path fs.Path, atim, mtim *time.Time) Errno {
	return ErrnoNotdir
}

func (unsupportedHandle) PathRemoveDirectory(path fs.Path) Errno {
	return ErrnoNotdir
}

func (unsupportedHandle) PathUnlinkFile(path fs.Path) Errno {
	return ErrnoNotdir
}

func (unsupportedHandle) Dir() (*fs.Directory, Errno) {
	return nil, ErrnoNotdir
}

func (unsupportedHandle) PollRead() (uint64, Eventrwflags, bool) {
	return 0, 0, true
}

func (unsupportedHandle) PollWrite() (uint64, Eventrwflags, bool) {
	return 0, 0, true
}
