// This file describes the wire-level subset of the [WASI] snapshot preview1
// interface: numeric assignments and the fixed little-endian layouts the
// dispatcher reads from and writes into guest linear memory.
//
// [WASI]: https://github.com/WebAssembly/WASI/

package wasi

import (
	"github.com/pgavlin/vwasi/mem"
)

type (
	pointer   = uint32
	size      = uint32
	filesize  = uint64
	filedelta = int64
	timestamp = uint64
	dircookie = uint64
	userdata  = uint64
	fd        = uint32
)

// Errno is a WASI error code. The zero value is success.
type Errno uint16

const (
	ErrnoSuccess        Errno = 0  // No error occurred.
	Errno2big           Errno = 1  // Argument list too long.
	ErrnoAcces          Errno = 2  // Permission denied.
	ErrnoAddrinuse      Errno = 3  // Address in use.
	ErrnoAddrnotavail   Errno = 4  // Address not available.
	ErrnoAfnosupport    Errno = 5  // Address family not supported.
	ErrnoAgain          Errno = 6  // Resource unavailable, or operation would block.
	ErrnoAlready        Errno = 7  // Connection already in progress.
	ErrnoBadf           Errno = 8  // Bad file descriptor.
	ErrnoBadmsg         Errno = 9  // Bad message.
	ErrnoBusy           Errno = 10 // Device or resource busy.
	ErrnoCanceled       Errno = 11 // Operation canceled.
	ErrnoChild          Errno = 12 // No child processes.
	ErrnoConnaborted    Errno = 13 // Connection aborted.
	ErrnoConnrefused    Errno = 14 // Connection refused.
	ErrnoConnreset      Errno = 15 // Connection reset.
	ErrnoDeadlk         Errno = 16 // Resource deadlock would occur.
	ErrnoDestaddrreq    Errno = 17 // Destination address required.
	ErrnoDom            Errno = 18 // Mathematics argument out of domain of function.
	ErrnoDquot          Errno = 19 // Reserved.
	ErrnoExist          Errno = 20 // File exists.
	ErrnoFault          Errno = 21 // Bad address.
	ErrnoFbig           Errno = 22 // File too large.
	ErrnoHostunreach    Errno = 23 // Host is unreachable.
	ErrnoIdrm           Errno = 24 // Identifier removed.
	ErrnoIlseq          Errno = 25 // Illegal byte sequence.
	ErrnoInprogress     Errno = 26 // Operation in progress.
	ErrnoIntr           Errno = 27 // Interrupted function.
	ErrnoInval          Errno = 28 // Invalid argument.
	ErrnoIo             Errno = 29 // I/O error.
	ErrnoIsconn         Errno = 30 // Socket is connected.
	ErrnoIsdir          Errno = 31 // Is a directory.
	ErrnoLoop           Errno = 32 // Too many levels of symbolic links.
	ErrnoMfile          Errno = 33 // File descriptor value too large.
	ErrnoMlink          Errno = 34 // Too many links.
	ErrnoMsgsize        Errno = 35 // Message too large.
	ErrnoMultihop       Errno = 36 // Reserved.
	ErrnoNametoolong    Errno = 37 // Filename too long.
	ErrnoNetdown        Errno = 38 // Network is down.
	ErrnoNetreset       Errno = 39 // Connection aborted by network.
	ErrnoNetunreach     Errno = 40 // Network unreachable.
	ErrnoNfile          Errno = 41 // Too many files open in system.
	ErrnoNobufs         Errno = 42 // No buffer space available.
	ErrnoNodev          Errno = 43 // No such device.
	ErrnoNoent          Errno = 44 // No such file or directory.
	ErrnoNoexec         Errno = 45 // Executable file format error.
	ErrnoNolck          Errno = 46 // No locks available.
	ErrnoNolink         Errno = 47 // Reserved.
	ErrnoNomem          Errno = 48 // Not enough space.
	ErrnoNomsg          Errno = 49 // No message of the desired type.
	ErrnoNoprotoopt     Errno = 50 // Protocol not available.
	ErrnoNospc          Errno = 51 // No space left on device.
	ErrnoNosys          Errno = 52 // Function not supported.
	ErrnoNotconn        Errno = 53 // The socket is not connected.
	ErrnoNotdir         Errno = 54 // Not a directory or a symbolic link to a directory.
	ErrnoNotempty       Errno = 55 // Directory not empty.
	ErrnoNotrecoverable Errno = 56 // State not recoverable.
	ErrnoNotsock        Errno = 57 // Not a socket.
	ErrnoNotsup         Errno = 58 // Not supported, or operation not supported on socket.
	ErrnoNotty          Errno = 59 // Inappropriate I/O control operation.
	ErrnoNxio           Errno = 60 // No such device or address.
	ErrnoOverflow       Errno = 61 // Value too large to be stored in data type.
	ErrnoOwnerdead      Errno = 62 // Previous owner died.
	ErrnoPerm           Errno = 63 // Operation not permitted.
	ErrnoPipe           Errno = 64 // Broken pipe.
	ErrnoProto          Errno = 65 // Protocol error.
	ErrnoProtonosupport Errno = 66 // Protocol not supported.
	ErrnoPrototype      Errno = 67 // Protocol wrong type for socket.
	ErrnoRange          Errno = 68 // Result too large.
	ErrnoRofs           Errno = 69 // Read-only file system.
	ErrnoSpipe          Errno = 70 // Invalid seek.
	ErrnoSrch           Errno = 71 // No such process.
	ErrnoStale          Errno = 72 // Reserved.
	ErrnoTimedout       Errno = 73 // Connection timed out.
	ErrnoTxtbsy         Errno = 74 // Text file busy.
	ErrnoXdev           Errno = 75 // Cross-device link.
	ErrnoNotcapable     Errno = 76 // Capabilities insufficient.
)

// Filetype is the type of a file descriptor or file.
type Filetype uint8

const (
	FiletypeUnknown         Filetype = 0
	FiletypeBlockDevice     Filetype = 1
	FiletypeCharacterDevice Filetype = 2
	FiletypeDirectory       Filetype = 3
	FiletypeRegularFile     Filetype = 4
	FiletypeSocketDgram     Filetype = 5
	FiletypeSocketStream    Filetype = 6
	FiletypeSymbolicLink    Filetype = 7
)

// Fdflags are file descriptor flags.
type Fdflags uint16

const (
	// Append mode: data written to the file is always appended to the file's end.
	FdflagAppend Fdflags = 1 << 0
	// Write according to synchronized I/O data integrity completion.
	FdflagDsync Fdflags = 1 << 1
	// Non-blocking mode.
	FdflagNonblock Fdflags = 1 << 2
	// Synchronized read I/O operations.
	FdflagRsync Fdflags = 1 << 3
	// Write according to synchronized I/O file integrity completion.
	FdflagSync Fdflags = 1 << 4
)

// Oflags are open flags used by path_open.
type Oflags uint16

const (
	// Create file if it does not exist.
	OflagCreat Oflags = 1 << 0
	// Fail if not a directory.
	OflagDirectory Oflags = 1 << 1
	// Fail if file already exists.
	OflagExcl Oflags = 1 << 2
	// Truncate file to size 0.
	OflagTrunc Oflags = 1 << 3
)

// The position relative to which to set the offset of the file descriptor.
const (
	WhenceSet uint8 = 0 // Seek relative to start-of-file.
	WhenceCur uint8 = 1 // Seek relative to current position.
	WhenceEnd uint8 = 2 // Seek relative to end-of-file.
)

// Identifiers for clocks.
const (
	ClockidRealtime         uint32 = 0
	ClockidMonotonic        uint32 = 1
	ClockidProcessCputimeID uint32 = 2
	ClockidThreadCputimeID  uint32 = 3
)

// Fstflags select which file time attributes to adjust.
type Fstflags uint16

const (
	FstflagAtim    Fstflags = 1 << 0
	FstflagAtimNow Fstflags = 1 << 1
	FstflagMtim    Fstflags = 1 << 2
	FstflagMtimNow Fstflags = 1 << 3
)

// Lookupflags determine the method of how paths are resolved.
type Lookupflags uint32

// As long as the resolved path corresponds to a symbolic link, it is
// expanded. Symbolic links do not exist in this filesystem, so the flag is
// accepted and has no effect.
const LookupflagSymlinkFollow Lookupflags = 1 << 0

// Type of a subscription to an event or its occurrence.
const (
	eventtypeClock   uint8 = 0
	eventtypeFdRead  uint8 = 1
	eventtypeFdWrite uint8 = 2
)

// Eventrwflags is the state of a file descriptor subscribed to with fd_read
// or fd_write.
type Eventrwflags uint16

// The peer of this stream has closed or disconnected.
const EventFdReadwriteHangup Eventrwflags = 1 << 0

// If set, treat the timestamp provided in a clock subscription as absolute.
const subclockflagAbstime uint16 = 1 << 0

// A pre-opened directory.
const preopentypeDir uint8 = 0

// Rights determine which actions may be performed on a file descriptor.
type Rights uint64

const (
	RightFdDatasync           Rights = 1 << 0
	RightFdRead               Rights = 1 << 1
	RightFdSeek               Rights = 1 << 2
	RightFdFdstatSetFlags     Rights = 1 << 3
	RightFdSync               Rights = 1 << 4
	RightFdTell               Rights = 1 << 5
	RightFdWrite              Rights = 1 << 6
	RightFdAdvise             Rights = 1 << 7
	RightFdAllocate           Rights = 1 << 8
	RightPathCreateDirectory  Rights = 1 << 9
	RightPathCreateFile       Rights = 1 << 10
	RightPathLinkSource       Rights = 1 << 11
	RightPathLinkTarget       Rights = 1 << 12
	RightPathOpen             Rights = 1 << 13
	RightFdReaddir            Rights = 1 << 14
	RightPathReadlink         Rights = 1 << 15
	RightPathRenameSource     Rights = 1 << 16
	RightPathRenameTarget     Rights = 1 << 17
	RightPathFilestatGet      Rights = 1 << 18
	RightPathFilestatSetSize  Rights = 1 << 19
	RightPathFilestatSetTimes Rights = 1 << 20
	RightFdFilestatGet        Rights = 1 << 21
	RightFdFilestatSetSize    Rights = 1 << 22
	RightFdFilestatSetTimes   Rights = 1 << 23
	RightPathSymlink          Rights = 1 << 24
	RightPathRemoveDirectory  Rights = 1 << 25
	RightPathUnlinkFile       Rights = 1 << 26
	RightPollFdReadwrite      Rights = 1 << 27
	RightSockShutdown         Rights = 1 << 28

	// FileRights is the full set of rights applicable to regular files and
	// character devices.
	FileRights = RightFdAdvise | RightFdAllocate | RightFdDatasync |
		RightFdFdstatSetFlags | RightFdFilestatGet | RightFdFilestatSetSize |
		RightFdFilestatSetTimes | RightFdRead | RightFdSeek | RightFdSync |
		RightFdTell | RightFdWrite | RightPollFdReadwrite

	// DirectoryRights is the full set of rights applicable to directories.
	// Reading a directory's "data" goes through fd_readdir, never fd_read,
	// so the data-plane rights are absent.
	DirectoryRights = RightFdReaddir | RightPathCreateDirectory |
		RightPathCreateFile | RightPathFilestatGet | RightPathFilestatSetSize |
		RightPathFilestatSetTimes | RightPathLinkSource | RightPathLinkTarget |
		RightPathOpen | RightPathReadlink | RightPathRemoveDirectory |
		RightPathRenameSource | RightPathRenameTarget | RightPathSymlink |
		RightPathUnlinkFile | RightFdFilestatGet | RightFdFdstatSetFlags |
		RightFdFilestatSetTimes

	AllRights = FileRights | DirectoryRights
)

// Fdstat describes the attributes of an open file descriptor.
//
// Layout (24 bytes): filetype byte at 0, flags at 2, base rights at 8,
// inheriting rights at 16.
type Fdstat struct {
	Filetype         Filetype
	Flags            Fdflags
	RightsBase       Rights
	RightsInheriting Rights
}

func (v *Fdstat) store(m *mem.Memory, addr uint32) {
	m.PutByte(byte(v.Filetype), addr, 0)
	m.PutUint16(uint16(v.Flags), addr, 2)
	m.PutUint64(uint64(v.RightsBase), addr, 8)
	m.PutUint64(uint64(v.RightsInheriting), addr, 16)
}

// Filestat describes the attributes of a file or directory.
//
// Layout (64 bytes): dev at 0, ino at 8, filetype byte at 16, nlink at 24,
// size at 32, atim at 40, mtim at 48, ctim at 56.
type Filestat struct {
	Dev      uint64
	Ino      uint64
	Filetype Filetype
	Nlink    uint64
	Size     filesize
	Atim     timestamp
	Mtim     timestamp
	Ctim     timestamp
}

func (v *Filestat) store(m *mem.Memory, addr uint32) {
	m.PutUint64(v.Dev, addr, 0)
	m.PutUint64(v.Ino, addr, 8)
	m.PutByte(byte(v.Filetype), addr, 16)
	m.PutUint64(v.Nlink, addr, 24)
	m.PutUint64(v.Size, addr, 32)
	m.PutUint64(v.Atim, addr, 40)
	m.PutUint64(v.Mtim, addr, 48)
	m.PutUint64(v.Ctim, addr, 56)
}

// prestat describes a pre-opened capability.
//
// Layout (8 bytes): tag byte at 0, name length at 4.
type prestat struct {
	tag     uint8
	nameLen size
}

func (v *prestat) store(m *mem.Memory, addr uint32) {
	m.PutByte(v.tag, addr, 0)
	m.PutUint32(v.nameLen, addr, 4)
}

// iovec is a region of guest memory for scatter/gather I/O.
//
// Layout (8 bytes): buffer pointer at 0, buffer length at 4.
type iovec struct {
	buf    pointer
	bufLen size
}

func (v *iovec) load(m *mem.Memory, addr uint32) {
	v.buf = m.Uint32(addr, 0)
	v.bufLen = m.Uint32(addr, 4)
}

const iovecSize = 8

// dirent is the fixed header preceding each directory entry name.
//
// Layout (24 bytes): next cookie at 0, ino at 8, name length at 16, filetype
// byte at 20, padding to 24.
type dirent struct {
	next   dircookie
	ino    uint64
	namlen uint32
	typ    Filetype
}

func (v *dirent) store(m *mem.Memory, addr uint32) {
	m.PutUint64(v.next, addr, 0)
	m.PutUint64(v.ino, addr, 8)
	m.PutUint32(v.namlen, addr, 16)
	m.PutByte(byte(v.typ), addr, 20)
}

const direntSize = 24

// subscription is a request to be notified of an event.
//
// Layout (48 bytes): userdata at 0, type tag byte at 8; clock payload: id u32
// at 16, timeout at 24, precision at 32, flags u16 at 40; fd payload: fd u32
// at 12.
type subscription struct {
	userdata userdata
	tag      uint8

	clockID      uint32
	timeout      timestamp
	precision    timestamp
	clockFlags   uint16
	subscribedFd fd
}

func (v *subscription) load(m *mem.Memory, addr uint32) {
	v.userdata = m.Uint64(addr, 0)
	v.tag = m.Byte(addr, 8)
	switch v.tag {
	case eventtypeClock:
		v.clockID = m.Uint32(addr, 16)
		v.timeout = m.Uint64(addr, 24)
		v.precision = m.Uint64(addr, 32)
		v.clockFlags = m.Uint16(addr, 40)
	case eventtypeFdRead, eventtypeFdWrite:
		v.subscribedFd = m.Uint32(addr, 12)
	}
}

const subscriptionSize = 48

// event is an occurred notification.
//
// Layout (32 bytes): userdata at 0, errno u16 at 8, type byte at 10, byte
// count at 16, flags u16 at 24.
type event struct {
	userdata userdata
	errno    Errno
	typ      uint8
	nbytes   filesize
	flags    Eventrwflags
}

func (v *event) store(m *mem.Memory, addr uint32) {
	m.PutUint64(v.userdata, addr, 0)
	m.PutUint16(uint16(v.errno), addr, 8)
	m.PutByte(v.typ, addr, 10)
	m.PutUint64(v.nbytes, addr, 16)
	m.PutUint16(uint16(v.flags), addr, 24)
}

const eventSize = 32
