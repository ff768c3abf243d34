// Package wasi implements a host-side WASI snapshot preview1 system
// interface over an in-memory virtual filesystem. The dispatcher decodes
// syscall arguments from guest linear memory, applies them to the open file
// table, and encodes results back; Exports produces the import-function
// table a guest engine binds by name.
package wasi

import (
	"crypto/rand"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/pgavlin/vwasi/fs"
	"github.com/pgavlin/vwasi/mem"
)

// Options configures a Host.
type Options struct {
	// Args is the guest's command line, argv[0] first.
	Args []string
	// Env is the guest's environment. Entries are exposed to the guest in
	// sorted key order.
	Env map[string]string
	// FDs is the startup descriptor table in order: stdin, stdout, stderr,
	// then any pre-opened directories. Missing leading entries get default
	// devices.
	FDs []Handle
}

// Host is the system interface presented to a single-threaded guest. It is
// not safe for concurrent use; the guest engine must serialize calls.
type Host struct {
	mem *mem.Memory

	start time.Time

	env  []string
	args []string

	files fdTable
}

// NewHost binds a host to the guest's linear memory. The startup descriptor
// table is populated from opts in order; descriptors 0 through 2 default to
// an input device with no producer and devices writing to the process's
// stdout and stderr.
func NewHost(m *mem.Memory, opts *Options) *Host {
	var args []string
	var env []string
	var fds []Handle
	if opts != nil {
		args = opts.Args
		env = make([]string, 0, len(opts.Env))
		for k, v := range opts.Env {
			env = append(env, fmt.Sprintf("%s=%s", k, v))
		}
		sort.Strings(env)
		fds = opts.FDs
	}
	for len(fds) < 3 {
		switch len(fds) {
		case 0:
			fds = append(fds, NewPollableStdin(nil))
		case 1:
			fds = append(fds, NewWriterDevice(os.Stdout))
		case 2:
			fds = append(fds, NewWriterDevice(os.Stderr))
		}
	}

	host := &Host{
		mem:   m,
		start: time.Now(),
		env:   env,
		args:  args,
		files: newFdTable(),
	}
	for _, h := range fds {
		stat, errno := h.Fdstat()
		if errno != ErrnoSuccess {
			stat = Fdstat{RightsBase: AllRights, RightsInheriting: AllRights}
		}
		host.files.alloc(h, stat.RightsBase, stat.RightsInheriting)
	}
	return host
}

// Memory returns the linear memory the host decodes against.
func (m *Host) Memory() *mem.Memory {
	return m.mem
}

func (m *Host) slice(addr pointer, length size) []byte {
	return m.mem.Slice(addr, length)
}

// loadPath reads and parses a guest-supplied path string.
func (m *Host) loadPath(ppath pointer, pathLen size) (fs.Path, Errno) {
	path, err := fs.Parse(string(m.slice(ppath, pathLen)))
	if err != nil {
		return fs.Path{}, fsErrno(err)
	}
	return path, ErrnoSuccess
}

// fstTimes decodes a pair of fst timestamps into optional time values.
func fstTimes(patim, pmtim timestamp, flags Fstflags) (atim, mtim *time.Time) {
	switch {
	case flags&FstflagAtim != 0:
		t := time.Unix(0, int64(patim))
		atim = &t
	case flags&FstflagAtimNow != 0:
		t := time.Now()
		atim = &t
	}
	switch {
	case flags&FstflagMtim != 0:
		t := time.Unix(0, int64(pmtim))
		mtim = &t
	case flags&FstflagMtimNow != 0:
		t := time.Now()
		mtim = &t
	}
	return atim, mtim
}

// vfsHandle is implemented by directory handles backed by a virtual
// filesystem; cross-descriptor operations need the owning FS.
type vfsHandle interface {
	vfs() (*fs.FS, *fs.Directory)
}

// Read command-line argument data.
// The size of the array should match that returned by `args_sizes_get`
func (m *Host) argsGet(pargv pointer, pargvBuf pointer) (err Errno) {
	for _, s := range m.args {
		buf := m.slice(pargvBuf, size(len(s))+1)
		copy(buf, s)
		buf[len(s)] = 0

		m.mem.PutUint32(pargvBuf, pargv, 0)
		pargvBuf, pargv = pargvBuf+pointer(len(s))+1, pargv+4
	}
	return ErrnoSuccess
}

// Return command-line argument data sizes.
func (m *Host) argsSizesGet() (r0 size, r1 size, err Errno) {
	bytes := 0
	for _, s := range m.args {
		bytes += len(s) + 1
	}
	return size(len(m.args)), size(bytes), ErrnoSuccess
}

// Read environment variable data.
// The sizes of the buffers should match that returned by `environ_sizes_get`.
func (m *Host) environGet(penviron pointer, penvironBuf pointer) (err Errno) {
	for _, s := range m.env {
		buf := m.slice(penvironBuf, size(len(s))+1)
		copy(buf, s)
		buf[len(s)] = 0

		m.mem.PutUint32(penvironBuf, penviron, 0)
		penvironBuf, penviron = penvironBuf+pointer(len(s))+1, penviron+4
	}
	return ErrnoSuccess
}

// Return environment variable data sizes.
func (m *Host) environSizesGet() (r0 size, r1 size, err Errno) {
	bytes := 0
	for _, s := range m.env {
		bytes += len(s) + 1
	}
	return size(len(m.env)), size(bytes), ErrnoSuccess
}

// Return the resolution of a clock.
// Note: This is similar to `clock_getres` in POSIX.
func (m *Host) clockResGet(pid uint32) (rv timestamp, err Errno) {
	switch pid {
	case ClockidRealtime:
		// Guess at milliseconds.
		return timestamp(1 * time.Millisecond), ErrnoSuccess
	case ClockidMonotonic:
		return timestamp(1 * time.Nanosecond), ErrnoSuccess
	default:
		return 0, ErrnoInval
	}
}

// Return the time value of a clock.
// Note: This is similar to `clock_gettime` in POSIX.
func (m *Host) clockTimeGet(pid uint32, pprecision timestamp) (rv timestamp, err Errno) {
	switch pid {
	case ClockidRealtime:
		return timestamp(time.Now().UnixNano()), ErrnoSuccess
	case ClockidMonotonic:
		return timestamp(time.Since(m.start)), ErrnoSuccess
	default:
		return 0, ErrnoInval
	}
}

// Provide file advisory information on a file descriptor.
// Note: This is similar to `posix_fadvise` in POSIX.
func (m *Host) fdAdvise(pfd fd, poffset filesize, plen filesize, padvice uint8) (err Errno) {
	f, err := m.files.get(pfd, RightFdAdvise)
	if err != ErrnoSuccess {
		return err
	}
	return f.handle.Advise(poffset, plen, padvice)
}

// Force the allocation of space in a file.
// Note: This is similar to `posix_fallocate` in POSIX.
func (m *Host) fdAllocate(pfd fd, poffset filesize, plen filesize) (err Errno) {
	f, err := m.files.get(pfd, RightFdAllocate)
	if err != ErrnoSuccess {
		return err
	}
	return f.handle.Allocate(poffset, plen)
}

// Close a file descriptor.
// Note: This is similar to `close` in POSIX.
func (m *Host) fdClose(pfd fd) (err Errno) {
	f, err := m.files.get(pfd, 0)
	if err != ErrnoSuccess {
		return err
	}
	errno := f.handle.Close()
	m.files.free(pfd)
	return errno
}

// Synchronize the data of a file to disk.
// Note: This is similar to `fdatasync` in POSIX.
func (m *Host) fdDatasync(pfd fd) (err Errno) {
	f, err := m.files.get(pfd, RightFdDatasync)
	if err != ErrnoSuccess {
		return err
	}
	return f.handle.Datasync()
}

// Get the attributes of a file descriptor.
// Note: This returns similar flags to `fsync(fd, F_GETFL)` in POSIX, as well as additional fields.
func (m *Host) fdFdstatGet(pfd fd) (rv Fdstat, err Errno) {
	f, err := m.files.get(pfd, 0)
	if err != ErrnoSuccess {
		return Fdstat{}, err
	}
	stat, errno := f.handle.Fdstat()
	if errno != ErrnoSuccess {
		return Fdstat{}, errno
	}
	stat.RightsBase, stat.RightsInheriting = f.rights, f.inherit
	return stat, ErrnoSuccess
}

// Adjust the flags associated with a file descriptor.
// Note: This is similar to `fcntl(fd, F_SETFL, flags)` in POSIX.
func (m *Host) fdFdstatSetFlags(pfd fd, pflags Fdflags) (err Errno) {
	f, err := m.files.get(pfd, RightFdFdstatSetFlags)
	if err != ErrnoSuccess {
		return err
	}
	return f.handle.SetFlags(pflags)
}

// Adjust the rights associated with a file descriptor.
// This can only be used to remove rights, and returns `errno::notcapable` if called in a way that would attempt to add rights
func (m *Host) fdFdstatSetRights(pfd fd, pbase Rights, pinheriting Rights) (err Errno) {
	f, err := m.files.get(pfd, 0)
	if err != ErrnoSuccess {
		return err
	}
	if f.rights&pbase != pbase || f.inherit&pinheriting != pinheriting {
		return ErrnoNotcapable
	}
	f.rights, f.inherit = pbase, pinheriting
	return ErrnoSuccess
}

// Return the attributes of an open file.
func (m *Host) fdFilestatGet(pfd fd) (rv Filestat, err Errno) {
	f, err := m.files.get(pfd, RightFdFilestatGet)
	if err != ErrnoSuccess {
		return Filestat{}, err
	}
	return f.handle.Filestat()
}

// Adjust the size of an open file. If this increases the file's size, the extra bytes are filled with zeros.
// Note: This is similar to `ftruncate` in POSIX.
func (m *Host) fdFilestatSetSize(pfd fd, psize filesize) (err Errno) {
	f, err := m.files.get(pfd, RightFdFilestatSetSize)
	if err != ErrnoSuccess {
		return err
	}
	return f.handle.SetSize(psize)
}

// Adjust the timestamps of an open file or directory.
// Note: This is similar to `futimens` in POSIX.
func (m *Host) fdFilestatSetTimes(pfd fd, patim timestamp, pmtim timestamp, pfstFlags Fstflags) (err Errno) {
	f, err := m.files.get(pfd, RightFdFilestatSetTimes)
	if err != ErrnoSuccess {
		return err
	}
	atim, mtim := fstTimes(patim, pmtim, pfstFlags)
	return f.handle.SetTimes(atim, mtim)
}

// vectored decodes an iovec array and applies op to each region in turn,
// stopping at the first short transfer or error. An error after data has
// been transferred is swallowed; the guest sees the byte count and
// encounters the error on its next call.
func (m *Host) vectored(piovs pointer, niovs size, op func(p []byte) (uint32, Errno)) (rv size, err Errno) {
	var total size
	for i := size(0); i < niovs; i++ {
		var iov iovec
		iov.load(m.mem, piovs+i*iovecSize)

		buf := m.slice(iov.buf, iov.bufLen)
		n, errno := op(buf)
		total += size(n)
		if errno != ErrnoSuccess {
			if total > 0 {
				return total, ErrnoSuccess
			}
			return 0, errno
		}
		if n < uint32(len(buf)) {
			break
		}
	}
	return total, ErrnoSuccess
}

// Read from a file descriptor, without using and updating the file descriptor's offset.
// Note: This is similar to `preadv` in POSIX.
func (m *Host) fdPread(pfd fd, piovs pointer, niovs size, poffset filesize) (rv size, err Errno) {
	f, err := m.files.get(pfd, RightFdRead|RightFdSeek)
	if err != ErrnoSuccess {
		return 0, err
	}
	offset := poffset
	return m.vectored(piovs, niovs, func(p []byte) (uint32, Errno) {
		n, errno := f.handle.Pread(p, offset)
		offset += uint64(n)
		return n, errno
	})
}

// Return a description of the given preopened file descriptor.
func (m *Host) fdPrestatGet(pfd fd) (rv prestat, err Errno) {
	f, err := m.files.get(pfd, 0)
	if err != ErrnoSuccess {
		return prestat{}, err
	}
	name, ok := f.handle.Preopen()
	if !ok {
		return prestat{}, ErrnoBadf
	}
	return prestat{tag: preopentypeDir, nameLen: size(len(name))}, ErrnoSuccess
}

// Return a description of the given preopened file descriptor.
func (m *Host) fdPrestatDirName(pfd fd, ppath pointer, ppathLen size) (err Errno) {
	f, err := m.files.get(pfd, 0)
	if err != ErrnoSuccess {
		return err
	}
	name, ok := f.handle.Preopen()
	if !ok {
		return ErrnoBadf
	}
	copy(m.slice(ppath, ppathLen), name)
	return ErrnoSuccess
}

// Write to a file descriptor, without using and updating the file descriptor's offset.
// Note: This is similar to `pwritev` in POSIX.
func (m *Host) fdPwrite(pfd fd, piovs pointer, niovs size, poffset filesize) (rv size, err Errno) {
	f, err := m.files.get(pfd, RightFdWrite|RightFdSeek)
	if err != ErrnoSuccess {
		return 0, err
	}
	offset := poffset
	return m.vectored(piovs, niovs, func(p []byte) (uint32, Errno) {
		n, errno := f.handle.Pwrite(p, offset)
		offset += uint64(n)
		return n, errno
	})
}

// Read from a file descriptor.
// Note: This is similar to `readv` in POSIX.
func (m *Host) fdRead(pfd fd, piovs pointer, niovs size) (rv size, err Errno) {
	f, err := m.files.get(pfd, RightFdRead)
	if err != ErrnoSuccess {
		return 0, err
	}
	return m.vectored(piovs, niovs, f.handle.Read)
}

// Read directory entries from a directory.
// When successful, the contents of the output buffer consist of a sequence of
// directory entries. Each directory entry consists of a `dirent` object,
// followed by `dirent::d_namlen` bytes holding the name of the directory
// entry.
// Only whole entries are written; if the next entry does not fit in the
// remaining space, the returned size equals the buffer size so the caller
// knows to come back with the last cookie it consumed.
func (m *Host) fdReaddir(pfd fd, pbuf pointer, pbufLen size, pcookie dircookie) (rv size, err Errno) {
	f, err := m.files.get(pfd, RightFdReaddir)
	if err != ErrnoSuccess {
		return 0, err
	}

	written, cookie := size(0), pcookie
	for {
		entry, errno := f.handle.Readdir(cookie)
		if errno != ErrnoSuccess {
			return written, errno
		}
		if entry == nil {
			return written, ErrnoSuccess
		}

		entrySize := size(direntSize + len(entry.Name))
		if pbufLen-written < entrySize {
			return pbufLen, ErrnoSuccess
		}

		d := dirent{
			next:   entry.Next,
			ino:    entry.Ino,
			namlen: uint32(len(entry.Name)),
			typ:    entry.Type,
		}
		d.store(m.mem, pbuf+written)
		copy(m.slice(pbuf+written+direntSize, size(len(entry.Name))), entry.Name)

		written += entrySize
		cookie = entry.Next
	}
}

// Atomically replace a file descriptor by renumbering another file descriptor.
// Due to the strong focus on thread safety, this environment does not provide
// a mechanism to duplicate or renumber a file descriptor to an arbitrary
// number, like `dup2()`. This would be prone to race conditions, as an actual
// file descriptor with the same number could be allocated by a different
// thread at the same time.
// This function provides a way to atomically renumber file descriptors, which
// would disappear if `dup2()` were to be removed entirely.
func (m *Host) fdRenumber(pfd fd, pto fd) (err Errno) {
	return m.files.renumber(pto, pfd)
}

// Move the offset of a file descriptor.
// Note: This is similar to `lseek` in POSIX.
func (m *Host) fdSeek(pfd fd, poffset filedelta, pwhence uint8) (rv filesize, err Errno) {
	f, err := m.files.get(pfd, RightFdSeek)
	if err != ErrnoSuccess {
		return 0, err
	}
	return f.handle.Seek(poffset, pwhence)
}

// Synchronize the data and metadata of a file to disk.
// Note: This is similar to `fsync` in POSIX.
func (m *Host) fdSync(pfd fd) (err Errno) {
	f, err := m.files.get(pfd, RightFdSync)
	if err != ErrnoSuccess {
		return err
	}
	return f.handle.Sync()
}

// Return the current offset of a file descriptor.
// Note: This is similar to `lseek(fd, 0, SEEK_CUR)` in POSIX.
func (m *Host) fdTell(pfd fd) (rv filesize, err Errno) {
	f, err := m.files.get(pfd, RightFdTell)
	if err != ErrnoSuccess {
		return 0, err
	}
	return f.handle.Tell()
}

// Write to a file descriptor.
// Note: This is similar to `writev` in POSIX.
func (m *Host) fdWrite(pfd fd, piovs pointer, niovs size) (rv size, err Errno) {
	f, err := m.files.get(pfd, RightFdWrite)
	if err != ErrnoSuccess {
		return 0, err
	}
	return m.vectored(piovs, niovs, f.handle.Write)
}

// Create a directory.
// Note: This is similar to `mkdirat` in POSIX.
func (m *Host) pathCreateDirectory(pfd fd, ppath pointer, ppathLen size) (err Errno) {
	path, err := m.loadPath(ppath, ppathLen)
	if err != ErrnoSuccess {
		return err
	}
	f, err := m.files.get(pfd, RightPathCreateDirectory)
	if err != ErrnoSuccess {
		return err
	}
	return f.handle.PathCreateDirectory(path)
}

// Return the attributes of a file or directory.
// Note: This is similar to `stat` in POSIX.
func (m *Host) pathFilestatGet(pfd fd, pflags Lookupflags, ppath pointer, ppathLen size) (rv Filestat, err Errno) {
	path, err := m.loadPath(ppath, ppathLen)
	if err != ErrnoSuccess {
		return Filestat{}, err
	}
	f, err := m.files.get(pfd, RightPathFilestatGet)
	if err != ErrnoSuccess {
		return Filestat{}, err
	}
	return f.handle.PathFilestat(path)
}

// Adjust the timestamps of a file or directory.
// Note: This is similar to `utimensat` in POSIX.
func (m *Host) pathFilestatSetTimes(pfd fd, pflags Lookupflags, ppath pointer, ppathLen size, patim timestamp, pmtim timestamp, pfstFlags Fstflags) (err Errno) {
	path, err := m.loadPath(ppath, ppathLen)
	if err != ErrnoSuccess {
		return err
	}
	f, err := m.files.get(pfd, RightPathFilestatSetTimes)
	if err != ErrnoSuccess {
		return err
	}
	atim, mtim := fstTimes(patim, pmtim, pfstFlags)
	return f.handle.PathSetTimes(path, atim, mtim)
}

// Create a hard link.
// Note: This is similar to `linkat` in POSIX.
func (m *Host) pathLink(poldFd fd, poldFlags Lookupflags, poldPath pointer, poldPathLen size, pnewFd fd, pnewPath pointer, pnewPathLen size) (err Errno) {
	oldPath, err := m.loadPath(poldPath, poldPathLen)
	if err != ErrnoSuccess {
		return err
	}
	newPath, err := m.loadPath(pnewPath, pnewPathLen)
	if err != ErrnoSuccess {
		return err
	}

	oldF, err := m.files.get(poldFd, RightPathLinkSource)
	if err != ErrnoSuccess {
		return err
	}
	newF, err := m.files.get(pnewFd, RightPathLinkTarget)
	if err != ErrnoSuccess {
		return err
	}

	src, ok := oldF.handle.(vfsHandle)
	if !ok {
		return ErrnoNotsup
	}
	fsys, srcDir := src.vfs()
	dstDir, errno := newF.handle.Dir()
	if errno != ErrnoSuccess {
		return errno
	}

	node, ferr := fsys.Resolve(srcDir, oldPath)
	if ferr != nil {
		return fsErrno(ferr)
	}
	return fsErrno(fsys.Link(dstDir, newPath, node, false))
}

// Open a file or directory.
// Note: This is similar to `openat` in POSIX.
func (m *Host) pathOpen(pfd fd, pdirflags Lookupflags, ppath pointer, ppathLen size, poflags Oflags, pbase Rights, pinheriting Rights, pfdflags Fdflags) (rv fd, err Errno) {
	path, err := m.loadPath(ppath, ppathLen)
	if err != ErrnoSuccess {
		return 0, err
	}

	required := RightPathOpen
	if poflags&OflagCreat != 0 {
		required |= RightPathCreateFile
	}
	f, err := m.files.get(pfd, required)
	if err != ErrnoSuccess {
		return 0, err
	}
	if f.inherit&pbase != pbase || f.inherit&pinheriting != pinheriting {
		return 0, ErrnoNotcapable
	}

	handle, errno := f.handle.PathOpen(path, poflags, pfdflags)
	if errno != ErrnoSuccess {
		return 0, errno
	}
	return m.files.alloc(handle, pbase, pinheriting), ErrnoSuccess
}

// Read the contents of a symbolic link.
// Symbolic links do not exist in this filesystem.
// Note: This is similar to `readlinkat` in POSIX.
func (m *Host) pathReadlink(pfd fd, ppath pointer, ppathLen size, pbuf pointer, pbufLen size) (rv size, err Errno) {
	return 0, ErrnoNosys
}

// Remove a directory.
// Return `errno::notempty` if the directory is not empty.
// Note: This is similar to `unlinkat(fd, path, AT_REMOVEDIR)` in POSIX.
func (m *Host) pathRemoveDirectory(pfd fd, ppath pointer, ppathLen size) (err Errno) {
	path, err := m.loadPath(ppath, ppathLen)
	if err != ErrnoSuccess {
		return err
	}
	f, err := m.files.get(pfd, RightPathRemoveDirectory)
	if err != ErrnoSuccess {
		return err
	}
	return f.handle.PathRemoveDirectory(path)
}

// Rename a file or directory.
// Note: This is similar to `renameat` in POSIX.
func (m *Host) pathRename(pfd fd, poldPath pointer, poldPathLen size, pnewFd fd, pnewPath pointer, pnewPathLen size) (err Errno) {
	oldPath, err := m.loadPath(poldPath, poldPathLen)
	if err != ErrnoSuccess {
		return err
	}
	newPath, err := m.loadPath(pnewPath, pnewPathLen)
	if err != ErrnoSuccess {
		return err
	}

	oldF, err := m.files.get(pfd, RightPathRenameSource)
	if err != ErrnoSuccess {
		return err
	}
	newF, err := m.files.get(pnewFd, RightPathRenameTarget)
	if err != ErrnoSuccess {
		return err
	}

	src, ok := oldF.handle.(vfsHandle)
	if !ok {
		return ErrnoNotsup
	}
	fsys, srcDir := src.vfs()
	dst, ok := newF.handle.(vfsHandle)
	if !ok {
		return ErrnoNotsup
	}
	dstFsys, dstDir := dst.vfs()
	if fsys != dstFsys {
		return ErrnoXdev
	}
	return fsErrno(fsys.Rename(srcDir, oldPath, dstDir, newPath))
}

// Create a symbolic link.
// Symbolic links do not exist in this filesystem.
// Note: This is similar to `symlinkat` in POSIX.
func (m *Host) pathSymlink(poldPath pointer, poldPathLen size, pfd fd, pnewPath pointer, pnewPathLen size) (err Errno) {
	return ErrnoNosys
}

// Unlink a file.
// Return `errno::isdir` if the path refers to a directory.
// Note: This is similar to `unlinkat(fd, path, 0)` in POSIX.
func (m *Host) pathUnlinkFile(pfd fd, ppath pointer, ppathLen size) (err Errno) {
	path, err := m.loadPath(ppath, ppathLen)
	if err != ErrnoSuccess {
		return err
	}
	f, err := m.files.get(pfd, RightPathUnlinkFile)
	if err != ErrnoSuccess {
		return err
	}
	return f.handle.PathUnlinkFile(path)
}

// Terminate the process normally. An exit code of 0 indicates successful
// termination of the program. The meanings of other values is dependent on
// the environment.
func (m *Host) procExit(prval uint32) {
	panic(&ExitError{code: int(prval)})
}

// Send a signal to the process of the calling thread.
// Note: This is similar to `raise` in POSIX.
func (m *Host) procRaise(psig uint8) (err Errno) {
	panic(&SignalError{Signal: psig})
}

// Temporarily yield execution of the calling thread.
// There is only one thread, so yielding is a no-op.
// Note: This is similar to `sched_yield` in POSIX.
func (m *Host) schedYield() (err Errno) {
	return ErrnoSuccess
}

// Write high-quality random data into a buffer.
func (m *Host) randomGet(pbuf pointer, pbufLen size) (err Errno) {
	if _, rerr := rand.Read(m.slice(pbuf, pbufLen)); rerr != nil {
		return ErrnoIo
	}
	return ErrnoSuccess
}

// Receive a message from a socket.
// Note: This is similar to `recv` in POSIX, though it also supports reading
// the data into multiple buffers in the manner of `readv`.
func (m *Host) sockRecv(pfd fd, priData pointer, priDataLen size, priFlags uint16) (r0 size, r1 uint16, err Errno) {
	panic(&SockError{Op: "sock_recv"})
}

// Send a message on a socket.
// Note: This is similar to `send` in POSIX, though it also supports writing
// the data from multiple buffers in the manner of `writev`.
func (m *Host) sockSend(pfd fd, psiData pointer, psiDataLen size, psiFlags uint16) (rv size, err Errno) {
	panic(&SockError{Op: "sock_send"})
}

// Shut down socket send and receive channels.
// Note: This is similar to `shutdown` in POSIX.
func (m *Host) sockShutdown(pfd fd, phow uint8) (err Errno) {
	panic(&SockError{Op: "sock_shutdown"})
}
