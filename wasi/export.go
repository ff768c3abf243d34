package wasi

// ModuleName is the canonical import module name guests link against.
const ModuleName = "wasi_snapshot_preview1"

// Exports returns the import-function table for "wasi_snapshot_preview1".
// Each value is a host function with a flat wasm signature: i32/i64
// parameters and, except for proc_exit, an i32 errno result. A guest engine
// binds these by name and routes the guest's import calls through them.
func (m *Host) Exports() map[string]interface{} {
	return map[string]interface{}{
		"args_get":                m.wasiArgsGet,
		"args_sizes_get":          m.wasiArgsSizesGet,
		"environ_get":             m.wasiEnvironGet,
		"environ_sizes_get":       m.wasiEnvironSizesGet,
		"clock_res_get":           m.wasiClockResGet,
		"clock_time_get":          m.wasiClockTimeGet,
		"fd_advise":               m.wasiFdAdvise,
		"fd_allocate":             m.wasiFdAllocate,
		"fd_close":                m.wasiFdClose,
		"fd_datasync":             m.wasiFdDatasync,
		"fd_fdstat_get":           m.wasiFdFdstatGet,
		"fd_fdstat_set_flags":     m.wasiFdFdstatSetFlags,
		"fd_fdstat_set_rights":    m.wasiFdFdstatSetRights,
		"fd_filestat_get":         m.wasiFdFilestatGet,
		"fd_filestat_set_size":    m.wasiFdFilestatSetSize,
		"fd_filestat_set_times":   m.wasiFdFilestatSetTimes,
		"fd_pread":                m.wasiFdPread,
		"fd_prestat_get":          m.wasiFdPrestatGet,
		"fd_prestat_dir_name":     m.wasiFdPrestatDirName,
		"fd_pwrite":               m.wasiFdPwrite,
		"fd_read":                 m.wasiFdRead,
		"fd_readdir":              m.wasiFdReaddir,
		"fd_renumber":             m.wasiFdRenumber,
		"fd_seek":                 m.wasiFdSeek,
		"fd_sync":                 m.wasiFdSync,
		"fd_tell":                 m.wasiFdTell,
		"fd_write":                m.wasiFdWrite,
		"path_create_directory":   m.wasiPathCreateDirectory,
		"path_filestat_get":       m.wasiPathFilestatGet,
		"path_filestat_set_times": m.wasiPathFilestatSetTimes,
		"path_link":               m.wasiPathLink,
		"path_open":               m.wasiPathOpen,
		"path_readlink":           m.wasiPathReadlink,
		"path_remove_directory":   m.wasiPathRemoveDirectory,
		"path_rename":             m.wasiPathRename,
		"path_symlink":            m.wasiPathSymlink,
		"path_unlink_file":        m.wasiPathUnlinkFile,
		"poll_oneoff":             m.wasiPollOneoff,
		"proc_exit":               m.wasiProcExit,
		"proc_raise":              m.wasiProcRaise,
		"random_get":              m.wasiRandomGet,
		"sched_yield":             m.wasiSchedYield,
		"sock_recv":               m.wasiSockRecv,
		"sock_send":               m.wasiSockSend,
		"sock_shutdown":           m.wasiSockShutdown,
	}
}

func (m *Host) wasiArgsGet(p0 int32, p1 int32) int32 {
	return int32(m.argsGet(pointer(p0), pointer(p1)))
}

func (m *Host) wasiArgsSizesGet(p0 int32, p1 int32) int32 {
	rv0, rv1, err := m.argsSizesGet()
	res := int32(ErrnoSuccess)
	if err == ErrnoSuccess {
		m.mem.PutUint32(rv0, uint32(p0), 0)
		m.mem.PutUint32(rv1, uint32(p1), 0)
	} else {
		res = int32(err)
	}
	return res
}

func (m *Host) wasiEnvironGet(p0 int32, p1 int32) int32 {
	return int32(m.environGet(pointer(p0), pointer(p1)))
}

func (m *Host) wasiEnvironSizesGet(p0 int32, p1 int32) int32 {
	rv0, rv1, err := m.environSizesGet()
	res := int32(ErrnoSuccess)
	if err == ErrnoSuccess {
		m.mem.PutUint32(rv0, uint32(p0), 0)
		m.mem.PutUint32(rv1, uint32(p1), 0)
	} else {
		res = int32(err)
	}
	return res
}

func (m *Host) wasiClockResGet(p0 int32, p1 int32) int32 {
	rv, err := m.clockResGet(uint32(p0))
	res := int32(ErrnoSuccess)
	if err == ErrnoSuccess {
		m.mem.PutUint64(rv, uint32(p1), 0)
	} else {
		res = int32(err)
	}
	return res
}

func (m *Host) wasiClockTimeGet(p0 int32, p1 int64, p2 int32) int32 {
	rv, err := m.clockTimeGet(uint32(p0), timestamp(p1))
	res := int32(ErrnoSuccess)
	if err == ErrnoSuccess {
		m.mem.PutUint64(rv, uint32(p2), 0)
	} else {
		res = int32(err)
	}
	return res
}

func (m *Host) wasiFdAdvise(p0 int32, p1 int64, p2 int64, p3 int32) int32 {
	return int32(m.fdAdvise(fd(p0), filesize(p1), filesize(p2), uint8(p3)))
}

func (m *Host) wasiFdAllocate(p0 int32, p1 int64, p2 int64) int32 {
	return int32(m.fdAllocate(fd(p0), filesize(p1), filesize(p2)))
}

func (m *Host) wasiFdClose(p0 int32) int32 {
	return int32(m.fdClose(fd(p0)))
}

func (m *Host) wasiFdDatasync(p0 int32) int32 {
	return int32(m.fdDatasync(fd(p0)))
}

func (m *Host) wasiFdFdstatGet(p0 int32, p1 int32) int32 {
	rv, err := m.fdFdstatGet(fd(p0))
	res := int32(ErrnoSuccess)
	if err == ErrnoSuccess {
		rv.store(m.mem, uint32(p1))
	} else {
		res = int32(err)
	}
	return res
}

func (m *Host) wasiFdFdstatSetFlags(p0 int32, p1 int32) int32 {
	return int32(m.fdFdstatSetFlags(fd(p0), Fdflags(p1)))
}

func (m *Host) wasiFdFdstatSetRights(p0 int32, p1 int64, p2 int64) int32 {
	return int32(m.fdFdstatSetRights(fd(p0), Rights(p1), Rights(p2)))
}

func (m *Host) wasiFdFilestatGet(p0 int32, p1 int32) int32 {
	rv, err := m.fdFilestatGet(fd(p0))
	res := int32(ErrnoSuccess)
	if err == ErrnoSuccess {
		rv.store(m.mem, uint32(p1))
	} else {
		res = int32(err)
	}
	return res
}

func (m *Host) wasiFdFilestatSetSize(p0 int32, p1 int64) int32 {
	return int32(m.fdFilestatSetSize(fd(p0), filesize(p1)))
}

func (m *Host) wasiFdFilestatSetTimes(p0 int32, p1 int64, p2 int64, p3 int32) int32 {
	return int32(m.fdFilestatSetTimes(fd(p0), timestamp(p1), timestamp(p2), Fstflags(p3)))
}

func (m *Host) wasiFdPread(p0 int32, p1 int32, p2 int32, p3 int64, p4 int32) int32 {
	rv, err := m.fdPread(fd(p0), pointer(p1), size(p2), filesize(p3))
	res := int32(ErrnoSuccess)
	if err == ErrnoSuccess {
		m.mem.PutUint32(rv, uint32(p4), 0)
	} else {
		res = int32(err)
	}
	return res
}

func (m *Host) wasiFdPrestatGet(p0 int32, p1 int32) int32 {
	rv, err := m.fdPrestatGet(fd(p0))
	res := int32(ErrnoSuccess)
	if err == ErrnoSuccess {
		rv.store(m.mem, uint32(p1))
	} else {
		res = int32(err)
	}
	return res
}

func (m *Host) wasiFdPrestatDirName(p0 int32, p1 int32, p2 int32) int32 {
	return int32(m.fdPrestatDirName(fd(p0), pointer(p1), size(p2)))
}

func (m *Host) wasiFdPwrite(p0 int32, p1 int32, p2 int32, p3 int64, p4 int32) int32 {
	rv, err := m.fdPwrite(fd(p0), pointer(p1), size(p2), filesize(p3))
	res := int32(ErrnoSuccess)
	if err == ErrnoSuccess {
		m.mem.PutUint32(rv, uint32(p4), 0)
	} else {
		res = int32(err)
	}
	return res
}

func (m *Host) wasiFdRead(p0 int32, p1 int32, p2 int32, p3 int32) int32 {
	rv, err := m.fdRead(fd(p0), pointer(p1), size(p2))
	res := int32(ErrnoSuccess)
	if err == ErrnoSuccess {
		m.mem.PutUint32(rv, uint32(p3), 0)
	} else {
		res = int32(err)
	}
	return res
}

func (m *Host) wasiFdReaddir(p0 int32, p1 int32, p2 int32, p3 int64, p4 int32) int32 {
	rv, err := m.fdReaddir(fd(p0), pointer(p1), size(p2), dircookie(p3))
	res := int32(ErrnoSuccess)
	if err == ErrnoSuccess {
		m.mem.PutUint32(rv, uint32(p4), 0)
	} else {
		res = int32(err)
	}
	return res
}

func (m *Host) wasiFdRenumber(p0 int32, p1 int32) int32 {
	return int32(m.fdRenumber(fd(p0), fd(p1)))
}

func (m *Host) wasiFdSeek(p0 int32, p1 int64, p2 int32, p3 int32) int32 {
	rv, err := m.fdSeek(fd(p0), p1, uint8(p2))
	res := int32(ErrnoSuccess)
	if err == ErrnoSuccess {
		m.mem.PutUint64(rv, uint32(p3), 0)
	} else {
		res = int32(err)
	}
	return res
}

func (m *Host) wasiFdSync(p0 int32) int32 {
	return int32(m.fdSync(fd(p0)))
}

func (m *Host) wasiFdTell(p0 int32, p1 int32) int32 {
	rv, err := m.fdTell(fd(p0))
	res := int32(ErrnoSuccess)
	if err == ErrnoSuccess {
		m.mem.PutUint64(rv, uint32(p1), 0)
	} else {
		res = int32(err)
	}
	return res
}

func (m *Host) wasiFdWrite(p0 int32, p1 int32, p2 int32, p3 int32) int32 {
	rv, err := m.fdWrite(fd(p0), pointer(p1), size(p2))
	res := int32(ErrnoSuccess)
	if err == ErrnoSuccess {
		m.mem.PutUint32(rv, uint32(p3), 0)
	} else {
		res = int32(err)
	}
	return res
}

func (m *Host) wasiPathCreateDirectory(p0 int32, p1 int32, p2 int32) int32 {
	return int32(m.pathCreateDirectory(fd(p0), pointer(p1), size(p2)))
}

func (m *Host) wasiPathFilestatGet(p0 int32, p1 int32, p2 int32, p3 int32, p4 int32) int32 {
	rv, err := m.pathFilestatGet(fd(p0), Lookupflags(p1), pointer(p2), size(p3))
	res := int32(ErrnoSuccess)
	if err == ErrnoSuccess {
		rv.store(m.mem, uint32(p4))
	} else {
		res = int32(err)
	}
	return res
}

func (m *Host) wasiPathFilestatSetTimes(p0 int32, p1 int32, p2 int32, p3 int32, p4 int64, p5 int64, p6 int32) int32 {
	return int32(m.pathFilestatSetTimes(fd(p0), Lookupflags(p1), pointer(p2), size(p3), timestamp(p4), timestamp(p5), Fstflags(p6)))
}

func (m *Host) wasiPathLink(p0 int32, p1 int32, p2 int32, p3 int32, p4 int32, p5 int32, p6 int32) int32 {
	return int32(m.pathLink(fd(p0), Lookupflags(p1), pointer(p2), size(p3), fd(p4), pointer(p5), size(p6)))
}

func (m *Host) wasiPathOpen(p0 int32, p1 int32, p2 int32, p3 int32, p4 int32, p5 int64, p6 int64, p7 int32, p8 int32) int32 {
	rv, err := m.pathOpen(fd(p0), Lookupflags(p1), pointer(p2), size(p3), Oflags(p4), Rights(p5), Rights(p6), Fdflags(p7))
	res := int32(ErrnoSuccess)
	if err == ErrnoSuccess {
		m.mem.PutUint32(rv, uint32(p8), 0)
	} else {
		res = int32(err)
	}
	return res
}

func (m *Host) wasiPathReadlink(p0 int32, p1 int32, p2 int32, p3 int32, p4 int32, p5 int32) int32 {
	rv, err := m.pathReadlink(fd(p0), pointer(p1), size(p2), pointer(p3), size(p4))
	res := int32(ErrnoSuccess)
	if err == ErrnoSuccess {
		m.mem.PutUint32(rv, uint32(p5), 0)
	} else {
		res = int32(err)
	}
	return res
}

func (m *Host) wasiPathRemoveDirectory(p0 int32, p1 int32, p2 int32) int32 {
	return int32(m.pathRemoveDirectory(fd(p0), pointer(p1), size(p2)))
}

func (m *Host) wasiPathRename(p0 int32, p1 int32, p2 int32, p3 int32, p4 int32, p5 int32) int32 {
	return int32(m.pathRename(fd(p0), pointer(p1), size(p2), fd(p3), pointer(p4), size(p5)))
}

func (m *Host) wasiPathSymlink(p0 int32, p1 int32, p2 int32, p3 int32, p4 int32) int32 {
	return int32(m.pathSymlink(pointer(p0), size(p1), fd(p2), pointer(p3), size(p4)))
}

func (m *Host) wasiPathUnlinkFile(p0 int32, p1 int32, p2 int32) int32 {
	return int32(m.pathUnlinkFile(fd(p0), pointer(p1), size(p2)))
}

func (m *Host) wasiPollOneoff(p0 int32, p1 int32, p2 int32, p3 int32) int32 {
	rv, err := m.pollOneoff(pointer(p0), pointer(p1), size(p2))
	res := int32(ErrnoSuccess)
	if err == ErrnoSuccess {
		m.mem.PutUint32(rv, uint32(p3), 0)
	} else {
		res = int32(err)
	}
	return res
}

func (m *Host) wasiProcExit(p0 int32) {
	m.procExit(uint32(p0))
}

func (m *Host) wasiProcRaise(p0 int32) int32 {
	return int32(m.procRaise(uint8(p0)))
}

func (m *Host) wasiRandomGet(p0 int32, p1 int32) int32 {
	return int32(m.randomGet(pointer(p0), size(p1)))
}

func (m *Host) wasiSchedYield() int32 {
	return int32(m.schedYield())
}

func (m *Host) wasiSockRecv(p0 int32, p1 int32, p2 int32, p3 int32, p4 int32, p5 int32) int32 {
	rv0, rv1, err := m.sockRecv(fd(p0), pointer(p1), size(p2), uint16(p3))
	res := int32(ErrnoSuccess)
	if err == ErrnoSuccess {
		m.mem.PutUint32(rv0, uint32(p4), 0)
		m.mem.PutUint16(rv1, uint32(p5), 0)
	} else {
		res = int32(err)
	}
	return res
}

func (m *Host) wasiSockSend(p0 int32, p1 int32, p2 int32, p3 int32, p4 int32) int32 {
	rv, err := m.sockSend(fd(p0), pointer(p1), size(p2), uint16(p3))
	res := int32(ErrnoSuccess)
	if err == ErrnoSuccess {
		m.mem.PutUint32(rv, uint32(p4), 0)
	} else {
		res = int32(err)
	}
	return res
}

func (m *Host) wasiSockShutdown(p0 int32, p1 int32) int32 {
	return int32(m.sockShutdown(fd(p0), uint8(p1)))
}
