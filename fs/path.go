package fs

import "strings"

// NameMax is the longest permitted path component, in bytes.
const NameMax = 255

// Path is a parsed, normalized path request: the ordered components to walk
// from a base directory, plus a "must be a directory" flag set by a trailing
// slash. A Path never contains ".", "..", or empty components.
type Path struct {
	Components []string
	Dir        bool
}

// Parse normalizes a raw guest path. Paths are relative capabilities: a
// leading slash, an embedded NUL, or a ".." that would climb past the base
// directory is rejected rather than resolved.
func Parse(s string) (Path, error) {
	if s == "" || strings.IndexByte(s, 0) >= 0 {
		return Path{}, ErrInvalidPath
	}
	if s[0] == '/' {
		return Path{}, ErrAbsolutePath
	}

	p := Path{Dir: strings.HasSuffix(s, "/")}
	for _, c := range strings.Split(s, "/") {
		switch c {
		case "", ".":
			// Dropped. A trailing "." still names a directory.
			p.Dir = p.Dir || strings.HasSuffix(s, "/.")
		case "..":
			if len(p.Components) == 0 {
				return Path{}, ErrPathEscape
			}
			p.Components = p.Components[:len(p.Components)-1]
		default:
			if len(c) > NameMax {
				return Path{}, ErrNameTooLong
			}
			p.Components = append(p.Components, c)
		}
	}
	if s == "." {
		p.Dir = true
	}
	return p, nil
}

// String re-joins the normalized components, honoring the directory flag.
func (p Path) String() string {
	if len(p.Components) == 0 {
		return "."
	}
	s := strings.Join(p.Components, "/")
	if p.Dir {
		s += "/"
	}
	return s
}
