package fs

import (
	"fmt"
	"sort"
	"strings"
)

// FromMap builds a filesystem from a path-to-content map. Intermediate
// directories are created as needed; a key ending in "/" names an empty
// directory. Keys are processed in sorted order so ino assignment and
// enumeration order are deterministic.
func FromMap(files map[string][]byte) (*FS, error) {
	fs := New()

	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path, err := Parse(k)
		if err != nil {
			return nil, fmt.Errorf("fs: %q: %w", k, err)
		}
		dir := path.Dir || strings.HasSuffix(k, "/")

		parent := fs.root
		for i, name := range path.Components {
			last := i == len(path.Components)-1
			if last && !dir {
				if _, ok := parent.Get(name); ok {
					return nil, fmt.Errorf("fs: %q: %w", k, ErrExists)
				}
				parent.put(name, fs.NewFile(append([]byte(nil), files[k]...), false))
				break
			}

			next, ok := parent.Get(name)
			if !ok {
				child := fs.NewDirectory()
				parent.put(name, child)
				parent = child
				continue
			}
			child, isDir := next.(*Directory)
			if !isDir {
				return nil, fmt.Errorf("fs: %q: %w", k, ErrNotDir)
			}
			parent = child
		}
	}
	return fs, nil
}
