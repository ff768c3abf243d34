package stat

import (
	"encoding/csv"
	"errors"
	"os"
	"time"

	"github.com/jszwec/csvutil"
	"github.com/spf13/cobra"

	"github.com/pgavlin/vwasi/cmd/vwasi/guest"
	"github.com/pgavlin/vwasi/wasi"
)

type row struct {
	Path  string `csv:"path"`
	Type  string `csv:"type"`
	Inode uint64 `csv:"inode"`
	Size  uint64 `csv:"size"`
	Mtime string `csv:"mtime"`
}

func filetypeString(t wasi.Filetype) string {
	switch t {
	case wasi.FiletypeRegularFile:
		return "file"
	case wasi.FiletypeDirectory:
		return "directory"
	case wasi.FiletypeCharacterDevice:
		return "character device"
	default:
		return "unknown"
	}
}

func Command() *cobra.Command {
	command := &cobra.Command{
		Use:   "stat [image dir] [paths...]",
		Short: "Print file attributes from a filesystem image as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("expected an image directory and at least one path")
			}

			fsys, err := guest.LoadDir(args[0])
			if err != nil {
				return err
			}
			g := guest.New(fsys, os.Stdout)

			csvWriter := csv.NewWriter(os.Stdout)
			defer csvWriter.Flush()
			encoder := csvutil.NewEncoder(csvWriter)

			for _, path := range args[1:] {
				info, err := g.Stat(guest.PreopenFd, path)
				if err != nil {
					return err
				}
				err = encoder.Encode(row{
					Path:  path,
					Type:  filetypeString(info.Filetype),
					Inode: info.Ino,
					Size:  info.Size,
					Mtime: time.Unix(0, int64(info.Mtim)).UTC().Format(time.RFC3339),
				})
				if err != nil {
					return err
				}
			}
			return nil
		},
	}

	return command
}
