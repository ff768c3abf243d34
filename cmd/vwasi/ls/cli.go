package ls

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pgavlin/vwasi/cmd/vwasi/guest"
	"github.com/pgavlin/vwasi/wasi"
)

var dirColor = color.New(color.FgBlue, color.Bold)

func Command() *cobra.Command {
	var all bool
	var long bool

	command := &cobra.Command{
		Use:   "ls [image dir] [path]",
		Short: "List a directory inside a filesystem image",
		Long:  "Load a host directory as a virtual filesystem image and list a directory within it through the system interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return errors.New("expected an image directory and an optional path")
			}

			fsys, err := guest.LoadDir(args[0])
			if err != nil {
				return err
			}
			g := guest.New(fsys, os.Stdout)

			fd := int32(guest.PreopenFd)
			if len(args) == 2 && args[1] != "." {
				fd, err = g.PathOpen(guest.PreopenFd, args[1], wasi.OflagDirectory, 0)
				if err != nil {
					return err
				}
				defer g.Close(fd)
			}

			entries, err := g.ReadDir(fd)
			if err != nil {
				return err
			}

			for _, entry := range entries {
				if !all && (entry.Name == "." || entry.Name == "..") {
					continue
				}
				name := entry.Name
				if entry.Type == wasi.FiletypeDirectory {
					name = dirColor.Sprint(name)
				}
				if long {
					var size uint64
					if entry.Type == wasi.FiletypeRegularFile {
						stat, err := g.Stat(fd, entry.Name)
						if err != nil {
							return err
						}
						size = stat.Size
					}
					fmt.Printf("%8d %8d %s\n", entry.Ino, size, name)
				} else {
					fmt.Println(name)
				}
			}
			return nil
		},
	}

	command.Flags().BoolVarP(&all, "all", "a", false, "include the . and .. entries")
	command.Flags().BoolVarP(&long, "long", "l", false, "print inode numbers and sizes")

	return command
}
