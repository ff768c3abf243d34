package cat

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/pgavlin/vwasi/cmd/vwasi/guest"
)

func Command() *cobra.Command {
	command := &cobra.Command{
		Use:   "cat [image dir] [paths...]",
		Short: "Print files from a filesystem image",
		Long:  "Load a host directory as a virtual filesystem image and print files within it through the system interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("expected an image directory and at least one path")
			}

			fsys, err := guest.LoadDir(args[0])
			if err != nil {
				return err
			}
			g := guest.New(fsys, os.Stdout)

			for _, path := range args[1:] {
				fd, err := g.PathOpen(guest.PreopenFd, path, 0, 0)
				if err != nil {
					return err
				}
				data, err := g.ReadAll(fd)
				g.Close(fd)
				if err != nil {
					return err
				}
				if _, err := os.Stdout.Write(data); err != nil {
					return err
				}
			}
			return nil
		},
	}

	return command
}
