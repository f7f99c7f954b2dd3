package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/marben/fractal_frontier/bookmark"
)

func bookmarkCmd(store func() *bookmark.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmark",
		Short: "Manage saved views",
	}
	cmd.AddCommand(
		bookmarkListCmd(store),
		bookmarkSaveCmd(store),
		bookmarkDeleteCmd(store),
	)
	return cmd
}

func bookmarkListCmd(store func() *bookmark.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bookmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			bookmarks, err := store().Load()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tNAME\tTYPE\tTHEME\tZOOM\tITER\tSAVED")
			for i, b := range bookmarks {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2fx\t%d\t%s\n", i, b.Name, b.FractalType, b.Theme, b.ZoomLevel, b.MaxIterations, b.Timestamp)
			}
			return w.Flush()
		},
	}
}

func bookmarkSaveCmd(store func() *bookmark.Store) *cobra.Command {
	var vf viewFlags
	cmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Save the view described by the flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			st := store()
			s, _, err := vf.state(cmd, st)
			if err != nil {
				return err
			}
			b := bookmark.FromState(args[0], s, time.Now())
			if err := st.Add(b); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %q at zoom %.2fx to %s\n", b.Name, b.ZoomLevel, st.Path())
			return nil
		},
	}
	vf.register(cmd)
	return cmd
}

func bookmarkDeleteCmd(store func() *bookmark.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "delete INDEX|NAME",
		Short: "Delete a bookmark by list index or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			st := store()
			index, err := strconv.Atoi(args[0])
			if err != nil {
				index, err = indexOf(st, args[0])
				if err != nil {
					return err
				}
			}
			return st.Delete(index)
		},
	}
}

func indexOf(st *bookmark.Store, name string) (int, error) {
	bookmarks, err := st.Load()
	if err != nil {
		return 0, err
	}
	for i, b := range bookmarks {
		if b.Name == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", bookmark.ErrNotFound, name)
}
