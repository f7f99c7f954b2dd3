// Command frontier renders fractals locally or fetches them from a fractal
// server, and manages the bookmark file shared with the server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	fractal "github.com/marben/fractal_frontier"
	"github.com/marben/fractal_frontier/bookmark"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := mainCmd().ExecuteContext(ctx); err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}

func mainCmd() *cobra.Command {
	var bookmarks string
	cmd := &cobra.Command{
		Use:   "frontier",
		Short: "Render and explore escape-time fractals",
	}
	cmd.PersistentFlags().StringVar(&bookmarks, "bookmarks", bookmark.DefaultPath, "bookmark file")

	store := func() *bookmark.Store { return bookmark.NewStore(bookmarks) }
	cmd.AddCommand(
		renderCmd(store),
		fetchCmd(store),
		bookmarkCmd(store),
		themesCmd(),
	)
	return cmd
}

func themesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the color themes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			for _, t := range fractal.Themes() {
				fmt.Fprintln(out, t)
			}
			fmt.Fprintln(out, fractal.CPUCoresTheme)
		},
	}
}
