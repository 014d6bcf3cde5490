package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [path]",
		Short: "List a folder of the current project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := setupLogging(cfg, "stderr"); err != nil {
				return err
			}

			var path string
			if len(args) == 1 {
				path = args[0]
			}

			listing, err := newClient(cfg).ListFiles(cmd.Context(), path)
			if err != nil {
				return formatAPIError("list files", err)
			}

			if len(listing.Files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Empty folder")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, e := range listing.Files {
				if e.IsDir {
					fmt.Fprintf(w, "%s/\t-\n", e.Name)
					continue
				}
				fmt.Fprintf(w, "%s\t%s\n", e.Name, humanize.IBytes(uint64(max(e.Size, 0))))
			}
			return w.Flush()
		},
	}
}
