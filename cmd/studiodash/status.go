package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/bantamhq/studiodash/internal/dashboard"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the open document and project once",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg, "stderr"); err != nil {
		return err
	}

	sync := dashboard.NewSynchronizer(newClient(cfg), dashboardOptions(cfg)...)
	docErr := sync.RefreshDocumentState(cmd.Context())
	infoErr := sync.RefreshProjectInfo(cmd.Context())

	v := sync.Snapshot()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Backend:   %s\n", cfg.Backend.URL)
	printDocument(out, v)
	printProject(out, v)

	if v.Unreachable() {
		return formatAPIError("status", infoErr)
	}
	if docErr != nil && !v.ProjectMissing() {
		return formatAPIError("document state", docErr)
	}
	return nil
}

func printDocument(out io.Writer, v dashboard.View) {
	doc := v.Document
	switch {
	case doc == nil:
		fmt.Fprintln(out, "Document:  unavailable")
		return
	case doc.IsEmpty():
		fmt.Fprintln(out, "Document:  none open")
		return
	}

	fmt.Fprintf(out, "Document:  %s\n", doc.Filename)
	fmt.Fprintf(out, "Path:      %s\n", doc.Filepath)
	if doc.ObjectCount != nil {
		fmt.Fprintf(out, "Objects:   %s\n", humanize.Comma(int64(*doc.ObjectCount)))
	}
	if len(doc.Scenes) > 0 {
		fmt.Fprintf(out, "Scenes:    %s\n", strings.Join(doc.Scenes, ", "))
	}
}

func printProject(out io.Writer, v dashboard.View) {
	switch {
	case v.Info == nil && v.ProjectMissing():
		fmt.Fprintf(out, "Project:   %s\n", v.InfoErr.Message)
		return
	case v.Info == nil:
		fmt.Fprintln(out, "Project:   unavailable")
		return
	}

	info := v.Info
	fmt.Fprintf(out, "Project:   %s\n", info.ProjectRoot)
	if md := info.Metadata; md != nil {
		fmt.Fprintf(out, "Code:      %s\n", md.Project.Code)
		fmt.Fprintf(out, "Type:      %s\n", md.Project.Type)
		fmt.Fprintf(out, "Author:    %s (%s)\n", md.Author.Name, md.Author.Studio)
	}
}
