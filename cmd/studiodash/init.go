package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bantamhq/studiodash/internal/backend"
	"github.com/bantamhq/studiodash/internal/dashboard"
	"github.com/bantamhq/studiodash/internal/tui"
)

func newInitCmd() *cobra.Command {
	var (
		req         backend.InitRequest
		projectType string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new project",
		Long: `Create a new project folder through the backend.

Missing fields are asked for interactively when running in a terminal.`,
		Example: `  studiodash init --base-path /projects --code my_short --type short_film \
    --author "Ada" --studio "North"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := setupLogging(cfg, "stderr"); err != nil {
				return err
			}

			req.ProjectType = backend.ProjectType(projectType)
			if missingFields(req) && isTerminal() {
				req, err = tui.PromptInit(req)
				if err != nil {
					return err
				}
			}
			if err := req.Validate(); err != nil {
				return err
			}

			w := dashboard.NewWorkflow(newClient(cfg), nil, dashboardOptions(cfg)...)
			outcome, err := w.Submit(cmd.Context(), req)
			if err != nil {
				return err
			}

			switch o := outcome.(type) {
			case dashboard.Succeeded:
				fmt.Fprintf(cmd.OutOrStdout(), "Project created at %s\n", o.ProjectRoot)
				return nil
			case dashboard.Failed:
				return fmt.Errorf("project init failed: %s", o.Message)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.BasePath, "base-path", "", "folder the project is created in")
	flags.StringVar(&req.ProjectCode, "code", "", "project code; case, spaces and hyphens are folded by the backend")
	flags.StringVar(&projectType, "type", string(backend.ProjectSingleShot), "project type: single_shot, short_film or asset_library")
	flags.StringVar(&req.AuthorName, "author", "", "author name")
	flags.StringVar(&req.Studio, "studio", "", "studio name")
	flags.StringVar(&req.Role, "role", "", "author role")
	flags.StringVar(&req.Contact, "contact", "", "author contact")
	flags.StringVar(&req.Copyright, "copyright", "", "copyright notice")

	return cmd
}

func missingFields(req backend.InitRequest) bool {
	return strings.TrimSpace(req.BasePath) == "" || strings.TrimSpace(req.ProjectCode) == ""
}
