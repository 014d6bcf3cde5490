package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/bantamhq/studiodash/internal/backend"
	"github.com/bantamhq/studiodash/internal/core"
)

type initFormValues struct {
	basePath    string
	projectCode string
	projectType backend.ProjectType
	authorName  string
	studio      string
	role        string
	contact     string
	copyright   string
}

func newInitFormValues(basePath string) *initFormValues {
	return &initFormValues{
		basePath:    basePath,
		projectType: backend.ProjectSingleShot,
	}
}

func (v *initFormValues) request() backend.InitRequest {
	return backend.InitRequest{
		BasePath:    strings.TrimSpace(v.basePath),
		ProjectCode: strings.TrimSpace(v.projectCode),
		ProjectType: v.projectType,
		AuthorName:  strings.TrimSpace(v.authorName),
		Studio:      strings.TrimSpace(v.studio),
		Role:        strings.TrimSpace(v.role),
		Contact:     strings.TrimSpace(v.contact),
		Copyright:   strings.TrimSpace(v.copyright),
	}
}

func projectTypeOptions() []huh.Option[backend.ProjectType] {
	options := make([]huh.Option[backend.ProjectType], len(backend.ProjectTypes))
	for i, t := range backend.ProjectTypes {
		options[i] = huh.NewOption(t.Label(), t)
	}
	return options
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

// codeHint describes how the backend will store code.
func codeHint(code string) string {
	folded := core.NormalizeProjectCode(strings.TrimSpace(code))
	if folded == "" || folded == strings.TrimSpace(code) {
		return "Short identifier for the project folder"
	}
	return "Stored as " + folded
}

// newInitForm builds the project init form bound to v.
func newInitForm(v *initFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Base path").
				Description("Folder the project is created in").
				Placeholder("/projects").
				Value(&v.basePath).
				Validate(required("base path")),
			huh.NewInput().
				Title("Project code").
				DescriptionFunc(func() string { return codeHint(v.projectCode) }, &v.projectCode).
				Placeholder("my_short").
				Value(&v.projectCode).
				Validate(core.ValidateProjectCode),
			huh.NewSelect[backend.ProjectType]().
				Title("Project type").
				Options(projectTypeOptions()...).
				Value(&v.projectType),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Author").
				Placeholder("optional").
				Value(&v.authorName),
			huh.NewInput().
				Title("Studio").
				Placeholder("optional").
				Value(&v.studio),
			huh.NewInput().
				Title("Role").
				Placeholder("optional").
				Value(&v.role),
			huh.NewInput().
				Title("Contact").
				Placeholder("optional").
				Value(&v.contact),
			huh.NewInput().
				Title("Copyright").
				Placeholder("optional").
				Value(&v.copyright),
		),
	).WithTheme(huh.ThemeBase()).WithWidth(formWidth - 4).WithShowHelp(true)
}

// PromptInit asks for the fields of req on the terminal, starting from the
// values already set.
func PromptInit(req backend.InitRequest) (backend.InitRequest, error) {
	v := &initFormValues{
		basePath:    req.BasePath,
		projectCode: req.ProjectCode,
		projectType: req.ProjectType,
		authorName:  req.AuthorName,
		studio:      req.Studio,
		role:        req.Role,
		contact:     req.Contact,
		copyright:   req.Copyright,
	}
	if !v.projectType.Valid() {
		v.projectType = backend.ProjectSingleShot
	}

	if err := newInitForm(v).Run(); err != nil {
		return req, err
	}
	return v.request(), nil
}
