package backend

import (
	"bytes"
	"encoding/json"
)

// DocumentState describes the document currently open in the backend.
// A value with every field absent means nothing is open.
type DocumentState struct {
	Filepath    string          `json:"filepath,omitempty"`
	Filename    string          `json:"filename,omitempty"`
	ProjectRoot string          `json:"project_root,omitempty"`
	ObjectCount *int            `json:"object_count,omitempty"`
	Scenes      []string        `json:"scenes,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
}

// IsEmpty reports whether no document is open.
func (d *DocumentState) IsEmpty() bool {
	if d == nil {
		return true
	}
	meta := bytes.TrimSpace(d.Metadata)
	return d.Filepath == "" && d.Filename == "" && d.ProjectRoot == "" &&
		d.ObjectCount == nil && len(d.Scenes) == 0 &&
		(len(meta) == 0 || bytes.Equal(meta, []byte("null")))
}

// ProjectInfo describes the project registered at the backend's root.
type ProjectInfo struct {
	ProjectRoot string           `json:"project_root,omitempty"`
	Filepath    string           `json:"filepath,omitempty"`
	Filename    string           `json:"filename,omitempty"`
	ObjectCount *int             `json:"object_count,omitempty"`
	Exists      bool             `json:"exists,omitempty"`
	Metadata    *ProjectMetadata `json:"metadata,omitempty"`
}

// ProjectMetadata mirrors the project metadata file written at init time.
type ProjectMetadata struct {
	Project ProjectSection `json:"project"`
	Author  AuthorSection  `json:"author"`
}

type ProjectSection struct {
	Code          string `json:"code,omitempty"`
	Type          string `json:"type,omitempty"`
	SchemaVersion string `json:"schema_version,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	CreatedWith   string `json:"created_with,omitempty"`
}

type AuthorSection struct {
	Name      string `json:"name,omitempty"`
	Studio    string `json:"studio,omitempty"`
	Role      string `json:"role,omitempty"`
	Contact   string `json:"contact,omitempty"`
	Copyright string `json:"copyright,omitempty"`
}

// Entry is one row of a directory listing. Path is relative to the project
// root, slash separated, without a leading slash.
type Entry struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	IsDir bool   `json:"is_dir"`
	Size  int64  `json:"size"`
}

// Listing is one directory level as served by the backend. Path is the
// canonical form the backend confirmed, which may differ from the request.
type Listing struct {
	Path  string  `json:"path"`
	Files []Entry `json:"files"`
}

// ProjectType selects the directory template used by project init.
type ProjectType string

const (
	ProjectSingleShot   ProjectType = "single_shot"
	ProjectShortFilm    ProjectType = "short_film"
	ProjectAssetLibrary ProjectType = "asset_library"
)

// ProjectTypes lists the known types in display order.
var ProjectTypes = []ProjectType{ProjectSingleShot, ProjectShortFilm, ProjectAssetLibrary}

func (t ProjectType) Valid() bool {
	switch t {
	case ProjectSingleShot, ProjectShortFilm, ProjectAssetLibrary:
		return true
	}
	return false
}

// Label is the human readable name of the project type.
func (t ProjectType) Label() string {
	switch t {
	case ProjectSingleShot:
		return "Single shot"
	case ProjectShortFilm:
		return "Short film"
	case ProjectAssetLibrary:
		return "Asset library"
	}
	return string(t)
}

// InitRequest is the payload of the project init command.
type InitRequest struct {
	BasePath    string      `json:"base_path"`
	ProjectCode string      `json:"project_code"`
	ProjectType ProjectType `json:"project_type"`
	AuthorName  string      `json:"author_name"`
	Studio      string      `json:"studio"`
	Role        string      `json:"role,omitempty"`
	Contact     string      `json:"contact,omitempty"`
	Copyright   string      `json:"copyright,omitempty"`
}

// InitResponse is the backend's answer to project init.
type InitResponse struct {
	Success     bool   `json:"success"`
	ProjectRoot string `json:"project_root,omitempty"`
	Error       string `json:"error,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

// Reason returns the failure explanation the backend supplied, if any.
func (r *InitResponse) Reason() string {
	if r.Error != "" {
		return r.Error
	}
	return r.Detail
}

// errorBody is the shape of backend error responses. FastAPI reports
// HTTPException details under "detail", everything else uses "error".
type errorBody struct {
	Error  string          `json:"error"`
	Detail json.RawMessage `json:"detail"`
}

func (b errorBody) reason() string {
	if b.Error != "" {
		return b.Error
	}
	var detail string
	if err := json.Unmarshal(b.Detail, &detail); err == nil {
		return detail
	}
	return ""
}
