package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/simonhull/devgenesis"
)

// ManifestFile is the project metadata file written at the project root
const ManifestFile = ".devgenesis.json"

// Manifest records how a project was generated
type Manifest struct {
	ProjectName  string               `json:"project_name"`
	Description  string               `json:"description"`
	ProjectType  string               `json:"project_type"`
	Technologies []ManifestTechnology `json:"technologies"`
	CreatedAt    string               `json:"created_at"`
	Generator    string               `json:"generator"`
}

// ManifestTechnology is a technology entry; Version is null when unknown
type ManifestTechnology struct {
	Name    string  `json:"name"`
	Version *string `json:"version"`
}

// NewManifest builds the manifest for req created at now
func NewManifest(req Request, now time.Time) Manifest {
	techs := make([]ManifestTechnology, 0, len(req.Technologies))
	for _, t := range req.Technologies {
		entry := ManifestTechnology{Name: t.Name}
		if t.Version != "" {
			version := t.Version
			entry.Version = &version
		}
		techs = append(techs, entry)
	}

	return Manifest{
		ProjectName:  req.Name,
		Description:  req.Description,
		ProjectType:  req.ProjectType,
		Technologies: techs,
		CreatedAt:    now.Format(time.RFC3339),
		Generator:    devgenesis.Generator(),
	}
}

// ReadManifest loads the manifest of the project at root
func ReadManifest(root string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(root, ManifestFile))
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ManifestFile, err)
	}
	return &m, nil
}

func writeManifest(_ context.Context, r *run) error {
	data, err := json.MarshalIndent(NewManifest(r.req, r.now), "", "  ")
	if err != nil {
		return &Error{Kind: KindFilesystem, Op: "encode manifest", Err: err}
	}
	data = append(data, '\n')

	if err := os.WriteFile(filepath.Join(r.root, ManifestFile), data, filePerm); err != nil {
		return &Error{Kind: KindFilesystem, Op: "write " + ManifestFile, Err: err}
	}

	r.emit(SeveritySuccess, "Created file: %s", ManifestFile)
	return nil
}
