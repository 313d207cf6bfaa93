package generation

import (
	"path"
	"path/filepath"
	"slices"

	"github.com/gelo7212/express-ts-backend-generator/internal/core/effects"
	"github.com/gelo7212/express-ts-backend-generator/internal/core/patch"
)

// RenderedFile is the output of one template render.
type RenderedFile struct {
	Template string
	RelPath  string // slash-separated, relative to the project root
	Content  string
}

// WritePlanInput contains pre-fetched data for planning file writes.
type WritePlanInput struct {
	ProjectPath string
	Files       []RenderedFile
	Existing    map[string]bool // keyed by RelPath
	Force       bool
}

// FileWrite is one planned output file.
type FileWrite struct {
	RelPath   string
	Overwrite bool
	Effect    effects.CompositeEffect
}

// WritePlan represents the planned effects for writing rendered files.
type WritePlan struct {
	Writes  []FileWrite
	Skipped []string
	Logs    []effects.LogEffect
}

// GenerateWritePlan decides which rendered files are written. Existing files are skipped
// unless forced, and when two templates render to the same path only the first is kept.
// This is a pure function - existence must be pre-fetched.
func GenerateWritePlan(input WritePlanInput) WritePlan {
	var plan WritePlan
	planned := make(map[string]bool)

	for _, f := range input.Files {
		if planned[f.RelPath] {
			plan.Logs = append(plan.Logs, effects.LogEffect{
				Level:   "warn",
				Message: "duplicate output path, keeping first template",
				Fields:  map[string]any{"path": f.RelPath, "template": f.Template},
			})
			continue
		}
		planned[f.RelPath] = true

		exists := input.Existing[f.RelPath]
		if exists && !input.Force {
			plan.Skipped = append(plan.Skipped, f.RelPath)
			plan.Logs = append(plan.Logs, effects.LogEffect{
				Level:   "info",
				Message: "file exists, skipping (use --force to overwrite)",
				Fields:  map[string]any{"path": f.RelPath},
			})
			continue
		}

		abs := filepath.Join(input.ProjectPath, filepath.FromSlash(f.RelPath))
		plan.Writes = append(plan.Writes, FileWrite{
			RelPath:   f.RelPath,
			Overwrite: exists,
			Effect: effects.CompositeEffect{Effects: []effects.Effect{
				effects.FileEffect{
					Operation: "mkdir",
					Path:      filepath.Join(input.ProjectPath, filepath.FromSlash(path.Dir(f.RelPath))),
					Mode:      0755,
				},
				effects.FileEffect{
					Operation: "write",
					Path:      abs,
					Content:   []byte(f.Content),
					Mode:      0644,
				},
			}},
		})
	}

	return plan
}

// PatchTarget pairs a shared project file with the patches that register new code in it.
type PatchTarget struct {
	Path    string // slash-separated, relative to the project root
	Patches []patch.Patch

	// Seed, when set, is the initial text of a missing file. Targets without a seed
	// are only patched when the file exists.
	Seed string
}

// PatchPlanInput contains pre-fetched data for planning patches.
type PatchPlanInput struct {
	ProjectPath string
	Targets     []PatchTarget
	Contents    map[string]string // current text by RelPath; missing files are absent
}

// PatchedFile is one shared file that changes.
type PatchedFile struct {
	RelPath string
	Applied []string
	Effect  effects.FileEffect
}

// PatchPlan represents the planned effects for patching shared files.
type PatchPlan struct {
	Writes    []PatchedFile
	Unchanged []string
	Warnings  []string
}

// GeneratePatchPlan applies each target's patches to the pre-fetched file contents.
// Missing files and missing anchors become warnings.
func GeneratePatchPlan(input PatchPlanInput) PatchPlan {
	var plan PatchPlan

	working := make(map[string]string, len(input.Contents))
	for k, v := range input.Contents {
		working[k] = v
	}
	applied := make(map[string][]string)
	var order []string

	for _, target := range input.Targets {
		text, ok := working[target.Path]
		if !ok && target.Seed != "" {
			text, ok = target.Seed, true
		}
		if !ok {
			plan.Warnings = append(plan.Warnings, "cannot update "+target.Path+": file not found")
			continue
		}

		result := patch.Apply(text, target.Patches)
		for _, w := range result.Warnings {
			plan.Warnings = append(plan.Warnings, target.Path+": "+w.String())
		}
		if !result.Changed() {
			continue
		}

		if _, seen := applied[target.Path]; !seen {
			order = append(order, target.Path)
		}
		applied[target.Path] = append(applied[target.Path], result.Applied...)
		working[target.Path] = result.Text
	}

	for _, rel := range order {
		plan.Writes = append(plan.Writes, PatchedFile{
			RelPath: rel,
			Applied: applied[rel],
			Effect: effects.FileEffect{
				Operation: "write",
				Path:      filepath.Join(input.ProjectPath, filepath.FromSlash(rel)),
				Content:   []byte(working[rel]),
				Mode:      0644,
			},
		})
	}

	for _, target := range input.Targets {
		if _, ok := input.Contents[target.Path]; ok && len(applied[target.Path]) == 0 && !slices.Contains(plan.Unchanged, target.Path) {
			plan.Unchanged = append(plan.Unchanged, target.Path)
		}
	}

	return plan
}
