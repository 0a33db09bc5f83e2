package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/relpin/pkg/domain/model"
	"github.com/m-mizutani/relpin/pkg/usecase"
)

const manifestText = `#!/usr/bin/env bash
declare -A COMPONENT_MANIFESTS=(
    ["dashboard"]="opendatahub-io:odh-dashboard:main:manifests"
    ["kf-notebook-controller"]="opendatahub-io:kubeflow:main:components/notebook-controller/config"
    ["odh-notebook-controller"]="opendatahub-io:kubeflow:main:components/odh-notebook-controller/config"
    ["model-registry-operator"]="opendatahub-io:model-registry-operator:main:config"
)
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "get_all_manifests.sh")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0755))
	return path
}

func readManifest(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	gt.NoError(t, err)
	return string(data)
}

func TestManifest_Apply(t *testing.T) {
	path := writeManifest(t, manifestText)
	exports := model.NewExports(map[string]string{
		"component_spec_dashboard":                "v2.20.0",
		"component_org_dashboard":                 "red-hat-data-services",
		"component_sha_dashboard":                 "abc123",
		"component_spec_kf-notebook-controller":  "v1.9-branch",
		"component_org_kf-notebook-controller":   "opendatahub-io",
		"component_spec_odh-notebook-controller": "v1.9-branch",
		"component_org_odh-notebook-controller":  "opendatahub-io",
	})

	result, err := usecase.NewManifest().Apply(context.Background(), path, exports)
	gt.NoError(t, err)
	gt.True(t, result.Written)
	gt.False(t, result.DryRun)

	content := readManifest(t, path)
	gt.String(t, content).Contains(`["dashboard"]="red-hat-data-services:odh-dashboard:v2.20.0@abc123:manifests"`)
	gt.String(t, content).Contains(`["kf-notebook-controller"]="opendatahub-io:kubeflow:v1.9-branch:components/notebook-controller/config"`)
	gt.String(t, content).Contains(`["odh-notebook-controller"]="opendatahub-io:kubeflow:v1.9-branch:components/odh-notebook-controller/config"`)
	// Entries without exports stay byte-identical
	gt.String(t, content).Contains(`    ["model-registry-operator"]="opendatahub-io:model-registry-operator:main:config"` + "\n")

	gt.Equal(t, result.RefsUpdated, []string{"dashboard", "kf-notebook-controller", "odh-notebook-controller"})
	gt.Equal(t, result.OrgsUpdated, []string{"dashboard"})
	gt.Number(t, len(result.NotFound)).Equal(0)
	gt.Number(t, len(result.Changes)).Equal(3)

	info, err := os.Stat(path)
	gt.NoError(t, err)
	gt.Equal(t, info.Mode().Perm(), os.FileMode(0755))
}

func TestManifest_ApplyIsIdempotent(t *testing.T) {
	path := writeManifest(t, manifestText)
	exports := model.NewExports(map[string]string{
		"component_spec_dashboard": "v2.20.0",
		"component_org_dashboard":  "red-hat-data-services",
		"component_sha_dashboard":  "abc123",
	})
	uc := usecase.NewManifest()

	first, err := uc.Apply(context.Background(), path, exports)
	gt.NoError(t, err)
	gt.True(t, first.Written)
	afterFirst := readManifest(t, path)

	second, err := uc.Apply(context.Background(), path, exports)
	gt.NoError(t, err)
	gt.False(t, second.Written)
	gt.False(t, second.Changed())
	gt.Number(t, len(second.NotFound)).Equal(0)
	gt.Equal(t, readManifest(t, path), afterFirst)
}

func TestManifest_ApplyNotFound(t *testing.T) {
	path := writeManifest(t, manifestText)
	exports := model.NewExports(map[string]string{
		"component_spec_unknown-thing": "v1",
		"component_org_unknown-thing":  "acme",
		"component_org_also-missing":   "acme",
	})

	result, err := usecase.NewManifest().Apply(context.Background(), path, exports)
	gt.NoError(t, err)
	// Ref misses are reported before org-only misses
	gt.Equal(t, result.NotFound, []string{"unknown-thing", "also-missing"})
	gt.False(t, result.Written)
	gt.Equal(t, readManifest(t, path), manifestText)
}

func TestManifest_ApplyOrgOnly(t *testing.T) {
	path := writeManifest(t, manifestText)
	exports := model.NewExports(map[string]string{
		"component_org_model-registry-operator": "red-hat-data-services",
	})

	result, err := usecase.NewManifest().Apply(context.Background(), path, exports)
	gt.NoError(t, err)
	gt.Number(t, len(result.RefsUpdated)).Equal(0)
	gt.Equal(t, result.OrgsUpdated, []string{"model-registry-operator"})
	gt.String(t, readManifest(t, path)).Contains(`["model-registry-operator"]="red-hat-data-services:model-registry-operator:main:config"`)
}

func TestManifest_ApplyNoUpdates(t *testing.T) {
	// The file is never opened when there is nothing to apply
	path := filepath.Join(t.TempDir(), "missing.sh")

	result, err := usecase.NewManifest().Apply(context.Background(), path, model.Exports{})
	gt.NoError(t, err)
	gt.False(t, result.Written)
	gt.False(t, result.Changed())
}

func TestManifest_ApplyMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.sh")
	exports := model.NewExports(map[string]string{"component_spec_dashboard": "v1"})

	result, err := usecase.NewManifest().Apply(context.Background(), path, exports)
	gt.Error(t, err)
	gt.Value(t, result).Nil()
	gt.String(t, err.Error()).Contains("failed to stat manifest")
}

func TestManifest_ApplyDryRun(t *testing.T) {
	path := writeManifest(t, manifestText)
	exports := model.NewExports(map[string]string{
		"component_spec_dashboard": "v2.20.0",
		"component_org_dashboard":  "opendatahub-io",
	})

	result, err := usecase.NewManifest(usecase.WithDryRun(true)).Apply(context.Background(), path, exports)
	gt.NoError(t, err)
	gt.True(t, result.DryRun)
	gt.False(t, result.Written)
	gt.Number(t, len(result.Changes)).Equal(1)
	gt.String(t, result.Changes[0].After).Contains("opendatahub-io:odh-dashboard:v2.20.0:manifests")
	gt.Equal(t, readManifest(t, path), manifestText)
}

func TestManifest_ApplySlashedKeyPreferredOrder(t *testing.T) {
	// Both the dash form and the slash form exist; the dash form wins
	content := `    ["workbenches-notebooks"]="a:notebooks:main:x"
    ["workbenches/notebooks"]="a:notebooks:main:y"
`
	path := writeManifest(t, content)
	exports := model.NewExports(map[string]string{"component_spec_workbenches-notebooks": "v2"})

	_, err := usecase.NewManifest().Apply(context.Background(), path, exports)
	gt.NoError(t, err)
	gt.Equal(t, readManifest(t, path), `    ["workbenches-notebooks"]="a:notebooks:v2:x"
    ["workbenches/notebooks"]="a:notebooks:main:y"
`)
}

func TestManifest_ApplyBothKeyFormsIsIdempotent(t *testing.T) {
	// The dash form is found first; the slash form is never touched, even once
	// the dash form is already current
	content := `    ["workbenches-notebooks"]="a:notebooks:main:x"
    ["workbenches/notebooks"]="a:notebooks:main:y"
`
	path := writeManifest(t, content)
	exports := model.NewExports(map[string]string{"component_spec_workbenches-notebooks": "v2"})
	uc := usecase.NewManifest()

	first, err := uc.Apply(context.Background(), path, exports)
	gt.NoError(t, err)
	gt.True(t, first.Written)
	gt.Equal(t, first.RefsUpdated, []string{"workbenches-notebooks"})
	afterFirst := readManifest(t, path)
	gt.Equal(t, afterFirst, `    ["workbenches-notebooks"]="a:notebooks:v2:x"
    ["workbenches/notebooks"]="a:notebooks:main:y"
`)

	second, err := uc.Apply(context.Background(), path, exports)
	gt.NoError(t, err)
	gt.False(t, second.Written)
	gt.False(t, second.Changed())
	gt.Number(t, len(second.RefsUpdated)).Equal(0)
	gt.Number(t, len(second.NotFound)).Equal(0)
	gt.Equal(t, readManifest(t, path), afterFirst)
}
