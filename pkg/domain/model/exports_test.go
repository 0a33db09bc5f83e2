package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/relpin/pkg/domain/model"
)

func TestExportsFromEnviron(t *testing.T) {
	exports := model.ExportsFromEnviron([]string{
		"PATH=/usr/bin",
		"component_spec_dashboard=v2.1",
		"component_org_dashboard=org1",
		"component_sha_dashboard=abc=def",
		"component_spec_broken",
		"GITHUB_ENV=/tmp/env",
	})

	gt.Equal(t, exports, model.Exports{
		"component_spec_dashboard": "v2.1",
		"component_org_dashboard":  "org1",
		"component_sha_dashboard":  "abc=def",
	})
}

func TestNewExports(t *testing.T) {
	exports := model.NewExports(map[string]string{
		"component_spec_a": "main",
		"HOME":             "/root",
	})
	gt.Equal(t, exports, model.Exports{"component_spec_a": "main"})
}

func TestExports_Keys(t *testing.T) {
	exports := model.Exports{
		"component_spec_b": "x",
		"component_org_a":  "y",
		"component_spec_a": "z",
	}
	gt.Equal(t, exports.Keys(), []string{"component_org_a", "component_spec_a", "component_spec_b"})
}

func TestExports_Updates(t *testing.T) {
	exports := model.Exports{
		"component_spec_workbenches_notebooks": "release-2.0",
		"component_sha_workbenches_notebooks":  "abcdef123",
		"component_org_workbenches_notebooks":  "org2",
		"component_spec_dashboard":             "v2.1",
		"component_org_kserve":                 "org3",
		"component_sha_orphan":                 "fff",
	}

	updates := exports.Updates()
	gt.Equal(t, len(updates), 3)

	gt.Equal(t, *updates[0], model.ManifestUpdate{Component: "dashboard", Ref: "v2.1"})
	gt.Equal(t, *updates[1], model.ManifestUpdate{Component: "kserve", Org: "org3"})
	gt.Equal(t, *updates[2], model.ManifestUpdate{
		Component: "workbenches-notebooks",
		Ref:       "release-2.0",
		SHA:       "abcdef123",
		Org:       "org2",
	})
}

func TestExports_Updates_Empty(t *testing.T) {
	gt.Equal(t, len(model.Exports{}.Updates()), 0)
	gt.Equal(t, len(model.Exports{"component_sha_x": "abc"}.Updates()), 0)
}
