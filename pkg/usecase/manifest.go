package usecase

import (
	"context"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpin/pkg/domain/interfaces"
	"github.com/m-mizutani/relpin/pkg/domain/model"
	"github.com/m-mizutani/relpin/pkg/utils/fsutil"
)

type manifestUseCase struct {
	dryRun bool
}

// ManifestOption is a functional option for the manifest use case
type ManifestOption func(*manifestUseCase)

// WithDryRun computes the rewrite without writing the file
func WithDryRun(dryRun bool) ManifestOption {
	return func(uc *manifestUseCase) {
		uc.dryRun = dryRun
	}
}

// NewManifest creates a new instance of ManifestUseCase
func NewManifest(opts ...ManifestOption) interfaces.ManifestUseCase {
	uc := &manifestUseCase{}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Apply rewrites ref and org fields of the manifest entries named by exports.
// Every substitution runs against an in-memory copy; the file is written once at the end.
func (uc *manifestUseCase) Apply(ctx context.Context, path string, exports model.Exports) (*model.SyncResult, error) {
	logger := ctxlog.From(ctx)
	result := &model.SyncResult{DryRun: uc.dryRun}

	updates := exports.Updates()
	if len(updates) == 0 {
		logger.Info("No updates to apply", "manifest", path)
		return result, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to stat manifest", goerr.V("path", path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read manifest", goerr.V("path", path))
	}

	original := string(data)
	manifest := model.NewManifest(original)

	for _, u := range updates {
		if !u.HasRef() {
			continue
		}
		logger.Info("Updating component",
			"component", u.Component,
			"ref", u.Ref,
			"sha", shortSHA(u.SHA),
		)

		key, matched, changed := applyFirst(u.CandidateKeys(), func(key string) (bool, bool) {
			return manifest.SetRef(key, u.NewRef())
		})
		if !matched {
			logger.Warn("Could not find component in manifest file",
				"component", u.Component,
				"candidates", u.CandidateKeys(),
			)
			result.NotFound = append(result.NotFound, u.Component)
			continue
		}
		if !changed {
			logger.Debug("Component ref already current", "component", u.Component)
			continue
		}
		logger.Info("Updated component", "component", u.Component, "key", key)
		result.RefsUpdated = append(result.RefsUpdated, u.Component)
	}

	for _, u := range updates {
		if !u.HasOrg() {
			continue
		}

		key, matched, changed := applyFirst(u.CandidateKeys(), func(key string) (bool, bool) {
			return manifest.SetOrg(key, u.Org)
		})
		if !matched {
			if !u.HasRef() {
				logger.Warn("Could not find component in manifest file",
					"component", u.Component,
					"candidates", u.CandidateKeys(),
				)
				result.NotFound = append(result.NotFound, u.Component)
			}
			continue
		}
		if !changed {
			logger.Debug("Component org already current", "component", u.Component, "org", u.Org)
			continue
		}
		logger.Info("Updated org for component", "component", u.Component, "key", key, "org", u.Org)
		result.OrgsUpdated = append(result.OrgsUpdated, u.Component)
	}

	result.Changes = model.DiffLines(original, manifest.String())

	if uc.dryRun {
		logger.Info("Dry run, manifest not written",
			"manifest", path,
			"changed_lines", len(result.Changes),
		)
		return result, nil
	}

	if !result.Changed() {
		logger.Info("Manifest already up to date", "manifest", path)
		return result, nil
	}

	if err := fsutil.WriteFileAtomic(path, []byte(manifest.String()), info.Mode().Perm()); err != nil {
		return nil, goerr.Wrap(err, "failed to write manifest", goerr.V("path", path))
	}
	result.Written = true

	logger.Info("Updated manifest",
		"manifest", path,
		"changed_lines", len(result.Changes),
	)
	return result, nil
}

// applyFirst tries keys in order and stops at the first one present in the
// manifest, whether or not its value changed.
func applyFirst(keys []string, apply func(key string) (bool, bool)) (key string, matched, changed bool) {
	for _, k := range keys {
		if m, c := apply(k); m {
			return k, true, c
		}
	}
	return "", false, false
}
