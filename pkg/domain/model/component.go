package model

import "strings"

// Component is one row of the release table in a tracker comment
type Component struct {
	Name      string // Component name as written in the tracker, e.g. "workbenches/notebooks"
	Org       string // GitHub organization of the source repository
	Repo      string // GitHub repository name
	Ref       string // Branch or tag, may contain slashes
	CommitSHA string // Resolved commit of Ref, empty if lookup failed
}

// NormalizedName returns the name used in export keys: lowercase, "/" replaced by "-"
func (c *Component) NormalizedName() string {
	return normalizeName(c.Name)
}

func normalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "/", "-")
}

// Release is the set of components collected from one tracker issue
type Release struct {
	Issue      *TrackerIssue
	Components []*Component
}

// Exports projects the release into export keys, fanning aliased components out
// into one key set per alias target
func (r *Release) Exports(aliases Aliases) Exports {
	exports := Exports{}
	for _, c := range r.Components {
		targets, ok := aliases[c.Name]
		if !ok {
			exports.Set(c.NormalizedName(), c.Ref, c.Org, c.CommitSHA)
			continue
		}
		for _, target := range targets {
			exports.Set(strings.ToLower(target), c.Ref, c.Org, c.CommitSHA)
		}
	}
	return exports
}

// ResolvedCount returns the number of components with a commit SHA
func (r *Release) ResolvedCount() int {
	n := 0
	for _, c := range r.Components {
		if c.CommitSHA != "" {
			n++
		}
	}
	return n
}

// Aliases maps a tracker component name to the manifest component names that
// must receive identical values
type Aliases map[string][]string

// DefaultAliases returns the alias table used when no configuration overrides it.
// notebook-controller was split into two manifest entries that ship from one branch.
func DefaultAliases() Aliases {
	return Aliases{
		"workbenches/notebook-controller": {"odh-notebook-controller", "kf-notebook-controller"},
	}
}
