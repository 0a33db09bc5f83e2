package model

import (
	"regexp"
	"strings"
)

// ManifestUpdate is the new coordinate of one component in the manifest
type ManifestUpdate struct {
	Component string // Dash form of the component name
	Ref       string // New branch or tag, empty when only the org changes
	SHA       string // Commit of Ref, optional
	Org       string // New organization, empty when unchanged
}

// HasRef reports whether the ref field should be rewritten
func (u *ManifestUpdate) HasRef() bool { return u.Ref != "" }

// HasOrg reports whether the org field should be rewritten
func (u *ManifestUpdate) HasOrg() bool { return u.Org != "" }

// NewRef returns "<ref>@<sha>", or "<ref>" when the SHA is unknown
func (u *ManifestUpdate) NewRef() string {
	if u.SHA == "" {
		return u.Ref
	}
	return u.Ref + "@" + u.SHA
}

// CandidateKeys returns the manifest keys to try, in order. Manifest keys may use a
// path form ("workbenches/kf-notebook-controller") where exports only carry dashes,
// so the second candidate turns the first dash into a slash.
func (u *ManifestUpdate) CandidateKeys() []string {
	keys := []string{u.Component}
	if slashed := strings.Replace(u.Component, "-", "/", 1); slashed != u.Component {
		keys = append(keys, slashed)
	}
	return keys
}

// Manifest is the in-memory text of a manifest file made of
// ["<key>"]="<org>:<repo>:<ref>:<path>" entries
type Manifest struct {
	content string
}

// NewManifest wraps manifest text
func NewManifest(content string) *Manifest {
	return &Manifest{content: content}
}

// String returns the current text
func (m *Manifest) String() string { return m.content }

// SetRef rewrites the ref field of the entries named key. matched reports whether
// such an entry exists, changed whether the text differs afterwards.
func (m *Manifest) SetRef(key, ref string) (matched, changed bool) {
	pattern := regexp.MustCompile(`(\["` + regexp.QuoteMeta(key) + `"\]="[^:]+:[^:]+:)([^:]+)(:+[^"]+")`)
	return m.replace(pattern, ref)
}

// SetOrg rewrites the org field of the entries named key
func (m *Manifest) SetOrg(key, org string) (matched, changed bool) {
	pattern := regexp.MustCompile(`(\["` + regexp.QuoteMeta(key) + `"\]=")([^:]+)(:+[^"]+")`)
	return m.replace(pattern, org)
}

func (m *Manifest) replace(pattern *regexp.Regexp, value string) (bool, bool) {
	if !pattern.MatchString(m.content) {
		return false, false
	}
	replacement := "${1}" + strings.ReplaceAll(value, "$", "$$") + "${3}"
	updated := pattern.ReplaceAllString(m.content, replacement)
	changed := updated != m.content
	m.content = updated
	return true, changed
}

// LineChange is one rewritten manifest line
type LineChange struct {
	Line   int // 1-based line number
	Before string
	After  string
}

// DiffLines lists the lines that differ between two versions of a manifest.
// Rewrites never add or remove lines, so lines are compared pairwise.
func DiffLines(before, after string) []LineChange {
	a := strings.Split(before, "\n")
	b := strings.Split(after, "\n")

	var changes []LineChange
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			changes = append(changes, LineChange{Line: i + 1, Before: a[i], After: b[i]})
		}
	}
	return changes
}
