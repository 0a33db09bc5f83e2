package model

import (
	"sort"
	"strings"
)

// Export key prefixes shared by the tracker and manifest stages
const (
	SpecPrefix = "component_spec_"
	OrgPrefix  = "component_org_"
	SHAPrefix  = "component_sha_"
)

// Exports is the flat key/value mapping handed from the tracker stage to the
// manifest stage. Keys are <prefix><normalized component name>.
type Exports map[string]string

// Set records ref and org for a component, and sha when it is not empty
func (e Exports) Set(name, ref, org, sha string) {
	e[SpecPrefix+name] = ref
	e[OrgPrefix+name] = org
	if sha != "" {
		e[SHAPrefix+name] = sha
	}
}

// Keys returns the export keys in lexical order
func (e Exports) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NewExports keeps only the entries of src that carry one of the export prefixes
func NewExports(src map[string]string) Exports {
	e := Exports{}
	for k, v := range src {
		if isExportKey(k) {
			e[k] = v
		}
	}
	return e
}

// ExportsFromEnviron builds Exports from KEY=value pairs such as os.Environ()
func ExportsFromEnviron(environ []string) Exports {
	e := Exports{}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !isExportKey(k) {
			continue
		}
		e[k] = v
	}
	return e
}

func isExportKey(k string) bool {
	return strings.HasPrefix(k, SpecPrefix) || strings.HasPrefix(k, OrgPrefix) || strings.HasPrefix(k, SHAPrefix)
}

// Updates reconstructs per-component manifest updates. The SHA of a component is
// only used together with its spec key; an org key alone yields an org-only update.
func (e Exports) Updates() []*ManifestUpdate {
	byComponent := map[string]*ManifestUpdate{}
	get := func(suffix string) *ManifestUpdate {
		name := strings.ReplaceAll(suffix, "_", "-")
		u, ok := byComponent[name]
		if !ok {
			u = &ManifestUpdate{Component: name}
			byComponent[name] = u
		}
		return u
	}

	for k, v := range e {
		switch {
		case strings.HasPrefix(k, SpecPrefix):
			suffix := strings.TrimPrefix(k, SpecPrefix)
			u := get(suffix)
			u.Ref = v
			u.SHA = e[SHAPrefix+suffix]
		case strings.HasPrefix(k, OrgPrefix):
			get(strings.TrimPrefix(k, OrgPrefix)).Org = v
		}
	}

	updates := make([]*ManifestUpdate, 0, len(byComponent))
	for _, u := range byComponent {
		updates = append(updates, u)
	}
	sort.Slice(updates, func(i, j int) bool {
		return updates[i].Component < updates[j].Component
	})
	return updates
}
