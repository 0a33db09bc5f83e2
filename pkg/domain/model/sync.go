package model

// SyncResult summarizes one manifest rewrite
type SyncResult struct {
	Tracker     string       // owner/repo#number, empty when exports came from elsewhere
	Components  int          // Components found in the tracker
	Resolved    int          // Components with a commit SHA
	RefsUpdated []string     // Components whose ref field was rewritten
	OrgsUpdated []string     // Components whose org field was rewritten
	NotFound    []string     // Components missing from the manifest
	Changes     []LineChange // Rewritten lines
	Written     bool         // Manifest file was written
	DryRun      bool
}

// Changed reports whether the manifest text differs from the file on disk
func (r *SyncResult) Changed() bool {
	return len(r.Changes) > 0
}
