package types

// Version is overwritten at build time with -ldflags "-X ...types.Version=..."
var Version = "dev"

// DefaultMarker is the line that opens the component table in a tracker comment
const DefaultMarker = "#Release#"

// DefaultManifestPath is the manifest rewritten when no path is given
const DefaultManifestPath = "get_all_manifests.sh"
