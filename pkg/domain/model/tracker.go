package model

import (
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// TrackerIssue identifies the issue whose comments carry the release table
type TrackerIssue struct {
	Owner  string
	Repo   string
	Number int
}

// ParseTrackerURL parses https://github.com/<owner>/<repo>/issues/<number>
func ParseTrackerURL(raw string) (*TrackerIssue, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, goerr.Wrap(err, "invalid tracker URL", goerr.V("url", raw))
	}
	if u.Host == "" {
		return nil, goerr.New("tracker URL has no host", goerr.V("url", raw))
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 4 || segments[2] != "issues" {
		return nil, goerr.New("tracker URL must look like https://github.com/<owner>/<repo>/issues/<number>", goerr.V("url", raw))
	}

	number, err := strconv.Atoi(segments[3])
	if err != nil || number <= 0 {
		return nil, goerr.New("tracker URL has an invalid issue number", goerr.V("url", raw), goerr.V("number", segments[3]))
	}

	return &TrackerIssue{
		Owner:  segments[0],
		Repo:   segments[1],
		Number: number,
	}, nil
}

// String returns owner/repo#number
func (t *TrackerIssue) String() string {
	return t.Owner + "/" + t.Repo + "#" + strconv.Itoa(t.Number)
}

// componentRowPattern matches "name | https://github.com/.../(tree|releases)/... [| https://github.com/.../releases/...]".
// The optional second URL is accepted but not used.
var componentRowPattern = regexp.MustCompile(`\s*[A-Za-z0-9_/-]+\s*\|\s*(https://github\.com/.*(tree|releases).*){1}\s*\|?\s*(https://github\.com/.*releases.*)?\s*`)

// refMarkers are the URL segments after which the ref starts, in lookup order
var refMarkers = []string{"tag", "tree"}

// ParseComponentRow parses a single row of the release table. It returns false for
// rows that are not component rows.
func ParseComponentRow(line string) (*Component, bool) {
	line = strings.TrimRight(line, "\r")
	if !componentRowPattern.MatchString(line) {
		return nil, false
	}

	fields := strings.Split(line, "|")
	name := strings.TrimSpace(fields[0])
	parts := strings.Split(strings.TrimSpace(fields[1]), "/")

	// https: "" github.com <org> <repo> ...
	if len(parts) < 5 {
		return nil, false
	}

	idx := -1
	for _, marker := range refMarkers {
		if idx = slices.Index(parts, marker); idx >= 0 {
			break
		}
	}
	if idx < 0 {
		return nil, false
	}

	c := &Component{
		Name: name,
		Org:  parts[3],
		Repo: parts[4],
		Ref:  strings.Join(parts[idx+1:], "/"),
	}
	if c.Name == "" || c.Org == "" || c.Repo == "" || c.Ref == "" {
		return nil, false
	}

	return c, true
}

// ExtractComponents returns the component rows below the marker line of a comment.
// A comment that does not contain the marker yields nothing. When the marker only
// appears inside another line, every line of the comment is scanned.
func ExtractComponents(body, marker string) []*Component {
	if !strings.Contains(body, marker) {
		return nil
	}

	lines := strings.Split(body, "\n")
	start := 0
	for i, line := range lines {
		if strings.TrimRight(line, "\r") == marker {
			start = i + 1
			break
		}
	}

	var components []*Component
	for _, line := range lines[start:] {
		if c, ok := ParseComponentRow(line); ok {
			components = append(components, c)
		}
	}
	return components
}
