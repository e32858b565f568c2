package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ChangeType classifies the scope of an update between two versions.
type ChangeType string

const (
	ChangeMinor ChangeType = "minor"
	ChangeMajor ChangeType = "major"
)

// VersionNumber is the two-counter version scheme recipes use: a major
// counter advanced on major changes and a minor counter advanced on minor
// ones. Rendered as "major.minor", so a minor bump past .9 produces ".10"
// rather than carrying into the major part (1.9 -> 1.10). The rendered form
// therefore does NOT sort numerically ("1.10" reads as 1.1, which is less
// than 1.2); creation order is the authoritative ordering. A cleaner design
// would persist the two counters as separate integer columns, but the
// rendered-decimal form is what the rest of the system (and the chefs'
// spreadsheets) already speak.
type VersionNumber struct {
	Major int
	Minor int
}

// InitialVersion is the version assigned on first save.
var InitialVersion = VersionNumber{Major: 1, Minor: 0}

// String renders the version as "major.minor", e.g. "1.0", "1.10", "2.0".
func (v VersionNumber) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Next returns the version that follows v for the given change type.
// Major: floor(current)+1 (1.5 -> 2.0). Minor: minor counter +1 (1.9 -> 1.10).
func (v VersionNumber) Next(change ChangeType) VersionNumber {
	if change == ChangeMajor {
		return VersionNumber{Major: v.Major + 1, Minor: 0}
	}
	return VersionNumber{Major: v.Major, Minor: v.Minor + 1}
}

// Float returns the numeric reading of the rendered form. Only useful for
// demonstrating the ordering oddity: Float of 1.10 equals 1.1.
func (v VersionNumber) Float() float64 {
	f, _ := strconv.ParseFloat(v.String(), 64)
	return f
}

// MarshalJSON renders the version in its "major.minor" form.
func (v VersionNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON parses the rendered "major.minor" form.
func (v *VersionNumber) UnmarshalJSON(data []byte) error {
	var rendered string
	if err := json.Unmarshal(data, &rendered); err != nil {
		return err
	}
	parsed, err := ParseVersionNumber(rendered)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVersionNumber parses a rendered "major.minor" version.
func ParseVersionNumber(s string) (VersionNumber, error) {
	major, minor, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok {
		return VersionNumber{}, fmt.Errorf("%s: %q", ErrMsgInvalidVersionNumber, s)
	}
	maj, err := strconv.Atoi(major)
	if err != nil {
		return VersionNumber{}, fmt.Errorf("%s: %q", ErrMsgInvalidVersionNumber, s)
	}
	min, err := strconv.Atoi(minor)
	if err != nil || min < 0 || maj < 0 {
		return VersionNumber{}, fmt.Errorf("%s: %q", ErrMsgInvalidVersionNumber, s)
	}
	return VersionNumber{Major: maj, Minor: min}, nil
}

// RecipeVersion is an immutable snapshot of a recipe at a point in time.
// Exactly one version per recipe is active at any instant; versions are never
// mutated after creation and are removed only by whole-recipe deletion.
type RecipeVersion struct {
	ID            string        `json:"id"`
	RecipeID      string        `json:"recipe_id"`
	Type          RecipeType    `json:"type"`
	VersionNumber VersionNumber `json:"version_number"`
	IsActive      bool          `json:"is_active"`
	CreatedBy     string        `json:"created_by"`
	ChangeSummary string        `json:"change_summary"`
	ChangeReason  string        `json:"change_reason,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`

	// Snapshot carries the full metadata and ingredient list as they
	// existed when the version was created.
	Snapshot Recipe `json:"snapshot"`
}
