// Package therapy defines the shared record types for the therapy-assistant
// system: client records, per-session structured notes, on-demand snapshots,
// and the parse-or-fallback contract applied to replies from the external
// conversational-memory service.
//
// Structured notes and snapshots are optional-field records: every list field
// normalizes to an empty slice before marshalling so consumers never branch on
// null.
package therapy

import "time"

// Client is a therapy patient record the clinician is documenting.
// The id is opaque and immutable; names are deduplicated case-insensitively
// at creation time.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionNote is one append-only entry in a client's session history.
// Note carries either the structured note or the recorded parse failure.
type SessionNote struct {
	SessionNumber int       `json:"sessionNumber"`
	CreatedAt     time.Time `json:"createdAt"`
	Note          Note      `json:"note"`
}

// StructuredNote is the schema-constrained output describing one session.
type StructuredNote struct {
	Summary            []string `json:"summary"`
	Themes             []string `json:"themes"`
	EmotionsObserved   []string `json:"emotions_observed"`
	CopingStrategies   []string `json:"coping_strategies"`
	RiskFlags          []string `json:"risk_flags"`
	TherapistFollowups []string `json:"therapist_followups"`
	NextSessionFocus   []string `json:"next_session_focus"`
	Quotes             []string `json:"quotes"`
}

func (n *StructuredNote) clone() StructuredNote {
	out := *n
	out.Summary = copyStrings(n.Summary)
	out.Themes = copyStrings(n.Themes)
	out.EmotionsObserved = copyStrings(n.EmotionsObserved)
	out.CopingStrategies = copyStrings(n.CopingStrategies)
	out.RiskFlags = copyStrings(n.RiskFlags)
	out.TherapistFollowups = copyStrings(n.TherapistFollowups)
	out.NextSessionFocus = copyStrings(n.NextSessionFocus)
	out.Quotes = copyStrings(n.Quotes)
	return out
}

func (n *StructuredNote) normalize() {
	n.Summary = nonNil(n.Summary)
	n.Themes = nonNil(n.Themes)
	n.EmotionsObserved = nonNil(n.EmotionsObserved)
	n.CopingStrategies = nonNil(n.CopingStrategies)
	n.RiskFlags = nonNil(n.RiskFlags)
	n.TherapistFollowups = nonNil(n.TherapistFollowups)
	n.NextSessionFocus = nonNil(n.NextSessionFocus)
	n.Quotes = nonNil(n.Quotes)
}

// Snapshot is the aggregate view synthesized across a client's whole thread.
// It is recomputed on demand and never persisted.
type Snapshot struct {
	PrimaryThemes         []string `json:"primary_themes"`
	ProgressSinceFirst    []string `json:"progress_since_first"`
	CurrentChallenges     []string `json:"current_challenges"`
	CopingStrategiesTried []string `json:"coping_strategies_tried"`
	RiskFlags             []string `json:"risk_flags"`
	SuggestedNextFocus    []string `json:"suggested_next_focus"`
	Confidence            string   `json:"confidence"`
}

func (s *Snapshot) normalize() {
	s.PrimaryThemes = nonNil(s.PrimaryThemes)
	s.ProgressSinceFirst = nonNil(s.ProgressSinceFirst)
	s.CurrentChallenges = nonNil(s.CurrentChallenges)
	s.CopingStrategiesTried = nonNil(s.CopingStrategiesTried)
	s.RiskFlags = nonNil(s.RiskFlags)
	s.SuggestedNextFocus = nonNil(s.SuggestedNextFocus)
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// copyStrings copies a list while keeping empty distinct from nil.
func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
