// Package offline implements the assistant driver without any backend.
//
// It stands in for the external service when no credential is configured:
// thread ids are generated locally and replies are synthesized from a few
// keyword lookups over the prompt text. The output is deterministic and
// intentionally unsophisticated — enough for the UI to keep working, never a
// substitute for the real service.
package offline

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Juliand6/therapy-assistant/pkg/assistant"
	"github.com/Juliand6/therapy-assistant/pkg/therapy"
)

const transcriptMarker = "TRANSCRIPT:"

var (
	sessionNumberPattern = regexp.MustCompile(`SESSION (?:NOTE )?#:? ?(\d+)`)
	quotePattern         = regexp.MustCompile(`(?i)i feel|i'm|i am|my|can't|won't|always|never|anx|sleep|work|guilt|avoid`)
	speakerPrefixPattern = regexp.MustCompile(`(?i)^(client|therapist):\s*`)
)

// threadState accumulates what has been "remembered" in one local thread.
type threadState struct {
	sessionNumbers []int
	themes         []string
	coping         []string
}

// Driver synthesizes replies locally.
type Driver struct {
	mu      sync.Mutex
	threads map[string]*threadState
}

// NewDriver creates an offline assistant driver.
func NewDriver() *Driver {
	return &Driver{threads: make(map[string]*threadState)}
}

// CreateAssistant returns a locally generated assistant id.
func (d *Driver) CreateAssistant(_ context.Context, _, _ string) (string, error) {
	return "offline-assistant-" + uuid.NewString(), nil
}

// CreateThread returns a locally generated thread id.
func (d *Driver) CreateThread(_ context.Context, _ string) (string, error) {
	id := "offline-thread-" + uuid.NewString()

	d.mu.Lock()
	d.threads[id] = &threadState{}
	d.mu.Unlock()

	return id, nil
}

// SendMessage inspects the prompt shape and answers it locally: transcripts
// become structured-note JSON, snapshot requests aggregate the thread state,
// recall entries are acknowledged, and anything else gets a canned
// saved-notes answer.
func (d *Driver) SendMessage(_ context.Context, threadID, content string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	state, ok := d.threads[threadID]
	if !ok {
		state = &threadState{}
		d.threads[threadID] = state
	}

	switch {
	case strings.HasPrefix(content, "SESSION NOTE #"):
		state.remember(content)
		return "Noted.", nil
	case strings.Contains(content, transcriptMarker):
		return d.noteReply(state, content), nil
	case strings.Contains(content, "primary_themes"):
		return d.snapshotReply(state), nil
	default:
		return d.questionReply(state), nil
	}
}

// Close is a no-op for the offline driver.
func (d *Driver) Close() error {
	return nil
}

func (s *threadState) remember(content string) {
	if m := sessionNumberPattern.FindStringSubmatch(content); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			s.addSession(n)
		}
	}
	lowered := strings.ToLower(content)
	s.themes = mergeUnique(s.themes, themesFrom(lowered))
	s.coping = mergeUnique(s.coping, copingFrom(lowered))
}

// addSession records a session number once; the note prompt and its recall
// entry both carry the same number.
func (s *threadState) addSession(n int) {
	for _, existing := range s.sessionNumbers {
		if existing == n {
			return
		}
	}
	s.sessionNumbers = append(s.sessionNumbers, n)
}

func (d *Driver) noteReply(state *threadState, content string) string {
	transcript := content
	if idx := strings.Index(content, transcriptMarker); idx >= 0 {
		transcript = content[idx+len(transcriptMarker):]
	}
	lowered := strings.ToLower(transcript)

	themes := themesFrom(lowered)
	if len(themes) == 0 {
		themes = []string{"Stress management", "General wellbeing"}
	}
	emotions := emotionsFrom(lowered)
	if len(emotions) == 0 {
		emotions = []string{"Tense", "Overwhelmed"}
	}
	coping := copingFrom(lowered)
	if len(coping) == 0 {
		coping = []string{"Reflection", "Basic grounding"}
	}

	state.themes = mergeUnique(state.themes, themes)
	state.coping = mergeUnique(state.coping, coping)
	if m := sessionNumberPattern.FindStringSubmatch(content); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			state.addSession(n)
		}
	}

	note := therapy.StructuredNote{
		Summary: []string{
			"Client discussed current stressors and emotional state.",
			"Triggers were explored with emphasis on patterns across the week.",
			"Coping strategies were discussed and refined.",
		},
		Themes:           themes,
		EmotionsObserved: emotions,
		CopingStrategies: coping,
		RiskFlags:        []string{},
		TherapistFollowups: []string{
			"Clarify top triggers and early warning signs.",
			"Track 1-2 moments of heightened emotion and what helped.",
		},
		NextSessionFocus: []string{
			"Reinforce skills practice between sessions.",
		},
		Quotes: pickQuotes(transcript),
	}

	return mustJSON(note)
}

func (d *Driver) snapshotReply(state *threadState) string {
	confidence := "low"
	switch {
	case len(state.sessionNumbers) >= 3:
		confidence = "high"
	case len(state.sessionNumbers) == 2:
		confidence = "medium"
	}

	themes := state.themes
	if len(themes) == 0 {
		themes = []string{"General wellbeing"}
	}
	coping := state.coping
	if len(coping) == 0 {
		coping = []string{"Reflection", "Grounding"}
	}

	snapshot := therapy.Snapshot{
		PrimaryThemes: themes,
		ProgressSinceFirst: []string{
			"Client shows growing awareness of triggers and patterns.",
		},
		CurrentChallenges: []string{
			"Energy and stress management remain key areas.",
		},
		CopingStrategiesTried: coping,
		RiskFlags:             []string{},
		SuggestedNextFocus: []string{
			"Choose one routine to stabilize the week.",
			"Plan one coping practice per day.",
		},
		Confidence: confidence,
	}

	return mustJSON(snapshot)
}

func (d *Driver) questionReply(state *threadState) string {
	if len(state.sessionNumbers) == 0 {
		return "Not enough information in saved sessions."
	}

	used := make([]string, 0, len(state.sessionNumbers))
	for _, n := range state.sessionNumbers {
		used = append(used, "#"+strconv.Itoa(n))
	}

	lines := []string{"Recurring themes across sessions:"}
	for _, t := range state.themes {
		lines = append(lines, "- "+t)
	}
	lines = append(lines, "Sessions used: "+strings.Join(used, ", "))

	return strings.Join(lines, "\n")
}

func themesFrom(t string) []string {
	var themes []string
	if strings.Contains(t, "sleep") || strings.Contains(t, "insomnia") {
		themes = append(themes, "Sleep")
	}
	if strings.Contains(t, "work") || strings.Contains(t, "meeting") {
		themes = append(themes, "Work stress")
	}
	if strings.Contains(t, "anx") || strings.Contains(t, "panic") {
		themes = append(themes, "Anxiety")
	}
	if strings.Contains(t, "avoid") {
		themes = append(themes, "Avoidance")
	}
	if strings.Contains(t, "relationship") || strings.Contains(t, "friend") {
		themes = append(themes, "Relationships")
	}
	if strings.Contains(t, "confidence") || strings.Contains(t, "self") {
		themes = append(themes, "Self-esteem")
	}
	return themes
}

func emotionsFrom(t string) []string {
	var emotions []string
	if strings.Contains(t, "anx") {
		emotions = append(emotions, "Anxious")
	}
	if strings.Contains(t, "sad") {
		emotions = append(emotions, "Sad")
	}
	if strings.Contains(t, "tired") {
		emotions = append(emotions, "Fatigued")
	}
	if strings.Contains(t, "guilt") {
		emotions = append(emotions, "Guilty")
	}
	if strings.Contains(t, "stress") {
		emotions = append(emotions, "Stressed")
	}
	return emotions
}

func copingFrom(t string) []string {
	var coping []string
	if strings.Contains(t, "journal") {
		coping = append(coping, "Journaling")
	}
	if strings.Contains(t, "breath") {
		coping = append(coping, "Breathing exercises")
	}
	if strings.Contains(t, "walk") || strings.Contains(t, "exercise") {
		coping = append(coping, "Movement / walking")
	}
	if strings.Contains(t, "routine") {
		coping = append(coping, "Sleep routine")
	}
	if strings.Contains(t, "ground") {
		coping = append(coping, "Grounding technique")
	}
	return coping
}

// pickQuotes selects up to two short first-person lines from the transcript,
// stripped of speaker prefixes.
func pickQuotes(transcript string) []string {
	quotes := []string{}
	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 18 || len(line) > 90 {
			continue
		}
		if !quotePattern.MatchString(line) {
			continue
		}
		quotes = append(quotes, speakerPrefixPattern.ReplaceAllString(line, ""))
		if len(quotes) == 2 {
			break
		}
	}
	return quotes
}

func mergeUnique(existing, extra []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, v := range existing {
		seen[v] = true
	}
	for _, v := range extra {
		if !seen[v] {
			existing = append(existing, v)
			seen[v] = true
		}
	}
	return existing
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}

var _ assistant.Driver = (*Driver)(nil)
