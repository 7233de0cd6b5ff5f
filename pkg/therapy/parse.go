package therapy

import (
	"encoding/json"
	"strings"
)

const (
	// NoteParseError is recorded in place of a structured note when the
	// service reply could not be parsed.
	NoteParseError = "Structured note was not valid JSON"

	// SnapshotParseError is the snapshot counterpart of NoteParseError.
	SnapshotParseError = "Snapshot was not valid JSON"
)

// Note is the tagged result of parsing a service reply into a StructuredNote.
// Exactly one branch is set: Structured on success, Err+Raw on failure.
// Callers check Parsed instead of catching errors; malformed replies are data,
// not faults.
type Note struct {
	Structured *StructuredNote
	Err        string
	Raw        string
}

// Parsed reports whether the reply parsed into the structured schema.
func (n Note) Parsed() bool { return n.Structured != nil }

// Clone returns a copy sharing no memory with n, so handed-out notes can
// never alias the live document's lists.
func (n Note) Clone() Note {
	if n.Structured == nil {
		return n
	}
	structured := n.Structured.clone()
	return Note{Structured: &structured}
}

// fallbackRecord is the persisted shape of an unparseable reply.
type fallbackRecord struct {
	Error string `json:"error"`
	Raw   string `json:"raw"`
}

func (n Note) MarshalJSON() ([]byte, error) {
	if n.Structured != nil {
		return json.Marshal(n.Structured)
	}
	return json.Marshal(fallbackRecord{Error: n.Err, Raw: n.Raw})
}

func (n *Note) UnmarshalJSON(data []byte) error {
	if fb, ok := probeFallback(data); ok {
		*n = Note{Err: fb.Error, Raw: fb.Raw}
		return nil
	}
	var structured StructuredNote
	if err := json.Unmarshal(data, &structured); err != nil {
		return err
	}
	structured.normalize()
	*n = Note{Structured: &structured}
	return nil
}

// SnapshotResult is the parse-or-fallback result for an aggregate snapshot.
type SnapshotResult struct {
	Snapshot *Snapshot
	Err      string
	Raw      string
}

// Parsed reports whether the reply parsed into the snapshot schema.
func (r SnapshotResult) Parsed() bool { return r.Snapshot != nil }

func (r SnapshotResult) MarshalJSON() ([]byte, error) {
	if r.Snapshot != nil {
		return json.Marshal(r.Snapshot)
	}
	return json.Marshal(fallbackRecord{Error: r.Err, Raw: r.Raw})
}

func (r *SnapshotResult) UnmarshalJSON(data []byte) error {
	if fb, ok := probeFallback(data); ok {
		*r = SnapshotResult{Err: fb.Error, Raw: fb.Raw}
		return nil
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return err
	}
	snapshot.normalize()
	*r = SnapshotResult{Snapshot: &snapshot}
	return nil
}

// probeFallback detects the {error, raw} shape without consuming documents
// that merely contain an "error" theme somewhere in a list.
func probeFallback(data []byte) (fallbackRecord, bool) {
	var probe struct {
		Error *string `json:"error"`
		Raw   *string `json:"raw"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fallbackRecord{}, false
	}
	if probe.Error == nil || probe.Raw == nil {
		return fallbackRecord{}, false
	}
	return fallbackRecord{Error: *probe.Error, Raw: *probe.Raw}, true
}

// ParseNote applies the two-stage parse to a free-text service reply: a strict
// JSON parse first, then a retry on the first-{ to last-} substring. Anything
// else degrades to a recorded failure carrying the verbatim reply.
func ParseNote(reply string) Note {
	var structured StructuredNote
	if decodeStages(reply, &structured) {
		structured.normalize()
		return Note{Structured: &structured}
	}
	return Note{Err: NoteParseError, Raw: reply}
}

// ParseSnapshot is ParseNote for the aggregate snapshot schema.
func ParseSnapshot(reply string) SnapshotResult {
	var snapshot Snapshot
	if decodeStages(reply, &snapshot) {
		snapshot.normalize()
		return SnapshotResult{Snapshot: &snapshot}
	}
	return SnapshotResult{Err: SnapshotParseError, Raw: reply}
}

func decodeStages(reply string, dst any) bool {
	if json.Unmarshal([]byte(reply), dst) == nil {
		return true
	}
	sub, ok := braceSubstring(reply)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(sub), dst) == nil
}

// braceSubstring cuts the region between the first "{" and the last "}",
// recovering JSON objects wrapped in prose or markdown fences.
func braceSubstring(reply string) (string, bool) {
	start := strings.Index(reply, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(reply, "}")
	if end <= start {
		return "", false
	}
	return reply[start : end+1], true
}
