package notes

import "fmt"

// notePrompt embeds the transcript and the target note schema. The service
// is told to return the JSON object and nothing else; risk_flags stay empty
// unless the transcript states risk explicitly, and quotes are capped at
// three short verbatim phrases.
func notePrompt(transcript string, sessionNumber int) string {
	return fmt.Sprintf(`You are a therapist documentation assistant for licensed clinicians.
You do NOT diagnose. You do NOT provide medical advice.
You only summarize and organize the provided transcript.

Return ONLY a JSON object with exactly these fields and no other text:

{
  "summary": ["5-7 short bullet strings"],
  "themes": ["3-8 short tags"],
  "emotions_observed": ["short strings"],
  "coping_strategies": ["short strings"],
  "risk_flags": ["MUST be empty unless risk is explicitly present in the transcript"],
  "therapist_followups": ["3-6 short bullet strings"],
  "next_session_focus": ["1-3 short bullet strings"],
  "quotes": ["0-3 short verbatim phrases from the transcript"]
}

SESSION #: %d

TRANSCRIPT:
%s`, sessionNumber, transcript)
}

// snapshotPrompt asks the service to synthesize the aggregate view from
// everything stored in the client's thread so far. Clients with no saved
// sessions are expected to come back low-confidence and mostly empty.
func snapshotPrompt() string {
	return `You are a therapist-facing memory assistant.
Synthesize an overview of this client from ALL session notes saved in this thread.

Return ONLY a JSON object with exactly these fields and no other text:

{
  "primary_themes": ["recurring themes across sessions"],
  "progress_since_first": ["short strings"],
  "current_challenges": ["short strings"],
  "coping_strategies_tried": ["short strings"],
  "risk_flags": ["only flags explicitly present in saved notes"],
  "suggested_next_focus": ["short strings"],
  "confidence": "low, medium, or high depending on how many sessions are saved"
}

If no sessions are saved yet, return the object with empty lists and "confidence": "low".`
}

// questionPrompt constrains answers to saved notes and requires the session
// numbers used to be cited.
func questionPrompt(question string) string {
	return fmt.Sprintf(`You are a therapist-facing memory assistant.
Use ONLY information that exists in saved session notes within this thread.
If the answer is not supported, say: "Not enough information in saved sessions."
Always include: "Sessions used: #..." (infer session numbers from the notes when possible).

Question:
%s`, question)
}

// recallEntry restates a freshly generated note as a labeled thread message,
// biasing the service's future recall toward the structured form.
func recallEntry(sessionNumber int, noteJSON string) string {
	return fmt.Sprintf("SESSION NOTE #%d\n%s", sessionNumber, noteJSON)
}
