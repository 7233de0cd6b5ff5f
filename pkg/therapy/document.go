package therapy

// Document is the single persisted JSON document mirroring everything the
// system knows locally: client records, the shared assistant identity, the
// per-client external thread mapping, and the ordered session-note lists.
// The durable store rewrites it whole on every mutation.
type Document struct {
	AssistantID      string                   `json:"assistantId"`
	Clients          []Client                 `json:"clients"`
	ThreadsByClient  map[string]string        `json:"threadsByClient"`
	SessionsByClient map[string][]SessionNote `json:"sessionsByClient"`
}

// NewDocument returns the empty default shape with all containers allocated.
func NewDocument() *Document {
	return &Document{
		Clients:          []Client{},
		ThreadsByClient:  map[string]string{},
		SessionsByClient: map[string][]SessionNote{},
	}
}

// Normalize allocates any containers a decoded document is missing, so
// callers can index without nil checks.
func (d *Document) Normalize() {
	if d.Clients == nil {
		d.Clients = []Client{}
	}
	if d.ThreadsByClient == nil {
		d.ThreadsByClient = map[string]string{}
	}
	if d.SessionsByClient == nil {
		d.SessionsByClient = map[string][]SessionNote{}
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{
		AssistantID:      d.AssistantID,
		Clients:          make([]Client, len(d.Clients)),
		ThreadsByClient:  make(map[string]string, len(d.ThreadsByClient)),
		SessionsByClient: make(map[string][]SessionNote, len(d.SessionsByClient)),
	}
	copy(out.Clients, d.Clients)
	for id, thread := range d.ThreadsByClient {
		out.ThreadsByClient[id] = thread
	}
	for id, sessions := range d.SessionsByClient {
		copied := make([]SessionNote, len(sessions))
		for i, session := range sessions {
			session.Note = session.Note.Clone()
			copied[i] = session
		}
		out.SessionsByClient[id] = copied
	}
	return out
}
