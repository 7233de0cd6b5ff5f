package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/Juliand6/therapy-assistant/pkg/assistant"
	"github.com/Juliand6/therapy-assistant/pkg/assistant/offline"
	"github.com/Juliand6/therapy-assistant/pkg/notes"
	"github.com/Juliand6/therapy-assistant/pkg/store"
	"github.com/Juliand6/therapy-assistant/pkg/store/inmemory"
	"github.com/Juliand6/therapy-assistant/pkg/therapy"
)

// unavailableAssistant fails every remote call with the same upstream status.
type unavailableAssistant struct {
	err error
}

func (a *unavailableAssistant) CreateAssistant(context.Context, string, string) (string, error) {
	return "", a.err
}

func (a *unavailableAssistant) CreateThread(context.Context, string) (string, error) {
	return "", a.err
}

func (a *unavailableAssistant) SendMessage(context.Context, string, string) (string, error) {
	return "", a.err
}

func (a *unavailableAssistant) Close() error { return nil }

// fullDiskStore loads fine but refuses every save.
type fullDiskStore struct {
	*inmemory.Driver
}

func (s *fullDiskStore) Save(*therapy.Document) error {
	return fmt.Errorf("%w: disk full", store.ErrPersist)
}

var _ = Describe("relay handlers", func() {
	var server *Server

	postJSON := func(path string, payload any) *http.Response {
		data, err := json.Marshal(payload)
		Expect(err).NotTo(HaveOccurred())

		req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(data))
		Expect(err).NotTo(HaveOccurred())
		req.Header.Set("Content-Type", "application/json")

		resp, err := server.app.Test(req, -1)
		Expect(err).NotTo(HaveOccurred())
		return resp
	}

	get := func(path string) *http.Response {
		req, err := http.NewRequest(http.MethodGet, path, nil)
		Expect(err).NotTo(HaveOccurred())

		resp, err := server.app.Test(req, -1)
		Expect(err).NotTo(HaveOccurred())
		return resp
	}

	decode := func(resp *http.Response, out any) {
		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(json.Unmarshal(body, out)).To(Succeed())
	}

	createClient := func(name string) therapy.Client {
		resp := postJSON("/clients", map[string]string{"name": name})
		Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

		var body struct {
			Client therapy.Client `json:"client"`
		}
		decode(resp, &body)
		Expect(body.Client.ID).NotTo(BeEmpty())
		return body.Client
	}

	BeforeEach(func() {
		service, err := notes.NewService(inmemory.NewDriver(), offline.NewDriver(), zap.NewNop())
		Expect(err).NotTo(HaveOccurred())

		server = NewServer(Config{ListenAddr: ":0"}, service, zap.NewNop())
	})

	Describe("GET /api/health", func() {
		It("returns ok", func() {
			resp := get("/api/health")
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			var body map[string]bool
			decode(resp, &body)
			Expect(body["ok"]).To(BeTrue())
		})
	})

	Describe("POST /clients", func() {
		It("creates a client and lists it", func() {
			client := createClient("Jordan")

			resp := get("/clients")
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			var body struct {
				Clients []therapy.Client `json:"clients"`
			}
			decode(resp, &body)
			Expect(body.Clients).To(Equal([]therapy.Client{client}))
		})

		It("returns the same record for a case-variant duplicate", func() {
			client := createClient("Jordan")
			Expect(createClient("JORDAN")).To(Equal(client))
		})

		It("rejects an empty name with 400", func() {
			resp := postJSON("/clients", map[string]string{"name": "   "})
			Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))

			var body ErrorResponse
			decode(resp, &body)
			Expect(body.Error).To(Equal("missing name"))
		})

		It("rejects a malformed body with 400", func() {
			req, err := http.NewRequest(http.MethodPost, "/clients", bytes.NewReader([]byte("{not json")))
			Expect(err).NotTo(HaveOccurred())
			req.Header.Set("Content-Type", "application/json")

			resp, err := server.app.Test(req, -1)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))

			var body ErrorResponse
			decode(resp, &body)
			Expect(body.Error).To(Equal("invalid request body"))
		})
	})

	Describe("GET /clients/:id/sessions", func() {
		It("returns 400 for an unknown client", func() {
			resp := get("/clients/nope/sessions")
			Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))

			var body ErrorResponse
			decode(resp, &body)
			Expect(body.Error).To(Equal("unknown client: nope"))
		})

		It("returns the saved session notes", func() {
			client := createClient("Jordan")

			resp := postJSON("/add-session", map[string]any{
				"clientId":   client.ID,
				"transcript": "Client: I can't sleep before work meetings.",
			})
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			resp = get("/clients/" + client.ID + "/sessions")
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			var body struct {
				Sessions []therapy.SessionNote `json:"sessions"`
			}
			decode(resp, &body)
			Expect(body.Sessions).To(HaveLen(1))
			Expect(body.Sessions[0].SessionNumber).To(Equal(1))
			Expect(body.Sessions[0].Note.Parsed()).To(BeTrue())
		})
	})

	Describe("POST /add-session", func() {
		It("returns the generated note", func() {
			client := createClient("Jordan")

			resp := postJSON("/add-session", map[string]any{
				"clientId":      client.ID,
				"transcript":    "Client: work stress is wearing me down.",
				"sessionNumber": 4,
			})
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			var body struct {
				Note therapy.Note `json:"note"`
			}
			decode(resp, &body)
			Expect(body.Note.Parsed()).To(BeTrue())
			Expect(body.Note.Structured.Themes).To(ContainElement("Work stress"))
		})

		It("rejects a missing transcript with 400", func() {
			client := createClient("Jordan")

			resp := postJSON("/add-session", map[string]any{"clientId": client.ID})
			Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))

			var body ErrorResponse
			decode(resp, &body)
			Expect(body.Error).To(Equal("missing transcript"))
		})

		It("rejects an unknown client with 400", func() {
			resp := postJSON("/add-session", map[string]any{
				"clientId":   "nope",
				"transcript": "something",
			})
			Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))
		})
	})

	Describe("GET /clients/:id/snapshot", func() {
		It("returns a snapshot even before any sessions", func() {
			client := createClient("Jordan")

			resp := get("/clients/" + client.ID + "/snapshot")
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			var body struct {
				Snapshot therapy.SnapshotResult `json:"snapshot"`
			}
			decode(resp, &body)
			Expect(body.Snapshot.Parsed()).To(BeTrue())
			Expect(body.Snapshot.Snapshot.Confidence).To(Equal("low"))
		})
	})

	Describe("upstream and persistence failures", func() {
		var upstreamErr *assistant.StatusError

		BeforeEach(func() {
			upstreamErr = &assistant.StatusError{Status: http.StatusBadGateway, Body: "bad gateway"}

			service, err := notes.NewService(inmemory.NewDriver(), &unavailableAssistant{err: upstreamErr}, zap.NewNop())
			Expect(err).NotTo(HaveOccurred())
			server = NewServer(Config{ListenAddr: ":0"}, service, zap.NewNop())
		})

		It("maps an assistant failure on add-session to 500 with the upstream detail", func() {
			client := createClient("Jordan")

			resp := postJSON("/add-session", map[string]any{
				"clientId":   client.ID,
				"transcript": "Client: rough week.",
			})
			Expect(resp.StatusCode).To(Equal(fiber.StatusInternalServerError))

			var body ErrorResponse
			decode(resp, &body)
			Expect(body.Error).To(Equal(upstreamErr.Error()))
			Expect(body.Error).To(ContainSubstring("502"))
			Expect(body.Error).To(ContainSubstring("bad gateway"))
		})

		It("maps an assistant failure on snapshot to 500", func() {
			client := createClient("Jordan")

			resp := get("/clients/" + client.ID + "/snapshot")
			Expect(resp.StatusCode).To(Equal(fiber.StatusInternalServerError))

			var body ErrorResponse
			decode(resp, &body)
			Expect(body.Error).To(Equal(upstreamErr.Error()))
		})

		It("maps an assistant failure on chat to 500", func() {
			client := createClient("Jordan")

			resp := postJSON("/chat", map[string]any{
				"clientId": client.ID,
				"question": "What themes keep coming up?",
			})
			Expect(resp.StatusCode).To(Equal(fiber.StatusInternalServerError))

			var body ErrorResponse
			decode(resp, &body)
			Expect(body.Error).To(Equal(upstreamErr.Error()))
		})

		It("maps a persistence failure to 500 with the store detail", func() {
			service, err := notes.NewService(&fullDiskStore{Driver: inmemory.NewDriver()}, offline.NewDriver(), zap.NewNop())
			Expect(err).NotTo(HaveOccurred())
			server = NewServer(Config{ListenAddr: ":0"}, service, zap.NewNop())

			resp := postJSON("/clients", map[string]string{"name": "Jordan"})
			Expect(resp.StatusCode).To(Equal(fiber.StatusInternalServerError))

			var body ErrorResponse
			decode(resp, &body)
			Expect(body.Error).To(Equal(store.ErrPersist.Error() + ": disk full"))
		})
	})

	Describe("POST /chat", func() {
		It("returns the assistant's answer verbatim", func() {
			client := createClient("Jordan")

			resp := postJSON("/chat", map[string]any{
				"clientId": client.ID,
				"question": "What themes keep coming up?",
			})
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			var body struct {
				Answer string `json:"answer"`
			}
			decode(resp, &body)
			Expect(body.Answer).To(Equal("Not enough information in saved sessions."))
		})

		It("rejects an empty question with 400", func() {
			client := createClient("Jordan")

			resp := postJSON("/chat", map[string]any{"clientId": client.ID})
			Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))

			var body ErrorResponse
			decode(resp, &body)
			Expect(body.Error).To(Equal("missing question"))
		})
	})
})
