package jsonfile_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Juliand6/therapy-assistant/pkg/store/jsonfile"
	"github.com/Juliand6/therapy-assistant/pkg/therapy"
)

var _ = Describe("Driver", func() {
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "notes.json")
	})

	Context("when no file exists", func() {
		It("loads the empty default shape", func() {
			doc, err := jsonfile.NewDriver(path).Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.AssistantID).To(BeEmpty())
			Expect(doc.Clients).To(BeEmpty())
			Expect(doc.ThreadsByClient).NotTo(BeNil())
			Expect(doc.SessionsByClient).NotTo(BeNil())
		})
	})

	Context("when the file is malformed", func() {
		It("loads the empty default shape instead of erroring", func() {
			Expect(os.WriteFile(path, []byte("{half a docum"), 0o600)).To(Succeed())

			doc, err := jsonfile.NewDriver(path).Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Clients).To(BeEmpty())
		})
	})

	Context("saving and reloading", func() {
		It("round-trips clients, threads, and sessions", func() {
			driver := jsonfile.NewDriver(path)

			doc := therapy.NewDocument()
			doc.AssistantID = "asst_1"
			doc.Clients = append(doc.Clients, therapy.Client{
				ID:        "c1",
				Name:      "Jordan",
				CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			})
			doc.ThreadsByClient["c1"] = "thread_1"
			doc.SessionsByClient["c1"] = []therapy.SessionNote{
				{
					SessionNumber: 1,
					CreatedAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
					Note:          therapy.ParseNote(`{"summary":["ok"],"themes":["Sleep"]}`),
				},
				{
					SessionNumber: 2,
					CreatedAt:     time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC),
					Note:          therapy.ParseNote("not json at all"),
				},
			}

			Expect(driver.Save(doc)).To(Succeed())

			reloaded, err := jsonfile.NewDriver(path).Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.AssistantID).To(Equal("asst_1"))
			Expect(reloaded.Clients).To(Equal(doc.Clients))
			Expect(reloaded.ThreadsByClient).To(Equal(doc.ThreadsByClient))

			sessions := reloaded.SessionsByClient["c1"]
			Expect(sessions).To(HaveLen(2))
			Expect(sessions[0].Note.Parsed()).To(BeTrue())
			Expect(sessions[0].Note.Structured.Themes).To(Equal([]string{"Sleep"}))
			Expect(sessions[1].Note.Parsed()).To(BeFalse())
			Expect(sessions[1].Note.Err).To(Equal(therapy.NoteParseError))
			Expect(sessions[1].Note.Raw).To(Equal("not json at all"))
		})

		It("creates missing parent directories", func() {
			nested := filepath.Join(GinkgoT().TempDir(), "data", "deep", "notes.json")
			driver := jsonfile.NewDriver(nested)

			Expect(driver.Save(therapy.NewDocument())).To(Succeed())
			_, err := os.Stat(nested)
			Expect(err).NotTo(HaveOccurred())
		})

		It("overwrites the whole file on every save", func() {
			driver := jsonfile.NewDriver(path)

			doc := therapy.NewDocument()
			doc.Clients = append(doc.Clients, therapy.Client{ID: "c1", Name: "Jordan"})
			Expect(driver.Save(doc)).To(Succeed())

			doc.Clients = doc.Clients[:0]
			Expect(driver.Save(doc)).To(Succeed())

			reloaded, err := driver.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.Clients).To(BeEmpty())
		})
	})
})
