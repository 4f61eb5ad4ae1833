package punchclock_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tmc/punchsheet/internal/punchclock"
	"github.com/tmc/punchsheet/internal/session"
)

type brokenProvider struct{}

func (brokenProvider) Load(context.Context) (session.Info, error) {
	return session.Info{}, &session.InputError{Field: "cookie header", Reason: "no session cookie"}
}

// dashboard serves canned responses for the three dashboard endpoints.
type dashboard struct {
	contentStructure string
	timesheet        string
	data             string
	status           int
	requests         []string
}

func (d *dashboard) handler() http.Handler {
	r := chi.NewRouter()
	serve := func(body *string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			d.requests = append(d.requests, r.Method+" "+r.URL.Path)
			if d.status != 0 && r.URL.Path != "/api/UserDashboard/ContentStructure/" {
				w.WriteHeader(d.status)
			}
			w.Write([]byte(*body))
		}
	}
	r.Get("/api/UserDashboard/ContentStructure/", serve(&d.contentStructure))
	r.Post("/api/UserDashboard/PunchClock/Timesheet/", serve(&d.timesheet))
	r.Post("/api/UserDashboard/PunchClock/Data/", serve(&d.data))
	return r
}

func fixture(name string) string {
	data, err := os.ReadFile("testdata/" + name)
	Expect(err).NotTo(HaveOccurred())
	return string(data)
}

var _ = Describe("Client pipeline", func() {
	var (
		d        *dashboard
		srv      *httptest.Server
		client   *punchclock.Client
		sessions session.Provider
		ctx      context.Context
		start    time.Time
		end      time.Time
	)

	BeforeEach(func() {
		d = &dashboard{
			contentStructure: fixture("content_structure.json"),
			timesheet:        fixture("timesheet.json"),
			data:             fixture("punchclock_data.json"),
		}
		srv = httptest.NewServer(d.handler())
		client = punchclock.NewClient(srv.URL, 5*time.Second)
		sessions = session.Static{Session: "s", Spirit: "sp"}
		ctx = context.Background()
		start = time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC)
	})

	AfterEach(func() {
		srv.Close()
	})

	Describe("Timesheet", func() {
		It("resolves the object id, fetches and parses the range", func() {
			entries, err := client.Timesheet(ctx, sessions, start, end, punchclock.Parser{})
			Expect(err).NotTo(HaveOccurred())
			Expect(d.requests).To(Equal([]string{
				"GET /api/UserDashboard/ContentStructure/",
				"POST /api/UserDashboard/PunchClock/Timesheet/",
			}))

			Expect(entries).To(HaveLen(2))
			Expect(entries[0].Desc).To(Equal("Covered B"))
			Expect(entries[0].Subproject).To(Equal("Inbound"))
			Expect(entries[1].Desc).To(Equal("Lunch"))
			Expect(entries[1].Project).To(Equal("Office"))
			Expect(entries[1].Subproject).To(BeEmpty())
		})

		It("names the session stage when the session cannot be loaded", func() {
			_, err := client.Timesheet(ctx, brokenProvider{}, start, end, punchclock.Parser{})
			Expect(err).To(MatchError(ContainSubstring("loading session")))
			var inputErr *session.InputError
			Expect(errors.As(err, &inputErr)).To(BeTrue())
			Expect(d.requests).To(BeEmpty())
		})

		It("fails with NotFoundError when there is no punch clock", func() {
			d.contentStructure = `{"data": {"containers": [{"name": "Operations", "assets": []}]}}`

			_, err := client.Timesheet(ctx, sessions, start, end, punchclock.Parser{})
			Expect(err).To(MatchError(ContainSubstring("resolving object id")))
			var notFound *punchclock.NotFoundError
			Expect(errors.As(err, &notFound)).To(BeTrue())
			Expect(d.requests).To(HaveLen(1))
		})

		It("fails with TransportError when the timesheet request is rejected", func() {
			d.status = http.StatusForbidden

			_, err := client.Timesheet(ctx, sessions, start, end, punchclock.Parser{})
			Expect(err).To(MatchError(ContainSubstring("fetching timesheet")))
			var transport *punchclock.TransportError
			Expect(errors.As(err, &transport)).To(BeTrue())
			Expect(transport.Status).To(Equal(http.StatusForbidden))
		})

		It("fails with SchemaError when the timesheet has no entries node", func() {
			d.timesheet = `{"data": {"userTimeSheets": null}}`

			_, err := client.Timesheet(ctx, sessions, start, end, punchclock.Parser{})
			Expect(err).To(MatchError(ContainSubstring("parsing response")))
			var schema *punchclock.SchemaError
			Expect(errors.As(err, &schema)).To(BeTrue())
		})
	})

	Describe("Data", func() {
		It("returns the available tags of the punch clock", func() {
			data, err := client.Data(ctx, sessions)
			Expect(err).NotTo(HaveOccurred())
			Expect(data.Tags).To(ContainElement(punchclock.Tag{Project: "Office"}))
			Expect(data.Attachments).To(HaveLen(2))
			Expect(d.requests).To(ConsistOf(
				"GET /api/UserDashboard/ContentStructure/",
				"POST /api/UserDashboard/PunchClock/Data/",
			))
		})
	})
})
