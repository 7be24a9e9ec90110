// Package diagnostics reports service health without ever failing: every
// probe outcome becomes a descriptive string in the report.
package diagnostics

import "context"

// maxCollections caps the collection names echoed in the report.
const maxCollections = 10

// maxErrorChars caps probe error text so the report stays readable.
const maxErrorChars = 50

// Probe is the subset of the store used for health checks. It may be nil
// when the database was never connected.
type Probe interface {
	Ping(ctx context.Context) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Report is the GET /test response body. Configuration fields carry presence
// flags only, never values.
type Report struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// Service runs the health probes.
type Service struct {
	store          Probe
	collectionsKey string
	urlConfigured  bool
	nameConfigured bool
}

// New creates a diagnostics service. store may be nil.
func New(store Probe, collectionsKey string, urlConfigured, nameConfigured bool) *Service {
	return &Service{
		store:          store,
		collectionsKey: collectionsKey,
		urlConfigured:  urlConfigured,
		nameConfigured: nameConfigured,
	}
}

// Check probes the store and assembles the report. It never returns an error.
func (s *Service) Check(ctx context.Context) Report {
	report := Report{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		DatabaseURL:      presenceFlag(s.urlConfigured),
		DatabaseName:     presenceFlag(s.nameConfigured),
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}
	if s.store == nil {
		return report
	}

	if err := s.store.Ping(ctx); err != nil {
		report.Database = "⚠️  Connected but Error: " + truncate(err.Error(), maxErrorChars)
		return report
	}
	report.ConnectionStatus = "Connected"

	collections, err := s.store.SMembers(ctx, s.collectionsKey)
	if err != nil {
		report.Database = "⚠️  Connected but Error: " + truncate(err.Error(), maxErrorChars)
		return report
	}

	report.Database = "✅ Connected & Working"
	if len(collections) > maxCollections {
		collections = collections[:maxCollections]
	}
	report.Collections = collections
	return report
}

func presenceFlag(configured bool) string {
	if configured {
		return "✅ Set"
	}
	return "❌ Not Set"
}

func truncate(s string, max int) string {
	if runes := []rune(s); len(runes) > max {
		return string(runes[:max])
	}
	return s
}
