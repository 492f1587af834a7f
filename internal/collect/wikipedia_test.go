package collect

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newAPIServer(t *testing.T, payload string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("action") != "query" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, payload)
	}))
}

func TestCollectFound(t *testing.T) {
	server := newAPIServer(t, `{
		"query": {
			"pages": {
				"42": {
					"pageid": 42,
					"title": "Acme Corporation",
					"extract": "Acme Corporation, legal name: Acme Holdings Inc\nIt is commonly known as: Acme\nOfficial website: https://www.acme.com\nIn 2019 it acquired: Coyote Systems\nIts main brand: RoadRunner\nIts subsidiary: Acme Labs",
					"extlinks": [{"*": "https://acme.io/about"}, {"*": "https://en.wikipedia.org/wiki/Acme"}]
				}
			}
		}
	}`)
	defer server.Close()

	collector := &Collector{BaseURL: server.URL}
	result, err := collector.Collect(context.Background(), "Acme Corporation")
	require.NoError(t, err)

	require.Equal(t, OutcomeFound, result.Outcome)
	require.Equal(t, "Acme Corporation", result.Record.Name)
	require.Equal(t, "Acme Holdings Inc", result.Record.LegalName)
	require.Equal(t, "Acme", result.Record.ColloquialName)
	require.Contains(t, result.Record.Domains, "www.acme.com")
	require.Contains(t, result.Record.Domains, "acme.io")
	require.NotContains(t, result.Record.Domains, "en.wikipedia.org")
	require.Len(t, result.Record.Acquisitions, 1)
	require.Equal(t, "Coyote Systems", result.Record.Acquisitions[0].AcquiredCompany)
	require.Contains(t, result.Record.Brands, "RoadRunner")
	require.Contains(t, result.Record.Subsidiaries, "Acme Labs")
}

func TestCollectNotFound(t *testing.T) {
	server := newAPIServer(t, `{"query": {"pages": {"-1": {"title": "No Such Co"}}}}`)
	defer server.Close()

	collector := &Collector{BaseURL: server.URL}
	result, err := collector.Collect(context.Background(), "No Such Co")
	require.NoError(t, err)

	require.Equal(t, OutcomeNotFound, result.Outcome)
	require.Equal(t, "No Such Co", result.Record.Name)
	require.Empty(t, result.Record.Domains)
}

func TestCollectDisambiguation(t *testing.T) {
	server := newAPIServer(t, `{
		"query": {
			"pages": {
				"7": {
					"pageid": 7,
					"title": "Mercury",
					"pageprops": {"disambiguation": ""},
					"links": [{"title": "Mercury (planet)"}, {"title": "Mercury Records"}]
				}
			}
		}
	}`)
	defer server.Close()

	collector := &Collector{BaseURL: server.URL}
	result, err := collector.Collect(context.Background(), "Mercury")
	require.NoError(t, err)

	require.Equal(t, OutcomeDisambiguation, result.Outcome)
	require.Equal(t, []string{"Mercury (planet)", "Mercury Records"}, result.Candidates)
}

func TestCollectEmptyName(t *testing.T) {
	collector := &Collector{}
	_, err := collector.Collect(context.Background(), "   ")
	require.Error(t, err)
}

func TestCollectServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	collector := &Collector{BaseURL: server.URL}
	_, err := collector.Collect(context.Background(), "Acme")
	require.Error(t, err)
}

func TestCollectAllAbsorbsFailures(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"query": {"pages": {"42": {"pageid": 42, "title": "Beta", "extract": ""}}}}`)
	}))
	defer server.Close()

	collector := &Collector{BaseURL: server.URL, Delay: time.Millisecond}
	results := collector.CollectAll(context.Background(), []string{"Alpha", "Beta"})

	require.Len(t, results, 2)
	require.Equal(t, OutcomeNotFound, results[0].Outcome)
	require.Equal(t, "Alpha", results[0].Record.Name)
	require.Equal(t, OutcomeFound, results[1].Outcome)
}

func TestCollectAllHonorsCancellation(t *testing.T) {
	server := newAPIServer(t, `{"query": {"pages": {"42": {"pageid": 42, "extract": ""}}}}`)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())

	collector := &Collector{BaseURL: server.URL, Delay: time.Hour}
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	results := collector.CollectAll(ctx, []string{"Alpha", "Beta"})
	require.Len(t, results, 1)
}
