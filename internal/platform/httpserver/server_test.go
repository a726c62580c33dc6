package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	operationservice "conductor/contexts/bulk-ops/operation-service"
	selectionservice "conductor/contexts/bulk-ops/selection-service"
	"conductor/contexts/bulk-ops/selection-service/domain/selection"
	assetservice "conductor/contexts/catalog/asset-service"
	workflowservice "conductor/contexts/catalog/workflow-service"
	"conductor/contexts/catalog/workflow-service/domain/workflow"
	workflowports "conductor/contexts/catalog/workflow-service/ports"
	payeeservice "conductor/contexts/finance-core/payee-service"
	userservice "conductor/contexts/identity-access/user-service"
	activityfeedservice "conductor/contexts/internal-ops/activity-feed-service"
	"conductor/internal/platform/httpserver"
)

type fixture struct {
	server     *httptest.Server
	workflow   workflowservice.Module
	selection  selectionservice.Module
	operations operationservice.Module
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	modules := httpserver.Modules{
		Assets:     assetservice.NewInMemoryModule(),
		Workflow:   workflowservice.NewInMemoryModule(),
		Selection:  selectionservice.NewInMemoryModule(),
		Operations: operationservice.NewInMemoryModule(),
		Users:      userservice.NewInMemoryModule(),
		Payees:     payeeservice.NewInMemoryModule(),
		Activity:   activityfeedservice.NewInMemoryModule(),
	}
	server := httpserver.New(modules, nil, ":0")
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return fixture{
		server:     ts,
		workflow:   modules.Workflow,
		selection:  modules.Selection,
		operations: modules.Operations,
	}
}

func TestCreateAndGetAsset(t *testing.T) {
	f := newFixture(t)

	body := `{"title":"Sunrise LUT","contributor_id":"contrib_1","category":"lut","details":{"format":"cube","intensity":"strong"}}`
	resp, err := http.Post(f.server.URL+"/assets", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /assets: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var created struct {
		AssetID       string `json:"asset_id"`
		WorkflowState string `json:"workflow_state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.WorkflowState != "draft" {
		t.Fatalf("workflow_state = %q, want draft", created.WorkflowState)
	}

	got, err := http.Get(f.server.URL + "/assets/" + created.AssetID)
	if err != nil {
		t.Fatalf("GET asset: %v", err)
	}
	defer got.Body.Close()
	if got.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", got.StatusCode)
	}
}

func TestWorkflowDecisionRequiresActor(t *testing.T) {
	f := newFixture(t)

	req, _ := http.NewRequest(http.MethodPost, f.server.URL+"/assets/a1/approve", strings.NewReader(`{}`))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST approve: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestWorkflowDecisionRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.workflow.Store.SeedAsset(workflowports.AssetRef{
		AssetID:  "a1",
		Title:    "Track",
		Category: workflow.CategoryMusic,
		State:    workflow.StateDraft,
	})

	req, _ := http.NewRequest(
		http.MethodPost,
		f.server.URL+"/assets/a1/submit",
		bytes.NewReader([]byte(`{"reviewer_name":"Ana"}`)),
	)
	req.Header.Set("X-User-Id", "admin_1")
	req.Header.Set("Idempotency-Key", "k1")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST submit: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var decision struct {
		ToState string `json:"to_state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decision); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decision.ToState != "submitted" {
		t.Fatalf("to_state = %q", decision.ToState)
	}

	timeline, err := http.Get(f.server.URL + "/assets/a1/timeline")
	if err != nil {
		t.Fatalf("GET timeline: %v", err)
	}
	defer timeline.Body.Close()
	if timeline.StatusCode != http.StatusOK {
		t.Fatalf("timeline status = %d", timeline.StatusCode)
	}
}

func TestSelectionRequiresSessionHeader(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Post(f.server.URL+"/bulk/selection", "application/json", strings.NewReader(`{"entity_type":"asset"}`))
	if err != nil {
		t.Fatalf("POST selection: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSelectionToggleAndClear(t *testing.T) {
	f := newFixture(t)
	selCtx := selection.Context{EntityType: selection.EntityAsset}
	f.selection.Store.SeedIDs(selCtx, []string{"a1", "a2", "a3"})

	toggle := func(id string) int {
		body := `{"context":{"entity_type":"asset"},"id":"` + id + `"}`
		req, _ := http.NewRequest(http.MethodPost, f.server.URL+"/bulk/selection/toggle", strings.NewReader(body))
		req.Header.Set("X-Session-Id", "sess_1")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("toggle: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("toggle status = %d", resp.StatusCode)
		}
		var view struct {
			SelectedCount int `json:"selected_count"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return view.SelectedCount
	}

	if count := toggle("a1"); count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	if count := toggle("a2"); count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	if count := toggle("a1"); count != 1 {
		t.Fatalf("count after re-toggle = %d, want 1", count)
	}

	clear, _ := http.NewRequest(http.MethodDelete, f.server.URL+"/bulk/selection", nil)
	clear.Header.Set("X-Session-Id", "sess_1")
	resp, err := http.DefaultClient.Do(clear)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("clear status = %d, want 204", resp.StatusCode)
	}
}

func TestBulkRunStreamsEvents(t *testing.T) {
	f := newFixture(t)
	f.operations.Store.SeedItem("a1", "First")
	f.operations.Store.SeedItem("a2", "Second")

	body := `{"action":"approve","ids":["a1","a2"]}`
	req, _ := http.NewRequest(http.MethodPost, f.server.URL+"/assets/bulk", strings.NewReader(body))
	req.Header.Set("X-User-Id", "admin_1")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST bulk: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type = %q", ct)
	}

	var raw bytes.Buffer
	if _, err := raw.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read stream: %v", err)
	}
	stream := raw.String()
	if !strings.Contains(stream, "event: progress") {
		t.Fatalf("stream missing progress events: %q", stream)
	}
	if !strings.Contains(stream, "event: complete") {
		t.Fatalf("stream missing complete event: %q", stream)
	}
}

func TestBulkRunRejectsEmptyIDs(t *testing.T) {
	f := newFixture(t)

	req, _ := http.NewRequest(http.MethodPost, f.server.URL+"/assets/bulk", strings.NewReader(`{"action":"approve","ids":[]}`))
	req.Header.Set("X-User-Id", "admin_1")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST bulk: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestActivityFeedEndpoint(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.server.URL + "/activity")
	if err != nil {
		t.Fatalf("GET /activity: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
