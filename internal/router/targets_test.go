package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"netbox2prom/internal/app"
	"netbox2prom/internal/discovery"
	"netbox2prom/internal/netbox"
)

func newTestEngine(t *testing.T) http.Handler {
	t.Helper()
	inv := &netbox.StaticClient{
		Devices: []netbox.Device{
			{
				ID:           1,
				Name:         "edge1",
				Status:       netbox.Status{Value: netbox.StatusActive},
				PrimaryIP:    &netbox.IPRef{ID: 10, Address: "10.0.0.5/24"},
				CustomFields: netbox.CustomFields{"prom_labels": `{"job":"node"}`},
			},
		},
	}
	svc, err := app.NewService(app.Config{Output: app.Output{Path: "-"}}, inv, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return NewEngine(NewTargetsHandler(svc, nil))
}

func TestHandleTargets(t *testing.T) {
	engine := newTestEngine(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sd/device", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var groups []discovery.TargetGroup
	if err := json.Unmarshal(rec.Body.Bytes(), &groups); err != nil {
		t.Fatalf("response is not a file_sd document: %v\n%s", err, rec.Body.String())
	}
	if len(groups) != 1 || groups[0].Targets[0] != "10.0.0.5:10000" {
		t.Fatalf("unexpected document: %+v", groups)
	}
}

func TestHandleTargetsEmptyMode(t *testing.T) {
	engine := newTestEngine(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sd/circuit", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "[]\n" {
		t.Fatalf("mode without objects must render [], got %q", rec.Body.String())
	}
}

func TestHandleTargetsUnknownMode(t *testing.T) {
	engine := newTestEngine(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sd/rack", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown mode, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	engine := newTestEngine(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}
