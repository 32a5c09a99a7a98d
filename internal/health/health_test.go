package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) result {
	t.Helper()
	var res result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return res
}

func TestHealthz_AlwaysOK(t *testing.T) {
	t.Parallel()
	h := New(Probe{Name: "reader", Check: func() bool { return false }})
	rec := httptest.NewRecorder()

	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if res := decode(t, rec); res.Status != "ok" {
		t.Errorf("body status = %q, want ok", res.Status)
	}
}

func TestReadyz_AllProbesPass(t *testing.T) {
	t.Parallel()
	h := New(
		Probe{Name: "reader", Check: func() bool { return true }},
		Probe{Name: "marker", Check: func() bool { return true }},
	)
	rec := httptest.NewRecorder()

	h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	res := decode(t, rec)
	if res.Checks["reader"] != "ok" || res.Checks["marker"] != "ok" {
		t.Errorf("checks = %v, want all ok", res.Checks)
	}
}

func TestReadyz_FailingProbe(t *testing.T) {
	t.Parallel()
	h := New(
		Probe{Name: "reader", Check: func() bool { return false }},
		Probe{Name: "marker", Check: func() bool { return true }},
	)
	rec := httptest.NewRecorder()

	h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	res := decode(t, rec)
	if res.Status != "fail" {
		t.Errorf("body status = %q, want fail", res.Status)
	}
	if res.Checks["reader"] != "unavailable" {
		t.Errorf("reader check = %q, want unavailable", res.Checks["reader"])
	}
	if res.Checks["marker"] != "ok" {
		t.Errorf("marker check = %q, want ok", res.Checks["marker"])
	}
}

func TestRegister_Routes(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	New().Register(mux)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code == http.StatusNotFound {
			t.Errorf("%s not routed", path)
		}
	}
}
