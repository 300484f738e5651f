package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc := NewService(newMockRepo())
	h := NewHandler(svc)
	e := echo.New()
	return h, e
}

func TestHandler_Create(t *testing.T) {
	h, e := newTestHandler()

	body := `{"name":"Aspirin","dose_amount":"100","unit":"mg","stock":30,"min_stock":10}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/medications", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var m Medication
	json.Unmarshal(rec.Body.Bytes(), &m)
	if m.Name != "Aspirin" {
		t.Errorf("expected 'Aspirin', got %s", m.Name)
	}
	if m.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
}

func TestHandler_Create_BadRequest(t *testing.T) {
	h, e := newTestHandler()

	body := `{"dose_amount":"100","unit":"mg"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/medications", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	if err == nil {
		t.Fatal("expected error for missing name")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_Update(t *testing.T) {
	h, e := newTestHandler()

	m := &Medication{Name: "Metformin", Stock: 20}
	if err := h.svc.Upsert(nil, m); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	body := `{"name":"Metformin","stock":45,"min_stock":15}`
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(m.ID.String())

	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	got, err := h.svc.Get(nil, m.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Stock != 45 {
		t.Errorf("expected stock 45, got %d", got.Stock)
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	h, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_List(t *testing.T) {
	h, e := newTestHandler()

	for _, name := range []string{"Aspirin", "Lisinopril"} {
		if err := h.svc.Upsert(nil, &Medication{Name: name}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/medications", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"total":2`) {
		t.Errorf("expected total 2 in response: %s", rec.Body.String())
	}
}
