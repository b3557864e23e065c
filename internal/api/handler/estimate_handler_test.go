package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/smetaworks/estimates-api/internal/core/domain"
	"github.com/smetaworks/estimates-api/internal/core/ports"
)

type stubEstimateService struct {
	listFn   func(ctx context.Context, p domain.Principal) ([]domain.Estimate, error)
	getFn    func(ctx context.Context, p domain.Principal, id string) (*domain.Estimate, error)
	createFn func(ctx context.Context, p domain.Principal, input ports.CreateEstimateInput) (*domain.Estimate, error)
	toggleFn func(ctx context.Context, p domain.Principal, id string) (*domain.Estimate, error)
}

func (s *stubEstimateService) List(ctx context.Context, p domain.Principal) ([]domain.Estimate, error) {
	return s.listFn(ctx, p)
}

func (s *stubEstimateService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Estimate, error) {
	return s.getFn(ctx, p, id)
}

func (s *stubEstimateService) Create(ctx context.Context, p domain.Principal, input ports.CreateEstimateInput) (*domain.Estimate, error) {
	return s.createFn(ctx, p, input)
}

func (s *stubEstimateService) Update(ctx context.Context, p domain.Principal, id string, input ports.UpdateEstimateInput) (*domain.Estimate, error) {
	return nil, errors.New("not implemented")
}

func (s *stubEstimateService) Delete(ctx context.Context, p domain.Principal, id string) error {
	return errors.New("not implemented")
}

func (s *stubEstimateService) ListActs(ctx context.Context, p domain.Principal) ([]domain.Estimate, error) {
	return s.listFn(ctx, p)
}

func (s *stubEstimateService) ToggleActVisibility(ctx context.Context, p domain.Principal, id string) (*domain.Estimate, error) {
	return s.toggleFn(ctx, p, id)
}

func newEstimateContext(t *testing.T, method, path, body string, p *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if p != nil {
		c.Set("principal", *p)
	}
	return c, rec
}

func TestEstimateHandler_List_PassesPrincipal(t *testing.T) {
	manager := domain.Principal{ID: "m1", Role: domain.RoleManager}
	stub := &stubEstimateService{
		listFn: func(ctx context.Context, p domain.Principal) ([]domain.Estimate, error) {
			if p.ID != "m1" {
				t.Fatalf("unexpected principal: %+v", p)
			}
			return []domain.Estimate{{ID: "e1", Title: "Кухня", CreatedBy: "m1"}}, nil
		},
	}
	handler := NewEstimateHandler(stub)

	c, rec := newEstimateContext(t, http.MethodGet, "/estimates", "", &manager)
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	items, ok := resp["estimates"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestEstimateHandler_List_Unauthenticated(t *testing.T) {
	handler := NewEstimateHandler(&stubEstimateService{})

	c, _ := newEstimateContext(t, http.MethodGet, "/estimates", "", nil)
	err := handler.List(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestEstimateHandler_Get_ForbiddenPassesThrough(t *testing.T) {
	other := domain.Principal{ID: "m2", Role: domain.RoleManager}
	stub := &stubEstimateService{
		getFn: func(ctx context.Context, p domain.Principal, id string) (*domain.Estimate, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewEstimateHandler(stub)

	c, _ := newEstimateContext(t, http.MethodGet, "/estimates/e1", "", &other)
	c.SetParamNames("id")
	c.SetParamValues("e1")

	if err := handler.Get(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestEstimateHandler_Create_ValidatesItems(t *testing.T) {
	stub := &stubEstimateService{
		createFn: func(ctx context.Context, p domain.Principal, input ports.CreateEstimateInput) (*domain.Estimate, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewEstimateHandler(stub)
	manager := domain.Principal{ID: "m1", Role: domain.RoleManager}

	// quantity must be positive
	body := `{"client_id":"cl-1","title":"Кухня","items":[{"name":"Плитка","unit":"м2","quantity":0,"price":100}]}`
	c, _ := newEstimateContext(t, http.MethodPost, "/estimates", body, &manager)

	err := handler.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestEstimateHandler_Update_RequiresFullState(t *testing.T) {
	stub := &stubEstimateService{}
	handler := NewEstimateHandler(stub)
	manager := domain.Principal{ID: "m1", Role: domain.RoleManager}

	// Updates replace the record, so title and status are mandatory.
	for _, body := range []string{
		`{"status":"sent"}`,
		`{"title":"Кухня"}`,
		`{"title":"Кухня","status":"nonsense"}`,
	} {
		c, _ := newEstimateContext(t, http.MethodPut, "/estimates/e1", body, &manager)
		c.SetParamNames("id")
		c.SetParamValues("e1")

		err := handler.Update(c)
		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %v", body, err)
		}
	}
}

func TestEstimateHandler_ToggleActVisibility(t *testing.T) {
	admin := domain.Principal{ID: "a1", Role: domain.RoleAdmin}
	stub := &stubEstimateService{
		toggleFn: func(ctx context.Context, p domain.Principal, id string) (*domain.Estimate, error) {
			if id != "act-1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return &domain.Estimate{ID: "act-1", IsAct: true, Visible: true}, nil
		},
	}
	handler := NewEstimateHandler(stub)

	c, rec := newEstimateContext(t, http.MethodPost, "/acts/act-1/toggle-visibility", "", &admin)
	c.SetParamNames("id")
	c.SetParamValues("act-1")

	if err := handler.ToggleActVisibility(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["visible_to_client"] != true {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
