package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/smetaworks/estimates-api/internal/core/domain"
	"github.com/smetaworks/estimates-api/internal/core/ports"
)

type stubDocumentRepo struct {
	docs map[string]*domain.Document
	next int
}

func newStubDocumentRepo() *stubDocumentRepo {
	return &stubDocumentRepo{docs: make(map[string]*domain.Document)}
}

func (r *stubDocumentRepo) Create(_ context.Context, d *domain.Document) (*domain.Document, error) {
	r.next++
	clone := *d
	clone.ID = fmt.Sprintf("doc_%d", r.next)
	r.docs[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubDocumentRepo) FindByID(_ context.Context, id string) (*domain.Document, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *stubDocumentRepo) List(_ context.Context, filter ports.DocumentFilter) ([]domain.Document, error) {
	var out []domain.Document
	for _, d := range r.docs {
		if filter.CreatedBy != "" && d.CreatedBy != filter.CreatedBy {
			continue
		}
		if filter.ClientID != "" && d.ClientID != filter.ClientID {
			continue
		}
		if filter.VisibleOnly && !d.Visible {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func (r *stubDocumentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.docs[id]; !ok {
		return domain.ErrDocumentNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *stubDocumentRepo) SetVisibility(_ context.Context, id string, visible bool) error {
	d, ok := r.docs[id]
	if !ok {
		return domain.ErrDocumentNotFound
	}
	d.Visible = visible
	return nil
}

func portalFixture() (*PortalService, *stubEstimateRepo, *stubDocumentRepo) {
	clients := newStubClientRepo()
	clients.clients["c1"] = &domain.Client{ID: "c1", Name: "ООО Ромашка", CreatedBy: "m1", IsActive: true}
	estimates := newStubEstimateRepo()
	documents := newStubDocumentRepo()
	return NewPortalService(clients, estimates, documents, testLogger()), estimates, documents
}

var portalP = domain.Principal{
	ID:           "cu1",
	Role:         domain.RoleClient,
	ClientID:     "c1",
	ClientUserID: "cu1",
}

func TestPortalService_Profile(t *testing.T) {
	svc, _, _ := portalFixture()

	profile, err := svc.Profile(context.Background(), portalP)
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if profile.ID != "c1" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	// A staff principal has no business on the portal endpoints.
	if _, err := svc.Profile(context.Background(), managerP); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPortalService_Estimates_VisibleOwnOnly(t *testing.T) {
	svc, estimates, _ := portalFixture()
	estimates.Create(context.Background(), &domain.Estimate{ClientID: "c1", Visible: true})
	estimates.Create(context.Background(), &domain.Estimate{ClientID: "c1", Visible: false})
	estimates.Create(context.Background(), &domain.Estimate{ClientID: "c2", Visible: true})
	estimates.Create(context.Background(), &domain.Estimate{ClientID: "c1", Visible: true, IsAct: true})

	list, err := svc.Estimates(context.Background(), portalP)
	if err != nil {
		t.Fatalf("estimates failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 visible own estimate, got %d", len(list))
	}
	if list[0].ClientID != "c1" || !list[0].Visible || list[0].IsAct {
		t.Fatalf("filter broken: %+v", list[0])
	}
}

func TestPortalService_Documents_VisibleOwnOnly(t *testing.T) {
	svc, _, documents := portalFixture()
	documents.Create(context.Background(), &domain.Document{ClientID: "c1", Visible: true, Name: "договор"})
	documents.Create(context.Background(), &domain.Document{ClientID: "c1", Visible: false, Name: "смета-черновик"})
	documents.Create(context.Background(), &domain.Document{ClientID: "c9", Visible: true, Name: "чужой"})

	list, err := svc.Documents(context.Background(), portalP)
	if err != nil {
		t.Fatalf("documents failed: %v", err)
	}
	if len(list) != 1 || list[0].Name != "договор" {
		t.Fatalf("filter broken: %+v", list)
	}
}
