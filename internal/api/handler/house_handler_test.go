package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/estateops/property-registry/internal/core/domain"
	"github.com/estateops/property-registry/internal/core/ports"
)

type stubHouseService struct {
	createFn func(ctx context.Context, actor domain.Actor, in ports.CreateHouseInput) (*domain.House, error)
	getFn    func(ctx context.Context, actor domain.Actor, id string) (*ports.HouseDetail, error)
	listFn   func(ctx context.Context, actor domain.Actor, in ports.ListHousesInput) (*ports.HouseList, error)
}

func (s *stubHouseService) Create(ctx context.Context, actor domain.Actor, in ports.CreateHouseInput) (*domain.House, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubHouseService) Get(ctx context.Context, actor domain.Actor, id string) (*ports.HouseDetail, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubHouseService) List(ctx context.Context, actor domain.Actor, in ports.ListHousesInput) (*ports.HouseList, error) {
	return s.listFn(ctx, actor, in)
}

func (s *stubHouseService) Update(context.Context, domain.Actor, string, ports.UpdateHouseInput) (*domain.House, error) {
	panic("not used")
}

func (s *stubHouseService) Delete(context.Context, domain.Actor, string) error {
	panic("not used")
}

func (s *stubHouseService) Occupants(context.Context, domain.Actor, string) ([]ports.OccupantSummary, error) {
	panic("not used")
}

func (s *stubHouseService) ActiveChiefTenant(context.Context, domain.Actor, string) (*ports.AssignmentSummary, error) {
	panic("not used")
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, actor domain.Actor) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("user_id", actor.ID)
	c.Set("role", actor.Role)
	return c
}

func TestHouseHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubHouseService{
		createFn: func(ctx context.Context, actor domain.Actor, in ports.CreateHouseInput) (*domain.House, error) {
			if actor.ID != "owner_1" || actor.Role != domain.RoleOwner {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			if in.HouseType != domain.TypeDuplex || in.HouseNumber != "42" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.House{ID: "house_1", OwnerID: actor.ID, HouseType: in.HouseType, HouseNumber: in.HouseNumber, NumApartments: 2}, nil
		},
	}
	handler := NewHouseHandler(stub)

	body := strings.NewReader(`{"house_type":"duplex","house_number":"42","num_apartments":2}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/houses", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, domain.Actor{ID: "owner_1", Role: domain.RoleOwner})

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "house_1" || resp["house_number"] != "42" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestHouseHandler_Create_RejectsUnknownType(t *testing.T) {
	e := newTestEcho()
	stub := &stubHouseService{
		createFn: func(ctx context.Context, actor domain.Actor, in ports.CreateHouseInput) (*domain.House, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewHouseHandler(stub)

	body := strings.NewReader(`{"house_type":"castle","house_number":"1"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/houses", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, domain.Actor{ID: "owner_1", Role: domain.RoleOwner})

	_ = handler.Create(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHouseHandler_Create_RequiresAuthClaims(t *testing.T) {
	e := newTestEcho()
	handler := NewHouseHandler(&stubHouseService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/houses", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec) // no claims injected

	err := handler.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestHouseHandler_ListByType_RequiresTypeParam(t *testing.T) {
	e := newTestEcho()
	stub := &stubHouseService{
		listFn: func(ctx context.Context, actor domain.Actor, in ports.ListHousesInput) (*ports.HouseList, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewHouseHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/houses/by-type", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, domain.Actor{ID: "t", Role: domain.RoleTenant})

	_ = handler.ListByType(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without type param, got %d", rec.Code)
	}
}

func TestHouseHandler_List_PassesPagination(t *testing.T) {
	e := newTestEcho()
	stub := &stubHouseService{
		listFn: func(ctx context.Context, actor domain.Actor, in ports.ListHousesInput) (*ports.HouseList, error) {
			if in.Page != 3 || in.Limit != 10 || in.HouseType != domain.TypeCondo {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.HouseList{
				Items: []ports.HouseSummary{{House: domain.House{ID: "house_1", HouseType: domain.TypeCondo}}},
				Page:  ports.NewPage(21, 3, 10),
			}, nil
		},
	}
	handler := NewHouseHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/houses?type=condo&page=3&limit=10", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, domain.Actor{ID: "t", Role: domain.RoleTenant})

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	pagination, ok := resp["pagination"].(map[string]any)
	if !ok || pagination["total_pages"] != float64(3) {
		t.Fatalf("unexpected pagination: %+v", resp)
	}
}

func TestHouseHandler_Get_NotFoundPropagates(t *testing.T) {
	e := newTestEcho()
	stub := &stubHouseService{
		getFn: func(ctx context.Context, actor domain.Actor, id string) (*ports.HouseDetail, error) {
			return nil, domain.ErrHouseNotFound
		},
	}
	handler := NewHouseHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/houses/ghost", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, domain.Actor{ID: "o", Role: domain.RoleOwner})
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	if err := handler.Get(c); err != domain.ErrHouseNotFound {
		t.Fatalf("expected ErrHouseNotFound returned, got %v", err)
	}
}
