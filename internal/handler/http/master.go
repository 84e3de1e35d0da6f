package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/brand"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/division"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/outlet"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/product"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/unit"
	"github.com/fieldops-id/fieldops-backend-go/internal/domain/master/vertical"
	"github.com/fieldops-id/fieldops-backend-go/internal/handler/http/response"
	masterService "github.com/fieldops-id/fieldops-backend-go/internal/service/master"
	"github.com/go-chi/chi/v5"
)

type MasterHandler interface {
	// Mount registers /divisions, /verticals, /brands, /units, /products and /outlets on r.
	Mount(r chi.Router)
}

type masterHandlerImpl struct {
	divisions resource[division.ListDivisionResponse, division.DivisionResponse, division.UpsertDivisionRequest]
	verticals resource[vertical.ListVerticalResponse, vertical.VerticalResponse, vertical.UpsertVerticalRequest]
	brands    resource[brand.ListBrandResponse, brand.BrandResponse, brand.UpsertBrandRequest]
	units     resource[unit.ListUnitResponse, unit.UnitResponse, unit.UpsertUnitRequest]
	products  resource[product.ListProductResponse, product.ProductResponse, product.UpsertProductRequest]
	outlets   resource[outlet.ListOutletResponse, outlet.OutletResponse, outlet.UpsertOutletRequest]
}

func NewMasterHandler(svc masterService.MasterService) MasterHandler {
	return &masterHandlerImpl{
		divisions: resource[division.ListDivisionResponse, division.DivisionResponse, division.UpsertDivisionRequest]{
			svc:    svc,
			name:   "Division",
			list:   ms.ListDivisions,
			items:  func(l division.ListDivisionResponse) (interface{}, master.ListMeta) { return l.Divisions, l.ListMeta },
			all:    ms.AllDivisions,
			search: ms.SearchDivisions,
			get:    ms.GetDivision,
			create: ms.CreateDivision,
			update: ms.UpdateDivision,
			delete: ms.DeleteDivision,
		},
		verticals: resource[vertical.ListVerticalResponse, vertical.VerticalResponse, vertical.UpsertVerticalRequest]{
			svc:    svc,
			name:   "Vertical",
			list:   ms.ListVerticals,
			items:  func(l vertical.ListVerticalResponse) (interface{}, master.ListMeta) { return l.Verticals, l.ListMeta },
			all:    ms.AllVerticals,
			search: ms.SearchVerticals,
			get:    ms.GetVertical,
			create: ms.CreateVertical,
			update: ms.UpdateVertical,
			delete: ms.DeleteVertical,
		},
		brands: resource[brand.ListBrandResponse, brand.BrandResponse, brand.UpsertBrandRequest]{
			svc:    svc,
			name:   "Brand",
			list:   ms.ListBrands,
			items:  func(l brand.ListBrandResponse) (interface{}, master.ListMeta) { return l.Brands, l.ListMeta },
			all:    ms.AllBrands,
			search: ms.SearchBrands,
			get:    ms.GetBrand,
			create: ms.CreateBrand,
			update: ms.UpdateBrand,
			delete: ms.DeleteBrand,
		},
		units: resource[unit.ListUnitResponse, unit.UnitResponse, unit.UpsertUnitRequest]{
			svc:    svc,
			name:   "Unit",
			list:   ms.ListUnits,
			items:  func(l unit.ListUnitResponse) (interface{}, master.ListMeta) { return l.Units, l.ListMeta },
			all:    ms.AllUnits,
			search: ms.SearchUnits,
			get:    ms.GetUnit,
			create: ms.CreateUnit,
			update: ms.UpdateUnit,
			delete: ms.DeleteUnit,
		},
		products: resource[product.ListProductResponse, product.ProductResponse, product.UpsertProductRequest]{
			svc:    svc,
			name:   "Product",
			list:   ms.ListProducts,
			items:  func(l product.ListProductResponse) (interface{}, master.ListMeta) { return l.Products, l.ListMeta },
			all:    ms.AllProducts,
			search: ms.SearchProducts,
			get:    ms.GetProduct,
			create: ms.CreateProduct,
			update: ms.UpdateProduct,
			delete: ms.DeleteProduct,
		},
		outlets: resource[outlet.ListOutletResponse, outlet.OutletResponse, outlet.UpsertOutletRequest]{
			svc:    svc,
			name:   "Outlet",
			list:   ms.ListOutlets,
			items:  func(l outlet.ListOutletResponse) (interface{}, master.ListMeta) { return l.Outlets, l.ListMeta },
			all:    ms.AllOutlets,
			search: ms.SearchOutlets,
			get:    ms.GetOutlet,
			create: ms.CreateOutlet,
			update: ms.UpdateOutlet,
			delete: ms.DeleteOutlet,
		},
	}
}

// Mount implements MasterHandler.
func (h *masterHandlerImpl) Mount(r chi.Router) {
	r.Route("/divisions", h.divisions.routes)
	r.Route("/verticals", h.verticals.routes)
	r.Route("/brands", h.brands.routes)
	r.Route("/units", h.units.routes)
	r.Route("/products", h.products.routes)
	r.Route("/outlets", h.outlets.routes)
}

// ms is the receiver taken by the method expressions stored in resource.
type ms = masterService.MasterService

// resource serves the CRUD, lookup and search endpoints shared by every reference entity.
// L is the list response, D the detail response and R the upsert request.
type resource[L any, D any, R any] struct {
	svc    ms
	name   string
	list   func(ms, context.Context, master.ListFilter) (L, error)
	items  func(L) (interface{}, master.ListMeta)
	all    func(ms, context.Context) ([]master.LookupItem, error)
	search func(ms, context.Context, master.SearchFilter) (master.SearchResponse, error)
	get    func(ms, context.Context, string) (D, error)
	create func(ms, context.Context, R) (D, error)
	update func(ms, context.Context, string, R) (D, error)
	delete func(ms, context.Context, string) error
}

func (res resource[L, D, R]) routes(r chi.Router) {
	r.Get("/", res.handleList)
	r.Get("/all", res.handleAll)
	r.Get("/search", res.handleSearch)
	r.Post("/", res.handleCreate)
	r.Get("/{id}", res.handleGet)
	r.Put("/{id}", res.handleUpdate)
	r.Delete("/{id}", res.handleDelete)
}

func listFilterFromQuery(r *http.Request) master.ListFilter {
	q := r.URL.Query()
	return master.ListFilter{
		Name:         queryString(r, "name"),
		Abbreviation: queryString(r, "abbreviation"),
		DivisionID:   queryString(r, "division_id"),
		VerticalID:   queryString(r, "vertical_id"),
		BrandID:      queryString(r, "brand_id"),
		UnitID:       queryString(r, "unit_id"),
		Page:         queryInt(r, "page"),
		Limit:        queryInt(r, "limit"),
		SortBy:       q.Get("sort_by"),
		SortOrder:    q.Get("sort_order"),
	}
}

func (res resource[L, D, R]) handleList(w http.ResponseWriter, r *http.Request) {
	result, err := res.list(res.svc, r.Context(), listFilterFromQuery(r))
	if err != nil {
		slog.Error("List"+res.name+" service error", "error", err)
		response.HandleError(w, err)
		return
	}

	data, meta := res.items(result)
	response.SuccessWithMeta(w, data, newMeta(meta.Page, meta.Limit, meta.TotalCount, meta.TotalPages, meta.Showing))
}

func (res resource[L, D, R]) handleAll(w http.ResponseWriter, r *http.Request) {
	items, err := res.all(res.svc, r.Context())
	if err != nil {
		slog.Error("All"+res.name+" service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, items)
}

func (res resource[L, D, R]) handleSearch(w http.ResponseWriter, r *http.Request) {
	filter := master.SearchFilter{
		Term: r.URL.Query().Get("term"),
		Page: queryInt(r, "page"),
	}

	result, err := res.search(res.svc, r.Context(), filter)
	if err != nil {
		slog.Error("Search"+res.name+" service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (res resource[L, D, R]) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	result, err := res.get(res.svc, r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (res resource[L, D, R]) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req R
	if err := decodeJSON(w, r, &req); err != nil {
		slog.Error("Create"+res.name+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := res.create(res.svc, r.Context(), req)
	if err != nil {
		slog.Error("Create"+res.name+" service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info(res.name+" created successfully")
	response.Created(w, res.name+" created successfully", result)
}

func (res resource[L, D, R]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req R
	if err := decodeJSON(w, r, &req); err != nil {
		slog.Error("Update"+res.name+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := res.update(res.svc, r.Context(), id, req)
	if err != nil {
		slog.Error("Update"+res.name+" service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, res.name+" updated successfully", result)
}

func (res resource[L, D, R]) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := res.delete(res.svc, r.Context(), id); err != nil {
		slog.Error("Delete"+res.name+" service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, res.name+" deleted successfully", nil)
}
