package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hongminglow/jobboard-be/internal/auth"
	"github.com/hongminglow/jobboard-be/internal/http/respond"
	"github.com/hongminglow/jobboard-be/internal/models"
	"github.com/hongminglow/jobboard-be/internal/models/dto"
	"github.com/hongminglow/jobboard-be/internal/pagination"
	"github.com/hongminglow/jobboard-be/internal/storage"
)

// CompaniesHandler owns company profile endpoints.
type CompaniesHandler struct {
	store storage.CompanyStore
	log   *slog.Logger
}

// NewCompaniesHandler constructs the handler.
func NewCompaniesHandler(store storage.CompanyStore, log *slog.Logger) *CompaniesHandler {
	return &CompaniesHandler{store: store, log: log}
}

// Register attaches company routes to the mux.
func (h *CompaniesHandler) Register(mux *http.ServeMux, g Guards) {
	mux.Handle("POST /companies", g.User(http.HandlerFunc(h.handleCreate)))
	mux.HandleFunc("GET /companies", h.handleList)
	mux.HandleFunc("GET /companies/user/{user_id}", h.handleListByUser)
	mux.Handle("GET /companies/mine", g.User(http.HandlerFunc(h.handleListMine)))
	mux.HandleFunc("GET /companies/{id}", h.handleGet)
	mux.Handle("PUT /companies/{id}", g.User(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("DELETE /companies/{id}", g.User(http.HandlerFunc(h.handleDelete)))
}

func (h *CompaniesHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCompanyRequest
	if err := decode(w, r, &req); err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	company := req.Company()
	company.UserID = caller(r).Subject
	created, err := h.store.CreateCompany(r.Context(), company)
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "company created successfully", created)
}

func (h *CompaniesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, storage.CompanyFilter{})
}

func (h *CompaniesHandler) handleListByUser(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, storage.CompanyFilter{UserID: r.PathValue("user_id")})
}

func (h *CompaniesHandler) handleListMine(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, storage.CompanyFilter{UserID: caller(r).Subject})
}

func (h *CompaniesHandler) list(w http.ResponseWriter, r *http.Request, filter storage.CompanyFilter) {
	page, err := h.store.ListCompanies(r.Context(), filter, pagination.ParseRequest(r.URL.Query()))
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, "companies retrieved successfully", page)
}

func (h *CompaniesHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	company, err := h.store.GetCompany(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "company not found"))
		return
	}
	respond.JSON(w, http.StatusOK, "company retrieved successfully", company)
}

func (h *CompaniesHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateCompanyRequest
	if err := decode(w, r, &req); err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	company, err := h.owned(r)
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	updated, err := h.store.UpdateCompany(r.Context(), company.ID, req.Patch())
	if err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "company not found"))
		return
	}
	respond.JSON(w, http.StatusOK, "company updated successfully", updated)
}

func (h *CompaniesHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	company, err := h.owned(r)
	if err != nil {
		respond.Err(w, r, h.log, err)
		return
	}
	if err := h.store.DeleteCompany(r.Context(), company.ID); err != nil {
		respond.Err(w, r, h.log, respond.Describe(err, storage.ErrNotFound, "company not found"))
		return
	}
	respond.JSON(w, http.StatusOK, "company deleted successfully", nil)
}

func (h *CompaniesHandler) owned(r *http.Request) (models.Company, error) {
	company, err := h.store.GetCompany(r.Context(), r.PathValue("id"))
	if err != nil {
		return models.Company{}, respond.Describe(err, storage.ErrNotFound, "company not found")
	}
	if company.UserID != caller(r).Subject {
		return models.Company{}, auth.ErrForbidden
	}
	return company, nil
}
