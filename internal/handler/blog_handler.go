package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-bloglist-api/internal/middleware"
	"go-bloglist-api/internal/model"
	"go-bloglist-api/internal/service"
)

type BlogHandler struct {
	service *service.BlogService
}

func NewBlogHandler(service *service.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blogs)
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	blog, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blog)
}

func (h *BlogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.CreateBlogRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	token, _ := middleware.TokenFromContext(r.Context())
	blog, err := h.service.Create(r.Context(), token, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, blog)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	token, _ := middleware.TokenFromContext(r.Context())
	if err := h.service.Delete(r.Context(), token, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateLikes answers a missing blog with an empty 404.
func (h *BlogHandler) UpdateLikes(w http.ResponseWriter, r *http.Request) {
	var payload model.UpdateLikesRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	token, _ := middleware.TokenFromContext(r.Context())
	blog, err := h.service.UpdateLikes(r.Context(), token, chi.URLParam(r, "id"), payload)
	if err != nil {
		if errors.Is(err, model.ErrBlogNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blog)
}
