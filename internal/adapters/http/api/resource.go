package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	repository "github.com/okian/skillport/internal/adapters/repository"
	"github.com/okian/skillport/internal/domain/dedupe"
	"github.com/okian/skillport/internal/domain/model"
)

// ResourceHandler serves the CRUD routes of one entity.
type ResourceHandler[T any] struct {
	name     string
	keys     dedupe.Deduper
	validate *validator.Validate
	store    func() repository.Store[T]
}

// registerResource attaches list, create, get, update and delete routes for
// name. The store is resolved per request so the handler follows whatever
// the dependencies currently expose.
func registerResource[T any](mux *http.ServeMux, name string, s *Server, pick func(repository.Stores) repository.Store[T]) {
	h := &ResourceHandler[T]{
		name:     name,
		keys:     s.deps,
		validate: s.validate,
		store:    func() repository.Store[T] { return pick(s.deps.Resources()) },
	}
	base := "/api/" + name
	mux.HandleFunc("GET "+base, MetricsMiddleware(h.HandleList, name+"_list"))
	mux.HandleFunc("POST "+base, MetricsMiddleware(h.HandleCreate, name+"_create"))
	mux.HandleFunc("GET "+base+"/{id}", MetricsMiddleware(h.HandleGet, name+"_get"))
	mux.HandleFunc("PUT "+base+"/{id}", MetricsMiddleware(h.HandleUpdate, name+"_update"))
	mux.HandleFunc("DELETE "+base+"/{id}", MetricsMiddleware(h.HandleDelete, name+"_delete"))
}

// prepare fills schema defaults and validates rec.
func (h *ResourceHandler[T]) prepare(rec *T) error {
	if d, ok := any(rec).(model.Defaulter); ok {
		d.ApplyDefaults()
	}
	return h.validate.Struct(rec)
}

// HandleList handles GET /api/{resource}?sort=field|-field.
func (h *ResourceHandler[T]) HandleList(w http.ResponseWriter, r *http.Request) {
	op := "api.list_" + h.name
	out, err := h.store().List(r.Context(), r.URL.Query().Get("sort"))
	if err != nil {
		fail(r.Context(), w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleCreate handles POST /api/{resource}. A request repeating an
// Idempotency-Key answers 409.
func (h *ResourceHandler[T]) HandleCreate(w http.ResponseWriter, r *http.Request) {
	op := "api.create_" + h.name
	var rec T
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		fail(r.Context(), w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.prepare(&rec); err != nil {
		fail(r.Context(), w, WrapKind(op, ErrValidation, err))
		return
	}

	key := r.Header.Get(IdempotencyHeader)
	if key != "" {
		key = h.name + ":" + key
		if h.keys.SeenAndRecord(r.Context(), key) {
			writeJSON(w, http.StatusConflict, ackResponse{Status: "duplicate", Duplicate: true})
			return
		}
	}

	out, err := h.store().Create(r.Context(), rec)
	if err != nil {
		if key != "" {
			// Rollback the "seen" status since the create failed
			h.keys.Forget(r.Context(), key)
		}
		fail(r.Context(), w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// HandleGet handles GET /api/{resource}/{id}.
func (h *ResourceHandler[T]) HandleGet(w http.ResponseWriter, r *http.Request) {
	op := "api.get_" + h.name
	out, err := h.store().Get(r.Context(), r.PathValue("id"))
	if err != nil {
		fail(r.Context(), w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleUpdate handles PUT /api/{resource}/{id}. The body is applied on top
// of the stored record, so omitted fields keep their values.
func (h *ResourceHandler[T]) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	op := "api.update_" + h.name
	id := r.PathValue("id")
	store := h.store()

	rec, err := store.Get(r.Context(), id)
	if err != nil {
		fail(r.Context(), w, Wrap(op, err))
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		fail(r.Context(), w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.prepare(&rec); err != nil {
		fail(r.Context(), w, WrapKind(op, ErrValidation, err))
		return
	}

	out, err := store.Update(r.Context(), id, rec)
	if err != nil {
		fail(r.Context(), w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleDelete handles DELETE /api/{resource}/{id}.
func (h *ResourceHandler[T]) HandleDelete(w http.ResponseWriter, r *http.Request) {
	op := "api.delete_" + h.name
	if err := h.store().Delete(r.Context(), r.PathValue("id")); err != nil {
		fail(r.Context(), w, Wrap(op, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
