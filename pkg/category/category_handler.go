package category

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type CategoryHandler struct {
	catalog *Catalog
}

func NewCategoryHandler(catalog *Catalog) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

func (handler *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var categories []Category
	if r.URL.Query().Has("type") {
		categories = handler.catalog.GetByType(Type(r.URL.Query().Get("type")))
	} else {
		categories = handler.catalog.All()
	}
	if categories == nil {
		categories = []Category{}
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(categories); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	id := vars["id"]

	category, ok := handler.catalog.GetByID(id)
	if !ok {
		http.Error(w, "category not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(category); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
