package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"product-api/internal/models"
	"product-api/internal/store"
)

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.store.ListProducts(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list products")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}

	product, err := s.store.GetProduct(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int64("productId", id).Msg("Failed to get product")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (s *Server) handleFilterProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f store.ProductFilter

	if category := q.Get("category"); category != "" {
		f.Category = &category
	}
	if q.Has("instock") {
		inStock := q.Get("instock") == "true"
		f.InStock = &inStock
	}
	if raw := q.Get("minPrice"); raw != "" {
		minPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid minPrice")
			return
		}
		f.MinPrice = &minPrice
	}
	if raw := q.Get("maxPrice"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid maxPrice")
			return
		}
		f.MaxPrice = &maxPrice
	}
	// Unknown sort values are ignored, not rejected.
	if sort := q.Get("sort"); sort == store.SortPriceAsc || sort == store.SortPriceDesc {
		f.Sort = sort
	}

	products, err := s.store.FilterProducts(r.Context(), f)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to filter products")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (s *Server) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.store.SearchProducts(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to search products")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Missing() {
		respondError(w, http.StatusBadRequest, "Missing product fields.")
		return
	}

	product, err := s.store.CreateProduct(r.Context(), *req.Name, *req.Category, *req.Price, *req.InStock)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to create product")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Product added",
		"product": product,
	})
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req models.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := store.ProductPatch{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		InStock:  req.InStock,
	}
	product, err := s.store.UpdateProduct(r.Context(), id, patch)
	if err != nil {
		s.log.Error().Err(err).Int64("productId", id).Msg("Failed to update product")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Product updated",
		"product": product,
	})
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := s.store.DeleteProduct(r.Context(), id); err != nil {
		s.log.Error().Err(err).Int64("productId", id).Msg("Failed to delete product")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}
