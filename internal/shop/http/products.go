package http

import (
	"encoding/json"
	"net/http"

	"github.com/cheapdeals/shop/internal/shop/domain"
	"github.com/cheapdeals/shop/internal/shop/service"
	"github.com/cheapdeals/shop/pkg/httpx"
)

type ProductsHandler struct {
	CatalogService *service.CatalogService
}

type productDataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// HandleList godoc
//
//	@Summary		List products
//	@Description	Lists products filtered by type. Omitting productType (or passing ALL) returns phones, packages and bundles combined; the combined listing degrades gracefully if one table fails.
//	@Tags			Products
//	@Produce		json
//	@Param			productType	query		string	false	"ALL, PHONE, PACKAGE or BUNDLE"
//	@Success		200			{object}	productDataResponse
//	@Failure		400			{object}	ErrorResponse	"unknown product type"
//	@Router			/products [get].
func (h *ProductsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	t, err := service.ParseProductType(r.URL.Query().Get("productType"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	products, err := h.CatalogService.List(r.Context(), t)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if products == nil {
		products = []any{}
	}

	httpx.WriteJSON(w, http.StatusOK, productDataResponse{Success: true, Data: products})
}

// HandleGet godoc
//
//	@Summary		Get a product
//	@Description	Fetches one product by type and id. Bundles come back with their items, each expanded with the referenced phone or package.
//	@Tags			Products
//	@Produce		json
//	@Param			productType	path		string	true	"PHONE, PACKAGE or BUNDLE"
//	@Param			productID	path		string	true	"product id"
//	@Success		200			{object}	productDataResponse
//	@Failure		400			{object}	ErrorResponse	"unknown product type"
//	@Failure		404			{object}	ErrorResponse	"no such product"
//	@Router			/products/{productType}/{productID} [get].
func (h *ProductsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	t, err := service.ParseProductType(r.PathValue("productType"))
	if err != nil || t == domain.ProductAll {
		writeServiceError(w, r, service.ErrInvalidProductType)
		return
	}

	product, err := h.CatalogService.Get(r.Context(), t, r.PathValue("productID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, productDataResponse{Success: true, Data: product})
}

type createPhoneRequest struct {
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	ImgURL      string   `json:"imgUrl"`
	Description *string  `json:"description"`
	Rating      *float64 `json:"rating"`
	Stock       int      `json:"stock"`
	IsActive    bool     `json:"isActive"`
}

// HandleCreatePhone godoc
//
//	@Summary	Create a phone
//	@Tags		Products
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		createPhoneRequest	true	"phone"
//	@Success	201		{object}	productDataResponse
//	@Failure	400		{object}	ErrorResponse	"malformed body or missing fields"
//	@Router		/products/phone [post].
func (h *ProductsHandler) HandleCreatePhone(w http.ResponseWriter, r *http.Request) {
	var req createPhoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Request body must be valid JSON")
		return
	}
	if req.Name == "" || req.Brand == "" || req.ImgURL == "" {
		writeBadRequest(w, "name, brand and imgUrl are required")
		return
	}
	if req.Price < 0 || req.Stock < 0 {
		writeBadRequest(w, "price and stock must be non-negative")
		return
	}

	phone, err := h.CatalogService.CreatePhone(r.Context(), service.PhoneInput{
		Name:        req.Name,
		Brand:       req.Brand,
		Price:       req.Price,
		ImgURL:      req.ImgURL,
		Description: req.Description,
		Rating:      req.Rating,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, productDataResponse{Success: true, Data: phone})
}

type createPackageRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	PackageType string   `json:"packageType"`
	Price       float64  `json:"price"`
	Rating      *float64 `json:"rating"`
	IsActive    bool     `json:"isActive"`
}

// HandleCreatePackage godoc
//
//	@Summary	Create a package
//	@Tags		Products
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		createPackageRequest	true	"package; packageType defaults to MOBILE"
//	@Success	201		{object}	productDataResponse
//	@Failure	400		{object}	ErrorResponse	"malformed body or missing fields"
//	@Router		/products/package [post].
func (h *ProductsHandler) HandleCreatePackage(w http.ResponseWriter, r *http.Request) {
	var req createPackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Request body must be valid JSON")
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}
	if req.Price <= 0 {
		writeBadRequest(w, "price must be positive")
		return
	}

	pkg, err := h.CatalogService.CreatePackage(r.Context(), service.PackageInput{
		Name:        req.Name,
		Description: req.Description,
		PackageType: domain.PackageType(req.PackageType),
		Price:       req.Price,
		Rating:      req.Rating,
		IsActive:    req.IsActive,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, productDataResponse{Success: true, Data: pkg})
}

type createBundleRequest struct {
	Name        string                    `json:"name"`
	Description *string                   `json:"description"`
	Price       float64                   `json:"price"`
	Rating      *float64                  `json:"rating"`
	IsActive    bool                      `json:"isActive"`
	BundleItems []createBundleItemRequest `json:"bundleItems"`
}

type createBundleItemRequest struct {
	PhoneID   *string `json:"phoneId"`
	PackageID *string `json:"packageId"`
	Quantity  int     `json:"quantity"`
}

// HandleCreateBundle godoc
//
//	@Summary	Create a bundle
//	@Description	Creates a bundle with its items in one transaction. Every item must reference an existing phone or package.
//	@Tags		Products
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		createBundleRequest	true	"bundle with at least one item"
//	@Success	201		{object}	productDataResponse
//	@Failure	400		{object}	ErrorResponse	"malformed body or invalid items"
//	@Failure	404		{object}	ErrorResponse	"an item references a missing product"
//	@Router		/products/bundle [post].
func (h *ProductsHandler) HandleCreateBundle(w http.ResponseWriter, r *http.Request) {
	var req createBundleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Request body must be valid JSON")
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}
	if req.Price <= 0 {
		writeBadRequest(w, "price must be positive")
		return
	}

	in := service.BundleInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Rating:      req.Rating,
		IsActive:    req.IsActive,
	}
	for _, item := range req.BundleItems {
		in.Items = append(in.Items, service.BundleItemInput{
			PhoneID:   item.PhoneID,
			PackageID: item.PackageID,
			Quantity:  item.Quantity,
		})
	}

	bundle, err := h.CatalogService.CreateBundle(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, productDataResponse{Success: true, Data: bundle})
}
