package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/heavymachinery/backend/services"
)

// ProductController handles the catalog's read and admin-write routes.
type ProductController struct {
	catalogService *services.CatalogService
}

func NewProductController(catalogService *services.CatalogService) *ProductController {
	return &ProductController{catalogService: catalogService}
}

// ListProducts handles GET /products with optional brand and category
// query filters.
func (pc *ProductController) ListProducts(ctx *gin.Context) {
	products, svcErr := pc.catalogService.ListProducts(ctx.Request.Context(), ctx.Query("brand"), ctx.Query("category"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct handles GET /products/:id.
func (pc *ProductController) GetProduct(ctx *gin.Context) {
	product, svcErr := pc.catalogService.GetProduct(ctx.Request.Context(), ctx.Param("id"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"product": product})
}

// SearchProducts handles GET /products/search?query=.
func (pc *ProductController) SearchProducts(ctx *gin.Context) {
	products, svcErr := pc.catalogService.SearchProducts(ctx.Request.Context(), ctx.Query("query"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// SimilarProducts handles GET /products/similar/:id.
func (pc *ProductController) SimilarProducts(ctx *gin.Context) {
	products, svcErr := pc.catalogService.SimilarProducts(ctx.Request.Context(), ctx.Param("id"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// SortedProducts handles GET /products/sort/price?order=asc|desc.
func (pc *ProductController) SortedProducts(ctx *gin.Context) {
	order := ctx.DefaultQuery("order", "asc")
	if order != "asc" && order != "desc" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "order must be asc or desc"})
		return
	}

	products, svcErr := pc.catalogService.SortByPrice(ctx.Request.Context(), order == "desc")
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// TrendingProducts handles GET /products/trending. The payload comes
// straight from the cache, so it is written as raw JSON.
func (pc *ProductController) TrendingProducts(ctx *gin.Context) {
	payload, svcErr := pc.catalogService.Trending(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.Data(http.StatusOK, "application/json", payload)
}

// AddProduct handles POST /products (admin only).
func (pc *ProductController) AddProduct(ctx *gin.Context) {
	var req services.AddProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, svcErr := pc.catalogService.AddProduct(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct handles PUT /products/:id (admin only).
func (pc *ProductController) UpdateProduct(ctx *gin.Context) {
	var updates map[string]interface{}
	if err := ctx.ShouldBindJSON(&updates); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if svcErr := pc.catalogService.UpdateProduct(ctx.Request.Context(), ctx.Param("id"), updates); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

// DeleteProduct handles DELETE /products/:id (admin only).
func (pc *ProductController) DeleteProduct(ctx *gin.Context) {
	if svcErr := pc.catalogService.DeleteProduct(ctx.Request.Context(), ctx.Param("id")); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
