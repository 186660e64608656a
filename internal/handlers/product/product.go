package product

import (
	"context"
	"net/http"
	"time"

	"souqora_back_end/internal/apierror"
	"souqora_back_end/internal/cache"
	"souqora_back_end/internal/models"
	"souqora_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func GetProducts(c *gin.Context) {
	docs, pagination, err := store.Products().List(c.Request.Context(), c.Request.URL.Query(), bson.M{})
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"results":          len(docs),
		"paginationResult": pagination,
		"data":             docs,
	})
}

func GetProduct(c *gin.Context) {
	p, err := store.Products().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

// checkProductRefs vérifie que la catégorie existe et que chaque
// sous-catégorie lui appartient bien
func checkProductRefs(ctx context.Context, categoryID primitive.ObjectID, subcategories []primitive.ObjectID) error {
	if _, err := store.Categories().GetByID(ctx, categoryID.Hex()); err != nil {
		return err
	}

	if len(subcategories) == 0 {
		return nil
	}

	count, err := store.SubCategories().Raw().CountDocuments(ctx, bson.M{
		"_id":      bson.M{"$in": subcategories},
		"category": categoryID,
	})
	if err != nil {
		return err
	}
	if count != int64(len(subcategories)) {
		return apierror.Invalid("Certaines sous-catégories n'appartiennent pas à cette catégorie")
	}
	return nil
}

func CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := checkProductRefs(c.Request.Context(), p.Category, p.Subcategories); err != nil {
		apierror.Abort(c, err)
		return
	}

	p.Slug = slug.Make(p.Title)
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	created, err := store.Products().Create(c.Request.Context(), &p)
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

func UpdateProduct(c *gin.Context) {
	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	for _, field := range []string{
		"title", "description", "quantity", "price", "priceAfterDiscount",
		"colors", "imageCover", "images",
	} {
		if v, ok := input[field]; ok {
			set[field] = v
		}
	}
	if title, ok := input["title"].(string); ok {
		set["slug"] = slug.Make(title)
	}
	if brandHex, ok := input["brand"].(string); ok {
		oid, err := store.ParseID(brandHex)
		if err != nil {
			apierror.Abort(c, err)
			return
		}
		set["brand"] = oid
	}
	if categoryHex, ok := input["category"].(string); ok {
		oid, err := store.ParseID(categoryHex)
		if err != nil {
			apierror.Abort(c, err)
			return
		}
		if _, err := store.Categories().GetByID(c.Request.Context(), categoryHex); err != nil {
			apierror.Abort(c, err)
			return
		}
		set["category"] = oid
	}

	updated, err := store.Products().UpdateByID(c.Request.Context(), c.Param("id"), set)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	cache.InvalidateProductCache(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func DeleteProduct(c *gin.Context) {
	if err := store.Products().DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		apierror.Abort(c, err)
		return
	}
	cache.InvalidateProductCache(c.Param("id"))
	c.Status(http.StatusNoContent)
}
