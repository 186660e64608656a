package product

import (
	"net/http"
	"time"

	"souqora_back_end/internal/apierror"
	"souqora_back_end/internal/models"
	"souqora_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
)

// nestedCategoryFilter restreint la liste aux sous-catégories d'une catégorie
// quand la route est imbriquée (/categories/:categoryId/subcategories)
func nestedCategoryFilter(c *gin.Context) (bson.M, error) {
	base := bson.M{}
	if categoryID := c.Param("categoryId"); categoryID != "" {
		oid, err := store.ParseID(categoryID)
		if err != nil {
			return nil, err
		}
		base["category"] = oid
	}
	return base, nil
}

func GetSubCategories(c *gin.Context) {
	base, err := nestedCategoryFilter(c)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	docs, pagination, err := store.SubCategories().List(c.Request.Context(), c.Request.URL.Query(), base)
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

func GetSubCategory(c *gin.Context) {
	sub, err := store.SubCategories().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sub})
}

func CreateSubCategory(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required,min=2,max=32"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Sur la route imbriquée, la catégorie vient de l'URL
	if input.Category == "" {
		input.Category = c.Param("categoryId")
	}

	categoryID, err := store.ParseID(input.Category)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	// La catégorie parente doit exister
	if _, err := store.Categories().GetByID(c.Request.Context(), input.Category); err != nil {
		apierror.Abort(c, err)
		return
	}

	now := time.Now()
	sub := models.SubCategory{
		Name:      input.Name,
		Slug:      slug.Make(input.Name),
		Category:  categoryID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := store.SubCategories().Create(c.Request.Context(), &sub)
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

func UpdateSubCategory(c *gin.Context) {
	var input struct {
		Name     *string `json:"name"`
		Category *string `json:"category"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		set["name"] = *input.Name
		set["slug"] = slug.Make(*input.Name)
	}
	if input.Category != nil {
		oid, err := store.ParseID(*input.Category)
		if err != nil {
			apierror.Abort(c, err)
			return
		}
		if _, err := store.Categories().GetByID(c.Request.Context(), *input.Category); err != nil {
			apierror.Abort(c, err)
			return
		}
		set["category"] = oid
	}

	updated, err := store.SubCategories().UpdateByID(c.Request.Context(), c.Param("id"), set)
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func DeleteSubCategory(c *gin.Context) {
	if err := store.SubCategories().DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		apierror.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
