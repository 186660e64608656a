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

func GetCategories(c *gin.Context) {
	docs, pagination, err := store.Categories().List(c.Request.Context(), c.Request.URL.Query(), bson.M{})
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

func GetCategory(c *gin.Context) {
	category, err := store.Categories().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": category})
}

func CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category.Slug = slug.Make(category.Name)
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	created, err := store.Categories().Create(c.Request.Context(), &category)
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

func UpdateCategory(c *gin.Context) {
	var input struct {
		Name  *string `json:"name"`
		Image *string `json:"image"`
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
	if input.Image != nil {
		set["image"] = *input.Image
	}

	updated, err := store.Categories().UpdateByID(c.Request.Context(), c.Param("id"), set)
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func DeleteCategory(c *gin.Context) {
	if err := store.Categories().DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		apierror.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
