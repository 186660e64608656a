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

func GetBrands(c *gin.Context) {
	docs, pagination, err := store.Brands().List(c.Request.Context(), c.Request.URL.Query(), bson.M{})
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

func GetBrand(c *gin.Context) {
	brand, err := store.Brands().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": brand})
}

func CreateBrand(c *gin.Context) {
	var brand models.Brand
	if err := c.ShouldBindJSON(&brand); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	brand.Slug = slug.Make(brand.Name)
	now := time.Now()
	brand.CreatedAt = now
	brand.UpdatedAt = now

	created, err := store.Brands().Create(c.Request.Context(), &brand)
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

func UpdateBrand(c *gin.Context) {
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

	updated, err := store.Brands().UpdateByID(c.Request.Context(), c.Param("id"), set)
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func DeleteBrand(c *gin.Context) {
	if err := store.Brands().DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		apierror.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
