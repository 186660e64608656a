package product

import (
	"net/http"
	"time"

	"souqora_back_end/internal/apierror"
	"souqora_back_end/internal/models"
	"souqora_back_end/internal/store"
	"souqora_back_end/internal/validation"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// GetReviews liste les avis, restreints au produit sur la route imbriquée
// (/products/:productId/reviews)
func GetReviews(c *gin.Context) {
	base := bson.M{}
	if productID := c.Param("productId"); productID != "" {
		oid, err := store.ParseID(productID)
		if err != nil {
			apierror.Abort(c, err)
			return
		}
		base["product"] = oid
	}

	docs, pagination, err := store.Reviews().List(c.Request.Context(), c.Request.URL.Query(), base)
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

func GetReview(c *gin.Context) {
	review, err := store.Reviews().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": review})
}

func CreateReview(c *gin.Context) {
	var input struct {
		Title   string  `json:"title"`
		Ratings float64 `json:"ratings"`
		Product string  `json:"product"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Sur la route imbriquée, le produit vient de l'URL
	if input.Product == "" {
		input.Product = c.Param("productId")
	}

	if err := validation.Validate(
		validation.Field{Name: "ratings", Rules: []validation.Rule{
			validation.Between(input.Ratings, 1, 5, "la note doit être entre 1.0 et 5.0"),
		}},
		validation.Field{Name: "product", Rules: []validation.Rule{
			validation.NotEmpty(input.Product, "produit requis"),
			validation.ObjectID(input.Product),
		}},
	); err != nil {
		apierror.Abort(c, err)
		return
	}

	productID, _ := store.ParseID(input.Product)
	userID, err := store.ParseID(c.GetString("user_id"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	// Le produit doit exister
	if _, err := store.Products().GetByID(c.Request.Context(), input.Product); err != nil {
		apierror.Abort(c, err)
		return
	}

	// Un seul avis par utilisateur et par produit
	exists, err := store.HasReview(c.Request.Context(), userID, productID)
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	if exists {
		apierror.Abort(c, apierror.Invalid("Vous avez déjà laissé un avis sur ce produit"))
		return
	}

	now := time.Now()
	review := models.Review{
		Title:     input.Title,
		Ratings:   input.Ratings,
		User:      userID,
		Product:   productID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := store.Reviews().Create(c.Request.Context(), &review)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	if err := store.SyncProductRatings(c.Request.Context(), productID); err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

func UpdateReview(c *gin.Context) {
	review, err := store.Reviews().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	// Seul l'auteur peut modifier son avis
	if review.User.Hex() != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Vous ne pouvez modifier que vos propres avis"})
		return
	}

	var input struct {
		Title   *string  `json:"title"`
		Ratings *float64 `json:"ratings"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Ratings != nil {
		if err := validation.Validate(validation.Field{Name: "ratings", Rules: []validation.Rule{
			validation.Between(*input.Ratings, 1, 5, "la note doit être entre 1.0 et 5.0"),
		}}); err != nil {
			apierror.Abort(c, err)
			return
		}
		set["ratings"] = *input.Ratings
	}

	updated, err := store.Reviews().UpdateByID(c.Request.Context(), c.Param("id"), set)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	if err := store.SyncProductRatings(c.Request.Context(), review.Product); err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func DeleteReview(c *gin.Context) {
	review, err := store.Reviews().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	// L'auteur, un manager ou un admin peut supprimer
	role := c.GetString("role")
	if review.User.Hex() != c.GetString("user_id") && role != models.RoleAdmin && role != models.RoleManager {
		c.JSON(http.StatusForbidden, gin.H{"error": "Vous ne pouvez supprimer que vos propres avis"})
		return
	}

	if err := store.Reviews().DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		apierror.Abort(c, err)
		return
	}

	if err := store.SyncProductRatings(c.Request.Context(), review.Product); err != nil {
		apierror.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
