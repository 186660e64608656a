package user

import (
	"net/http"

	"souqora_back_end/internal/apierror"
	"souqora_back_end/internal/models"
	"souqora_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// AddToWishlist — $addToSet, donc idempotent si le produit y est déjà
func AddToWishlist(c *gin.Context) {
	var input struct {
		ProductID string `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	productID, err := store.ParseID(input.ProductID)
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	userID, err := store.ParseID(c.GetString("user_id"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	if _, err := store.Products().GetByID(c.Request.Context(), input.ProductID); err != nil {
		apierror.Abort(c, err)
		return
	}

	updated, err := store.AddToWishlist(c.Request.Context(), userID, productID)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté à votre liste de souhaits",
		"data":    updated.Wishlist,
	})
}

func RemoveFromWishlist(c *gin.Context) {
	productID, err := store.ParseID(c.Param("productId"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	userID, err := store.ParseID(c.GetString("user_id"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	updated, err := store.RemoveFromWishlist(c.Request.Context(), userID, productID)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit retiré de votre liste de souhaits",
		"data":    updated.Wishlist,
	})
}

// GetMyWishlist renvoie les produits complets de la liste de souhaits
func GetMyWishlist(c *gin.Context) {
	userID, err := store.ParseID(c.GetString("user_id"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	me, err := store.FindUserByID(c.Request.Context(), userID)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	products := []models.Product{}
	if len(me.Wishlist) > 0 {
		cursor, err := store.Products().Raw().Find(c.Request.Context(),
			bson.M{"_id": bson.M{"$in": me.Wishlist}})
		if err != nil {
			apierror.Abort(c, err)
			return
		}
		if err := cursor.All(c.Request.Context(), &products); err != nil {
			apierror.Abort(c, err)
			return
		}
		for i := range products {
			store.ApplyProductImageURLs(&products[i])
		}
	}

	c.JSON(http.StatusOK, gin.H{"results": len(products), "data": products})
}
