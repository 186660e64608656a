package user

import (
	"context"
	"net/http"
	"time"

	"souqora_back_end/internal/apierror"
	"souqora_back_end/internal/database"
	"souqora_back_end/internal/models"
	"souqora_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// publishCartEvent notifie les WebSockets ouverts de ce user
func publishCartEvent(ctx context.Context, userID, event string) {
	database.Redis.Publish(ctx, "cart:"+userID, event)
}

func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, err := store.ParseID(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return primitive.NilObjectID, false
	}
	return userID, true
}

func cartResponse(c *gin.Context, status int, message string, cart *models.Cart) {
	c.JSON(status, gin.H{
		"status":         "Success",
		"message":        message,
		"numOfCartItems": len(cart.CartItems),
		"data":           cart,
	})
}

// AddToCart ajoute un produit au panier (quantité 1). Si un item existe déjà
// pour le couple (produit, couleur), sa quantité est incrémentée.
func AddToCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Color     string `json:"color"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := store.Products().GetByID(c.Request.Context(), input.ProductID)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	// Prix figé à l'ajout : le prix remisé du produit s'il existe
	price := product.Price
	if product.PriceAfterDiscount != nil {
		price = *product.PriceAfterDiscount
	}

	cart, err := store.FindCartByUser(c.Request.Context(), userID)
	if apierror.IsNotFound(err) {
		cart = &models.Cart{
			User:      userID,
			CartItems: upsertCartItem(nil, product.ID, input.Color, price),
		}
		cart.RecomputeTotal()
		if err := store.CreateCart(c.Request.Context(), cart); err != nil {
			apierror.Abort(c, err)
			return
		}
		publishCartEvent(c.Request.Context(), userID.Hex(), "updated")
		cartResponse(c, http.StatusOK, "Produit ajouté au panier", cart)
		return
	}
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	cart.CartItems = upsertCartItem(cart.CartItems, product.ID, input.Color, price)
	cart.RecomputeTotal()
	if err := store.SaveCart(c.Request.Context(), cart); err != nil {
		apierror.Abort(c, err)
		return
	}

	publishCartEvent(c.Request.Context(), userID.Hex(), "updated")
	cartResponse(c, http.StatusOK, "Produit ajouté au panier", cart)
}

func GetMyCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cart, err := store.FindCartByUser(c.Request.Context(), userID)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	cartResponse(c, http.StatusOK, "", cart)
}

// UpdateCartItem modifie la quantité ou la couleur d'un item du panier
func UpdateCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		Quantity *int    `json:"quantity"`
		Color    *string `json:"color"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Quantity != nil && *input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	itemID, err := store.ParseID(c.Param("itemId"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	cart, err := store.FindCartByUser(c.Request.Context(), userID)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	found := false
	for i := range cart.CartItems {
		if cart.CartItems[i].ID == itemID {
			if input.Quantity != nil {
				cart.CartItems[i].Quantity = *input.Quantity
			}
			if input.Color != nil {
				cart.CartItems[i].Color = *input.Color
			}
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucun item pour cet id " + c.Param("itemId")})
		return
	}

	cart.RecomputeTotal()
	if err := store.SaveCart(c.Request.Context(), cart); err != nil {
		apierror.Abort(c, err)
		return
	}

	publishCartEvent(c.Request.Context(), userID.Hex(), "updated")
	cartResponse(c, http.StatusOK, "Panier mis à jour", cart)
}

// RemoveCartItem retire un item ($pull), puis recalcule le total
func RemoveCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cart, err := store.PullCartItem(c.Request.Context(), userID, c.Param("itemId"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	cart.RecomputeTotal()
	if err := store.SaveCart(c.Request.Context(), cart); err != nil {
		apierror.Abort(c, err)
		return
	}

	publishCartEvent(c.Request.Context(), userID.Hex(), "updated")
	cartResponse(c, http.StatusOK, "Produit retiré du panier", cart)
}

// ClearCart supprime le panier. Idempotent : 204 même sans panier.
func ClearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := store.DeleteCartByUser(c.Request.Context(), userID); err != nil {
		apierror.Abort(c, err)
		return
	}

	publishCartEvent(c.Request.Context(), userID.Hex(), "cleared")
	c.Status(http.StatusNoContent)
}

// ApplyCoupon applique un coupon valide sur le total du panier. Un nouveau
// coupon remplace la remise précédente, il ne s'y cumule pas.
func ApplyCoupon(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		Coupon string `json:"coupon" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coupon, err := store.FindValidCoupon(c.Request.Context(), input.Coupon)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	cart, err := store.FindCartByUser(c.Request.Context(), userID)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	cart.RecomputeTotal()

	// total × (1 − remise/100), arrondi à 2 décimales
	discounted := discountedTotal(cart.TotalCartPrice, coupon.Discount)
	cart.TotalPriceAfterDiscount = &discounted
	cart.UpdatedAt = time.Now()

	if err := store.SaveCart(c.Request.Context(), cart); err != nil {
		apierror.Abort(c, err)
		return
	}

	publishCartEvent(c.Request.Context(), userID.Hex(), "updated")
	cartResponse(c, http.StatusOK, "Coupon appliqué", cart)
}
