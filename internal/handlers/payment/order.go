package payment

import (
	"net/http"

	"souqora_back_end/internal/apierror"
	"souqora_back_end/internal/models"
	"souqora_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateCashOrder transforme le panier en commande payable à la livraison :
// items figés, stock décrémenté, panier supprimé
func CreateCashOrder(c *gin.Context) {
	var input struct {
		ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	}
	// Le body est optionnel : l'adresse peut être vide
	_ = c.ShouldBindJSON(&input)

	cart, err := store.FindCartByID(c.Request.Context(), c.Param("cartId"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	if cart.User.Hex() != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce panier ne vous appartient pas"})
		return
	}
	if len(cart.CartItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		return
	}

	// Le stock d'abord : si un produit manque, pas de commande
	if err := store.AdjustStock(c.Request.Context(), cart.CartItems); err != nil {
		apierror.Abort(c, err)
		return
	}

	order := models.Order{
		User:              cart.User,
		CartItems:         cart.CartItems,
		TaxPrice:          taxPrice(),
		ShippingPrice:     shippingPrice(),
		ShippingAddress:   input.ShippingAddress,
		TotalOrderPrice:   cartOrderPrice(cart) + taxPrice() + shippingPrice(),
		PaymentMethodType: models.PaymentMethodCash,
	}

	created, err := store.CreateOrder(c.Request.Context(), &order)
	if err != nil {
		// Compensation : la commande n'existe pas, on rend le stock
		store.RestoreStock(c.Request.Context(), cart.CartItems)
		apierror.Abort(c, err)
		return
	}

	if err := store.DeleteCartByID(c.Request.Context(), cart.ID); err != nil {
		apierror.Abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "Success", "data": created})
}

// GetOrders — un admin ou manager voit tout, un utilisateur ses commandes
func GetOrders(c *gin.Context) {
	base := bson.M{}
	role := c.GetString("role")
	if role != models.RoleAdmin && role != models.RoleManager {
		userID, err := store.ParseID(c.GetString("user_id"))
		if err != nil {
			apierror.Abort(c, err)
			return
		}
		base["user"] = userID
	}

	docs, pagination, err := store.Orders().List(c.Request.Context(), c.Request.URL.Query(), base)
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

func GetOrder(c *gin.Context) {
	order, err := store.Orders().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	role := c.GetString("role")
	if role != models.RoleAdmin && role != models.RoleManager && order.User.Hex() != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette commande ne vous appartient pas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}

func MarkOrderPaid(c *gin.Context) {
	order, err := store.MarkOrderPaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": order})
}

func MarkOrderDelivered(c *gin.Context) {
	order, err := store.MarkOrderDelivered(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": order})
}
