package payment

import (
	"log"
	"net/http"
	"os"

	"souqora_back_end/internal/apierror"
	"souqora_back_end/internal/models"
	"souqora_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/checkout/session"
)

// GetCheckoutSession crée une session Stripe Checkout pour le panier.
// Le cartId part en client_reference_id : le webhook s'en sert pour
// retrouver le panier une fois le paiement confirmé.
func GetCheckoutSession(c *gin.Context) {
	var input struct {
		ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	}
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

	email := c.GetString("email")
	total := cartOrderPrice(cart) + taxPrice() + shippingPrice()

	frontURL := os.Getenv("FRONTEND_URL")
	if frontURL == "" {
		frontURL = "http://localhost:5173"
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String("eur"),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("Commande Souqora"),
				},
				UnitAmount: stripe.Int64(int64(total * 100)),
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL:        stripe.String(frontURL + "/orders"),
		CancelURL:         stripe.String(frontURL + "/cart"),
		CustomerEmail:     stripe.String(email),
		ClientReferenceID: stripe.String(cart.ID.Hex()),
		Metadata: map[string]string{
			"details":    input.ShippingAddress.Details,
			"phone":      input.ShippingAddress.Phone,
			"city":       input.ShippingAddress.City,
			"postalCode": input.ShippingAddress.PostalCode,
		},
	}

	s, err := session.New(params)
	if err != nil {
		log.Println("❌ Erreur Stripe:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("💳 Session Checkout créée : %s (%.2f€) pour %s", s.ID, total, email)
	c.JSON(http.StatusOK, gin.H{"status": "Success", "session": s})
}
