package payment

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"souqora_back_end/internal/models"
	"souqora_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/webhook"
)

// StripeWebhook reçoit les événements Stripe signés
func StripeWebhook(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		log.Println("❌ Lecture payload échouée:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Échec lecture body"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	var event stripe.Event

	if secret == "" {
		log.Println("⚠️ Pas de STRIPE_WEBHOOK_SECRET — mode test")
		if err := json.Unmarshal(payload, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "JSON invalide"})
			return
		}
	} else {
		event, err = webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), secret)
		if err != nil {
			log.Println("❌ Signature Stripe invalide:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Signature invalide"})
			return
		}
	}

	log.Printf("📥 Événement Stripe reçu : %s", event.Type)

	if event.Type == "checkout.session.completed" {
		var s stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
			log.Println("❌ Erreur décodage CheckoutSession:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Événement illisible"})
			return
		}
		if err := createCardOrder(context.Background(), s); err != nil {
			log.Println("❌ Création commande carte échouée:", err)
			// Stripe rejouera l'événement
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.Status(http.StatusOK)
}

// createCardOrder matérialise la commande une fois le paiement confirmé :
// panier retrouvé via client_reference_id, montant repris de Stripe (centimes)
func createCardOrder(ctx context.Context, s stripe.CheckoutSession) error {
	cart, err := store.FindCartByID(ctx, s.ClientReferenceID)
	if err != nil {
		return err
	}

	email := s.CustomerEmail
	if email == "" && s.CustomerDetails != nil {
		email = s.CustomerDetails.Email
	}
	user, err := store.FindUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	shipping := models.ShippingAddress{
		Details:    s.Metadata["details"],
		Phone:      s.Metadata["phone"],
		City:       s.Metadata["city"],
		PostalCode: s.Metadata["postalCode"],
	}

	// Le stock d'abord : si un produit manque, Stripe rejouera plus tard
	if err := store.AdjustStock(ctx, cart.CartItems); err != nil {
		return err
	}

	now := time.Now()
	order := models.Order{
		User:              user.ID,
		CartItems:         cart.CartItems,
		TaxPrice:          taxPrice(),
		ShippingPrice:     shippingPrice(),
		ShippingAddress:   shipping,
		TotalOrderPrice:   float64(s.AmountTotal) / 100, // Stripe compte en centimes
		PaymentMethodType: models.PaymentMethodCard,
		IsPaid:            true,
		PaidAt:            &now,
	}

	created, err := store.CreateOrder(ctx, &order)
	if err != nil {
		store.RestoreStock(ctx, cart.CartItems)
		return err
	}

	if err := store.DeleteCartByID(ctx, cart.ID); err != nil {
		log.Printf("⚠️ Panier %s non supprimé après commande: %v", cart.ID.Hex(), err)
	}

	log.Printf("✅ Commande carte créée %s pour %s", created.ID.Hex(), email)
	sendOrderConfirmation(*created, email)
	return nil
}
