package payment

import (
	"log"
	"os"
	"strconv"

	"souqora_back_end/internal/cache"
	"souqora_back_end/internal/models"
	"souqora_back_end/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// taxPrice / shippingPrice viennent de l'environnement, 0 par défaut
func envPrice(key string) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return 0
	}
	return v
}

func taxPrice() float64      { return envPrice("ORDER_TAX_PRICE") }
func shippingPrice() float64 { return envPrice("ORDER_SHIPPING_PRICE") }

// cartOrderPrice retourne le prix à facturer : le total remisé s'il existe,
// sinon le total brut
func cartOrderPrice(cart *models.Cart) float64 {
	if cart.TotalPriceAfterDiscount != nil {
		return *cart.TotalPriceAfterDiscount
	}
	return cart.TotalCartPrice
}

// sendOrderConfirmation envoie l'e-mail de confirmation sans bloquer la
// requête. Les titres produits passent par le cache Redis.
func sendOrderConfirmation(order models.Order, email string) {
	go func() {
		ids := make([]primitive.ObjectID, 0, len(order.CartItems))
		for _, item := range order.CartItems {
			ids = append(ids, item.Product)
		}
		titles := cache.GetProductTitlesFromCache(ids)

		html := utils.GenerateOrderConfirmationHTML(order, titles)
		if err := utils.SendEmail(email, "Confirmation de votre commande", html); err != nil {
			log.Printf("❌ Envoi e-mail de confirmation impossible (%s): %v", email, err)
		}
	}()
}
