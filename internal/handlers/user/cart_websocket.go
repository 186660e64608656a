package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"souqora_back_end/internal/apierror"
	"souqora_back_end/internal/database"
	"souqora_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// CartWebSocket pousse l'état du panier à chaque modification, toutes
// instances confondues (relayé par Redis pub/sub)
func CartWebSocket(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.Redis.Subscribe(ctx, "cart:"+userID.Hex())
	defer pubsub.Close()
	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Synchronisation panier activée",
	})

	// Détecte la fermeture côté client
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	for {
		select {
		case msg, open := <-ch:
			if !open {
				return
			}
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}

			cart, err := store.FindCartByUser(ctx, userID)
			if apierror.IsNotFound(err) {
				conn.WriteJSON(map[string]interface{}{
					"type":  "cart_updated",
					"items": []interface{}{},
					"total": 0,
					"count": 0,
				})
				continue
			}
			if err != nil {
				log.Printf("⚠️ Lecture panier impossible pour le WebSocket: %v", err)
				continue
			}

			count := 0
			for _, item := range cart.CartItems {
				count += item.Quantity
			}
			conn.WriteJSON(map[string]interface{}{
				"type":  "cart_updated",
				"items": cart.CartItems,
				"total": cart.TotalCartPrice,
				"count": count,
			})

		case <-ping.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-done:
			return
		}
	}
}
