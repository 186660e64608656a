package user

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"time"

	"souqora_back_end/internal/apierror"
	"souqora_back_end/internal/cache"
	"souqora_back_end/internal/database"
	"souqora_back_end/internal/store"
	"souqora_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// hashResetCode — le code n'est jamais stocké en clair
func hashResetCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func generateResetCode() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(1000000))
	return fmt.Sprintf("%06d", n.Int64())
}

// POST /api/v1/auth/forgot-password
func ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := store.FindUserByEmail(c.Request.Context(), input.Email)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	code := generateResetCode()
	expires := time.Now().Add(10 * time.Minute)
	verified := false

	_, err = database.Users.UpdateOne(c.Request.Context(), bson.M{"_id": user.ID}, bson.M{
		"$set": bson.M{
			"passwordResetCode":     hashResetCode(code),
			"passwordResetExpires":  expires,
			"passwordResetVerified": verified,
		},
	})
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	if err := utils.SendResetCodeEmail(user.Email, user.Name, code); err != nil {
		// L'envoi a échoué : on nettoie le code pour ne pas bloquer l'utilisateur
		log.Printf("❌ Envoi du code de réinitialisation impossible: %v", err)
		database.Users.UpdateOne(c.Request.Context(), bson.M{"_id": user.ID}, bson.M{
			"$unset": bson.M{
				"passwordResetCode":     "",
				"passwordResetExpires":  "",
				"passwordResetVerified": "",
			},
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'envoi de l'e-mail"})
		return
	}

	cache.InvalidateUserCache(user.ID.Hex())
	c.JSON(http.StatusOK, gin.H{"status": "Success", "message": "Code de réinitialisation envoyé par e-mail"})
}

// POST /api/v1/auth/verify-reset-code
func VerifyResetCode(c *gin.Context) {
	var input struct {
		ResetCode string `json:"resetCode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := database.Users.FindOneAndUpdate(c.Request.Context(), bson.M{
		"passwordResetCode":    hashResetCode(input.ResetCode),
		"passwordResetExpires": bson.M{"$gt": time.Now()},
	}, bson.M{
		"$set": bson.M{"passwordResetVerified": true},
	})
	if result.Err() != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code invalide ou expiré"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Success"})
}

// PUT /api/v1/auth/reset-password
func ResetPassword(c *gin.Context) {
	var input struct {
		Email       string `json:"email" binding:"required,email"`
		NewPassword string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := store.FindUserByEmail(c.Request.Context(), input.Email)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	if user.PasswordResetVerified == nil || !*user.PasswordResetVerified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le code de réinitialisation n'a pas été vérifié"})
		return
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	now := time.Now()
	_, err = database.Users.UpdateOne(c.Request.Context(), bson.M{"_id": user.ID}, bson.M{
		"$set": bson.M{
			"password":          hashed,
			"passwordChangedAt": now,
			"updatedAt":         now,
		},
		"$unset": bson.M{
			"passwordResetCode":     "",
			"passwordResetExpires":  "",
			"passwordResetVerified": "",
		},
	})
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	cache.InvalidateUserCache(user.ID.Hex())

	// Nouveau token : l'ancien est invalidé par passwordChangedAt
	user.Password = hashed
	token, err := utils.GenerateJWT(*user)
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
