package utils

import (
	"testing"
	"time"

	"souqora_back_end/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateJWTCarriesIdentityClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	user := models.User{
		ID:    primitive.NewObjectID(),
		Email: "client@souqora.com",
		Role:  models.RoleUser,
	}

	tokenString, err := GenerateJWT(user)
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret-de-test"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.Hex(), claims["user_id"])
	assert.Equal(t, "client@souqora.com", claims["email"])
	assert.Equal(t, models.RoleUser, claims["role"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.Greater(t, int64(exp), time.Now().Unix())
	assert.LessOrEqual(t, int64(exp), time.Now().Add(24*time.Hour).Unix())
}

func TestGenerateJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "bonne-clef")

	tokenString, err := GenerateJWT(models.User{ID: primitive.NewObjectID()})
	require.NoError(t, err)

	_, err = jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("mauvaise-clef"), nil
	})
	assert.Error(t, err)
}
