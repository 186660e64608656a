package user

import (
	"net/http"
	"strings"
	"time"

	"souqora_back_end/internal/apierror"
	"souqora_back_end/internal/cache"
	"souqora_back_end/internal/models"
	"souqora_back_end/internal/store"
	"souqora_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
)

// ================== PROFIL (utilisateur connecté) ==================

func GetMe(c *gin.Context) {
	me, err := store.Users().GetByID(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": me})
}

func UpdateMe(c *gin.Context) {
	var input struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
		Phone *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		set["name"] = *input.Name
		set["slug"] = slug.Make(*input.Name)
	}
	if input.Email != nil {
		set["email"] = strings.ToLower(*input.Email)
	}
	if input.Phone != nil {
		set["phone"] = *input.Phone
	}

	updated, err := store.Users().UpdateByID(c.Request.Context(), c.GetString("user_id"), set)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	cache.InvalidateUserCache(c.GetString("user_id"))
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// ChangeMyPassword exige l'ancien mot de passe pour un compte local
func ChangeMyPassword(c *gin.Context) {
	var input struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		Password        string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

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

	if me.Provider != "local" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les comptes OAuth ne peuvent pas changer de mot de passe ici"})
		return
	}

	valid, err := utils.VerifyPassword(input.CurrentPassword, me.Password)
	if err != nil || !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Ancien mot de passe incorrect"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	now := time.Now()
	updated, err := store.Users().UpdateByID(c.Request.Context(), c.GetString("user_id"), bson.M{
		"password":          hashed,
		"passwordChangedAt": now,
		"updatedAt":         now,
	})
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	cache.InvalidateUserCache(c.GetString("user_id"))

	token, err := utils.GenerateJWT(*updated)
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated, "token": token})
}

// DeactivateMe désactive le compte sans le supprimer
func DeactivateMe(c *gin.Context) {
	_, err := store.Users().UpdateByID(c.Request.Context(), c.GetString("user_id"), bson.M{
		"active":    false,
		"updatedAt": time.Now(),
	})
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	cache.InvalidateUserCache(c.GetString("user_id"))
	c.Status(http.StatusNoContent)
}

// UploadProfileImage redimensionne et stocke l'avatar dans MinIO
func UploadProfileImage(c *gin.Context) {
	file, err := c.FormFile("profileImage")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucune image fournie"})
		return
	}

	name, err := utils.UploadResizedSquare(c.Request.Context(), "users", file, 600)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	updated, err := store.Users().UpdateByID(c.Request.Context(), c.GetString("user_id"), bson.M{
		"profileImage": name,
		"updatedAt":    time.Now(),
	})
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	cache.InvalidateUserCache(c.GetString("user_id"))
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// ================== ADMINISTRATION ==================

func GetUsers(c *gin.Context) {
	docs, pagination, err := store.Users().List(c.Request.Context(), c.Request.URL.Query(), bson.M{})
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

func GetUser(c *gin.Context) {
	u, err := store.Users().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": u})
}

// UpdateUser — réservé aux admins, permet notamment de changer le rôle
func UpdateUser(c *gin.Context) {
	var input struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
		Phone *string `json:"phone"`
		Role  *string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		set["name"] = *input.Name
		set["slug"] = slug.Make(*input.Name)
	}
	if input.Email != nil {
		set["email"] = strings.ToLower(*input.Email)
	}
	if input.Phone != nil {
		set["phone"] = *input.Phone
	}
	if input.Role != nil {
		switch *input.Role {
		case models.RoleUser, models.RoleManager, models.RoleAdmin:
			set["role"] = *input.Role
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rôle inconnu"})
			return
		}
	}

	updated, err := store.Users().UpdateByID(c.Request.Context(), c.Param("id"), set)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	cache.InvalidateUserCache(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func DeleteUser(c *gin.Context) {
	if err := store.Users().DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		apierror.Abort(c, err)
		return
	}
	cache.InvalidateUserCache(c.Param("id"))
	c.Status(http.StatusNoContent)
}
