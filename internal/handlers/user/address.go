package user

import (
	"net/http"

	"souqora_back_end/internal/apierror"
	"souqora_back_end/internal/models"
	"souqora_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

func AddAddress(c *gin.Context) {
	var address models.Address
	if err := c.ShouldBindJSON(&address); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := store.ParseID(c.GetString("user_id"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	updated, err := store.AddAddress(c.Request.Context(), userID, address)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Adresse ajoutée",
		"data":    updated.Addresses,
	})
}

func RemoveAddress(c *gin.Context) {
	userID, err := store.ParseID(c.GetString("user_id"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	updated, err := store.RemoveAddress(c.Request.Context(), userID, c.Param("addressId"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Adresse supprimée",
		"data":    updated.Addresses,
	})
}

func GetMyAddresses(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{"results": len(me.Addresses), "data": me.Addresses})
}
