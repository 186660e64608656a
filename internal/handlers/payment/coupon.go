package payment

import (
	"net/http"
	"strings"
	"time"

	"souqora_back_end/internal/apierror"
	"souqora_back_end/internal/models"
	"souqora_back_end/internal/store"
	"souqora_back_end/internal/validation"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

func GetCoupons(c *gin.Context) {
	docs, pagination, err := store.Coupons().List(c.Request.Context(), c.Request.URL.Query(), bson.M{})
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

func GetCoupon(c *gin.Context) {
	coupon, err := store.Coupons().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": coupon})
}

func CreateCoupon(c *gin.Context) {
	var coupon models.Coupon
	if err := c.ShouldBindJSON(&coupon); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validation.Validate(
		validation.Field{Name: "expire", Rules: []validation.Rule{
			validation.Custom(func() bool { return coupon.Expire.After(time.Now()) },
				"la date d'expiration est déjà passée"),
		}},
	); err != nil {
		apierror.Abort(c, err)
		return
	}

	// Les noms de coupons vivent en majuscules
	coupon.Name = strings.ToUpper(coupon.Name)
	now := time.Now()
	coupon.CreatedAt = now
	coupon.UpdatedAt = now

	created, err := store.Coupons().Create(c.Request.Context(), &coupon)
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

func UpdateCoupon(c *gin.Context) {
	var input struct {
		Name     *string    `json:"name"`
		Expire   *time.Time `json:"expire"`
		Discount *float64   `json:"discount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		set["name"] = strings.ToUpper(*input.Name)
	}
	if input.Expire != nil {
		set["expire"] = *input.Expire
	}
	if input.Discount != nil {
		if *input.Discount <= 0 || *input.Discount > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "La remise doit être entre 0 et 100"})
			return
		}
		set["discount"] = *input.Discount
	}

	updated, err := store.Coupons().UpdateByID(c.Request.Context(), c.Param("id"), set)
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func DeleteCoupon(c *gin.Context) {
	if err := store.Coupons().DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		apierror.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
