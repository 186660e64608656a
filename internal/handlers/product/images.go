package product

import (
	"net/http"
	"time"

	"souqora_back_end/internal/apierror"
	"souqora_back_end/internal/database"
	"souqora_back_end/internal/store"
	"souqora_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"go.mongodb.org/mongo-driver/bson"
)

// UploadProductImages reçoit imageCover (obligatoire) et jusqu'à 5 images de
// galerie, les redimensionne et les stocke dans MinIO
func UploadProductImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formulaire multipart invalide"})
		return
	}

	set := bson.M{"updatedAt": time.Now()}

	if covers := form.File["imageCover"]; len(covers) > 0 {
		name, err := utils.UploadResizedImage(c.Request.Context(), "products", covers[0], 2000, 1333)
		if err != nil {
			apierror.Abort(c, err)
			return
		}
		set["imageCover"] = name
	}

	if gallery := form.File["images"]; len(gallery) > 0 {
		if len(gallery) > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "5 images de galerie au maximum"})
			return
		}
		names := make([]string, 0, len(gallery))
		for _, file := range gallery {
			name, err := utils.UploadResizedImage(c.Request.Context(), "products", file, 800, 800)
			if err != nil {
				apierror.Abort(c, err)
				return
			}
			names = append(names, name)
		}
		set["images"] = names
	}

	if len(set) == 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucune image fournie"})
		return
	}

	updated, err := store.Products().UpdateByID(c.Request.Context(), c.Param("id"), set)
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func UploadCategoryImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucune image fournie"})
		return
	}

	name, err := utils.UploadResizedSquare(c.Request.Context(), "categories", file, 600)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	updated, err := store.Categories().UpdateByID(c.Request.Context(), c.Param("id"),
		bson.M{"image": name, "updatedAt": time.Now()})
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func UploadBrandImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucune image fournie"})
		return
	}

	name, err := utils.UploadResizedSquare(c.Request.Context(), "brands", file, 600)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	updated, err := store.Brands().UpdateByID(c.Request.Context(), c.Param("id"),
		bson.M{"image": name, "updatedAt": time.Now()})
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// ServeImage streame une image depuis MinIO (GET /:folder/:filename)
func ServeImage(c *gin.Context) {
	folder := c.Param("folder")
	filename := c.Param("filename")

	switch folder {
	case "products", "categories", "brands", "users":
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Dossier inconnu"})
		return
	}

	object, err := database.MinIO.GetObject(c.Request.Context(), database.Bucket(),
		folder+"/"+filename, minio.GetObjectOptions{})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image introuvable"})
		return
	}
	defer object.Close()

	stat, err := object.Stat()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image introuvable"})
		return
	}

	c.DataFromReader(http.StatusOK, stat.Size, stat.ContentType, object, nil)
}
