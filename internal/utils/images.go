package utils

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"souqora_back_end/internal/database"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// UploadResizedImage décode l'image reçue, la redimensionne en JPEG et la
// pousse dans MinIO sous <folder>/. Retourne le nom de fichier généré.
func UploadResizedImage(ctx context.Context, folder string, file *multipart.FileHeader, width, height int) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("image illisible: %w", err)
	}

	resized := imaging.Resize(img, width, height, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(95)); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s-%s-%d.jpeg", folder, uuid.NewString(), time.Now().UnixMilli())
	objectName := folder + "/" + filename

	_, err = database.MinIO.PutObject(ctx, database.Bucket(), objectName,
		bytes.NewReader(buf.Bytes()), int64(buf.Len()),
		minio.PutObjectOptions{ContentType: "image/jpeg"})
	if err != nil {
		return "", err
	}

	return filename, nil
}

// UploadResizedSquare — format carré (avatars, couvertures catalogue)
func UploadResizedSquare(ctx context.Context, folder string, file *multipart.FileHeader, size int) (string, error) {
	return UploadResizedImage(ctx, folder, file, size, size)
}
