package store

import (
	"strings"

	"souqora_back_end/internal/config"
	"souqora_back_end/internal/database"
	"souqora_back_end/internal/models"
)

func Categories() *Collection[models.Category] {
	return NewCollection(database.Categories, "Category", func(c *models.Category) {
		c.Image = publicImageURL("categories", c.Image)
	})
}

func SubCategories() *Collection[models.SubCategory] {
	return NewCollection[models.SubCategory](database.SubCategories, "SubCategory", nil)
}

func Brands() *Collection[models.Brand] {
	return NewCollection(database.Brands, "Brand", func(b *models.Brand) {
		b.Image = publicImageURL("brands", b.Image)
	})
}

func publicImageURL(folder, name string) string {
	if name == "" || strings.HasPrefix(name, "http") {
		return name
	}
	return config.BaseURL() + "/" + folder + "/" + name
}
