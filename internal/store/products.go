package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"souqora_back_end/internal/apierror"
	"souqora_back_end/internal/database"
	"souqora_back_end/internal/models"
)

func Products() *Collection[models.Product] {
	return NewCollection(database.Products, "Product", ApplyProductImageURLs)
}

// ApplyProductImageURLs préfixe les noms de fichiers image par l'URL publique.
// Transformation post-lecture explicite, invoquée par le store — remplace les
// hooks de schéma de type post-init/post-save.
func ApplyProductImageURLs(p *models.Product) {
	p.ImageCover = publicImageURL("products", p.ImageCover)
	for i, img := range p.Images {
		p.Images[i] = publicImageURL("products", img)
	}
}

// stockFilter ne matche le produit que si le stock couvre la quantité demandée
func stockFilter(item models.CartItem) bson.M {
	return bson.M{
		"_id":      item.Product,
		"quantity": bson.M{"$gte": item.Quantity},
	}
}

// stockUpdate décrémente le stock et incrémente le compteur de ventes
func stockUpdate(item models.CartItem) bson.M {
	return bson.M{"$inc": bson.M{
		"quantity": -item.Quantity,
		"sold":     item.Quantity,
	}}
}

// stockRollback ré-incrémente le stock d'un item déjà appliqué
func stockRollback(item models.CartItem) bson.M {
	return bson.M{"$inc": bson.M{
		"quantity": item.Quantity,
		"sold":     -item.Quantity,
	}}
}

// AdjustStock décrémente le stock et incrémente sold pour chaque item de la
// commande. Chaque mise à jour est conditionnelle (quantity ≥ demandé) : le
// stock ne passe jamais sous zéro. Si un item ne passe pas, les items déjà
// appliqués sont compensés puis l'appel échoue — pas de transaction
// multi-documents, mais jamais d'application partielle silencieuse.
func AdjustStock(ctx context.Context, items []models.CartItem) error {
	applied := make([]models.CartItem, 0, len(items))

	for _, item := range items {
		res, err := database.Products.UpdateOne(ctx, stockFilter(item), stockUpdate(item))
		if err == nil && res.ModifiedCount == 1 {
			applied = append(applied, item)
			continue
		}

		// compensation des items déjà décrémentés
		for _, done := range applied {
			_, _ = database.Products.UpdateOne(ctx, bson.M{"_id": done.Product}, stockRollback(done))
		}
		if err != nil {
			return err
		}
		return apierror.Invalid(fmt.Sprintf("Stock insuffisant pour le produit %s", item.Product.Hex()))
	}
	return nil
}

// RestoreStock annule un AdjustStock réussi quand l'étape suivante du
// checkout échoue (compensation)
func RestoreStock(ctx context.Context, items []models.CartItem) {
	for _, item := range items {
		_, _ = database.Products.UpdateOne(ctx, bson.M{"_id": item.Product}, stockRollback(item))
	}
}
