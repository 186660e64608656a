package store

import (
	"context"
	"net/url"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"souqora_back_end/internal/apierror"
	"souqora_back_end/internal/query"
)

// Collection offre le CRUD générique d'une ressource, instancié par entité.
// afterLoad est une transformation explicite appliquée juste après chaque
// lecture (ex. réécriture des URLs d'images) — visible au point d'appel,
// pas de hook implicite sur le type.
type Collection[T any] struct {
	coll      *mongo.Collection
	resource  string
	afterLoad func(*T)
}

func NewCollection[T any](coll *mongo.Collection, resource string, afterLoad func(*T)) *Collection[T] {
	return &Collection[T]{coll: coll, resource: resource, afterLoad: afterLoad}
}

// ParseID convertit un identifiant hexadécimal en ObjectID, Invalid sinon
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apierror.Invalid("identifiant invalide : " + id)
	}
	return oid, nil
}

func (c *Collection[T]) GetByID(ctx context.Context, id string) (*T, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var doc T
	err = c.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, apierror.NotFound("Aucun document pour cet id " + id)
	}
	if err != nil {
		return nil, err
	}
	if c.afterLoad != nil {
		c.afterLoad(&doc)
	}
	return &doc, nil
}

// List exécute le pipeline de requête complet : filtre → tri → projection →
// recherche → pagination. base restreint la lecture (ressource imbriquée,
// commandes d'un utilisateur) et est passé explicitement par le handler.
func (c *Collection[T]) List(ctx context.Context, params url.Values, base bson.M) ([]T, query.Pagination, error) {
	if base == nil {
		base = bson.M{}
	}

	total, err := c.coll.CountDocuments(ctx, base)
	if err != nil {
		return nil, query.Pagination{}, err
	}

	features := query.New(params).
		Filter().
		Sort().
		LimitFields().
		Search(c.resource).
		Paginate(total)
	features.And(base)

	cursor, err := c.coll.Find(ctx, features.FilterDoc(), features.Options())
	if err != nil {
		return nil, query.Pagination{}, err
	}

	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, query.Pagination{}, err
	}
	if c.afterLoad != nil {
		for i := range docs {
			c.afterLoad(&docs[i])
		}
	}
	return docs, features.Pagination, nil
}

func (c *Collection[T]) Create(ctx context.Context, doc *T) (*T, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return nil, apierror.Conflict("Un document identique existe déjà")
	}
	if err != nil {
		return nil, err
	}

	var created T
	if err := c.coll.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&created); err != nil {
		return nil, err
	}
	if c.afterLoad != nil {
		c.afterLoad(&created)
	}
	return &created, nil
}

// UpdateByID applique un $set et retourne le document mis à jour
func (c *Collection[T]) UpdateByID(ctx context.Context, id string, set bson.M) (*T, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var updated T
	err = c.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, apierror.NotFound("Aucun document pour cet id " + id)
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, apierror.Conflict("Un document identique existe déjà")
	}
	if err != nil {
		return nil, err
	}
	if c.afterLoad != nil {
		c.afterLoad(&updated)
	}
	return &updated, nil
}

func (c *Collection[T]) DeleteByID(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}

	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apierror.NotFound("Aucun document pour cet id " + id)
	}
	return nil
}

// Raw expose la collection sous-jacente pour les opérations spécifiques
func (c *Collection[T]) Raw() *mongo.Collection {
	return c.coll
}
