package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Défauts de pagination (identiques pour toutes les ressources)
const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// Clés réservées, retirées du filtre avant construction de la requête
var reservedKeys = map[string]bool{
	"page":    true,
	"limit":   true,
	"sort":    true,
	"fields":  true,
	"keyword": true,
}

var rangeOperators = map[string]string{
	"gte": "$gte",
	"gt":  "$gt",
	"lte": "$lte",
	"lt":  "$lt",
}

type Pagination struct {
	CurrentPage   int  `json:"currentPage"`
	Limit         int  `json:"limit"`
	NumberOfPages int  `json:"numberOfPages"`
	Next          *int `json:"next,omitempty"`
	Prev          *int `json:"prev,omitempty"`
}

// Features compose une requête de lecture (filtre + tri + projection +
// recherche + pagination) depuis les paramètres bruts de la requête HTTP.
// L'ordre d'application est fixe : Filter → Sort → LimitFields → Search →
// Paginate, chaque étape opérant sur le résultat rétréci de la précédente.
type Features struct {
	params     url.Values
	filter     bson.M
	opts       *options.FindOptions
	Pagination Pagination
}

func New(params url.Values) *Features {
	return &Features{
		params: params,
		filter: bson.M{},
		opts:   options.Find(),
	}
}

// Filter transforme les paires clé/valeur restantes en contraintes d'égalité,
// ou de comparaison via la syntaxe field[gte|gt|lte|lt]=..., combinées en
// conjonction. Aucune validation d'existence de champ : une clé inconnue passe
// telle quelle au driver.
func (f *Features) Filter() *Features {
	for key, values := range f.params {
		if reservedKeys[key] || len(values) == 0 {
			continue
		}

		field, op, ok := splitRangeKey(key)
		if ok {
			constraint, exists := f.filter[field].(bson.M)
			if !exists {
				constraint = bson.M{}
			}
			constraint[op] = coerce(values[0])
			f.filter[field] = constraint
			continue
		}

		f.filter[key] = equalityConstraint(values[0])
	}
	return f
}

// And fusionne un filtre de base (ex. restriction par utilisateur ou par
// ressource parente) — paramètre explicite, pas d'état partagé sur la requête.
func (f *Features) And(base bson.M) *Features {
	for k, v := range base {
		f.filter[k] = v
	}
	return f
}

// Sort applique sort=champ1,-champ2 par priorité ; défaut -createdAt
func (f *Features) Sort() *Features {
	raw := f.params.Get("sort")
	if raw == "" {
		f.opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
		return f
	}

	var sort bson.D
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		dir := 1
		if strings.HasPrefix(field, "-") {
			dir = -1
			field = field[1:]
		}
		sort = append(sort, bson.E{Key: field, Value: dir})
	}
	if len(sort) > 0 {
		f.opts.SetSort(sort)
	}
	return f
}

// LimitFields restreint les champs retournés ; par défaut seul le champ de
// version interne est exclu
func (f *Features) LimitFields() *Features {
	raw := f.params.Get("fields")
	if raw == "" {
		f.opts.SetProjection(bson.M{"__v": 0})
		return f
	}

	projection := bson.M{}
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if strings.HasPrefix(field, "-") {
			projection[field[1:]] = 0
		} else {
			projection[field] = 1
		}
	}
	f.opts.SetProjection(projection)
	return f
}

// Search ajoute une recherche insensible à la casse si keyword est présent.
// La ressource Product cherche dans title OU description, les autres dans name.
func (f *Features) Search(resource string) *Features {
	keyword := f.params.Get("keyword")
	if keyword == "" {
		return f
	}

	regex := primitive.Regex{Pattern: keyword, Options: "i"}
	if resource == "Product" {
		f.filter["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"description": regex},
		}
	} else {
		f.filter["name"] = regex
	}
	return f
}

// Paginate calcule skip/limit et les métadonnées à partir du nombre total de
// documents avant pagination. Les valeurs non numériques retombent
// silencieusement sur les défauts, jamais en erreur.
func (f *Features) Paginate(total int64) *Features {
	page := atoiOrDefault(f.params.Get("page"), DefaultPage)
	limit := atoiOrDefault(f.params.Get("limit"), DefaultLimit)
	skip := (page - 1) * limit

	f.Pagination = Pagination{
		CurrentPage:   page,
		Limit:         limit,
		NumberOfPages: int(math.Ceil(float64(total) / float64(limit))),
	}
	if int64(skip+limit) < total {
		next := page + 1
		f.Pagination.Next = &next
	}
	if skip > 0 {
		prev := page - 1
		f.Pagination.Prev = &prev
	}

	f.opts.SetSkip(int64(skip))
	f.opts.SetLimit(int64(limit))
	return f
}

// FilterDoc retourne le filtre composé, non exécuté
func (f *Features) FilterDoc() bson.M {
	return f.filter
}

// Options retourne les options de lecture (tri, projection, skip/limit)
func (f *Features) Options() *options.FindOptions {
	return f.opts
}

// splitRangeKey reconnaît la syntaxe field[op] pour op ∈ gte, gt, lte, lt
func splitRangeKey(key string) (field, op string, ok bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return "", "", false
	}
	mongoOp, known := rangeOperators[key[open+1:len(key)-1]]
	if !known {
		return "", "", false
	}
	return key[:open], mongoOp, true
}

// equalityConstraint matche la valeur sous son typage coercé ET sous sa forme
// texte : sans schéma côté store, un champ texte peut porter une valeur
// d'allure numérique (title=2001) que la coercition seule ne matcherait plus
func equalityConstraint(value string) interface{} {
	coerced := coerce(value)
	if _, isString := coerced.(string); isString {
		return value
	}
	return bson.M{"$in": bson.A{coerced, value}}
}

// coerce convertit une valeur en nombre quand c'est possible, sinon la garde
// en chaîne — les opérateurs de comparaison exigent des nombres
func coerce(value string) interface{} {
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return n
	}
	if value == "true" {
		return true
	}
	if value == "false" {
		return false
	}
	return value
}

func atoiOrDefault(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
