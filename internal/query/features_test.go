package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFilterRemovesReservedKeys(t *testing.T) {
	params := url.Values{}
	params.Set("page", "2")
	params.Set("limit", "10")
	params.Set("sort", "price")
	params.Set("fields", "title")
	params.Set("keyword", "tv")
	params.Set("category", "electro")

	filter := New(params).Filter().FilterDoc()

	assert.Equal(t, bson.M{"category": "electro"}, filter)
}

func TestFilterRewritesRangeOperators(t *testing.T) {
	params := url.Values{}
	params.Set("price[gte]", "100")
	params.Set("price[lt]", "500")
	params.Set("ratingsAverage[gt]", "4")

	filter := New(params).Filter().FilterDoc()

	price, ok := filter["price"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 100.0, price["$gte"])
	assert.Equal(t, 500.0, price["$lt"])

	ratings, ok := filter["ratingsAverage"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 4.0, ratings["$gt"])
}

func TestFilterCoercesValues(t *testing.T) {
	params := url.Values{}
	params.Set("sold", "12")
	params.Set("active", "true")
	params.Set("color", "rouge")

	filter := New(params).Filter().FilterDoc()

	// Égalité sur les deux typages : la valeur coercée et sa forme texte
	assert.Equal(t, bson.M{"$in": bson.A{12.0, "12"}}, filter["sold"])
	assert.Equal(t, bson.M{"$in": bson.A{true, "true"}}, filter["active"])
	assert.Equal(t, "rouge", filter["color"])
}

func TestFilterEqualityKeepsTextTyping(t *testing.T) {
	params := url.Values{}
	params.Set("title", "2001")

	filter := New(params).Filter().FilterDoc()

	// Un titre d'allure numérique doit encore matcher le champ texte
	constraint, ok := filter["title"].(bson.M)
	require.True(t, ok)
	assert.Contains(t, constraint["$in"], "2001")
	assert.Contains(t, constraint["$in"], 2001.0)
}

func TestAndMergesBaseFilter(t *testing.T) {
	params := url.Values{}
	params.Set("price[gte]", "10")

	oid := primitive.NewObjectID()
	filter := New(params).Filter().And(bson.M{"user": oid}).FilterDoc()

	assert.Equal(t, oid, filter["user"])
	assert.Contains(t, filter, "price")
}

func TestSortDefaultsToNewestFirst(t *testing.T) {
	f := New(url.Values{}).Sort()

	sort, ok := f.Options().Sort.(bson.D)
	require.True(t, ok)
	require.Len(t, sort, 1)
	assert.Equal(t, "createdAt", sort[0].Key)
	assert.Equal(t, -1, sort[0].Value)
}

func TestSortParsesCommaListWithDirections(t *testing.T) {
	params := url.Values{}
	params.Set("sort", "-price,sold")

	f := New(params).Sort()

	sort, ok := f.Options().Sort.(bson.D)
	require.True(t, ok)
	require.Len(t, sort, 2)
	assert.Equal(t, bson.E{Key: "price", Value: -1}, sort[0])
	assert.Equal(t, bson.E{Key: "sold", Value: 1}, sort[1])
}

func TestLimitFieldsDefaultExcludesVersionKey(t *testing.T) {
	f := New(url.Values{}).LimitFields()

	assert.Equal(t, bson.M{"__v": 0}, f.Options().Projection)
}

func TestLimitFieldsSelectsAndExcludes(t *testing.T) {
	params := url.Values{}
	params.Set("fields", "title,price")

	f := New(params).LimitFields()
	assert.Equal(t, bson.M{"title": 1, "price": 1}, f.Options().Projection)

	params.Set("fields", "-description")
	f = New(params).LimitFields()
	assert.Equal(t, bson.M{"description": 0}, f.Options().Projection)
}

func TestSearchProductMatchesTitleOrDescription(t *testing.T) {
	params := url.Values{}
	params.Set("keyword", "laptop")

	filter := New(params).Search("Product").FilterDoc()

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)
	assert.Equal(t, bson.M{"title": primitive.Regex{Pattern: "laptop", Options: "i"}}, or[0])
	assert.Equal(t, bson.M{"description": primitive.Regex{Pattern: "laptop", Options: "i"}}, or[1])
}

func TestSearchOtherResourcesMatchName(t *testing.T) {
	params := url.Values{}
	params.Set("keyword", "samsung")

	filter := New(params).Search("Brand").FilterDoc()

	assert.Equal(t, primitive.Regex{Pattern: "samsung", Options: "i"}, filter["name"])
}

func TestSearchWithoutKeywordLeavesFilterAlone(t *testing.T) {
	filter := New(url.Values{}).Search("Product").FilterDoc()
	assert.Empty(t, filter)
}

func TestPaginateDefaults(t *testing.T) {
	f := New(url.Values{}).Paginate(125)

	assert.Equal(t, 1, f.Pagination.CurrentPage)
	assert.Equal(t, 50, f.Pagination.Limit)
	assert.Equal(t, 3, f.Pagination.NumberOfPages)
	require.NotNil(t, f.Pagination.Next)
	assert.Equal(t, 2, *f.Pagination.Next)
	assert.Nil(t, f.Pagination.Prev)
	assert.Equal(t, int64(0), *f.Options().Skip)
	assert.Equal(t, int64(50), *f.Options().Limit)
}

func TestPaginateMiddlePage(t *testing.T) {
	params := url.Values{}
	params.Set("page", "2")
	params.Set("limit", "50")

	f := New(params).Paginate(125)

	require.NotNil(t, f.Pagination.Next)
	assert.Equal(t, 3, *f.Pagination.Next)
	require.NotNil(t, f.Pagination.Prev)
	assert.Equal(t, 1, *f.Pagination.Prev)
	assert.Equal(t, int64(50), *f.Options().Skip)
}

func TestPaginateLastPageHasNoNext(t *testing.T) {
	params := url.Values{}
	params.Set("page", "3")
	params.Set("limit", "50")

	f := New(params).Paginate(125)

	assert.Nil(t, f.Pagination.Next)
	require.NotNil(t, f.Pagination.Prev)
	assert.Equal(t, 2, *f.Pagination.Prev)
}

func TestPaginateExactBoundaryHasNoNext(t *testing.T) {
	params := url.Values{}
	params.Set("page", "2")
	params.Set("limit", "50")

	// skip+limit == total : pas de page suivante
	f := New(params).Paginate(100)

	assert.Nil(t, f.Pagination.Next)
	assert.Equal(t, 2, f.Pagination.NumberOfPages)
}

func TestPaginateNonNumericFallsBackToDefaults(t *testing.T) {
	params := url.Values{}
	params.Set("page", "abc")
	params.Set("limit", "-5")

	f := New(params).Paginate(10)

	assert.Equal(t, 1, f.Pagination.CurrentPage)
	assert.Equal(t, 50, f.Pagination.Limit)
}

func TestSplitRangeKey(t *testing.T) {
	field, op, ok := splitRangeKey("price[gte]")
	require.True(t, ok)
	assert.Equal(t, "price", field)
	assert.Equal(t, "$gte", op)

	_, _, ok = splitRangeKey("price[between]")
	assert.False(t, ok)

	_, _, ok = splitRangeKey("price")
	assert.False(t, ok)

	_, _, ok = splitRangeKey("[gte]")
	assert.False(t, ok)
}
