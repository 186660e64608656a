package validation

import (
	"net/http"
	"testing"

	"souqora_back_end/internal/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidateAllRulesPass(t *testing.T) {
	err := Validate(
		Field{Name: "name", Rules: []Rule{NotEmpty("tv", "requis"), MinLen("tv", 2, "trop court")}},
		Field{Name: "ratings", Rules: []Rule{Between(4.5, 1, 5, "hors bornes")}},
	)
	assert.NoError(t, err)
}

func TestValidateShortCircuitsPerField(t *testing.T) {
	// La première règle échoue : la deuxième (qui paniquerait sur une
	// chaîne vide) ne doit pas être évaluée
	evaluated := false
	err := Validate(Field{Name: "name", Rules: []Rule{
		NotEmpty("", "requis"),
		Custom(func() bool { evaluated = true; return true }, "jamais vu"),
	}})

	require.Error(t, err)
	assert.False(t, evaluated)
	assert.Contains(t, err.Error(), "name: requis")
}

func TestValidateAggregatesAcrossFields(t *testing.T) {
	err := Validate(
		Field{Name: "title", Rules: []Rule{NotEmpty("", "requis")}},
		Field{Name: "ratings", Rules: []Rule{Between(12, 1, 5, "entre 1 et 5")}},
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "title: requis")
	assert.Contains(t, err.Error(), "ratings: entre 1 et 5")
	assert.Equal(t, http.StatusBadRequest, apierror.StatusOf(err))
}

func TestObjectIDRule(t *testing.T) {
	valid := primitive.NewObjectID().Hex()
	assert.NoError(t, Validate(Field{Name: "id", Rules: []Rule{ObjectID(valid)}}))

	err := Validate(Field{Name: "id", Rules: []Rule{ObjectID("pas-un-id")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id: identifiant invalide")
}

func TestLengthAndPositiveRules(t *testing.T) {
	assert.Error(t, Validate(Field{Name: "n", Rules: []Rule{MinLen("ab", 3, "court")}}))
	assert.Error(t, Validate(Field{Name: "n", Rules: []Rule{MaxLen("abcd", 3, "long")}}))
	assert.Error(t, Validate(Field{Name: "q", Rules: []Rule{Positive(0, "positif requis")}}))
	assert.NoError(t, Validate(Field{Name: "q", Rules: []Rule{Positive(3, "positif requis")}}))
}
