package validation

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"souqora_back_end/internal/apierror"
)

// Rule : prédicat + message. Les règles d'un champ sont évaluées dans l'ordre
// et on s'arrête à la première qui échoue pour ce champ.
type Rule struct {
	Valid   func() bool
	Message string
}

// Field associe un nom de champ à sa chaîne ordonnée de règles
type Field struct {
	Name  string
	Rules []Rule
}

// Validate évalue chaque champ ; la première règle en échec d'un champ
// court-circuite les suivantes de ce champ. Retourne une erreur Invalid
// agrégeant les messages, ou nil.
func Validate(fields ...Field) error {
	var failures []string
	for _, field := range fields {
		for _, rule := range field.Rules {
			if !rule.Valid() {
				failures = append(failures, fmt.Sprintf("%s: %s", field.Name, rule.Message))
				break
			}
		}
	}
	if len(failures) > 0 {
		return apierror.Invalid(strings.Join(failures, "; "))
	}
	return nil
}

// --- Constructeurs de règles usuels ---

func NotEmpty(value, message string) Rule {
	return Rule{Valid: func() bool { return strings.TrimSpace(value) != "" }, Message: message}
}

func ObjectID(value string) Rule {
	return Rule{
		Valid:   func() bool { _, err := primitive.ObjectIDFromHex(value); return err == nil },
		Message: "identifiant invalide",
	}
}

func MinLen(value string, n int, message string) Rule {
	return Rule{Valid: func() bool { return len(value) >= n }, Message: message}
}

func MaxLen(value string, n int, message string) Rule {
	return Rule{Valid: func() bool { return len(value) <= n }, Message: message}
}

func Between(value, min, max float64, message string) Rule {
	return Rule{Valid: func() bool { return value >= min && value <= max }, Message: message}
}

func Positive(value int, message string) Rule {
	return Rule{Valid: func() bool { return value > 0 }, Message: message}
}

// Custom enveloppe un prédicat arbitraire (y compris une vérification en base)
func Custom(check func() bool, message string) Rule {
	return Rule{Valid: check, Message: message}
}
