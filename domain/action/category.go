package action

import "net/http"

// Category classifies a failed execution. The set is closed: anything the
// classifier cannot place in a specific category falls into CategoryAny.
type Category string

const (
	CategoryValidation    Category = "validation"
	CategoryNotFound      Category = "not_found"
	CategoryAuthorization Category = "authorization"
	CategoryAny           Category = "any"
)

// StatusCode maps the category to its HTTP status. The mapping is total:
// unknown values are treated as CategoryAny.
func (c Category) StatusCode() int {
	switch c {
	case CategoryValidation:
		return http.StatusUnprocessableEntity
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Categories returns the closed category set.
func Categories() []Category {
	return []Category{CategoryValidation, CategoryNotFound, CategoryAuthorization, CategoryAny}
}
