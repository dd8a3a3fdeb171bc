package app

import (
	"database/sql"
	"errors"
	"io/fs"
	"reflect"
	"strings"

	"github.com/artpar/actionkit/domain/action"
	"github.com/artpar/actionkit/ports"
)

// ClassifyFunc reports whether an error belongs to a rule's category.
type ClassifyFunc func(err error) bool

type classifyRule struct {
	match    ClassifyFunc
	category action.Category
}

// Classifier maps service errors to the closed category set. Rules are
// consulted in registration order, custom rules before the defaults;
// anything unmatched is CategoryAny.
//
// Classifiers are assembled at startup and read-only afterwards.
type Classifier struct {
	rules []classifyRule
}

// NewClassifier creates a classifier with the default rule table.
func NewClassifier() *Classifier {
	c := &Classifier{}

	// Sentinels and typed errors first.
	c.append(func(err error) bool {
		return errors.Is(err, ErrNotFound) || errors.Is(err, ports.ErrNotFound) ||
			errors.Is(err, sql.ErrNoRows) || errors.Is(err, fs.ErrNotExist)
	}, action.CategoryNotFound)
	c.append(func(err error) bool {
		var verr *ValidationError
		return errors.As(err, &verr)
	}, action.CategoryValidation)
	c.append(func(err error) bool {
		return errors.Is(err, ErrForbidden) || errors.Is(err, ErrUnauthenticated) || errors.Is(err, fs.ErrPermission)
	}, action.CategoryAuthorization)

	// Name-based fallbacks tolerate error types from packages that may
	// or may not be linked in; matching is structural, not nominal.
	c.append(typeNameContains("NotFound"), action.CategoryNotFound)
	c.append(typeNameContains("Validation", "Invalid"), action.CategoryValidation)
	c.append(typeNameContains("Forbidden", "Unauthorized", "Authorization", "Permission"), action.CategoryAuthorization)

	return c
}

// Register prepends a rule so caller-supplied rules win over defaults.
func (c *Classifier) Register(match ClassifyFunc, cat action.Category) *Classifier {
	c.rules = append([]classifyRule{{match: match, category: cat}}, c.rules...)
	return c
}

func (c *Classifier) append(match ClassifyFunc, cat action.Category) {
	c.rules = append(c.rules, classifyRule{match: match, category: cat})
}

// Classify maps err to its category. A nil error is CategoryAny (callers
// only classify on the failure path).
func (c *Classifier) Classify(err error) action.Category {
	if err == nil {
		return action.CategoryAny
	}
	for _, rule := range c.rules {
		if rule.match(err) {
			return rule.category
		}
	}
	return action.CategoryAny
}

// typeNameContains matches when the dynamic type name of the error, or of
// any error in its unwrap chain, contains one of the fragments.
func typeNameContains(fragments ...string) ClassifyFunc {
	return func(err error) bool {
		for e := err; e != nil; e = errors.Unwrap(e) {
			name := reflect.TypeOf(e).String()
			for _, frag := range fragments {
				if strings.Contains(name, frag) {
					return true
				}
			}
		}
		return false
	}
}
