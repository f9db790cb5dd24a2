package prob

import (
	"errors"

	"github.com/numkit/constrained-parameters-go/params"
)

// ErrInvalidCategoryCount is returned when a discretization is requested with fewer than one category.
var ErrInvalidCategoryCount = errors.New("category count must be at least 1")

// DiscreteDistribution is implemented by distributions that approximate a
// continuous law with a finite set of weighted categories.
//
// Categories are representative values in ascending order, Probabilities
// are their weights summing to one, and Parameters exposes the constrained
// parameters the discretization is derived from.
type DiscreteDistribution interface {
	Name() string
	CategoryCount() int
	Categories() []float64
	Probabilities() []float64
	Parameters() *params.ParameterList
}
