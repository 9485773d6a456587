package repositories

import (
	"strconv"
	"strings"

	"github.com/BradenHooton/storefront/internal/models"
)

// productFilter accumulates WHERE predicates and their positional arguments.
// It always starts from the availability predicate; optional predicates are
// folded in only when their filter value is present.
type productFilter struct {
	predicates []string
	args       []any
}

func newProductFilter(q models.ProductQuery) *productFilter {
	f := &productFilter{predicates: []string{"p.is_available = TRUE"}}

	if q.CategoryID != nil {
		f.add(*q.CategoryID, func(param string) string {
			return "p.category_id = " + param
		})
	}
	if q.Term != nil {
		f.add(escapeLike(*q.Term), func(param string) string {
			return `p.name ILIKE '%' || ` + param + ` || '%' ESCAPE '\'`
		})
	}

	return f
}

// add binds arg to the next positional parameter and appends the predicate
// built around it.
func (f *productFilter) add(arg any, predicate func(param string) string) {
	f.args = append(f.args, arg)
	f.predicates = append(f.predicates, predicate("$"+strconv.Itoa(len(f.args))))
}

func (f *productFilter) where() string {
	return "WHERE " + strings.Join(f.predicates, " AND ")
}

// nextParam is the index the next positional parameter will take.
func (f *productFilter) nextParam() int {
	return len(f.args) + 1
}

// orderBy resolves a sort into a total ordering; id is the last key so that
// equal names never swap between pages. Unpriced products sort last.
func orderBy(sort models.ProductSort) string {
	if sort == models.SortPriceAsc {
		return "ORDER BY p.price_amount ASC NULLS LAST, p.name ASC, p.id ASC"
	}
	return "ORDER BY p.name ASC, p.id ASC"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes term match literally inside an ILIKE pattern.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
