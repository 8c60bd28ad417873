package repository

import (
	domainRepo "github.com/sangkips/salonpos-api/internal/domain/repository"
	"github.com/sangkips/salonpos-api/pkg/pagination"
	"gorm.io/gorm"
)

// sortable lists the columns a list endpoint may be ordered by
type sortable struct {
	columns     map[string]bool
	defaultSort string
}

func newSortable(defaultSort string, columns ...string) sortable {
	s := sortable{columns: make(map[string]bool, len(columns)), defaultSort: defaultSort}
	for _, c := range columns {
		s.columns[c] = true
	}
	return s
}

func (s sortable) orderBy(spec domainRepo.QuerySpec) string {
	if spec.SortBy != "" && s.columns[spec.SortBy] {
		return spec.SortBy + " " + spec.SortDirection()
	}
	return s.defaultSort
}

// Paginate counts and fetches one page of T. query must already carry the
// model and any scopes; the QuerySpec filters are added here. Preloads are
// attached after counting.
func Paginate[T any](query *gorm.DB, spec domainRepo.QuerySpec, params *pagination.PaginationParams, order sortable, preloads ...string) ([]T, int64, error) {
	var items []T
	var total int64

	query = query.Scopes(QuerySpecScope(spec))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	for _, p := range preloads {
		query = query.Preload(p)
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order(order.orderBy(spec)).
		Find(&items).Error
	return items, total, err
}
