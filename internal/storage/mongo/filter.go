package mongo

import (
	"fmt"

	"github.com/DjordjeVuckovic/keypage/internal/domain"
	"github.com/DjordjeVuckovic/keypage/pkg/pagination"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

var operators = map[pagination.Op]string{
	pagination.Eq: "$eq",
	pagination.Gt: "$gt",
	pagination.Lt: "$lt",
}

// field maps a key column to its document field.
func field(column string) string {
	if column == domain.ColumnID {
		return "_id"
	}
	return column
}

func value(v any) any {
	if id, ok := v.(uuid.UUID); ok {
		return id.String()
	}
	return v
}

// Filter renders a page predicate as a query document.
func Filter(p pagination.Predicate) (bson.D, error) {
	switch p := p.(type) {
	case nil, pagination.True:
		return bson.D{}, nil
	case pagination.Compare:
		op, ok := operators[p.Op]
		if !ok {
			return nil, fmt.Errorf("unsupported operator %v", p.Op)
		}
		return bson.D{{Key: field(p.Column), Value: bson.D{{Key: op, Value: value(p.Value)}}}}, nil
	case pagination.And:
		if len(p) == 0 {
			return bson.D{}, nil
		}
		return group("$and", p)
	case pagination.Or:
		if len(p) == 0 {
			// matches no document
			return bson.D{{Key: "$nor", Value: bson.A{bson.D{}}}}, nil
		}
		return group("$or", p)
	default:
		return nil, fmt.Errorf("unsupported predicate %T", p)
	}
}

func group(op string, ps []pagination.Predicate) (bson.D, error) {
	docs := make(bson.A, 0, len(ps))
	for _, p := range ps {
		d, err := Filter(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return bson.D{{Key: op, Value: docs}}, nil
}

// Sort renders the page order as a sort document.
func Sort(o pagination.Order) bson.D {
	dir := 1
	if o.Descending {
		dir = -1
	}
	sort := make(bson.D, 0, len(o.Columns))
	for _, c := range o.Columns {
		sort = append(sort, bson.E{Key: field(c), Value: dir})
	}
	return sort
}
