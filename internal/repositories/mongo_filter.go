package repositories

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"schoolpay/internal/query"
)

const linkedStudentField = "_student"

// mongoPipeline turns a filter into the leading aggregation stages. StudentLinked is not
// expressible as a plain match, so it becomes a $lookup against students followed by a
// match on a non-empty join.
func mongoPipeline(f query.Filter) (mongo.Pipeline, error) {
	match, linked, err := mongoFilter(f)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	if linked {
		pipeline = append(pipeline,
			bson.D{{Key: "$lookup", Value: bson.D{
				{Key: "from", Value: studentsCollection},
				{Key: "localField", Value: "student_id"},
				{Key: "foreignField", Value: "student_id"},
				{Key: "as", Value: linkedStudentField},
			}}},
			bson.D{{Key: "$match", Value: bson.M{linkedStudentField: bson.M{"$ne": bson.A{}}}}},
			bson.D{{Key: "$project", Value: bson.M{linkedStudentField: 0}}},
		)
	}
	return pipeline, nil
}

// mongoFilter translates every node except StudentLinked into a match document and
// reports whether a StudentLinked node was present.
func mongoFilter(f query.Filter) (bson.M, bool, error) {
	switch n := f.(type) {
	case nil:
		return bson.M{}, false, nil
	case query.All:
		var linked bool
		clauses := make(bson.A, 0, len(n))
		for _, child := range n {
			m, childLinked, err := mongoFilter(child)
			if err != nil {
				return nil, false, err
			}
			linked = linked || childLinked
			if len(m) > 0 {
				clauses = append(clauses, m)
			}
		}
		switch len(clauses) {
		case 0:
			return bson.M{}, linked, nil
		case 1:
			return clauses[0].(bson.M), linked, nil
		default:
			return bson.M{"$and": clauses}, linked, nil
		}
	case query.StatusEquals:
		return bson.M{"status": n.Status}, false, nil
	case query.TextSearch:
		re := primitive.Regex{Pattern: regexp.QuoteMeta(n.Term), Options: "i"}
		return bson.M{"$or": bson.A{
			bson.M{"collect_id": re},
			bson.M{"custom_order_id": re},
		}}, false, nil
	case query.DateRange:
		bounds := bson.M{}
		if n.From != nil {
			bounds["$gte"] = n.From.UTC()
		}
		if n.To != nil {
			bounds["$lte"] = n.To.UTC()
		}
		if len(bounds) == 0 {
			return bson.M{}, false, nil
		}
		return bson.M{"transaction_date": bounds}, false, nil
	case query.SchoolEquals:
		return bson.M{"school_id": n.SchoolID}, false, nil
	case query.StudentLinked:
		return bson.M{}, true, nil
	default:
		return nil, false, fmt.Errorf("unsupported filter node %T", f)
	}
}

func mongoSort(s query.Sort) bson.D {
	s = s.OrNormalized()
	dir := 1
	if s.Descending {
		dir = -1
	}
	return bson.D{{Key: string(s.Field), Value: dir}, {Key: "collect_id", Value: 1}}
}
