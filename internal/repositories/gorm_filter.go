package repositories

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"schoolpay/internal/query"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func applyFilter(db *gorm.DB, f query.Filter) (*gorm.DB, error) {
	switch n := f.(type) {
	case nil:
		return db, nil
	case query.All:
		var err error
		for _, child := range n {
			if db, err = applyFilter(db, child); err != nil {
				return nil, err
			}
		}
		return db, nil
	case query.StatusEquals:
		return db.Where("transactions.status = ?", n.Status), nil
	case query.TextSearch:
		pattern := "%" + likeEscaper.Replace(strings.ToLower(n.Term)) + "%"
		return db.Where(`(LOWER(transactions.collect_id) LIKE ? ESCAPE '\' OR LOWER(transactions.custom_order_id) LIKE ? ESCAPE '\')`,
			pattern, pattern), nil
	case query.DateRange:
		if n.From != nil {
			db = db.Where("transactions.transaction_date >= ?", n.From.UTC())
		}
		if n.To != nil {
			db = db.Where("transactions.transaction_date <= ?", n.To.UTC())
		}
		return db, nil
	case query.SchoolEquals:
		return db.Where("transactions.school_id = ?", n.SchoolID), nil
	case query.StudentLinked:
		return db.Where("EXISTS (SELECT 1 FROM students WHERE students.student_id = transactions.student_id)"), nil
	default:
		return nil, fmt.Errorf("unsupported filter node %T", f)
	}
}

func orderClause(s query.Sort) string {
	s = s.OrNormalized()
	dir := "ASC"
	if s.Descending {
		dir = "DESC"
	}
	// collect_id is unique, so pages never overlap on equal sort keys.
	return fmt.Sprintf("transactions.%s %s, transactions.collect_id ASC", s.Field, dir)
}
