package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"schoolpay/internal/models/db_models"
	"schoolpay/internal/models/request_models"
	"schoolpay/pkg/utils"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// MaxPage keeps (page-1)*limit within a 32-bit int for every allowed limit.
const MaxPage = math.MaxInt32 / MaxLimit

// Descriptor is the normalized output of Build.
type Descriptor struct {
	Filter Filter
	Sort   Sort
	Page   int
	Limit  int
}

func (d Descriptor) Skip() int { return Skip(d.Page, d.Limit) }

// Build validates raw list parameters and turns them into a Descriptor.
// All problems are collected and returned together.
func Build(q request_models.ListTransactionsQuery) (Descriptor, error) {
	var problems []string

	page, err := parsePositive(q.Page, DefaultPage)
	switch {
	case err != nil:
		problems = append(problems, "Page must be a positive integer.")
	case page > MaxPage:
		problems = append(problems, fmt.Sprintf("Page must not exceed %d.", MaxPage))
	}
	limit, err := parsePositive(q.Limit, DefaultLimit)
	if err != nil {
		problems = append(problems, "Limit must be a positive integer.")
	}

	var filters []Filter

	if status := strings.TrimSpace(q.Status); status != "" {
		s := db_models.TransactionStatus(status)
		if !s.Valid() {
			problems = append(problems, fmt.Sprintf("Invalid status '%s'. Allowed values: Pending, Success, Failed.", status))
		} else {
			filters = append(filters, StatusEquals{Status: s})
		}
	}

	if term := strings.TrimSpace(q.SearchTerm); term != "" {
		filters = append(filters, TextSearch{Term: term})
	}

	dr, dateProblems := ParseDateRange(q.StartDate, q.EndDate)
	problems = append(problems, dateProblems...)
	if dr != nil {
		filters = append(filters, *dr)
	}

	sort, sortProblems := parseSort(q.SortBy, q.SortOrder)
	problems = append(problems, sortProblems...)

	if len(problems) > 0 {
		return Descriptor{}, utils.NewValidationError(problems...)
	}

	return Descriptor{
		Filter: And(filters...),
		Sort:   sort,
		Page:   NormalizePage(page),
		Limit:  NormalizeLimit(limit),
	}, nil
}

// ParseDateRange returns nil when neither bound is given. A date-only end bound covers
// the whole day.
func ParseDateRange(start, end string) (*DateRange, []string) {
	var (
		dr       DateRange
		problems []string
	)

	if strings.TrimSpace(start) != "" {
		t, _, err := utils.ParseDate(start)
		if err != nil {
			problems = append(problems, "Invalid startDate format. Please use YYYY-MM-DD.")
		} else {
			dr.From = &t
		}
	}
	if strings.TrimSpace(end) != "" {
		t, dateOnly, err := utils.ParseDate(end)
		if err != nil {
			problems = append(problems, "Invalid endDate format. Please use YYYY-MM-DD.")
		} else {
			if dateOnly {
				t = utils.EndOfDay(t)
			}
			dr.To = &t
		}
	}

	if dr.From != nil && dr.To != nil && dr.From.After(*dr.To) {
		problems = append(problems, "startDate must not be after endDate.")
	}
	if len(problems) > 0 || (dr.From == nil && dr.To == nil) {
		return nil, problems
	}
	return &dr, nil
}

func parseSort(by, order string) (Sort, []string) {
	var problems []string
	sort := DefaultSort

	if by = strings.TrimSpace(by); by != "" {
		sort.Field = SortField(by)
		if !sort.Field.Valid() {
			problems = append(problems, fmt.Sprintf("Invalid sortBy '%s'. Allowed values: %s, %s, %s.",
				by, SortByTransactionDate, SortByOrderAmount, SortByTransactionAmount))
		}
	}
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "":
	case "asc":
		sort.Descending = false
	case "desc":
		sort.Descending = true
	default:
		problems = append(problems, "Invalid sortOrder. Allowed values: asc, desc.")
	}
	return sort, problems
}

func parsePositive(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%d is not positive", n)
	}
	return n, nil
}

func NormalizePage(page int) int {
	switch {
	case page <= 0:
		return DefaultPage
	case page > MaxPage:
		return MaxPage
	default:
		return page
	}
}

func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

func Skip(page, limit int) int {
	return (NormalizePage(page) - 1) * NormalizeLimit(limit)
}
