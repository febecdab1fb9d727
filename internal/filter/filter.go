// Package filter turns transaction search criteria into a query plan.
//
// The plan is independent of the persistence layer: it says which
// subcategory sets (optionally narrowed by a description keyword) a
// transaction must fall into, or that nothing can match. The services
// package translates a Plan into SQL.
package filter

import (
	"slices"
	"strings"
	"time"
)

// Mode selects the empty-criteria policy of the caller.
type Mode int

const (
	// ModeListing returns every transaction in range when no classification
	// criteria are given.
	ModeListing Mode = iota
	// ModeReport returns nothing when no classification criteria are given.
	ModeReport
)

// Criteria are the optional search parameters for a user's transactions.
type Criteria struct {
	StartDate      *time.Time
	EndDate        *time.Time
	CategoryIDs    []string
	SubcategoryIDs []string
	Keyword        string
}

// keyword returns the trimmed keyword.
func (c Criteria) keyword() string {
	return strings.TrimSpace(c.Keyword)
}

// HasClassification reports whether any category, subcategory or keyword
// criterion was supplied.
func (c Criteria) HasClassification() bool {
	return len(c.CategoryIDs) > 0 || len(c.SubcategoryIDs) > 0 || c.keyword() != ""
}

// Alternative matches transactions whose subcategory is in SubcategoryIDs
// and, when Keyword is set, whose description contains Keyword.
type Alternative struct {
	SubcategoryIDs []string
	Keyword        string
}

// Plan is the classification part of a transaction query. Alternatives are
// OR'd together. A plan with no alternatives and Empty unset places no
// classification constraint at all.
type Plan struct {
	Empty        bool
	Alternatives []Alternative
}

// Unrestricted reports whether the plan adds no classification clause.
func (p Plan) Unrestricted() bool {
	return !p.Empty && len(p.Alternatives) == 0
}

// SubcategoryResolver lists the ids of a user's subcategories under the
// given categories.
type SubcategoryResolver interface {
	SubcategoryIDs(userID string, categoryIDs []string) ([]string, error)
}

// Build classifies the criteria and resolves category selections into
// subcategory sets. fallbackID is the id of the catch-all category and may
// be empty when that category does not exist.
//
// Selecting only the fallback category together with a keyword restricts
// the result to the user's fallback subcategories whose description contains
// the keyword. Every other combination yields OR'd alternatives:
//   - explicit subcategories, which take precedence over categories;
//   - otherwise all subcategories of the selected categories, leaving out the
//     fallback category when a keyword is given for it;
//   - the fallback subcategories narrowed by the keyword, when the fallback
//     category is selected with a keyword.
func Build(r SubcategoryResolver, userID, fallbackID string, c Criteria, mode Mode) (Plan, error) {
	if !c.HasClassification() {
		if mode == ModeReport {
			return Plan{Empty: true}, nil
		}
		return Plan{}, nil
	}

	keyword := c.keyword()
	hasKeyword := keyword != ""
	hasSubcategories := len(c.SubcategoryIDs) > 0
	fallbackSelected := fallbackID != "" && slices.Contains(c.CategoryIDs, fallbackID)

	if fallbackSelected && len(c.CategoryIDs) == 1 && hasKeyword && !hasSubcategories {
		ids, err := r.SubcategoryIDs(userID, []string{fallbackID})
		if err != nil {
			return Plan{}, err
		}
		if len(ids) == 0 {
			return Plan{Empty: true}, nil
		}
		return Plan{Alternatives: []Alternative{{SubcategoryIDs: ids, Keyword: keyword}}}, nil
	}

	var alts []Alternative

	switch {
	case hasSubcategories:
		alts = append(alts, Alternative{SubcategoryIDs: slices.Clone(c.SubcategoryIDs)})
	case len(c.CategoryIDs) > 0:
		include := make([]string, 0, len(c.CategoryIDs))
		for _, id := range c.CategoryIDs {
			if id == fallbackID && hasKeyword {
				continue
			}
			include = append(include, id)
		}
		if len(include) > 0 {
			ids, err := r.SubcategoryIDs(userID, include)
			if err != nil {
				return Plan{}, err
			}
			if len(ids) > 0 {
				alts = append(alts, Alternative{SubcategoryIDs: ids})
			}
		}
	}

	if fallbackSelected && hasKeyword {
		ids, err := r.SubcategoryIDs(userID, []string{fallbackID})
		if err != nil {
			return Plan{}, err
		}
		if len(ids) > 0 {
			alts = append(alts, Alternative{SubcategoryIDs: ids, Keyword: keyword})
		}
	}

	if len(alts) > 0 {
		return Plan{Alternatives: alts}, nil
	}

	// A bare keyword carries no classification on its own.
	if len(c.CategoryIDs) == 0 && !hasSubcategories && mode == ModeListing {
		return Plan{}, nil
	}
	return Plan{Empty: true}, nil
}

// Window returns the inclusive date bounds of the criteria. The end bound is
// widened to the last instant of its day.
func Window(c Criteria) (start, end *time.Time) {
	if c.StartDate != nil {
		s := startOfDay(*c.StartDate)
		start = &s
	}
	if c.EndDate != nil {
		e := startOfDay(*c.EndDate).Add(24*time.Hour - time.Nanosecond)
		end = &e
	}
	return start, end
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
