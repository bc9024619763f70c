package slarule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"sla-srv/internal/model"
)

// Descriptor is the part of a feedback rule matching looks at.
type Descriptor struct {
	CompanyID      string
	FeedbackTypeID string
	Rating         *int
	Sentiment      *string
}

func DescriptorOf(fb model.Feedback) Descriptor {
	return Descriptor{
		CompanyID:      fb.CompanyID,
		FeedbackTypeID: fb.FeedbackTypeID,
		Rating:         fb.Rating,
		Sentiment:      fb.Sentiment,
	}
}

// MatchRule returns the single rule that applies to d among candidates:
// active, owned by d's company or the global tenant, of d's feedback type
// and with every condition satisfied; ties are broken by priority_level
// descending then sort_order ascending. A rule whose conditions cannot be
// evaluated never matches.
func MatchRule(d Descriptor, candidates []model.SlaRule) (model.SlaRule, bool) {
	var matched []model.SlaRule
	for _, r := range candidates {
		if !r.IsActive {
			continue
		}
		if r.CompanyID != d.CompanyID && !model.IsGlobalCompany(r.CompanyID) {
			continue
		}
		if r.FeedbackTypeID != d.FeedbackTypeID {
			continue
		}
		if !conditionsHold(r.Conditions, d) {
			continue
		}
		matched = append(matched, r)
	}
	if len(matched) == 0 {
		return model.SlaRule{}, false
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].PriorityLevel != matched[j].PriorityLevel {
			return matched[i].PriorityLevel > matched[j].PriorityLevel
		}
		return matched[i].SortOrder < matched[j].SortOrder
	})
	return matched[0], true
}

func conditionsHold(conds model.RuleConditions, d Descriptor) bool {
	for key, raw := range conds {
		switch key {
		case model.ConditionRating:
			if d.Rating == nil {
				return false
			}
			cmp, err := ParseRatingCondition(raw)
			if err != nil || !cmp.Holds(*d.Rating) {
				return false
			}
		case model.ConditionSentiment:
			want, ok := raw.(string)
			if !ok || d.Sentiment == nil || *d.Sentiment != want {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// RatingComparison is a parsed rating condition such as "<=2".
type RatingComparison struct {
	Op    string
	Value float64
}

var ratingOps = []string{"<=", ">=", "==", "<", ">", "="}

// ParseRatingCondition accepts a comparator expression ("<=2", ">= 4",
// "=3", "==3"), a bare number string, or a JSON number meaning equality.
func ParseRatingCondition(raw any) (RatingComparison, error) {
	switch v := raw.(type) {
	case float64:
		return RatingComparison{Op: "=", Value: v}, nil
	case int:
		return RatingComparison{Op: "=", Value: float64(v)}, nil
	case string:
		expr := strings.TrimSpace(v)
		op := "="
		for _, candidate := range ratingOps {
			if strings.HasPrefix(expr, candidate) {
				op = candidate
				expr = strings.TrimSpace(strings.TrimPrefix(expr, candidate))
				break
			}
		}
		if op == "==" {
			op = "="
		}
		n, err := strconv.ParseFloat(expr, 64)
		if err != nil {
			return RatingComparison{}, fmt.Errorf("%w: rating condition %q", ErrInvalidInput, v)
		}
		return RatingComparison{Op: op, Value: n}, nil
	}
	return RatingComparison{}, fmt.Errorf("%w: rating condition of type %T", ErrInvalidInput, raw)
}

func (c RatingComparison) Holds(rating int) bool {
	r := float64(rating)
	switch c.Op {
	case "<=":
		return r <= c.Value
	case ">=":
		return r >= c.Value
	case "<":
		return r < c.Value
	case ">":
		return r > c.Value
	default:
		return r == c.Value
	}
}
