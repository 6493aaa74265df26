package core

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Query parameter bounds. Ids and years are stored as 32-bit integers.
const (
	MinCountryID = 0
	MinYear      = 1900
	MaxStoredInt = math.MaxInt32
)

// Filter is the validated form of a resource's query parameters.
// A nil Country or Year means the parameter was absent.
type Filter struct {
	Country *int64
	Year    *int
	OrderBy string
	Tags    []Tag
}

// ParseFilter validates the query parameters of a request for res.
//
// The country listing ignores country and year. Empty values count as
// absent. Tags default to the resource's own tag; any other label is kept
// as given.
func ParseFilter(res Resource, q url.Values) (Filter, error) {
	f := Filter{OrderBy: res.DefaultOrder()}

	if res.Kind == KindFact {
		if raw := strings.TrimSpace(q.Get("country")); raw != "" {
			id, err := parseBounded("country", raw, MinCountryID)
			if err != nil {
				return Filter{}, err
			}
			f.Country = &id
		}

		if raw := strings.TrimSpace(q.Get("year")); raw != "" {
			year, err := parseBounded("year", raw, MinYear)
			if err != nil {
				return Filter{}, err
			}
			y := int(year)
			f.Year = &y
		}
	}

	if raw := strings.TrimSpace(q.Get("order_by")); raw != "" {
		if _, ok := res.OrderColumn(raw); !ok {
			return Filter{}, &ValidationError{
				Field:   "order_by",
				Value:   raw,
				Reason:  ReasonNotAllowed,
				Message: "must be one of " + orderValues(res),
			}
		}
		f.OrderBy = raw
	}

	tags := parseTags(q["tags"])
	if len(tags) == 0 {
		tags = []Tag{res.Tag}
	}
	f.Tags = tags

	return f, nil
}

// ParseCountryID validates the path id of a single-country lookup.
func ParseCountryID(raw string) (int64, error) {
	return parseBounded("id", raw, MinCountryID)
}

func parseBounded(field, raw string, minimum int64) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ValidationError{
			Field:   field,
			Value:   raw,
			Reason:  ReasonNotInteger,
			Message: "must be an integer",
		}
	}
	if n < minimum {
		return 0, &ValidationError{
			Field:   field,
			Value:   raw,
			Reason:  ReasonBelowMinimum,
			Message: "must be greater than or equal to " + strconv.FormatInt(minimum, 10),
		}
	}
	if n > MaxStoredInt {
		return 0, &ValidationError{
			Field:   field,
			Value:   raw,
			Reason:  ReasonAboveMaximum,
			Message: "must be less than or equal to " + strconv.Itoa(MaxStoredInt),
		}
	}
	return n, nil
}

// parseTags splits repeated and comma separated labels. Known tags are
// matched case-insensitively; unknown labels pass through unchanged.
func parseTags(values []string) []Tag {
	var tags []Tag
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if tag, ok := lookupTag(part); ok {
				tags = append(tags, tag)
				continue
			}
			tags = append(tags, Tag(part))
		}
	}
	return tags
}

func lookupTag(s string) (Tag, bool) {
	for _, t := range Tags {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}

func orderValues(res Resource) string {
	values := make([]string, len(res.Order))
	for i, o := range res.Order {
		values[i] = o.Value
	}
	return strings.Join(values, ", ")
}
