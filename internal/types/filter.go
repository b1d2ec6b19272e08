package types

import (
	"net/url"
	"strconv"
)

// Values translates the filter and page window into the backend's query
// parameter dialect. searchTerm becomes a name regex; range bounds become
// gte/lte constraints on the metrics sub-document. Zero page/limit are
// omitted so the server applies its defaults.
func (f *StartupFilter) Values(page, limit int) url.Values {
	v := url.Values{}
	if f != nil {
		if f.Category != "" {
			v.Set("category", f.Category)
		}
		if f.Country != "" {
			v.Set("country", f.Country)
		}
		if f.Stage != "" {
			v.Set("stage", f.Stage)
		}
		if f.SearchTerm != "" {
			v.Set("name[$regex]", f.SearchTerm)
		}
		if f.FundingRange != nil {
			setRange(v, "metrics.fundingTotal", f.FundingRange)
		}
		if f.EmployeeCount != nil {
			setRange(v, "metrics.employees", f.EmployeeCount)
		}
		if f.OwnerID != "" {
			v.Set("createdBy", f.OwnerID)
		}
	}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	return v
}

func setRange(v url.Values, field string, r *Range) {
	if r.Min != nil {
		v.Set(field+"[gte]", strconv.FormatFloat(*r.Min, 'f', -1, 64))
	}
	if r.Max != nil {
		v.Set(field+"[lte]", strconv.FormatFloat(*r.Max, 'f', -1, 64))
	}
}
