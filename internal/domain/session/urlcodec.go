package session

import (
	"net/url"
	"strconv"
	"strings"
)

// URL query parameter names. These round-trip through DecodeQuery/EncodeQuery
// so a shared link reproduces the same view.
const (
	ParamQuery      = "q"
	ParamCategories = "cats"
	ParamTags       = "tags"
	ParamLogic      = "logic"
	ParamMode       = "mode"
	ParamColumns    = "cols"
	ParamSort       = "dateSort"
)

// DecodeQuery overlays URL parameters onto the given base preferences. Absent
// parameters leave the base value untouched; the result is not normalized, so
// callers restoring state should Normalize afterwards.
func DecodeQuery(values url.Values, base Preferences) Preferences {
	p := base
	if v := values.Get(ParamQuery); v != "" {
		p.Query = v
	}
	if v := values.Get(ParamCategories); v != "" {
		p.Categories = splitList(v)
	}
	if v := values.Get(ParamTags); v != "" {
		p.Tags = splitList(v)
	}
	if v := values.Get(ParamLogic); v != "" {
		p.Logic = Logic(v)
	}
	if v := values.Get(ParamMode); v != "" {
		p.Mode = ViewMode(v)
	}
	if v := values.Get(ParamSort); v != "" {
		p.Sort = SortDirection(v)
	}
	if v := values.Get(ParamColumns); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Columns = n
		}
	}
	return p
}

// EncodeQuery serializes preferences into URL parameters. Empty values are
// omitted entirely rather than serialized as empty strings.
func EncodeQuery(p Preferences) url.Values {
	values := url.Values{}
	setNonEmpty(values, ParamQuery, p.Query)
	setNonEmpty(values, ParamCategories, strings.Join(p.Categories, ","))
	setNonEmpty(values, ParamTags, strings.Join(p.Tags, ","))
	setNonEmpty(values, ParamLogic, string(p.Logic))
	setNonEmpty(values, ParamMode, string(p.Mode))
	setNonEmpty(values, ParamSort, string(p.Sort))
	if p.Columns > 0 {
		values.Set(ParamColumns, strconv.Itoa(p.Columns))
	}
	return values
}

func setNonEmpty(values url.Values, key, v string) {
	if v != "" {
		values.Set(key, v)
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
