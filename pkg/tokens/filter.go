package tokens

import (
	"sort"

	"github.com/kiliansala/kds-ai-tokens/pkg/variables"
)

// Skip reasons reported by the collection filters.
const (
	ReasonRemote  = "remote"
	ReasonHidden  = "hiddenFromPublishing"
	ReasonAllNull = "all values null"
)

// Skip records a collection left out of a tier and why.
type Skip struct {
	Collection string `json:"collection"`
	Reason     string `json:"reason"`
}

// Report lists the collections a filter removed, sorted by name.
type Report struct {
	Skipped []Skip `json:"skipped,omitempty"`
}

// Len returns the number of skipped collections.
func (r Report) Len() int { return len(r.Skipped) }

// Merge returns a report holding both r's and o's entries.
func (r Report) Merge(o Report) Report {
	out := Report{Skipped: append(append([]Skip(nil), r.Skipped...), o.Skipped...)}
	sortSkips(out.Skipped)
	return out
}

func sortSkips(s []Skip) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Collection != s[j].Collection {
			return s[i].Collection < s[j].Collection
		}
		return s[i].Reason < s[j].Reason
	})
}

// Collections maps collection id to collection.
type Collections map[string]*variables.Collection

// Sorted returns the collections ordered by name, then id.
func (c Collections) Sorted() []*variables.Collection {
	out := make([]*variables.Collection, 0, len(c))
	for _, col := range c {
		out = append(out, col)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// LocalOnly keeps the collections a file owns. Remote collections are
// library links and are reported, not returned. Returned collections are the
// snapshot's own pointers, untouched.
func LocalOnly(g *variables.Graph) (Collections, Report) {
	local := make(Collections, len(g.Collections))
	var report Report
	for id, col := range g.Collections {
		if col == nil {
			continue
		}
		if col.Remote {
			report.Skipped = append(report.Skipped, Skip{Collection: col.Name, Reason: ReasonRemote})
			continue
		}
		local[id] = col
	}
	sortSkips(report.Skipped)
	return local, report
}

// Publishable keeps the local collections worth emitting.
//
// Hidden collections are excluded. Extension collections are always kept:
// their own values are legitimately null. Any other collection needs at least
// one variable with a non-null value in one of its modes.
func Publishable(local Collections, vars map[string]*variables.Variable) (Collections, Report) {
	out := make(Collections, len(local))
	var report Report
	for id, col := range local {
		switch {
		case col.HiddenFromPublishing:
			report.Skipped = append(report.Skipped, Skip{Collection: col.Name, Reason: ReasonHidden})
		case col.IsExtension:
			out[id] = col
		case hasValue(col, vars):
			out[id] = col
		default:
			report.Skipped = append(report.Skipped, Skip{Collection: col.Name, Reason: ReasonAllNull})
		}
	}
	sortSkips(report.Skipped)
	return out, report
}

func hasValue(col *variables.Collection, vars map[string]*variables.Variable) bool {
	for _, vid := range col.VariableIDs {
		v := vars[vid]
		if v == nil {
			continue
		}
		for _, m := range col.Modes {
			if !v.ValuesByMode[m.ModeID].IsNull() {
				return true
			}
		}
	}
	return false
}
