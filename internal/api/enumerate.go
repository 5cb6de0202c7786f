// SPDX-License-Identifier: MIT

package api

import (
	"fmt"
	"iter"
	"net/http"
	"slices"
	"strconv"

	"github.com/padslib/pads/internal/log"
	"github.com/padslib/pads/internal/metrics"
	"github.com/padslib/pads/internal/permutation"
	"github.com/padslib/pads/internal/telemetry"
)

// family identifies one enumeration family.
type family struct {
	name string
	// maxN keeps page totals within int64 and single pages within reason.
	maxN int
	// sequence yields the permutations of the family for a given n.
	sequence func(n int) iter.Seq[[]int]
	// total returns the family size, or false when no closed form is used.
	total func(n int) (int64, bool)
}

var (
	familyPlain = family{
		name: "plain",
		maxN: 12,
		sequence: func(n int) iter.Seq[[]int] {
			return permutation.Range(n)
		},
		total: func(n int) (int64, bool) {
			t, err := permutation.Factorial(n)
			return t, err == nil
		},
	}

	familyDouble = family{
		name:     "double",
		maxN:     10,
		sequence: permutation.DoubleSequence,
		total:    func(int) (int64, bool) { return 0, false },
	}

	familyStirling = family{
		name:     "stirling",
		maxN:     10,
		sequence: permutation.StirlingSequence,
		total: func(n int) (int64, bool) {
			t, err := permutation.DoubleFactorialOdd(n)
			return t, err == nil
		},
	}

	familyInvolution = family{
		name:     "involution",
		maxN:     14,
		sequence: permutation.Involutions,
		total: func(n int) (int64, bool) {
			t, err := permutation.Telephone(n)
			return t, err == nil
		},
	}
)

type enumerationPage struct {
	Family     string  `json:"family"`
	N          int     `json:"n"`
	Offset     int     `json:"offset"`
	Count      int     `json:"count"`
	Total      *int64  `json:"total,omitempty"`
	NextOffset *int    `json:"nextOffset,omitempty"`
	Items      [][]int `json:"items"`
}

const defaultPageLimit = 50

// handleEnumerate serves one page of a permutation family. Pages are
// addressed by offset into the family's canonical generation order.
func (s *Server) handleEnumerate(f family) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := queryInt(r, "n", -1)
		if err != nil || n < 0 {
			writeErrorMsg(w, http.StatusBadRequest, "query parameter n is required and must be a non-negative integer")
			return
		}
		if n > f.maxN {
			writeErrorMsg(w, http.StatusBadRequest,
				fmt.Sprintf("n exceeds the maximum of %d for the %s family", f.maxN, f.name))
			return
		}

		offset, err := queryInt(r, "offset", 0)
		if err != nil || offset < 0 {
			writeErrorMsg(w, http.StatusBadRequest, "offset must be a non-negative integer")
			return
		}
		limit, err := queryInt(r, "limit", defaultPageLimit)
		if err != nil || limit < 1 {
			writeErrorMsg(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if offset+limit > s.cfg.MaxWindow {
			writeErrorMsg(w, http.StatusBadRequest,
				fmt.Sprintf("offset+limit exceeds the window cap of %d", s.cfg.MaxWindow))
			return
		}

		_, span := telemetry.Tracer("pads.api").Start(r.Context(), "api.enumerate")
		span.SetAttributes(telemetry.EnumerationAttributes(f.name, n, offset)...)
		defer span.End()

		items, hasMore := collectPage(f.sequence(n), offset, limit)

		page := enumerationPage{
			Family: f.name,
			N:      n,
			Offset: offset,
			Count:  len(items),
			Items:  items,
		}
		if t, ok := f.total(n); ok {
			page.Total = &t
		}
		if hasMore {
			next := offset + len(items)
			page.NextOffset = &next
		}

		metrics.RecordEnumerationPage(f.name, len(items))
		logger := log.WithComponentFromContext(r.Context(), "api")
		logger.Debug().
			Str("event", "api.enumeration_page").
			Str(log.FieldFamily, f.name).
			Int("n", n).
			Int("offset", offset).
			Int("items", len(items)).
			Msg("enumeration page served")
		writeJSON(w, http.StatusOK, page)
	}
}

// collectPage materializes the half-open window [offset, offset+limit) of
// seq. The yielded slices share a buffer, so taken items are cloned.
func collectPage(seq iter.Seq[[]int], offset, limit int) (items [][]int, hasMore bool) {
	items = make([][]int, 0, limit)
	i := 0
	for perm := range seq {
		if i >= offset+limit {
			hasMore = true
			break
		}
		if i >= offset {
			items = append(items, slices.Clone(perm))
		}
		i++
	}
	return items, hasMore
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
