package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/farhan/hrmtrack/internal/api/dto"
	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.NewError(message))
}

// parseDate accepts both date-only and RFC3339 timestamps, since the
// dashboard sends the former and the mobile client the latter. dateOnly
// reports which format matched.
func parseDate(value string) (t time.Time, dateOnly bool, err error) {
	if t, err = time.Parse("2006-01-02", value); err == nil {
		return t, true, nil
	}
	t, err = time.Parse(time.RFC3339, value)
	return t, false, err
}

// dateRange builds the [start, end] filter from startDate/endDate query
// params. A date-only endDate covers the whole day; an explicit timestamp is
// taken as given, even at midnight.
func dateRange(r *http.Request) (start, end *time.Time, err error) {
	if v := r.URL.Query().Get("startDate"); v != "" {
		t, _, perr := parseDate(v)
		if perr != nil {
			return nil, nil, perr
		}
		start = &t
	}
	if v := r.URL.Query().Get("endDate"); v != "" {
		t, dateOnly, perr := parseDate(v)
		if perr != nil {
			return nil, nil, perr
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		end = &t
	}
	return start, end, nil
}

func companyIDParam(r *http.Request) (*uuid.UUID, error) {
	v := r.URL.Query().Get("companyId")
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
