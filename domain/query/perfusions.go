package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"smartsheetsvc/domain/records"

	"github.com/montanaflynn/stats"
)

// ErrNullSubject is wrapped by ConversionError for records without a
// subject id.
var ErrNullSubject = errors.New("subject id is null")

// ConversionError reports a subject id that cannot be read as an integer.
type ConversionError struct {
	Value any
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert subject id %v to an integer: %v", e.Value, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// SubjectKey renders a record's subject id as a base 10 integer, truncating
// any fractional part, so 689418.0 becomes "689418".
func SubjectKey(r records.PerfusionsModel) (string, error) {
	if d, ok := r.SubjectID.Get(); ok {
		return truncate(d)
	}

	raw, ok := r.SubjectID.Raw()
	if !ok {
		return "", &ConversionError{Err: ErrNullSubject}
	}
	switch v := raw.(type) {
	case json.Number:
		d, err := records.ParseDecimal(v.String())
		if err != nil {
			return "", &ConversionError{Value: raw, Err: err}
		}
		return truncate(d)
	case string:
		// Text is only accepted as a plain integer.
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return "", &ConversionError{Value: raw, Err: err}
		}
		return strconv.FormatInt(n, 10), nil
	}
	return "", &ConversionError{Value: raw, Err: fmt.Errorf("unsupported type %T", raw)}
}

func truncate(d records.Decimal) (string, error) {
	n, err := d.Truncate()
	if err != nil {
		return "", &ConversionError{Value: d, Err: err}
	}
	return strconv.FormatInt(n, 10), nil
}

// FilterPerfusions keeps records whose subject id, truncated to an integer,
// equals subjectID, or every record when subjectID is nil. When a filter is
// given, records whose subject id cannot be converted are excluded.
func FilterPerfusions(recs []records.PerfusionsModel, subjectID *string) []records.PerfusionsModel {
	out := make([]records.PerfusionsModel, 0, len(recs))
	for _, r := range recs {
		if subjectID == nil {
			out = append(out, r)
			continue
		}
		key, err := SubjectKey(r)
		if err == nil && key == *subjectID {
			out = append(out, r)
		}
	}
	return out
}

// WeightStats summarizes animal weights prior to perfusion, in grams.
type WeightStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// PerfusionSummary aggregates a set of perfusion records.
type PerfusionSummary struct {
	Records  int          `json:"records"`
	Subjects int          `json:"subjects"`
	Weight   *WeightStats `json:"animal_weight_prior_g"`
}

// SummarizePerfusions counts records and distinct subjects and computes
// weight statistics over records with a validated weight.
func SummarizePerfusions(recs []records.PerfusionsModel) (PerfusionSummary, error) {
	summary := PerfusionSummary{Records: len(recs)}

	subjects := make(map[string]struct{})
	var weights stats.Float64Data
	for _, r := range recs {
		if key, err := SubjectKey(r); err == nil {
			subjects[key] = struct{}{}
		}
		if w, ok := r.AnimalWeightPrior.Get(); ok {
			weights = append(weights, w.Float64())
		}
	}
	summary.Subjects = len(subjects)
	if len(weights) == 0 {
		return summary, nil
	}

	ws := &WeightStats{Count: weights.Len()}
	var err error
	if ws.Mean, err = weights.Mean(); err != nil {
		return summary, err
	}
	if ws.Median, err = weights.Median(); err != nil {
		return summary, err
	}
	if ws.Min, err = weights.Min(); err != nil {
		return summary, err
	}
	if ws.Max, err = weights.Max(); err != nil {
		return summary, err
	}
	if ws.StdDev, err = weights.StandardDeviation(); err != nil {
		return summary, err
	}
	summary.Weight = ws
	return summary, nil
}
