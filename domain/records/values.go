package records

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// Decimal is an exact decimal value. It keeps the exponent it was parsed
// with, so "22.0" is served back as "22.0".
type Decimal struct {
	text string
}

// ParseDecimal parses a finite decimal number.
func ParseDecimal(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	var d apd.Decimal
	if _, _, err := d.SetString(s); err != nil || d.Form != apd.Finite {
		return Decimal{}, fmt.Errorf("input should be a valid decimal, got %q", s)
	}
	return Decimal{text: d.String()}, nil
}

// MustDecimal is ParseDecimal for literals known to be valid.
func MustDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Decimal) String() string {
	if d.text == "" {
		return "0"
	}
	return d.text
}

func (d Decimal) value() *apd.Decimal {
	v, _, err := apd.NewFromString(d.String())
	if err != nil {
		return apd.New(0, 0)
	}
	return v
}

// Float64 returns the nearest float64.
func (d Decimal) Float64() float64 {
	f, _ := d.value().Float64()
	return f
}

// Truncate drops the fractional part, rounding toward zero.
func (d Decimal) Truncate() (int64, error) {
	var integ, frac apd.Decimal
	d.value().Modf(&integ, &frac)
	n, err := integ.Int64()
	if err != nil {
		return 0, fmt.Errorf("decimal %s overflows int64", d)
	}
	return n, nil
}

// MarshalJSON writes the decimal as a JSON string.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Date is a calendar date with no time of day.
type Date struct {
	time.Time
}

// NewDate returns the date for the given day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD or an ISO-8601 date-time at exactly midnight.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return Date{t}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05"} {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
			return Date{}, fmt.Errorf("datetimes provided to dates should have zero time, got %q", s)
		}
		return NewDate(t.Year(), t.Month(), t.Day()), nil
	}
	return Date{}, fmt.Errorf("input should be a valid date, got %q", s)
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

// MarshalJSON writes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func coerceString(raw any) (string, error) {
	if s, ok := raw.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("input should be a valid string, got %T", raw)
}

func coerceDecimal(raw any) (Decimal, error) {
	switch v := raw.(type) {
	case json.Number:
		return ParseDecimal(v.String())
	case string:
		return ParseDecimal(v)
	case float64:
		return ParseDecimal(strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		return ParseDecimal(strconv.Itoa(v))
	case int64:
		return ParseDecimal(strconv.FormatInt(v, 10))
	}
	return Decimal{}, fmt.Errorf("decimal input should be an integer, float, string or Decimal object, got %T", raw)
}

func coerceBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case json.Number:
		switch f, err := v.Float64(); {
		case err == nil && f == 0:
			return false, nil
		case err == nil && f == 1:
			return true, nil
		}
	case float64:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "on", "t", "true", "y", "yes":
			return true, nil
		case "0", "off", "f", "false", "n", "no":
			return false, nil
		}
	}
	return false, fmt.Errorf("input should be a valid boolean, got %v", raw)
}

func coerceDate(raw any) (Date, error) {
	switch v := raw.(type) {
	case string:
		return ParseDate(v)
	case Date:
		return v, nil
	}
	return Date{}, fmt.Errorf("input should be a valid date, got %T", raw)
}
