package mathutil

import (
	"encoding/json"
	"math"
)

// Optional is a numeric result that may be unavailable, such as the payoff
// time of a loan whose payment never covers its interest. The zero value is
// unavailable.
type Optional struct {
	Value float64
	Valid bool
}

// Some wraps a finite value. Non-finite values are reported as unavailable.
func Some(val float64) Optional {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return Optional{}
	}
	return Optional{Value: val, Valid: true}
}

// Unavailable returns an Optional without a value.
func Unavailable() Optional {
	return Optional{}
}

// OrElse returns the value if present and fallback otherwise.
func (o Optional) OrElse(fallback float64) float64 {
	if !o.Valid {
		return fallback
	}
	return o.Value
}

// MarshalJSON encodes an unavailable value as null.
func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON decodes null as unavailable.
func (o *Optional) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Optional{}
		return nil
	}
	var val float64
	if err := json.Unmarshal(data, &val); err != nil {
		return err
	}
	*o = Some(val)
	return nil
}
