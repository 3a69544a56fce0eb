package billing

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Amount is a lenient monetary input. It accepts JSON numbers and numeric
// strings; anything else, negatives included, decodes to zero.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = 0
			return nil
		}
		*a = ParseAmount(s)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*a = 0
		return nil
	}
	*a = Amount(Sanitize(f))
	return nil
}

func (a Amount) Float() float64 {
	return float64(a)
}

// ParseAmount reads a decimal string such as "1,250.50" and sanitizes it.
func ParseAmount(s string) Amount {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return Amount(Sanitize(f))
}
