package types

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a day-granular timestamp that accepts both plain dates
// ("2024-03-20") and RFC 3339 timestamps in JSON, and always renders as a
// plain date.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)

	if value == "" || value == "null" {
		return nil
	}

	if t, err := time.Parse(dateLayout, value); err == nil {
		d.Time = t
		return nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", value)
	}

	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(dateLayout) + `"`), nil
}
