package bloodpressure

import (
	"fmt"
)

// Category is the blood pressure category assigned to a valid reading.
// The zero value is not a valid category and is returned alongside errors.
type Category int

// Possible category values, in chart order.
const (
	Low Category = iota + 1
	Ideal
	PreHigh
	High
)

// Categories returns every category in chart order.
func Categories() []Category {
	return []Category{Low, Ideal, PreHigh, High}
}

// String returns the stable machine name of the category, used in JSON
// payloads and telemetry records.
func (c Category) String() string {
	switch c {
	case Low:
		return "low"
	case Ideal:
		return "ideal"
	case PreHigh:
		return "pre_high"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

// Valid reports whether c is one of the four defined categories.
func (c Category) Valid() bool {
	return c >= Low && c <= High
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("cannot marshal category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory returns the category with the given machine name.
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories() {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown blood pressure category %q", name)
}
