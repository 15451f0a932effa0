package provider

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	downloadSizeKey  = "Download Size"
	installedSizeKey = "Installed Size"
)

var (
	// ErrNoDetails is returned when a provider prints nothing recognizable for a package
	ErrNoDetails = errors.New("No package details found")

	sizeUnits = map[string]int64{
		"B":   1,
		"KiB": 1 << 10,
		"MiB": 1 << 20,
		"GiB": 1 << 30,
		"TiB": 1 << 40,
	}
	sizeUnitOrder = []string{"B", "KiB", "MiB", "GiB", "TiB"}
)

// Field is one "Key : Value" entry of a package's details
type Field struct {
	Key   string
	Value string
}

// Details describes a single package, fields kept in the order the provider printed them
type Details struct {
	Provider string
	Name     string
	Fields   []Field
}

// Get returns the value for key
func (d Details) Get(key string) (string, bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// DownloadSize returns the size in bytes of the package download. Not every provider reports it.
func (d Details) DownloadSize() (decimal.Decimal, bool, error) {
	return d.size(downloadSizeKey)
}

// InstalledSize returns the size in bytes of the installed package
func (d Details) InstalledSize() (decimal.Decimal, bool, error) {
	return d.size(installedSizeKey)
}

func (d Details) size(key string) (decimal.Decimal, bool, error) {
	value, found := d.Get(key)
	if !found {
		return decimal.Zero, false, nil
	}
	size, err := ParseSize(value)
	return size, true, errors.Wrapf(err, "Invalid %s for %s", key, d.Name)
}

// ParseSize parses sizes like "12.50 MiB" into a number of bytes
func ParseSize(s string) (decimal.Decimal, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return decimal.Zero, errors.Errorf("Malformed size: %q", s)
	}
	multiplier, ok := sizeUnits[parts[1]]
	if !ok {
		return decimal.Zero, errors.Errorf("Unknown size unit: %q", parts[1])
	}
	amount, err := decimal.NewFromString(parts[0])
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "Malformed size: %q", s)
	}
	return amount.Mul(decimal.New(multiplier, 0)), nil
}

// FormatSize renders a number of bytes using the largest unit keeping the amount at least 1
func FormatSize(bytes decimal.Decimal) string {
	unit := sizeUnitOrder[0]
	for _, u := range sizeUnitOrder[1:] {
		if bytes.Abs().Cmp(decimal.New(sizeUnits[u], 0)) < 0 {
			break
		}
		unit = u
	}
	return bytes.Div(decimal.New(sizeUnits[unit], 0)).StringFixed(2) + " " + unit
}
