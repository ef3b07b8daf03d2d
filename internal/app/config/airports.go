package config

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/jszwec/csvutil"
)

type airportRecord struct {
	Code string `csv:"code"`
	Name string `csv:"name"`
}

// LoadAirportNames reads the airport reference dataset used to label
// departure and arrival points in canonical offers. A missing path is
// not an error; offers then fall back to bare airport codes.
func LoadAirportNames(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open airport dataset: %w", err)
	}
	defer file.Close()

	return parseAirportNames(file)
}

func parseAirportNames(reader io.Reader) (map[string]string, error) {
	decoder, err := csvutil.NewDecoder(csv.NewReader(reader))
	if err != nil {
		return nil, fmt.Errorf("failed to create airport CSV decoder: %w", err)
	}

	var records []airportRecord
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode airport dataset: %w", err)
	}

	names := make(map[string]string, len(records))
	for _, record := range records {
		if record.Code == "" {
			continue
		}

		names[record.Code] = record.Name
	}

	return names, nil
}
