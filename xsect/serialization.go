package xsect

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

// WriteSectionResult encodes a section as JSON.
func WriteSectionResult(w io.Writer, s *SectionResult) error {
	return errors.Wrap(json.NewEncoder(w).Encode(s), "write section result")
}

// ReadSectionResult decodes the output of WriteSectionResult and checks that
// every edge refers to an existing vertex.
func ReadSectionResult(r io.Reader) (*SectionResult, error) {
	var res SectionResult
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, errors.Wrap(err, "read section result")
	}
	if err := res.validate(); err != nil {
		return nil, errors.Wrap(err, "read section result")
	}
	return &res, nil
}

// WriteStation encodes a station as JSON.
func WriteStation(w io.Writer, s *Station) error {
	return errors.Wrap(json.NewEncoder(w).Encode(s), "write station")
}

// ReadStation decodes the output of WriteStation.
func ReadStation(r io.Reader) (*Station, error) {
	var res Station
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, errors.Wrap(err, "read station")
	}
	return &res, nil
}

// Load opens a file and decodes it with f.
func Load[T any](path string, f func(r io.Reader) (T, error)) (T, error) {
	file, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer file.Close()
	return f(file)
}

// Save creates a file and encodes obj into it with f.
func Save[T any](path string, obj T, f func(w io.Writer, obj T) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f(file, obj); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
