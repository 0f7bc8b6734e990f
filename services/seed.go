package services

import (
	"errors"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadTestDefinition reads a YAML test definition shaped like the POST /tests body.
func LoadTestDefinition(path string) (*CreateTestRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open test definition: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var req CreateTestRequest
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to parse test definition %s: %w", path, err)
	}
	return &req, nil
}

// Seed creates the tests defined in the given files. Tests whose type already exists are skipped.
func (s *TestService) Seed(paths []string) (int, error) {
	created := 0
	for _, path := range paths {
		req, err := LoadTestDefinition(path)
		if err != nil {
			return created, err
		}

		if _, err := s.CreateTest(req); err != nil {
			if errors.Is(err, ErrTestTypeExists) {
				log.Printf("Seed: test %s already exists, skipping %s", req.TestType, path)
				continue
			}
			return created, fmt.Errorf("seed %s: %w", path, err)
		}
		created++
	}
	return created, nil
}
