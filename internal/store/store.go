package store

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/graycode/internal/gray"
	"github.com/san-kum/graycode/internal/report"
)

const (
	metadataFile = "metadata.json"
	reportFile   = "report.txt"
	stepsFile    = "steps.csv"
)

var ErrNotFound = errors.New("store: conversion not found")

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Metadata struct {
	ID        string    `json:"id"`
	Mode      gray.Mode `json:"mode"`
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	Bits      int       `json:"bits"`
	Timestamp time.Time `json:"timestamp"`
}

// Save writes a conversion under <base>/conversion_<unixnano>/ and returns
// its id.
func (s *Store) Save(mode gray.Mode, input string, res gray.Result) (string, error) {
	ts := s.now()
	id := fmt.Sprintf("conversion_%d", ts.UnixNano())
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := Metadata{
		ID:        id,
		Mode:      mode,
		Input:     input,
		Output:    res.Result,
		Bits:      len(input),
		Timestamp: ts,
	}
	if err := writeFile(filepath.Join(dir, metadataFile), func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(dir, reportFile), func(f *os.File) error {
		return report.Text(f, mode, input, res)
	}); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(dir, stepsFile), func(f *os.File) error {
		return report.CSV(f, res)
	}); err != nil {
		return "", err
	}

	return id, nil
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns saved conversions oldest first. A missing base directory is
// treated as empty.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	runs := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	data, err := s.read(id, metadataFile)
	if err != nil {
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", id, err)
	}
	return &meta, nil
}

func (s *Store) LoadReport(id string) (string, error) {
	data, err := s.read(id, reportFile)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Store) LoadSteps(id string) ([]gray.Step, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	file, err := os.Open(filepath.Join(s.baseDir, id, stepsFile))
	if err != nil {
		return nil, notFound(id, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []gray.Step{}, nil
	}

	steps := make([]gray.Step, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != 3 {
			continue
		}
		idx, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}
		steps = append(steps, gray.Step{Index: idx, Description: rec[1], Cumulative: rec[2]})
	}
	return steps, nil
}

func (s *Store) read(id, name string) ([]byte, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, name))
	if err != nil {
		return nil, notFound(id, err)
	}
	return data, nil
}

// validID accepts only a single path element inside the base directory.
func validID(id string) bool {
	return id != "" && id != "." && id != ".." && filepath.Base(id) == id
}

func notFound(id string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}
