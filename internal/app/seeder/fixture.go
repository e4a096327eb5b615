package seeder

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/refbook-backend/internal/domain"
)

// Column limits of the refbook schema, in characters.
const (
	maxRefbookCodeLen = 100
	maxRefbookNameLen = 300
	maxVersionLen     = 50
	maxElementCodeLen = 100
	maxElementValLen  = 300
)

// Fixture is the root of a seed file.
type Fixture struct {
	Refbooks []RefbookFixture `yaml:"refbooks"`
}

// RefbookFixture describes one refbook and all of its versions.
type RefbookFixture struct {
	Code        string           `yaml:"code"`
	Name        string           `yaml:"name"`
	Description *string          `yaml:"description"`
	Versions    []VersionFixture `yaml:"versions"`
}

// VersionFixture describes one version. StartDate stays a string so that
// quoted and unquoted YAML dates are validated the same way.
type VersionFixture struct {
	Version   string           `yaml:"version"`
	StartDate string           `yaml:"start_date"`
	Elements  []ElementFixture `yaml:"elements"`
}

// ElementFixture is one code/value pair.
type ElementFixture struct {
	Code  string `yaml:"code"`
	Value string `yaml:"value"`
}

// LoadFixture reads and validates a seed file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	return ParseFixture(bytes.NewReader(data))
}

// ParseFixture decodes a seed document and validates it. Unknown keys are
// rejected so that typos do not silently drop data.
func ParseFixture(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.NewValidationError("refbooks", "fixture is empty")
		}
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks every refbook, version and element and collects all errors.
func (f *Fixture) Validate() error {
	var errs []domain.FieldError
	add := func(field, msg string) {
		errs = append(errs, domain.FieldError{Field: field, Message: msg})
	}

	if len(f.Refbooks) == 0 {
		add("refbooks", "at least one refbook is required")
	}

	codes := make(map[string]int, len(f.Refbooks))
	for i, rb := range f.Refbooks {
		p := fmt.Sprintf("refbooks[%d]", i)

		checkText(add, p+".code", rb.Code, maxRefbookCodeLen)
		checkText(add, p+".name", rb.Name, maxRefbookNameLen)
		if prev, dup := codes[rb.Code]; dup && rb.Code != "" {
			add(p+".code", fmt.Sprintf("duplicates refbooks[%d]", prev))
		} else {
			codes[rb.Code] = i
		}

		versions := make(map[string]int, len(rb.Versions))
		for j, v := range rb.Versions {
			vp := fmt.Sprintf("%s.versions[%d]", p, j)

			checkText(add, vp+".version", v.Version, maxVersionLen)
			if _, err := domain.ParseDate(strings.TrimSpace(v.StartDate)); err != nil {
				add(vp+".start_date", fmt.Sprintf("expected YYYY-MM-DD, got %q", v.StartDate))
			}
			key := v.Version + "@" + strings.TrimSpace(v.StartDate)
			if prev, dup := versions[key]; dup {
				add(vp, fmt.Sprintf("duplicates %s.versions[%d]", p, prev))
			} else {
				versions[key] = j
			}

			elements := make(map[string]int, len(v.Elements))
			for k, e := range v.Elements {
				ep := fmt.Sprintf("%s.elements[%d]", vp, k)

				checkText(add, ep+".code", e.Code, maxElementCodeLen)
				checkText(add, ep+".value", e.Value, maxElementValLen)
				if prev, dup := elements[e.Code]; dup && e.Code != "" {
					add(ep+".code", fmt.Sprintf("duplicates %s.elements[%d]", vp, prev))
				} else {
					elements[e.Code] = k
				}
			}
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func checkText(add func(field, msg string), field, value string, limit int) {
	switch {
	case strings.TrimSpace(value) == "":
		add(field, "required")
	case utf8.RuneCountInString(value) > limit:
		add(field, fmt.Sprintf("max %d characters", limit))
	}
}

// startDate returns the parsed start date. Only valid after Validate.
func (v VersionFixture) startDate() time.Time {
	d, _ := domain.ParseDate(strings.TrimSpace(v.StartDate))
	return d
}

// Counts returns the number of refbooks, versions and elements in f.
func (f *Fixture) Counts() (refbooks, versions, elements int) {
	refbooks = len(f.Refbooks)
	for _, rb := range f.Refbooks {
		versions += len(rb.Versions)
		for _, v := range rb.Versions {
			elements += len(v.Elements)
		}
	}
	return refbooks, versions, elements
}
