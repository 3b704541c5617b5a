package storage

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"svw.info/blockfall/internal/domain"
)

var (
	ErrNotFound        = fmt.Errorf("scenario not found: %w", os.ErrNotExist)
	ErrInvalidScenario = errors.New("invalid scenario")
)

//go:embed scenario.schema.json
var schemaJSON string

var scenarioSchema = jsonschema.MustCompileString("scenario.schema.json", schemaJSON)

// FS keeps one YAML file per scenario, grouped in a folder per board size:
// {dir}/{rows}x{columns}/{id}.yaml.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func (s *FS) pathFor(id string, d domain.Dimension) string {
	return filepath.Join(s.dir, d.String(), id+".yaml")
}

func checkID(id string) error {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return fmt.Errorf("%w: bad id %q", ErrInvalidScenario, id)
	}
	return nil
}

// validateDocument checks raw YAML against the scenario schema. The
// document goes through JSON so the validator sees JSON types.
func validateDocument(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := scenarioSchema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	return nil
}

// Save assigns a fresh ID and creation time when missing and writes the
// scenario.
func (s *FS) Save(ctx context.Context, sc *domain.Scenario) error {
	if sc == nil {
		return fmt.Errorf("%w: nil", ErrInvalidScenario)
	}
	if sc.ID == "" {
		sc.ID = uuid.NewString()
	}
	if err := checkID(sc.ID); err != nil {
		return err
	}
	if sc.CreatedAt == 0 {
		sc.CreatedAt = time.Now().UnixNano()
	}
	sc.Normalize()
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	if err := validateDocument(data); err != nil {
		return err
	}
	target := s.pathFor(sc.ID, sc.Dimension)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}

func (s *FS) find(id string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*", id+".yaml"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return matches[0], nil
}

func (s *FS) Load(ctx context.Context, id string) (*domain.Scenario, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	path, err := s.find(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := validateDocument(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var out domain.Scenario
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrInvalidScenario, err)
	}
	out.Normalize()
	return &out, nil
}

// List returns every readable scenario, oldest first. Unreadable files are
// skipped.
func (s *FS) List(ctx context.Context) ([]domain.ScenarioMeta, error) {
	type meta struct {
		ID        string           `yaml:"id"`
		Name      string           `yaml:"name"`
		Dimension domain.Dimension `yaml:"dimension"`
		CreatedAt int64            `yaml:"created_at"`
	}

	buckets, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.ScenarioMeta{}, nil
		}
		return nil, err
	}
	out := []domain.ScenarioMeta{}
	for _, b := range buckets {
		if !b.IsDir() {
			continue
		}
		ents, err := os.ReadDir(filepath.Join(s.dir, b.Name()))
		if err != nil {
			continue
		}
		for _, e := range ents {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, ".yaml") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(s.dir, b.Name(), name))
			if err != nil {
				continue
			}
			var m meta
			if err := yaml.Unmarshal(data, &m); err != nil || m.ID == "" {
				continue
			}
			out = append(out, domain.ScenarioMeta{
				ID:        m.ID,
				Name:      m.Name,
				Dimension: m.Dimension,
				CreatedAt: m.CreatedAt,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
