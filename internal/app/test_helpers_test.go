package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/gelo7212/express-ts-backend-generator/internal/adapters/filesystem"
	"github.com/gelo7212/express-ts-backend-generator/internal/core/generation"
	"github.com/gelo7212/express-ts-backend-generator/internal/ports/secondary"
	"github.com/gelo7212/express-ts-backend-generator/internal/templates"
)

// Ensure mocks implement their interfaces
var (
	_ secondary.GenerationRunRepository = (*mockRunRepository)(nil)
	_ secondary.FileRepository          = (*mockFileRepository)(nil)
)

// mockRunRepository implements secondary.GenerationRunRepository for testing.
type mockRunRepository struct {
	runs      map[string]*secondary.GenerationRunRecord
	order     []string
	createErr error
	listErr   error
	deleteErr error
}

func newMockRunRepository() *mockRunRepository {
	return &mockRunRepository{runs: make(map[string]*secondary.GenerationRunRecord)}
}

func (m *mockRunRepository) Create(ctx context.Context, run *secondary.GenerationRunRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.runs[run.ID] = run
	m.order = append(m.order, run.ID)
	return nil
}

func (m *mockRunRepository) GetByID(ctx context.Context, id string) (*secondary.GenerationRunRecord, error) {
	if run, ok := m.runs[id]; ok {
		return run, nil
	}
	return nil, errors.New("generation run " + id + " not found")
}

func (m *mockRunRepository) List(ctx context.Context, filters secondary.GenerationRunFilters) ([]*secondary.GenerationRunRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*secondary.GenerationRunRecord
	for i := len(m.order) - 1; i >= 0; i-- {
		run := m.runs[m.order[i]]
		if filters.Generator != "" && run.Generator != filters.Generator {
			continue
		}
		if filters.FailedOnly && run.Success {
			continue
		}
		out = append(out, run)
	}
	return out, nil
}

func (m *mockRunRepository) DeleteAll(ctx context.Context) (int, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	n := len(m.runs)
	m.runs = make(map[string]*secondary.GenerationRunRecord)
	m.order = nil
	return n, nil
}

// mockFileRepository wraps a real file repository and fails writes or existence
// checks on chosen paths.
type mockFileRepository struct {
	secondary.FileRepository
	failWrites map[string]bool // slash-separated path suffixes
	failExists map[string]bool
}

func (m *mockFileRepository) Exists(ctx context.Context, path string) (bool, error) {
	for suffix := range m.failExists {
		if strings.HasSuffix(filepath.ToSlash(path), suffix) {
			return false, errors.New("permission denied")
		}
	}
	return m.FileRepository.Exists(ctx, path)
}

func (m *mockFileRepository) WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	for suffix := range m.failWrites {
		if strings.HasSuffix(filepath.ToSlash(path), suffix) {
			return errors.New("disk full")
		}
	}
	return m.FileRepository.WriteFile(ctx, path, data, perm)
}

// testEnv is a generation service over an in-memory filesystem with the embedded templates.
type testEnv struct {
	fs      afero.Fs
	files   *mockFileRepository
	runRepo *mockRunRepository
	svc     *GenerationServiceImpl
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	raw, err := templates.Generators()
	if err != nil {
		t.Fatalf("Generators() error = %v", err)
	}
	configs, err := generation.ParseConfigs(raw)
	if err != nil {
		t.Fatalf("ParseConfigs() error = %v", err)
	}
	source, err := templates.Source(nil, "")
	if err != nil {
		t.Fatalf("Source() error = %v", err)
	}

	fs := afero.NewMemMapFs()
	files := &mockFileRepository{
		FileRepository: filesystem.NewProjectFS(fs),
		failWrites:     make(map[string]bool),
		failExists:     make(map[string]bool),
	}
	runRepo := newMockRunRepository()
	logger := log.New(io.Discard)
	executor := NewEffectExecutor(files, runRepo, logger)

	return &testEnv{
		fs:      fs,
		files:   files,
		runRepo: runRepo,
		svc:     NewGenerationService(configs, files, templates.NewRenderer(source), executor, logger),
	}
}

func (e *testEnv) read(t *testing.T, path string) string {
	t.Helper()
	data, err := afero.ReadFile(e.fs, path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// snapshot returns every file under root with its content.
func (e *testEnv) snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := afero.Walk(e.fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		data, err := afero.ReadFile(e.fs, p)
		if err != nil {
			return err
		}
		out[p] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk %s: %v", root, err)
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
