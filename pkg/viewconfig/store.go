package viewconfig

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/notecal/notecal/internal/event_bus"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var ErrViewNotFound = errors.New("view not found")

// View is one configured calendar view.
type View struct {
	ID     string        `yaml:"id" json:"id"`
	Name   string        `yaml:"name" json:"name"`
	Type   ViewType      `yaml:"type" json:"type"`
	Config DisplayConfig `yaml:"config" json:"config"`
}

// Store keeps view definitions in a YAML file and publishes a
// ViewConfigChanged event after every configuration write.
type Store struct {
	path string
	bus  *event_bus.EventBus

	mu    sync.Mutex
	views map[string]View
}

func NewStore(path string, bus *event_bus.EventBus) (*Store, error) {
	s := &Store{
		path:  path,
		bus:   bus,
		views: make(map[string]View),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Infof("View store not found at %s, starting empty", s.path)
			return nil
		}
		return fmt.Errorf("failed to read view store: %w", err)
	}
	var stored struct {
		Views []View `yaml:"views"`
	}
	if err := yaml.Unmarshal(content, &stored); err != nil {
		return fmt.Errorf("failed to parse view store: %w", err)
	}
	for _, v := range stored.Views {
		s.views[v.ID] = v
	}
	log.Infof("Loaded %d view(s) from %s", len(s.views), s.path)
	return nil
}

// persist writes all views back to the store file. Caller holds s.mu.
func (s *Store) persist() error {
	views := make([]View, 0, len(s.views))
	for _, v := range s.views {
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })

	encoded, err := yaml.Marshal(struct {
		Views []View `yaml:"views"`
	}{Views: views})
	if err != nil {
		return fmt.Errorf("failed to encode view store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create view store directory: %w", err)
	}
	if err := os.WriteFile(s.path, encoded, 0o644); err != nil {
		return fmt.Errorf("failed to write view store: %w", err)
	}
	return nil
}

// List returns all views sorted by name.
func (s *Store) List() []View {
	s.mu.Lock()
	defer s.mu.Unlock()
	views := make([]View, 0, len(s.views))
	for _, v := range s.views {
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Name < views[j].Name })
	return views
}

// Get returns the view with the given id.
func (s *Store) Get(viewID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.views[viewID]
	if !ok {
		return View{}, ErrViewNotFound
	}
	return v, nil
}

// Create registers a new view with default configuration.
func (s *Store) Create(name string, viewType ViewType) (View, error) {
	if viewType != ViewTypeMonth && viewType != ViewTypeYear {
		return View{}, fmt.Errorf("unknown view type %q", viewType)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		ID:     uuid.NewString(),
		Name:   name,
		Type:   viewType,
		Config: DefaultConfig(),
	}
	s.views[v.ID] = v
	if err := s.persist(); err != nil {
		delete(s.views, v.ID)
		return View{}, err
	}
	return v, nil
}

// UpdateConfig normalizes raw option values and stores them as the view's
// configuration, then publishes ViewConfigChanged.
func (s *Store) UpdateConfig(ctx context.Context, viewID string, raw map[string]any) (View, error) {
	s.mu.Lock()
	v, ok := s.views[viewID]
	if !ok {
		s.mu.Unlock()
		return View{}, ErrViewNotFound
	}
	previous := v.Config
	v.Config = Normalize(raw)
	s.views[viewID] = v
	if err := s.persist(); err != nil {
		v.Config = previous
		s.views[viewID] = v
		s.mu.Unlock()
		return View{}, err
	}
	s.mu.Unlock()

	if s.bus != nil {
		err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.ViewConfigChanged,
			event_bus.ViewConfigChangedData{ViewID: viewID}))
		if err != nil {
			log.Errorf("failed to publish config change for view %s: %v", viewID, err)
		}
	}
	return v, nil
}

// DateProperties implements schedule.DateProperties.
func (s *Store) DateProperties(viewID string) (string, string, error) {
	v, err := s.Get(viewID)
	if err != nil {
		return "", "", err
	}
	return v.Config.StartDateProperty, v.Config.EndDateProperty, nil
}
