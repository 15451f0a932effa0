package selection

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/pie-314/trx/plaindb"
	"github.com/pie-314/trx/provider"
	"github.com/pkg/errors"
)

const (
	bucketName = "selection"
	version    = "1"
)

// Store is the persisted set of packages marked for installation, keyed by provider and full name
type Store struct {
	mu     sync.Mutex
	bucket plaindb.Bucket
}

// New opens the selection stored in db
func New(db plaindb.DB) (*Store, error) {
	bucket, err := db.Bucket(bucketName, version, &upgrader{})
	if err != nil {
		return nil, err
	}
	return &Store{bucket: bucket}, nil
}

// Toggle selects pkg if it is not selected, otherwise deselects it. Returns whether pkg is now selected.
func (s *Store) Toggle(pkg provider.Package) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var existing provider.Package
	found, err := s.bucket.Get(pkg.Key(), &existing)
	if err != nil {
		return false, err
	}
	if found {
		return false, s.bucket.Delete(pkg.Key())
	}
	return true, s.bucket.Put(pkg.Key(), pkg)
}

// Selected reports whether pkg is selected
func (s *Store) Selected(pkg provider.Package) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var existing provider.Package
	found, err := s.bucket.Get(pkg.Key(), &existing)
	return found && err == nil
}

// List returns the selected packages sorted by provider, then name
func (s *Store) List() ([]provider.Package, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var packages []provider.Package
	var pkg provider.Package
	err := s.bucket.Iter(&pkg, func(string) bool {
		packages = append(packages, pkg)
		return true
	})
	sort.SliceStable(packages, func(a, b int) bool {
		if packages[a].Provider != packages[b].Provider {
			return packages[a].Provider < packages[b].Provider
		}
		return packages[a].Name < packages[b].Name
	})
	return packages, err
}

// Len returns the number of selected packages
func (s *Store) Len() int {
	packages, _ := s.List()
	return len(packages)
}

// Clear deselects everything
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bucket.Clear()
}

type upgrader struct{}

func (u *upgrader) Parse(dataVersion, id string, data json.RawMessage) (interface{}, error) {
	var pkg provider.Package
	err := json.Unmarshal(data, &pkg)
	return pkg, err
}

func (u *upgrader) Upgrade(dataVersion, id string, data interface{}) (string, interface{}, error) {
	if dataVersion == "" {
		// an empty or new bucket has no version yet
		return version, data, nil
	}
	return "", nil, errors.Errorf("Unsupported selection version: %q", dataVersion)
}
