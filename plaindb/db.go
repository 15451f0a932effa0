package plaindb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// MaxUpgradeAttempts stops version loops, i.e. upgrading to v3 but going v1 -> v2 -> v1 forever
const MaxUpgradeAttempts = 100

// Upgrader parses stored records and upgrades them to the bucket's current version
type Upgrader interface {
	// Parse decodes one stored record written at dataVersion
	Parse(dataVersion, id string, data json.RawMessage) (interface{}, error)
	// Upgrade moves data one or more versions forward. Called repeatedly until the target version is reached.
	Upgrade(dataVersion, id string, data interface{}) (newVersion string, newData interface{}, err error)
}

// DB hands out buckets of JSON records, one file per bucket
type DB interface {
	io.Closer
	// Bucket returns the bucket stored in 'name.json', upgraded to 'version'
	Bucket(name, version string, upgrader Upgrader) (Bucket, error)
}

type database struct {
	path    string
	mu      sync.Mutex
	buckets map[string]*bucket
}

// Open prepares a DB in the directory at path, creating it if necessary
func Open(path string) (DB, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(path, 0750); err != nil {
		return nil, errors.Wrap(err, "Failed to create data directory")
	}
	return &database{
		path:    path,
		buckets: make(map[string]*bucket),
	}, nil
}

func (db *database) Bucket(name, version string, upgrader Upgrader) (Bucket, error) {
	return db.bucket(name, version, upgrader, ioutil.ReadFile, saveBucket)
}

func (db *database) bucket(
	name, version string,
	upgrader Upgrader,
	readFile func(string) ([]byte, error),
	saveFn func(*bucket) error,
) (Bucket, error) {
	if upgrader == nil {
		return nil, errors.New("Upgrader must not be nil")
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	if b, exists := db.buckets[name]; exists {
		return b, nil
	}

	path := filepath.Join(db.path, name+".json")
	contents, err := readFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "Failed to read bucket %s", name)
		}
		contents = []byte(`{}`)
	}

	var stored unmarshalBucket
	if err := json.Unmarshal(contents, &stored); err != nil {
		return nil, errors.Wrapf(err, "Malformed bucket %s", name)
	}

	data := make(map[string]interface{}, len(stored.Data))
	for id, raw := range stored.Data {
		value, err := upgrader.Parse(stored.Version, id, raw)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to parse %s record %q", name, id)
		}
		value, err = upgrade(name, stored.Version, version, id, value, upgrader)
		if err != nil {
			return nil, err
		}
		data[id] = value
	}

	b := &bucket{
		name:    name,
		path:    path,
		saveFn:  saveFn,
		version: version,
		data:    data,
	}
	db.buckets[name] = b
	return b, nil
}

func upgrade(name, fromVersion, toVersion, id string, value interface{}, upgrader Upgrader) (interface{}, error) {
	currentVersion := fromVersion
	for attempts := 0; currentVersion != toVersion; attempts++ {
		if attempts >= MaxUpgradeAttempts {
			return nil, errors.Errorf("Too many upgrade attempts to version %q, possible upgrade loop. Current version: %q", toVersion, currentVersion)
		}
		newVersion, newValue, err := upgrader.Upgrade(currentVersion, id, value)
		if err != nil {
			return nil, err
		}
		if newVersion == currentVersion {
			return nil, errors.Errorf("Could not upgrade %q record %q from %q to %q", name, id, currentVersion, toVersion)
		}
		currentVersion, value = newVersion, newValue
	}
	return value, nil
}

// Close locks all buckets to prepare for shutdown. Buckets must not be used afterward.
func (db *database) Close() error {
	if db == nil {
		return nil
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, b := range db.buckets {
		b.mu.Lock()
	}
	return nil
}

// MockDB is a DB without a backing directory, for use in tests
type MockDB interface {
	DB
	// Dump renders b as it would be written to disk
	Dump(b Bucket) string
}

// MockConfig stubs out a MockDB's file access
type MockConfig struct {
	FileReader func(path string) ([]byte, error)
	Saver      func(Bucket) error
}

type mockDatabase struct {
	*database
	MockConfig
}

// NewMockDB creates a MockDB. Missing stubs behave like an empty data directory.
func NewMockDB(conf MockConfig) MockDB {
	if conf.FileReader == nil {
		conf.FileReader = func(string) ([]byte, error) { return nil, os.ErrNotExist }
	}
	if conf.Saver == nil {
		conf.Saver = func(Bucket) error { return nil }
	}
	return &mockDatabase{
		database: &database{
			path:    "mock",
			buckets: make(map[string]*bucket),
		},
		MockConfig: conf,
	}
}

func (db *mockDatabase) Bucket(name, version string, upgrader Upgrader) (Bucket, error) {
	return db.bucket(name, version, upgrader, db.FileReader, func(b *bucket) error { return db.Saver(b) })
}

func (db *mockDatabase) Dump(b Bucket) string {
	bucketStruct, ok := b.(*bucket)
	if !ok {
		panic(fmt.Sprintf("Invalid bucket for MockDB.Dump: %T", b))
	}
	var buf bytes.Buffer
	bucketStruct.mu.RLock()
	err := encodeBucket(&buf, bucketStruct)
	bucketStruct.mu.RUnlock()
	if err != nil {
		panic(err)
	}
	return buf.String()
}
