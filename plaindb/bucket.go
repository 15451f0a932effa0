package plaindb

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Bucket reads and writes records on a DB. Every write is saved immediately.
type Bucket interface {
	// Iter assigns each record to v in ID order, then calls fn with its ID. Stops when fn returns false.
	Iter(v interface{}, fn func(id string) (keepGoing bool)) error
	// Get reads the record with key 'id' into 'v'
	Get(id string, v interface{}) (found bool, err error)
	// Put writes the record 'v' with key 'id'
	Put(id string, v interface{}) error
	// Delete removes the record with key 'id', if present
	Delete(id string) error
	// Clear removes every record
	Clear() error
}

type bucket struct {
	name   string
	path   string
	mu     sync.RWMutex
	saveFn func(*bucket) error

	version string
	data    map[string]interface{}
}

type unmarshalBucket struct {
	Version string
	Data    map[string]json.RawMessage
}

type marshalBucket struct {
	Version string
	Data    map[string]interface{}
}

func (b *bucket) Iter(v interface{}, fn func(id string) (keepGoing bool)) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ids := make([]string, 0, len(b.data))
	for id := range b.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := assign(v, b.data[id]); err != nil {
			return b.wrapErr(err)
		}
		if !fn(id) {
			return nil
		}
	}
	return nil
}

func (b *bucket) Get(id string, v interface{}) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	value, found := b.data[id]
	if !found {
		return false, nil
	}
	return true, b.wrapErr(assign(v, value))
}

func (b *bucket) Put(id string, v interface{}) error {
	b.mu.Lock()
	b.data[id] = v
	b.mu.Unlock()
	return b.saveFn(b)
}

func (b *bucket) Delete(id string) error {
	b.mu.Lock()
	_, found := b.data[id]
	delete(b.data, id)
	b.mu.Unlock()
	if !found {
		return nil
	}
	return b.saveFn(b)
}

func (b *bucket) Clear() error {
	b.mu.Lock()
	b.data = make(map[string]interface{})
	b.mu.Unlock()
	return b.saveFn(b)
}

func (b *bucket) wrapErr(err error) error {
	return errors.Wrap(err, "Bucket "+b.name)
}

func encodeBucket(w io.Writer, b *bucket) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(marshalBucket{
		Version: b.version,
		Data:    b.data,
	})
}

// saveBucket atomically replaces the bucket's file
func saveBucket(b *bucket) (returnErr error) {
	file, err := ioutil.TempFile(filepath.Dir(b.path), filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return b.wrapErr(err)
	}
	defer func() {
		closeErr := file.Close()
		rmErr := os.Remove(file.Name()) // only exists if the rename failed
		if returnErr == nil {
			if rmErr != nil && !os.IsNotExist(rmErr) {
				returnErr = b.wrapErr(rmErr)
			}
			if closeErr != nil {
				returnErr = b.wrapErr(closeErr)
			}
		}
	}()

	b.mu.RLock()
	err = encodeBucket(file, b)
	b.mu.RUnlock()
	if err != nil {
		return b.wrapErr(err)
	}
	if err := file.Sync(); err != nil {
		return b.wrapErr(err)
	}
	if err := os.Rename(file.Name(), b.path); err != nil {
		return b.wrapErr(err)
	}
	return nil
}

// assign sets the value dest points to to source
func assign(dest interface{}, source interface{}) (err error) {
	if dest == nil {
		return errors.New("dest must not be nil")
	}
	defer func() {
		if v := recover(); v != nil && err == nil {
			err = errors.Errorf("Reflect error during assignment: %+v", v)
		}
	}()

	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr {
		return errors.Errorf("dest is not a pointer: %T", dest)
	}
	destValue = destValue.Elem()
	if !destValue.CanSet() {
		return errors.Errorf("Cannot set value for %T: %+v", dest, dest)
	}

	sourceValue := reflect.ValueOf(source)
	if !sourceValue.Type().AssignableTo(destValue.Type()) {
		return errors.Errorf("Type %T is not assignable to %T", source, dest)
	}
	destValue.Set(sourceValue)
	return nil
}
