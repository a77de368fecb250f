package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/StudioSol/set"
	"github.com/raykavin/fvgview/pkg/core"
	"github.com/raykavin/fvgview/pkg/logger"
	"github.com/tidwall/buntdb"
	"github.com/tidwall/gjson"
)

const (
	eventExt   = ".json"
	keyIndex   = "key_index"
	invalidDoc = "invalid"
)

// FileStore serves events from a directory holding one JSON document per event.
// The identifier of an event is its file name without extension. Documents are
// decoded on every Get; only the catalog metadata is kept, in an in-memory buntdb.
type FileStore struct {
	mu   sync.Mutex
	dir  string
	db   *buntdb.DB
	keys *set.LinkedHashSetString
	log  logger.Logger
}

// NewFileStore opens a store over dir. The directory must exist.
func NewFileStore(dir string, log logger.Logger) (*FileStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open events directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("events path %q is not a directory", dir)
	}

	db, err := buntdb.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	err = db.CreateIndex(keyIndex, "*", buntdb.IndexJSON("key"))
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &FileStore{
		dir:  dir,
		db:   db,
		keys: set.NewLinkedHashSetString(),
		log:  log,
	}, nil
}

// Dir returns the directory the store reads from
func (s *FileStore) Dir() string { return s.dir }

// Get implements Store
func (s *FileStore) Get(id string) (*core.EventRecord, error) {
	path, err := s.pathOf(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", core.ErrEventNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", core.ErrMalformedEvent, err)
	}

	event, err := core.DecodeEvent(data)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", id, err)
	}

	return event, nil
}

// pathOf maps an identifier to its document, refusing anything that is not a
// plain file name inside the directory
func (s *FileStore) pathOf(id string) (string, error) {
	key := strings.TrimSuffix(id, eventExt)
	if key == "" || key != filepath.Base(key) || key == "." || key == ".." ||
		strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("%w: %q", core.ErrInvalidEventID, id)
	}
	return filepath.Join(s.dir, key+eventExt), nil
}

// Refresh rescans the directory, probing each document for its catalog fields
// and pruning entries whose file disappeared
func (s *FileStore) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := filepath.Glob(filepath.Join(s.dir, "*"+eventExt))
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}
	sort.Strings(files)

	present := set.NewLinkedHashSetString()

	err = s.db.Update(func(tx *buntdb.Tx) error {
		for _, file := range files {
			entry := s.probe(file)
			present.Add(entry.Key)

			content, err := json.Marshal(entry)
			if err != nil {
				return fmt.Errorf("failed to marshal entry: %w", err)
			}

			if _, _, err = tx.Set(entry.Key, string(content), nil); err != nil {
				return fmt.Errorf("failed to store entry: %w", err)
			}
		}

		for key := range s.keys.Iter() {
			if present.InArray(key) {
				continue
			}
			if _, err := tx.Delete(key); err != nil && !errors.Is(err, buntdb.ErrNotFound) {
				return fmt.Errorf("failed to prune entry: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.keys = present
	return nil
}

// probe reads the catalog fields of a document without decoding it fully
func (s *FileStore) probe(file string) Entry {
	entry := Entry{
		Key:  strings.TrimSuffix(filepath.Base(file), eventExt),
		File: filepath.Base(file),
	}

	data, err := os.ReadFile(file)
	if err != nil || !gjson.ValidBytes(data) {
		s.log.WithField("file", entry.File).Warn("unreadable event document")
		entry.Status = invalidDoc
		return entry
	}

	fields := gjson.GetManyBytes(data, "event_id", "summary.status", "trade_signals.#")
	entry.EventID = fields[0].String()
	entry.Status = fields[1].String()
	entry.Signals = int(fields[2].Int())
	entry.Valid = true

	return entry
}

// List implements Store. The catalog is refreshed first so new files show up.
func (s *FileStore) List(filters ...EntryFilter) ([]Entry, error) {
	if err := s.Refresh(); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0)

	err := s.db.View(func(tx *buntdb.Tx) error {
		err := tx.Ascend(keyIndex, func(_, value string) bool {
			var entry Entry
			if err := json.Unmarshal([]byte(value), &entry); err != nil {
				s.log.WithError(err).Warn("failed to unmarshal catalog entry")
				return true
			}

			for _, filter := range filters {
				if !filter(entry) {
					return true
				}
			}

			entries = append(entries, entry)
			return true
		})
		if err != nil {
			return fmt.Errorf("failed to iterate over catalog: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Close releases the catalog
func (s *FileStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
