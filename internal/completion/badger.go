package completion

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/N4171k/45DOC/pkg/logger"
	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// BadgerStore keeps completion documents in an embedded BadgerDB directory,
// one key per profile. It is the on-device cache of the terminal client.
type BadgerStore struct {
	db *badger.DB
}

// badgerLogger adapts zerolog to badger's Logger interface.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msgf(format, args...)
}

// OpenBadgerStore opens (creating if needed) the store at dir. An empty dir
// opens an in-memory database.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create cache directory %s: %w", dir, err)
		}
		opts = badger.DefaultOptions(dir).WithSyncWrites(true)
	}
	opts = opts.
		WithNumVersionsToKeep(1).
		WithLogger(badgerLogger{log: logger.Component("badger")})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func badgerKey(profile string) []byte {
	return []byte(DocumentName + "/" + profile)
}

func readValue(txn *badger.Txn, key []byte) ([]byte, error) {
	item, err := txn.Get(key)
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

func (s *BadgerStore) load(profile string) map[string]Record {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		raw, err = readValue(txn, badgerKey(profile))
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logger.Debug().Err(err).Str("profile", profile).Msg("completion cache unreadable, treating as empty")
		}
		return map[string]Record{}
	}
	doc, err := DecodeDocument(raw)
	if err != nil {
		logger.Debug().Err(err).Str("profile", profile).Msg("completion cache partially unreadable")
	}
	return doc
}

func (s *BadgerStore) Get(ctx context.Context, profile, key string) (Record, bool) {
	rec, ok := s.load(profile)[key]
	return rec, ok
}

// Put reads and rewrites the document inside one badger transaction.
func (s *BadgerStore) Put(ctx context.Context, profile, key string, rec Record) error {
	return s.db.Update(func(txn *badger.Txn) error {
		doc := map[string]Record{}
		raw, err := readValue(txn, badgerKey(profile))
		switch {
		case err == nil:
			doc, _ = DecodeDocument(raw)
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}
		doc[key] = rec
		encoded, err := EncodeDocument(doc)
		if err != nil {
			return err
		}
		return txn.Set(badgerKey(profile), encoded)
	})
}

func (s *BadgerStore) All(ctx context.Context, profile string) map[string]Record {
	return s.load(profile)
}

func (s *BadgerStore) Replace(ctx context.Context, profile string, doc map[string]Record) error {
	encoded, err := EncodeDocument(doc)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(profile), encoded)
	})
}

// SetRaw writes bytes as a profile's document without validation.
func (s *BadgerStore) SetRaw(profile string, raw []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(profile), raw)
	})
}

// Meta values live beside the documents under "meta/<name>". The client keeps
// its session token there.
func metaKey(name string) []byte {
	return []byte("meta/" + name)
}

func (s *BadgerStore) GetMeta(name string) (string, bool) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		raw, err = readValue(txn, metaKey(name))
		return err
	})
	if err != nil {
		return "", false
	}
	return string(raw), true
}

func (s *BadgerStore) SetMeta(name, value string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(metaKey(name), []byte(value))
	})
}

func (s *BadgerStore) DeleteMeta(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(metaKey(name))
	})
}
