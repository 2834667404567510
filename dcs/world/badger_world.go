package world

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/wbrown/janus-dcs/dcs"
)

// Key layout:
//
//	p/<name>\x00<encoded tuple>  → empty value (one key per tuple)
//	n/<name>                     → empty value (predicate catalog)
//
// Storing the tuple in the key keeps tables deduplicated for free.
var (
	tuplePrefix   = []byte("p/")
	catalogPrefix = []byte("n/")
)

// BadgerWorld is a World whose predicate tables are persisted in BadgerDB.
type BadgerWorld struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a world database at path
func OpenBadger(path string) (*BadgerWorld, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable BadgerDB logs
	return openBadger(opts)
}

// OpenBadgerReadOnly opens an existing world database for lookups only
func OpenBadgerReadOnly(path string) (*BadgerWorld, error) {
	opts := badger.DefaultOptions(path).WithReadOnly(true)
	opts.Logger = nil
	return openBadger(opts)
}

// OpenBadgerInMemory opens a transient world database
func OpenBadgerInMemory() (*BadgerWorld, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openBadger(opts)
}

func openBadger(opts badger.Options) (*BadgerWorld, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return &BadgerWorld{db: db}, nil
}

// Put replaces the table stored under name
func (w *BadgerWorld) Put(name string, d *dcs.Denotation) error {
	if d.IsUniversal() {
		return fmt.Errorf("put %s: cannot store the universal denotation", name)
	}
	if w.exists(name) {
		if err := w.Drop(name); err != nil {
			return err
		}
	}

	wb := w.db.NewWriteBatch()
	defer wb.Cancel()

	if err := wb.Set(catalogKey(name), nil); err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	for _, t := range d.Tuples() {
		enc, err := dcs.EncodeTuple(t)
		if err != nil {
			return fmt.Errorf("put %s: %w", name, err)
		}
		if err := wb.Set(append(tableKey(name), enc...), nil); err != nil {
			return fmt.Errorf("put %s: %w", name, err)
		}
	}
	return wb.Flush()
}

// Drop removes the table stored under name, if any
func (w *BadgerWorld) Drop(name string) error {
	prefix := tableKey(name)
	if err := w.db.DropPrefix(prefix); err != nil {
		return fmt.Errorf("drop %s: %w", name, err)
	}
	return w.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(catalogKey(name))
		if err != nil && err != badger.ErrKeyNotFound {
			return err
		}
		return nil
	})
}

// Import copies every table of a listable world.
func (w *BadgerWorld) Import(src interface {
	World
	Lister
}) error {
	for _, name := range src.Names() {
		p, _ := src.Lookup(name)
		d, err := p()
		if err != nil {
			return fmt.Errorf("import %s: %w", name, err)
		}
		if err := w.Put(name, d); err != nil {
			return err
		}
	}
	return nil
}

// Lookup implements World. The returned producer reads the table in a
// fresh read-only transaction on every call.
func (w *BadgerWorld) Lookup(name string) (Producer, bool) {
	if !w.exists(name) {
		return nil, false
	}
	return func() (*dcs.Denotation, error) { return w.scan(name) }, true
}

// exists checks the predicate catalog
func (w *BadgerWorld) exists(name string) bool {
	found := false
	_ = w.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(catalogKey(name))
		found = err == nil
		return nil
	})
	return found
}

// scan reads one table
func (w *BadgerWorld) scan(name string) (*dcs.Denotation, error) {
	prefix := tableKey(name)
	b := dcs.NewBuilder(64)

	err := w.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false // everything lives in the key
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().Key()
			t, err := dcs.DecodeTuple(key[len(prefix):])
			if err != nil {
				return fmt.Errorf("decode %s: %w", name, err)
			}
			b.Add(t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b.Denotation(), nil
}

// Names lists the stored predicates, sorted
func (w *BadgerWorld) Names() []string {
	var names []string
	_ = w.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = catalogPrefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(catalogPrefix); it.ValidForPrefix(catalogPrefix); it.Next() {
			names = append(names, string(bytes.TrimPrefix(it.Item().Key(), catalogPrefix)))
		}
		return nil
	})
	sort.Strings(names)
	return names
}

// Close closes the database
func (w *BadgerWorld) Close() error {
	return w.db.Close()
}

func tableKey(name string) []byte {
	key := make([]byte, 0, len(tuplePrefix)+len(name)+1)
	key = append(key, tuplePrefix...)
	key = append(key, name...)
	return append(key, 0)
}

func catalogKey(name string) []byte {
	return append(append([]byte{}, catalogPrefix...), name...)
}
