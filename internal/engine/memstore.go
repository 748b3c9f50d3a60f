package engine

import (
	"fmt"
	"log"
	"reflect"

	"github.com/google/btree"
)

const cacheDegree = 16

type cacheItem struct {
	id  string
	rec Record
}

func (i cacheItem) Less(than btree.Item) bool {
	return i.id < than.(cacheItem).id
}

// Cache is the in-memory mirror of one entity type's persisted records,
// ordered by registration id. It does no locking of its own: readers may
// share it, writers need exclusive access.
type Cache struct {
	tree *btree.BTree
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{tree: btree.New(cacheDegree)}
}

// LoadCache scans every persisted record of an entity type into a new cache.
// Records without a registration id are skipped.
func LoadCache(store RecordStore, entity string) (*Cache, error) {
	records, err := store.GetAll(entity)
	if err != nil {
		return nil, fmt.Errorf("load %s records: %w", entity, err)
	}

	c := NewCache()
	for _, rec := range records {
		id, ok := rec.ID()
		if !ok {
			log.Printf("Warning: skipping %s record without %s", entity, IDAttr)
			continue
		}
		c.Put(id, rec)
	}
	return c, nil
}

// Len returns the number of cached records.
func (c *Cache) Len() int { return c.tree.Len() }

// Put inserts or replaces the record for id.
func (c *Cache) Put(id string, rec Record) {
	c.tree.ReplaceOrInsert(cacheItem{id: id, rec: rec.Clone()})
}

// Get returns a copy of the record for id.
func (c *Cache) Get(id string) (Record, bool) {
	item := c.tree.Get(cacheItem{id: id})
	if item == nil {
		return nil, false
	}
	return item.(cacheItem).rec.Clone(), true
}

// Delete removes id and reports whether it was present.
func (c *Cache) Delete(id string) bool {
	return c.tree.Delete(cacheItem{id: id}) != nil
}

// Descend calls fn for each record from the highest id down until fn returns
// false. fn must not mutate rec.
func (c *Cache) Descend(fn func(id string, rec Record) bool) {
	c.tree.Descend(func(i btree.Item) bool {
		item := i.(cacheItem)
		return fn(item.id, item.rec)
	})
}

// Descending returns copies of all records sorted by id, highest first.
func (c *Cache) Descending() []Record {
	out := make([]Record, 0, c.tree.Len())
	c.Descend(func(_ string, rec Record) bool {
		out = append(out, rec.Clone())
		return true
	})
	return out
}

// IsDuplicate reports whether any cached record holds value under attr.
// A nil value never matches.
func (c *Cache) IsDuplicate(attr string, value any) bool {
	if value == nil {
		return false
	}
	found := false
	c.tree.Ascend(func(i btree.Item) bool {
		if existing, ok := i.(cacheItem).rec[attr]; ok && reflect.DeepEqual(existing, value) {
			found = true
			return false
		}
		return true
	})
	return found
}
