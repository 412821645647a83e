package cache

// entry is one cached value threaded on the recency list. The most
// recently used entry is at the front, the eviction candidate at the back.
type entry[K comparable, V any] struct {
	key   K
	value V

	newer *entry[K, V]
	older *entry[K, V]
}

// recency orders entries by last use. It is guarded by the owning Cache.
type recency[K comparable, V any] struct {
	newest *entry[K, V]
	oldest *entry[K, V]
}

// touch makes e the newest entry, linking it in if it is not on the list.
func (r *recency[K, V]) touch(e *entry[K, V]) {
	if r.newest == e {
		return
	}
	r.detach(e)
	e.older = r.newest
	if r.newest != nil {
		r.newest.newer = e
	}
	r.newest = e
	if r.oldest == nil {
		r.oldest = e
	}
}

// evict removes and returns the oldest entry, or nil if the list is empty.
func (r *recency[K, V]) evict() *entry[K, V] {
	e := r.oldest
	if e != nil {
		r.detach(e)
	}
	return e
}

func (r *recency[K, V]) detach(e *entry[K, V]) {
	switch {
	case e.newer != nil:
		e.newer.older = e.older
	case r.newest == e:
		r.newest = e.older
	}
	switch {
	case e.older != nil:
		e.older.newer = e.newer
	case r.oldest == e:
		r.oldest = e.newer
	}
	e.newer, e.older = nil, nil
}
