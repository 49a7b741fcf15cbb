// Package index maintains the derived document index: a snapshot of every
// registered category's folder contents, rebuilt wholesale by the
// synchronizer and read lock-free by request handlers.
package index

import (
	"sync/atomic"
	"time"

	"intranet/internal/model"
)

// Snapshot is one immutable build of the index. Records must not be mutated
// after publication.
type Snapshot struct {
	Records []model.DocumentRecord
	BuiltAt time.Time
}

// Index holds the current snapshot behind an atomic pointer. The
// synchronizer is the sole writer; readers always observe either the whole
// previous snapshot or the whole new one, never a mix.
type Index struct {
	snap atomic.Pointer[Snapshot]
}

// New returns an index holding an empty snapshot.
func New() *Index {
	idx := &Index{}
	idx.snap.Store(&Snapshot{Records: []model.DocumentRecord{}})
	return idx
}

// Snapshot returns the last published snapshot. The result is shared and
// read-only.
func (i *Index) Snapshot() *Snapshot {
	return i.snap.Load()
}

// Size reports the number of records in the current snapshot.
func (i *Index) Size() int {
	return len(i.snap.Load().Records)
}

// Publish atomically replaces the current snapshot. The synchronizer is the
// sole writer in production.
func (i *Index) Publish(s *Snapshot) {
	i.snap.Store(s)
}
