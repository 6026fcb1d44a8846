package gamification

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository est l'implémentation en mémoire du Repository, utilisée
// par les tests. Le mutex joue le rôle du verrou de ligne PostgreSQL.
type MemoryRepository struct {
	mu      sync.Mutex
	records map[string]*Record
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: map[string]*Record{}}
}

func (r *MemoryRepository) Get(ctx context.Context, userID string) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.clone(), nil
}

func (r *MemoryRepository) UpdateRecord(ctx context.Context, userID string, apply func(*Record) error) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[userID]
	if !ok {
		rec = NewRecord(userID)
	}

	// apply travaille sur une copie : si la règle échoue, l'état stocké
	// reste intact (écriture tout-ou-rien)
	updated := rec.clone()
	if err := apply(updated); err != nil {
		return nil, err
	}

	r.records[userID] = updated
	return updated.clone(), nil
}

func (r *MemoryRepository) TopByPoints(ctx context.Context, limit int) ([]*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := make([]*Record, 0, len(r.records))
	for _, rec := range r.records {
		records = append(records, rec.clone())
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Points != records[j].Points {
			return records[i].Points > records[j].Points
		}
		return records[i].UserID < records[j].UserID
	})

	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
