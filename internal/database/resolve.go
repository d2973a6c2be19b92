package database

import (
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// Entity identifies a logical table whose physical name differs between
// deployments. Older schemas used the bare names, newer ones the prefixed
// ones; both remain in the wild.
type Entity string

const (
	EntityLikes    Entity = "likes"
	EntityComments Entity = "comments"
)

// TableVariations lists the candidate physical names per entity, in the
// order they are tried.
var TableVariations = map[Entity][]string{
	EntityLikes:    {"recipe_likes", "likes"},
	EntityComments: {"recipe_comments", "comments"},
}

// ErrAllVariationsFailed is returned when no candidate table accepted the
// operation. It is distinct from any candidate's own error.
var ErrAllVariationsFailed = errors.New("all table variations failed")

// TryTableVariations runs op against each candidate name for entity until one
// succeeds, returning the name that worked. If every candidate errors, the
// result is ErrAllVariationsFailed.
func TryTableVariations(entity Entity, op func(table string) error) (string, error) {
	names, ok := TableVariations[entity]
	if !ok {
		return "", fmt.Errorf("unknown entity %q", entity)
	}

	for _, name := range names {
		if err := op(name); err == nil {
			return name, nil
		}
	}

	return "", fmt.Errorf("%w for %s", ErrAllVariationsFailed, entity)
}

// TryTableVariationsMutation is TryTableVariations for insert/update/delete
// calls, reporting only whether any candidate succeeded.
func TryTableVariationsMutation(entity Entity, op func(table string) error) bool {
	_, err := TryTableVariations(entity, op)
	return err == nil
}

// TableResolver pins the physical table name per entity. Candidates are
// probed once per process, not per call, so steady-state operations hit the
// resolved name directly.
type TableResolver struct {
	db *gorm.DB

	mu    sync.Mutex
	names map[Entity]string
}

func NewTableResolver(db *gorm.DB) *TableResolver {
	return &TableResolver{
		db:    db,
		names: make(map[Entity]string),
	}
}

// Resolve returns the physical table name backing entity, probing the
// candidate list on first use.
func (r *TableResolver) Resolve(entity Entity) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name, ok := r.names[entity]; ok {
		return name, nil
	}

	name, err := TryTableVariations(entity, func(table string) error {
		var rows []map[string]interface{}
		return r.db.Table(table).Limit(1).Find(&rows).Error
	})
	if err != nil {
		return "", err
	}

	r.names[entity] = name
	return name, nil
}
