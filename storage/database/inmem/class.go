package inmemdb

import (
	"context"

	"github.com/lefika/ripota/core/class"
)

type classRepository struct {
	db *classTable
}

var _ class.Repository = (*classRepository)(nil)

func NewClassRepository(db *DB) class.Repository {
	return &classRepository{db: db.class}
}

func (repo *classRepository) query() []class.Class {
	classes := make([]class.Class, 0, len(repo.db.seq))
	for _, id := range repo.db.seq {
		classes = append(classes, *repo.db.table[id])
	}
	return classes
}

func (repo *classRepository) CreateClass(_ context.Context, cls class.Class) (class.Class, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[cls.ID] = &cls
	repo.db.seq = append(repo.db.seq, cls.ID)
	return cls, nil
}

func (repo *classRepository) QueryAllClasses(_ context.Context) ([]class.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *classRepository) GetClassByID(_ context.Context, id string) (class.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if cls, ok := repo.db.table[id]; ok {
		return *cls, nil
	}
	return class.Class{}, class.ErrNotFound
}

func (repo *classRepository) UpdateClass(_ context.Context, cls class.Class) (class.Class, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[cls.ID]; !ok {
		return class.Class{}, class.ErrNotFound
	}
	repo.db.table[cls.ID] = &cls
	return cls, nil
}

func (repo *classRepository) DeleteClassByID(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return class.ErrNotFound
	}
	delete(repo.db.table, id)
	for i, sid := range repo.db.seq {
		if sid == id {
			repo.db.seq = append(repo.db.seq[:i], repo.db.seq[i+1:]...)
			break
		}
	}
	return nil
}
