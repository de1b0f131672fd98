package inmemdb

import (
	"context"

	"github.com/lefika/ripota/core/rating"
)

type ratingRepository struct {
	db *ratingTable
}

var _ rating.Repository = (*ratingRepository)(nil)

func NewRatingRepository(db *DB) rating.Repository {
	return &ratingRepository{db: db.rating}
}

func (repo *ratingRepository) query() []rating.Rating {
	ratings := make([]rating.Rating, 0, len(repo.db.seq))
	for _, id := range repo.db.seq {
		ratings = append(ratings, *repo.db.table[id])
	}
	return ratings
}

func (repo *ratingRepository) CreateRating(_ context.Context, rtg rating.Rating) (rating.Rating, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[rtg.ID] = &rtg
	repo.db.seq = append(repo.db.seq, rtg.ID)
	return rtg, nil
}

func (repo *ratingRepository) QueryAllRatings(_ context.Context) ([]rating.Rating, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *ratingRepository) GetRatingByID(_ context.Context, id string) (rating.Rating, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if rtg, ok := repo.db.table[id]; ok {
		return *rtg, nil
	}
	return rating.Rating{}, rating.ErrNotFound
}

func (repo *ratingRepository) QueryRatingsByStudent(_ context.Context, studentID string) ([]rating.Rating, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	matches := make([]rating.Rating, 0)
	for _, rtg := range repo.query() {
		if rtg.StudentID == studentID {
			matches = append(matches, rtg)
		}
	}
	return matches, nil
}

func (repo *ratingRepository) DeleteRatingByID(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return rating.ErrNotFound
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
