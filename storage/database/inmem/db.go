// Package inmemdb provides map-backed repository implementations used by
// tests and local development.
package inmemdb

import (
	"sync"

	"github.com/lefika/ripota/core/class"
	"github.com/lefika/ripota/core/course"
	"github.com/lefika/ripota/core/rating"
	"github.com/lefika/ripota/core/report"
	"github.com/lefika/ripota/core/user"
)

type (
	DB struct {
		user   *userTable
		class  *classTable
		course *courseTable
		report *reportTable
		rating *ratingTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
		seq   []string // insertion order
	}

	classTable struct {
		sync.RWMutex
		table map[string]*class.Class
		seq   []string
	}

	courseTable struct {
		sync.RWMutex
		table map[string]*course.Course
		seq   []string
	}

	reportTable struct {
		sync.RWMutex
		table map[string]*report.Report
		seq   []string
	}

	ratingTable struct {
		sync.RWMutex
		table map[string]*rating.Rating
		seq   []string
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:   &userTable{table: make(map[string]*user.User)},
		class:  &classTable{table: make(map[string]*class.Class)},
		course: &courseTable{table: make(map[string]*course.Course)},
		report: &reportTable{table: make(map[string]*report.Report)},
		rating: &ratingTable{table: make(map[string]*rating.Rating)},
	}
	return db, nil
}
