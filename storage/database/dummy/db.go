package dummydb

import (
	"sync"

	"github.com/taskistry/collabo/core/project"
	"github.com/taskistry/collabo/core/task"
	"github.com/taskistry/collabo/core/user"
)

type (
	DB struct {
		user    *userTable
		project *projectTable
		task    *taskTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	projectTable struct {
		sync.RWMutex
		table map[string]*project.Project
	}

	taskTable struct {
		sync.RWMutex
		table map[string]*task.Task
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:    &userTable{table: make(map[string]*user.User)},
		project: &projectTable{table: make(map[string]*project.Project)},
		task:    &taskTable{table: make(map[string]*task.Task)},
	}
	return db, nil
}
