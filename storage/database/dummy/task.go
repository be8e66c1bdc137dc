package dummydb

import (
	"time"

	"github.com/google/uuid"

	"github.com/taskistry/collabo/core/task"
)

type taskRepository struct {
	db *taskTable
}

var _ task.Repository = (*taskRepository)(nil) // interface compliance check

func NewTaskRepository(db *DB) task.Repository {
	return &taskRepository{db: db.task}
}

func (repo *taskRepository) CreateTask(tsk task.Task) (task.Task, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if tsk.ID == "" {
		tsk.ID = uuid.NewString()
	}
	repo.db.table[tsk.ID] = &tsk
	return tsk, nil
}

func (repo *taskRepository) GetTaskByID(id string) (task.Task, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if tsk, ok := repo.db.table[id]; ok {
		return *tsk, nil
	}
	return task.Task{}, task.ErrNotFound
}

func (repo *taskRepository) QueryAllTasks() ([]task.Task, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	tasks := make([]task.Task, 0, len(repo.db.table))
	for _, t := range repo.db.table {
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

func (repo *taskRepository) QueryProjectTasks(projectID string) ([]task.Task, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var tasks []task.Task
	for _, t := range repo.db.table {
		if t.ProjectID == projectID {
			tasks = append(tasks, *t)
		}
	}
	return tasks, nil
}

func (repo *taskRepository) UpdateTask(tsk task.Task) (task.Task, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[tsk.ID]; !ok {
		return task.Task{}, task.ErrNotFound
	}
	repo.db.table[tsk.ID] = &tsk
	return tsk, nil
}

func (repo *taskRepository) UnassignMemberTasks(projectID, userID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	now := time.Now().UTC()
	for _, t := range repo.db.table {
		if t.ProjectID == projectID && t.AssignedTo != nil && *t.AssignedTo == userID {
			t.AssignedTo = nil
			t.UpdatedAt = now
		}
	}
	return nil
}
