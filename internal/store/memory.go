package store

import (
	"github.com/dori/daybook/internal/model"
)

// Memory is an in-process Persister, used for tests and dry runs
type Memory struct {
	tasks []model.Task
	saved bool
	Saves int
	Err   error // returned by SaveTasks when set
}

// NewMemory returns a Memory persister with nothing saved
func NewMemory() *Memory {
	return &Memory{}
}

// LoadTasks returns the last saved collection
func (m *Memory) LoadTasks() ([]model.Task, bool, error) {
	if !m.saved {
		return nil, false, nil
	}
	out := make([]model.Task, len(m.tasks))
	for i, t := range m.tasks {
		out[i] = t.Clone()
	}
	return out, true, nil
}

// SaveTasks records tasks as the saved collection
func (m *Memory) SaveTasks(tasks []model.Task) error {
	if m.Err != nil {
		return m.Err
	}
	m.Saves++
	m.saved = true
	m.tasks = make([]model.Task, len(tasks))
	for i, t := range tasks {
		m.tasks[i] = t.Clone()
	}
	return nil
}
