package tasks

import (
	"mangatan.com/yomitan/redis"
	"mangatan.com/yomitan/types"
)

const LookupsDB redis.DB = 2

type TaskStatus string

const (
	TaskStatusProcessing       TaskStatus = "processing"
	TaskStatusSubmitted        TaskStatus = "submitted"
	TaskStatusStarted          TaskStatus = "started"
	TaskStatusFailed           TaskStatus = "failed"
	TaskStatusCompletedSuccess TaskStatus = "completed - success"
	TaskStatusCompletedFailure TaskStatus = "completed - failure"
	TaskStatusCanceled         TaskStatus = "canceled"
)

func (s TaskStatus) Complete() bool {
	return s == TaskStatusCompletedSuccess || s == TaskStatusCompletedFailure || s == TaskStatusCanceled
}

func (s TaskStatus) Submitted() bool {
	return s == TaskStatusSubmitted || s == TaskStatusStarted || s == TaskStatusProcessing
}

// LookupRequest is the search the reader asked for: the surrounding text, the
// byte offset of the cursor inside it, and the profile language.
type LookupRequest struct {
	Text         string `json:"text"`
	CursorOffset int    `json:"cursor_offset"`
	Language     string `json:"language"`
}

type LookupTask struct {
	JobID        string              `json:"job_id"`
	Request      LookupRequest       `json:"request"`
	TaskStatuses LookupTaskStatuses  `json:"task_statuses"`
	Results      []types.RecordEntry `json:"results,omitempty"`
}

type LookupTaskStatuses struct {
	Lookup LookupTaskInfo `json:"lookup"`
}

type LookupTaskInfo struct {
	StartedAt     *string    `json:"started_at"`
	CompletedAt   *string    `json:"completed_at"`
	Attempts      int        `json:"attempts"`
	Status        TaskStatus `json:"status"`
	ErrorMessages []string   `json:"error_messages"`
}

type LookupTasks struct {
	client redis.Client
}

func (tasks LookupTasks) Get(redisKey string) (*LookupTask, error) {
	var task LookupTask
	err := tasks.client.GetDocument(redisKey, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (tasks LookupTasks) Update(redisKey string, updateFunc func(task *LookupTask)) error {
	var task LookupTask
	return tasks.client.UpdateDocument(redisKey, &task, func() {
		updateFunc(&task)
	})
}
