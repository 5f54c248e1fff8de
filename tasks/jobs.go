package tasks

import (
	"mangatan.com/yomitan/redis"
)

const JobsDB redis.DB = 1

// JobTask is the slice of a job document this worker cares about. The
// sequencer owns the rest of the schema.
type JobTask struct {
	UserCanceled bool `json:"user_canceled"`
}

type JobTasks struct {
	client redis.Client
}

func (tasks JobTasks) Get(redisKey string) (*JobTask, error) {
	var task JobTask
	err := tasks.client.GetDocument(redisKey, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
