package worker

import (
	"fmt"

	"mangatan.com/yomitan/tasks"
	"mangatan.com/yomitan/types"
)

type redisTransactions interface {
	getLookupTask(redisKey string) (*tasks.LookupTask, error)
	getJobTask(task *Task) (*tasks.JobTask, error)
	onTaskStarted(task *Task) error
	onTaskCancelled(task *Task, errorMessages ...string) error
	onTaskExceededRetries(task *Task, maxRetries int) error
	onTaskFailedWithError(task *Task, err error) error
	onTaskComplete(task *Task, results []types.RecordEntry) error
	close()
}

type redisClientWrapper struct {
	tasksClient *tasks.Client
}

func (wrapper *redisClientWrapper) close() {
	wrapper.tasksClient.Close()
}

func (wrapper *redisClientWrapper) onTaskStarted(task *Task) error {
	return wrapper.tasksClient.Lookups.Update(task.redisKey, func(task *tasks.LookupTask) {
		task.TaskStatuses.Lookup.Status = tasks.TaskStatusStarted
		task.TaskStatuses.Lookup.Attempts += 1
		task.TaskStatuses.Lookup.StartedAt = getFormattedNow()
		task.TaskStatuses.Lookup.CompletedAt = nil
	})
}

func (wrapper *redisClientWrapper) onTaskCancelled(task *Task, errorMessages ...string) error {
	return wrapper.tasksClient.Lookups.Update(task.redisKey, func(lookupTask *tasks.LookupTask) {
		lookupTask.TaskStatuses.Lookup.Status = tasks.TaskStatusCanceled
		lookupTask.TaskStatuses.Lookup.StartedAt = getFormattedNow()
		lookupTask.TaskStatuses.Lookup.CompletedAt = getFormattedNow()
		lookupTask.TaskStatuses.Lookup.Attempts += 1
		lookupTask.TaskStatuses.Lookup.ErrorMessages = append(
			lookupTask.TaskStatuses.Lookup.ErrorMessages,
			errorMessages...,
		)
	})
}

func (wrapper *redisClientWrapper) onTaskExceededRetries(task *Task, maxRetries int) error {
	return wrapper.tasksClient.Lookups.Update(task.redisKey, func(lookupTask *tasks.LookupTask) {
		lookupTask.TaskStatuses.Lookup.Status = tasks.TaskStatusCompletedFailure
		lookupTask.TaskStatuses.Lookup.StartedAt = getFormattedNow()
		lookupTask.TaskStatuses.Lookup.CompletedAt = getFormattedNow()
		lookupTask.TaskStatuses.Lookup.Attempts += 1
		lookupTask.TaskStatuses.Lookup.ErrorMessages = append(
			lookupTask.TaskStatuses.Lookup.ErrorMessages,
			fmt.Sprintf(
				"Task has exceeded retries. (Attempts: %d, max retries: %d )",
				lookupTask.TaskStatuses.Lookup.Attempts,
				maxRetries,
			),
		)
	})
}

func (wrapper *redisClientWrapper) onTaskFailedWithError(task *Task, err error) error {
	return wrapper.tasksClient.Lookups.Update(task.redisKey, func(lookupTask *tasks.LookupTask) {
		lookupTask.TaskStatuses.Lookup.Status = tasks.TaskStatusFailed
		lookupTask.TaskStatuses.Lookup.CompletedAt = getFormattedNow()
		lookupTask.TaskStatuses.Lookup.ErrorMessages = append(lookupTask.TaskStatuses.Lookup.ErrorMessages, err.Error())
	})
}

func (wrapper *redisClientWrapper) onTaskComplete(task *Task, results []types.RecordEntry) error {
	return wrapper.tasksClient.Lookups.Update(task.redisKey, func(lookupTask *tasks.LookupTask) {
		if !lookupTask.TaskStatuses.Lookup.Status.Complete() {
			lookupTask.TaskStatuses.Lookup.Status = tasks.TaskStatusCompletedSuccess
		}
		lookupTask.TaskStatuses.Lookup.CompletedAt = getFormattedNow()
		lookupTask.Results = results
	})
}

func (wrapper *redisClientWrapper) getLookupTask(redisKey string) (*tasks.LookupTask, error) {
	return wrapper.tasksClient.Lookups.Get(redisKey)
}

func (wrapper *redisClientWrapper) getJobTask(task *Task) (*tasks.JobTask, error) {
	return wrapper.tasksClient.Jobs.Get(task.lookupTask.JobID)
}
