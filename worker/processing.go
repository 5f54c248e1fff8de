package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"

	"mangatan.com/yomitan/tasks"
	"mangatan.com/yomitan/types"
	"mangatan.com/yomitan/utils"
)

type Message struct {
	WorkType string `json:"work_type"`
	RedisKey string `json:"redis_key"`
	Sender   string `json:"sender"`
	Version  string `json:"version"`
}

type Task struct {
	delivery   *amqp.Delivery
	lookupTask *tasks.LookupTask
	message    *Message
	redisKey   string
	ymtLogger  *zerolog.Logger
}

func (worker *Worker) processMessage(delivery *amqp.Delivery) {
	task, err := worker.createTask(delivery)
	rejectLogger := worker.ymtLogger.With().Str("message_id", delivery.MessageId).Logger()
	if err != nil {
		worker.ymtLogger.Err(err).
			Str("message_id", delivery.MessageId).
			Str("tid", string(delivery.Body)).
			Msg("Failed to create task for delivery")
		worker.rmq.rejectDelivery(delivery, &rejectLogger)
		return
	}
	if err = worker.processTask(task); err != nil {
		worker.rmq.rejectDelivery(delivery, &rejectLogger)
		return
	}
	if err = worker.rmq.pingSequencer(task, *task.message); err != nil {
		task.ymtLogger.Err(err).Msg("Got error while sending message to sequencer queue")
		worker.rmq.rejectDelivery(delivery, &rejectLogger)
		return
	}
	if err = worker.rmq.acknowledgeDelivery(delivery); err != nil {
		task.ymtLogger.Err(err).Msg("Failed to acknowledge delivery")
	}
	task.ymtLogger.Info().Msg("Finished processing RMQ message")
}

func (worker *Worker) createTask(delivery *amqp.Delivery) (*Task, error) {
	var message Message
	err := json.Unmarshal(delivery.Body, &message)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal message, got error %w", err)
	}
	lookupTask, err := worker.redis.getLookupTask(message.RedisKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query lookup task for message, got error %w", err)
	}
	taskLogger := worker.ymtLogger.With().Str("tid", message.RedisKey).Logger()
	task := Task{
		delivery:   delivery,
		lookupTask: lookupTask,
		redisKey:   message.RedisKey,
		message:    &message,
		ymtLogger:  &taskLogger,
	}
	return &task, nil
}

func (worker *Worker) processTask(task *Task) error {
	shouldPerform, err := worker.shouldPerformTask(task)
	if err != nil {
		task.ymtLogger.Err(err).
			Msg("Got error while trying to decide whether to run task")
		return err
	}
	if !shouldPerform {
		return nil
	}
	if err = worker.redis.onTaskStarted(task); err != nil {
		task.ymtLogger.Err(err).Msg("Failed to update task info")
		return fmt.Errorf("failed to update task info: %w", err)
	}
	results, err := worker.runLookup(task)
	if err != nil {
		task.ymtLogger.Err(err).Msg("Got error while running lookup")
		if err = worker.redis.onTaskFailedWithError(task, err); err != nil {
			return err
		}
		return nil
	}
	task.ymtLogger.Info().Msg("Saved results, marking task as complete")
	if err = worker.redis.onTaskComplete(task, results); err != nil {
		task.ymtLogger.Err(err).Msg("Got error while trying to mark task as complete")
		return err
	}
	return nil
}

func (worker *Worker) runLookup(task *Task) (results []types.RecordEntry, err error) {
	defer utils.RecoverWithError(&err)
	task.ymtLogger.Info().Msgf("Processing message from RMQ, attempt # %d", task.lookupTask.TaskStatuses.Lookup.Attempts)
	results, err = worker.search(context.Background(), task.lookupTask.Request)
	if err != nil {
		task.ymtLogger.Err(err).Msg("Search returned error")
		return nil, err
	}
	task.ymtLogger.Info().Msgf("Finished lookup with %d results", len(results))
	return results, nil
}

func (worker *Worker) shouldPerformTask(task *Task) (bool, error) {
	taskInfo := task.lookupTask.TaskStatuses.Lookup
	taskLogger := task.ymtLogger

	if taskInfo.Status.Complete() {
		taskLogger.Info().Msg("Task is already done. (might indicate issue acking message with RMQ). Sending back to Sequencer.")
		return false, nil
	}
	taskJob, err := worker.redis.getJobTask(task)
	if err != nil {
		taskLogger.Err(err).Msg("Failed to query job task for lookup task")
		return false, err
	}
	if taskJob.UserCanceled {
		taskLogger.Info().Msg("Job was canceled, no need to perform this task. Sending back to Sequencer.")
		err := worker.redis.onTaskCancelled(task)
		return false, err
	}
	if taskInfo.Attempts >= worker.config.TaskMaxRetries {
		taskLogger.Info().Msg("Lookup task has exceeded retries. Sending back to Sequencer.")
		err = worker.redis.onTaskExceededRetries(task, worker.config.TaskMaxRetries)
		return false, err
	}
	return true, nil
}
