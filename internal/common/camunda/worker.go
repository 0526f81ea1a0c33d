// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/goccy/go-json"

	"moviechain/internal/common/config"
	"moviechain/internal/common/errors"
	"moviechain/internal/common/logger"
	"moviechain/internal/common/metrics"
	"moviechain/internal/common/observability"
)

// JobRunner carries what every job handler needs to decode, run and settle a job.
type JobRunner struct {
	TaskType string
	Timeout  time.Duration
	Logger   logger.Logger
	Errors   *errors.ErrorHandler
	Obs      *observability.Observability
}

// NewJobRunner builds a runner whose failures go through the standard error handler.
func NewJobRunner(taskType string, timeout time.Duration, log logger.Logger) JobRunner {
	return JobRunner{
		TaskType: taskType,
		Timeout:  timeout,
		Logger:   log,
		Errors:   errors.NewErrorHandler(log),
	}
}

// Run decodes the job variables into In, executes exec under the runner
// timeout and completes the job with the output, or hands the error to the
// error handler.
func Run[In any, Out any](r JobRunner, client worker.JobClient, job entities.Job, exec func(context.Context, *In) (*Out, error)) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(r.TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(r.TaskType).Dec()

	r.Logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), r.Timeout)
	defer cancel()

	var input In
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		r.fail(ctx, client, job, start, errors.NewInvalidRequestError(err.Error()))
		return
	}

	output, err := exec(ctx, &input)
	if err != nil {
		r.fail(ctx, client, job, start, err)
		return
	}

	cmd, err := client.NewCompleteJobCommand().JobKey(job.Key).VariablesFromObject(output)
	if err != nil {
		r.fail(ctx, client, job, start, errors.NewInternalError(err))
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		r.Logger.Error("failed to send complete job command", map[string]interface{}{
			"error":  err,
			"jobKey": job.Key,
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(r.TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(r.TaskType).Observe(time.Since(start).Seconds())
	r.Obs.RecordJobProcessed(ctx, r.TaskType, "completed")
	r.Obs.RecordJobDuration(ctx, r.TaskType, time.Since(start), "completed")
}

func (r JobRunner) fail(ctx context.Context, client worker.JobClient, job entities.Job, start time.Time, err error) {
	stdErr := errors.Normalize(err)
	metrics.WorkerJobsFailed.WithLabelValues(r.TaskType, string(stdErr.Code)).Inc()
	r.Obs.RecordJobProcessed(ctx, r.TaskType, "failed")
	r.Obs.RecordJobDuration(ctx, r.TaskType, time.Since(start), "failed")
	r.Errors.HandleJobError(ctx, client, job, stdErr)
}

// StartWorker opens a job worker for taskType. Callers skip disabled workers
// with config.IsWorkerEnabled.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler worker.JobHandler, log logger.Logger) worker.JobWorker {
	w := client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeoutMs":     wcfg.Timeout,
		"maxRetries":    wcfg.MaxRetries,
	})
	return w
}
