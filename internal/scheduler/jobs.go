package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const jobTimeout = 10 * time.Minute

// DepositProcessor applies due recurring fund deposits
type DepositProcessor interface {
	ProcessAllRecurringDeposits(ctx context.Context) error
}

// BufferChecker alerts households whose forecast falls below the buffer
type BufferChecker interface {
	CheckBuffers(ctx context.Context) (int, error)
}

// RecurringDepositJob credits recurring fund deposits for every household
type RecurringDepositJob struct {
	processor DepositProcessor
	log       *logrus.Entry
}

// NewRecurringDepositJob creates a new recurring deposit job
func NewRecurringDepositJob(processor DepositProcessor, log *logrus.Logger) *RecurringDepositJob {
	return &RecurringDepositJob{processor: processor, log: log.WithField("job", "recurring_deposits")}
}

// Name returns the job name
func (j *RecurringDepositJob) Name() string {
	return "recurring_deposits"
}

// Run executes the job
func (j *RecurringDepositJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := j.processor.ProcessAllRecurringDeposits(ctx); err != nil {
		return err
	}
	j.log.Info("Recurring deposits processed")
	return nil
}

// BufferAlertJob emails households whose projected balance is in Danger
type BufferAlertJob struct {
	checker BufferChecker
	log     *logrus.Entry
}

// NewBufferAlertJob creates a new buffer alert job
func NewBufferAlertJob(checker BufferChecker, log *logrus.Logger) *BufferAlertJob {
	return &BufferAlertJob{checker: checker, log: log.WithField("job", "buffer_alerts")}
}

// Name returns the job name
func (j *BufferAlertJob) Name() string {
	return "buffer_alerts"
}

// Run executes the job
func (j *BufferAlertJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	sent, err := j.checker.CheckBuffers(ctx)
	j.log.WithField("sent", sent).Info("Buffer check finished")
	return err
}
