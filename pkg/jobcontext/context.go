package jobcontext

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type KeyContext string

var (
	keyBatchID   KeyContext = "batch_id"
	keyMeetingID KeyContext = "meeting_id"
	keyMode      KeyContext = "mode"
	keyWorkerID  KeyContext = "worker_id"
	keyAttempt   KeyContext = "attempt"
	keyStartTime KeyContext = "start_time"
)

// DefaultTimeout bounds a single evaluation job
const DefaultTimeout = 5 * time.Minute

// JobMetadata describes one evaluation job inside a batch
type JobMetadata struct {
	BatchID   uuid.UUID
	MeetingID uuid.UUID
	Mode      string
	WorkerID  int
	Attempt   int
	StartTime time.Time
}

// JobBegin derives a job context carrying batch metadata and a timeout
func JobBegin(parentCtx context.Context, batchID, meetingID uuid.UUID, mode string, workerID int) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parentCtx, DefaultTimeout)

	ctx = context.WithValue(ctx, keyBatchID, batchID)
	ctx = context.WithValue(ctx, keyMeetingID, meetingID)
	ctx = context.WithValue(ctx, keyMode, mode)
	ctx = context.WithValue(ctx, keyWorkerID, workerID)
	ctx = context.WithValue(ctx, keyAttempt, 0)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())

	return ctx, cancel
}

// Run executes jobFunc, converting panics into errors and repeating the call
// up to maxAttempts times while the error is a transient storage failure.
func Run(ctx context.Context, maxAttempts int, jobFunc func(context.Context) error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		ctx = context.WithValue(ctx, keyAttempt, attempt)

		func() {
			defer func() {
				if p := recover(); p != nil {
					err = fmt.Errorf("panic recovered: %v", p)
				}
			}()

			if ctx.Err() != nil {
				err = fmt.Errorf("context cancelled before job execution: %w", ctx.Err())
				return
			}
			err = jobFunc(ctx)
		}()

		if err == nil || !IsRetryableError(err) || ctx.Err() != nil {
			return err
		}
		if attempt == maxAttempts-1 {
			break
		}

		wait := time.Duration(1<<uint(attempt)) * 100 * time.Millisecond
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled during retry: %w", ctx.Err())
		case <-time.After(wait):
		}
	}

	if maxAttempts == 1 {
		return err
	}
	return fmt.Errorf("job failed after %d attempts: %w", maxAttempts, err)
}

// GetBatchID extracts the batch ID from context
func GetBatchID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(keyBatchID).(uuid.UUID)
	return id, ok
}

// GetMeetingID extracts the meeting being evaluated
func GetMeetingID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(keyMeetingID).(uuid.UUID)
	return id, ok
}

func GetMode(ctx context.Context) string {
	mode, _ := ctx.Value(keyMode).(string)
	return mode
}

// GetWorkerID returns -1 outside of a batch
func GetWorkerID(ctx context.Context) int {
	workerID, ok := ctx.Value(keyWorkerID).(int)
	if !ok {
		return -1
	}
	return workerID
}

func GetAttempt(ctx context.Context) int {
	attempt, _ := ctx.Value(keyAttempt).(int)
	return attempt
}

// GetJobMetadata extracts all job metadata from context
func GetJobMetadata(ctx context.Context) *JobMetadata {
	batchID, _ := GetBatchID(ctx)
	meetingID, _ := GetMeetingID(ctx)
	startTime, _ := ctx.Value(keyStartTime).(time.Time)

	return &JobMetadata{
		BatchID:   batchID,
		MeetingID: meetingID,
		Mode:      GetMode(ctx),
		WorkerID:  GetWorkerID(ctx),
		Attempt:   GetAttempt(ctx),
		StartTime: startTime,
	}
}

// IsRetryableError matches transient database failures. Callers pass only
// storage calls to Run; model requests are retried by the AI client.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	// Postgres lock errors
	if strings.Contains(errStr, "deadlock") ||
		strings.Contains(errStr, "40001") || // serialization_failure
		strings.Contains(errStr, "40p01") { // deadlock_detected
		return true
	}

	if strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "bad connection") {
		return true
	}

	return false
}
