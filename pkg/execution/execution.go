// Package execution records function invocations for observability.
package execution

import (
	"context"
	"time"

	"github.com/google/uuid"

	shared "github.com/fitsage/server/pkg"
	"github.com/fitsage/server/pkg/types"
)

type ExecutionOptions struct {
	UserID      string
	TriggerType string
}

// LogStart creates a started execution record and returns its id. The id is
// returned even when the write fails so callers can keep logging with it.
func LogStart(ctx context.Context, db shared.Database, service string, opts ExecutionOptions) (string, error) {
	id := uuid.NewString()
	record := &types.ExecutionRecord{
		ExecutionId: id,
		Service:     service,
		UserId:      opts.UserID,
		TriggerType: opts.TriggerType,
		Status:      types.ExecutionStatusStarted,
		StartedAt:   time.Now().UTC(),
	}
	return id, db.SetExecution(ctx, record)
}

func LogSuccess(ctx context.Context, db shared.Database, id string, outputs interface{}) error {
	data := map[string]interface{}{
		"status":       types.ExecutionStatusSuccess,
		"completed_at": time.Now().UTC(),
	}
	if outputs != nil {
		data["outputs"] = outputs
	}
	return db.UpdateExecution(ctx, id, data)
}

func LogFailure(ctx context.Context, db shared.Database, id string, cause error, outputs interface{}) error {
	data := map[string]interface{}{
		"status":       types.ExecutionStatusFailed,
		"completed_at": time.Now().UTC(),
	}
	if cause != nil {
		data["error"] = cause.Error()
	}
	if outputs != nil {
		data["outputs"] = outputs
	}
	return db.UpdateExecution(ctx, id, data)
}
