package queue

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
)

// HandlePublishPostTask promotes a single post when its scheduled time
// arrives. The transition is conditional inside the store, so a post that was
// edited out of AGENDADO, rescheduled or already published is a no-op here.
func (q *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	published, err := q.p.PublishDue(ctx, payload.PostID)
	if err != nil {
		return err
	}
	if !published {
		log.Printf("Publish task for post %s had nothing to do", payload.PostID)
	}
	return nil
}
