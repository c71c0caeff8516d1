package job

import (
	"context"
	"log/slog"

	"github.com/mentetech/blog-api/internal/service"
)

// AutoPublishJob is the timer-driven invocation of the publication trigger.
// It runs with trusted privilege: the role check applies only to the
// administrative HTTP path, this job is not reachable from untrusted input.
type AutoPublishJob struct {
	p service.Publisher
}

func NewAutoPublishJob(p service.Publisher) *AutoPublishJob {
	return &AutoPublishJob{p: p}
}

func (j *AutoPublishJob) Run() {
	ctx := context.Background()

	result, err := j.p.RunAutoPublish(ctx)
	if err != nil {
		slog.Error("scheduled auto-publish failed", "error", err)
		return
	}
	if result.PublishedCount > 0 {
		slog.Info("scheduled auto-publish", "published", result.PublishedCount)
	}
}
