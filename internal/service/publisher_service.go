package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mentetech/blog-api/internal/repository"
	"github.com/mentetech/blog-api/internal/transfer"
)

// Publisher owns the automated half of the post lifecycle: promoting
// scheduled posts whose time has come. Both entry points are idempotent, so
// retry-by-reinvocation is the only recovery path needed.
type Publisher interface {
	RunAutoPublish(ctx context.Context) (*transfer.AutoPublishResult, error)
	PublishDue(ctx context.Context, postID string) (bool, error)
}

type publisher struct {
	pr repository.PostRepository
}

func NewPublisher(pr repository.PostRepository) Publisher {
	return &publisher{pr: pr}
}

// RunAutoPublish promotes every overdue scheduled post in one atomic pass.
// On failure nothing is applied and the same candidate set is retried on the
// next invocation.
func (p *publisher) RunAutoPublish(ctx context.Context) (*transfer.AutoPublishResult, error) {
	published, err := p.pr.AutoPublishScheduled(ctx)
	if err != nil {
		slog.Error("auto-publish run failed", "error", err)
		return nil, fmt.Errorf("auto-publish failed: %w", err)
	}

	result := &transfer.AutoPublishResult{
		PublishedCount: len(published),
		PublishedPosts: published,
		Timestamp:      time.Now(),
	}

	if result.PublishedCount > 0 {
		titles := make([]string, 0, len(published))
		for _, post := range published {
			titles = append(titles, post.Titulo)
		}
		slog.Info("auto-publish completed", "count", result.PublishedCount, "posts", titles)
	}

	return result, nil
}

// PublishDue promotes a single post if it is still scheduled and overdue.
// A false return means there was nothing to do, not a failure.
func (p *publisher) PublishDue(ctx context.Context, postID string) (bool, error) {
	published, err := p.pr.PublishDue(ctx, postID)
	if err != nil {
		return false, fmt.Errorf("publish of post %s failed: %w", postID, err)
	}
	if published {
		slog.Info("scheduled post published", "id", postID)
	}
	return published, nil
}
