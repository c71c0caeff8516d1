package queue

import (
	"github.com/mentetech/blog-api/internal/service"
)

type Queue struct {
	p service.Publisher
}

func NewQueue(p service.Publisher) *Queue {
	return &Queue{p: p}
}

const TaskTypePublishPost = "publish:post"

type PublishPostPayload struct {
	PostID string `json:"post_id"`
}
