package service

import (
	"context"
	"time"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/domain"
	"github.com/google/uuid"
)

// NotificationsService provides the notifications feed.
type NotificationsService interface {
	Feed(ctx context.Context) []domain.Activity
}

type notificationsServiceImpl struct {
	now func() time.Time
}

// NewNotificationsService creates a NotificationsService. now may be nil.
func NewNotificationsService(now func() time.Time) NotificationsService {
	if now == nil {
		now = time.Now
	}
	return &notificationsServiceImpl{now: now}
}

var (
	unicornActivityID = uuid.MustParse("68f126b0-1ceb-4a33-88be-d90fa7109eee")
	worfReplyID       = uuid.MustParse("26e12864-1c26-5c3a-9658-97a10f8fea67")
)

// Feed returns a fixed sample until notifications are stored in the database.
func (s *notificationsServiceImpl) Feed(ctx context.Context) []domain.Activity {
	now := s.now().UTC()
	created := now.Add(-48 * time.Hour)
	expires := now.Add(5 * 24 * time.Hour)
	replyTo := unicornActivityID

	return []domain.Activity{
		{
			UUID:         unicornActivityID,
			Handle:       "andrewbrown",
			Message:      "I am a white unicorn",
			CreatedAt:    created,
			ExpiresAt:    &expires,
			LikesCount:   5,
			RepliesCount: 1,
			RepostsCount: 0,
			Replies: []domain.Activity{
				{
					UUID:                worfReplyID,
					ReplyToActivityUUID: &replyTo,
					Handle:              "Worf",
					Message:             "This post has no honor!",
					CreatedAt:           created,
				},
			},
		},
	}
}
