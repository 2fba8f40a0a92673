package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%d"
	ChurchKeyPrefix      = "church:%d"
	ChurchListKey        = "churches:all"
	EventRosterKeyPrefix = "event:%d:roster"
)

const (
	UserTTL        = 5 * time.Minute
	ChurchTTL      = 10 * time.Minute
	ChurchListTTL  = 2 * time.Minute
	EventRosterTTL = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ChurchKey(churchID uint) string {
	return fmt.Sprintf(ChurchKeyPrefix, churchID)
}

func EventRosterKey(eventID uint) string {
	return fmt.Sprintf(EventRosterKeyPrefix, eventID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateChurch drops both the church detail and the public directory
// listing, which embeds the same data.
func InvalidateChurch(ctx context.Context, churchID uint) {
	Invalidate(ctx, ChurchKey(churchID))
	Invalidate(ctx, ChurchListKey)
}

func InvalidateEventRoster(ctx context.Context, eventID uint) {
	Invalidate(ctx, EventRosterKey(eventID))
}
