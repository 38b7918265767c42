package cache

import "strings"

const (
	GlobalKeyPrefix = "quizplayer"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// ScheduleKey is the cache key holding the serialized schedule of a video.
func ScheduleKey(videoID string) string {
	return GenerateCacheKey("schedule", "video", videoID)
}
