package common

import (
	"fmt"
	"time"
)

func GetResponseTime(init time.Time) string {
	timeDiff := time.Since(init).Milliseconds()
	return fmt.Sprintf("%dms", timeDiff)
}

// VehicleListCacheKey builds the per-owner cache key for the vehicle list.
func VehicleListCacheKey(prefix, ownerID string) string {
	return fmt.Sprintf("%s:%s", prefix, ownerID)
}
