package common

import (
	"strings"
	"testing"
	"time"
)

func TestGetResponseTime(t *testing.T) {
	start := time.Now().Add(-25 * time.Millisecond)

	got := GetResponseTime(start)
	if !strings.HasSuffix(got, "ms") {
		t.Errorf("Expected ms suffix, got %q", got)
	}
	if got == "0ms" {
		t.Errorf("Expected elapsed time to register, got %q", got)
	}
}

func TestVehicleListCacheKey(t *testing.T) {
	if got := VehicleListCacheKey("vehicle_list", "owner-1"); got != "vehicle_list:owner-1" {
		t.Errorf("VehicleListCacheKey = %q", got)
	}
}
