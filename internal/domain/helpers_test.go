package domain_test

import (
	"testing"
	"time"
)

func testTime(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
}
