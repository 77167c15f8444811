package app

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

const testModeEnv = "SALES_TEST_MODE"

var (
	testMode     atomic.Bool
	testModeOnce sync.Once
)

func readTestMode() bool {
	on, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(testModeEnv)))
	return err == nil && on
}

// InTestMode reports whether the binaries should skip connecting to
// Postgres, Redis and the broker. SALES_TEST_MODE accepts any
// strconv.ParseBool value.
func InTestMode() bool {
	testModeOnce.Do(func() { testMode.Store(readTestMode()) })
	return testMode.Load()
}

// RefreshTestMode re-reads SALES_TEST_MODE after environment changes.
func RefreshTestMode() {
	testModeOnce.Do(func() {})
	testMode.Store(readTestMode())
}
