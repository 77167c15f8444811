// Package testing switches the binaries into test mode when imported for
// side effects from a _test.go file.
package testing

import (
	"os"
	"sync"
)

var once sync.Once

func ensureTestMode() {
	once.Do(func() {
		_ = os.Setenv("SALES_TEST_MODE", "1")
	})
}

func init() {
	ensureTestMode()
}
