package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/app"
	_ "github.com/ashrafhany/Real-Time-Sales-Analytics-System/testing"
)

func TestMainSkipsStartupInTestMode(t *testing.T) {
	app.RefreshTestMode()
	assert.True(t, app.InTestMode())
	assert.NotPanics(t, main)
}
