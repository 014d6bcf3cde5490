package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bantamhq/studiodash/internal/backend"
)

func TestMissingFields(t *testing.T) {
	assert.True(t, missingFields(backend.InitRequest{ProjectCode: "Wing-It"}))
	assert.True(t, missingFields(backend.InitRequest{BasePath: "/projects", ProjectCode: " "}))
	assert.False(t, missingFields(backend.InitRequest{BasePath: "/projects", ProjectCode: "Wing-It"}))
}
