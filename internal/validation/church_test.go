package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateChurchName(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateChurchName("Grace Fellowship"))
	assert.Error(t, ValidateChurchName(""))
	assert.Error(t, ValidateChurchName("  "))
	assert.Error(t, ValidateChurchName(strings.Repeat("x", 201)))
}

func TestValidateTitle(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateTitle("Easter Service"))
	assert.Error(t, ValidateTitle(""))
	assert.Error(t, ValidateTitle(strings.Repeat("x", 201)))
}

func TestValidateEventWindow(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 4, 5, 9, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateEventWindow(start, start.Add(time.Hour)))
	assert.Error(t, ValidateEventWindow(start, start), "zero-length window")
	assert.Error(t, ValidateEventWindow(start.Add(time.Hour), start), "inverted window")
	assert.Error(t, ValidateEventWindow(time.Time{}, start))
	assert.Error(t, ValidateEventWindow(start, time.Time{}))
}
