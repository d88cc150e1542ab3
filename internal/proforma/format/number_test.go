package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	issued := time.Date(2026, time.March, 7, 10, 0, 0, 0, time.UTC)

	out, err := FormatNumber(DefaultNumberTemplate, issued, 12)
	assert.NoError(t, err)
	assert.Equal(t, "PI-202603-0012", out)

	out, err = FormatNumber("PI/{YY}/{SEQ}", issued, 7)
	assert.NoError(t, err)
	assert.Equal(t, "PI/26/7", out)
}

func TestFormatNumber_Invalid(t *testing.T) {
	issued := time.Now().UTC()

	_, err := FormatNumber("", issued, 1)
	assert.Error(t, err)

	_, err = FormatNumber(DefaultNumberTemplate, issued, 0)
	assert.Error(t, err)

	_, err = FormatNumber("PI-{NOPE}", issued, 1)
	assert.Error(t, err)
}
