package providers

import (
	"bytes"
	"strings"
	"talkmigrate/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *models.Report {
	r := &models.Report{
		Stories:       models.CollectionReport{Read: 4, Migrated: 2, Skipped: 1, Dropped: 1},
		Comments:      models.CollectionReport{Read: 10, Migrated: 9, Dropped: 1},
		URLsRewritten: 3,
	}
	r.AddDangling(&models.DanglingReference{Entity: "comment", RecordID: "c1", Field: "asset_id", Target: "story s9"})
	return r
}

func TestConfirmProvider_Answers(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		cp := NewConfirmProviderWithIO(strings.NewReader(tt.input), &out, false)
		ok, err := cp.Confirm(sampleReport())
		require.NoError(t, err)
		assert.Equal(t, tt.want, ok, "input %q", tt.input)
		assert.Contains(t, out.String(), "[y/N]")
	}
}

func TestConfirmProvider_AssumeYesSkipsPrompt(t *testing.T) {
	var out bytes.Buffer
	cp := NewConfirmProviderWithIO(strings.NewReader(""), &out, true)
	ok, err := cp.Confirm(sampleReport())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotContains(t, out.String(), "[y/N]")
}

func TestRenderReport(t *testing.T) {
	s := RenderReport(sampleReport())
	assert.Contains(t, s, "read 4, migrated 2, skipped 1, dropped 1")
	assert.Contains(t, s, "rewritten 3, redirected 0")
	assert.Contains(t, s, "1 dangling references")
}
