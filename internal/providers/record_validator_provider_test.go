package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type validatedRecord struct {
	ID        string    `validate:"required"`
	URL       string    `validate:"required,url"`
	Status    string    `validate:"oneof=APPROVED NONE"`
	CreatedAt time.Time `validate:"required"`
}

func TestRecordValidator_ValidateStruct(t *testing.T) {
	v := NewRecordValidator()

	ok := validatedRecord{ID: "s1", URL: "https://example.com/a", Status: "APPROVED", CreatedAt: time.Now()}
	assert.NoError(t, v.ValidateStruct(ok))

	tests := []struct {
		name   string
		mutate func(r *validatedRecord)
	}{
		{"missing id", func(r *validatedRecord) { r.ID = "" }},
		{"relative url", func(r *validatedRecord) { r.URL = "/a" }},
		{"unknown status", func(r *validatedRecord) { r.Status = "ACCEPTED" }},
		{"zero time", func(r *validatedRecord) { r.CreatedAt = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ok
			tt.mutate(&r)
			err := v.ValidateStruct(r)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}
