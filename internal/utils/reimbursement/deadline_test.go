package reimbursement_test

import (
	"testing"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	"github.com/SscSPs/travel_allowance_app/internal/utils/reimbursement"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSubmissionDeadline(t *testing.T) {
	policy := reimbursement.DefaultDeadlinePolicy(time.UTC)
	departure := time.Date(2025, 3, 17, 8, 0, 0, 0, time.UTC) // Monday

	tests := []struct {
		name     string
		air      bool
		holidays []domain.Holiday
		want     time.Time
	}{
		{"five business days", false, nil, date(2025, 3, 10)},
		{"holiday pushes deadline back", false, []domain.Holiday{{Date: date(2025, 3, 12), Description: "Recesso"}}, date(2025, 3, 7)},
		{"air tickets need ten business days", true, nil, date(2025, 3, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.SubmissionDeadline(departure, tt.air, tt.holidays))
		})
	}
}

func TestIsLate(t *testing.T) {
	policy := reimbursement.DefaultDeadlinePolicy(time.UTC)
	departure := time.Date(2025, 3, 17, 8, 0, 0, 0, time.UTC)

	assert.False(t, policy.IsLate(time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC), departure, false, nil))
	assert.True(t, policy.IsLate(time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC), departure, false, nil))
	assert.True(t, policy.IsLate(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), departure, true, nil))
}
