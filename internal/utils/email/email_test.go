package email

import (
	"testing"

	"github.com/Dan9191/budget-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildBufferAlert(t *testing.T) {
	e := BuildBufferAlert("budget@localhost", "sam@example.com", "sam", models.BufferAlert{
		HouseholdID:        7,
		BufferStatus:       models.BufferStatusDanger,
		ExpectedMinimum:    835.01,
		Buffer:             1000,
		ExtraPaymentNeeded: 164.99,
		MinBalanceDate:     "2025-11-07",
	})

	assert.Equal(t, "budget@localhost", e.From)
	assert.Equal(t, []string{"sam@example.com"}, e.To)
	assert.Equal(t, "Budget Alert: balance projected Danger", e.Subject)

	body := string(e.Text)
	assert.Contains(t, body, "Dear sam,")
	assert.Contains(t, body, "835.01 on 2025-11-07")
	assert.Contains(t, body, "buffer of 1000.00")
	assert.Contains(t, body, "Adding 164.99")
}
