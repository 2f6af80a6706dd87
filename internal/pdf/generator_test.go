package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/careops-billing/internal/model"
)

func TestGenerateInvoicePDF(t *testing.T) {
	hours, rate := 160.0, 20.0
	doc := model.InvoiceDocument{
		Invoice: model.InvoiceDetails{
			Invoice: model.Invoice{
				ID:                 "inv-1",
				InvoiceNumber:      "INV-2024-000001",
				BillingPeriodStart: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				BillingPeriodEnd:   time.Date(2024, 2, 11, 0, 0, 0, 0, time.UTC),
				Status:             model.InvoiceStatusDraft,
				TotalAmount:        3200,
				GeneratedAt:        time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC),
			},
			LineItems: []model.InvoiceLineItem{
				{LineType: model.SupportShared, Description: "Shared support (40h/week x 4 weeks)", Hours: &hours, Rate: &rate, Amount: 3200},
			},
		},
		Contract: model.Contract{
			ServiceUserName: "John Smith",
			Authority:       model.Reference{ID: "auth-1", Name: "City Council"},
			Placement:       &model.Placement{ServiceName: "Greendale House", RoomNumber: "Room 1"},
		},
	}

	content, err := NewGenerator().Generate(doc)
	require.NoError(t, err)
	assert.True(t, len(content) > 500)
	assert.Equal(t, "%PDF-", string(content[:5]))
}

func TestFormatters(t *testing.T) {
	v := 12.5
	assert.Equal(t, "£12.50", formatMoney(&v))
	assert.Equal(t, "", formatMoney(nil))
	assert.Equal(t, "12.50", formatOptional(&v, 2))
	assert.Equal(t, "unplaced", placementLabel(nil))
	assert.Equal(t, "-", formatDate(time.Time{}))
	assert.Equal(t, "15/01/2024", formatDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
}
