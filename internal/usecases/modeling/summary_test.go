package modeling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-model-api/internal/domain"
)

func TestSummarize(t *testing.T) {
	summary := Summarize(testModel())

	assert.Equal(t, 24000.0, summary.TotalRevenue)
	// Canais 5000 + departamentos 10000 + COGS 1000 + despesas 2000
	assert.Equal(t, 18000.0, summary.TotalCosts)
	assert.Equal(t, 288000.0, summary.AnnualRevenue)
	assert.Equal(t, 216000.0, summary.AnnualCosts)
	assert.Equal(t, 6000.0, summary.MonthlyNetIncome)
	assert.Equal(t, 72000.0, summary.AnnualNetIncome)
	assert.Equal(t, 95.83, summary.GrossMargin)
	assert.Equal(t, 25.0, summary.NetMargin)
	assert.Equal(t, 2.0, summary.TotalFTE)
	assert.Equal(t, int64(200), summary.TotalLeads)
	assert.Equal(t, 25.0, summary.AvgCostPerLead)
	assert.Equal(t, int64(3000), summary.TotalSubscriptions)

	assert.Equal(t, domain.FunnelTotals{MQL: 200, SQL: 80, Deals: 28}, summary.Funnel)
	assert.Equal(t, domain.FunnelTotals{MQL: 2400, SQL: 960, Deals: 336}, summary.AnnualFunnel)

	t.Run("assinantes", func(t *testing.T) {
		subscribers := summary.Subscribers
		assert.Equal(t, int64(575), subscribers.Subscribers)
		assert.Equal(t, int64(600), subscribers.NewDeals)
		assert.Equal(t, int64(25), subscribers.ChurnedSubs)
		require.NotNil(t, subscribers.AvgChurnRate)
		// (0% + 10% + 5,17%) / 3
		assert.Equal(t, 5.06, *subscribers.AvgChurnRate)
		require.NotNil(t, subscribers.AvgNewDeals)
		assert.Equal(t, 200.0, *subscribers.AvgNewDeals)
	})

	t.Run("investimentos", func(t *testing.T) {
		assert.Equal(t, 300000.0, summary.Funding.TotalRaised)
		assert.Equal(t, 12.0, summary.Funding.TotalEquitySold)
		assert.Equal(t, 2800000.0, summary.Funding.LatestValuation)
	})
}

func TestSummarize_EmptyModel(t *testing.T) {
	summary := Summarize(domain.NewModel(1))

	assert.Zero(t, summary.TotalRevenue)
	assert.Zero(t, summary.GrossMargin)
	assert.Zero(t, summary.NetMargin)
	assert.Zero(t, summary.AvgCostPerLead)
	assert.Nil(t, summary.Subscribers.AvgChurnRate)
	assert.Nil(t, summary.Subscribers.AvgNewDeals)
}

func TestSummarize_FewPeriods(t *testing.T) {
	model := testModel()
	model.ActiveSubscribers = model.ActiveSubscribers[:2]

	summary := Summarize(model)
	assert.Equal(t, int64(290), summary.Subscribers.Subscribers)
	assert.Nil(t, summary.Subscribers.AvgChurnRate)
}

func TestChurnRate(t *testing.T) {
	tests := []struct {
		name     string
		period   domain.ActiveSubscriberPeriod
		expected float64
	}{
		{name: "sem existentes", period: domain.ActiveSubscriberPeriod{ChurnedSubs: 5}, expected: 0},
		{name: "dez por cento", period: domain.ActiveSubscriberPeriod{ExistingSubs: 100, ChurnedSubs: 10}, expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ChurnRate(tt.period).InexactFloat64())
		})
	}
}
