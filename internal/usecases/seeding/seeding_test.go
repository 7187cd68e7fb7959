package seeding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-model-api/internal/domain"
	"github.com/vfg2006/business-model-api/internal/usecases/modeling"
)

func TestDefaultModel(t *testing.T) {
	seeder, err := NewSeeder()
	require.NoError(t, err)

	model, err := seeder.DefaultModel(42)
	require.NoError(t, err)

	assert.Len(t, model.MarketingChannels, 4)
	assert.Len(t, model.MarketingTeam, 3)
	assert.Len(t, model.FunnelConversions, 4)
	assert.Len(t, model.Subscriptions, 4)
	assert.Len(t, model.ActiveSubscribers, 3)
	assert.Len(t, model.COGS, 3)
	assert.Len(t, model.Departments, 6)
	assert.Len(t, model.OperatingExpenses, 5)
	assert.Len(t, model.FundingRounds, 3)

	for _, record := range model.AllRecords() {
		assert.Equal(t, 42, record.RecordOwner())
		assert.NotEmpty(t, record.RecordID())
	}
}

func TestDefaultModel_DerivedFields(t *testing.T) {
	seeder, err := NewSeeder()
	require.NoError(t, err)

	model, err := seeder.DefaultModel(1)
	require.NoError(t, err)

	t.Run("leads dos canais", func(t *testing.T) {
		leads := []int64{}
		for _, c := range model.MarketingChannels {
			leads = append(leads, c.LeadsGenerated)
		}
		assert.Equal(t, []int64{200, 100, 100, 200}, leads)
	})

	t.Run("funil vinculado aos canais", func(t *testing.T) {
		inbound := model.FunnelConversions[0]
		assert.Equal(t, model.MarketingChannels[0].ID, inbound.ChannelID)
		assert.Equal(t, int64(200), inbound.MQL)
		assert.Equal(t, int64(80), inbound.SQL)
		assert.Equal(t, int64(28), inbound.Deals)
	})

	t.Run("cascata de assinantes", func(t *testing.T) {
		ending := []int64{}
		for _, p := range model.ActiveSubscribers {
			ending = append(ending, p.EndingSubs)
		}
		assert.Equal(t, []int64{100, 290, 575}, ending)
		assert.Equal(t, int64(100), model.ActiveSubscribers[1].ExistingSubs)
		assert.Equal(t, int64(290), model.ActiveSubscribers[2].ExistingSubs)
	})

	t.Run("equipe recalculada pela fórmula", func(t *testing.T) {
		assert.Equal(t, 3333.33, model.MarketingTeam[0].MonthlyTotal)
		assert.Equal(t, 1041.67, model.MarketingTeam[2].MonthlyTotal)
	})

	t.Run("departamentos com encargos", func(t *testing.T) {
		assert.Equal(t, 10000.0, model.Departments[0].MonthlyTotal)
		assert.Equal(t, 18000.0, model.Departments[3].MonthlyTotal)
	})

	t.Run("valuation pós-money", func(t *testing.T) {
		assert.Equal(t, 2800000.0, model.FundingRounds[0].ValuationPost)
		assert.Equal(t, 25000000.0, model.FundingRounds[2].ValuationPost)
	})

	t.Run("modelo inicial já é consistente", func(t *testing.T) {
		_, changes := modeling.Normalize(model)
		assert.Empty(t, changes)
	})
}

func TestDefaultModel_FreshIDs(t *testing.T) {
	seeder, err := NewSeeder()
	require.NoError(t, err)

	first, err := seeder.DefaultModel(1)
	require.NoError(t, err)
	second, err := seeder.DefaultModel(1)
	require.NoError(t, err)

	ids := map[string]struct{}{}
	for _, model := range []*domain.Model{first, second} {
		for _, record := range model.AllRecords() {
			_, duplicated := ids[record.RecordID()]
			assert.False(t, duplicated, "id repetido: %s", record.RecordID())
			ids[record.RecordID()] = struct{}{}
		}
	}
}

func TestParseDefaults_Invalid(t *testing.T) {
	_, err := ParseDefaults([]byte("[[marketing_channels]\nname = "))
	assert.Error(t, err)
}
