package modeling

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-model-api/internal/domain"
)

func sequentialIDs() func() (string, error) {
	next := 0
	return func() (string, error) {
		next++
		return fmt.Sprintf("id%d", next), nil
	}
}

func newTestReducer() *Reducer {
	return &Reducer{newID: sequentialIDs()}
}

func testModel() *domain.Model {
	model := domain.NewModel(1)
	model.Add(domain.MarketingChannel{ID: "ch1", OwnerID: 1, Name: "Inbound", MonthlyBudget: 5000, CostPerLead: 25, LeadsGenerated: 200})
	model.Add(domain.FunnelConversion{ID: "fn1", OwnerID: 1, ChannelID: "ch1", Channel: "Inbound", MQL: 200, MQLToSQLRate: 40, SQL: 80, SQLToDealRate: 35, Deals: 28})
	model.Add(domain.Subscription{ID: "sb1", OwnerID: 1, Tier: "Basic", MonthlyPrice: 8, SubscriberCount: 3000, MRR: 24000})
	model.Add(domain.ActiveSubscriberPeriod{ID: "p0", OwnerID: 1, Position: 0, Month: "March", NewDeals: 100, EndingSubs: 100})
	model.Add(domain.ActiveSubscriberPeriod{ID: "p1", OwnerID: 1, Position: 1, Month: "April", ExistingSubs: 100, NewDeals: 200, ChurnedSubs: 10, EndingSubs: 290})
	model.Add(domain.ActiveSubscriberPeriod{ID: "p2", OwnerID: 1, Position: 2, Month: "May", ExistingSubs: 290, NewDeals: 300, ChurnedSubs: 15, EndingSubs: 575})
	model.Add(domain.COGS{ID: "cg1", OwnerID: 1, Category: "Hosting", MonthlyCost: 1000})
	model.Add(domain.Department{ID: "dp1", OwnerID: 1, Name: "Engineering", FTE: 2, Salary: 60000, MonthlyTotal: 10000})
	model.Add(domain.OperatingExpense{ID: "op1", OwnerID: 1, Category: "Office", MonthlyCost: 2000})
	model.Add(domain.FundingRound{ID: "fr1", OwnerID: 1, Round: "Seed", AmountRaised: 300000, ValuationPre: 2500000, ValuationPost: 2800000, EquitySold: 12})
	return model
}

func endings(model *domain.Model) []int64 {
	result := []int64{}
	for _, p := range model.ActiveSubscribers {
		result = append(result, p.EndingSubs)
	}
	return result
}

func changeIDs(changes []domain.Change) []string {
	ids := []string{}
	for _, c := range changes {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestReducer_EditField(t *testing.T) {
	tests := []struct {
		name     string
		edit     EditField
		validate func(t *testing.T, model *domain.Model, changes []domain.Change)
	}{
		{
			name: "custo por lead atualiza canal e funil vinculado",
			edit: EditField{Kind: domain.KindMarketingChannel, ID: "ch1", Field: "costPerLead", Value: "50"},
			validate: func(t *testing.T, model *domain.Model, changes []domain.Change) {
				assert.Equal(t, int64(100), model.MarketingChannels[0].LeadsGenerated)
				assert.Equal(t, int64(100), model.FunnelConversions[0].MQL)
				assert.Equal(t, int64(40), model.FunnelConversions[0].SQL)
				assert.Equal(t, int64(14), model.FunnelConversions[0].Deals)
				assert.Equal(t, []string{"ch1", "fn1"}, changeIDs(changes))
			},
		},
		{
			name: "renomear canal renomeia o funil",
			edit: EditField{Kind: domain.KindMarketingChannel, ID: "ch1", Field: "name", Value: "Orgânico"},
			validate: func(t *testing.T, model *domain.Model, changes []domain.Change) {
				assert.Equal(t, "Orgânico", model.FunnelConversions[0].Channel)
				assert.Equal(t, []string{"ch1", "fn1"}, changeIDs(changes))
			},
		},
		{
			name: "cancelados no primeiro período propagam a cascata",
			edit: EditField{Kind: domain.KindActiveSubscribers, ID: "p0", Field: "churnedSubs", Value: "20"},
			validate: func(t *testing.T, model *domain.Model, changes []domain.Change) {
				assert.Equal(t, []int64{80, 270, 555}, endings(model))
				assert.Equal(t, int64(80), model.ActiveSubscribers[1].ExistingSubs)
				assert.Equal(t, []string{"p0", "p1", "p2"}, changeIDs(changes))
			},
		},
		{
			name: "edição no último período não toca os anteriores",
			edit: EditField{Kind: domain.KindActiveSubscribers, ID: "p2", Field: "newDeals", Value: "400"},
			validate: func(t *testing.T, model *domain.Model, changes []domain.Change) {
				assert.Equal(t, []int64{100, 290, 675}, endings(model))
				assert.Equal(t, []string{"p2"}, changeIDs(changes))
			},
		},
		{
			name: "existentes do primeiro período são editáveis",
			edit: EditField{Kind: domain.KindActiveSubscribers, ID: "p0", Field: "existing_subs", Value: "50"},
			validate: func(t *testing.T, model *domain.Model, changes []domain.Change) {
				assert.Equal(t, []int64{150, 340, 625}, endings(model))
			},
		},
		{
			name: "taxa do funil vinculado continua editável",
			edit: EditField{Kind: domain.KindFunnelConversion, ID: "fn1", Field: "mqlToSqlRate", Value: "50"},
			validate: func(t *testing.T, model *domain.Model, changes []domain.Change) {
				assert.Equal(t, int64(200), model.FunnelConversions[0].MQL)
				assert.Equal(t, int64(100), model.FunnelConversions[0].SQL)
				assert.Equal(t, int64(35), model.FunnelConversions[0].Deals)
				assert.Equal(t, []string{"fn1"}, changeIDs(changes))

				_, stale := Normalize(model)
				assert.Empty(t, stale)
			},
		},
		{
			name: "custo sem derivados gera uma única alteração",
			edit: EditField{Kind: domain.KindCOGS, ID: "cg1", Field: "monthlyCost", Value: "£1,500"},
			validate: func(t *testing.T, model *domain.Model, changes []domain.Change) {
				assert.Equal(t, 1500.0, model.COGS[0].MonthlyCost)
				assert.Len(t, changes, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := testModel()
			model, changes, err := newTestReducer().Reduce(original, tt.edit)
			require.NoError(t, err)
			tt.validate(t, model, changes)

			// O snapshot de entrada não é alterado
			assert.Equal(t, testModel(), original)
		})
	}
}

func TestReducer_EditFieldErrors(t *testing.T) {
	tests := []struct {
		name     string
		edit     Edit
		expected error
	}{
		{
			name:     "coleção desconhecida",
			edit:     EditField{Kind: "payroll", ID: "x", Field: "name", Value: "a"},
			expected: ErrUnknownKind,
		},
		{
			name:     "registro inexistente",
			edit:     EditField{Kind: domain.KindCOGS, ID: "nope", Field: "category", Value: "a"},
			expected: ErrRecordNotFound,
		},
		{
			name:     "campo derivado",
			edit:     EditField{Kind: domain.KindMarketingChannel, ID: "ch1", Field: "leadsGenerated", Value: "999"},
			expected: ErrDerivedField,
		},
		{
			name:     "existentes fora do primeiro período",
			edit:     EditField{Kind: domain.KindActiveSubscribers, ID: "p1", Field: "existingSubs", Value: "5"},
			expected: ErrDerivedField,
		},
		{
			name:     "mql de funil vinculado a canal",
			edit:     EditField{Kind: domain.KindFunnelConversion, ID: "fn1", Field: "mql", Value: "999"},
			expected: ErrDerivedField,
		},
		{
			name:     "nome do canal em funil vinculado",
			edit:     EditField{Kind: domain.KindFunnelConversion, ID: "fn1", Field: "channel", Value: "Outro"},
			expected: ErrDerivedField,
		},
		{
			name:     "campo desconhecido",
			edit:     EditField{Kind: domain.KindDepartment, ID: "dp1", Field: "bonus", Value: "5"},
			expected: ErrUnknownField,
		},
		{
			name:     "exclusão de registro inexistente",
			edit:     DeleteRow{Kind: domain.KindCOGS, ID: "nope"},
			expected: ErrRecordNotFound,
		},
		{
			name:     "inclusão em coleção desconhecida",
			edit:     AddRow{Kind: "payroll"},
			expected: ErrUnknownKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := testModel()
			model, changes, err := newTestReducer().Reduce(original, tt.edit)

			assert.ErrorIs(t, err, tt.expected)
			assert.True(t, IsEditError(err))
			assert.Empty(t, changes)
			assert.Same(t, original, model)
		})
	}
}

func TestReducer_EditUnlinkedFunnelRow(t *testing.T) {
	model := testModel()
	model.Add(domain.FunnelConversion{ID: "fn2", OwnerID: 1, Position: 1, Channel: "Eventos", MQLToSQLRate: 40, SQLToDealRate: 35})

	next, changes, err := newTestReducer().Reduce(model, EditField{Kind: domain.KindFunnelConversion, ID: "fn2", Field: "mql", Value: "200"})
	require.NoError(t, err)

	assert.Equal(t, int64(200), next.FunnelConversions[1].MQL)
	assert.Equal(t, int64(28), next.FunnelConversions[1].Deals)
	assert.Equal(t, []string{"fn2"}, changeIDs(changes))

	_, stale := Normalize(next)
	assert.Empty(t, stale)
}

func TestReducer_EditIsIdempotent(t *testing.T) {
	reducer := newTestReducer()
	edit := EditField{Kind: domain.KindActiveSubscribers, ID: "p0", Field: "churnedSubs", Value: "20"}

	once, _, err := reducer.Reduce(testModel(), edit)
	require.NoError(t, err)

	twice, changes, err := reducer.Reduce(once, edit)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	// Só o próprio registro é regravado, a cascata já estava consistente
	assert.Equal(t, []string{"p0"}, changeIDs(changes))
}

func TestReducer_AddRow(t *testing.T) {
	t.Run("novo canal cria linha de funil vinculada", func(t *testing.T) {
		model, changes, err := newTestReducer().Reduce(testModel(), AddRow{
			Kind:   domain.KindMarketingChannel,
			Values: map[string]string{"name": "Eventos", "monthlyBudget": "1000", "costPerLead": "10"},
		})
		require.NoError(t, err)

		require.Len(t, model.MarketingChannels, 2)
		channel := model.MarketingChannels[1]
		assert.Equal(t, "id1", channel.ID)
		assert.Equal(t, 1, channel.Position)
		assert.Equal(t, int64(100), channel.LeadsGenerated)

		require.Len(t, model.FunnelConversions, 2)
		funnel := model.FunnelConversions[1]
		assert.Equal(t, "id1", funnel.ChannelID)
		assert.Equal(t, "Eventos", funnel.Channel)
		assert.Equal(t, float64(DefaultMQLToSQLRate), funnel.MQLToSQLRate)
		assert.Equal(t, int64(40), funnel.SQL)
		assert.Equal(t, int64(14), funnel.Deals)

		assert.Equal(t, []string{"id1", "id2"}, changeIDs(changes))
	})

	t.Run("novo período continua a série", func(t *testing.T) {
		model, changes, err := newTestReducer().Reduce(testModel(), AddRow{
			Kind:   domain.KindActiveSubscribers,
			Values: map[string]string{"newDeals": "50", "churnedSubs": "25"},
		})
		require.NoError(t, err)

		period := model.ActiveSubscribers[3]
		assert.Equal(t, "June", period.Month)
		assert.Equal(t, int64(575), period.ExistingSubs)
		assert.Equal(t, int64(600), period.EndingSubs)
		assert.Len(t, changes, 1)
	})

	t.Run("novo período não aceita existentes", func(t *testing.T) {
		_, _, err := newTestReducer().Reduce(testModel(), AddRow{
			Kind:   domain.KindActiveSubscribers,
			Values: map[string]string{"existing_subs": "10"},
		})
		assert.ErrorIs(t, err, ErrDerivedField)
	})

	t.Run("valores com campo derivado são rejeitados", func(t *testing.T) {
		_, _, err := newTestReducer().Reduce(testModel(), AddRow{
			Kind:   domain.KindSubscription,
			Values: map[string]string{"tier": "Gold", "mrr": "10"},
		})
		assert.ErrorIs(t, err, ErrDerivedField)
	})

	t.Run("linha vazia", func(t *testing.T) {
		model, changes, err := newTestReducer().Reduce(testModel(), AddRow{Kind: domain.KindOperatingExpense})
		require.NoError(t, err)
		assert.Len(t, model.OperatingExpenses, 2)
		assert.Equal(t, 1, model.OperatingExpenses[1].OwnerID)
		assert.Len(t, changes, 1)
	})
}

func TestReducer_DeleteRow(t *testing.T) {
	tests := []struct {
		name     string
		edit     DeleteRow
		validate func(t *testing.T, model *domain.Model, changes []domain.Change)
	}{
		{
			name: "canal remove o funil vinculado",
			edit: DeleteRow{Kind: domain.KindMarketingChannel, ID: "ch1"},
			validate: func(t *testing.T, model *domain.Model, changes []domain.Change) {
				assert.Empty(t, model.MarketingChannels)
				assert.Empty(t, model.FunnelConversions)
				require.Len(t, changes, 2)
				assert.True(t, changes[0].Delete)
				assert.Equal(t, domain.KindFunnelConversion, changes[1].Kind)
				assert.True(t, changes[1].Delete)
			},
		},
		{
			name: "período do meio refaz a cascata",
			edit: DeleteRow{Kind: domain.KindActiveSubscribers, ID: "p1"},
			validate: func(t *testing.T, model *domain.Model, changes []domain.Change) {
				assert.Equal(t, []int64{100, 385}, endings(model))
				assert.Equal(t, int64(100), model.ActiveSubscribers[1].ExistingSubs)
				assert.Equal(t, []string{"p1", "p2"}, changeIDs(changes))
			},
		},
		{
			name: "primeiro período mantém os seguintes",
			edit: DeleteRow{Kind: domain.KindActiveSubscribers, ID: "p0"},
			validate: func(t *testing.T, model *domain.Model, changes []domain.Change) {
				assert.Equal(t, []int64{290, 575}, endings(model))
				assert.Len(t, changes, 1)
			},
		},
		{
			name: "rodada de investimento",
			edit: DeleteRow{Kind: domain.KindFundingRound, ID: "fr1"},
			validate: func(t *testing.T, model *domain.Model, changes []domain.Change) {
				assert.Empty(t, model.FundingRounds)
				assert.Len(t, changes, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, changes, err := newTestReducer().Reduce(testModel(), tt.edit)
			require.NoError(t, err)
			tt.validate(t, model, changes)
		})
	}
}

func TestReducer_SyncFunnel(t *testing.T) {
	model, changes, err := newTestReducer().Reduce(testModel(), SyncFunnel{})
	require.NoError(t, err)

	for _, p := range model.ActiveSubscribers {
		assert.Equal(t, int64(28), p.NewDeals)
	}
	assert.Equal(t, int64(0), model.ActiveSubscribers[0].ExistingSubs)
	assert.Equal(t, []int64{28, 46, 59}, endings(model))
	assert.Len(t, changes, 3)
}

func TestNormalize(t *testing.T) {
	t.Run("modelo consistente", func(t *testing.T) {
		_, changes := Normalize(testModel())
		assert.Empty(t, changes)
	})

	t.Run("derivados defasados", func(t *testing.T) {
		stale := testModel()
		stale.MarketingChannels[0].LeadsGenerated = 1
		stale.ActiveSubscribers[2].ExistingSubs = 0

		model, changes := Normalize(stale)
		assert.Equal(t, int64(200), model.MarketingChannels[0].LeadsGenerated)
		assert.Equal(t, []int64{100, 290, 575}, endings(model))
		assert.Equal(t, []string{"ch1", "p2"}, changeIDs(changes))
	})
}

func TestMergeChanges(t *testing.T) {
	first := domain.UpsertChange(domain.COGS{ID: "c1", MonthlyCost: 1})
	second := domain.UpsertChange(domain.COGS{ID: "c2", MonthlyCost: 2})
	latest := domain.UpsertChange(domain.COGS{ID: "c1", MonthlyCost: 3})

	merged := mergeChanges([]domain.Change{first, second}, []domain.Change{latest})

	require.Len(t, merged, 2)
	assert.Equal(t, latest, merged[0])
	assert.Equal(t, second, merged[1])
}
