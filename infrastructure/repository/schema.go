package repository

import (
	"database/sql"
	"fmt"
	"reflect"

	"github.com/vfg2006/business-model-api/internal/domain"
)

// column liga uma coluna da tabela ao campo correspondente do registro.
// ref devolve um ponteiro para o campo, usado tanto no Scan quanto como argumento de escrita.
type column[T any] struct {
	name string
	ref  func(*T) any
}

// table é o mapeamento declarativo de uma coleção. id, user_id e position são comuns a todas.
type table[T domain.Record] struct {
	name    string
	columns []column[T]
}

// tableMapper esconde o tipo concreto do registro para o repositório
type tableMapper interface {
	tableName() string
	columnNames() []string
	updatableColumns() []string
	values(record domain.Record) ([]any, error)
	scan(rows *sql.Rows) (domain.Record, error)
}

func (t table[T]) tableName() string {
	return t.name
}

func (t table[T]) columnNames() []string {
	names := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		names = append(names, c.name)
	}
	return names
}

// updatableColumns são as colunas reescritas num upsert; id e user_id nunca mudam
func (t table[T]) updatableColumns() []string {
	names := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		if c.name == "id" || c.name == "user_id" {
			continue
		}
		names = append(names, c.name)
	}
	return names
}

func (t table[T]) values(record domain.Record) ([]any, error) {
	typed, ok := record.(T)
	if !ok {
		return nil, fmt.Errorf("registro %T não pertence à tabela %s", record, t.name)
	}

	values := make([]any, 0, len(t.columns))
	for _, c := range t.columns {
		values = append(values, reflect.ValueOf(c.ref(&typed)).Elem().Interface())
	}
	return values, nil
}

func (t table[T]) scan(rows *sql.Rows) (domain.Record, error) {
	var record T

	dest := make([]any, 0, len(t.columns))
	for _, c := range t.columns {
		dest = append(dest, c.ref(&record))
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("erro ao escanear %s: %w", t.name, err)
	}

	return record, nil
}

var tables = map[domain.EntityKind]tableMapper{
	domain.KindMarketingChannel: table[domain.MarketingChannel]{
		name: "marketing_channels",
		columns: []column[domain.MarketingChannel]{
			{"id", func(r *domain.MarketingChannel) any { return &r.ID }},
			{"user_id", func(r *domain.MarketingChannel) any { return &r.OwnerID }},
			{"position", func(r *domain.MarketingChannel) any { return &r.Position }},
			{"name", func(r *domain.MarketingChannel) any { return &r.Name }},
			{"monthly_budget", func(r *domain.MarketingChannel) any { return &r.MonthlyBudget }},
			{"cost_per_lead", func(r *domain.MarketingChannel) any { return &r.CostPerLead }},
			{"leads_generated", func(r *domain.MarketingChannel) any { return &r.LeadsGenerated }},
			{"notes", func(r *domain.MarketingChannel) any { return &r.Notes }},
		},
	},
	domain.KindMarketingTeam: table[domain.Employee]{
		name: "marketing_team",
		columns: []column[domain.Employee]{
			{"id", func(r *domain.Employee) any { return &r.ID }},
			{"user_id", func(r *domain.Employee) any { return &r.OwnerID }},
			{"position", func(r *domain.Employee) any { return &r.Position }},
			{"role", func(r *domain.Employee) any { return &r.Role }},
			{"fte", func(r *domain.Employee) any { return &r.FTE }},
			{"salary_per_fte", func(r *domain.Employee) any { return &r.SalaryPerFTE }},
			{"monthly_total", func(r *domain.Employee) any { return &r.MonthlyTotal }},
		},
	},
	domain.KindFunnelConversion: table[domain.FunnelConversion]{
		name: "funnel_conversions",
		columns: []column[domain.FunnelConversion]{
			{"id", func(r *domain.FunnelConversion) any { return &r.ID }},
			{"user_id", func(r *domain.FunnelConversion) any { return &r.OwnerID }},
			{"position", func(r *domain.FunnelConversion) any { return &r.Position }},
			{"channel_id", func(r *domain.FunnelConversion) any { return &r.ChannelID }},
			{"channel", func(r *domain.FunnelConversion) any { return &r.Channel }},
			{"mql", func(r *domain.FunnelConversion) any { return &r.MQL }},
			{"mql_to_sql_rate", func(r *domain.FunnelConversion) any { return &r.MQLToSQLRate }},
			{"sql_leads", func(r *domain.FunnelConversion) any { return &r.SQL }},
			{"sql_to_deal_rate", func(r *domain.FunnelConversion) any { return &r.SQLToDealRate }},
			{"deals", func(r *domain.FunnelConversion) any { return &r.Deals }},
		},
	},
	domain.KindSubscription: table[domain.Subscription]{
		name: "subscriptions",
		columns: []column[domain.Subscription]{
			{"id", func(r *domain.Subscription) any { return &r.ID }},
			{"user_id", func(r *domain.Subscription) any { return &r.OwnerID }},
			{"position", func(r *domain.Subscription) any { return &r.Position }},
			{"tier", func(r *domain.Subscription) any { return &r.Tier }},
			{"monthly_price", func(r *domain.Subscription) any { return &r.MonthlyPrice }},
			{"subscriber_count", func(r *domain.Subscription) any { return &r.SubscriberCount }},
			{"mrr", func(r *domain.Subscription) any { return &r.MRR }},
		},
	},
	domain.KindActiveSubscribers: table[domain.ActiveSubscriberPeriod]{
		name: "active_subscribers",
		columns: []column[domain.ActiveSubscriberPeriod]{
			{"id", func(r *domain.ActiveSubscriberPeriod) any { return &r.ID }},
			{"user_id", func(r *domain.ActiveSubscriberPeriod) any { return &r.OwnerID }},
			{"position", func(r *domain.ActiveSubscriberPeriod) any { return &r.Position }},
			{"month", func(r *domain.ActiveSubscriberPeriod) any { return &r.Month }},
			{"existing_subs", func(r *domain.ActiveSubscriberPeriod) any { return &r.ExistingSubs }},
			{"new_deals", func(r *domain.ActiveSubscriberPeriod) any { return &r.NewDeals }},
			{"churned_subs", func(r *domain.ActiveSubscriberPeriod) any { return &r.ChurnedSubs }},
			{"ending_subs", func(r *domain.ActiveSubscriberPeriod) any { return &r.EndingSubs }},
		},
	},
	domain.KindCOGS: table[domain.COGS]{
		name: "cogs",
		columns: []column[domain.COGS]{
			{"id", func(r *domain.COGS) any { return &r.ID }},
			{"user_id", func(r *domain.COGS) any { return &r.OwnerID }},
			{"position", func(r *domain.COGS) any { return &r.Position }},
			{"category", func(r *domain.COGS) any { return &r.Category }},
			{"monthly_cost", func(r *domain.COGS) any { return &r.MonthlyCost }},
			{"notes", func(r *domain.COGS) any { return &r.Notes }},
		},
	},
	domain.KindDepartment: table[domain.Department]{
		name: "departments",
		columns: []column[domain.Department]{
			{"id", func(r *domain.Department) any { return &r.ID }},
			{"user_id", func(r *domain.Department) any { return &r.OwnerID }},
			{"position", func(r *domain.Department) any { return &r.Position }},
			{"name", func(r *domain.Department) any { return &r.Name }},
			{"fte", func(r *domain.Department) any { return &r.FTE }},
			{"salary", func(r *domain.Department) any { return &r.Salary }},
			{"additional_costs", func(r *domain.Department) any { return &r.AdditionalCostsPct }},
			{"monthly_total", func(r *domain.Department) any { return &r.MonthlyTotal }},
		},
	},
	domain.KindOperatingExpense: table[domain.OperatingExpense]{
		name: "operating_expenses",
		columns: []column[domain.OperatingExpense]{
			{"id", func(r *domain.OperatingExpense) any { return &r.ID }},
			{"user_id", func(r *domain.OperatingExpense) any { return &r.OwnerID }},
			{"position", func(r *domain.OperatingExpense) any { return &r.Position }},
			{"category", func(r *domain.OperatingExpense) any { return &r.Category }},
			{"monthly_cost", func(r *domain.OperatingExpense) any { return &r.MonthlyCost }},
			{"notes", func(r *domain.OperatingExpense) any { return &r.Notes }},
		},
	},
	domain.KindFundingRound: table[domain.FundingRound]{
		name: "funding_rounds",
		columns: []column[domain.FundingRound]{
			{"id", func(r *domain.FundingRound) any { return &r.ID }},
			{"user_id", func(r *domain.FundingRound) any { return &r.OwnerID }},
			{"position", func(r *domain.FundingRound) any { return &r.Position }},
			{"round", func(r *domain.FundingRound) any { return &r.Round }},
			{"amount_raised", func(r *domain.FundingRound) any { return &r.AmountRaised }},
			{"valuation_pre", func(r *domain.FundingRound) any { return &r.ValuationPre }},
			{"valuation_post", func(r *domain.FundingRound) any { return &r.ValuationPost }},
			{"equity_sold", func(r *domain.FundingRound) any { return &r.EquitySold }},
			{"close_date", func(r *domain.FundingRound) any { return &r.CloseDate }},
		},
	},
}

func mapperFor(kind domain.EntityKind) (tableMapper, error) {
	mapper, ok := tables[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return mapper, nil
}
