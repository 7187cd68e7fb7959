// Package seeding monta o modelo inicial oferecido a usuários sem dados
package seeding

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/vfg2006/business-model-api/internal/domain"
	"github.com/vfg2006/business-model-api/internal/usecases/modeling"
	"github.com/vfg2006/business-model-api/pkg/utils"
)

//go:embed defaults.toml
var defaultsFile []byte

type channelRow struct {
	Name          string  `toml:"name"`
	MonthlyBudget float64 `toml:"monthly_budget"`
	CostPerLead   float64 `toml:"cost_per_lead"`
	Notes         string  `toml:"notes"`
}

type employeeRow struct {
	Role         string  `toml:"role"`
	FTE          float64 `toml:"fte"`
	SalaryPerFTE float64 `toml:"salary_per_fte"`
}

type subscriptionRow struct {
	Tier            string  `toml:"tier"`
	MonthlyPrice    float64 `toml:"monthly_price"`
	SubscriberCount int64   `toml:"subscriber_count"`
}

type periodRow struct {
	Month        string `toml:"month"`
	ExistingSubs int64  `toml:"existing_subs"`
	NewDeals     int64  `toml:"new_deals"`
	ChurnedSubs  int64  `toml:"churned_subs"`
}

type costRow struct {
	Category    string  `toml:"category"`
	MonthlyCost float64 `toml:"monthly_cost"`
	Notes       string  `toml:"notes"`
}

type departmentRow struct {
	Name            string  `toml:"name"`
	FTE             float64 `toml:"fte"`
	Salary          float64 `toml:"salary"`
	AdditionalCosts float64 `toml:"additional_costs"`
}

type fundingRow struct {
	Round        string  `toml:"round"`
	AmountRaised float64 `toml:"amount_raised"`
	ValuationPre float64 `toml:"valuation_pre"`
	EquitySold   float64 `toml:"equity_sold"`
	CloseDate    string  `toml:"close_date"`
}

// Defaults é o conteúdo do arquivo de modelo inicial
type Defaults struct {
	Funnel struct {
		MQLToSQLRate  float64 `toml:"mql_to_sql_rate"`
		SQLToDealRate float64 `toml:"sql_to_deal_rate"`
	} `toml:"funnel"`
	MarketingChannels []channelRow      `toml:"marketing_channels"`
	MarketingTeam     []employeeRow     `toml:"marketing_team"`
	Subscriptions     []subscriptionRow `toml:"subscriptions"`
	ActiveSubscribers []periodRow       `toml:"active_subscribers"`
	COGS              []costRow         `toml:"cogs"`
	Departments       []departmentRow   `toml:"departments"`
	OperatingExpenses []costRow         `toml:"operating_expenses"`
	FundingRounds     []fundingRow      `toml:"funding_rounds"`
}

// ParseDefaults lê um arquivo de modelo inicial no formato TOML
func ParseDefaults(content []byte) (*Defaults, error) {
	var defaults Defaults
	if err := toml.Unmarshal(content, &defaults); err != nil {
		return nil, fmt.Errorf("erro ao ler modelo inicial: %w", err)
	}
	return &defaults, nil
}

// Seeder gera o modelo inicial com ids novos a cada chamada
type Seeder struct {
	defaults *Defaults
	newID    func() (string, error)
}

func NewSeeder() (*Seeder, error) {
	defaults, err := ParseDefaults(defaultsFile)
	if err != nil {
		return nil, err
	}

	return &Seeder{defaults: defaults, newID: utils.GenerateID}, nil
}

// DefaultModel monta o modelo do usuário com todos os campos derivados recalculados
func (s *Seeder) DefaultModel(ownerID int) (*domain.Model, error) {
	d := s.defaults
	model := domain.NewModel(ownerID)

	var idErr error
	id := func() string {
		value, err := s.newID()
		if err != nil && idErr == nil {
			idErr = err
		}
		return value
	}

	for i, row := range d.MarketingChannels {
		channel := modeling.RecomputeChannel(domain.MarketingChannel{
			ID: id(), OwnerID: ownerID, Position: i,
			Name: row.Name, MonthlyBudget: row.MonthlyBudget, CostPerLead: row.CostPerLead, Notes: row.Notes,
		})
		model.Add(channel)

		// Cada canal tem sua linha de funil, alimentada pelos leads do canal
		model.Add(modeling.RecomputeFunnel(domain.FunnelConversion{
			ID: id(), OwnerID: ownerID, Position: i,
			ChannelID: channel.ID, Channel: channel.Name, MQL: channel.LeadsGenerated,
			MQLToSQLRate: d.Funnel.MQLToSQLRate, SQLToDealRate: d.Funnel.SQLToDealRate,
		}))
	}

	for i, row := range d.MarketingTeam {
		model.Add(modeling.RecomputeEmployee(domain.Employee{
			ID: id(), OwnerID: ownerID, Position: i,
			Role: row.Role, FTE: row.FTE, SalaryPerFTE: row.SalaryPerFTE,
		}))
	}

	for i, row := range d.Subscriptions {
		model.Add(modeling.RecomputeSubscription(domain.Subscription{
			ID: id(), OwnerID: ownerID, Position: i,
			Tier: row.Tier, MonthlyPrice: row.MonthlyPrice, SubscriberCount: row.SubscriberCount,
		}))
	}

	periods := make([]domain.ActiveSubscriberPeriod, 0, len(d.ActiveSubscribers))
	for i, row := range d.ActiveSubscribers {
		periods = append(periods, domain.ActiveSubscriberPeriod{
			ID: id(), OwnerID: ownerID, Position: i,
			Month: row.Month, ExistingSubs: row.ExistingSubs, NewDeals: row.NewDeals, ChurnedSubs: row.ChurnedSubs,
		})
	}
	for _, period := range modeling.RollForward(periods, 0) {
		model.Add(period)
	}

	for i, row := range d.COGS {
		model.Add(domain.COGS{
			ID: id(), OwnerID: ownerID, Position: i,
			Category: row.Category, MonthlyCost: row.MonthlyCost, Notes: row.Notes,
		})
	}

	for i, row := range d.Departments {
		model.Add(modeling.RecomputeDepartment(domain.Department{
			ID: id(), OwnerID: ownerID, Position: i,
			Name: row.Name, FTE: row.FTE, Salary: row.Salary, AdditionalCostsPct: row.AdditionalCosts,
		}))
	}

	for i, row := range d.OperatingExpenses {
		model.Add(domain.OperatingExpense{
			ID: id(), OwnerID: ownerID, Position: i,
			Category: row.Category, MonthlyCost: row.MonthlyCost, Notes: row.Notes,
		})
	}

	for i, row := range d.FundingRounds {
		model.Add(modeling.RecomputeFundingRound(domain.FundingRound{
			ID: id(), OwnerID: ownerID, Position: i,
			Round: row.Round, AmountRaised: row.AmountRaised, ValuationPre: row.ValuationPre,
			EquitySold: row.EquitySold, CloseDate: row.CloseDate,
		}))
	}

	if idErr != nil {
		return nil, fmt.Errorf("erro ao gerar ids do modelo inicial: %w", idErr)
	}

	return model, nil
}
