// Package domain contém as estruturas de dados do domínio da aplicação
package domain

// EntityKind identifica uma coleção do modelo financeiro
type EntityKind string

const (
	KindMarketingChannel  EntityKind = "marketing_channels"
	KindMarketingTeam     EntityKind = "marketing_team"
	KindFunnelConversion  EntityKind = "funnel_conversions"
	KindSubscription      EntityKind = "subscriptions"
	KindActiveSubscribers EntityKind = "active_subscribers"
	KindCOGS              EntityKind = "cogs"
	KindDepartment        EntityKind = "departments"
	KindOperatingExpense  EntityKind = "operating_expenses"
	KindFundingRound      EntityKind = "funding_rounds"
)

// AllKinds lista as coleções na ordem em que são carregadas e semeadas
var AllKinds = []EntityKind{
	KindMarketingChannel,
	KindMarketingTeam,
	KindFunnelConversion,
	KindSubscription,
	KindActiveSubscribers,
	KindCOGS,
	KindDepartment,
	KindOperatingExpense,
	KindFundingRound,
}

func (k EntityKind) IsValid() bool {
	for _, kind := range AllKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Record é implementado por todas as linhas do modelo
type Record interface {
	RecordID() string
	RecordKind() EntityKind
	RecordOwner() int
	RecordPosition() int
}

type MarketingChannel struct {
	ID             string  `json:"id"`
	OwnerID        int     `json:"user_id"`
	Position       int     `json:"position"`
	Name           string  `json:"name"`
	MonthlyBudget  float64 `json:"monthly_budget"`
	CostPerLead    float64 `json:"cost_per_lead"`
	LeadsGenerated int64   `json:"leads_generated"`
	Notes          string  `json:"notes"`
}

type Employee struct {
	ID           string  `json:"id"`
	OwnerID      int     `json:"user_id"`
	Position     int     `json:"position"`
	Role         string  `json:"role"`
	FTE          float64 `json:"fte"`
	SalaryPerFTE float64 `json:"salary_per_fte"`
	MonthlyTotal float64 `json:"monthly_total"`
}

type FunnelConversion struct {
	ID            string  `json:"id"`
	OwnerID       int     `json:"user_id"`
	Position      int     `json:"position"`
	ChannelID     string  `json:"channel_id"`
	Channel       string  `json:"channel"`
	MQL           int64   `json:"mql"`
	MQLToSQLRate  float64 `json:"mql_to_sql_rate"`
	SQL           int64   `json:"sql"`
	SQLToDealRate float64 `json:"sql_to_deal_rate"`
	Deals         int64   `json:"deals"`
}

type Subscription struct {
	ID              string  `json:"id"`
	OwnerID         int     `json:"user_id"`
	Position        int     `json:"position"`
	Tier            string  `json:"tier"`
	MonthlyPrice    float64 `json:"monthly_price"`
	SubscriberCount int64   `json:"subscriber_count"`
	MRR             float64 `json:"mrr"`
}

// ActiveSubscriberPeriod é um período da série de assinantes ativos.
// ExistingSubs do período i é sempre igual a EndingSubs do período i-1.
type ActiveSubscriberPeriod struct {
	ID           string `json:"id"`
	OwnerID      int    `json:"user_id"`
	Position     int    `json:"position"`
	Month        string `json:"month"`
	ExistingSubs int64  `json:"existing_subs"`
	NewDeals     int64  `json:"new_deals"`
	ChurnedSubs  int64  `json:"churned_subs"`
	EndingSubs   int64  `json:"ending_subs"`
}

type COGS struct {
	ID          string  `json:"id"`
	OwnerID     int     `json:"user_id"`
	Position    int     `json:"position"`
	Category    string  `json:"category"`
	MonthlyCost float64 `json:"monthly_cost"`
	Notes       string  `json:"notes"`
}

type Department struct {
	ID                 string  `json:"id"`
	OwnerID            int     `json:"user_id"`
	Position           int     `json:"position"`
	Name               string  `json:"name"`
	FTE                float64 `json:"fte"`
	Salary             float64 `json:"salary"`
	AdditionalCostsPct float64 `json:"additional_costs"`
	MonthlyTotal       float64 `json:"monthly_total"`
}

type OperatingExpense struct {
	ID          string  `json:"id"`
	OwnerID     int     `json:"user_id"`
	Position    int     `json:"position"`
	Category    string  `json:"category"`
	MonthlyCost float64 `json:"monthly_cost"`
	Notes       string  `json:"notes"`
}

type FundingRound struct {
	ID            string  `json:"id"`
	OwnerID       int     `json:"user_id"`
	Position      int     `json:"position"`
	Round         string  `json:"round"`
	AmountRaised  float64 `json:"amount_raised"`
	ValuationPre  float64 `json:"valuation_pre"`
	ValuationPost float64 `json:"valuation_post"`
	EquitySold    float64 `json:"equity_sold"`
	CloseDate     string  `json:"close_date"`
}

func (r MarketingChannel) RecordID() string             { return r.ID }
func (r MarketingChannel) RecordKind() EntityKind       { return KindMarketingChannel }
func (r MarketingChannel) RecordPosition() int          { return r.Position }
func (r MarketingChannel) RecordOwner() int             { return r.OwnerID }
func (r Employee) RecordID() string                     { return r.ID }
func (r Employee) RecordKind() EntityKind               { return KindMarketingTeam }
func (r Employee) RecordPosition() int                  { return r.Position }
func (r Employee) RecordOwner() int                     { return r.OwnerID }
func (r FunnelConversion) RecordID() string             { return r.ID }
func (r FunnelConversion) RecordKind() EntityKind       { return KindFunnelConversion }
func (r FunnelConversion) RecordPosition() int          { return r.Position }
func (r FunnelConversion) RecordOwner() int             { return r.OwnerID }
func (r Subscription) RecordID() string                 { return r.ID }
func (r Subscription) RecordKind() EntityKind           { return KindSubscription }
func (r Subscription) RecordPosition() int              { return r.Position }
func (r Subscription) RecordOwner() int                 { return r.OwnerID }
func (r ActiveSubscriberPeriod) RecordID() string       { return r.ID }
func (r ActiveSubscriberPeriod) RecordKind() EntityKind { return KindActiveSubscribers }
func (r ActiveSubscriberPeriod) RecordPosition() int    { return r.Position }
func (r ActiveSubscriberPeriod) RecordOwner() int       { return r.OwnerID }
func (r COGS) RecordID() string                         { return r.ID }
func (r COGS) RecordKind() EntityKind                   { return KindCOGS }
func (r COGS) RecordPosition() int                      { return r.Position }
func (r COGS) RecordOwner() int                         { return r.OwnerID }
func (r Department) RecordID() string                   { return r.ID }
func (r Department) RecordKind() EntityKind             { return KindDepartment }
func (r Department) RecordPosition() int                { return r.Position }
func (r Department) RecordOwner() int                   { return r.OwnerID }
func (r OperatingExpense) RecordID() string             { return r.ID }
func (r OperatingExpense) RecordKind() EntityKind       { return KindOperatingExpense }
func (r OperatingExpense) RecordPosition() int          { return r.Position }
func (r OperatingExpense) RecordOwner() int             { return r.OwnerID }
func (r FundingRound) RecordID() string                 { return r.ID }
func (r FundingRound) RecordKind() EntityKind           { return KindFundingRound }
func (r FundingRound) RecordPosition() int              { return r.Position }
func (r FundingRound) RecordOwner() int                 { return r.OwnerID }

// NewRecord cria um registro vazio da coleção, já identificado e posicionado
func NewRecord(kind EntityKind, ownerID int, id string, position int) (Record, bool) {
	switch kind {
	case KindMarketingChannel:
		return MarketingChannel{ID: id, OwnerID: ownerID, Position: position}, true
	case KindMarketingTeam:
		return Employee{ID: id, OwnerID: ownerID, Position: position}, true
	case KindFunnelConversion:
		return FunnelConversion{ID: id, OwnerID: ownerID, Position: position}, true
	case KindSubscription:
		return Subscription{ID: id, OwnerID: ownerID, Position: position}, true
	case KindActiveSubscribers:
		return ActiveSubscriberPeriod{ID: id, OwnerID: ownerID, Position: position}, true
	case KindCOGS:
		return COGS{ID: id, OwnerID: ownerID, Position: position}, true
	case KindDepartment:
		return Department{ID: id, OwnerID: ownerID, Position: position}, true
	case KindOperatingExpense:
		return OperatingExpense{ID: id, OwnerID: ownerID, Position: position}, true
	case KindFundingRound:
		return FundingRound{ID: id, OwnerID: ownerID, Position: position}, true
	}
	return nil, false
}
