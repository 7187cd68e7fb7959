package domain

type SectionTotals struct {
	Marketing     float64 `json:"marketing"`
	MarketingTeam float64 `json:"marketing_team"`
	Payroll       float64 `json:"payroll"`
	COGS          float64 `json:"cogs"`
	Opex          float64 `json:"opex"`
}

type FunnelTotals struct {
	MQL   int64 `json:"mql"`
	SQL   int64 `json:"sql"`
	Deals int64 `json:"deals"`
}

type SubscriberTotals struct {
	Subscribers int64 `json:"subscribers"`
	NewDeals    int64 `json:"new_deals"`
	ChurnedSubs int64 `json:"churned_subs"`
	// Médias dos últimos 3 períodos, nulas quando há menos de 3 períodos
	AvgChurnRate *float64 `json:"avg_churn_rate"`
	AvgNewDeals  *float64 `json:"avg_new_deals"`
}

type FundingTotals struct {
	TotalRaised     float64 `json:"total_raised"`
	TotalEquitySold float64 `json:"total_equity_sold"`
	LatestValuation float64 `json:"latest_valuation"`
}

// Summary é a visão agregada do modelo, sempre recalculada a partir do snapshot
type Summary struct {
	TotalRevenue       float64          `json:"total_revenue"`
	TotalCosts         float64          `json:"total_costs"`
	AnnualRevenue      float64          `json:"annual_revenue"`
	AnnualCosts        float64          `json:"annual_costs"`
	MonthlyNetIncome   float64          `json:"monthly_net_income"`
	AnnualNetIncome    float64          `json:"annual_net_income"`
	GrossMargin        float64          `json:"gross_margin"`
	NetMargin          float64          `json:"net_margin"`
	TotalFTE           float64          `json:"total_fte"`
	TotalLeads         int64            `json:"total_leads"`
	AvgCostPerLead     float64          `json:"avg_cost_per_lead"`
	TotalSubscriptions int64            `json:"total_subscriptions"`
	Sections           SectionTotals    `json:"section_totals"`
	Funnel             FunnelTotals     `json:"funnel"`
	AnnualFunnel       FunnelTotals     `json:"annual_funnel"`
	Subscribers        SubscriberTotals `json:"subscribers"`
	Funding            FundingTotals    `json:"funding"`
}

// PlatformAggregate é a visão consolidada de todos os usuários (painel administrativo)
type PlatformAggregate struct {
	TotalUsers       int     `json:"total_users"`
	AverageRevenue   float64 `json:"average_revenue"`
	TotalSubscribers int64   `json:"total_subscribers"`
	AverageChurnRate float64 `json:"average_churn_rate"`
}
