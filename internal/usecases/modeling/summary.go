package modeling

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/business-model-api/internal/domain"
)

// trailingPeriods é a janela usada nas médias de assinantes
const trailingPeriods = 3

// Summarize agrega o snapshot. É recalculado a cada leitura e nunca é persistido.
func Summarize(m *domain.Model) domain.Summary {
	if m == nil {
		m = domain.NewModel(0)
	}

	var revenue, marketing, team, payroll, cogs, opex decimal.Decimal
	var fte decimal.Decimal
	var leads, subscriptions int64

	for _, s := range m.Subscriptions {
		revenue = revenue.Add(dec(s.MRR))
		subscriptions += s.SubscriberCount
	}
	for _, c := range m.MarketingChannels {
		marketing = marketing.Add(dec(c.MonthlyBudget))
		leads += c.LeadsGenerated
	}
	for _, e := range m.MarketingTeam {
		team = team.Add(dec(e.MonthlyTotal))
	}
	for _, d := range m.Departments {
		payroll = payroll.Add(dec(d.MonthlyTotal))
		fte = fte.Add(dec(d.FTE))
	}
	for _, c := range m.COGS {
		cogs = cogs.Add(dec(c.MonthlyCost))
	}
	for _, o := range m.OperatingExpenses {
		opex = opex.Add(dec(o.MonthlyCost))
	}

	costs := marketing.Add(payroll).Add(cogs).Add(opex)
	netIncome := revenue.Sub(costs)

	summary := domain.Summary{
		TotalRevenue:       money(revenue),
		TotalCosts:         money(costs),
		AnnualRevenue:      money(revenue.Mul(twelve)),
		AnnualCosts:        money(costs.Mul(twelve)),
		MonthlyNetIncome:   money(netIncome),
		AnnualNetIncome:    money(netIncome.Mul(twelve)),
		GrossMargin:        percentOf(revenue.Sub(cogs), revenue),
		NetMargin:          percentOf(netIncome, revenue),
		TotalFTE:           fte.InexactFloat64(),
		TotalLeads:         leads,
		TotalSubscriptions: subscriptions,
		Sections: domain.SectionTotals{
			Marketing:     money(marketing),
			MarketingTeam: money(team),
			Payroll:       money(payroll),
			COGS:          money(cogs),
			Opex:          money(opex),
		},
		Funnel:      funnelTotals(m.FunnelConversions),
		Subscribers: subscriberTotals(m.ActiveSubscribers),
		Funding:     fundingTotals(m.FundingRounds),
	}

	if leads > 0 {
		summary.AvgCostPerLead = money(marketing.Div(decimal.NewFromInt(leads)))
	}

	summary.AnnualFunnel = domain.FunnelTotals{
		MQL:   summary.Funnel.MQL * 12,
		SQL:   summary.Funnel.SQL * 12,
		Deals: summary.Funnel.Deals * 12,
	}

	return summary
}

// percentOf devolve part/total × 100, zero quando total é zero
func percentOf(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return money(part.Div(total).Mul(hundred))
}

func funnelTotals(rows []domain.FunnelConversion) domain.FunnelTotals {
	var totals domain.FunnelTotals
	for _, f := range rows {
		totals.MQL += f.MQL
		totals.SQL += f.SQL
		totals.Deals += f.Deals
	}
	return totals
}

func subscriberTotals(periods []domain.ActiveSubscriberPeriod) domain.SubscriberTotals {
	var totals domain.SubscriberTotals
	if len(periods) == 0 {
		return totals
	}

	for _, p := range periods {
		totals.NewDeals += p.NewDeals
		totals.ChurnedSubs += p.ChurnedSubs
	}
	totals.Subscribers = periods[len(periods)-1].EndingSubs

	if len(periods) < trailingPeriods {
		return totals
	}

	var churnRate, newDeals decimal.Decimal
	for _, p := range periods[len(periods)-trailingPeriods:] {
		churnRate = churnRate.Add(ChurnRate(p))
		newDeals = newDeals.Add(decimal.NewFromInt(p.NewDeals))
	}

	window := decimal.NewFromInt(trailingPeriods)
	avgChurn := money(churnRate.Div(window))
	avgDeals := money(newDeals.Div(window))
	totals.AvgChurnRate = &avgChurn
	totals.AvgNewDeals = &avgDeals

	return totals
}

// ChurnRate é o percentual de cancelados sobre os existentes no período, zero sem existentes
func ChurnRate(p domain.ActiveSubscriberPeriod) decimal.Decimal {
	if p.ExistingSubs == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(p.ChurnedSubs).Div(decimal.NewFromInt(p.ExistingSubs)).Mul(hundred)
}

func fundingTotals(rounds []domain.FundingRound) domain.FundingTotals {
	var totals domain.FundingTotals
	var raised, equity decimal.Decimal

	for _, r := range rounds {
		raised = raised.Add(dec(r.AmountRaised))
		equity = equity.Add(dec(r.EquitySold))
	}

	totals.TotalRaised = raised.InexactFloat64()
	totals.TotalEquitySold = equity.InexactFloat64()
	if len(rounds) > 0 {
		totals.LatestValuation = rounds[len(rounds)-1].ValuationPost
	}

	return totals
}
