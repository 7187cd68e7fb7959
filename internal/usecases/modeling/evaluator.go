package modeling

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/business-model-api/internal/domain"
)

// fieldSet descreve os campos editáveis e derivados de um tipo de registro.
// As chaves são normalizadas, então "monthlyBudget" e "monthly_budget" são o mesmo campo.
type fieldSet[T any] struct {
	inputs  map[string]func(*T, string)
	derived map[string]struct{}
}

func (fs fieldSet[T]) set(record *T, field, raw string) error {
	key := normalizeField(field)

	if setter, ok := fs.inputs[key]; ok {
		setter(record, raw)
		return nil
	}

	if _, ok := fs.derived[key]; ok {
		return errors.Wrapf(ErrDerivedField, "campo %q", field)
	}

	return errors.Wrapf(ErrUnknownField, "campo %q", field)
}

func normalizeField(field string) string {
	field = strings.ToLower(strings.TrimSpace(field))
	field = strings.ReplaceAll(field, "_", "")
	return strings.ReplaceAll(field, "-", "")
}

func derivedFields(names ...string) map[string]struct{} {
	fields := make(map[string]struct{}, len(names))
	for _, name := range names {
		fields[normalizeField(name)] = struct{}{}
	}
	return fields
}

var channelFields = fieldSet[domain.MarketingChannel]{
	inputs: map[string]func(*domain.MarketingChannel, string){
		"name":          func(c *domain.MarketingChannel, v string) { c.Name = v },
		"monthlybudget": func(c *domain.MarketingChannel, v string) { c.MonthlyBudget = parseFloat(v) },
		"costperlead":   func(c *domain.MarketingChannel, v string) { c.CostPerLead = parseFloat(v) },
		"notes":         func(c *domain.MarketingChannel, v string) { c.Notes = v },
	},
	derived: derivedFields("leadsGenerated"),
}

var employeeFields = fieldSet[domain.Employee]{
	inputs: map[string]func(*domain.Employee, string){
		"role":         func(e *domain.Employee, v string) { e.Role = v },
		"fte":          func(e *domain.Employee, v string) { e.FTE = parseFloat(v) },
		"salaryperfte": func(e *domain.Employee, v string) { e.SalaryPerFTE = parseFloat(v) },
	},
	derived: derivedFields("monthlyTotal"),
}

var funnelFields = fieldSet[domain.FunnelConversion]{
	inputs: map[string]func(*domain.FunnelConversion, string){
		"channel":       func(f *domain.FunnelConversion, v string) { f.Channel = v },
		"mql":           func(f *domain.FunnelConversion, v string) { f.MQL = parseCount(v) },
		"mqltosqlrate":  func(f *domain.FunnelConversion, v string) { f.MQLToSQLRate = parseFloat(v) },
		"sqltodealrate": func(f *domain.FunnelConversion, v string) { f.SQLToDealRate = parseFloat(v) },
	},
	derived: derivedFields("sql", "deals", "channelId"),
}

var subscriptionFields = fieldSet[domain.Subscription]{
	inputs: map[string]func(*domain.Subscription, string){
		"tier":            func(s *domain.Subscription, v string) { s.Tier = v },
		"monthlyprice":    func(s *domain.Subscription, v string) { s.MonthlyPrice = parseFloat(v) },
		"subscribercount": func(s *domain.Subscription, v string) { s.SubscriberCount = parseCount(v) },
	},
	derived: derivedFields("mrr"),
}

var periodFields = fieldSet[domain.ActiveSubscriberPeriod]{
	inputs: map[string]func(*domain.ActiveSubscriberPeriod, string){
		"month":        func(p *domain.ActiveSubscriberPeriod, v string) { p.Month = v },
		"existingsubs": func(p *domain.ActiveSubscriberPeriod, v string) { p.ExistingSubs = parseCount(v) },
		"newdeals":     func(p *domain.ActiveSubscriberPeriod, v string) { p.NewDeals = parseCount(v) },
		"churnedsubs":  func(p *domain.ActiveSubscriberPeriod, v string) { p.ChurnedSubs = parseCount(v) },
	},
	derived: derivedFields("endingSubs"),
}

var cogsFields = fieldSet[domain.COGS]{
	inputs: map[string]func(*domain.COGS, string){
		"category":    func(c *domain.COGS, v string) { c.Category = v },
		"monthlycost": func(c *domain.COGS, v string) { c.MonthlyCost = parseFloat(v) },
		"notes":       func(c *domain.COGS, v string) { c.Notes = v },
	},
}

var departmentFields = fieldSet[domain.Department]{
	inputs: map[string]func(*domain.Department, string){
		"name":               func(d *domain.Department, v string) { d.Name = v },
		"fte":                func(d *domain.Department, v string) { d.FTE = parseFloat(v) },
		"salary":             func(d *domain.Department, v string) { d.Salary = parseFloat(v) },
		"additionalcosts":    func(d *domain.Department, v string) { d.AdditionalCostsPct = parseFloat(v) },
		"additionalcostspct": func(d *domain.Department, v string) { d.AdditionalCostsPct = parseFloat(v) },
	},
	derived: derivedFields("monthlyTotal"),
}

var opexFields = fieldSet[domain.OperatingExpense]{
	inputs: map[string]func(*domain.OperatingExpense, string){
		"category":    func(o *domain.OperatingExpense, v string) { o.Category = v },
		"monthlycost": func(o *domain.OperatingExpense, v string) { o.MonthlyCost = parseFloat(v) },
		"notes":       func(o *domain.OperatingExpense, v string) { o.Notes = v },
	},
}

var fundingFields = fieldSet[domain.FundingRound]{
	inputs: map[string]func(*domain.FundingRound, string){
		"round":        func(f *domain.FundingRound, v string) { f.Round = v },
		"amountraised": func(f *domain.FundingRound, v string) { f.AmountRaised = parseFloat(v) },
		"valuationpre": func(f *domain.FundingRound, v string) { f.ValuationPre = parseFloat(v) },
		"equitysold":   func(f *domain.FundingRound, v string) { f.EquitySold = parseFloat(v) },
		"closedate":    func(f *domain.FundingRound, v string) { f.CloseDate = v },
	},
	derived: derivedFields("valuationPost"),
}

// RecomputeChannel deriva leadsGenerated = floor(budget / custo por lead), zero sem custo por lead
func RecomputeChannel(c domain.MarketingChannel) domain.MarketingChannel {
	cpl := dec(c.CostPerLead)
	if !cpl.IsPositive() {
		c.LeadsGenerated = 0
		return c
	}

	c.LeadsGenerated = count(dec(c.MonthlyBudget).Div(cpl))
	return c
}

// RecomputeEmployee deriva monthlyTotal = (salário por FTE / 12) × FTE
func RecomputeEmployee(e domain.Employee) domain.Employee {
	e.MonthlyTotal = money(dec(e.SalaryPerFTE).Mul(dec(e.FTE)).Div(twelve))
	return e
}

// RecomputeFunnel deriva sql e deals, ambos arredondados para baixo
func RecomputeFunnel(f domain.FunnelConversion) domain.FunnelConversion {
	f.SQL = count(decimalFromInt(f.MQL).Mul(dec(f.MQLToSQLRate)).Div(hundred))
	f.Deals = count(decimalFromInt(f.SQL).Mul(dec(f.SQLToDealRate)).Div(hundred))
	return f
}

// RecomputeSubscription deriva mrr = preço mensal × assinantes
func RecomputeSubscription(s domain.Subscription) domain.Subscription {
	s.MRR = money(dec(s.MonthlyPrice).Mul(decimalFromInt(s.SubscriberCount)))
	return s
}

// RecomputePeriod deriva endingSubs = existentes + novos − cancelados
func RecomputePeriod(p domain.ActiveSubscriberPeriod) domain.ActiveSubscriberPeriod {
	p.EndingSubs = p.ExistingSubs + p.NewDeals - p.ChurnedSubs
	return p
}

// RecomputeDepartment deriva monthlyTotal = (salário / 12) × FTE × (1 + custos adicionais / 100)
func RecomputeDepartment(d domain.Department) domain.Department {
	loaded := dec(d.Salary).Mul(dec(d.FTE)).Mul(hundred.Add(dec(d.AdditionalCostsPct)))
	d.MonthlyTotal = money(loaded.Div(twelve.Mul(hundred)))
	return d
}

// RecomputeFundingRound deriva a valuation pós-money = pré-money + valor captado
func RecomputeFundingRound(f domain.FundingRound) domain.FundingRound {
	f.ValuationPost = dec(f.ValuationPre).Add(dec(f.AmountRaised)).InexactFloat64()
	return f
}

func decimalFromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// Recompute deriva todos os campos calculados de um registro. Em um registro consistente é um no-op.
func Recompute(record domain.Record) domain.Record {
	switch r := record.(type) {
	case domain.MarketingChannel:
		return RecomputeChannel(r)
	case domain.Employee:
		return RecomputeEmployee(r)
	case domain.FunnelConversion:
		return RecomputeFunnel(r)
	case domain.Subscription:
		return RecomputeSubscription(r)
	case domain.ActiveSubscriberPeriod:
		return RecomputePeriod(r)
	case domain.Department:
		return RecomputeDepartment(r)
	case domain.FundingRound:
		return RecomputeFundingRound(r)
	default:
		return record
	}
}

// Evaluate aplica o valor digitado ao campo e devolve um novo registro com os derivados recalculados.
// O registro recebido não é alterado.
func Evaluate(record domain.Record, field, raw string) (domain.Record, error) {
	switch r := record.(type) {
	case domain.MarketingChannel:
		err := channelFields.set(&r, field, raw)
		return RecomputeChannel(r), err
	case domain.Employee:
		err := employeeFields.set(&r, field, raw)
		return RecomputeEmployee(r), err
	case domain.FunnelConversion:
		err := funnelFields.set(&r, field, raw)
		return RecomputeFunnel(r), err
	case domain.Subscription:
		err := subscriptionFields.set(&r, field, raw)
		return RecomputeSubscription(r), err
	case domain.ActiveSubscriberPeriod:
		err := periodFields.set(&r, field, raw)
		return RecomputePeriod(r), err
	case domain.COGS:
		err := cogsFields.set(&r, field, raw)
		return r, err
	case domain.Department:
		err := departmentFields.set(&r, field, raw)
		return RecomputeDepartment(r), err
	case domain.OperatingExpense:
		err := opexFields.set(&r, field, raw)
		return r, err
	case domain.FundingRound:
		err := fundingFields.set(&r, field, raw)
		return RecomputeFundingRound(r), err
	default:
		return record, errors.Wrapf(ErrUnknownKind, "tipo %T", record)
	}
}

// RollForward restaura a cascata de assinantes a partir do índice from:
// existingSubs[j] = endingSubs[j-1] e endingSubs[j] recalculado para todo j > from.
// Devolve uma nova série; a original não é alterada.
func RollForward(periods []domain.ActiveSubscriberPeriod, from int) []domain.ActiveSubscriberPeriod {
	out := append([]domain.ActiveSubscriberPeriod{}, periods...)
	if len(out) == 0 {
		return out
	}

	if from < 0 {
		from = 0
	}
	if from >= len(out) {
		return out
	}

	out[from] = RecomputePeriod(out[from])
	for j := from + 1; j < len(out); j++ {
		out[j].ExistingSubs = out[j-1].EndingSubs
		out[j] = RecomputePeriod(out[j])
	}

	return out
}
