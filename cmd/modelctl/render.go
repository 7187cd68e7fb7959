package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/business-model-api/internal/domain"
)

var (
	colorBorder = lipgloss.Color("#282726")
	colorText   = lipgloss.Color("#FFFCF0")
	colorMuted  = lipgloss.Color("#6F6E69")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorOrange = lipgloss.Color("#DA702C")
	colorRed    = lipgloss.Color("#D14D41")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(28)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Align(lipgloss.Right).
			Width(18)

	okStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	warnStyle = lipgloss.NewStyle().Foreground(colorOrange)
	errStyle  = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

func renderOK(msg string) string {
	return okStyle.Render("✓ " + msg)
}

func renderWarn(msg string) string {
	return warnStyle.Render("! " + msg)
}

func renderError(err error) string {
	return errStyle.Render("✗ " + err.Error())
}

func renderTitle(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(48).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(titleStyle.Render(title))
}

// formatMoney formata com separador de milhar e duas casas ("12,345.67")
func formatMoney(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return sign + "$" + b.String() + "." + frac
}

func formatPercent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + "%"
}

func formatOptionalPercent(v *float64) string {
	if v == nil {
		return "n/d"
	}
	return formatPercent(*v)
}

func formatOptional(v *float64) string {
	if v == nil {
		return "n/d"
	}
	return decimal.NewFromFloat(*v).StringFixed(2)
}

type summaryLine struct {
	label string
	value string
}

func renderSection(title string, lines []summaryLine) string {
	rows := []string{headerStyle.Render(title)}
	for _, line := range lines {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(line.label),
			valueStyle.Render(line.value),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderSummary monta o painel de resumo do modelo para o terminal
func renderSummary(ownerID int, s *domain.Summary) string {
	sections := []string{
		renderTitle(fmt.Sprintf("RESUMO DO MODELO · USUÁRIO %d", ownerID)),
		renderSection("Resultado", []summaryLine{
			{"Receita mensal", formatMoney(s.TotalRevenue)},
			{"Custos mensais", formatMoney(s.TotalCosts)},
			{"Lucro líquido mensal", formatMoney(s.MonthlyNetIncome)},
			{"Receita anual", formatMoney(s.AnnualRevenue)},
			{"Lucro líquido anual", formatMoney(s.AnnualNetIncome)},
			{"Margem bruta", formatPercent(s.GrossMargin)},
			{"Margem líquida", formatPercent(s.NetMargin)},
		}),
		renderSection("Custos por seção", []summaryLine{
			{"Marketing", formatMoney(s.Sections.Marketing)},
			{"Time de marketing", formatMoney(s.Sections.MarketingTeam)},
			{"Folha", formatMoney(s.Sections.Payroll)},
			{"COGS", formatMoney(s.Sections.COGS)},
			{"Despesas operacionais", formatMoney(s.Sections.Opex)},
		}),
		renderSection("Aquisição", []summaryLine{
			{"Leads", fmt.Sprint(s.TotalLeads)},
			{"Custo médio por lead", formatMoney(s.AvgCostPerLead)},
			{"MQL / SQL / Deals", fmt.Sprintf("%d / %d / %d", s.Funnel.MQL, s.Funnel.SQL, s.Funnel.Deals)},
			{"Assinaturas", fmt.Sprint(s.TotalSubscriptions)},
		}),
		renderSection("Assinantes", []summaryLine{
			{"Assinantes atuais", fmt.Sprint(s.Subscribers.Subscribers)},
			{"Churn médio (3 períodos)", formatOptionalPercent(s.Subscribers.AvgChurnRate)},
			{"Deals médios (3 períodos)", formatOptional(s.Subscribers.AvgNewDeals)},
		}),
		renderSection("Captação", []summaryLine{
			{"Total captado", formatMoney(s.Funding.TotalRaised)},
			{"Participação vendida", formatPercent(s.Funding.TotalEquitySold)},
			{"Última avaliação", formatMoney(s.Funding.LatestValuation)},
		}),
	}

	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(sections, "\n\n"))
}
