package modeling

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)

	// maxInput é o maior valor absoluto aceito na digitação, acima dele o texto é tratado como inválido
	maxInput = decimal.New(1, 15)

	maxCount = decimal.NewFromInt(math.MaxInt64)
	minCount = decimal.NewFromInt(math.MinInt64)
)

// inputScale é a escala das colunas numéricas do banco. Entradas são arredondadas
// para ela antes de qualquer cálculo, assim o derivado gravado bate com a entrada relida.
const inputScale = 2

// numberDecoration remove símbolos de moeda, percentual e separadores de milhar
var numberDecoration = strings.NewReplacer(
	"£", "",
	"$", "",
	"€", "",
	"%", "",
	",", "",
	" ", "",
	"\u00a0", "",
)

// ParseNumber converte o texto digitado em número. Valores inválidos ou fora da faixa viram zero, nunca erro.
func ParseNumber(raw string) decimal.Decimal {
	clean := numberDecoration.Replace(strings.TrimSpace(raw))
	if clean == "" {
		return decimal.Zero
	}

	value, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero
	}

	if value.Abs().GreaterThanOrEqual(maxInput) {
		return decimal.Zero
	}

	return value
}

// parseFloat arredonda a entrada para a escala da coluna (meio para cima)
func parseFloat(raw string) float64 {
	return ParseNumber(raw).Round(inputScale).InexactFloat64()
}

// parseCount trunca para baixo, contagens são sempre inteiras
func parseCount(raw string) int64 {
	return count(ParseNumber(raw))
}

// dec converte um valor do registro para decimal. NaN e infinitos viram zero.
func dec(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// money arredonda para duas casas (meio para cima) na volta para float64.
// Os registros guardam float64; o decimal só existe durante o cálculo.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// count arredonda contagens para baixo, limitadas à faixa do int64
func count(d decimal.Decimal) int64 {
	d = d.Floor()
	switch {
	case d.GreaterThan(maxCount):
		return math.MaxInt64
	case d.LessThan(minCount):
		return math.MinInt64
	}
	return d.IntPart()
}
