package utils

import (
	"strings"
	"time"
)

// NextMonthName devolve o nome do mês seguinte em inglês ("May" -> "June").
// Nomes desconhecidos recomeçam a partir do mês corrente.
func NextMonthName(month string) string {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(strings.TrimSpace(month), m.String()) {
			return (m%12 + 1).String()
		}
	}

	return time.Now().Month().String()
}
