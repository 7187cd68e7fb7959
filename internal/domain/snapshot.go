package domain

// Model é o snapshot completo do modelo financeiro de um usuário
type Model struct {
	OwnerID           int                      `json:"user_id"`
	MarketingChannels []MarketingChannel       `json:"marketing_channels"`
	MarketingTeam     []Employee               `json:"marketing_team"`
	FunnelConversions []FunnelConversion       `json:"funnel_conversions"`
	Subscriptions     []Subscription           `json:"subscriptions"`
	ActiveSubscribers []ActiveSubscriberPeriod `json:"active_subscribers"`
	COGS              []COGS                   `json:"cogs"`
	Departments       []Department             `json:"departments"`
	OperatingExpenses []OperatingExpense       `json:"operating_expenses"`
	FundingRounds     []FundingRound           `json:"funding_rounds"`
}

// NewModel cria um snapshot vazio (coleções não nulas) para o usuário
func NewModel(ownerID int) *Model {
	return &Model{
		OwnerID:           ownerID,
		MarketingChannels: []MarketingChannel{},
		MarketingTeam:     []Employee{},
		FunnelConversions: []FunnelConversion{},
		Subscriptions:     []Subscription{},
		ActiveSubscribers: []ActiveSubscriberPeriod{},
		COGS:              []COGS{},
		Departments:       []Department{},
		OperatingExpenses: []OperatingExpense{},
		FundingRounds:     []FundingRound{},
	}
}

// Clone devolve uma cópia rasa de todas as coleções, suficiente porque os registros são valores
func (m *Model) Clone() *Model {
	if m == nil {
		return nil
	}

	return &Model{
		OwnerID:           m.OwnerID,
		MarketingChannels: append([]MarketingChannel{}, m.MarketingChannels...),
		MarketingTeam:     append([]Employee{}, m.MarketingTeam...),
		FunnelConversions: append([]FunnelConversion{}, m.FunnelConversions...),
		Subscriptions:     append([]Subscription{}, m.Subscriptions...),
		ActiveSubscribers: append([]ActiveSubscriberPeriod{}, m.ActiveSubscribers...),
		COGS:              append([]COGS{}, m.COGS...),
		Departments:       append([]Department{}, m.Departments...),
		OperatingExpenses: append([]OperatingExpense{}, m.OperatingExpenses...),
		FundingRounds:     append([]FundingRound{}, m.FundingRounds...),
	}
}

// Records devolve as linhas de uma coleção como Record
func (m *Model) Records(kind EntityKind) []Record {
	records := make([]Record, 0)

	switch kind {
	case KindMarketingChannel:
		for _, r := range m.MarketingChannels {
			records = append(records, r)
		}
	case KindMarketingTeam:
		for _, r := range m.MarketingTeam {
			records = append(records, r)
		}
	case KindFunnelConversion:
		for _, r := range m.FunnelConversions {
			records = append(records, r)
		}
	case KindSubscription:
		for _, r := range m.Subscriptions {
			records = append(records, r)
		}
	case KindActiveSubscribers:
		for _, r := range m.ActiveSubscribers {
			records = append(records, r)
		}
	case KindCOGS:
		for _, r := range m.COGS {
			records = append(records, r)
		}
	case KindDepartment:
		for _, r := range m.Departments {
			records = append(records, r)
		}
	case KindOperatingExpense:
		for _, r := range m.OperatingExpenses {
			records = append(records, r)
		}
	case KindFundingRound:
		for _, r := range m.FundingRounds {
			records = append(records, r)
		}
	}

	return records
}

// AllRecords devolve todas as linhas do snapshot, coleção por coleção
func (m *Model) AllRecords() []Record {
	records := make([]Record, 0)
	for _, kind := range AllKinds {
		records = append(records, m.Records(kind)...)
	}
	return records
}

// IsEmpty indica se nenhuma coleção possui linhas
func (m *Model) IsEmpty() bool {
	return len(m.AllRecords()) == 0
}

// Add anexa um registro à coleção correspondente
func (m *Model) Add(record Record) {
	switch r := record.(type) {
	case MarketingChannel:
		m.MarketingChannels = append(m.MarketingChannels, r)
	case Employee:
		m.MarketingTeam = append(m.MarketingTeam, r)
	case FunnelConversion:
		m.FunnelConversions = append(m.FunnelConversions, r)
	case Subscription:
		m.Subscriptions = append(m.Subscriptions, r)
	case ActiveSubscriberPeriod:
		m.ActiveSubscribers = append(m.ActiveSubscribers, r)
	case COGS:
		m.COGS = append(m.COGS, r)
	case Department:
		m.Departments = append(m.Departments, r)
	case OperatingExpense:
		m.OperatingExpenses = append(m.OperatingExpenses, r)
	case FundingRound:
		m.FundingRounds = append(m.FundingRounds, r)
	}
}

// Change é uma operação de persistência resultante de uma edição
type Change struct {
	Kind   EntityKind `json:"kind"`
	ID     string     `json:"id"`
	Record Record     `json:"record,omitempty"`
	Delete bool       `json:"delete"`
}

func UpsertChange(record Record) Change {
	return Change{Kind: record.RecordKind(), ID: record.RecordID(), Record: record}
}

func DeleteChange(kind EntityKind, id string) Change {
	return Change{Kind: kind, ID: id, Delete: true}
}

// ModelResponse é o payload devolvido ao cliente após leituras e edições
type ModelResponse struct {
	Model   *Model   `json:"model"`
	Summary *Summary `json:"summary"`
	Error   *string  `json:"error"`
}

// Find devolve o registro da coleção com o id informado e sua posição no slice
func (m *Model) Find(kind EntityKind, id string) (Record, int, bool) {
	for i, record := range m.Records(kind) {
		if record.RecordID() == id {
			return record, i, true
		}
	}
	return nil, -1, false
}

// Replace substitui o registro de mesmo id, mantendo a ordem da coleção
func (m *Model) Replace(record Record) bool {
	switch r := record.(type) {
	case MarketingChannel:
		return replaceByID(m.MarketingChannels, r)
	case Employee:
		return replaceByID(m.MarketingTeam, r)
	case FunnelConversion:
		return replaceByID(m.FunnelConversions, r)
	case Subscription:
		return replaceByID(m.Subscriptions, r)
	case ActiveSubscriberPeriod:
		return replaceByID(m.ActiveSubscribers, r)
	case COGS:
		return replaceByID(m.COGS, r)
	case Department:
		return replaceByID(m.Departments, r)
	case OperatingExpense:
		return replaceByID(m.OperatingExpenses, r)
	case FundingRound:
		return replaceByID(m.FundingRounds, r)
	}
	return false
}

// Remove exclui o registro da coleção pelo id
func (m *Model) Remove(kind EntityKind, id string) bool {
	var removed bool

	switch kind {
	case KindMarketingChannel:
		m.MarketingChannels, removed = removeByID(m.MarketingChannels, id)
	case KindMarketingTeam:
		m.MarketingTeam, removed = removeByID(m.MarketingTeam, id)
	case KindFunnelConversion:
		m.FunnelConversions, removed = removeByID(m.FunnelConversions, id)
	case KindSubscription:
		m.Subscriptions, removed = removeByID(m.Subscriptions, id)
	case KindActiveSubscribers:
		m.ActiveSubscribers, removed = removeByID(m.ActiveSubscribers, id)
	case KindCOGS:
		m.COGS, removed = removeByID(m.COGS, id)
	case KindDepartment:
		m.Departments, removed = removeByID(m.Departments, id)
	case KindOperatingExpense:
		m.OperatingExpenses, removed = removeByID(m.OperatingExpenses, id)
	case KindFundingRound:
		m.FundingRounds, removed = removeByID(m.FundingRounds, id)
	}

	return removed
}

// NextPosition devolve a posição para uma nova linha no fim da coleção
func (m *Model) NextPosition(kind EntityKind) int {
	next := 0
	for _, record := range m.Records(kind) {
		if record.RecordPosition() >= next {
			next = record.RecordPosition() + 1
		}
	}
	return next
}

func replaceByID[T Record](rows []T, record T) bool {
	for i := range rows {
		if rows[i].RecordID() == record.RecordID() {
			rows[i] = record
			return true
		}
	}
	return false
}

func removeByID[T Record](rows []T, id string) ([]T, bool) {
	for i := range rows {
		if rows[i].RecordID() == id {
			return append(rows[:i:i], rows[i+1:]...), true
		}
	}
	return rows, false
}
