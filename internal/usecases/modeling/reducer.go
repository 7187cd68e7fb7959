package modeling

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/vfg2006/business-model-api/internal/domain"
	"github.com/vfg2006/business-model-api/pkg/utils"
)

// Taxas usadas na linha de funil criada junto com um novo canal
const (
	DefaultMQLToSQLRate  = 40
	DefaultSQLToDealRate = 35
)

// Edit é uma intenção do usuário sobre o modelo
type Edit interface {
	edit()
}

// EditField altera um campo de entrada de um registro
type EditField struct {
	Kind  domain.EntityKind `json:"kind"`
	ID    string            `json:"id"`
	Field string            `json:"field"`
	Value string            `json:"value"`
}

// AddRow cria um registro com os valores iniciais informados
type AddRow struct {
	Kind   domain.EntityKind `json:"kind"`
	Values map[string]string `json:"values"`
}

// DeleteRow exclui um registro pelo id
type DeleteRow struct {
	Kind domain.EntityKind `json:"kind"`
	ID   string            `json:"id"`
}

// SyncFunnel copia o total de deals do funil para os novos negócios de todos os períodos
type SyncFunnel struct{}

func (EditField) edit()  {}
func (AddRow) edit()     {}
func (DeleteRow) edit()  {}
func (SyncFunnel) edit() {}

// Reducer aplica edições sobre um snapshot sem alterá-lo
type Reducer struct {
	newID func() (string, error)
}

func NewReducer() *Reducer {
	return &Reducer{newID: utils.GenerateID}
}

// Reduce devolve o novo snapshot e as alterações a persistir, na ordem em que devem ser gravadas.
// Em caso de erro o snapshot original continua válido e nada deve ser persistido.
func (r *Reducer) Reduce(model *domain.Model, edit Edit) (*domain.Model, []domain.Change, error) {
	next := model.Clone()

	var changes []domain.Change
	var err error

	switch e := edit.(type) {
	case EditField:
		changes, err = r.editField(next, e)
	case AddRow:
		changes, err = r.addRow(next, e)
	case DeleteRow:
		changes, err = r.deleteRow(next, e)
	case SyncFunnel:
		changes = r.syncFunnel(next)
	default:
		err = errors.Wrapf(ErrUnknownEdit, "edição %T", edit)
	}

	if err != nil {
		return model, nil, err
	}

	return next, changes, nil
}

func (r *Reducer) editField(m *domain.Model, e EditField) ([]domain.Change, error) {
	if !e.Kind.IsValid() {
		return nil, NewRecordError(ErrUnknownKind, e.Kind, e.ID, string(e.Kind))
	}

	current, index, found := m.Find(e.Kind, e.ID)
	if !found {
		return nil, NewRecordError(ErrRecordNotFound, e.Kind, e.ID, "")
	}

	// Apenas o primeiro período recebe assinantes existentes digitados, os demais vêm da cascata
	if e.Kind == domain.KindActiveSubscribers && index > 0 && normalizeField(e.Field) == "existingsubs" {
		return nil, NewRecordError(ErrDerivedField, e.Kind, e.ID, e.Field)
	}

	// Linhas de funil vinculadas recebem mql e nome do canal, não da digitação
	if funnel, ok := current.(domain.FunnelConversion); ok && funnel.ChannelID != "" {
		switch normalizeField(e.Field) {
		case "mql", "channel":
			return nil, NewRecordError(ErrDerivedField, e.Kind, e.ID, e.Field)
		}
	}

	updated, err := Evaluate(current, e.Field, e.Value)
	if err != nil {
		return nil, NewRecordError(errors.Cause(err), e.Kind, e.ID, e.Field)
	}

	m.Replace(updated)
	changes := []domain.Change{domain.UpsertChange(updated)}

	switch rec := updated.(type) {
	case domain.MarketingChannel:
		changes = append(changes, syncLinkedFunnel(m, rec)...)
	case domain.ActiveSubscriberPeriod:
		changes = append(changes, rollForward(m, index, index+1)...)
	}

	return changes, nil
}

func (r *Reducer) addRow(m *domain.Model, e AddRow) ([]domain.Change, error) {
	if !e.Kind.IsValid() {
		return nil, NewRecordError(ErrUnknownKind, e.Kind, "", string(e.Kind))
	}

	id, err := r.newID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar id do registro")
	}

	record, _ := domain.NewRecord(e.Kind, m.OwnerID, id, m.NextPosition(e.Kind))

	// Um novo período continua a série: mês seguinte e existentes = fechamento anterior
	periods := m.ActiveSubscribers
	if period, ok := record.(domain.ActiveSubscriberPeriod); ok && len(periods) > 0 {
		last := periods[len(periods)-1]
		period.Month = utils.NextMonthName(last.Month)
		period.ExistingSubs = last.EndingSubs
		record = period

		if _, typed := lookupValue(e.Values, "existingsubs"); typed {
			return nil, NewRecordError(ErrDerivedField, e.Kind, id, "existingSubs")
		}
	}

	fields := make([]string, 0, len(e.Values))
	for field := range e.Values {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		record, err = Evaluate(record, field, e.Values[field])
		if err != nil {
			return nil, NewRecordError(errors.Cause(err), e.Kind, id, field)
		}
	}
	record = Recompute(record)

	m.Add(record)
	changes := []domain.Change{domain.UpsertChange(record)}

	if channel, ok := record.(domain.MarketingChannel); ok {
		funnelID, err := r.newID()
		if err != nil {
			return nil, errors.Wrap(err, "erro ao gerar id da linha de funil")
		}

		funnel := RecomputeFunnel(domain.FunnelConversion{
			ID:            funnelID,
			OwnerID:       m.OwnerID,
			Position:      m.NextPosition(domain.KindFunnelConversion),
			ChannelID:     channel.ID,
			Channel:       channel.Name,
			MQL:           channel.LeadsGenerated,
			MQLToSQLRate:  DefaultMQLToSQLRate,
			SQLToDealRate: DefaultSQLToDealRate,
		})
		m.Add(funnel)
		changes = append(changes, domain.UpsertChange(funnel))
	}

	return changes, nil
}

func (r *Reducer) deleteRow(m *domain.Model, e DeleteRow) ([]domain.Change, error) {
	if !e.Kind.IsValid() {
		return nil, NewRecordError(ErrUnknownKind, e.Kind, e.ID, string(e.Kind))
	}

	_, index, found := m.Find(e.Kind, e.ID)
	if !found {
		return nil, NewRecordError(ErrRecordNotFound, e.Kind, e.ID, "")
	}

	m.Remove(e.Kind, e.ID)
	changes := []domain.Change{domain.DeleteChange(e.Kind, e.ID)}

	switch e.Kind {
	case domain.KindMarketingChannel:
		for _, funnel := range append([]domain.FunnelConversion{}, m.FunnelConversions...) {
			if funnel.ChannelID == e.ID {
				m.Remove(domain.KindFunnelConversion, funnel.ID)
				changes = append(changes, domain.DeleteChange(domain.KindFunnelConversion, funnel.ID))
			}
		}
	case domain.KindActiveSubscribers:
		from := index - 1
		if from < 0 {
			from = 0
		}
		changes = append(changes, rollForward(m, from, from)...)
	}

	return changes, nil
}

func (r *Reducer) syncFunnel(m *domain.Model) []domain.Change {
	var deals int64
	for _, funnel := range m.FunnelConversions {
		deals += funnel.Deals
	}

	before := append([]domain.ActiveSubscriberPeriod{}, m.ActiveSubscribers...)
	for i := range m.ActiveSubscribers {
		m.ActiveSubscribers[i].NewDeals = deals
	}
	if len(m.ActiveSubscribers) > 0 {
		m.ActiveSubscribers[0].ExistingSubs = 0
	}

	m.ActiveSubscribers = RollForward(m.ActiveSubscribers, 0)

	return changedPeriods(before, m.ActiveSubscribers, 0)
}

// syncLinkedFunnel leva os leads e o nome do canal para as linhas de funil vinculadas a ele
func syncLinkedFunnel(m *domain.Model, channel domain.MarketingChannel) []domain.Change {
	var changes []domain.Change

	for i, funnel := range m.FunnelConversions {
		if funnel.ChannelID != channel.ID {
			continue
		}

		funnel.MQL = channel.LeadsGenerated
		funnel.Channel = channel.Name
		funnel = RecomputeFunnel(funnel)

		if funnel != m.FunnelConversions[i] {
			m.FunnelConversions[i] = funnel
			changes = append(changes, domain.UpsertChange(funnel))
		}
	}

	return changes
}

// rollForward refaz a cascata a partir de from e devolve os períodos alterados a partir de persistFrom
func rollForward(m *domain.Model, from, persistFrom int) []domain.Change {
	before := append([]domain.ActiveSubscriberPeriod{}, m.ActiveSubscribers...)
	m.ActiveSubscribers = RollForward(m.ActiveSubscribers, from)
	return changedPeriods(before, m.ActiveSubscribers, persistFrom)
}

func changedPeriods(before, after []domain.ActiveSubscriberPeriod, from int) []domain.Change {
	var changes []domain.Change
	for j := from; j < len(after) && j < len(before); j++ {
		if after[j] != before[j] {
			changes = append(changes, domain.UpsertChange(after[j]))
		}
	}
	return changes
}

func lookupValue(values map[string]string, normalized string) (string, bool) {
	for field, value := range values {
		if normalizeField(field) == normalized {
			return value, true
		}
	}
	return "", false
}

// Normalize recalcula todos os campos derivados e a cascata de assinantes.
// Devolve o snapshot consistente e apenas os registros cujo valor gravado estava defasado.
func Normalize(model *domain.Model) (*domain.Model, []domain.Change) {
	next := model.Clone()
	var changes []domain.Change

	for _, kind := range domain.AllKinds {
		if kind == domain.KindActiveSubscribers {
			continue
		}

		for _, record := range next.Records(kind) {
			fresh := Recompute(record)
			if fresh != record {
				next.Replace(fresh)
				changes = append(changes, domain.UpsertChange(fresh))
			}
		}
	}

	// O mql das linhas vinculadas acompanha os leads do canal
	for _, channel := range next.MarketingChannels {
		changes = mergeChanges(changes, syncLinkedFunnel(next, channel))
	}

	changes = append(changes, rollForward(next, 0, 0)...)

	return next, changes
}

// mergeChanges acrescenta extra em base, substituindo alterações anteriores do mesmo registro
func mergeChanges(base, extra []domain.Change) []domain.Change {
	for _, change := range extra {
		replaced := false
		for i := range base {
			if base[i].Kind == change.Kind && base[i].ID == change.ID {
				base[i] = change
				replaced = true
				break
			}
		}
		if !replaced {
			base = append(base, change)
		}
	}
	return base
}
