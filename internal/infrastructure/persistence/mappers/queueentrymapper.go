package mappers

import (
	"lineup/internal/domain/queue"
	"lineup/internal/infrastructure/persistence/models"
)

type QueueEntryMapper struct{}

func NewQueueEntryMapper() QueueEntryMapper {
	return QueueEntryMapper{}
}

func (m QueueEntryMapper) ToModel(t *queue.Ticket) *models.QueueEntryModel {
	model := &models.QueueEntryModel{
		ID:        t.ID(),
		Number:    t.Number(),
		Name:      t.Name(),
		CreatedAt: t.CreatedAt(),
	}
	if t.HasEmail() {
		email := t.Email()
		model.Email = &email
	}
	return model
}

func (m QueueEntryMapper) ToDomain(model *models.QueueEntryModel) (*queue.Ticket, error) {
	email := ""
	if model.Email != nil {
		email = *model.Email
	}
	return queue.ReconstructTicket(model.ID, model.Number, model.Name, email, model.CreatedAt)
}

func (m QueueEntryMapper) ToDomainList(ms []models.QueueEntryModel) ([]*queue.Ticket, error) {
	tickets := make([]*queue.Ticket, 0, len(ms))
	for i := range ms {
		t, err := m.ToDomain(&ms[i])
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}
