package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medcamp/mcms/internal/lib/payment"
	"github.com/medcamp/mcms/internal/model"
	"github.com/medcamp/mcms/internal/repository"
)

// In-memory stores backing the service tests. They reproduce the sentinel
// error contract of the pgx repositories, including the coupling between
// registrations and the camp participant counter.

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

type fakeCampStore struct {
	mu    sync.Mutex
	camps map[string]*model.Camp
}

func newFakeCampStore() *fakeCampStore {
	return &fakeCampStore{camps: make(map[string]*model.Camp)}
}

func (s *fakeCampStore) Create(_ context.Context, camp *model.Camp) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	camp.ID = uuid.New().String()
	camp.ParticipantCount = 0
	camp.CreatedAt = time.Now().UTC()
	clone := *camp
	s.camps[camp.ID] = &clone
	return camp.ID, nil
}

func (s *fakeCampStore) GetByID(_ context.Context, id string) (*model.Camp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	camp, ok := s.camps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *camp
	return &clone, nil
}

func (s *fakeCampStore) List(_ context.Context) ([]model.Camp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var camps []model.Camp
	for _, camp := range s.camps {
		camps = append(camps, *camp)
	}
	return camps, nil
}

func (s *fakeCampStore) ListUpcoming(_ context.Context, from time.Time) ([]model.Camp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var camps []model.Camp
	for _, camp := range s.camps {
		if !camp.DateTime.Before(from) {
			camps = append(camps, *camp)
		}
	}
	return camps, nil
}

func (s *fakeCampStore) Popular(_ context.Context, limit int) ([]model.Camp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var camps []model.Camp
	for _, camp := range s.camps {
		camps = append(camps, *camp)
	}
	sort.Slice(camps, func(i, j int) bool {
		return camps[i].ParticipantCount > camps[j].ParticipantCount
	})
	if len(camps) > limit {
		camps = camps[:limit]
	}
	return camps, nil
}

func (s *fakeCampStore) Update(_ context.Context, id string, update model.CampUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	camp, ok := s.camps[id]
	if !ok {
		return repository.ErrNoChange
	}

	changed := false
	if update.Name != nil && *update.Name != camp.Name {
		camp.Name = *update.Name
		changed = true
	}
	if update.Image != nil && *update.Image != camp.Image {
		camp.Image = *update.Image
		changed = true
	}
	if update.Fees != nil && *update.Fees != camp.Fees {
		camp.Fees = *update.Fees
		changed = true
	}
	if update.DateTime != nil && !update.DateTime.Equal(camp.DateTime) {
		camp.DateTime = *update.DateTime
		changed = true
	}
	if update.Location != nil && *update.Location != camp.Location {
		camp.Location = *update.Location
		changed = true
	}
	if update.HealthcareProfessional != nil && *update.HealthcareProfessional != camp.HealthcareProfessional {
		camp.HealthcareProfessional = *update.HealthcareProfessional
		changed = true
	}
	if update.Description != nil && *update.Description != camp.Description {
		camp.Description = *update.Description
		changed = true
	}
	if !changed {
		return repository.ErrNoChange
	}
	return nil
}

func (s *fakeCampStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.camps[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.camps, id)
	return nil
}

type fakeParticipantStore struct {
	mu           sync.Mutex
	camps        *fakeCampStore
	participants map[string]*model.Participant
}

func newFakeParticipantStore(camps *fakeCampStore) *fakeParticipantStore {
	return &fakeParticipantStore{
		camps:        camps,
		participants: make(map[string]*model.Participant),
	}
}

func (s *fakeParticipantStore) Register(_ context.Context, p *model.Participant) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camps.mu.Lock()
	defer s.camps.mu.Unlock()

	camp, ok := s.camps.camps[p.CampID]
	if !ok {
		return "", repository.ErrNotFound
	}
	for _, existing := range s.participants {
		if existing.CampID == p.CampID && existing.UserEmail == p.UserEmail {
			return "", repository.ErrDuplicateRegistration
		}
	}

	p.ID = uuid.New().String()
	p.ConfirmationStatus = model.ConfirmationPending
	p.PaymentStatus = model.PaymentUnpaid
	p.CreatedAt = time.Now().UTC()
	clone := *p
	s.participants[p.ID] = &clone
	camp.ParticipantCount++
	return p.ID, nil
}

func (s *fakeParticipantStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camps.mu.Lock()
	defer s.camps.mu.Unlock()

	p, ok := s.participants[id]
	if !ok {
		return repository.ErrNotFound
	}
	if p.PaymentStatus == model.PaymentPaid && p.ConfirmationStatus == model.ConfirmationConfirmed {
		return repository.ErrCancellationLocked
	}
	delete(s.participants, id)
	if camp, ok := s.camps.camps[p.CampID]; ok {
		camp.ParticipantCount--
	}
	return nil
}

func (s *fakeParticipantStore) GetByID(_ context.Context, id string) (*model.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.participants[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *fakeParticipantStore) GetByEmailAndCamp(_ context.Context, email, campID string) (*model.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.participants {
		if p.UserEmail == email && p.CampID == campID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeParticipantStore) List(_ context.Context) ([]model.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var participants []model.Participant
	for _, p := range s.participants {
		participants = append(participants, *p)
	}
	return participants, nil
}

func (s *fakeParticipantStore) ListByEmail(_ context.Context, email string) ([]model.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var participants []model.Participant
	for _, p := range s.participants {
		if p.UserEmail == email {
			participants = append(participants, *p)
		}
	}
	return participants, nil
}

func (s *fakeParticipantStore) Confirm(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.participants[id]
	if !ok || p.ConfirmationStatus != model.ConfirmationPending {
		return repository.ErrNotFound
	}
	p.ConfirmationStatus = model.ConfirmationConfirmed
	return nil
}

func (s *fakeParticipantStore) MarkPaid(_ context.Context, email, campID, transactionID string, amount float64, paidAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.participants {
		if p.UserEmail == email && p.CampID == campID {
			p.PaymentStatus = model.PaymentPaid
			p.TransactionID = transactionID
			p.AmountPaid = amount
			paid := paidAt
			p.PaymentDate = &paid
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeParticipantStore) UpdateProfile(_ context.Context, id string, update model.ParticipantProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.participants[id]
	if !ok {
		return repository.ErrNoChange
	}

	changed := false
	if update.Name != nil && *update.Name != p.Name {
		p.Name = *update.Name
		changed = true
	}
	if update.Age != nil && *update.Age != p.Age {
		p.Age = *update.Age
		changed = true
	}
	if update.Phone != nil && *update.Phone != p.Phone {
		p.Phone = *update.Phone
		changed = true
	}
	if update.Gender != nil && *update.Gender != p.Gender {
		p.Gender = *update.Gender
		changed = true
	}
	if update.EmergencyContact != nil && *update.EmergencyContact != p.EmergencyContact {
		p.EmergencyContact = *update.EmergencyContact
		changed = true
	}
	if !changed {
		return repository.ErrNoChange
	}
	return nil
}

func (s *fakeParticipantStore) PaymentHistory(_ context.Context, email string) ([]model.PaymentHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camps.mu.Lock()
	defer s.camps.mu.Unlock()

	var entries []model.PaymentHistoryEntry
	for _, p := range s.participants {
		if p.UserEmail != email || p.PaymentStatus != model.PaymentPaid {
			continue
		}
		camp, ok := s.camps.camps[p.CampID]
		if !ok {
			continue
		}
		entries = append(entries, model.PaymentHistoryEntry{
			CampName:           camp.Name,
			Fees:               camp.Fees,
			PaymentStatus:      p.PaymentStatus,
			ConfirmationStatus: p.ConfirmationStatus,
			TransactionID:      p.TransactionID,
			PaymentDate:        p.PaymentDate,
		})
	}
	return entries, nil
}

type fakePaymentStore struct {
	mu       sync.Mutex
	payments map[string]*model.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: make(map[string]*model.Payment)}
}

func (s *fakePaymentStore) Create(_ context.Context, payment *model.Payment) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payment.ID = uuid.New().String()
	payment.CreatedAt = time.Now().UTC()
	clone := *payment
	s.payments[payment.ID] = &clone
	return payment.ID, nil
}

func (s *fakePaymentStore) GetByID(_ context.Context, id string) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *fakePaymentStore) ListByEmail(_ context.Context, email string) ([]model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payments []model.Payment
	for _, p := range s.payments {
		if p.ParticipantEmail == email {
			payments = append(payments, *p)
		}
	}
	return payments, nil
}

func (s *fakePaymentStore) UpdateStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Status = status
	return nil
}

func (s *fakePaymentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.payments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.payments, id)
	return nil
}

func (s *fakePaymentStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payments)
}

type fakeFeedbackStore struct {
	mu      sync.Mutex
	entries map[string]*model.Feedback
}

func newFakeFeedbackStore() *fakeFeedbackStore {
	return &fakeFeedbackStore{entries: make(map[string]*model.Feedback)}
}

func (s *fakeFeedbackStore) Create(_ context.Context, fb *model.Feedback) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fb.ID = uuid.New().String()
	fb.CreatedAt = time.Now().UTC()
	clone := *fb
	s.entries[fb.ID] = &clone
	return fb.ID, nil
}

func (s *fakeFeedbackStore) List(_ context.Context) ([]model.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []model.Feedback
	for _, fb := range s.entries {
		entries = append(entries, *fb)
	}
	return entries, nil
}

func (s *fakeFeedbackStore) ListByCamp(_ context.Context, campID string) ([]model.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []model.Feedback
	for _, fb := range s.entries {
		if fb.CampID == campID {
			entries = append(entries, *fb)
		}
	}
	return entries, nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, user *model.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = uuid.New().String()
	if user.Role == "" {
		user.Role = model.RoleParticipant
	}
	user.CreatedAt = time.Now().UTC()
	clone := *user
	s.users[user.ID] = &clone
	return user.ID, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []model.User
	for _, u := range s.users {
		users = append(users, *u)
	}
	return users, nil
}

func (s *fakeUserStore) SetRole(_ context.Context, id string, role model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Role = role
	return nil
}

type fakeProcessor struct {
	err     error
	intents int
}

func (p *fakeProcessor) CreateIntent(_ context.Context, amount float64) (*payment.Intent, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.intents++
	return &payment.Intent{ID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}
