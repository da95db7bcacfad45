// Package memory implements the repository interfaces over process memory.
// It mirrors the postgres semantics (status filters, ordering, not-found
// errors) and backs the service and handler tests.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/frontdesk-api/internal/model"
	"github.com/jwalitptl/frontdesk-api/internal/repository"
)

type Store struct {
	mu sync.RWMutex

	operators     map[int64]*model.Operator
	patients      map[int64]*model.Patient
	consultations []*model.Consultation
	appointments  map[int64]*model.Appointment
	genders       []*model.Gender
	cie10         []*model.Cie10Code
	outbox        []*model.OutboxEvent

	nextPatient      int64
	nextConsultation int64
	nextAppointment  int64

	// Err, when set, is returned by every call.
	Err error
	Now func() time.Time
}

func NewStore() *Store {
	return &Store{
		operators:    map[int64]*model.Operator{},
		patients:     map[int64]*model.Patient{},
		appointments: map[int64]*model.Appointment{},
		Now:          time.Now,
	}
}

func (s *Store) AddOperator(op *model.Operator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *op
	s.operators[op.ID] = &cp
}

func (s *Store) AddGender(g *model.Gender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.genders = append(s.genders, g)
}

func (s *Store) AddCie10(c *model.Cie10Code) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cie10 = append(s.cie10, c)
}

func (s *Store) Operators() repository.OperatorRepository         { return operatorRepo{s} }
func (s *Store) Patients() repository.PatientRepository           { return patientRepo{s} }
func (s *Store) Consultations() repository.ConsultationRepository { return consultationRepo{s} }
func (s *Store) Appointments() repository.AppointmentRepository   { return appointmentRepo{s} }
func (s *Store) Catalog() repository.CatalogRepository            { return catalogRepo{s} }
func (s *Store) Outbox() repository.OutboxRepository              { return outboxRepo{s} }

// PatientCount is the number of stored patient rows, whatever their status.
func (s *Store) PatientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.patients)
}

func (s *Store) ConsultationRows() []*model.Consultation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*model.Consultation(nil), s.consultations...)
}

func (s *Store) OutboxEvents() []*model.OutboxEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*model.OutboxEvent(nil), s.outbox...)
}

type operatorRepo struct{ s *Store }

func (r operatorRepo) GetByEmail(_ context.Context, email string) (*model.Operator, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, op := range r.s.operators {
		if op.Email == email {
			cp := *op
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r operatorRepo) Get(_ context.Context, id int64) (*model.Operator, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	op, ok := r.s.operators[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *op
	return &cp, nil
}

func (r operatorRepo) List(context.Context) ([]*model.Operator, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]*model.Operator, 0, len(r.s.operators))
	for _, op := range r.s.operators {
		cp := *op
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type patientRepo struct{ s *Store }

func (r patientRepo) Create(_ context.Context, p *model.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.nextPatient++
	p.ID = r.s.nextPatient
	p.CreatedAt = r.s.Now()
	cp := *p
	r.s.patients[p.ID] = &cp
	return nil
}

func (r patientRepo) Get(_ context.Context, id int64) (*model.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	p, ok := r.s.patients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r patientRepo) GetHeader(_ context.Context, id int64) (*model.PatientHeader, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	p, ok := r.s.patients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	h := &model.PatientHeader{
		ID:         p.ID,
		FirstNames: p.FirstNames,
		LastNames:  p.LastNames,
		Email:      p.Email,
		Address:    p.Address,
		GenderID:   p.GenderID,
	}
	for _, g := range r.s.genders {
		if g.ID == p.GenderID {
			h.GenderName = g.Name
		}
	}
	return h, nil
}

func (r patientRepo) ListByIDs(_ context.Context, ids []int64) ([]*model.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := []*model.Patient{}
	for _, id := range ids {
		p, ok := r.s.patients[id]
		if !ok || p.Status == model.PatientStatusInactive {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastNames != out[j].LastNames {
			return out[i].LastNames < out[j].LastNames
		}
		return out[i].FirstNames < out[j].FirstNames
	})
	return out, nil
}

func (r patientRepo) UpdateByEmail(_ context.Context, p *model.Patient) (*model.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var last *model.Patient
	for _, row := range r.s.patients {
		if row.Email != p.Email {
			continue
		}
		row.FirstNames = p.FirstNames
		row.LastNames = p.LastNames
		row.BirthDate = p.BirthDate
		row.GenderID = p.GenderID
		row.Address = p.Address
		row.ContactNumber = p.ContactNumber
		row.FamilyHistory = p.FamilyHistory
		row.Occupation = p.Occupation
		last = row
	}
	if last == nil {
		return nil, repository.ErrNotFound
	}
	cp := *last
	return &cp, nil
}

func (r patientRepo) SetStatus(_ context.Context, id int64, status model.StatusCode) (*model.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	p, ok := r.s.patients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.Status = status
	cp := *p
	return &cp, nil
}

type consultationRepo struct{ s *Store }

func (r consultationRepo) Create(_ context.Context, c *model.Consultation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.nextConsultation++
	c.ID = r.s.nextConsultation
	c.CreatedAt = r.s.Now()
	cp := *c
	cp.Codes = append([]model.Cie10Code(nil), c.Codes...)
	r.s.consultations = append(r.s.consultations, &cp)
	return nil
}

func (r consultationRepo) PatientIDsForOperator(_ context.Context, operatorID int64) ([]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	seen := map[int64]bool{}
	ids := []int64{}
	for _, c := range r.s.consultations {
		if c.OperatorID == operatorID && !seen[c.PatientID] {
			seen[c.PatientID] = true
			ids = append(ids, c.PatientID)
		}
	}
	return ids, nil
}

func (r consultationRepo) History(_ context.Context, patientID int64) ([]*model.ConsultationSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := []*model.ConsultationSummary{}
	for _, c := range r.s.consultations {
		if c.PatientID == patientID {
			out = append(out, &model.ConsultationSummary{Date: c.CreatedAt, Diagnosis: c.Diagnosis, Treatment: c.Treatment})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

type appointmentRepo struct{ s *Store }

func (r appointmentRepo) Create(_ context.Context, a *model.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.nextAppointment++
	a.ID = r.s.nextAppointment
	cp := *a
	r.s.appointments[a.ID] = &cp
	return nil
}

func (r appointmentRepo) Get(_ context.Context, id int64) (*model.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	a, ok := r.s.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r appointmentRepo) SetStatus(_ context.Context, id int64, status model.StatusCode) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	a, ok := r.s.appointments[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Status = status
	return nil
}

func (r appointmentRepo) ListForOperator(_ context.Context, operatorID int64) ([]*model.AppointmentWithPatient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := []*model.AppointmentWithPatient{}
	for _, a := range r.s.appointments {
		if a.OperatorID != operatorID || a.Status == model.AppointmentStatusCancelled {
			continue
		}
		row := &model.AppointmentWithPatient{Appointment: *a}
		if p, ok := r.s.patients[a.PatientID]; ok {
			row.PatientFirstNames = p.FirstNames
			row.PatientLastNames = p.LastNames
			row.PatientCardNumber = p.CardNumber
		}
		out = append(out, row)
	}
	// the literal layout sorts chronologically
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduledAt != out[j].ScheduledAt {
			return out[i].ScheduledAt < out[j].ScheduledAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type catalogRepo struct{ s *Store }

func (r catalogRepo) ListGenders(context.Context) ([]*model.Gender, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return append([]*model.Gender{}, r.s.genders...), nil
}

func (r catalogRepo) ListCie10(context.Context) ([]*model.Cie10Code, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return append([]*model.Cie10Code{}, r.s.cie10...), nil
}

func (r catalogRepo) GetCie10(_ context.Context, code string) (*model.Cie10Code, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, c := range r.s.cie10 {
		if strings.EqualFold(c.Code, code) {
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

type outboxRepo struct{ s *Store }

func (r outboxRepo) Create(_ context.Context, e *model.OutboxEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.Status = model.OutboxStatusPending
	e.CreatedAt = r.s.Now()
	e.UpdatedAt = e.CreatedAt
	cp := *e
	cp.Payload = append(json.RawMessage(nil), e.Payload...)
	r.s.outbox = append(r.s.outbox, &cp)
	return nil
}

func (r outboxRepo) GetPendingEvents(_ context.Context, limit int) ([]*model.OutboxEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	now := r.s.Now()
	out := []*model.OutboxEvent{}
	for _, e := range r.s.outbox {
		if len(out) == limit {
			break
		}
		due := e.RetryAt == nil || !e.RetryAt.After(now)
		if (e.Status == model.OutboxStatusPending || e.Status == model.OutboxStatusRetry) && due {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r outboxRepo) update(id uuid.UUID, fn func(*model.OutboxEvent)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, e := range r.s.outbox {
		if e.ID == id {
			fn(e)
			e.UpdatedAt = r.s.Now()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r outboxRepo) MarkProcessed(_ context.Context, id uuid.UUID) error {
	return r.update(id, func(e *model.OutboxEvent) {
		now := r.s.Now()
		e.Status = model.OutboxStatusProcessed
		e.ProcessedAt = &now
		e.ErrorMessage = nil
	})
}

func (r outboxRepo) MarkRetry(_ context.Context, id uuid.UUID, errMsg string, retryAt time.Time) error {
	return r.update(id, func(e *model.OutboxEvent) {
		e.Status = model.OutboxStatusRetry
		e.ErrorMessage = &errMsg
		e.RetryCount++
		e.RetryAt = &retryAt
	})
}

func (r outboxRepo) MarkFailed(_ context.Context, id uuid.UUID, errMsg string) error {
	return r.update(id, func(e *model.OutboxEvent) {
		e.Status = model.OutboxStatusFailed
		e.ErrorMessage = &errMsg
		e.RetryCount++
	})
}

func (r outboxRepo) DeleteProcessedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	kept := r.s.outbox[:0]
	var deleted int64
	for _, e := range r.s.outbox {
		if e.Status == model.OutboxStatusProcessed && e.ProcessedAt != nil && e.ProcessedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	r.s.outbox = kept
	return deleted, nil
}
