// Package testutil provides in-memory test doubles shared across packages.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/willyyyaj/medical-system/internal/app/model"
	"github.com/willyyyaj/medical-system/internal/app/repository"
)

// MemRepo is an in-memory implementation of every repository interface,
// mirroring the SQL store's semantics closely enough for service tests:
// sequential ids, ErrNotFound on misses, and date ordering by string compare.
type MemRepo struct {
	mu sync.RWMutex

	Users         map[int]model.User
	Patients      map[int]model.Patient
	Doctors       map[int]model.Doctor
	Appointments  map[int]model.Appointment
	Tasks         map[int]model.Task
	Prescriptions map[int]model.Prescription

	nextID int

	// FailWith, when set, is returned by every method.
	FailWith error
}

// NewMemRepo creates an empty MemRepo.
func NewMemRepo() *MemRepo {
	return &MemRepo{
		Users:         make(map[int]model.User),
		Patients:      make(map[int]model.Patient),
		Doctors:       make(map[int]model.Doctor),
		Appointments:  make(map[int]model.Appointment),
		Tasks:         make(map[int]model.Task),
		Prescriptions: make(map[int]model.Prescription),
	}
}

func (m *MemRepo) id() int {
	m.nextID++
	return m.nextID
}

// --- UserRepository ---

func (m *MemRepo) CreateUser(ctx context.Context, user *model.User) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = m.id()
	user.CreatedAt = time.Now().UTC()
	m.Users[user.ID] = *user
	return nil
}

func (m *MemRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.Users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MemRepo) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.Users[id]; ok {
		user := u
		return &user, nil
	}
	return nil, repository.ErrNotFound
}

// --- PatientRepository ---

func (m *MemRepo) CreatePatient(ctx context.Context, patient *model.Patient) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	patient.ID = m.id()
	patient.CreatedAt = time.Now().UTC()
	patient.UpdatedAt = patient.CreatedAt
	m.Patients[patient.ID] = *patient
	return nil
}

func (m *MemRepo) GetPatientByID(ctx context.Context, id int) (*model.Patient, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.Patients[id]; ok {
		patient := p
		return &patient, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MemRepo) GetPatientByUserID(ctx context.Context, userID int) (*model.Patient, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.Patients {
		if p.UserID != nil && *p.UserID == userID {
			patient := p
			return &patient, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MemRepo) ListPatients(ctx context.Context, offset, limit int) ([]model.Patient, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	patients := make([]model.Patient, 0, len(m.Patients))
	for _, p := range m.Patients {
		patients = append(patients, p)
	}
	sort.Slice(patients, func(i, j int) bool { return patients[i].ID < patients[j].ID })
	return window(patients, offset, limit), nil
}

func (m *MemRepo) ListPatientsByIDs(ctx context.Context, ids []int) ([]model.Patient, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	patients := []model.Patient{}
	for _, id := range ids {
		if p, ok := m.Patients[id]; ok {
			patients = append(patients, p)
		}
	}
	sort.Slice(patients, func(i, j int) bool { return patients[i].ID < patients[j].ID })
	return patients, nil
}

// --- DoctorRepository ---

func (m *MemRepo) CreateDoctor(ctx context.Context, doctor *model.Doctor) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	doctor.ID = m.id()
	doctor.CreatedAt = time.Now().UTC()
	doctor.UpdatedAt = doctor.CreatedAt
	m.Doctors[doctor.ID] = *doctor
	return nil
}

func (m *MemRepo) GetDoctorByID(ctx context.Context, id int) (*model.Doctor, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.Doctors[id]; ok {
		doctor := d
		return &doctor, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MemRepo) GetDoctorByUserID(ctx context.Context, userID int) (*model.Doctor, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.Doctors {
		if d.UserID != nil && *d.UserID == userID {
			doctor := d
			return &doctor, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MemRepo) ListDoctors(ctx context.Context, offset, limit int) ([]model.Doctor, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	doctors := make([]model.Doctor, 0, len(m.Doctors))
	for _, d := range m.Doctors {
		doctors = append(doctors, d)
	}
	sort.Slice(doctors, func(i, j int) bool { return doctors[i].ID < doctors[j].ID })
	return window(doctors, offset, limit), nil
}

// --- AppointmentRepository ---

func (m *MemRepo) CreateAppointment(ctx context.Context, appt *model.Appointment) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	appt.ID = m.id()
	now := time.Now().UTC()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	if appt.AppointmentType == "" {
		appt.AppointmentType = model.AppointmentScheduled
	}
	m.Appointments[appt.ID] = *appt
	return nil
}

func (m *MemRepo) GetAppointmentByID(ctx context.Context, id int) (*model.Appointment, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.Appointments[id]; ok {
		appt := a
		return &appt, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MemRepo) DeleteAppointment(ctx context.Context, id int) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Appointments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Appointments, id)
	for taskID, task := range m.Tasks {
		if task.AppointmentID != nil && *task.AppointmentID == id {
			delete(m.Tasks, taskID)
		}
	}
	for presID, pres := range m.Prescriptions {
		if pres.AppointmentID != nil && *pres.AppointmentID == id {
			delete(m.Prescriptions, presID)
		}
	}
	return nil
}

func (m *MemRepo) ListAppointmentsByPatient(ctx context.Context, patientID int) ([]model.Appointment, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return m.filterAppointments(func(a model.Appointment) bool { return a.PatientID == patientID }), nil
}

func (m *MemRepo) ListAppointmentsByDoctor(ctx context.Context, doctorID int) ([]model.Appointment, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return m.filterAppointments(func(a model.Appointment) bool { return a.DoctorID == doctorID }), nil
}

func (m *MemRepo) DistinctPatientIDsByDoctor(ctx context.Context, doctorID int) ([]int, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := map[int]bool{}
	for _, a := range m.Appointments {
		if a.DoctorID == doctorID {
			seen[a.PatientID] = true
		}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (m *MemRepo) NextUpcomingForPatient(ctx context.Context, patientID int, after string) (*model.Appointment, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var next *model.Appointment
	for _, a := range m.Appointments {
		if a.PatientID != patientID || a.AppointmentDate < after {
			continue
		}
		if next == nil || a.AppointmentDate < next.AppointmentDate {
			appt := a
			next = &appt
		}
	}
	if next == nil {
		return nil, repository.ErrNotFound
	}
	return next, nil
}

func (m *MemRepo) UpdateSummaryAndTags(ctx context.Context, id int, summary string, tags *string) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	appt, ok := m.Appointments[id]
	if !ok {
		return repository.ErrNotFound
	}
	appt.Summary = &summary
	appt.Tags = tags
	appt.UpdatedAt = time.Now().UTC()
	m.Appointments[id] = appt
	return nil
}

func (m *MemRepo) filterAppointments(keep func(model.Appointment) bool) []model.Appointment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	appointments := []model.Appointment{}
	for _, a := range m.Appointments {
		if keep(a) {
			appointments = append(appointments, a)
		}
	}
	sort.Slice(appointments, func(i, j int) bool {
		return appointments[i].AppointmentDate > appointments[j].AppointmentDate
	})
	return appointments
}

// --- TaskRepository ---

func (m *MemRepo) CreateTask(ctx context.Context, task *model.Task) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task.ID = m.id()
	task.CreatedAt = time.Now().UTC()
	m.Tasks[task.ID] = *task
	return nil
}

func (m *MemRepo) GetTaskByID(ctx context.Context, id int) (*model.Task, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.Tasks[id]; ok {
		task := t
		return &task, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MemRepo) UpdateTask(ctx context.Context, task *model.Task) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Tasks[task.ID]; !ok {
		return repository.ErrNotFound
	}
	m.Tasks[task.ID] = *task
	return nil
}

func (m *MemRepo) ListTasksByPatient(ctx context.Context, patientID int) ([]model.Task, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return m.filterTasks(func(t model.Task) bool { return t.PatientID == patientID }), nil
}

func (m *MemRepo) ListTasksByAppointment(ctx context.Context, appointmentID int) ([]model.Task, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return m.filterTasks(func(t model.Task) bool {
		return t.AppointmentID != nil && *t.AppointmentID == appointmentID
	}), nil
}

func (m *MemRepo) ListPendingTasksByPatient(ctx context.Context, patientID int) ([]model.Task, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return m.filterTasks(func(t model.Task) bool {
		return t.PatientID == patientID && !t.IsCompleted
	}), nil
}

func (m *MemRepo) filterTasks(keep func(model.Task) bool) []model.Task {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tasks := []model.Task{}
	for _, t := range m.Tasks {
		if keep(t) {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

// --- PrescriptionRepository ---

func (m *MemRepo) CreatePrescription(ctx context.Context, p *model.Prescription) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.id()
	p.CreatedAt = time.Now().UTC()
	m.Prescriptions[p.ID] = *p
	return nil
}

func (m *MemRepo) GetPrescriptionByID(ctx context.Context, id int) (*model.Prescription, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.Prescriptions[id]; ok {
		pres := p
		return &pres, nil
	}
	return nil, repository.ErrNotFound
}

func (m *MemRepo) DeletePrescription(ctx context.Context, id int) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Prescriptions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Prescriptions, id)
	return nil
}

func (m *MemRepo) ListPrescriptionsByPatient(ctx context.Context, patientID int) ([]model.Prescription, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	prescriptions := []model.Prescription{}
	for _, p := range m.Prescriptions {
		if p.PatientID == patientID {
			prescriptions = append(prescriptions, p)
		}
	}
	sort.Slice(prescriptions, func(i, j int) bool { return prescriptions[i].ID < prescriptions[j].ID })
	return prescriptions, nil
}

func window[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
