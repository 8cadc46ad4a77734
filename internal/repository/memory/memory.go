// Package memory provides an in-process implementation of the repository
// interfaces. It backs unit tests and mirrors the transactional overlap
// guarantee of the postgres store by re-checking under the write lock.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/clinicdesk/booking-api/internal/model"
	"github.com/clinicdesk/booking-api/internal/repository"
	"github.com/clinicdesk/booking-api/pkg/errors"
)

type Store struct {
	mu           sync.RWMutex
	clinics      map[int64]*model.Clinic
	specialities map[int64]*model.Speciality
	categories   map[int64]*model.Category
	doctors      map[int64]*model.Doctor
	patients     map[int64]*model.Patient
	appointments map[int64]*model.Appointment
	nextID       int64
}

func NewStore() *Store {
	return &Store{
		clinics:      make(map[int64]*model.Clinic),
		specialities: make(map[int64]*model.Speciality),
		categories:   make(map[int64]*model.Category),
		doctors:      make(map[int64]*model.Doctor),
		patients:     make(map[int64]*model.Patient),
		appointments: make(map[int64]*model.Appointment),
	}
}

func (s *Store) nextSeq() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) Exists(ctx context.Context, kind repository.EntityKind, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch kind {
	case repository.EntityClinic:
		_, ok := s.clinics[id]
		return ok, nil
	case repository.EntitySpeciality:
		_, ok := s.specialities[id]
		return ok, nil
	case repository.EntityCategory:
		_, ok := s.categories[id]
		return ok, nil
	case repository.EntityDoctor:
		_, ok := s.doctors[id]
		return ok, nil
	case repository.EntityPatient:
		_, ok := s.patients[id]
		return ok, nil
	}
	return false, fmt.Errorf("unknown entity kind %q", kind)
}

// Repository views over the shared store.

func (s *Store) Clinics() repository.ClinicRepository           { return &clinicRepo{s} }
func (s *Store) Specialities() repository.SpecialityRepository  { return &specialityRepo{s} }
func (s *Store) Categories() repository.CategoryRepository      { return &categoryRepo{s} }
func (s *Store) Doctors() repository.DoctorRepository           { return &doctorRepo{s} }
func (s *Store) Patients() repository.PatientRepository         { return &patientRepo{s} }
func (s *Store) Appointments() repository.AppointmentRepository { return &appointmentRepo{s} }

type clinicRepo struct{ s *Store }

func (r *clinicRepo) Create(ctx context.Context, clinic *model.Clinic) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	clinic.ID = r.s.nextSeq()
	cp := *clinic
	r.s.clinics[clinic.ID] = &cp
	return nil
}

func (r *clinicRepo) Get(ctx context.Context, id int64) (*model.Clinic, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	clinic, ok := r.s.clinics[id]
	if !ok {
		return nil, errors.NotFound("clinic", nil)
	}
	cp := *clinic
	return &cp, nil
}

func (r *clinicRepo) GetByName(ctx context.Context, name string) (*model.Clinic, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, clinic := range r.s.clinics {
		if clinic.Name == name {
			cp := *clinic
			return &cp, nil
		}
	}
	return nil, errors.NotFound("clinic", nil)
}

func (r *clinicRepo) Update(ctx context.Context, clinic *model.Clinic) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clinics[clinic.ID]; !ok {
		return errors.NotFound("clinic", nil)
	}
	cp := *clinic
	r.s.clinics[clinic.ID] = &cp
	return nil
}

func (r *clinicRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clinics[id]; !ok {
		return errors.NotFound("clinic", nil)
	}
	delete(r.s.clinics, id)
	return nil
}

func (r *clinicRepo) List(ctx context.Context) ([]*model.Clinic, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.Clinic, 0, len(r.s.clinics))
	for _, clinic := range r.s.clinics {
		cp := *clinic
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type specialityRepo struct{ s *Store }

func (r *specialityRepo) Create(ctx context.Context, speciality *model.Speciality) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	speciality.ID = r.s.nextSeq()
	cp := *speciality
	r.s.specialities[speciality.ID] = &cp
	return nil
}

func (r *specialityRepo) Get(ctx context.Context, id int64) (*model.Speciality, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	speciality, ok := r.s.specialities[id]
	if !ok {
		return nil, errors.NotFound("speciality", nil)
	}
	cp := *speciality
	return &cp, nil
}

func (r *specialityRepo) GetByName(ctx context.Context, name string) (*model.Speciality, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, speciality := range r.s.specialities {
		if speciality.Name == name {
			cp := *speciality
			return &cp, nil
		}
	}
	return nil, errors.NotFound("speciality", nil)
}

func (r *specialityRepo) Update(ctx context.Context, speciality *model.Speciality) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.specialities[speciality.ID]; !ok {
		return errors.NotFound("speciality", nil)
	}
	cp := *speciality
	r.s.specialities[speciality.ID] = &cp
	return nil
}

func (r *specialityRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.specialities[id]; !ok {
		return errors.NotFound("speciality", nil)
	}
	delete(r.s.specialities, id)
	return nil
}

func (r *specialityRepo) List(ctx context.Context) ([]*model.Speciality, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.Speciality, 0, len(r.s.specialities))
	for _, speciality := range r.s.specialities {
		cp := *speciality
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type categoryRepo struct{ s *Store }

func (r *categoryRepo) Create(ctx context.Context, category *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	category.ID = r.s.nextSeq()
	cp := *category
	r.s.categories[category.ID] = &cp
	return nil
}

func (r *categoryRepo) Get(ctx context.Context, id int64) (*model.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	category, ok := r.s.categories[id]
	if !ok {
		return nil, errors.NotFound("category", nil)
	}
	cp := *category
	return &cp, nil
}

func (r *categoryRepo) GetByName(ctx context.Context, name string) (*model.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, category := range r.s.categories {
		if category.Name == name {
			cp := *category
			return &cp, nil
		}
	}
	return nil, errors.NotFound("category", nil)
}

func (r *categoryRepo) Update(ctx context.Context, category *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[category.ID]; !ok {
		return errors.NotFound("category", nil)
	}
	cp := *category
	r.s.categories[category.ID] = &cp
	return nil
}

func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return errors.NotFound("category", nil)
	}
	delete(r.s.categories, id)
	return nil
}

func (r *categoryRepo) List(ctx context.Context) ([]*model.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.Category, 0, len(r.s.categories))
	for _, category := range r.s.categories {
		cp := *category
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type doctorRepo struct{ s *Store }

func (r *doctorRepo) Create(ctx context.Context, doctor *model.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	doctor.ID = r.s.nextSeq()
	cp := *doctor
	r.s.doctors[doctor.ID] = &cp
	return nil
}

func (r *doctorRepo) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	doctor, ok := r.s.doctors[id]
	if !ok {
		return nil, errors.NotFound("doctor", nil)
	}
	cp := *doctor
	return &cp, nil
}

func (r *doctorRepo) GetByTuple(ctx context.Context, firstName, lastName string, clinicID, specialityID int64) (*model.Doctor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, doctor := range r.s.doctors {
		if doctor.FirstName == firstName && doctor.LastName == lastName &&
			doctor.ClinicID == clinicID && doctor.SpecialityID == specialityID {
			cp := *doctor
			return &cp, nil
		}
	}
	return nil, errors.NotFound("doctor", nil)
}

func (r *doctorRepo) Update(ctx context.Context, doctor *model.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.doctors[doctor.ID]; !ok {
		return errors.NotFound("doctor", nil)
	}
	cp := *doctor
	r.s.doctors[doctor.ID] = &cp
	return nil
}

func (r *doctorRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.doctors[id]; !ok {
		return errors.NotFound("doctor", nil)
	}
	delete(r.s.doctors, id)
	return nil
}

func (r *doctorRepo) List(ctx context.Context) ([]*model.Doctor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.Doctor, 0, len(r.s.doctors))
	for _, doctor := range r.s.doctors {
		cp := *doctor
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (r *doctorRepo) CountByClinic(ctx context.Context, clinicID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var count int64
	for _, doctor := range r.s.doctors {
		if doctor.ClinicID == clinicID {
			count++
		}
	}
	return count, nil
}

func (r *doctorRepo) CountBySpeciality(ctx context.Context, specialityID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var count int64
	for _, doctor := range r.s.doctors {
		if doctor.SpecialityID == specialityID {
			count++
		}
	}
	return count, nil
}

type patientRepo struct{ s *Store }

func (r *patientRepo) Create(ctx context.Context, patient *model.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	patient.ID = r.s.nextSeq()
	cp := *patient
	r.s.patients[patient.ID] = &cp
	return nil
}

func (r *patientRepo) Get(ctx context.Context, id int64) (*model.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	patient, ok := r.s.patients[id]
	if !ok {
		return nil, errors.NotFound("patient", nil)
	}
	cp := *patient
	return &cp, nil
}

func (r *patientRepo) GetByEmail(ctx context.Context, email string) (*model.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, patient := range r.s.patients {
		if strings.EqualFold(patient.Email, email) {
			cp := *patient
			return &cp, nil
		}
	}
	return nil, errors.NotFound("patient", nil)
}

func (r *patientRepo) Update(ctx context.Context, patient *model.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.patients[patient.ID]; !ok {
		return errors.NotFound("patient", nil)
	}
	cp := *patient
	r.s.patients[patient.ID] = &cp
	return nil
}

func (r *patientRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.patients[id]; !ok {
		return errors.NotFound("patient", nil)
	}
	delete(r.s.patients, id)
	return nil
}

func (r *patientRepo) List(ctx context.Context) ([]*model.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.Patient, 0, len(r.s.patients))
	for _, patient := range r.s.patients {
		cp := *patient
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

type appointmentRepo struct{ s *Store }

func (r *appointmentRepo) Create(ctx context.Context, apt *model.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkOverlapLocked(apt, 0); err != nil {
		return err
	}

	apt.ID = r.s.nextSeq()
	cp := *apt
	r.s.appointments[apt.ID] = &cp
	return nil
}

func (r *appointmentRepo) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	apt, ok := r.s.appointments[id]
	if !ok {
		return nil, errors.NotFound("appointment", nil)
	}
	cp := *apt
	return &cp, nil
}

func (r *appointmentRepo) GetDetail(ctx context.Context, id int64) (*model.AppointmentDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	apt, ok := r.s.appointments[id]
	if !ok {
		return nil, errors.NotFound("appointment", nil)
	}
	return r.projectLocked(apt)
}

func (r *appointmentRepo) ListDetails(ctx context.Context) ([]*model.AppointmentDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.AppointmentDetail, 0, len(r.s.appointments))
	for _, apt := range r.s.appointments {
		detail, err := r.projectLocked(apt)
		if err != nil {
			return nil, err
		}
		out = append(out, detail)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartUTC.Before(out[j].StartUTC) })
	return out, nil
}

func (r *appointmentRepo) ListForPatientClinic(ctx context.Context, patientID, clinicID int64) ([]*model.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*model.Appointment
	for _, apt := range r.s.appointments {
		if apt.PatientID == patientID && apt.ClinicID == clinicID {
			cp := *apt
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartUTC.Before(out[j].StartUTC) })
	return out, nil
}

func (r *appointmentRepo) Update(ctx context.Context, apt *model.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.appointments[apt.ID]; !ok {
		return errors.NotFound("appointment", nil)
	}
	if err := r.checkOverlapLocked(apt, apt.ID); err != nil {
		return err
	}

	cp := *apt
	r.s.appointments[apt.ID] = &cp
	return nil
}

func (r *appointmentRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.appointments[id]; !ok {
		return errors.NotFound("appointment", nil)
	}
	delete(r.s.appointments, id)
	return nil
}

func (r *appointmentRepo) CountByClinic(ctx context.Context, clinicID int64) (int64, error) {
	return r.count(func(apt *model.Appointment) bool { return apt.ClinicID == clinicID }), nil
}

func (r *appointmentRepo) CountByDoctor(ctx context.Context, doctorID int64) (int64, error) {
	return r.count(func(apt *model.Appointment) bool { return apt.DoctorID == doctorID }), nil
}

func (r *appointmentRepo) CountByPatient(ctx context.Context, patientID int64) (int64, error) {
	return r.count(func(apt *model.Appointment) bool { return apt.PatientID == patientID }), nil
}

func (r *appointmentRepo) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	return r.count(func(apt *model.Appointment) bool { return apt.CategoryID == categoryID }), nil
}

func (r *appointmentRepo) count(match func(*model.Appointment) bool) int64 {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var count int64
	for _, apt := range r.s.appointments {
		if match(apt) {
			count++
		}
	}
	return count
}

func (r *appointmentRepo) checkOverlapLocked(candidate *model.Appointment, excludeID int64) error {
	end := candidate.StartUTC.Add(time.Duration(candidate.DurationMinutes) * time.Minute)
	for _, apt := range r.s.appointments {
		if apt.ID == excludeID {
			continue
		}
		if apt.PatientID != candidate.PatientID || apt.ClinicID != candidate.ClinicID {
			continue
		}
		if candidate.StartUTC.Before(apt.EndUTC()) && apt.StartUTC.Before(end) {
			return errors.Conflict("patient already has an appointment at this clinic during the selected time", nil)
		}
	}
	return nil
}

func (r *appointmentRepo) projectLocked(apt *model.Appointment) (*model.AppointmentDetail, error) {
	patient, ok := r.s.patients[apt.PatientID]
	if !ok {
		return nil, errors.NotFound("patient", nil)
	}
	doctor, ok := r.s.doctors[apt.DoctorID]
	if !ok {
		return nil, errors.NotFound("doctor", nil)
	}
	speciality, ok := r.s.specialities[doctor.SpecialityID]
	if !ok {
		return nil, errors.NotFound("speciality", nil)
	}
	clinic, ok := r.s.clinics[apt.ClinicID]
	if !ok {
		return nil, errors.NotFound("clinic", nil)
	}
	category, ok := r.s.categories[apt.CategoryID]
	if !ok {
		return nil, errors.NotFound("category", nil)
	}

	return &model.AppointmentDetail{
		Appointment:      *apt,
		PatientFirstName: patient.FirstName,
		PatientLastName:  patient.LastName,
		DoctorFirstName:  doctor.FirstName,
		DoctorLastName:   doctor.LastName,
		SpecialityID:     doctor.SpecialityID,
		SpecialityName:   speciality.Name,
		ClinicName:       clinic.Name,
		CategoryName:     category.Name,
	}, nil
}
