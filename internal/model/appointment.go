package model

import "time"

type Appointment struct {
	ID              int64     `db:"id" json:"id"`
	PatientID       int64     `db:"patient_id" json:"patient_id"`
	DoctorID        int64     `db:"doctor_id" json:"doctor_id"`
	ClinicID        int64     `db:"clinic_id" json:"clinic_id"`
	CategoryID      int64     `db:"category_id" json:"category_id"`
	StartUTC        time.Time `db:"start_utc" json:"start_utc"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
}

// EndUTC returns the exclusive end of the booked interval.
func (a *Appointment) EndUTC() time.Time {
	return a.StartUTC.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// AppointmentDetail is the denormalized read model: an appointment with the
// referenced names joined on for response shaping.
type AppointmentDetail struct {
	Appointment
	PatientFirstName string `db:"patient_first_name" json:"patient_first_name"`
	PatientLastName  string `db:"patient_last_name" json:"patient_last_name"`
	DoctorFirstName  string `db:"doctor_first_name" json:"doctor_first_name"`
	DoctorLastName   string `db:"doctor_last_name" json:"doctor_last_name"`
	SpecialityID     int64  `db:"speciality_id" json:"speciality_id"`
	SpecialityName   string `db:"speciality_name" json:"speciality_name"`
	ClinicName       string `db:"clinic_name" json:"clinic_name"`
	CategoryName     string `db:"category_name" json:"category_name"`
}

type CreateAppointmentRequest struct {
	PatientID       int64     `json:"patient_id" binding:"required"`
	DoctorID        int64     `json:"doctor_id" binding:"required"`
	ClinicID        int64     `json:"clinic_id" binding:"required"`
	CategoryID      int64     `json:"category_id" binding:"required"`
	StartUTC        time.Time `json:"start_utc" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required"`
}

type UpdateAppointmentRequest struct {
	ID              int64     `json:"id" binding:"required"`
	PatientID       int64     `json:"patient_id" binding:"required"`
	DoctorID        int64     `json:"doctor_id" binding:"required"`
	ClinicID        int64     `json:"clinic_id" binding:"required"`
	CategoryID      int64     `json:"category_id" binding:"required"`
	StartUTC        time.Time `json:"start_utc" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required"`
}
