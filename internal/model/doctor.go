package model

type Doctor struct {
	ID           int64  `db:"id" json:"id"`
	FirstName    string `db:"first_name" json:"first_name"`
	LastName     string `db:"last_name" json:"last_name"`
	ClinicID     int64  `db:"clinic_id" json:"clinic_id"`
	SpecialityID int64  `db:"speciality_id" json:"speciality_id"`
}

type CreateDoctorRequest struct {
	FirstName    string `json:"first_name" binding:"required,max=80"`
	LastName     string `json:"last_name" binding:"required,max=80"`
	ClinicID     int64  `json:"clinic_id" binding:"required"`
	SpecialityID int64  `json:"speciality_id" binding:"required"`
}

type UpdateDoctorRequest struct {
	ID           int64  `json:"id" binding:"required"`
	FirstName    string `json:"first_name" binding:"required,max=80"`
	LastName     string `json:"last_name" binding:"required,max=80"`
	ClinicID     int64  `json:"clinic_id" binding:"required"`
	SpecialityID int64  `json:"speciality_id" binding:"required"`
}
