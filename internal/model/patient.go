package model

import "time"

type Patient struct {
	ID        int64     `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Email     string    `db:"email" json:"email"`
	BirthDate time.Time `db:"birth_date" json:"birth_date"`
}

type CreatePatientRequest struct {
	FirstName string    `json:"first_name" binding:"required,max=80"`
	LastName  string    `json:"last_name" binding:"required,max=80"`
	Email     string    `json:"email" binding:"required,email,max=200"`
	BirthDate time.Time `json:"birth_date" binding:"required"`
}

type UpdatePatientRequest struct {
	ID        int64     `json:"id" binding:"required"`
	FirstName string    `json:"first_name" binding:"required,max=80"`
	LastName  string    `json:"last_name" binding:"required,max=80"`
	Email     string    `json:"email" binding:"required,email,max=200"`
	BirthDate time.Time `json:"birth_date" binding:"required"`
}
