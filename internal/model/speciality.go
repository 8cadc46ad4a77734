package model

type Speciality struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type CreateSpecialityRequest struct {
	Name string `json:"name" binding:"required,max=120"`
}

type UpdateSpecialityRequest struct {
	ID   int64  `json:"id" binding:"required"`
	Name string `json:"name" binding:"required,max=120"`
}
