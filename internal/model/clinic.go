package model

type Clinic struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Address string `db:"address" json:"address,omitempty"`
}

type CreateClinicRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Address string `json:"address" binding:"max=250"`
}

type UpdateClinicRequest struct {
	ID      int64  `json:"id" binding:"required"`
	Name    string `json:"name" binding:"required,max=120"`
	Address string `json:"address" binding:"max=250"`
}
