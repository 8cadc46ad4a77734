package model

type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=120"`
}

type UpdateCategoryRequest struct {
	ID   int64  `json:"id" binding:"required"`
	Name string `json:"name" binding:"required,max=120"`
}
