package model

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GenreReq covers both create and update payloads.
// swagger:model GenreReq
type GenreReq struct {
	Name string `json:"name" validate:"required,min=5,max=50"`
}
