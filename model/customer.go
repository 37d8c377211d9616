package model

type Customer struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	IsGold bool   `json:"is_gold"`
	Phone  string `json:"phone"`
}

// CustomerReq represents the create-customer payload
// swagger:model CustomerReq
type CustomerReq struct {
	Name   string `json:"name" validate:"required,min=3,max=64"`
	IsGold bool   `json:"is_gold"`
	Phone  string `json:"phone" validate:"required,min=5,max=20"`
}
