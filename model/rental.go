// model/rental.go
package model

import "time"

// Rental is OPEN while DateReturned and RentalFee are unset. The return
// workflow sets both together, exactly once; a closed rental never
// reopens.
type Rental struct {
	ID           int64      `json:"id"`
	CustomerID   int64      `json:"customer_id"`
	MovieID      int64      `json:"movie_id"`
	DateOut      time.Time  `json:"date_out"`
	DateReturned *time.Time `json:"date_returned,omitempty"`
	RentalFee    *float64   `json:"rental_fee,omitempty"`
}

// Closed reports whether the rental has been returned. Both fields are
// written in the same update, so checking either would do; requiring
// both keeps a half-written row from passing as closed.
func (r *Rental) Closed() bool {
	return r.DateReturned != nil && r.RentalFee != nil
}

// RentalReq is the payload for both checkout and return: the pair of
// ids identifies the rental.
// swagger:model RentalReq
type RentalReq struct {
	CustomerID int64 `json:"customer_id" validate:"required,gt=0"`
	MovieID    int64 `json:"movie_id" validate:"required,gt=0"`
}
