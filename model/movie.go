// model/movie.go
package model

type Movie struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	GenreID         int64   `json:"genre_id"`
	GenreName       string  `json:"genre_name,omitempty"`
	NumberInStock   int64   `json:"number_in_stock"`
	DailyRentalRate float64 `json:"daily_rental_rate"`
}

// MovieReq represents the create-movie payload
// swagger:model MovieReq
type MovieReq struct {
	Title           string  `json:"title" validate:"required,min=3,max=255"`
	GenreID         int64   `json:"genre_id" validate:"required,gt=0"`
	NumberInStock   int64   `json:"number_in_stock" validate:"gte=0"`
	DailyRentalRate float64 `json:"daily_rental_rate" validate:"gte=0"`
}
