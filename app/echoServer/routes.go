package echoServer

import (
	authctrl "vidly/app/echoServer/controller/auth"
	customerctrl "vidly/app/echoServer/controller/customer"
	genrectrl "vidly/app/echoServer/controller/genre"
	moviectrl "vidly/app/echoServer/controller/movie"
	rentalctrl "vidly/app/echoServer/controller/rental"
	"vidly/app/echoServer/jwtx"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth     *authctrl.Controller
	Genre    *genrectrl.Controller
	Customer *customerctrl.Controller
	Movie    *moviectrl.Controller
	Rental   *rentalctrl.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/api")
	pub.POST("/users", c.Auth.Register)
	pub.POST("/auth", c.Auth.Login)

	pub.GET("/genres", c.Genre.List)
	pub.GET("/genres/:id", c.Genre.Detail)
	pub.POST("/genres", c.Genre.Create)
	pub.PUT("/genres/:id", c.Genre.Update)
	pub.DELETE("/genres/:id", c.Genre.Delete)

	pub.GET("/customers", c.Customer.List)
	pub.GET("/movies", c.Movie.List)
	pub.GET("/movies/:id", c.Movie.Detail)
	pub.GET("/rentals", c.Rental.List)

	// Auth
	auth := e.Group("/api")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
	}))
	auth.Use(withUserID)

	auth.GET("/users/me", c.Auth.Me)

	auth.POST("/customers", c.Customer.Create)
	auth.POST("/movies", c.Movie.Create)

	auth.POST("/rentals", c.Rental.Checkout)
	auth.POST("/returns", c.Rental.Return)
}

// withUserID copies the verified token's subject into the context so
// controllers never touch the raw token.
func withUserID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, err := jwtx.UserIDFromContext(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		c.Set("user_id", uid)
		return next(c)
	}
}
