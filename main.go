// Package main vidly API.
//
// @title           Vidly API
// @version         1.0
// @description     Video rental service (genres, movies, customers, rentals, returns, users).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"vidly/app/echoServer"
	authctrl "vidly/app/echoServer/controller/auth"
	customerctrl "vidly/app/echoServer/controller/customer"
	genrectrl "vidly/app/echoServer/controller/genre"
	moviectrl "vidly/app/echoServer/controller/movie"
	rentalctrl "vidly/app/echoServer/controller/rental"
	"vidly/app/echoServer/validation"
	"vidly/config"
	customerrepo "vidly/repository/customer"
	genrerepo "vidly/repository/genre"
	movierepo "vidly/repository/movie"
	rentalrepo "vidly/repository/rental"
	userrepo "vidly/repository/user"
	authsvc "vidly/service/auth"
	customersvc "vidly/service/customer"
	genresvc "vidly/service/genre"
	moviesvc "vidly/service/movie"
	rentalsvc "vidly/service/rental"
	"vidly/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	gr := genrerepo.New(db)
	cr := customerrepo.New(db)
	mr := movierepo.New(db)
	rr := rentalrepo.New(db)
	ur := userrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	gs := genresvc.New(gr)
	cs := customersvc.New(cr)
	ms := moviesvc.New(mr, gr)
	rs := rentalsvc.New(rr, cr, mr)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	genreC := &genrectrl.Controller{Svc: gs, V: v, Log: log}
	customerC := &customerctrl.Controller{Svc: cs, V: v, Log: log}
	movieC := &moviectrl.Controller{Svc: ms, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:     authC,
		Genre:    genreC,
		Customer: customerC,
		Movie:    movieC,
		Rental:   rentalC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
