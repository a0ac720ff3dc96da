package main

import (
	"math"
	"strconv"

	"github.com/DavidBarbosag/taller2AREP/internal/request"
	"github.com/DavidBarbosag/taller2AREP/internal/router"
)

func registerRoutes(r *router.Router) {
	r.GETFunc("/App/hello", hello)
	r.GETFunc("/App/pi", pi)
}

func hello(req *request.Request) string {
	return "Hello " + req.Value("name")
}

func pi(*request.Request) string {
	return strconv.FormatFloat(math.Pi, 'f', -1, 64)
}
