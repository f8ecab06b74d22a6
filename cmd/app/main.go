package main

import (
	"go.uber.org/fx"

	"github.com/dharshanac/ZeilCardValidatorApi/internal/app"
)

func main() {
	fx.New(app.CreateApp()).Run()
}
