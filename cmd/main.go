package main

import (
	"github.com/y00ns00/cafe-mobile-order/internal/app"
	"github.com/y00ns00/cafe-mobile-order/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
