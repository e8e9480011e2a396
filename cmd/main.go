package main

import (
	"log"

	"github.com/pubquiz-fans/site/cmd/app"
	"github.com/pubquiz-fans/site/internal/adapters/config"

	_ "time/tzdata"
)

func main() {
	cfg := config.Get()
	a, err := app.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	if err = a.Run(); err != nil {
		log.Panic(err)
	}
}
