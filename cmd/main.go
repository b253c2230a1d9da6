package main

import (
	"go.uber.org/fx"

	"commerce-api/internal/service"
)

func main() {
	fx.New(service.Options()).Run()
}
