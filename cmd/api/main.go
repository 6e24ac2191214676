package main

import (
	appfx "github.com/bielborgesc/piggino/internal/fx"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		appfx.AppModule,
	).Run()
}
