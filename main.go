package main

import (
	"github.com/twlotto/backend/cmd/app"
)

func main() {
	app.Run()
}
