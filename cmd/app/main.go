package main

import (
	"github.com/humanbelnik/watchnext/internal/app"
	"github.com/humanbelnik/watchnext/internal/config"
)

func main() {
	app.Go(config.Load())
}
