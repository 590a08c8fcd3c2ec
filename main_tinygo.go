//go:build tinygo

package main

import (
	"points/app"
	"points/hal"
)

func main() {
	app.Run(hal.New())
}
