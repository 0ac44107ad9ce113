// cmd/main.go
package main

import (
	"journey-api/app"
)

// @title           Journey API
// @version         1.0
// @description     Weekly journey, retrospect and to-do tracking API.

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
