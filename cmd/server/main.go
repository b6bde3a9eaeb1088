package main

import (
	_ "eventhub/docs"

	"eventhub/cmd/server/cmd"
)

// @title EventHub API
// @version 1.0
// @description Sign-up, login, and owner-scoped event management.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	cmd.Execute()
}
