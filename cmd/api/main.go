package main

import (
	"log"

	"AthLink-backend/internal/server"
)

// @title AthLink API
// @version 1.0
// @description Backend API for the AthLink athlete recruiting platform.
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {

	server := server.NewServer()

	err := server.ListenAndServe()
	if err != nil {
		log.Fatalf("cannot start server: %s", err)
	}
}
