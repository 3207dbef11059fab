package main

import (
	"github.com/joho/godotenv"

	"folha/internal/app/server"
)

func main() {
	_ = godotenv.Load()
	server.Run()
}
