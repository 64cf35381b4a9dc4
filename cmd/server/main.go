package main

import (
	"github.com/poolwatch/poolfee-backend/internal/server"
)

func main() {
	server.Init()
}
