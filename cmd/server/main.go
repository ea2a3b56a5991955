package main

import "salesdash/internal/app/server"

func main() {
	server.Run()
}
