package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-light-transport/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	webServer := server.NewServer(*port)

	log.Printf("Light Transport Web Server")
	log.Printf("Render with http://localhost:%d/api/render?scene=cornell", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
