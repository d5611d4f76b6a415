package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "", "Directory of .toml scene files (default: scenes or ../scenes)")
	flag.Parse()

	var webServer *server.Server
	if *scenesDir != "" {
		webServer = server.NewServer(*port, *scenesDir)
	} else {
		webServer = server.NewServer(*port)
	}

	log.Printf("Whitted Raytracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=mirror", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
