package main

import (
	"log"

	"github.com/NVIDIA/mlready/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
