package main

import (
	"log"

	"github.com/ksergeev/resume-shortlister/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
