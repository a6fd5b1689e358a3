package main

import (
	"log"

	"github.com/caseworks/heartmatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
