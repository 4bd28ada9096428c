package main

import (
	"log"

	"github.com/styleseat/mixpanel-celery/cmd/tracking/cmd"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}
