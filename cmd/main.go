package main

import (
	"clinic-appointment-api/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

// main boots the appointment API; all wiring lives in bootstrap.
func main() {
	app, err := bootstrap.New()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	app.Run()
}
