package main

import (
	"os"

	therapydcmder "github.com/Juliand6/therapy-assistant/cmd/therapyd"
)

func main() {
	cmd := therapydcmder.NewTherapydCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
