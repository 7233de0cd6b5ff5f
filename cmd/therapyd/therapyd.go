// Package therapydcmder
package therapydcmder

import (
	"github.com/spf13/cobra"

	servecmder "github.com/Juliand6/therapy-assistant/cmd/therapyd/serve"
)

const therapydLongDesc string = `Therapyd is the backend for the therapist note-taking assistant.

It relays session transcripts and recall questions to a conversational-memory
service, one isolated thread per client, and keeps a local JSON mirror of
clients and generated session notes.

  therapyd serve    Run the HTTP relay`

const therapydShortDesc string = "Therapyd - therapist notes relay"

func NewTherapydCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "therapyd",
		Short: therapydShortDesc,
		Long:  therapydLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())

	return cmd
}
