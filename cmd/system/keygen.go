package system

import (
	"fmt"

	"github.com/spf13/cobra"

	pasetotoken "github.com/Alijeyrad/interiora_backend/pkg/paseto"
)

func NewKeygenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a PASETO v4.local key for authentication.paseto.local_key_hex",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(pasetotoken.GenerateLocalKeyHex())
			return nil
		},
	}
}
