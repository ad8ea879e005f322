package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	admincmd "github.com/Alijeyrad/interiora_backend/cmd/admin"
	assetscmd "github.com/Alijeyrad/interiora_backend/cmd/assets"
	enquirycmd "github.com/Alijeyrad/interiora_backend/cmd/enquiry"
	httpcmd "github.com/Alijeyrad/interiora_backend/cmd/http"
	systemcmd "github.com/Alijeyrad/interiora_backend/cmd/system"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "interiora",
	Short: "Interiora studio site and lead pipeline.",
	Long: `Interiora serves the studio's landing page and turns contact form
enquiries into stored leads, notifying the studio by email and SMS.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
	rootCmd.AddCommand(admincmd.NewAdminCommand())
	rootCmd.AddCommand(enquirycmd.NewEnquiryCommand())
	rootCmd.AddCommand(assetscmd.NewAssetsCommand())
}
