package enquiry

import "github.com/spf13/cobra"

func NewEnquiryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enquiry",
		Short: "Work with client enquiries",
	}

	cmd.AddCommand(NewNewCommand())

	return cmd
}
