package enquiry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/Alijeyrad/interiora_backend/cmd/cmdutil"
	"github.com/Alijeyrad/interiora_backend/internal/app"
	"github.com/Alijeyrad/interiora_backend/internal/service/enquiry"
	"github.com/Alijeyrad/interiora_backend/internal/service/lead"
	"github.com/Alijeyrad/interiora_backend/pkg/constants"
)

func NewNewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Record an enquiry taken over the phone",
		Long: `Prompt for the enquiry fields and submit them like the website does.

Invalid fields are asked again; the other answers are kept.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}

			var leads lead.Service
			return app.RunWithServices(cmd.Context(), cfg, func(ctx context.Context) error {
				f := &form{
					submitter: leads,
					ask:       askField,
					confirm:   askConfirm,
					out:       os.Stdout,
				}
				err := f.run(ctx)
				if errors.Is(err, terminal.InterruptErr) {
					return nil
				}
				return err
			}, &leads)
		},
	}
}

// form drives an enquiry controller from terminal prompts.
type form struct {
	submitter enquiry.Submitter
	ask       func(f enquiry.Field, current string) (string, error)
	confirm   func(msg string) (bool, error)
	out       io.Writer
}

func (f *form) run(ctx context.Context) error {
	ctrl := enquiry.NewController(f.submitter,
		enquiry.WithSource(constants.SourceCLI),
		enquiry.WithObserver(func(s enquiry.State) {
			if s == enquiry.StateSubmitting {
				fmt.Fprintln(f.out, "Submitting...")
			}
		}),
	)

	fields := enquiry.Fields
	for {
		for _, field := range fields {
			v, err := f.ask(field, ctrl.Draft().Get(field))
			if err != nil {
				return err
			}
			ctrl.UpdateField(field, v)
		}

		receipt, err := ctrl.Submit(ctx)
		if err == nil {
			fmt.Fprintf(f.out, "Enquiry saved. Reference %s (id %s)\n", receipt.Reference, receipt.ID)
			return nil
		}

		var verr *enquiry.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(f.out, verr.Error())
			fields = verr.Fields
			continue
		}

		fmt.Fprintln(f.out, err.Error())
		if !errors.Is(err, lead.ErrPersistence) {
			return err
		}
		retry, cerr := f.confirm("Try again?")
		if cerr != nil {
			return cerr
		}
		if !retry {
			return err
		}
		// the draft is kept, submit it unchanged
		fields = nil
	}
}

var prompts = map[enquiry.Field]string{
	enquiry.FieldName:     "Client name:",
	enquiry.FieldEmail:    "Email:",
	enquiry.FieldPhone:    "Phone:",
	enquiry.FieldLocation: "Project location:",
	enquiry.FieldMessage:  "Project details:",
}

func askField(f enquiry.Field, current string) (string, error) {
	var out string
	var p survey.Prompt = &survey.Input{Message: prompts[f], Default: current}
	if f == enquiry.FieldMessage {
		p = &survey.Multiline{Message: prompts[f], Default: current}
	}
	if err := survey.AskOne(p, &out); err != nil {
		return "", err
	}
	return out, nil
}

func askConfirm(msg string) (bool, error) {
	var out bool
	err := survey.AskOne(&survey.Confirm{Message: msg, Default: true}, &out)
	return out, err
}
