package options

import (
	"errors"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// ConfirmOptions
type ConfirmOptions struct {
	Yes bool
}

func AddConfirmArg(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Do not ask for confirmation.")
}

// Confirm asks the user to approve label unless --yes was given.
func (o *ConfirmOptions) Confirm(label string) (bool, error) {
	if o.Yes {
		return true, nil
	}
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . | bold }} ",
		Valid:   "{{ . | bold }} ",
		Invalid: "{{ . | red }} ",
		Success: "{{ . | faint }} ",
	}
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Templates: templates,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
