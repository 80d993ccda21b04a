package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fareplan/pkg/fare"
)

// newTemplateCmd creates the template command for writing a starter fare file.
func newTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template [file]",
		Short: "Write a starter CSV fare file",
		Long: `Write a CSV fare file with the expected columns and a few sample rows.

Fill it with real fares (nonstop flights only are considered) and pass it to
'fareplan search --fares'. Without a file argument the template is written
to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fare.WriteTemplate(os.Stdout)
			}

			path := args[0]
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists, refusing to overwrite", path)
			}
			if err := fare.WriteTemplateFile(path); err != nil {
				return err
			}

			printSuccess("Wrote fare template")
			printFile(path)
			printNextStep("Next", fmt.Sprintf("fareplan search --fares %s", path))
			return nil
		},
	}
}
