package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"textcat/internal/clix"
	"textcat/internal/util"
	"textcat/pkg/categorizer"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// categorizeCmd classifies text given as arguments or on stdin.
var categorizeCmd = &cobra.Command{
	Use:   "categorize [text...]",
	Short: "Classify text once and print the category",
	Long: `Classifies the given text (or stdin when no arguments are given) with the
configured model and prints the resulting category.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		text, err := readInputText(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		opts := clix.ParseCategorizeFlags(cmd.Flags())
		bot, err := appInstance.NewCategorizer(opts.Model)
		if err != nil {
			return err
		}
		defer func() {
			if err := bot.Close(); err != nil {
				log.Warnf("Failed to close %s client: %v", bot.Provider(), err)
			}
		}()

		category, err := bot.Categorize(cmd.Context(), text)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if opts.Quiet {
			fmt.Fprintln(out, category)
			return nil
		}
		if category == categorizer.FailedToClassify {
			fmt.Fprintf(out, "%s (model %s)\n", color.YellowString(string(category)), bot.Model())
		} else {
			fmt.Fprintf(out, "%s (model %s)\n", color.GreenString(string(category)), bot.Model())
		}
		return nil
	},
}

// readInputText joins args, or reads stdin when there are none.
func readInputText(stdin io.Reader, args []string) (string, error) {
	var text string
	if len(args) > 0 {
		text = strings.Join(args, " ")
	} else {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		text = util.CleanText(b, "stdin")
	}
	if text == "" {
		return "", errors.New("input text not supplied")
	}
	return text, nil
}

func init() {
	rootCmd.AddCommand(categorizeCmd)

	categorizeCmd.Flags().StringP("model", "m", "", "Model to use (defaults to categorizer.model)")
	categorizeCmd.Flags().BoolP("quiet", "q", false, "Print only the category")
}
