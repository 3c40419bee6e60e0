package clix

import (
	"strings"

	"github.com/spf13/pflag"
)

type CategorizeParams struct {
	Model string
	Quiet bool
}

// ParseCategorizeFlags reads the categorize command's flags. Unknown flags
// read as zero values.
func ParseCategorizeFlags(flags *pflag.FlagSet) CategorizeParams {
	model, _ := flags.GetString("model")
	quiet, _ := flags.GetBool("quiet")
	return CategorizeParams{Model: strings.TrimSpace(model), Quiet: quiet}
}
