package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/dread/pkg/dread/config"
	"github.com/randalmurphal/dread/pkg/dread/params"
	"github.com/randalmurphal/dread/pkg/dread/template"
)

// bindingFlags are shared by bind and render.
type bindingFlags struct {
	bindingsFile string
	envFile      string
	set          []string
	strict       bool
	missing      string
}

func (f *bindingFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.bindingsFile, "bindings", "b", "", "YAML or JSON bindings file")
	cmd.Flags().StringVar(&f.envFile, "env-file", "", "dotenv bindings file")
	cmd.Flags().StringArrayVar(&f.set, "set", nil, "binding as key=value (repeatable)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail on unbound {key} placeholders")
	cmd.Flags().StringVar(&f.missing, "missing", "", "unbound {key} handling: keep, empty, error")
}

// bindings layers the bindings file, the env file, and --set values.
// Later sources override earlier ones per key.
func (f *bindingFlags) bindings() (template.Bindings, error) {
	b := template.Bindings{}
	if f.bindingsFile != "" {
		fileBindings, err := config.LoadBindings(f.bindingsFile)
		if err != nil {
			return nil, err
		}
		b = b.With(fileBindings)
	}
	if f.envFile != "" {
		envBindings, err := config.LoadEnvBindings(f.envFile)
		if err != nil {
			return nil, err
		}
		b = b.With(envBindings)
	}
	if len(f.set) > 0 {
		setBindings, err := params.ParseBindings(f.set...)
		if err != nil {
			return nil, fmt.Errorf("--set: %w", err)
		}
		b = b.With(setBindings)
	}
	return b, nil
}

// missingAction reports the action requested on the command line, if any.
func (f *bindingFlags) missingAction() (template.MissingAction, bool, error) {
	if f.strict {
		return template.MissingError, true, nil
	}
	if f.missing == "" {
		return template.MissingKeep, false, nil
	}
	action, err := parseMissingAction(f.missing)
	return action, err == nil, err
}

func parseMissingAction(s string) (template.MissingAction, error) {
	for _, action := range []template.MissingAction{
		template.MissingKeep, template.MissingEmpty, template.MissingError,
	} {
		if strings.EqualFold(s, action.String()) {
			return action, nil
		}
	}
	return template.MissingKeep, fmt.Errorf("invalid --missing value %q (want keep, empty, or error)", s)
}

// readTemplate returns the template from args or from file ("-" is stdin).
// One trailing newline is dropped from file input.
func readTemplate(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case file != "" && len(args) > 0:
		return "", errors.New("give the template as an argument or with --file, not both")
	case len(args) > 0:
		return args[0], nil
	case file == "":
		return "", errors.New("template is required (argument or --file)")
	}

	var data []byte
	var err error
	if file == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	s := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}
