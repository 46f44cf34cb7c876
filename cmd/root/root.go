// Package root contains the root command for the application
package root

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fjacquet/contrib-sql/cmd/common"
	"fjacquet/contrib-sql/internal/config"
	"fjacquet/contrib-sql/internal/logging"
	"fjacquet/contrib-sql/internal/parsererror"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	appName = "contrib-sql"

	usageText = "Uso: " + appName + " <archivo.csv> <id_proyecto>\n" +
		"Ejemplo: " + appName + " contribuciones_porton.csv 4"
)

// Flags holds the optional command-line flags
type Flags struct {
	ConfigFile  string
	SummaryFile string
}

// NewCmd builds the root command. Each call returns an independent command so
// tests can run it with their own flags and writers.
func NewCmd() *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:   appName + " <archivo.csv> <id_proyecto>",
		Short: "Generate SQL updates from a CSV of house contributions.",
		Long: `contrib-sql reads a CSV of per-house contributions (id_casa, monto, notas,
controles) for one project, prints a summary report and emits the matching
UPDATE statements, wrapped in a transaction, both to stdout and to
<archivo>_updates.sql next to the input file.`,
		Args:          validateArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.ConfigFile, "config", "c", "", "Configuration file (default: config.yaml in $HOME/.contrib-sql, .contrib-sql or .)")
	cmd.Flags().StringVarP(&flags.SummaryFile, "summary", "s", "", "Also write an aggregate summary to this .json or .yaml file")

	// Help is the usage text; Execute still reports it as a failed run.
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		fmt.Fprintln(c.OutOrStdout(), usageText)
		fmt.Fprintf(c.OutOrStdout(), "\nOpciones:\n%s", c.Flags().FlagUsages())
	})

	return cmd
}

// positionalsAfterDash rewrites args so every positional argument follows a
// "--" terminator. A negative project id such as "-4" is then taken as an
// argument instead of an unknown shorthand flag.
func positionalsAfterDash(flags *pflag.FlagSet, args []string) []string {
	var flagArgs, positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if _, err := strconv.Atoi(arg); err == nil || !strings.HasPrefix(arg, "-") || arg == "-" {
			positional = append(positional, arg)
			continue
		}

		flagArgs = append(flagArgs, arg)
		if strings.Contains(arg, "=") {
			continue
		}
		var flag *pflag.Flag
		if name, ok := strings.CutPrefix(arg, "--"); ok {
			flag = flags.Lookup(name)
		} else if name := strings.TrimPrefix(arg, "-"); len(name) == 1 {
			flag = flags.ShorthandLookup(name)
		}
		if flag != nil && flag.NoOptDefVal == "" && i+1 < len(args) {
			i++
			flagArgs = append(flagArgs, args[i])
		}
	}
	return append(append(flagArgs, "--"), positional...)
}

// Execute runs the command with args and returns the process exit code.
// Usage errors are printed to stdout; any other error goes to stderr.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewCmd()
	cmd.SetArgs(positionalsAfterDash(cmd.Flags(), args))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		var usageErr *parsererror.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintln(stdout, usageErr.Error())
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	if helped, _ := cmd.Flags().GetBool("help"); helped {
		return 1
	}
	return 0
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return &parsererror.UsageError{Usage: usageText}
	}
	_, err := parseProjectID(args[1])
	return err
}

func parseProjectID(value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, &parsererror.ParseError{Parser: "cli", Field: "id_proyecto", Value: value, Err: err}
	}
	return id, nil
}

func run(cmd *cobra.Command, args []string, flags *Flags) error {
	projectID, err := parseProjectID(args[1])
	if err != nil {
		return err
	}

	cfg, err := config.InitializeConfig(flags.ConfigFile)
	if err != nil {
		return err
	}
	log := config.NewLogger(cfg, cmd.ErrOrStderr())

	log.Debug("Starting contribution SQL generation",
		logging.Field{Key: logging.FieldInputFile, Value: args[0]},
		logging.Field{Key: logging.FieldProjectID, Value: projectID})

	_, err = common.ProcessFile(common.ProcessOptions{
		InputFile:      args[0],
		ProjectID:      projectID,
		Delimiter:      cfg.DelimiterRune(),
		Table:          cfg.SQL.Table,
		ProjectLabel:   cfg.SQL.ProjectLabel,
		CurrencySymbol: cfg.Report.CurrencySymbol,
		OutputSuffix:   cfg.SQL.OutputSuffix,
		SummaryFile:    flags.SummaryFile,
	}, cmd.OutOrStdout(), log)
	return err
}
