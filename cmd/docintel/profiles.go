package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"doc-intelligence/internal/config"
	"doc-intelligence/internal/persona"
	"doc-intelligence/pkg/logger"
)

// NewProfilesCmd creates the profiles command.
func NewProfilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List persona profiles",
		Long: `List the persona profiles a role is matched against, in match order.
Profiles from the profiles file replace built-in profiles of the same name.`,
		Args: cobra.NoArgs,
		RunE: runProfilesCmd,
	}
	cmd.Flags().String("profiles", "", "Persona profiles YAML file (default from PROFILES_FILE)")
	cmd.Flags().Bool("json", false, "Output JSON")
	return cmd
}

func runProfilesCmd(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("profiles")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	_ = godotenv.Load()
	if path == "" {
		path = config.NewConfig().GetProfilesFile()
	}
	log := logger.NewLoggerWithWriter("warn", cmd.ErrOrStderr())
	extra, err := persona.LoadProfiles(path)
	if err != nil && !errors.Is(err, persona.ErrProfilesNotFound) {
		log.Warn("Ignoring persona profiles file", "path", path, "error", err)
	}
	profiles := persona.NewBuilder(extra...).Profiles()

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(profiles)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDOMAIN\tKEYWORDS")
	for _, p := range profiles {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Domain, strings.Join(p.Keywords, ", "))
	}
	return tw.Flush()
}
