package main

import (
	"fmt"

	"github.com/dgallion1/charterreview/internal/sections"
	"github.com/spf13/cobra"
)

var (
	sectionsAppType      string
	sectionsProfilesFile string
	sectionsAliases      bool
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the section profiles",
	Args:  cobra.NoArgs,
	RunE:  runSections,
}

func init() {
	sectionsCmd.Flags().StringVar(&sectionsAppType, "app-type", "", "show one application type only")
	sectionsCmd.Flags().StringVar(&sectionsProfilesFile, "profiles-file", "", "YAML file overriding section profiles")
	sectionsCmd.Flags().BoolVar(&sectionsAliases, "aliases", false, "also list every header alias")
	rootCmd.AddCommand(sectionsCmd)
}

var profileOrder = []sections.AppType{sections.Standard, sections.Virtual, sections.HighPerforming}

func runSections(cmd *cobra.Command, _ []string) error {
	registry, err := sections.LoadRegistry(sectionsProfilesFile)
	if err != nil {
		return err
	}
	types := profileOrder
	if sectionsAppType != "" {
		t, err := sections.ParseAppType(sectionsAppType)
		if err != nil {
			return err
		}
		if t == sections.Auto {
			return fmt.Errorf("choose a concrete application type")
		}
		types = []sections.AppType{t}
	}

	out := cmd.OutOrStdout()
	for i, t := range types {
		p, err := registry.Get(t)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s (%s)\n", p.Name, p.Type)
		for _, d := range p.Sections {
			fmt.Fprintf(out, "  %-22s %s\n", d.ID, d.Title())
			if sectionsAliases {
				for _, a := range d.Aliases[min(1, len(d.Aliases)):] {
					fmt.Fprintf(out, "  %-22s   %s\n", "", a)
				}
			}
		}
	}
	return nil
}
