package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sablekanishka11/mbti-mirror/internal/personality"
	"github.com/Sablekanishka11/mbti-mirror/internal/profiles"
)

var typesCmd = &cobra.Command{
	Use:   "types [code]",
	Short: "List the sixteen types, or describe one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := profiles.Default()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			for _, p := range catalog.All() {
				fmt.Fprintf(out, "%s  %s\n", p.Code, p.Nickname)
			}
			return nil
		}

		code, err := personality.ParseTypeCode(strings.ToUpper(args[0]))
		if err != nil {
			return err
		}
		p, err := catalog.Lookup(code)
		if err != nil {
			return err
		}
		printProfile(out, p)
		return nil
	},
}

func printProfile(w io.Writer, p profiles.Profile) {
	fmt.Fprintf(w, "%s · %s\n\n", p.Code, p.Nickname)
	fmt.Fprintf(w, "%s\n\n", p.Overview)
	fmt.Fprintf(w, "Strengths\n%s\n", bulletList(p.Strengths))
	fmt.Fprintf(w, "Weaknesses\n%s\n", bulletList(p.Weaknesses))
	fmt.Fprintf(w, "Communication\n  %s\n\n", p.CommunicationStyle)
	fmt.Fprintf(w, "Career\n  %s\n\n", p.CareerInclination)
	fmt.Fprintf(w, "Relationships\n  %s\n\n", p.RelationshipTraits)
	fmt.Fprintf(w, "Famous %ss\n", p.Code)
	for _, e := range p.Exemplars {
		fmt.Fprintf(w, "  • %s, %s\n    %s\n", e.Name, e.Profession, e.Explanation)
	}
}
