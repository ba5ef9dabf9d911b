package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/plugboard-dev/plugboard/internal/app"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pointsJSON bool

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "List extension points",
	Long: `Load the built-in modules and installed plugins, then list every extension
point with the number of contributions it still stores and whether a tracker
is attached.`,
	Args: cobra.NoArgs,
	RunE: runPoints,
}

func init() {
	pointsCmd.Flags().BoolVar(&pointsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(pointsCmd)
}

// pointEntry represents an extension point for display.
type pointEntry struct {
	Name      string `json:"name"`
	Stored    int    `json:"stored"`
	Tracked   bool   `json:"tracked"`
	Retaining bool   `json:"retaining"`
}

func runPoints(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	entries := collectPoints(a)
	if pointsJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	return printPointsTable(cmd.OutOrStdout(), entries, len(a.Plugins()))
}

func collectPoints(a *app.App) []pointEntry {
	reg := a.Registry()
	var entries []pointEntry
	for _, name := range reg.Names() {
		ep, ok := reg.Lookup(name)
		if !ok {
			continue
		}
		entries = append(entries, pointEntry{
			Name:      name,
			Stored:    ep.Len(),
			Tracked:   ep.Tracked(),
			Retaining: ep.Retaining(),
		})
	}
	return entries
}

func printPointsTable(out io.Writer, entries []pointEntry, plugins int) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "POINT\tSTORED\tTRACKED")
	stored := 0
	for _, e := range entries {
		tracked := "no"
		if e.Tracked {
			tracked = "yes"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", e.Name, e.Stored, tracked)
		stored += e.Stored
	}
	if err := w.Flush(); err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	_, err := p.Fprintf(out, "\n%d extension points, %d stored contributions, %d plugins\n", len(entries), stored, plugins)
	return err
}
