package report

import (
	"fmt"
	"io"

	"github.com/ashita-ai/mokuhyo/gtmhub"
)

// WriteTeams renders one line per team, optionally prefixed with the id.
func WriteTeams(w io.Writer, teams []gtmhub.Team, withIDs bool) {
	for _, t := range teams {
		if withIDs {
			fmt.Fprintf(w, "* %s: %s\n", t.ID, t.Name)
		} else {
			fmt.Fprintf(w, "* %s\n", t.Name)
		}
	}
}
