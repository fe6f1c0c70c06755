// Package roster maps operator initials to their shift team. It is used for
// display only; team attribution in metrics always comes from team_id.
package roster

import (
	"sort"
	"strings"
)

// Unknown is returned for initials that are not on the roster.
const Unknown = "Unknown"

var initialToTeam = map[string]string{
	// Team A
	"AS": "Team A", "JT": "Team A", "CB": "Team A", "JD": "Team A",
	"KM": "Team A", "CP": "Team A", "KA": "Team A",
	// Team B
	"LN": "Team B", "NA": "Team B", "PS": "Team B", "AOO": "Team B",
	"JN": "Team B", "DK": "Team B", "DH": "Team B", "JL": "Team B",
	// Team C
	"SC": "Team C", "MA": "Team C", "CC": "Team C", "OM": "Team C",
	"AL": "Team C", "VN": "Team C", "RN": "Team C", "LVN": "Team C",
	// Team D, night shift
	"SA": "Team D", "MR": "Team D", "AR": "Team D", "DB": "Team D",
	"GT": "Team D", "UQ": "Team D", "BP": "Team D", "RB": "Team D",

	"TFOS": "TFOS",
}

// Group is one team and its members' initials.
type Group struct {
	Team    string   `json:"team"`
	Members []string `json:"members"`
}

// TeamOf returns the team for an operator's initials, or Unknown.
func TeamOf(initial string) string {
	if team, ok := initialToTeam[strings.ToUpper(strings.TrimSpace(initial))]; ok {
		return team
	}
	return Unknown
}

// Groups returns the roster grouped by team, teams and members sorted.
func Groups() []Group {
	byTeam := make(map[string][]string)
	for initial, team := range initialToTeam {
		byTeam[team] = append(byTeam[team], initial)
	}

	groups := make([]Group, 0, len(byTeam))
	for team, members := range byTeam {
		sort.Strings(members)
		groups = append(groups, Group{Team: team, Members: members})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Team < groups[j].Team })
	return groups
}
