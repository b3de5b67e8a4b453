// Package seed provides the built-in activity catalog used to populate
// the directory at startup.
package seed

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mergington/activities/internal/domain/model"
)

// Catalog returns the default activity catalog. A fresh map with fresh
// slices is built on every call so callers can mutate the result freely.
func Catalog() map[string]model.Activity {
	return map[string]model.Activity{
		"Chess Club": {
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		"Programming Class": {
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		"Gym Class": {
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		"Basketball": {
			Description:     "Competitive basketball team and practice",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 15,
			Participants:    []string{"alex@mergington.edu"},
		},
		"Soccer": {
			Description:     "Soccer team for all skill levels",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 22,
			Participants:    []string{"james@mergington.edu"},
		},
		"Art Club": {
			Description:     "Explore painting, drawing, and sculpture",
			Schedule:        "Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 16,
			Participants:    []string{"isabella@mergington.edu"},
		},
		"Drama Club": {
			Description:     "Act in school plays and theatrical productions",
			Schedule:        "Mondays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"gabriel@mergington.edu"},
		},
		"Debate Team": {
			Description:     "Develop argumentation and public speaking skills",
			Schedule:        "Tuesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 18,
			Participants:    []string{"lucas@mergington.edu"},
		},
		"Math Club": {
			Description:     "Solve challenging math problems and compete in competitions",
			Schedule:        "Fridays, 3:30 PM - 4:30 PM",
			MaxParticipants: 14,
			Participants:    []string{"sophia@mergington.edu"},
		},
	}
}

// FromFile loads an activity catalog from a YAML file. The file maps
// activity names to records using the same field names as the JSON API
// (description, schedule, max_participants, participants).
func FromFile(path string) (map[string]model.Activity, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load seed file: %w", err)
	}

	catalog := make(map[string]model.Activity)
	if err := k.UnmarshalWithConf("", &catalog, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("seed file %s: no activities defined", path)
	}

	for name, a := range catalog {
		if a.Participants == nil {
			a.Participants = []string{}
			catalog[name] = a
		}
	}
	return catalog, nil
}
