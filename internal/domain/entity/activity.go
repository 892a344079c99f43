package entity

import "time"

// DefaultActivityLimit is how many login records the activity feed keeps.
const DefaultActivityLimit = 10

// Activity is one line of the admin activity feed.
type Activity struct {
	Action string
	User   string
	Time   time.Time
}

// LoginActivity describes person logging in.
func LoginActivity(person *Person, at time.Time) Activity {
	return Activity{
		Action: person.Name + " logged in as " + person.role.String(),
		User:   person.Name,
		Time:   at,
	}
}

// PushActivity puts entry in front of feed and keeps at most limit entries.
func PushActivity(feed []Activity, entry Activity, limit int) []Activity {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	out := make([]Activity, 0, min(len(feed)+1, limit))
	out = append(out, entry)
	for _, a := range feed {
		if len(out) == limit {
			break
		}
		out = append(out, a)
	}

	return out
}
