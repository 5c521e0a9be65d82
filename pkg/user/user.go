package user

import "time"

// User is a UniMind profile. Uid is the subject assigned by the identity
// provider and is the key every other table is scoped by.
type User struct {
	Uid         string
	DisplayName string
	School      string
	Settings    Settings
}

type Settings struct {
	Timezone     string
	WeekFirstDay time.Weekday
}
