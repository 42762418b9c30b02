package models

// Intents is the enumerated set of activity labels offered to the
// user. Free text is equally valid anywhere an intent is accepted;
// scoring treats both as opaque strings.
var Intents = []string{
	"Chill",
	"Workout",
	"Study Outside",
	"Picnic",
	"Sports",
	"Photography",
}
